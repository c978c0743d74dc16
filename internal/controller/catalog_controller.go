package controller

import (
	"errors"
	"strconv"

	"formeo_backend/internal/model"
	"formeo_backend/internal/service"
	"formeo_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type CatalogController struct {
	CatalogService *service.CatalogService
}

func NewCatalogController(catalogService *service.CatalogService) *CatalogController {
	return &CatalogController{CatalogService: catalogService}
}

// swagger:model CourseRequest
type CourseRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	SessionTag  string `json:"sessionTag"`
	LevelTag    string `json:"levelTag"`
	DurationH   int    `json:"durationH"`
	PriceCents  int64  `json:"priceCents" binding:"min=0"`
}

// ListCourses godoc
// @Summary Published training catalog
// @Tags catalog
// @Produce json
// @Success 200 {object} util.Response{data=[]model.TrainingCourse}
// @Router /api/courses [get]
func (c *CatalogController) ListCourses(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	staff := claims != nil && claims.Role != model.Trainee
	courses, err := c.CatalogService.ListCourses(staff)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, courses)
}

// GetCourse godoc
// @Summary One course
// @Tags catalog
// @Produce json
// @Param id path int true "course id"
// @Success 200 {object} util.Response{data=model.TrainingCourse}
// @Failure 404 {object} util.Response
// @Router /api/courses/{id} [get]
func (c *CatalogController) GetCourse(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "invalid course id")
		return
	}
	course, err := c.CatalogService.GetCourse(uint(id))
	if err != nil {
		c.catalogError(ctx, err)
		return
	}
	util.Success(ctx, course)
}

// CreateCourse godoc
// @Summary Create a course
// @Tags staff-catalog
// @Accept json
// @Produce json
// @Param body body CourseRequest true "course definition"
// @Success 201 {object} util.Response{data=model.TrainingCourse}
// @Failure 400 {object} util.Response
// @Router /api/staff/courses [post]
func (c *CatalogController) CreateCourse(ctx *gin.Context) {
	var req CourseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	course := &model.TrainingCourse{
		Title:       req.Title,
		Description: req.Description,
		SessionTag:  req.SessionTag,
		LevelTag:    req.LevelTag,
		DurationH:   req.DurationH,
		PriceCents:  req.PriceCents,
	}
	if err := c.CatalogService.CreateCourse(course); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, course)
}

// UpdateCourse godoc
// @Summary Update a course
// @Tags staff-catalog
// @Accept json
// @Produce json
// @Param id path int true "course id"
// @Param body body CourseRequest true "course definition"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/staff/courses/{id} [put]
func (c *CatalogController) UpdateCourse(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "invalid course id")
		return
	}

	var req CourseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	updated := &model.TrainingCourse{
		Title:       req.Title,
		Description: req.Description,
		SessionTag:  req.SessionTag,
		LevelTag:    req.LevelTag,
		DurationH:   req.DurationH,
		PriceCents:  req.PriceCents,
	}
	if err := c.CatalogService.UpdateCourse(uint(id), updated); err != nil {
		c.catalogError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// PublishCourse godoc
// @Summary Publish or unpublish a course
// @Tags staff-catalog
// @Accept json
// @Produce json
// @Param id path int true "course id"
// @Param body body PublishRequest true "publish flag"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/staff/courses/{id}/publish [post]
func (c *CatalogController) PublishCourse(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "invalid course id")
		return
	}

	var req PublishRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if err := c.CatalogService.PublishCourse(uint(id), *req.Published); err != nil {
		c.catalogError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// DeleteCourse godoc
// @Summary Delete a course
// @Tags staff-catalog
// @Produce json
// @Param id path int true "course id"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/staff/courses/{id} [delete]
func (c *CatalogController) DeleteCourse(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "invalid course id")
		return
	}
	if err := c.CatalogService.DeleteCourse(uint(id)); err != nil {
		c.catalogError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

func (c *CatalogController) catalogError(ctx *gin.Context, err error) {
	if errors.Is(err, util.ErrCourseNotFound) {
		util.NotFound(ctx)
		return
	}
	util.LogInternalError(ctx, err)
}
