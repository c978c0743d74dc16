package controller

import (
	"errors"
	"strconv"

	"formeo_backend/internal/model"
	"formeo_backend/internal/service"
	"formeo_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type EnrollmentController struct {
	EnrollmentService *service.EnrollmentService
}

func NewEnrollmentController(enrollmentService *service.EnrollmentService) *EnrollmentController {
	return &EnrollmentController{EnrollmentService: enrollmentService}
}

type EnrollmentRequestBody struct {
	CourseID uint   `json:"courseId" binding:"required"`
	Message  string `json:"message"`
}

// Request godoc
// @Summary File an enrollment request for a course
// @Tags enrollment
// @Accept json
// @Produce json
// @Param body body EnrollmentRequestBody true "course and optional message"
// @Success 201 {object} util.Response{data=model.EnrollmentRequest}
// @Failure 404 {object} util.Response
// @Failure 409 {object} util.Response
// @Router /api/enrollments [post]
func (c *EnrollmentController) Request(ctx *gin.Context) {
	var req EnrollmentRequestBody
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	claims := util.GetUserFromContext(ctx)
	created, err := c.EnrollmentService.Request(claims.UserID, req.CourseID, req.Message)
	if err != nil {
		c.enrollmentError(ctx, err)
		return
	}
	util.Created(ctx, created)
}

// MyEnrollments godoc
// @Summary The caller's enrollment requests
// @Tags enrollment
// @Produce json
// @Success 200 {object} util.Response{data=[]model.EnrollmentRequest}
// @Router /api/my/enrollments [get]
func (c *EnrollmentController) MyEnrollments(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	reqs, err := c.EnrollmentService.ListForUser(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, reqs)
}

// ListPending godoc
// @Summary Enrollment requests by status
// @Tags staff-enrollment
// @Produce json
// @Param status query string false "pending, accepted or refused" default(pending)
// @Success 200 {object} util.Response{data=[]model.EnrollmentRequest}
// @Router /api/staff/enrollments [get]
func (c *EnrollmentController) ListPending(ctx *gin.Context) {
	status := model.EnrollmentStatus(ctx.DefaultQuery("status", string(model.EnrollmentPending)))
	reqs, err := c.EnrollmentService.ListByStatus(status)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, reqs)
}

type DecisionRequest struct {
	Accept *bool `json:"accept" binding:"required"`
}

// Decide godoc
// @Summary Accept or refuse a pending enrollment request
// @Tags staff-enrollment
// @Accept json
// @Produce json
// @Param id path int true "enrollment request id"
// @Param body body DecisionRequest true "decision"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Failure 409 {object} util.Response
// @Router /api/staff/enrollments/{id}/decide [post]
func (c *EnrollmentController) Decide(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "invalid enrollment id")
		return
	}

	var req DecisionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if err := c.EnrollmentService.Decide(uint(id), *req.Accept); err != nil {
		c.enrollmentError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

func (c *EnrollmentController) enrollmentError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, util.ErrCourseNotFound), errors.Is(err, util.ErrEnrollmentNotFound):
		util.NotFound(ctx)
	case errors.Is(err, util.ErrAlreadyRequested), errors.Is(err, util.ErrEnrollmentDecided):
		util.Conflict(ctx, err.Error())
	default:
		util.LogInternalError(ctx, err)
	}
}
