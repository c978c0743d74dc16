package controller

import (
	"errors"
	"time"

	"formeo_backend/internal/model"
	"formeo_backend/internal/service"
	"formeo_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// FormAdminController is the staff-side authoring and review surface.
type FormAdminController struct {
	FormService *service.FormService
}

func NewFormAdminController(formService *service.FormService) *FormAdminController {
	return &FormAdminController{FormService: formService}
}

type QuestionRequest struct {
	Type           string   `json:"type" binding:"required,oneof=text textarea select radio checkbox number"`
	Label          string   `json:"label" binding:"required"`
	Required       bool     `json:"required"`
	Options        []string `json:"options"`
	Min            *float64 `json:"min"`
	Max            *float64 `json:"max"`
	Step           *float64 `json:"step"`
	Unit           string   `json:"unit"`
	ScoringEnabled bool     `json:"scoringEnabled"`
	Points         int      `json:"points"`
	CorrectAnswers []string `json:"correctAnswers"`
	NumberCorrect  *float64 `json:"numberCorrect"`
}

// swagger:model FormRequest
type FormRequest struct {
	Title       string            `json:"title" binding:"required"`
	Description string            `json:"description"`
	SessionTag  string            `json:"sessionTag"`
	LevelTag    string            `json:"levelTag"`
	ValidFrom   time.Time         `json:"dateDebut" binding:"required"`
	ValidUntil  time.Time         `json:"dateFin" binding:"required"`
	Questions   []QuestionRequest `json:"questions" binding:"required,min=1,dive"`
}

func (r *FormRequest) toModel() *model.Form {
	form := &model.Form{
		Title:       r.Title,
		Description: r.Description,
		SessionTag:  r.SessionTag,
		LevelTag:    r.LevelTag,
		ValidFrom:   r.ValidFrom,
		ValidUntil:  r.ValidUntil,
	}
	for _, q := range r.Questions {
		form.Questions = append(form.Questions, model.Question{
			Type:           q.Type,
			Label:          q.Label,
			Required:       q.Required,
			Options:        q.Options,
			Min:            q.Min,
			Max:            q.Max,
			Step:           q.Step,
			Unit:           q.Unit,
			ScoringEnabled: q.ScoringEnabled,
			Points:         q.Points,
			CorrectAnswers: q.CorrectAnswers,
			NumberCorrect:  q.NumberCorrect,
		})
	}
	return form
}

// CreateForm godoc
// @Summary Create a form
// @Tags staff-forms
// @Accept json
// @Produce json
// @Param body body FormRequest true "form definition"
// @Success 201 {object} util.Response{data=model.Form}
// @Failure 400 {object} util.Response
// @Router /api/staff/forms [post]
func (c *FormAdminController) CreateForm(ctx *gin.Context) {
	var req FormRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	if !req.ValidUntil.After(req.ValidFrom) {
		util.BadRequest(ctx, "dateFin must be after dateDebut")
		return
	}

	form := req.toModel()
	if err := c.FormService.CreateForm(form); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, form)
}

// ListForms godoc
// @Summary All forms, drafts included
// @Tags staff-forms
// @Produce json
// @Success 200 {object} util.Response{data=[]model.Form}
// @Router /api/staff/forms [get]
func (c *FormAdminController) ListForms(ctx *gin.Context) {
	forms, err := c.FormService.ListForms()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, forms)
}

// GetForm godoc
// @Summary One form with its questions
// @Tags staff-forms
// @Produce json
// @Param id path string true "form id"
// @Success 200 {object} util.Response{data=model.Form}
// @Failure 404 {object} util.Response
// @Router /api/staff/forms/{id} [get]
func (c *FormAdminController) GetForm(ctx *gin.Context) {
	form, err := c.FormService.GetForm(ctx.Param("id"))
	if err != nil {
		c.formError(ctx, err)
		return
	}
	util.Success(ctx, form)
}

// UpdateForm godoc
// @Summary Rewrite an unpublished form
// @Tags staff-forms
// @Accept json
// @Produce json
// @Param id path string true "form id"
// @Param body body FormRequest true "form definition"
// @Success 200 {object} util.Response
// @Failure 400 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/staff/forms/{id} [put]
func (c *FormAdminController) UpdateForm(ctx *gin.Context) {
	var req FormRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if err := c.FormService.UpdateForm(ctx.Param("id"), req.toModel()); err != nil {
		c.formError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

type PublishRequest struct {
	Published *bool `json:"published" binding:"required"`
}

// PublishForm godoc
// @Summary Publish or unpublish a form
// @Tags staff-forms
// @Accept json
// @Produce json
// @Param id path string true "form id"
// @Param body body PublishRequest true "publish flag"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/staff/forms/{id}/publish [post]
func (c *FormAdminController) PublishForm(ctx *gin.Context) {
	var req PublishRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if err := c.FormService.PublishForm(ctx.Param("id"), *req.Published); err != nil {
		c.formError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// DeleteForm godoc
// @Summary Delete an unpublished form
// @Tags staff-forms
// @Produce json
// @Param id path string true "form id"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/staff/forms/{id} [delete]
func (c *FormAdminController) DeleteForm(ctx *gin.Context) {
	if err := c.FormService.DeleteForm(ctx.Param("id")); err != nil {
		c.formError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// ListSubmissions godoc
// @Summary Submissions received for a form
// @Tags staff-review
// @Produce json
// @Param id path string true "form id"
// @Success 200 {object} util.Response{data=[]model.Submission}
// @Router /api/staff/forms/{id}/submissions [get]
func (c *FormAdminController) ListSubmissions(ctx *gin.Context) {
	subs, err := c.FormService.ListSubmissions(ctx.Param("id"))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, subs)
}

// GetSubmission godoc
// @Summary One submission with its correction record
// @Tags staff-review
// @Produce json
// @Param id path string true "submission id"
// @Success 200 {object} util.Response{data=object}
// @Failure 404 {object} util.Response
// @Router /api/staff/submissions/{id} [get]
func (c *FormAdminController) GetSubmission(ctx *gin.Context) {
	sub, entries, err := c.FormService.GetSubmission(ctx.Param("id"))
	if err != nil {
		c.formError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"submission": sub, "corrections": entries})
}

type VerdictRequest struct {
	QuestionID string `json:"questionId" binding:"required"`
	Correcte   bool   `json:"correcte"`
	Comment    string `json:"comment"`
}

type ReviewRequest struct {
	Verdicts []VerdictRequest `json:"verdicts" binding:"required,min=1,dive"`
}

// ReviewSubmission godoc
// @Summary Record grader verdicts for a submission
// @Description Marks the submission reviewed. Questions judged incorrect
// @Description become the trainee's correction set.
// @Tags staff-review
// @Accept json
// @Produce json
// @Param id path string true "submission id"
// @Param body body ReviewRequest true "per-question verdicts"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/staff/submissions/{id}/review [post]
func (c *FormAdminController) ReviewSubmission(ctx *gin.Context) {
	var req ReviewRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	entries := make([]model.CorrectionEntry, 0, len(req.Verdicts))
	for _, v := range req.Verdicts {
		entries = append(entries, model.CorrectionEntry{
			QuestionID: v.QuestionID,
			Correcte:   v.Correcte,
			Comment:    v.Comment,
		})
	}

	if err := c.FormService.ReviewSubmission(ctx.Param("id"), entries); err != nil {
		c.formError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

func (c *FormAdminController) formError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, util.ErrFormNotFound), errors.Is(err, util.ErrSubmissionNotFound):
		util.NotFound(ctx)
	case errors.Is(err, util.ErrFormPublished):
		util.Conflict(ctx, err.Error())
	default:
		util.LogInternalError(ctx, err)
	}
}
