package controller

import (
	"errors"

	"formeo_backend/internal/scoring"
	"formeo_backend/internal/service"
	"formeo_backend/internal/session"
	"formeo_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// AssessmentController is the trainee-facing surface of the quiz engine:
// list open forms, run a session, stage drafts, submit, and pick up
// correction work.
type AssessmentController struct {
	AssessmentService *service.AssessmentService
}

func NewAssessmentController(assessmentService *service.AssessmentService) *AssessmentController {
	return &AssessmentController{AssessmentService: assessmentService}
}

// ListActiveForms godoc
// @Summary Forms currently open for submission
// @Tags assessment
// @Produce json
// @Success 200 {object} util.Response{data=[]session.Form}
// @Failure 401 {object} util.Response
// @Router /api/forms [get]
func (c *AssessmentController) ListActiveForms(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	forms, err := c.AssessmentService.ActiveForms(ctx.Request.Context(), claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, forms)
}

// OpenSession godoc
// @Summary Open or resume an assessment session
// @Description With correctionOf the session presents only the questions the
// @Description grader marked incorrect, pre-filled from the prior submission.
// @Tags assessment
// @Produce json
// @Param id path string true "form id"
// @Param correctionOf query string false "reviewed submission id"
// @Success 200 {object} util.Response{data=session.Snapshot}
// @Failure 404 {object} util.Response
// @Router /api/forms/{id}/session [get]
func (c *AssessmentController) OpenSession(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	snap, err := c.AssessmentService.OpenSession(ctx.Request.Context(),
		claims.UserID, ctx.Param("id"), ctx.Query("correctionOf"))
	if err != nil {
		c.sessionError(ctx, err)
		return
	}
	util.Success(ctx, snap)
}

type AnswerRequest struct {
	QuestionID string         `json:"questionId" binding:"required"`
	Value      scoring.Answer `json:"value"`
}

// EditAnswer godoc
// @Summary Record one answer
// @Description Stages the value in the session. The draft write is debounced;
// @Description rapid edits coalesce into a single store write.
// @Tags assessment
// @Accept json
// @Produce json
// @Param id path string true "form id"
// @Param correctionOf query string false "reviewed submission id"
// @Param body body AnswerRequest true "answer payload"
// @Success 200 {object} util.Response{data=session.Snapshot}
// @Failure 400 {object} util.Response
// @Router /api/forms/{id}/session/answers [put]
func (c *AssessmentController) EditAnswer(ctx *gin.Context) {
	var req AnswerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	claims := util.GetUserFromContext(ctx)
	snap, err := c.AssessmentService.EditAnswer(ctx.Request.Context(),
		claims.UserID, ctx.Param("id"), ctx.Query("correctionOf"), req.QuestionID, req.Value)
	if err != nil {
		c.sessionError(ctx, err)
		return
	}
	util.Success(ctx, snap)
}

// SaveDraft godoc
// @Summary Force an immediate draft write
// @Tags assessment
// @Produce json
// @Param id path string true "form id"
// @Param correctionOf query string false "reviewed submission id"
// @Success 200 {object} util.Response{data=object}
// @Router /api/forms/{id}/session/draft [post]
func (c *AssessmentController) SaveDraft(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	savedAt, err := c.AssessmentService.SaveDraft(ctx.Request.Context(),
		claims.UserID, ctx.Param("id"), ctx.Query("correctionOf"))
	if err != nil {
		c.sessionError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"savedAt": savedAt})
}

type SubmitRequest struct {
	Comment string `json:"comment"`
}

// Submit godoc
// @Summary Submit the session's answers
// @Description Rejects when required questions are unanswered; the session
// @Description stays editable and nothing is lost on a store failure.
// @Tags assessment
// @Accept json
// @Produce json
// @Param id path string true "form id"
// @Param correctionOf query string false "reviewed submission id"
// @Param body body SubmitRequest true "optional trainee comment"
// @Success 200 {object} util.Response{data=session.Submission}
// @Failure 400 {object} util.Response
// @Failure 409 {object} util.Response
// @Router /api/forms/{id}/session/submit [post]
func (c *AssessmentController) Submit(ctx *gin.Context) {
	var req SubmitRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	claims := util.GetUserFromContext(ctx)
	sub, err := c.AssessmentService.Submit(ctx.Request.Context(),
		claims.UserID, ctx.Param("id"), ctx.Query("correctionOf"), req.Comment)
	if err != nil {
		var verr *session.ValidationError
		if errors.As(err, &verr) {
			util.Error(ctx, 400, "required questions unanswered")
			return
		}
		c.sessionError(ctx, err)
		return
	}
	util.Success(ctx, sub)
}

// MyCorrections godoc
// @Summary Reviewed submissions awaiting a correction pass
// @Tags assessment
// @Produce json
// @Success 200 {object} util.Response{data=[]service.PendingCorrection}
// @Router /api/my/corrections [get]
func (c *AssessmentController) MyCorrections(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	items, err := c.AssessmentService.PendingCorrections(ctx.Request.Context(), claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, items)
}

func (c *AssessmentController) sessionError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, util.ErrFormNotFound), errors.Is(err, util.ErrSubmissionNotFound):
		util.NotFound(ctx)
	case errors.Is(err, util.ErrFormNotPublished), errors.Is(err, util.ErrNotReviewed):
		util.BadRequest(ctx, err.Error())
	case errors.Is(err, util.ErrPermissionDenied):
		util.Forbidden(ctx)
	case errors.Is(err, session.ErrSubmitInFlight):
		util.Conflict(ctx, err.Error())
	case errors.Is(err, session.ErrNotEditable), errors.Is(err, session.ErrUnknownQuestion),
		errors.Is(err, session.ErrSessionClosed):
		util.BadRequest(ctx, err.Error())
	default:
		util.LogInternalError(ctx, err)
	}
}
