package controller

import (
	"errors"

	"formeo_backend/internal/model"
	"formeo_backend/internal/service"
	"formeo_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type QuoteController struct {
	QuoteService *service.QuoteService
}

func NewQuoteController(quoteService *service.QuoteService) *QuoteController {
	return &QuoteController{QuoteService: quoteService}
}

// swagger:model QuoteRequest
type QuoteRequest struct {
	CourseID     *uint  `json:"courseId"`
	EnrollmentID *uint  `json:"enrollmentId"`
	CustomerName string `json:"customerName" binding:"required"`
	Company      string `json:"company"`
	AmountCents  int64  `json:"amountCents" binding:"required,min=0"`
}

// CreateQuote godoc
// @Summary Create a draft quote
// @Description The quote number is assigned on insert, DEV-<year>-<seq>.
// @Tags staff-quotes
// @Accept json
// @Produce json
// @Param body body QuoteRequest true "quote payload"
// @Success 201 {object} util.Response{data=model.Quote}
// @Failure 400 {object} util.Response
// @Router /api/staff/quotes [post]
func (c *QuoteController) CreateQuote(ctx *gin.Context) {
	var req QuoteRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	quote := &model.Quote{
		CourseID:     req.CourseID,
		EnrollmentID: req.EnrollmentID,
		CustomerName: req.CustomerName,
		Company:      req.Company,
		AmountCents:  req.AmountCents,
	}
	if err := c.QuoteService.CreateQuote(quote); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, quote)
}

// ListQuotes godoc
// @Summary All quotes
// @Tags staff-quotes
// @Produce json
// @Success 200 {object} util.Response{data=[]model.Quote}
// @Router /api/staff/quotes [get]
func (c *QuoteController) ListQuotes(ctx *gin.Context) {
	quotes, err := c.QuoteService.ListQuotes()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, quotes)
}

// GetQuote godoc
// @Summary One quote
// @Tags staff-quotes
// @Produce json
// @Param id path string true "quote id"
// @Success 200 {object} util.Response{data=model.Quote}
// @Failure 404 {object} util.Response
// @Router /api/staff/quotes/{id} [get]
func (c *QuoteController) GetQuote(ctx *gin.Context) {
	quote, err := c.QuoteService.GetQuote(ctx.Param("id"))
	if err != nil {
		c.quoteError(ctx, err)
		return
	}
	util.Success(ctx, quote)
}

type StatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// ChangeQuoteStatus godoc
// @Summary Advance a quote through its lifecycle
// @Description Allowed transitions: draft to sent, sent to accepted or refused.
// @Tags staff-quotes
// @Accept json
// @Produce json
// @Param id path string true "quote id"
// @Param body body StatusRequest true "target status"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Failure 409 {object} util.Response
// @Router /api/staff/quotes/{id}/status [post]
func (c *QuoteController) ChangeQuoteStatus(ctx *gin.Context) {
	var req StatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if err := c.QuoteService.ChangeQuoteStatus(ctx.Param("id"), model.QuoteStatus(req.Status)); err != nil {
		c.quoteError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// UploadQuoteDocument godoc
// @Summary Attach a document to a quote
// @Tags staff-quotes
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "quote id"
// @Param file formData file true "document"
// @Success 200 {object} util.Response{data=object}
// @Failure 404 {object} util.Response
// @Router /api/staff/quotes/{id}/document [post]
func (c *QuoteController) UploadQuoteDocument(ctx *gin.Context) {
	header, err := ctx.FormFile("file")
	if err != nil {
		util.BadRequest(ctx, "file is required")
		return
	}
	file, err := header.Open()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	defer file.Close()

	url, err := c.QuoteService.AttachQuoteDocument(ctx.Request.Context(),
		ctx.Param("id"), header.Filename, file, header.Size, header.Header.Get("Content-Type"))
	if err != nil {
		c.quoteError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"url": url})
}

// IssueContract godoc
// @Summary Issue the contract for an accepted quote
// @Tags staff-contracts
// @Produce json
// @Param id path string true "quote id"
// @Success 201 {object} util.Response{data=model.Contract}
// @Failure 404 {object} util.Response
// @Failure 409 {object} util.Response
// @Router /api/staff/quotes/{id}/contract [post]
func (c *QuoteController) IssueContract(ctx *gin.Context) {
	contract, err := c.QuoteService.IssueContract(ctx.Param("id"))
	if err != nil {
		c.quoteError(ctx, err)
		return
	}
	util.Created(ctx, contract)
}

// ListContracts godoc
// @Summary All contracts
// @Tags staff-contracts
// @Produce json
// @Success 200 {object} util.Response{data=[]model.Contract}
// @Router /api/staff/contracts [get]
func (c *QuoteController) ListContracts(ctx *gin.Context) {
	contracts, err := c.QuoteService.ListContracts()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, contracts)
}

// ChangeContractStatus godoc
// @Summary Advance a contract through its lifecycle
// @Tags staff-contracts
// @Accept json
// @Produce json
// @Param id path string true "contract id"
// @Param body body StatusRequest true "target status"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Failure 409 {object} util.Response
// @Router /api/staff/contracts/{id}/status [post]
func (c *QuoteController) ChangeContractStatus(ctx *gin.Context) {
	var req StatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if err := c.QuoteService.ChangeContractStatus(ctx.Param("id"), model.ContractStatus(req.Status)); err != nil {
		c.quoteError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// UploadContractDocument godoc
// @Summary Attach a document to a contract
// @Tags staff-contracts
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "contract id"
// @Param file formData file true "document"
// @Success 200 {object} util.Response{data=object}
// @Failure 404 {object} util.Response
// @Router /api/staff/contracts/{id}/document [post]
func (c *QuoteController) UploadContractDocument(ctx *gin.Context) {
	header, err := ctx.FormFile("file")
	if err != nil {
		util.BadRequest(ctx, "file is required")
		return
	}
	file, err := header.Open()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	defer file.Close()

	url, err := c.QuoteService.AttachContractDocument(ctx.Request.Context(),
		ctx.Param("id"), header.Filename, file, header.Size, header.Header.Get("Content-Type"))
	if err != nil {
		c.quoteError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"url": url})
}

func (c *QuoteController) quoteError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, util.ErrQuoteNotFound):
		util.NotFound(ctx)
	case errors.Is(err, util.ErrQuoteNotAccepted), errors.Is(err, util.ErrInvalidStatusChange):
		util.Conflict(ctx, err.Error())
	default:
		util.LogInternalError(ctx, err)
	}
}
