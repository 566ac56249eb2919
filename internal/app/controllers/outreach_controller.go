package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/trashmob-eco/trashmob-api/internal/app/models"
	"github.com/trashmob-eco/trashmob-api/internal/app/models/dto"
	"github.com/trashmob-eco/trashmob-api/internal/app/services"
	"github.com/trashmob-eco/trashmob-api/internal/middleware"
)

// OutreachController handles email invites, newsletters and partner prospects
type OutreachController struct {
	outreachService services.OutreachService
}

// NewOutreachController creates a new OutreachController
func NewOutreachController(outreachService services.OutreachService) *OutreachController {
	return &OutreachController{outreachService: outreachService}
}

// CreateInviteBatch sends a batch of email invites
// @Summary Send email invites
// @Tags outreach
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateInviteBatchRequest true "Recipient emails"
// @Success 201 {object} dto.APIResponse{data=models.EmailInviteBatch} "Batch created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Router /invites [post]
func (c *OutreachController) CreateInviteBatch(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	var req dto.CreateInviteBatchRequest
	if !bindJSONRequest(ctx, &req) {
		return
	}

	batch, err := c.outreachService.CreateInviteBatch(ctx, userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(batch))
}

// GetInviteBatch retrieves an invite batch with its delivery counters
func (c *OutreachController) GetInviteBatch(ctx *gin.Context) {
	batchID, ok := parseUUIDParam(ctx, "id")
	if !ok {
		return
	}

	batch, err := c.outreachService.GetInviteBatch(ctx, batchID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(batch))
}

// AcceptInvite marks an invite as accepted. Called from the signup flow.
func (c *OutreachController) AcceptInvite(ctx *gin.Context) {
	inviteID, ok := parseUUIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.outreachService.AcceptInvite(ctx, inviteID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.SuccessResponse{Message: "Invite accepted"}))
}

// RecordInviteBounce marks an invite as undeliverable
func (c *OutreachController) RecordInviteBounce(ctx *gin.Context) {
	inviteID, ok := parseUUIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.outreachService.RecordInviteBounce(ctx, inviteID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.SuccessResponse{Message: "Bounce recorded"}))
}

// CreateNewsletter drafts a newsletter. Site admin only.
func (c *OutreachController) CreateNewsletter(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	var req dto.NewsletterRequest
	if !bindJSONRequest(ctx, &req) {
		return
	}

	newsletter, err := c.outreachService.CreateNewsletter(ctx, userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(newsletter))
}

// UpdateNewsletter edits a draft newsletter. Site admin only.
func (c *OutreachController) UpdateNewsletter(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	newsletterID, ok := parseUUIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.NewsletterRequest
	if !bindJSONRequest(ctx, &req) {
		return
	}

	newsletter, err := c.outreachService.UpdateNewsletter(ctx, newsletterID, userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(newsletter))
}

// ScheduleNewsletter queues a draft for sending at a future time.
// Site admin only.
func (c *OutreachController) ScheduleNewsletter(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	newsletterID, ok := parseUUIDParam(ctx, "id")
	if !ok {
		return
	}

	var req struct {
		SendAt time.Time `json:"sendAt" binding:"required"`
	}
	if !bindJSONRequest(ctx, &req) {
		return
	}

	if err := c.outreachService.ScheduleNewsletter(ctx, newsletterID, userID, req.SendAt); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.SuccessResponse{Message: "Newsletter scheduled"}))
}

// SendNewsletter delivers a newsletter to all users. Site admin only.
func (c *OutreachController) SendNewsletter(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	newsletterID, ok := parseUUIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.outreachService.SendNewsletter(ctx, newsletterID, userID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.SuccessResponse{Message: "Newsletter sent"}))
}

// RecordNewsletterOpen bumps a newsletter's open counter. Unauthenticated
// because it is hit from tracking pixels.
func (c *OutreachController) RecordNewsletterOpen(ctx *gin.Context) {
	newsletterID, ok := parseUUIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.outreachService.RecordNewsletterOpen(ctx, newsletterID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// RecordNewsletterClick bumps a newsletter's click counter
func (c *OutreachController) RecordNewsletterClick(ctx *gin.Context) {
	newsletterID, ok := parseUUIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.outreachService.RecordNewsletterClick(ctx, newsletterID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// GetNewsletters lists newsletters, optionally filtered by status.
// Site admin only.
func (c *OutreachController) GetNewsletters(ctx *gin.Context) {
	var status *models.NewsletterStatus
	if raw := ctx.Query("status"); raw != "" {
		s := models.NewsletterStatus(raw)
		status = &s
	}

	newsletters, err := c.outreachService.GetNewsletters(ctx, status)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(paginateSlice(ctx, newsletters)))
}

// AddProspect records a prospective partner contact. Site admin only.
func (c *OutreachController) AddProspect(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	var req dto.ProspectRequest
	if !bindJSONRequest(ctx, &req) {
		return
	}

	prospect, err := c.outreachService.AddProspect(ctx, userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(prospect))
}

// MarkProspectContacted records that outreach went out to a prospect.
// Site admin only.
func (c *OutreachController) MarkProspectContacted(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	prospectID, ok := parseUUIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.outreachService.MarkProspectContacted(ctx, prospectID, userID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.SuccessResponse{Message: "Prospect marked as contacted"}))
}

// UpdateProspectStatus moves a prospect through the outreach pipeline.
// Site admin only.
func (c *OutreachController) UpdateProspectStatus(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	prospectID, ok := parseUUIDParam(ctx, "id")
	if !ok {
		return
	}

	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if !bindJSONRequest(ctx, &req) {
		return
	}

	err := c.outreachService.UpdateProspectStatus(ctx, prospectID, userID, models.ProspectStatus(req.Status))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.SuccessResponse{Message: "Prospect status updated"}))
}

// GetProspects lists prospects, optionally filtered by status. Site admin only.
func (c *OutreachController) GetProspects(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	var status *models.ProspectStatus
	if raw := ctx.Query("status"); raw != "" {
		s := models.ProspectStatus(raw)
		status = &s
	}

	prospects, err := c.outreachService.GetProspects(ctx, userID, status)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(paginateSlice(ctx, prospects)))
}
