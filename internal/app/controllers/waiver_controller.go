package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/trashmob-eco/trashmob-api/internal/app/models/dto"
	"github.com/trashmob-eco/trashmob-api/internal/app/services"
	"github.com/trashmob-eco/trashmob-api/internal/middleware"
	"github.com/trashmob-eco/trashmob-api/internal/pkg/apperrors"
)

// WaiverController handles waiver documents, versions and acceptances
type WaiverController struct {
	waiverService services.WaiverService
}

// NewWaiverController creates a new WaiverController
func NewWaiverController(waiverService services.WaiverService) *WaiverController {
	return &WaiverController{waiverService: waiverService}
}

// CreateWaiver defines a new waiver document. Site admin only.
func (c *WaiverController) CreateWaiver(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	var req dto.CreateWaiverRequest
	if !bindJSONRequest(ctx, &req) {
		return
	}

	waiver, err := c.waiverService.CreateWaiver(ctx, userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(waiver))
}

// GetWaiver retrieves a waiver document
func (c *WaiverController) GetWaiver(ctx *gin.Context) {
	waiverID, ok := parseUUIDParam(ctx, "id")
	if !ok {
		return
	}

	waiver, err := c.waiverService.GetWaiver(ctx, waiverID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(waiver))
}

// PublishVersion publishes a new waiver version, retiring the previous one.
// Site admin only.
// @Summary Publish a waiver version
// @Description Publishes a new version and deactivates the previously active one
// @Tags waivers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Waiver ID"
// @Param request body dto.PublishVersionRequest true "Version details"
// @Success 201 {object} dto.APIResponse{data=models.WaiverVersion} "Version published"
// @Failure 403 {object} dto.ErrorResponse "Site admin required"
// @Router /waivers/{id}/versions [post]
func (c *WaiverController) PublishVersion(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	waiverID, ok := parseUUIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.PublishVersionRequest
	if !bindJSONRequest(ctx, &req) {
		return
	}

	version, err := c.waiverService.PublishVersion(ctx, waiverID, userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(version))
}

// GetActiveVersion retrieves the currently active version of a waiver
func (c *WaiverController) GetActiveVersion(ctx *gin.Context) {
	waiverID, ok := parseUUIDParam(ctx, "id")
	if !ok {
		return
	}

	version, err := c.waiverService.GetActiveVersion(ctx, waiverID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(version))
}

// Accept records the caller's acceptance of the active waiver version
// @Summary Accept a waiver
// @Tags waivers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Waiver ID"
// @Param request body dto.AcceptWaiverRequest true "Signature details"
// @Success 201 {object} dto.APIResponse{data=models.UserWaiver} "Acceptance recorded"
// @Failure 422 {object} dto.ErrorResponse "Guardian name required for minors"
// @Router /waivers/{id}/accept [post]
func (c *WaiverController) Accept(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	waiverID, ok := parseUUIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.AcceptWaiverRequest
	if !bindJSONRequest(ctx, &req) {
		return
	}

	sig := services.SignatureContext{
		IPAddress: ctx.ClientIP(),
		UserAgent: ctx.GetHeader("User-Agent"),
	}

	record, err := c.waiverService.Accept(ctx, waiverID, userID, &req, sig)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(record))
}

// GetCompliance reports whether the caller holds an unexpired acceptance.
// An optional partnerId query scopes the check to that partner's required
// waivers.
func (c *WaiverController) GetCompliance(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	waiverID, ok := parseUUIDParam(ctx, "id")
	if !ok {
		return
	}

	var partnerID *uuid.UUID
	if raw := ctx.Query("partnerId"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			middleware.HandleAPIError(ctx, apperrors.ErrBadRequest)
			return
		}
		partnerID = &id
	}

	compliance, err := c.waiverService.IsUserCompliant(ctx, waiverID, userID, partnerID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(compliance))
}

// RequireWaiverForPartner maps a waiver to a partner as a signing
// requirement. Partner admin only.
// @Summary Require a waiver for a partner
// @Description Maps a waiver to a partner; partner-scoped compliance checks then verify the mapped waivers instead of the global one
// @Tags waivers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Partner ID"
// @Param request body dto.CommunityWaiverRequest true "Waiver to require"
// @Success 201 {object} dto.APIResponse{data=models.CommunityWaiver} "Requirement recorded"
// @Failure 403 {object} dto.ErrorResponse "Partner admin required"
// @Router /partners/{id}/waivers [post]
func (c *WaiverController) RequireWaiverForPartner(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	partnerID, ok := parseUUIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.CommunityWaiverRequest
	if !bindJSONRequest(ctx, &req) {
		return
	}

	link, err := c.waiverService.RequireWaiverForPartner(ctx, partnerID, req.WaiverID, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(link))
}

// GetPartnerWaivers lists the waivers a partner requires
func (c *WaiverController) GetPartnerWaivers(ctx *gin.Context) {
	partnerID, ok := parseUUIDParam(ctx, "id")
	if !ok {
		return
	}

	links, err := c.waiverService.GetPartnerWaivers(ctx, partnerID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(links))
}

// GetMyWaivers lists the caller's waiver acceptances, newest first
func (c *WaiverController) GetMyWaivers(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	waivers, err := c.waiverService.GetUserWaivers(ctx, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(waivers))
}
