package controllers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/trashmob-eco/trashmob-api/internal/app/models/dto"
	"github.com/trashmob-eco/trashmob-api/internal/app/services"
	"github.com/trashmob-eco/trashmob-api/internal/middleware"
)

// AdoptionController handles area adoption applications and their lifecycle
type AdoptionController struct {
	adoptionService services.TeamAdoptionService
}

// NewAdoptionController creates a new AdoptionController
func NewAdoptionController(adoptionService services.TeamAdoptionService) *AdoptionController {
	return &AdoptionController{adoptionService: adoptionService}
}

// Apply submits a team's application to adopt an area
// @Summary Apply to adopt an area
// @Tags adoptions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Team ID"
// @Param request body dto.AdoptionApplication true "Application"
// @Success 201 {object} dto.APIResponse{data=models.TeamAdoption} "Application recorded"
// @Failure 409 {object} dto.ErrorResponse "Area already has an active adoption"
// @Router /teams/{id}/adoptions [post]
func (c *AdoptionController) Apply(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	teamID, ok := parseUUIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.AdoptionApplication
	if !bindJSONRequest(ctx, &req) {
		return
	}

	adoption, err := c.adoptionService.Apply(ctx, teamID, userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(adoption))
}

// Approve grants a pending adoption. Site admin only.
func (c *AdoptionController) Approve(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	adoptionID, ok := parseUUIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.adoptionService.Approve(ctx, adoptionID, userID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.SuccessResponse{Message: "Adoption approved"}))
}

// Reject declines a pending adoption. Site admin only.
func (c *AdoptionController) Reject(ctx *gin.Context) {
	c.resolveWithReason(ctx, c.adoptionService.Reject, "Adoption rejected")
}

// Revoke ends an approved adoption. Site admin only.
func (c *AdoptionController) Revoke(ctx *gin.Context) {
	c.resolveWithReason(ctx, c.adoptionService.Revoke, "Adoption revoked")
}

// GetAdoption retrieves a single adoption
func (c *AdoptionController) GetAdoption(ctx *gin.Context) {
	adoptionID, ok := parseUUIDParam(ctx, "id")
	if !ok {
		return
	}

	adoption, err := c.adoptionService.GetAdoption(ctx, adoptionID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(adoption))
}

// GetTeamAdoptions lists a team's adoptions, newest first
func (c *AdoptionController) GetTeamAdoptions(ctx *gin.Context) {
	teamID, ok := parseUUIDParam(ctx, "id")
	if !ok {
		return
	}

	adoptions, err := c.adoptionService.GetTeamAdoptions(ctx, teamID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(adoptions))
}

// GetPendingAdoptions lists adoptions awaiting review. Site admin only.
func (c *AdoptionController) GetPendingAdoptions(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	adoptions, err := c.adoptionService.GetPendingAdoptions(ctx, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(adoptions))
}

// RecordCleanupEvent links a completed event to an approved adoption
func (c *AdoptionController) RecordCleanupEvent(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	adoptionID, ok := parseUUIDParam(ctx, "id")
	if !ok {
		return
	}
	eventID, ok := parseUUIDParam(ctx, "eventId")
	if !ok {
		return
	}

	if err := c.adoptionService.RecordCleanupEvent(ctx, adoptionID, eventID, userID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(dto.SuccessResponse{Message: "Cleanup event recorded"}))
}

// GetCleanupEvents lists the cleanup events recorded against an adoption
func (c *AdoptionController) GetCleanupEvents(ctx *gin.Context) {
	adoptionID, ok := parseUUIDParam(ctx, "id")
	if !ok {
		return
	}

	events, err := c.adoptionService.GetCleanupEvents(ctx, adoptionID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(events))
}

func (c *AdoptionController) resolveWithReason(
	ctx *gin.Context,
	resolve func(c context.Context, adoptionID, actorID uuid.UUID, reason string) error,
	message string,
) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	adoptionID, ok := parseUUIDParam(ctx, "id")
	if !ok {
		return
	}

	// The reason is optional, so a missing body is fine.
	var req dto.DecisionRequest
	_ = ctx.ShouldBindJSON(&req)

	if err := resolve(ctx, adoptionID, userID, req.Reason); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.SuccessResponse{Message: message}))
}
