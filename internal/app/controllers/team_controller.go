package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/trashmob-eco/trashmob-api/internal/app/models/dto"
	"github.com/trashmob-eco/trashmob-api/internal/app/services"
	"github.com/trashmob-eco/trashmob-api/internal/middleware"
)

// TeamController handles team lifecycle and discovery operations
type TeamController struct {
	teamService services.TeamService
}

// NewTeamController creates a new TeamController
func NewTeamController(teamService services.TeamService) *TeamController {
	return &TeamController{teamService: teamService}
}

// CreateTeam forms a new team with the caller as its first lead
// @Summary Create a team
// @Tags teams
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateTeamRequest true "Team information"
// @Success 201 {object} dto.APIResponse{data=models.Team} "Team created"
// @Failure 409 {object} dto.ErrorResponse "Team name already in use"
// @Router /teams [post]
func (c *TeamController) CreateTeam(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	var req dto.CreateTeamRequest
	if !bindJSONRequest(ctx, &req) {
		return
	}

	team, err := c.teamService.CreateTeam(ctx, userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(team))
}

// UpdateTeam edits a team's details
func (c *TeamController) UpdateTeam(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	teamID, ok := parseUUIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateTeamRequest
	if !bindJSONRequest(ctx, &req) {
		return
	}

	team, err := c.teamService.UpdateTeam(ctx, teamID, userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(team))
}

// DeleteTeam disbands a team
func (c *TeamController) DeleteTeam(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	teamID, ok := parseUUIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.teamService.DeleteTeam(ctx, teamID, userID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.SuccessResponse{Message: "Team deleted"}))
}

// GetTeam retrieves a single team
func (c *TeamController) GetTeam(ctx *gin.Context) {
	teamID, ok := parseUUIDParam(ctx, "id")
	if !ok {
		return
	}

	team, err := c.teamService.GetTeam(ctx, teamID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(team))
}

// GetPublicTeams lists public teams, optionally within a radius of a point
// @Summary List public teams
// @Description Lists public teams. Supply latitude, longitude and radiusMiles together to filter by distance.
// @Tags teams
// @Produce json
// @Param latitude query number false "Search center latitude"
// @Param longitude query number false "Search center longitude"
// @Param radiusMiles query number false "Search radius in miles"
// @Success 200 {object} dto.APIResponse{data=dto.PaginatedResponse} "Teams retrieved"
// @Router /teams [get]
func (c *TeamController) GetPublicTeams(ctx *gin.Context) {
	var filter dto.PublicTeamsFilter
	if err := ctx.ShouldBindQuery(&filter); err != nil {
		detail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid query parameters")
		detail = detail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(detail))
		return
	}

	teams, err := c.teamService.GetPublicTeams(ctx, &filter)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(paginateSlice(ctx, teams)))
}

// CheckTeamName reports whether a team name is free
func (c *TeamController) CheckTeamName(ctx *gin.Context) {
	name := ctx.Query("name")
	if name == "" {
		detail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "name query parameter is required")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(detail))
		return
	}

	var excludeID *uuid.UUID
	if raw := ctx.Query("excludeId"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			detail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "excludeId must be a valid UUID")
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(detail))
			return
		}
		excludeID = &id
	}

	available, err := c.teamService.IsTeamNameAvailable(ctx, name, excludeID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(gin.H{"available": available}))
}
