package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/trashmob-eco/trashmob-api/internal/app/models/dto"
	"github.com/trashmob-eco/trashmob-api/internal/app/services"
	"github.com/trashmob-eco/trashmob-api/internal/middleware"
)

// TeamMemberController handles team membership and join requests
type TeamMemberController struct {
	memberService services.TeamMemberService
}

// NewTeamMemberController creates a new TeamMemberController
func NewTeamMemberController(memberService services.TeamMemberService) *TeamMemberController {
	return &TeamMemberController{memberService: memberService}
}

// GetMembers lists a team's members, leads first
func (c *TeamMemberController) GetMembers(ctx *gin.Context) {
	teamID, ok := parseUUIDParam(ctx, "id")
	if !ok {
		return
	}

	members, err := c.memberService.GetMembers(ctx, teamID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(members))
}

// AddMember adds a user to a team directly. Lead only.
func (c *TeamMemberController) AddMember(ctx *gin.Context) {
	actorID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	teamID, ok := parseUUIDParam(ctx, "id")
	if !ok {
		return
	}
	userID, ok := parseUUIDParam(ctx, "userId")
	if !ok {
		return
	}

	if err := c.memberService.AddMember(ctx, teamID, userID, actorID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(dto.SuccessResponse{Message: "Member added"}))
}

// RemoveMember removes a user from a team. Members may remove themselves,
// leads may remove anyone except the last remaining lead.
func (c *TeamMemberController) RemoveMember(ctx *gin.Context) {
	actorID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	teamID, ok := parseUUIDParam(ctx, "id")
	if !ok {
		return
	}
	userID, ok := parseUUIDParam(ctx, "userId")
	if !ok {
		return
	}

	if err := c.memberService.RemoveMember(ctx, teamID, userID, actorID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.SuccessResponse{Message: "Member removed"}))
}

// PromoteToLead grants lead status to a member
func (c *TeamMemberController) PromoteToLead(ctx *gin.Context) {
	actorID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	teamID, ok := parseUUIDParam(ctx, "id")
	if !ok {
		return
	}
	userID, ok := parseUUIDParam(ctx, "userId")
	if !ok {
		return
	}

	if err := c.memberService.PromoteToLead(ctx, teamID, userID, actorID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.SuccessResponse{Message: "Member promoted to lead"}))
}

// DemoteFromLead removes lead status from a member
func (c *TeamMemberController) DemoteFromLead(ctx *gin.Context) {
	actorID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	teamID, ok := parseUUIDParam(ctx, "id")
	if !ok {
		return
	}
	userID, ok := parseUUIDParam(ctx, "userId")
	if !ok {
		return
	}

	if err := c.memberService.DemoteFromLead(ctx, teamID, userID, actorID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.SuccessResponse{Message: "Lead demoted to member"}))
}

// RequestToJoin records the caller's application to join a team
// @Summary Request to join a team
// @Tags teams
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Team ID"
// @Param request body dto.JoinRequestCreate true "Optional message"
// @Success 201 {object} dto.APIResponse{data=models.TeamJoinRequest} "Request recorded"
// @Failure 409 {object} dto.ErrorResponse "Already a member"
// @Router /teams/{id}/join-requests [post]
func (c *TeamMemberController) RequestToJoin(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	teamID, ok := parseUUIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.JoinRequestCreate
	if !bindJSONRequest(ctx, &req) {
		return
	}

	request, err := c.memberService.RequestToJoin(ctx, teamID, userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(request))
}

// GetPendingJoinRequests lists unresolved join requests. Lead only.
func (c *TeamMemberController) GetPendingJoinRequests(ctx *gin.Context) {
	actorID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	teamID, ok := parseUUIDParam(ctx, "id")
	if !ok {
		return
	}

	requests, err := c.memberService.GetPendingJoinRequests(ctx, teamID, actorID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(requests))
}

// ApproveJoinRequest accepts a pending join request
func (c *TeamMemberController) ApproveJoinRequest(ctx *gin.Context) {
	c.resolveJoinRequest(ctx, true)
}

// RejectJoinRequest declines a pending join request
func (c *TeamMemberController) RejectJoinRequest(ctx *gin.Context) {
	c.resolveJoinRequest(ctx, false)
}

func (c *TeamMemberController) resolveJoinRequest(ctx *gin.Context, approve bool) {
	actorID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	requestID, ok := parseUUIDParam(ctx, "requestId")
	if !ok {
		return
	}

	if err := c.memberService.ResolveJoinRequest(ctx, requestID, actorID, approve); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	message := "Join request rejected"
	if approve {
		message = "Join request approved"
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.SuccessResponse{Message: message}))
}
