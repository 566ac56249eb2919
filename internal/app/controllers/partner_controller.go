package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/trashmob-eco/trashmob-api/internal/app/models"
	"github.com/trashmob-eco/trashmob-api/internal/app/models/dto"
	"github.com/trashmob-eco/trashmob-api/internal/app/services"
	"github.com/trashmob-eco/trashmob-api/internal/middleware"
)

// PartnerController handles partner organizations, their locations and
// the services they offer to events
type PartnerController struct {
	partnerService services.PartnerService
}

// NewPartnerController creates a new PartnerController
func NewPartnerController(partnerService services.PartnerService) *PartnerController {
	return &PartnerController{partnerService: partnerService}
}

// CreatePartner registers a new partner organization. Site admin only.
// @Summary Create a partner
// @Tags partners
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreatePartnerRequest true "Partner information"
// @Success 201 {object} dto.APIResponse{data=models.Partner} "Partner created"
// @Failure 403 {object} dto.ErrorResponse "Site admin required"
// @Router /partners [post]
func (c *PartnerController) CreatePartner(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	var req dto.CreatePartnerRequest
	if !bindJSONRequest(ctx, &req) {
		return
	}

	partner, err := c.partnerService.CreatePartner(ctx, userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(partner))
}

// UpdatePartner edits a partner's details
func (c *PartnerController) UpdatePartner(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	partnerID, ok := parseUUIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdatePartnerRequest
	if !bindJSONRequest(ctx, &req) {
		return
	}

	partner, err := c.partnerService.UpdatePartner(ctx, partnerID, userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(partner))
}

// DeactivatePartner retires a partner without deleting its history
func (c *PartnerController) DeactivatePartner(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	partnerID, ok := parseUUIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.partnerService.DeactivatePartner(ctx, partnerID, userID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.SuccessResponse{Message: "Partner deactivated"}))
}

// GetPartner retrieves a single partner
func (c *PartnerController) GetPartner(ctx *gin.Context) {
	partnerID, ok := parseUUIDParam(ctx, "id")
	if !ok {
		return
	}

	partner, err := c.partnerService.GetPartner(ctx, partnerID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(partner))
}

// GetActivePartners lists active partners alphabetically
func (c *PartnerController) GetActivePartners(ctx *gin.Context) {
	partners, err := c.partnerService.GetActivePartners(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(paginateSlice(ctx, partners)))
}

// AddLocation adds a physical location to a partner
func (c *PartnerController) AddLocation(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	partnerID, ok := parseUUIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.PartnerLocationRequest
	if !bindJSONRequest(ctx, &req) {
		return
	}

	location, err := c.partnerService.AddLocation(ctx, partnerID, userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(location))
}

// UpdateLocation edits a partner location
func (c *PartnerController) UpdateLocation(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	locationID, ok := parseUUIDParam(ctx, "locationId")
	if !ok {
		return
	}

	var req dto.PartnerLocationRequest
	if !bindJSONRequest(ctx, &req) {
		return
	}

	location, err := c.partnerService.UpdateLocation(ctx, locationID, userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(location))
}

// GetLocations lists a partner's locations
func (c *PartnerController) GetLocations(ctx *gin.Context) {
	partnerID, ok := parseUUIDParam(ctx, "id")
	if !ok {
		return
	}

	locations, err := c.partnerService.GetLocations(ctx, partnerID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(locations))
}

// AddLocationService declares a service a location can provide
func (c *PartnerController) AddLocationService(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	locationID, ok := parseUUIDParam(ctx, "locationId")
	if !ok {
		return
	}

	var req dto.ServiceOfferingRequest
	if !bindJSONRequest(ctx, &req) {
		return
	}

	if err := c.partnerService.AddLocationService(ctx, locationID, userID, &req); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(dto.SuccessResponse{Message: "Service added"}))
}

// RemoveLocationService withdraws a service offering
func (c *PartnerController) RemoveLocationService(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	locationID, ok := parseUUIDParam(ctx, "locationId")
	if !ok {
		return
	}
	serviceTypeID, ok := parseIntParam(ctx, "serviceTypeId")
	if !ok {
		return
	}

	if err := c.partnerService.RemoveLocationService(ctx, locationID, userID, serviceTypeID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.SuccessResponse{Message: "Service removed"}))
}

// GetLocationServices lists the services a location offers
func (c *PartnerController) GetLocationServices(ctx *gin.Context) {
	locationID, ok := parseUUIDParam(ctx, "locationId")
	if !ok {
		return
	}

	offered, err := c.partnerService.GetLocationServices(ctx, locationID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(offered))
}

// AddAdmin grants a user admin rights over a partner
func (c *PartnerController) AddAdmin(ctx *gin.Context) {
	actorID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	partnerID, ok := parseUUIDParam(ctx, "id")
	if !ok {
		return
	}
	userID, ok := parseUUIDParam(ctx, "userId")
	if !ok {
		return
	}

	if err := c.partnerService.AddAdmin(ctx, partnerID, userID, actorID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(dto.SuccessResponse{Message: "Partner admin added"}))
}

// RemoveAdmin revokes a user's admin rights over a partner
func (c *PartnerController) RemoveAdmin(ctx *gin.Context) {
	actorID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	partnerID, ok := parseUUIDParam(ctx, "id")
	if !ok {
		return
	}
	userID, ok := parseUUIDParam(ctx, "userId")
	if !ok {
		return
	}

	if err := c.partnerService.RemoveAdmin(ctx, partnerID, userID, actorID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.SuccessResponse{Message: "Partner admin removed"}))
}

// RequestService asks a partner location to provide a service for an event
// @Summary Request a partner service for an event
// @Tags partners
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Event ID"
// @Param request body dto.ServiceRequestCreate true "Requested service"
// @Success 201 {object} dto.APIResponse{data=models.EventPartnerLocationService} "Request recorded"
// @Failure 409 {object} dto.ErrorResponse "Service already requested"
// @Router /events/{id}/services [post]
func (c *PartnerController) RequestService(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	eventID, ok := parseUUIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.ServiceRequestCreate
	if !bindJSONRequest(ctx, &req) {
		return
	}

	request, err := c.partnerService.RequestService(ctx, eventID, userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(request))
}

// AcceptServiceRequest accepts a pending service request. Partner admin only.
func (c *PartnerController) AcceptServiceRequest(ctx *gin.Context) {
	c.resolveServiceRequest(ctx, true)
}

// DeclineServiceRequest declines a pending service request. Partner admin only.
func (c *PartnerController) DeclineServiceRequest(ctx *gin.Context) {
	c.resolveServiceRequest(ctx, false)
}

// GetEventServiceRequests lists the service requests raised for an event
func (c *PartnerController) GetEventServiceRequests(ctx *gin.Context) {
	eventID, ok := parseUUIDParam(ctx, "id")
	if !ok {
		return
	}

	requests, err := c.partnerService.GetEventServiceRequests(ctx, eventID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(requests))
}

// GetLocationServiceRequests lists the service requests addressed to a
// location, optionally filtered by status. Partner admin only.
func (c *PartnerController) GetLocationServiceRequests(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	locationID, ok := parseUUIDParam(ctx, "locationId")
	if !ok {
		return
	}

	var status *models.ServiceRequestStatus
	if raw := ctx.Query("status"); raw != "" {
		s := models.ServiceRequestStatus(raw)
		status = &s
	}

	requests, err := c.partnerService.GetLocationServiceRequests(ctx, locationID, userID, status)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(requests))
}

func (c *PartnerController) resolveServiceRequest(ctx *gin.Context, accept bool) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	eventID, ok := parseUUIDParam(ctx, "id")
	if !ok {
		return
	}
	locationID, ok := parseUUIDParam(ctx, "locationId")
	if !ok {
		return
	}
	serviceTypeID, ok := parseIntParam(ctx, "serviceTypeId")
	if !ok {
		return
	}

	err := c.partnerService.ResolveServiceRequest(ctx, eventID, locationID, serviceTypeID, userID, accept)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	message := "Service request declined"
	if accept {
		message = "Service request accepted"
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.SuccessResponse{Message: message}))
}

func parseIntParam(ctx *gin.Context, name string) (int, bool) {
	value, err := strconv.Atoi(ctx.Param(name))
	if err != nil {
		detail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid identifier")
		detail = detail.WithDetails(name + " must be a number")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(detail))
		return 0, false
	}
	return value, true
}
