package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/trashmob-eco/trashmob-api/internal/app/models/dto"
	"github.com/trashmob-eco/trashmob-api/internal/app/services"
	"github.com/trashmob-eco/trashmob-api/internal/middleware"
)

// EventController handles cleanup event operations
type EventController struct {
	eventService services.EventService
}

// NewEventController creates a new EventController
func NewEventController(eventService services.EventService) *EventController {
	return &EventController{eventService: eventService}
}

// CreateEvent schedules a new cleanup event
// @Summary Create a cleanup event
// @Description Creates an event with the caller as its lead and first attendee
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateEventRequest true "Event information"
// @Success 201 {object} dto.APIResponse{data=models.Event} "Event created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Router /events [post]
func (c *EventController) CreateEvent(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	var req dto.CreateEventRequest
	if !bindJSONRequest(ctx, &req) {
		return
	}

	event, err := c.eventService.CreateEvent(ctx, userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(event))
}

// UpdateEvent edits an event's details
// @Summary Update an event
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Event ID"
// @Param request body dto.UpdateEventRequest true "Event information"
// @Success 200 {object} dto.APIResponse{data=models.Event} "Event updated"
// @Failure 403 {object} dto.ErrorResponse "Not the event lead"
// @Failure 404 {object} dto.ErrorResponse "Event not found"
// @Router /events/{id} [put]
func (c *EventController) UpdateEvent(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	eventID, ok := parseUUIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateEventRequest
	if !bindJSONRequest(ctx, &req) {
		return
	}

	event, err := c.eventService.UpdateEvent(ctx, eventID, userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(event))
}

// CancelEvent cancels a scheduled event
func (c *EventController) CancelEvent(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	eventID, ok := parseUUIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.eventService.CancelEvent(ctx, eventID, userID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.SuccessResponse{Message: "Event canceled"}))
}

// CompleteEvent marks an event as completed
func (c *EventController) CompleteEvent(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	eventID, ok := parseUUIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.eventService.CompleteEvent(ctx, eventID, userID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.SuccessResponse{Message: "Event completed"}))
}

// GetEvent retrieves a single event
// @Summary Get event details
// @Tags events
// @Produce json
// @Param id path string true "Event ID"
// @Success 200 {object} dto.APIResponse{data=models.Event} "Event retrieved"
// @Failure 404 {object} dto.ErrorResponse "Event not found"
// @Router /events/{id} [get]
func (c *EventController) GetEvent(ctx *gin.Context) {
	eventID, ok := parseUUIDParam(ctx, "id")
	if !ok {
		return
	}

	event, err := c.eventService.GetEvent(ctx, eventID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(event))
}

// GetActiveEvents lists upcoming events
// @Summary List active events
// @Tags events
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param size query int false "Page size" default(10)
// @Success 200 {object} dto.APIResponse{data=dto.PaginatedResponse} "Events retrieved"
// @Router /events [get]
func (c *EventController) GetActiveEvents(ctx *gin.Context) {
	events, err := c.eventService.GetActiveEvents(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(paginateSlice(ctx, events)))
}

// GetMyEvents lists events the caller created or attends
func (c *EventController) GetMyEvents(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	events, err := c.eventService.GetUserEvents(ctx, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(events))
}

// GetEventHistory lists the change history snapshots for an event
func (c *EventController) GetEventHistory(ctx *gin.Context) {
	eventID, ok := parseUUIDParam(ctx, "id")
	if !ok {
		return
	}

	history, err := c.eventService.GetEventHistory(ctx, eventID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(history))
}

// RegisterAttendee signs the caller up for an event
// @Summary Register for an event
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param id path string true "Event ID"
// @Success 200 {object} dto.APIResponse "Registered"
// @Failure 409 {object} dto.ErrorResponse "Already registered"
// @Failure 422 {object} dto.ErrorResponse "Event is full or canceled"
// @Router /events/{id}/attendees [post]
func (c *EventController) RegisterAttendee(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	eventID, ok := parseUUIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.eventService.RegisterAttendee(ctx, eventID, userID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.SuccessResponse{Message: "Registered for event"}))
}

// CancelRegistration withdraws the caller's signup
func (c *EventController) CancelRegistration(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	eventID, ok := parseUUIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.eventService.CancelRegistration(ctx, eventID, userID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.SuccessResponse{Message: "Registration canceled"}))
}

// GetAttendees lists an event's active attendees
func (c *EventController) GetAttendees(ctx *gin.Context) {
	eventID, ok := parseUUIDParam(ctx, "id")
	if !ok {
		return
	}

	attendees, err := c.eventService.GetAttendees(ctx, eventID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(attendees))
}

// SubmitSummary records the outcome of a completed event
// @Summary Submit an event summary
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Event ID"
// @Param request body dto.EventSummaryRequest true "Summary figures"
// @Success 200 {object} dto.APIResponse{data=models.EventSummary} "Summary recorded"
// @Failure 409 {object} dto.ErrorResponse "Event is not completed"
// @Router /events/{id}/summary [put]
func (c *EventController) SubmitSummary(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	eventID, ok := parseUUIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.EventSummaryRequest
	if !bindJSONRequest(ctx, &req) {
		return
	}

	summary, err := c.eventService.SubmitSummary(ctx, eventID, userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(summary))
}

// GetSummary retrieves the recorded summary for an event
func (c *EventController) GetSummary(ctx *gin.Context) {
	eventID, ok := parseUUIDParam(ctx, "id")
	if !ok {
		return
	}

	summary, err := c.eventService.GetSummary(ctx, eventID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(summary))
}
