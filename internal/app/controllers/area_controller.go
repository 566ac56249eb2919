package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/trashmob-eco/trashmob-api/internal/app/models/dto"
	"github.com/trashmob-eco/trashmob-api/internal/app/services"
	"github.com/trashmob-eco/trashmob-api/internal/middleware"
)

// AreaController handles adoptable areas and the staged-area review pipeline
type AreaController struct {
	areaService services.AreaService
}

// NewAreaController creates a new AreaController
func NewAreaController(areaService services.AreaService) *AreaController {
	return &AreaController{areaService: areaService}
}

// GetArea retrieves a single adoptable area
func (c *AreaController) GetArea(ctx *gin.Context) {
	areaID, ok := parseUUIDParam(ctx, "id")
	if !ok {
		return
	}

	area, err := c.areaService.GetArea(ctx, areaID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(area))
}

// GetActiveAreas lists areas open for adoption
// @Summary List adoptable areas
// @Description Lists active areas. Supply latitude, longitude and radiusMiles to filter by distance.
// @Tags areas
// @Produce json
// @Param latitude query number false "Search center latitude"
// @Param longitude query number false "Search center longitude"
// @Param radiusMiles query number false "Search radius in miles"
// @Success 200 {object} dto.APIResponse{data=dto.PaginatedResponse} "Areas retrieved"
// @Router /areas [get]
func (c *AreaController) GetActiveAreas(ctx *gin.Context) {
	latRaw := ctx.Query("latitude")
	lonRaw := ctx.Query("longitude")
	radiusRaw := ctx.Query("radiusMiles")

	if latRaw == "" && lonRaw == "" && radiusRaw == "" {
		areas, err := c.areaService.GetActiveAreas(ctx)
		if err != nil {
			middleware.HandleAPIError(ctx, err)
			return
		}
		ctx.JSON(http.StatusOK, dto.NewSuccessResponse(paginateSlice(ctx, areas)))
		return
	}

	lat, latErr := strconv.ParseFloat(latRaw, 64)
	lon, lonErr := strconv.ParseFloat(lonRaw, 64)
	radius, radiusErr := strconv.ParseFloat(radiusRaw, 64)
	if latErr != nil || lonErr != nil || radiusErr != nil {
		detail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid search parameters")
		detail = detail.WithDetails("latitude, longitude and radiusMiles must all be valid numbers")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(detail))
		return
	}

	areas, err := c.areaService.FindAreasNear(ctx, lat, lon, radius)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(paginateSlice(ctx, areas)))
}

// DeactivateArea retires an area from the adoptable pool. Site admin only.
func (c *AreaController) DeactivateArea(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	areaID, ok := parseUUIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.areaService.DeactivateArea(ctx, areaID, userID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.SuccessResponse{Message: "Area deactivated"}))
}

// CreateBatch starts an area-generation batch. Site admin only.
func (c *AreaController) CreateBatch(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	var req dto.CreateBatchRequest
	if !bindJSONRequest(ctx, &req) {
		return
	}

	batch, err := c.areaService.CreateBatch(ctx, userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(batch))
}

// StageAreas adds candidate areas to a batch for review. Site admin only.
// @Summary Stage candidate areas
// @Tags areas
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Batch ID"
// @Param request body []dto.StageAreaRequest true "Candidate areas"
// @Success 201 {object} dto.APIResponse{data=[]models.StagedAdoptableArea} "Areas staged"
// @Failure 404 {object} dto.ErrorResponse "Batch not found"
// @Router /areas/batches/{id}/staged [post]
func (c *AreaController) StageAreas(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	batchID, ok := parseUUIDParam(ctx, "id")
	if !ok {
		return
	}

	var reqs []dto.StageAreaRequest
	if !bindJSONRequest(ctx, &reqs) {
		return
	}

	staged, err := c.areaService.StageAreas(ctx, batchID, userID, reqs)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(staged))
}

// GetPendingStagedAreas lists staged areas awaiting review. Site admin only.
func (c *AreaController) GetPendingStagedAreas(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	staged, err := c.areaService.GetPendingStagedAreas(ctx, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(staged))
}

// PromoteStagedArea turns an approved candidate into a live adoptable area.
// Site admin only.
func (c *AreaController) PromoteStagedArea(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	stagedID, ok := parseUUIDParam(ctx, "stagedId")
	if !ok {
		return
	}

	area, err := c.areaService.PromoteStagedArea(ctx, stagedID, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(area))
}

// RejectStagedArea declines a candidate area. Site admin only.
func (c *AreaController) RejectStagedArea(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	stagedID, ok := parseUUIDParam(ctx, "stagedId")
	if !ok {
		return
	}

	if err := c.areaService.RejectStagedArea(ctx, stagedID, userID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.SuccessResponse{Message: "Staged area rejected"}))
}
