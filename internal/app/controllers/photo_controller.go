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

// PhotoController handles upload and moderation for one photo table. It is
// instantiated once per owning entity (events, teams, partners).
type PhotoController[T any, PT services.Moderated[T]] struct {
	photoService services.PhotoService[T, PT]
}

// NewPhotoController creates a new PhotoController
func NewPhotoController[T any, PT services.Moderated[T]](photoService services.PhotoService[T, PT]) *PhotoController[T, PT] {
	return &PhotoController[T, PT]{photoService: photoService}
}

// AddPhoto uploads a photo for the owning entity
// @Summary Upload a photo
// @Tags photos
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param id path string true "Owning entity ID"
// @Param file formData file true "Image file"
// @Param caption formData string false "Caption"
// @Success 201 {object} dto.APIResponse "Photo stored pending moderation"
// @Failure 400 {object} dto.ErrorResponse "Missing or invalid file"
// @Router /{owner}/{id}/photos [post]
func (c *PhotoController[T, PT]) AddPhoto(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	ownerID, ok := parseUUIDParam(ctx, "id")
	if !ok {
		return
	}

	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		detail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Image file is required")
		detail = detail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(detail))
		return
	}

	var req dto.AddPhotoRequest
	if err := ctx.ShouldBind(&req); err != nil {
		detail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid form data")
		detail = detail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(detail))
		return
	}

	photo, err := c.photoService.AddPhoto(ctx, ownerID, userID, fileHeader, req.Caption)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(photo))
}

// GetPhotos lists the photos attached to the owning entity
func (c *PhotoController[T, PT]) GetPhotos(ctx *gin.Context) {
	ownerID, ok := parseUUIDParam(ctx, "id")
	if !ok {
		return
	}

	photos, err := c.photoService.GetPhotos(ctx, ownerID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(photos))
}

// GetPhoto retrieves a single photo
func (c *PhotoController[T, PT]) GetPhoto(ctx *gin.Context) {
	photoID, ok := parseUUIDParam(ctx, "photoId")
	if !ok {
		return
	}

	photo, err := c.photoService.GetPhoto(ctx, photoID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(photo))
}

// Flag reports a photo for review
func (c *PhotoController[T, PT]) Flag(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	photoID, ok := parseUUIDParam(ctx, "photoId")
	if !ok {
		return
	}

	var req dto.FlagPhotoRequest
	if !bindJSONRequest(ctx, &req) {
		return
	}

	if err := c.photoService.Flag(ctx, photoID, userID, req.Reason); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.SuccessResponse{Message: "Photo flagged for review"}))
}

// Approve accepts a pending photo. Site admin only.
func (c *PhotoController[T, PT]) Approve(ctx *gin.Context) {
	c.decide(ctx, c.photoService.Approve, "Photo approved")
}

// Reject declines a pending photo. Site admin only.
func (c *PhotoController[T, PT]) Reject(ctx *gin.Context) {
	c.decide(ctx, c.photoService.Reject, "Photo rejected")
}

// HardDelete permanently removes a photo and its stored file. Site admin only.
func (c *PhotoController[T, PT]) HardDelete(ctx *gin.Context) {
	c.decide(ctx, c.photoService.HardDelete, "Photo deleted")
}

// GetPendingQueue lists photos awaiting moderation. Site admin only.
func (c *PhotoController[T, PT]) GetPendingQueue(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	photos, err := c.photoService.GetPendingQueue(ctx, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(photos))
}

// GetFlaggedQueue lists photos flagged by users. Site admin only.
func (c *PhotoController[T, PT]) GetFlaggedQueue(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	photos, err := c.photoService.GetFlaggedQueue(ctx, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(photos))
}

// GetModerationLog lists the moderation actions taken on a photo
func (c *PhotoController[T, PT]) GetModerationLog(ctx *gin.Context) {
	photoID, ok := parseUUIDParam(ctx, "photoId")
	if !ok {
		return
	}

	log, err := c.photoService.GetModerationLog(ctx, photoID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(log))
}

func (c *PhotoController[T, PT]) decide(
	ctx *gin.Context,
	action func(c context.Context, photoID, actorID uuid.UUID, reason string) error,
	message string,
) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	photoID, ok := parseUUIDParam(ctx, "photoId")
	if !ok {
		return
	}

	// The reason is optional, so a missing body is fine.
	var req dto.ModerationDecisionRequest
	_ = ctx.ShouldBindJSON(&req)

	if err := action(ctx, photoID, userID, req.Reason); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.SuccessResponse{Message: message}))
}
