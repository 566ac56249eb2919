package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/trashmob-eco/trashmob-api/internal/app/models/dto"
	"github.com/trashmob-eco/trashmob-api/internal/middleware"
	"github.com/trashmob-eco/trashmob-api/internal/pkg/helpers"
)

// currentUserID pulls the authenticated user from the gin context and writes
// a 401 response itself when the middleware did not run.
func currentUserID(ctx *gin.Context) (uuid.UUID, bool) {
	userID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		detail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
		ctx.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(detail))
		return uuid.Nil, false
	}
	return userID, true
}

// parseUUIDParam parses a path parameter as a UUID, writing a 400 response
// on failure.
func parseUUIDParam(ctx *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(ctx.Param(name))
	if err != nil {
		detail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid identifier")
		detail = detail.WithDetails(name + " must be a valid UUID")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(detail))
		return uuid.Nil, false
	}
	return id, true
}

func bindJSONRequest(ctx *gin.Context, obj interface{}) bool {
	if err := ctx.ShouldBindJSON(obj); err != nil {
		detail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid request data")
		detail = detail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(detail))
		return false
	}
	return true
}

// paginateSlice applies page/size query parameters to an already-loaded list
// and wraps it with paging metadata.
func paginateSlice[T any](ctx *gin.Context, items []T) dto.PaginatedResponse {
	page, size := helpers.ParsePaginationParams(ctx)
	offset, limit := helpers.CalculateOffsetLimit(page, size)

	total := int64(len(items))
	if offset > len(items) {
		offset = len(items)
	}
	end := offset + limit
	if end > len(items) {
		end = len(items)
	}

	return dto.PaginatedResponse{
		Items:      items[offset:end],
		Pagination: helpers.NewPaginationInfo(total, page, size),
	}
}
