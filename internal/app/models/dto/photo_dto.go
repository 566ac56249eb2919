package dto

// FlagPhotoRequest is a user's report of a photo for review.
type FlagPhotoRequest struct {
	Reason string `json:"reason" binding:"required,max=512"`
}

// ModerationDecisionRequest resolves a pending photo.
type ModerationDecisionRequest struct {
	Reason string `json:"reason" binding:"max=512"`
}

// AddPhotoRequest carries the caption accompanying an uploaded photo file.
type AddPhotoRequest struct {
	Caption string `form:"caption" binding:"max=512"`
}
