package dto

import "encoding/json"

// CreateBatchRequest starts an area-generation batch.
type CreateBatchRequest struct {
	Source string `json:"source" binding:"required,max=128"`
	City   string `json:"city" binding:"max=128"`
	Region string `json:"region" binding:"max=128"`
	Notes  string `json:"notes" binding:"max=1024"`
}

// StageAreaRequest proposes one area within a batch for review.
type StageAreaRequest struct {
	Name            string          `json:"name" binding:"required,max=128"`
	Geometry        json.RawMessage `json:"geometry" binding:"required"`
	CenterLatitude  float64         `json:"centerLatitude"`
	CenterLongitude float64         `json:"centerLongitude"`
	City            string          `json:"city" binding:"max=128"`
	Region          string          `json:"region" binding:"max=128"`
	Country         string          `json:"country" binding:"max=64"`
}
