package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// AdoptableArea is a geographic area (GeoJSON geometry) that teams can adopt.
type AdoptableArea struct {
	BaseModel
	Name            string         `gorm:"size:128" json:"name"`
	Description     string         `gorm:"size:1024" json:"description"`
	Geometry        datatypes.JSON `json:"geometry"`
	CenterLatitude  float64        `json:"centerLatitude"`
	CenterLongitude float64        `json:"centerLongitude"`
	City            string         `gorm:"size:128" json:"city"`
	Region          string         `gorm:"size:128" json:"region"`
	Country         string         `gorm:"size:64" json:"country"`
	IsActive        bool           `gorm:"index" json:"isActive"`
}

// AreaGenerationBatch is the bookkeeping record for one run of the area
// discovery job that proposes staged areas.
type AreaGenerationBatch struct {
	BaseModel
	Source         string `gorm:"size:128" json:"source"`
	City           string `gorm:"size:128" json:"city"`
	Region         string `gorm:"size:128" json:"region"`
	GeneratedCount int    `json:"generatedCount"`
	PromotedCount  int    `json:"promotedCount"`
	Notes          string `gorm:"size:1024" json:"notes"`
}

// StagedAdoptableArea is a proposed area awaiting admin review before being
// promoted to a real AdoptableArea.
type StagedAdoptableArea struct {
	KeyedModel
	BatchID          uuid.UUID      `gorm:"type:uuid;index" json:"batchId"`
	Name             string         `gorm:"size:128" json:"name"`
	Geometry         datatypes.JSON `json:"geometry"`
	CenterLatitude   float64        `json:"centerLatitude"`
	CenterLongitude  float64        `json:"centerLongitude"`
	City             string         `gorm:"size:128" json:"city"`
	Region           string         `gorm:"size:128" json:"region"`
	Country          string         `gorm:"size:64" json:"country"`
	ReviewStatus     ReviewStatus   `gorm:"size:16;index" json:"reviewStatus"`
	ReviewedByUserID *uuid.UUID     `gorm:"type:uuid" json:"reviewedByUserId,omitempty"`
	ReviewedDate     *time.Time     `json:"reviewedDate,omitempty"`
	PromotedAreaID   *uuid.UUID     `gorm:"type:uuid" json:"promotedAreaId,omitempty"`
	CreatedDate      time.Time      `json:"createdDate"`
}
