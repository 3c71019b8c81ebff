package entity

import (
	"time"

	"gorm.io/datatypes"
)

// AnalysisKind identifies which backend operation a record belongs to.
type AnalysisKind string

const (
	AnalysisKindStock     AnalysisKind = "stock"
	AnalysisKindSentiment AnalysisKind = "sentiment"
	AnalysisKindPortfolio AnalysisKind = "portfolio"
)

// AnalysisStatus is the terminal outcome of a backend call.
type AnalysisStatus string

const (
	AnalysisStatusOK           AnalysisStatus = "ok"
	AnalysisStatusNoData       AnalysisStatus = "no_data"
	AnalysisStatusBackendError AnalysisStatus = "backend_error"
	AnalysisStatusUnavailable  AnalysisStatus = "unavailable"
)

// AnalysisRecord is one gateway call outcome, kept for the activity log.
type AnalysisRecord struct {
	ID         uint           `gorm:"primaryKey"`
	Kind       AnalysisKind   `gorm:"type:varchar(16);not null;index"`
	Symbol     string         `gorm:"type:varchar(8);index"`
	Status     AnalysisStatus `gorm:"type:varchar(16);not null"`
	Detail     string         `gorm:"type:text"`
	Request    datatypes.JSON `gorm:"type:jsonb"`
	Response   datatypes.JSON `gorm:"type:jsonb"`
	DurationMs int64          `gorm:"not null"`
	CreatedAt  time.Time      `gorm:"autoCreateTime;index"`
}
