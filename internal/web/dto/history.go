package dto

import (
	"encoding/json"
	"time"
)

// AnalysisRecordResponse is one activity-log entry.
type AnalysisRecordResponse struct {
	ID         uint            `json:"id"`
	Kind       string          `json:"kind"`
	Symbol     string          `json:"symbol,omitempty"`
	Status     string          `json:"status"`
	Detail     string          `json:"detail,omitempty"`
	Response   json.RawMessage `json:"response,omitempty"`
	DurationMs int64           `json:"duration_ms"`
	CreatedAt  time.Time       `json:"created_at"`
}
