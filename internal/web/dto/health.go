package dto

import "time"

// BackendHealth is the cached status of the analytics backend.
type BackendHealth struct {
	Healthy   bool      `json:"healthy"`
	CheckedAt time.Time `json:"checked_at"`
	LatencyMs int64     `json:"latency_ms"`
	Error     string    `json:"error,omitempty"`
}
