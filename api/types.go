// Package api - Wire types
package api

import (
	"print-cost/core/types"
)

// ErrorBody is the error half of a response envelope
type ErrorBody struct {
	// Kind is the machine-readable error kind
	Kind string `json:"kind"`

	// Message is a human-readable description
	Message string `json:"message"`

	// Fields carries field-level validation messages when Kind is
	// VALIDATION_FAILED
	Fields types.ValidationErrors `json:"fields,omitempty"`
}

// Envelope wraps every API response
type Envelope struct {
	// RequestID identifies this request
	RequestID string `json:"request_id"`

	// DurationMS is the server-side processing time
	DurationMS int64 `json:"duration_ms"`

	// Result is the estimate on success
	Result *types.EstimationResult `json:"result,omitempty"`

	// Error is set on failure
	Error *ErrorBody `json:"error,omitempty"`
}

// HealthResponse is the health check body
type HealthResponse struct {
	Status      string `json:"status"`
	Version     string `json:"version"`
	SnapshotID  string `json:"snapshot_id,omitempty"`
	RefreshedAt string `json:"refreshed_at,omitempty"`
}
