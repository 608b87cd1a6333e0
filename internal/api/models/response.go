package models

import (
	"time"

	"quote-simulator/internal/config"
)

// SimulateResponse is what every evaluation returns. Status is "ok" or
// "error"; Result is always renderable, even on error.
type SimulateResponse struct {
	Status string `json:"status"`
	// Result is the display form: a formatted number, the text a
	// formatting helper produced, or a short error marker.
	Result string `json:"result"`
	// Value carries the numeric result when there is one.
	Value *float64 `json:"value,omitempty"`
	// Text carries the textual result when the formula formats one.
	Text string `json:"text,omitempty"`
	// Error is the failure message when Status is "error".
	Error string `json:"error,omitempty"`
	// Values echoes the values the evaluation actually used, seeded
	// defaults included.
	Values map[string]any `json:"values"`
	// Bindings maps each sanitized identifier to the operand it was
	// bound to, for the authoring UI's formula help.
	Bindings map[string]float64 `json:"bindings,omitempty"`
}

// SimulatorInfo is one entry of a simulator listing.
type SimulatorInfo struct {
	ID         int64     `json:"id"`
	Name       string    `json:"name"`
	FieldCount int       `json:"field_count"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// SimulatorResponse is a full stored simulator.
type SimulatorResponse struct {
	ID        int64            `json:"id"`
	UpdatedAt time.Time        `json:"updated_at"`
	Config    SimulatorPayload `json:"config"`
}

// PresetInfo is one entry of the preset listing.
type PresetInfo struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	File       string `json:"file"`
	FieldCount int    `json:"field_count"`
}

// ValidateResponse reports authoring lint results. Warnings never block
// saving; they exist so the UI can surface them.
type ValidateResponse struct {
	Valid    bool             `json:"valid"`
	Warnings []config.Problem `json:"warnings"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error information
type ErrorDetail struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}
