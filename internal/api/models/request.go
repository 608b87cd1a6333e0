package models

// SimulatorPayload is the JSON shape of a simulator definition as sent
// by the authoring UI.
type SimulatorPayload struct {
	Name    string         `json:"name" binding:"required"`
	Formula string         `json:"formula"`
	Fields  []FieldPayload `json:"fields"`
}

// FieldPayload is the JSON shape of one field definition.
type FieldPayload struct {
	Label         string   `json:"label" binding:"required"`
	Kind          string   `json:"kind" binding:"required"`
	Default       *float64 `json:"default,omitempty"`
	Min           float64  `json:"min,omitempty"`
	Max           float64  `json:"max,omitempty"`
	Step          float64  `json:"step,omitempty"`
	Options       []string `json:"options,omitempty"`
	DefaultOption string   `json:"default_option,omitempty"`
}

// SimulateRequest is the body of POST /api/v1/simulate: a simulator
// definition plus the end user's current inputs. Values are keyed by
// field label; numbers and strings are both accepted, matching what
// number/slider and select inputs submit.
type SimulateRequest struct {
	Config SimulatorPayload `json:"config" binding:"required"`
	Values map[string]any   `json:"values,omitempty"`
}

// ExportRequest is the body of POST /api/v1/export.
type ExportRequest struct {
	Config SimulatorPayload `json:"config" binding:"required"`
	Values map[string]any   `json:"values,omitempty"`
	Format string           `json:"format,omitempty"` // "csv" or "document" (default)
}
