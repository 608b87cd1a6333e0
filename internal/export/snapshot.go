// Package export renders a read-only snapshot of a simulation into the
// blob formats offered to the user (printable document, spreadsheet
// CSV). Writers never feed anything back into the evaluation loop.
package export

import (
	"time"

	"quote-simulator/internal/formula"
	"quote-simulator/internal/model"
)

// Row is one "label: value" line of an export.
type Row struct {
	Label string
	Value string
}

// Snapshot is the frozen view of a session at export time.
type Snapshot struct {
	Title       string
	Rows        []Row
	Result      string
	GeneratedAt time.Time
}

// Take freezes a simulator with its current values and result. Rows
// follow the field order; a field with no current value shows an empty
// value cell rather than being dropped.
func Take(sim model.Simulator, values map[string]model.Value, result formula.Result, now time.Time) Snapshot {
	snap := Snapshot{
		Title:       sim.Name,
		Rows:        make([]Row, 0, len(sim.Fields)),
		Result:      result.Display(),
		GeneratedAt: now,
	}
	for _, f := range sim.Fields {
		row := Row{Label: f.Label}
		if v, ok := values[f.Label]; ok {
			row.Value = v.Display()
		}
		snap.Rows = append(snap.Rows, row)
	}
	return snap
}
