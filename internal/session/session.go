// Package session holds the live state of one rendered simulator: the
// current field values and the last computed result. A session is
// single-owner and synchronous; every mutation that can change the
// outcome recomputes the result before returning.
package session

import (
	"quote-simulator/internal/formula"
	"quote-simulator/internal/model"
)

// State names the lifecycle position of a session.
type State string

const (
	StateUninitialized State = "uninitialized"
	StateSeeded        State = "seeded"
	StateEvaluated     State = "evaluated"
	StateError         State = "evaluated_error"
)

// Session is the ephemeral companion of one Simulator. Values are keyed
// by field label (the display key), not by sanitized identifier.
type Session struct {
	sim    model.Simulator
	values map[string]model.Value
	result formula.Result
	state  State
}

// New returns an uninitialized session. Apply a simulator to seed it.
func New() *Session {
	return &Session{state: StateUninitialized, values: map[string]model.Value{}}
}

// NewWithSimulator returns a session seeded from sim's defaults.
func NewWithSimulator(sim model.Simulator) *Session {
	s := New()
	s.Apply(sim)
	return s
}

// Apply installs a simulator. A simulator that differs from the current
// one (by content, not by reference) discards all values and re-seeds
// from defaults; applying an identical simulator is a no-op.
func (s *Session) Apply(sim model.Simulator) {
	if s.state != StateUninitialized && s.sim.Equal(sim) {
		return
	}
	s.sim = sim.Clone()
	s.seed()
}

func (s *Session) seed() {
	s.values = make(map[string]model.Value, len(s.sim.Fields))
	for _, f := range s.sim.Fields {
		if v, ok := f.SeedValue(); ok {
			s.values[f.Label] = v
		}
	}
	s.result = formula.Result{}
	s.state = StateSeeded
}

// SetValue records a user input for the field with the given label and
// recomputes the result. Unknown labels are stored as-is; they simply
// bind nothing.
func (s *Session) SetValue(label string, v model.Value) {
	s.values[label] = v
	s.Evaluate()
}

// Evaluate recomputes the result from the current values.
func (s *Session) Evaluate() formula.Result {
	s.result = formula.Evaluate(s.sim.Fields, s.values, s.sim.Formula)
	if s.result.Failed() {
		s.state = StateError
	} else {
		s.state = StateEvaluated
	}
	return s.result
}

// AddField appends a placeholder field ("Field N"). Per the authoring
// contract this does not seed a value or recompute; the caller updates
// values when the user actually edits the new field.
func (s *Session) AddField() {
	s.sim = s.sim.AddField()
}

// RemoveField drops the field at index and the value stored under its
// old label, then recomputes. The formula text is left untouched even
// if it still references the removed field; the orphaned identifier
// evaluates as 0 from then on.
func (s *Session) RemoveField(index int) bool {
	next, removed, ok := s.sim.RemoveField(index)
	if !ok {
		return false
	}
	s.sim = next
	delete(s.values, removed.Label)
	s.Evaluate()
	return true
}

// RenameField changes the label of the field at index. The value the
// user had entered under the old label is migrated to the new one, so
// renaming never loses input. Renaming to the same label is a no-op.
func (s *Session) RenameField(index int, label string) bool {
	next, old, ok := s.sim.RenameField(index, label)
	if !ok {
		return false
	}
	if old == label {
		return true
	}
	s.sim = next
	if v, ok := s.values[old]; ok {
		delete(s.values, old)
		s.values[label] = v
	}
	s.Evaluate()
	return true
}

// SetFormula replaces the formula text and recomputes.
func (s *Session) SetFormula(expr string) {
	s.sim = s.sim.WithFormula(expr)
	s.Evaluate()
}

// SetName replaces the display title. The result does not depend on it.
func (s *Session) SetName(name string) {
	s.sim = s.sim.WithName(name)
}

// Simulator returns a copy of the current simulator, including any
// authoring edits made through the session.
func (s *Session) Simulator() model.Simulator { return s.sim.Clone() }

// Values returns a copy of the current values map.
func (s *Session) Values() map[string]model.Value {
	out := make(map[string]model.Value, len(s.values))
	for k, v := range s.values {
		out[k] = v
	}
	return out
}

// Value returns the current value for a label.
func (s *Session) Value(label string) (model.Value, bool) {
	v, ok := s.values[label]
	return v, ok
}

// Result returns the last computed result, or the zero Result before
// the first evaluation.
func (s *Session) Result() formula.Result { return s.result }

// State returns the session's lifecycle state.
func (s *Session) State() State { return s.state }
