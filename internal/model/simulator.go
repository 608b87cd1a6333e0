package model

import "fmt"

// Simulator is the authored unit: a named, ordered set of fields plus
// one formula referencing those fields. Field order is both the display
// order and the evaluation binding order.
//
// Authoring operations are pure transformations returning a new
// Simulator; sessions decide whether to re-seed by comparing values
// with Equal, not by reference identity.
type Simulator struct {
	Name    string
	Fields  []Field
	Formula string
}

// Clone returns a deep copy.
func (s Simulator) Clone() Simulator {
	out := s
	if s.Fields != nil {
		out.Fields = make([]Field, len(s.Fields))
		for i, f := range s.Fields {
			out.Fields[i] = f.Clone()
		}
	}
	return out
}

// Equal compares two simulators by content.
func (s Simulator) Equal(other Simulator) bool {
	if s.Name != other.Name || s.Formula != other.Formula {
		return false
	}
	if len(s.Fields) != len(other.Fields) {
		return false
	}
	for i := range s.Fields {
		if !s.Fields[i].Equal(other.Fields[i]) {
			return false
		}
	}
	return true
}

// AddField appends a numeric field with a generated placeholder label
// ("Field N") and a zero default.
func (s Simulator) AddField() Simulator {
	zero := 0.0
	return s.WithField(Field{
		Label:   fmt.Sprintf("Field %d", len(s.Fields)+1),
		Kind:    KindNumber,
		Default: &zero,
	})
}

// WithField appends f.
func (s Simulator) WithField(f Field) Simulator {
	out := s.Clone()
	out.Fields = append(out.Fields, f.Clone())
	return out
}

// RemoveField drops the field at index and returns it alongside the new
// simulator. Sibling fields are not renumbered. ok is false when index
// is out of range, in which case the simulator is returned unchanged.
func (s Simulator) RemoveField(index int) (Simulator, Field, bool) {
	if index < 0 || index >= len(s.Fields) {
		return s, Field{}, false
	}
	removed := s.Fields[index]
	out := s.Clone()
	out.Fields = append(out.Fields[:index], out.Fields[index+1:]...)
	return out, removed, true
}

// RenameField sets the label of the field at index and returns the old
// label. ok is false when index is out of range.
func (s Simulator) RenameField(index int, label string) (Simulator, string, bool) {
	if index < 0 || index >= len(s.Fields) {
		return s, "", false
	}
	old := s.Fields[index].Label
	out := s.Clone()
	out.Fields[index].Label = label
	return out, old, true
}

// WithFormula replaces the formula text.
func (s Simulator) WithFormula(expr string) Simulator {
	out := s.Clone()
	out.Formula = expr
	return out
}

// WithName replaces the display title.
func (s Simulator) WithName(name string) Simulator {
	out := s.Clone()
	out.Name = name
	return out
}

// FieldByLabel returns the first field with the given label.
func (s Simulator) FieldByLabel(label string) (Field, bool) {
	for _, f := range s.Fields {
		if f.Label == label {
			return f, true
		}
	}
	return Field{}, false
}
