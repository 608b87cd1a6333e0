package model

// Kind selects how a field is rendered and what kind of value it holds.
// Keep these values stable; they appear in stored configs and the API.
type Kind string

const (
	KindNumber Kind = "number"
	KindSlider Kind = "slider"
	KindSelect Kind = "select"
)

// Valid reports whether k is one of the known field kinds.
func (k Kind) Valid() bool {
	switch k {
	case KindNumber, KindSlider, KindSelect:
		return true
	}
	return false
}

// Field is one user-configurable simulator input.
//
// Label is both the display name and the lookup key into a session's
// values map. Uniqueness of labels (and of the identifiers derived from
// them) is expected but not enforced here; colliding labels are an
// authoring problem surfaced by lint, not a structural error.
//
// Default is a pointer so "no default" is distinguishable from an
// explicit default of 0 — a slider with no default seeds from Min.
type Field struct {
	Label   string
	Kind    Kind
	Default *float64

	// Slider bounds. Meaningful only for KindSlider.
	Min  float64
	Max  float64
	Step float64

	// Select choices. Meaningful only for KindSelect.
	Options       []string
	DefaultOption string
}

// SeedValue returns the value a fresh session starts with for this
// field. ok is false when the field seeds nothing (a select with no
// usable default).
func (f Field) SeedValue() (Value, bool) {
	switch f.Kind {
	case KindSlider:
		if f.Default != nil {
			return NumberValue(*f.Default), true
		}
		// Min doubles as the slider's effective default.
		return NumberValue(f.Min), true
	case KindSelect:
		if f.DefaultOption == "" {
			return Value{}, false
		}
		for _, opt := range f.Options {
			if opt == f.DefaultOption {
				return TextValue(opt), true
			}
		}
		// A default that is not among the options is ignored.
		return Value{}, false
	default:
		if f.Default != nil {
			return NumberValue(*f.Default), true
		}
		return NumberValue(0), true
	}
}

// Clone returns a deep copy of the field.
func (f Field) Clone() Field {
	out := f
	if f.Default != nil {
		d := *f.Default
		out.Default = &d
	}
	if f.Options != nil {
		out.Options = append([]string(nil), f.Options...)
	}
	return out
}

// Equal compares two fields by content.
func (f Field) Equal(other Field) bool {
	if f.Label != other.Label || f.Kind != other.Kind {
		return false
	}
	if (f.Default == nil) != (other.Default == nil) {
		return false
	}
	if f.Default != nil && *f.Default != *other.Default {
		return false
	}
	if f.Min != other.Min || f.Max != other.Max || f.Step != other.Step {
		return false
	}
	if f.DefaultOption != other.DefaultOption {
		return false
	}
	if len(f.Options) != len(other.Options) {
		return false
	}
	for i := range f.Options {
		if f.Options[i] != other.Options[i] {
			return false
		}
	}
	return true
}
