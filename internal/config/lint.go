package config

import (
	"fmt"

	"quote-simulator/internal/formula"
	"quote-simulator/internal/model"
)

// Problem is one authoring-time warning. The core never rejects a
// simulator over these; they exist so the authoring UI can show them
// before the gaps surface as evaluator errors or silently colliding
// identifiers.
type Problem struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	// Field is the index of the offending field, or -1 for
	// simulator-level problems.
	Field int `json:"field"`
}

func (p Problem) String() string {
	if p.Field >= 0 {
		return fmt.Sprintf("%s (field %d): %s", p.Code, p.Field, p.Message)
	}
	return fmt.Sprintf("%s: %s", p.Code, p.Message)
}

// Lint checks a simulator for the known authoring inconsistencies:
// empty or colliding labels, invalid slider bounds, selects without
// options, and formulas that do not parse.
func Lint(sim model.Simulator) []Problem {
	var out []Problem

	seen := map[string]int{} // sanitized identifier -> first field index
	for i, f := range sim.Fields {
		if f.Label == "" {
			out = append(out, Problem{Code: "EMPTY_LABEL", Field: i,
				Message: "field has no label"})
			continue
		}
		id := formula.Sanitize(f.Label)
		if id == "" {
			out = append(out, Problem{Code: "EMPTY_IDENTIFIER", Field: i,
				Message: fmt.Sprintf("label %q contains no usable characters", f.Label)})
		} else if first, dup := seen[id]; dup {
			out = append(out, Problem{Code: "DUPLICATE_IDENTIFIER", Field: i,
				Message: fmt.Sprintf("label %q collides with field %d on identifier %q; the later field's value wins", f.Label, first, id)})
		} else {
			seen[id] = i
		}

		switch f.Kind {
		case model.KindSlider:
			if f.Min > f.Max {
				out = append(out, Problem{Code: "SLIDER_BOUNDS", Field: i,
					Message: fmt.Sprintf("min %g is greater than max %g", f.Min, f.Max)})
			}
			if f.Step <= 0 {
				out = append(out, Problem{Code: "SLIDER_STEP", Field: i,
					Message: fmt.Sprintf("step must be > 0, got %g", f.Step)})
			}
		case model.KindSelect:
			if len(f.Options) == 0 {
				out = append(out, Problem{Code: "NO_OPTIONS", Field: i,
					Message: "select field has no options"})
			} else if f.DefaultOption != "" {
				found := false
				for _, opt := range f.Options {
					if opt == f.DefaultOption {
						found = true
						break
					}
				}
				if !found {
					out = append(out, Problem{Code: "DEFAULT_OPTION_UNKNOWN", Field: i,
						Message: fmt.Sprintf("default option %q is not among the options", f.DefaultOption)})
				}
			}
		}
	}

	if err := formula.Check(sim.Formula); err != nil {
		out = append(out, Problem{Code: "FORMULA_PARSE", Field: -1, Message: err.Error()})
	}
	return out
}
