package models

import (
	"quote-simulator/internal/model"
)

// ToModel converts the request payload to the domain model. Unknown
// field kinds fall back to "number" rather than failing; a bad kind is
// an authoring problem lint reports, not a transport error.
func (p SimulatorPayload) ToModel() model.Simulator {
	sim := model.Simulator{
		Name:    p.Name,
		Formula: p.Formula,
		Fields:  make([]model.Field, 0, len(p.Fields)),
	}
	for _, fp := range p.Fields {
		sim.Fields = append(sim.Fields, fp.ToModel())
	}
	return sim
}

func (fp FieldPayload) ToModel() model.Field {
	kind := model.Kind(fp.Kind)
	if !kind.Valid() {
		kind = model.KindNumber
	}
	f := model.Field{
		Label:         fp.Label,
		Kind:          kind,
		Min:           fp.Min,
		Max:           fp.Max,
		Step:          fp.Step,
		DefaultOption: fp.DefaultOption,
	}
	if fp.Default != nil {
		d := *fp.Default
		f.Default = &d
	}
	if fp.Options != nil {
		f.Options = append([]string(nil), fp.Options...)
	}
	return f
}

// PayloadFromModel converts a domain simulator into the response shape.
func PayloadFromModel(sim model.Simulator) SimulatorPayload {
	p := SimulatorPayload{Name: sim.Name, Formula: sim.Formula}
	for _, f := range sim.Fields {
		fp := FieldPayload{
			Label:         f.Label,
			Kind:          string(f.Kind),
			Min:           f.Min,
			Max:           f.Max,
			Step:          f.Step,
			DefaultOption: f.DefaultOption,
		}
		if f.Default != nil {
			d := *f.Default
			fp.Default = &d
		}
		if f.Options != nil {
			fp.Options = append([]string(nil), f.Options...)
		}
		p.Fields = append(p.Fields, fp)
	}
	return p
}

// ValuesToModel converts the loose JSON values map (numbers or strings)
// to tagged values. Entries of unsupported types are dropped; the
// corresponding fields then evaluate with their missing-value default.
func ValuesToModel(raw map[string]any) map[string]model.Value {
	out := make(map[string]model.Value, len(raw))
	for label, v := range raw {
		mv, err := model.ValueFromAny(v)
		if err != nil {
			continue
		}
		out[label] = mv
	}
	return out
}

// ValuesFromModel converts tagged values back to the JSON echo shape.
func ValuesFromModel(values map[string]model.Value) map[string]any {
	out := make(map[string]any, len(values))
	for label, v := range values {
		if s, ok := v.Text(); ok {
			out[label] = s
			continue
		}
		n, _ := v.Number()
		out[label] = n
	}
	return out
}
