// Package config loads simulator definitions from YAML preset files and
// lints them for the authoring mistakes the core deliberately tolerates.
package config

import (
	"fmt"
	"os"

	"quote-simulator/internal/model"

	"gopkg.in/yaml.v3"
)

// File is the on-disk shape of a simulator preset (YAML).
type File struct {
	Simulator SimulatorConfig `yaml:"simulator"`
}

type SimulatorConfig struct {
	Name    string        `yaml:"name"`
	Formula string        `yaml:"formula"`
	Fields  []FieldConfig `yaml:"fields"`
}

type FieldConfig struct {
	Label         string   `yaml:"label"`
	Kind          string   `yaml:"kind"`
	Default       *float64 `yaml:"default"`
	Min           float64  `yaml:"min"`
	Max           float64  `yaml:"max"`
	Step          float64  `yaml:"step"`
	Options       []string `yaml:"options"`
	DefaultOption string   `yaml:"default_option"`
}

// Load reads a preset file and converts it to the domain model. Loading
// does not lint: presets with authoring problems still load, the same
// way they still evaluate (to an error sentinel at worst).
func Load(path string) (model.Simulator, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return model.Simulator{}, err
	}
	var f File
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return model.Simulator{}, fmt.Errorf("parse %s: %w", path, err)
	}
	if f.Simulator.Name == "" && len(f.Simulator.Fields) == 0 && f.Simulator.Formula == "" {
		return model.Simulator{}, fmt.Errorf("%s: no simulator section", path)
	}
	return f.Simulator.ToModel(), nil
}

// ToModel converts the YAML shape to the domain model.
func (c SimulatorConfig) ToModel() model.Simulator {
	sim := model.Simulator{
		Name:    c.Name,
		Formula: c.Formula,
		Fields:  make([]model.Field, 0, len(c.Fields)),
	}
	for _, fc := range c.Fields {
		sim.Fields = append(sim.Fields, fc.ToModel())
	}
	return sim
}

func (fc FieldConfig) ToModel() model.Field {
	kind := model.Kind(fc.Kind)
	if !kind.Valid() {
		kind = model.KindNumber
	}
	f := model.Field{
		Label:         fc.Label,
		Kind:          kind,
		Min:           fc.Min,
		Max:           fc.Max,
		Step:          fc.Step,
		DefaultOption: fc.DefaultOption,
	}
	if fc.Default != nil {
		d := *fc.Default
		f.Default = &d
	}
	if fc.Options != nil {
		f.Options = append([]string(nil), fc.Options...)
	}
	return f
}

// FromModel converts a domain simulator back to the YAML shape, for
// writing presets out.
func FromModel(sim model.Simulator) File {
	c := SimulatorConfig{Name: sim.Name, Formula: sim.Formula}
	for _, f := range sim.Fields {
		fc := FieldConfig{
			Label:         f.Label,
			Kind:          string(f.Kind),
			Min:           f.Min,
			Max:           f.Max,
			Step:          f.Step,
			DefaultOption: f.DefaultOption,
		}
		if f.Default != nil {
			d := *f.Default
			fc.Default = &d
		}
		if f.Options != nil {
			fc.Options = append([]string(nil), f.Options...)
		}
		c.Fields = append(c.Fields, fc)
	}
	return File{Simulator: c}
}
