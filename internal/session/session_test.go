package session

import (
	"strings"
	"testing"

	"quote-simulator/internal/formula"
	"quote-simulator/internal/model"
)

func quoteSimulator() model.Simulator {
	ten, two := 10.0, 2.0
	return model.Simulator{
		Name:    "Quote",
		Formula: "Puissance * Durée",
		Fields: []model.Field{
			{Label: "Puissance", Kind: model.KindNumber, Default: &ten},
			{Label: "Durée", Kind: model.KindNumber, Default: &two},
		},
	}
}

func resultNumber(t *testing.T, s *Session) float64 {
	t.Helper()
	r := s.Result()
	if r.Failed() {
		t.Fatalf("evaluation failed: %s", r.Err)
	}
	n, ok := r.Value.Number()
	if !ok {
		t.Fatalf("expected numeric result, got %q", r.Display())
	}
	return n
}

func TestLifecycle(t *testing.T) {
	s := New()
	if s.State() != StateUninitialized {
		t.Fatalf("state = %q", s.State())
	}

	s.Apply(quoteSimulator())
	if s.State() != StateSeeded {
		t.Fatalf("state after Apply = %q", s.State())
	}
	if r := s.Result(); r != (formula.Result{}) {
		t.Fatalf("result before first evaluation = %+v, want zero", r)
	}

	s.SetValue("Durée", model.NumberValue(3))
	if s.State() != StateEvaluated {
		t.Fatalf("state after SetValue = %q", s.State())
	}
	if got := resultNumber(t, s); got != 30 {
		t.Fatalf("result = %v, want 30", got)
	}
}

func TestSeededEvaluation(t *testing.T) {
	s := NewWithSimulator(quoteSimulator())
	s.Evaluate()
	if got := resultNumber(t, s); got != 20 {
		t.Fatalf("seeded result = %v, want 20", got)
	}
}

func TestSliderSeedsFromMin(t *testing.T) {
	s := NewWithSimulator(model.Simulator{
		Name:    "Rates",
		Formula: "tarif_horaire",
		Fields: []model.Field{
			{Label: "Tarif Horaire", Kind: model.KindSlider, Min: 20, Max: 100, Step: 5},
		},
	})
	v, ok := s.Value("Tarif Horaire")
	if !ok {
		t.Fatal("slider value not seeded")
	}
	if n, _ := v.Number(); n != 20 {
		t.Fatalf("seeded value = %v, want min 20", n)
	}
}

func TestDivisionFailureIsContained(t *testing.T) {
	sim := quoteSimulator().WithFormula("100 / Puissance")
	s := NewWithSimulator(sim)
	s.SetValue("Puissance", model.NumberValue(0))

	if s.State() != StateError {
		t.Fatalf("state = %q, want %q", s.State(), StateError)
	}
	r := s.Result()
	if !r.Failed() {
		t.Fatal("expected error result")
	}
	if !strings.HasPrefix(r.Display(), "error: ") {
		t.Fatalf("Display() = %q, want renderable error marker", r.Display())
	}

	// Recovery: a non-zero value evaluates again.
	s.SetValue("Puissance", model.NumberValue(4))
	if got := resultNumber(t, s); got != 25 {
		t.Fatalf("result after recovery = %v, want 25", got)
	}
}

func TestRenamePreservesValue(t *testing.T) {
	s := NewWithSimulator(model.Simulator{
		Name:    "Paint",
		Formula: "surface_m2",
		Fields:  []model.Field{{Label: "Surface", Kind: model.KindNumber}},
	})
	s.SetValue("Surface", model.NumberValue(45))

	if !s.RenameField(0, "Surface m2") {
		t.Fatal("rename failed")
	}
	if _, ok := s.Value("Surface"); ok {
		t.Error("old label still present in values")
	}
	v, ok := s.Value("Surface m2")
	if !ok {
		t.Fatal("value lost in rename")
	}
	if n, _ := v.Number(); n != 45 {
		t.Fatalf("migrated value = %v, want 45", n)
	}
	if got := resultNumber(t, s); got != 45 {
		t.Fatalf("result = %v, want 45", got)
	}
}

func TestRemoveFieldLeavesFormulaAlone(t *testing.T) {
	s := NewWithSimulator(quoteSimulator())
	s.Evaluate()

	if !s.RemoveField(1) {
		t.Fatal("remove failed")
	}
	sim := s.Simulator()
	if sim.Formula != "Puissance * Durée" {
		t.Fatalf("formula changed to %q", sim.Formula)
	}
	// The orphaned identifier now counts as 0.
	if got := resultNumber(t, s); got != 0 {
		t.Fatalf("result = %v, want 0", got)
	}
	if _, ok := s.Value("Durée"); ok {
		t.Error("removed field's value still present")
	}
}

// Two labels sanitizing to the same identifier bind one variable; the
// later field's value is the one the formula sees.
func TestIdentifierCollision(t *testing.T) {
	s := NewWithSimulator(model.Simulator{
		Name:    "Rates",
		Formula: "taux",
		Fields: []model.Field{
			{Label: "Taux (%)", Kind: model.KindNumber},
			{Label: "Taux %", Kind: model.KindNumber},
		},
	})
	s.SetValue("Taux (%)", model.NumberValue(10))
	s.SetValue("Taux %", model.NumberValue(20))

	if got := resultNumber(t, s); got != 20 {
		t.Fatalf("result = %v, want the second field's 20", got)
	}
}

func TestAddFieldDoesNotRecompute(t *testing.T) {
	s := NewWithSimulator(quoteSimulator())
	s.Evaluate()
	before := s.Result()

	s.AddField()
	sim := s.Simulator()
	if len(sim.Fields) != 3 || sim.Fields[2].Label != "Field 3" {
		t.Fatalf("unexpected fields: %+v", sim.Fields)
	}
	if _, ok := s.Value("Field 3"); ok {
		t.Error("placeholder field seeded a value")
	}
	if s.Result() != before {
		t.Error("AddField recomputed the result")
	}
}

func TestApplyReseedsOnChange(t *testing.T) {
	sim := quoteSimulator()
	s := NewWithSimulator(sim)
	s.SetValue("Puissance", model.NumberValue(99))

	// Same content: values survive.
	s.Apply(quoteSimulator())
	if v, _ := s.Value("Puissance"); v != model.NumberValue(99) {
		t.Fatalf("identical config re-seeded: %v", v)
	}

	// Different content: values reset to defaults.
	s.Apply(sim.WithName("Other"))
	if s.State() != StateSeeded {
		t.Fatalf("state = %q, want %q", s.State(), StateSeeded)
	}
	if v, _ := s.Value("Puissance"); v != model.NumberValue(10) {
		t.Fatalf("value = %v, want reset default 10", v)
	}
}

func TestSetFormulaRecomputes(t *testing.T) {
	s := NewWithSimulator(quoteSimulator())
	s.SetFormula("Puissance + Durée")
	if got := resultNumber(t, s); got != 12 {
		t.Fatalf("result = %v, want 12", got)
	}
	s.SetFormula("oops +")
	if s.State() != StateError {
		t.Fatalf("state = %q, want %q", s.State(), StateError)
	}
}
