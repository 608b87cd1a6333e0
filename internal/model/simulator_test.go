package model

import "testing"

func sampleSimulator() Simulator {
	ten := 10.0
	return Simulator{
		Name:    "Quote",
		Formula: "puissance * duree",
		Fields: []Field{
			{Label: "Puissance", Kind: KindNumber, Default: &ten},
			{Label: "Durée", Kind: KindNumber},
		},
	}
}

func TestAddField(t *testing.T) {
	sim := sampleSimulator()
	next := sim.AddField()

	if len(next.Fields) != 3 {
		t.Fatalf("got %d fields, want 3", len(next.Fields))
	}
	added := next.Fields[2]
	if added.Label != "Field 3" {
		t.Errorf("label = %q, want \"Field 3\"", added.Label)
	}
	if added.Kind != KindNumber {
		t.Errorf("kind = %q, want number", added.Kind)
	}
	if added.Default == nil || *added.Default != 0 {
		t.Errorf("default = %v, want 0", added.Default)
	}
	if len(sim.Fields) != 2 {
		t.Errorf("original simulator mutated: %d fields", len(sim.Fields))
	}
}

func TestRemoveField(t *testing.T) {
	sim := sampleSimulator()
	next, removed, ok := sim.RemoveField(0)
	if !ok {
		t.Fatal("expected ok")
	}
	if removed.Label != "Puissance" {
		t.Errorf("removed %q, want Puissance", removed.Label)
	}
	if len(next.Fields) != 1 || next.Fields[0].Label != "Durée" {
		t.Errorf("unexpected remaining fields: %+v", next.Fields)
	}
	// Formula text is never touched by field removal.
	if next.Formula != sim.Formula {
		t.Errorf("formula changed to %q", next.Formula)
	}
	if len(sim.Fields) != 2 {
		t.Error("original simulator mutated")
	}

	if _, _, ok := sim.RemoveField(5); ok {
		t.Error("out-of-range removal succeeded")
	}
}

func TestRenameField(t *testing.T) {
	sim := sampleSimulator()
	next, old, ok := sim.RenameField(0, "Surface m2")
	if !ok || old != "Puissance" {
		t.Fatalf("ok=%v old=%q", ok, old)
	}
	if next.Fields[0].Label != "Surface m2" {
		t.Errorf("label = %q", next.Fields[0].Label)
	}
	if sim.Fields[0].Label != "Puissance" {
		t.Error("original simulator mutated")
	}
	if _, _, ok := sim.RenameField(-1, "x"); ok {
		t.Error("out-of-range rename succeeded")
	}
}

func TestEqualAndClone(t *testing.T) {
	sim := sampleSimulator()
	clone := sim.Clone()
	if !sim.Equal(clone) {
		t.Fatal("clone not equal to original")
	}

	// Deep copy: mutating the clone must not leak back.
	*clone.Fields[0].Default = 99
	if *sim.Fields[0].Default == 99 {
		t.Fatal("clone shares Default pointer with original")
	}

	if sim.Equal(sim.WithFormula("x")) {
		t.Error("formula change not detected")
	}
	if sim.Equal(sim.WithName("Other")) {
		t.Error("name change not detected")
	}
	if sim.Equal(sim.AddField()) {
		t.Error("field count change not detected")
	}
	renamed, _, _ := sim.RenameField(1, "Heures")
	if sim.Equal(renamed) {
		t.Error("label change not detected")
	}
}
