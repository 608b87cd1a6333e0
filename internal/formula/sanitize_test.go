package formula

import (
	"regexp"
	"testing"
)

func TestSanitize(t *testing.T) {
	cases := []struct {
		label string
		want  string
	}{
		{"Puissance", "puissance"},
		{"Durée", "duree"},
		{"Tarif Horaire", "tarif_horaire"},
		{"Surface m2", "surface_m2"},
		{"Taux (%)", "taux"},
		{"Taux %", "taux"},
		{"Prix €/m2", "prix_m2"},
		{"  Multiple   internal   spaces  ", "multiple_internal_spaces"},
		{"MiXeD CaSe", "mixed_case"},
		{"déjà_vu", "deja_vu"},
		{"123", "123"},
		{"a-b", "ab"},
		{"%%%", ""},
		{"", ""},
	}
	for _, tc := range cases {
		t.Run(tc.label, func(t *testing.T) {
			if got := Sanitize(tc.label); got != tc.want {
				t.Errorf("Sanitize(%q) = %q, want %q", tc.label, got, tc.want)
			}
		})
	}
}

func TestSanitizeWellFormed(t *testing.T) {
	valid := regexp.MustCompile(`^[a-z0-9_]*$`)
	labels := []string{
		"Puissance", "Durée", "Tarif Horaire (€)", "Ünïcodé Läbel", "x", "_",
		"42 réponses", "  trailing  ", "!!!", "Поле", "日本語ラベル",
	}
	for _, label := range labels {
		got := Sanitize(label)
		if !valid.MatchString(got) {
			t.Errorf("Sanitize(%q) = %q contains invalid characters", label, got)
		}
	}
}

// Two distinct labels may map to the same identifier. That collision is
// deliberate, documented behavior; the eval tests assert which field wins.
func TestSanitizeCollision(t *testing.T) {
	a, b := Sanitize("Taux (%)"), Sanitize("Taux %")
	if a != b {
		t.Fatalf("expected identical identifiers, got %q and %q", a, b)
	}
	if a != "taux" {
		t.Fatalf("expected %q, got %q", "taux", a)
	}
}
