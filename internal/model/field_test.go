package model

import (
	"encoding/json"
	"testing"
)

func TestSeedValue(t *testing.T) {
	five := 5.0
	cases := []struct {
		name     string
		field    Field
		want     Value
		wantOK   bool
	}{
		{
			name:   "number with default",
			field:  Field{Label: "Puissance", Kind: KindNumber, Default: &five},
			want:   NumberValue(5),
			wantOK: true,
		},
		{
			name:   "number without default seeds 0",
			field:  Field{Label: "Puissance", Kind: KindNumber},
			want:   NumberValue(0),
			wantOK: true,
		},
		{
			name:   "slider without default seeds min",
			field:  Field{Label: "Tarif Horaire", Kind: KindSlider, Min: 20, Max: 100, Step: 5},
			want:   NumberValue(20),
			wantOK: true,
		},
		{
			name:   "slider with default",
			field:  Field{Label: "Tarif Horaire", Kind: KindSlider, Min: 20, Max: 100, Step: 5, Default: &five},
			want:   NumberValue(5),
			wantOK: true,
		},
		{
			name:   "select with default among options",
			field:  Field{Label: "Couches", Kind: KindSelect, Options: []string{"1", "2"}, DefaultOption: "2"},
			want:   TextValue("2"),
			wantOK: true,
		},
		{
			name:   "select with default not among options seeds nothing",
			field:  Field{Label: "Couches", Kind: KindSelect, Options: []string{"1", "2"}, DefaultOption: "9"},
			wantOK: false,
		},
		{
			name:   "select without default seeds nothing",
			field:  Field{Label: "Couches", Kind: KindSelect, Options: []string{"1", "2"}},
			wantOK: false,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := tc.field.SeedValue()
			if ok != tc.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tc.wantOK)
			}
			if ok && got != tc.want {
				t.Errorf("SeedValue() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestValueOperand(t *testing.T) {
	cases := []struct {
		v    Value
		want float64
	}{
		{NumberValue(12.5), 12.5},
		{TextValue("2"), 2},
		{TextValue(" 3.5 "), 3.5},
		{TextValue("standard"), 0},
		{TextValue(""), 0},
	}
	for _, tc := range cases {
		if got := tc.v.Operand(); got != tc.want {
			t.Errorf("Operand(%v) = %v, want %v", tc.v, got, tc.want)
		}
	}
}

func TestValueJSON(t *testing.T) {
	raw, err := json.Marshal(map[string]Value{"a": NumberValue(10), "b": TextValue("x")})
	if err != nil {
		t.Fatal(err)
	}
	var back map[string]Value
	if err := json.Unmarshal(raw, &back); err != nil {
		t.Fatal(err)
	}
	if n, ok := back["a"].Number(); !ok || n != 10 {
		t.Errorf("a = %v, want number 10", back["a"])
	}
	if s, ok := back["b"].Text(); !ok || s != "x" {
		t.Errorf("b = %v, want text x", back["b"])
	}
}

func TestValueDisplay(t *testing.T) {
	if got := NumberValue(20).Display(); got != "20" {
		t.Errorf("Display(20) = %q", got)
	}
	if got := NumberValue(2.5).Display(); got != "2.5" {
		t.Errorf("Display(2.5) = %q", got)
	}
	if got := TextValue("standard").Display(); got != "standard" {
		t.Errorf("Display(standard) = %q", got)
	}
}
