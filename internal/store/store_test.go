package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"quote-simulator/internal/model"
)

func openStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "simulators.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func sampleSimulator() model.Simulator {
	ten := 10.0
	return model.Simulator{
		Name:    "Heating quote",
		Formula: "puissance * duree",
		Fields: []model.Field{
			{Label: "Puissance", Kind: model.KindNumber, Default: &ten},
			{Label: "Durée", Kind: model.KindNumber},
			{Label: "Tarif Horaire", Kind: model.KindSlider, Min: 20, Max: 100, Step: 5},
			{Label: "Couches", Kind: model.KindSelect, Options: []string{"1", "2"}, DefaultOption: "2"},
		},
	}
}

func TestCreateAndGet(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()

	created, err := s.Create(ctx, sampleSimulator())
	if err != nil {
		t.Fatal(err)
	}
	if created.ID == 0 {
		t.Fatal("no id assigned")
	}

	got, err := s.Get(ctx, created.ID)
	if err != nil {
		t.Fatal(err)
	}
	if !got.Simulator.Equal(sampleSimulator()) {
		t.Errorf("loaded simulator differs:\n got %+v\nwant %+v", got.Simulator, sampleSimulator())
	}
	if got.UpdatedAt.IsZero() {
		t.Error("updated_at not set")
	}
}

func TestGetMissing(t *testing.T) {
	s := openStore(t)
	if _, err := s.Get(context.Background(), 42); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestUpdate(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()

	created, err := s.Create(ctx, sampleSimulator())
	if err != nil {
		t.Fatal(err)
	}

	next := sampleSimulator().WithFormula("puissance + duree")
	next, _, _ = next.RemoveField(3)
	if _, err := s.Update(ctx, created.ID, next); err != nil {
		t.Fatal(err)
	}

	got, err := s.Get(ctx, created.ID)
	if err != nil {
		t.Fatal(err)
	}
	if !got.Simulator.Equal(next) {
		t.Errorf("updated simulator differs:\n got %+v\nwant %+v", got.Simulator, next)
	}

	if _, err := s.Update(ctx, 9999, next); !errors.Is(err, ErrNotFound) {
		t.Fatalf("update of missing id: err = %v, want ErrNotFound", err)
	}
}

func TestListAndDelete(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()

	first, err := s.Create(ctx, sampleSimulator())
	if err != nil {
		t.Fatal(err)
	}
	if _, err := s.Create(ctx, sampleSimulator().WithName("Painting")); err != nil {
		t.Fatal(err)
	}

	stored, err := s.List(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(stored) != 2 {
		t.Fatalf("got %d simulators, want 2", len(stored))
	}
	for _, st := range stored {
		if len(st.Simulator.Fields) != 4 {
			t.Errorf("listing dropped fields: %+v", st.Simulator)
		}
	}

	if err := s.Delete(ctx, first.ID); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Get(ctx, first.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err after delete = %v, want ErrNotFound", err)
	}
	if err := s.Delete(ctx, first.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("second delete: err = %v, want ErrNotFound", err)
	}
}
