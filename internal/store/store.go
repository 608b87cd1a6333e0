// Package store handles SQLite persistence of simulator definitions.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"quote-simulator/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

// ErrNotFound is returned when no simulator has the requested id.
var ErrNotFound = errors.New("simulator not found")

// Stored is a persisted simulator plus its storage identity.
type Stored struct {
	ID        int64
	UpdatedAt time.Time
	Simulator model.Simulator
}

// Store wraps SQLite access for simulator definitions.
type Store struct {
	db *sql.DB
}

// Open opens or creates the SQLite database and applies migrations.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS simulators (
			id INTEGER PRIMARY KEY,
			name TEXT NOT NULL,
			formula TEXT NOT NULL,
			created_at TEXT NOT NULL,
			updated_at TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS simulator_fields (
			simulator_id INTEGER NOT NULL,
			position INTEGER NOT NULL,
			label TEXT NOT NULL,
			kind TEXT NOT NULL,
			default_value REAL,
			min REAL NOT NULL,
			max REAL NOT NULL,
			step REAL NOT NULL,
			options TEXT NOT NULL,
			default_option TEXT NOT NULL,
			PRIMARY KEY (simulator_id, position)
		);`,
		`CREATE INDEX IF NOT EXISTS idx_simulators_updated_at ON simulators(updated_at);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// Create inserts a new simulator and returns its storage identity.
func (s *Store) Create(ctx context.Context, sim model.Simulator) (Stored, error) {
	now := time.Now().UTC()
	var id int64
	err := s.inTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx,
			`INSERT INTO simulators (name, formula, created_at, updated_at) VALUES (?, ?, ?, ?)`,
			sim.Name, sim.Formula, now.Format(time.RFC3339Nano), now.Format(time.RFC3339Nano))
		if err != nil {
			return err
		}
		id, err = res.LastInsertId()
		if err != nil {
			return err
		}
		return insertFields(ctx, tx, id, sim.Fields)
	})
	if err != nil {
		return Stored{}, err
	}
	return Stored{ID: id, UpdatedAt: now, Simulator: sim.Clone()}, nil
}

// Update replaces the simulator stored under id.
func (s *Store) Update(ctx context.Context, id int64, sim model.Simulator) (Stored, error) {
	now := time.Now().UTC()
	err := s.inTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx,
			`UPDATE simulators SET name = ?, formula = ?, updated_at = ? WHERE id = ?`,
			sim.Name, sim.Formula, now.Format(time.RFC3339Nano), id)
		if err != nil {
			return err
		}
		n, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if n == 0 {
			return ErrNotFound
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM simulator_fields WHERE simulator_id = ?`, id); err != nil {
			return err
		}
		return insertFields(ctx, tx, id, sim.Fields)
	})
	if err != nil {
		return Stored{}, err
	}
	return Stored{ID: id, UpdatedAt: now, Simulator: sim.Clone()}, nil
}

// Get loads one simulator by id.
func (s *Store) Get(ctx context.Context, id int64) (Stored, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, name, formula, updated_at FROM simulators WHERE id = ?`, id)
	st, err := scanSimulator(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Stored{}, ErrNotFound
		}
		return Stored{}, err
	}
	fields, err := s.loadFields(ctx, id)
	if err != nil {
		return Stored{}, err
	}
	st.Simulator.Fields = fields
	return st, nil
}

// List returns all simulators ordered by last update, newest first.
func (s *Store) List(ctx context.Context) ([]Stored, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, formula, updated_at FROM simulators ORDER BY updated_at DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Stored
	for rows.Next() {
		st, err := scanSimulator(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, st)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for i := range out {
		fields, err := s.loadFields(ctx, out[i].ID)
		if err != nil {
			return nil, err
		}
		out[i].Simulator.Fields = fields
	}
	return out, nil
}

// Delete removes a simulator and its fields.
func (s *Store) Delete(ctx context.Context, id int64) error {
	return s.inTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `DELETE FROM simulators WHERE id = ?`, id)
		if err != nil {
			return err
		}
		n, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if n == 0 {
			return ErrNotFound
		}
		_, err = tx.ExecContext(ctx, `DELETE FROM simulator_fields WHERE simulator_id = ?`, id)
		return err
	})
}

func (s *Store) inTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

func insertFields(ctx context.Context, tx *sql.Tx, id int64, fields []model.Field) error {
	if len(fields) == 0 {
		return nil
	}
	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO simulator_fields (simulator_id, position, label, kind, default_value, min, max, step, options, default_option)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for pos, f := range fields {
		opts, err := json.Marshal(f.Options)
		if err != nil {
			return err
		}
		var def sql.NullFloat64
		if f.Default != nil {
			def = sql.NullFloat64{Float64: *f.Default, Valid: true}
		}
		if _, err := stmt.ExecContext(ctx, id, pos, f.Label, string(f.Kind), def,
			f.Min, f.Max, f.Step, string(opts), f.DefaultOption); err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) loadFields(ctx context.Context, id int64) ([]model.Field, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT label, kind, default_value, min, max, step, options, default_option
		 FROM simulator_fields WHERE simulator_id = ? ORDER BY position`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Field
	for rows.Next() {
		var (
			f    model.Field
			kind string
			def  sql.NullFloat64
			opts string
		)
		if err := rows.Scan(&f.Label, &kind, &def, &f.Min, &f.Max, &f.Step, &opts, &f.DefaultOption); err != nil {
			return nil, err
		}
		f.Kind = model.Kind(kind)
		if def.Valid {
			d := def.Float64
			f.Default = &d
		}
		if opts != "" && opts != "null" {
			if err := json.Unmarshal([]byte(opts), &f.Options); err != nil {
				return nil, fmt.Errorf("field %q: decode options: %w", f.Label, err)
			}
		}
		out = append(out, f)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSimulator(row rowScanner) (Stored, error) {
	var (
		st Stored
		ts string
	)
	if err := row.Scan(&st.ID, &st.Simulator.Name, &st.Simulator.Formula, &ts); err != nil {
		return Stored{}, err
	}
	if t, err := time.Parse(time.RFC3339Nano, ts); err == nil {
		st.UpdatedAt = t
	}
	return st, nil
}
