// Package storage persists run summaries and computed profiles in a
// SQLite database.
package storage

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

// Store wraps a SQLite connection for run persistence.
type Store struct {
	conn *sqlx.DB
}

// Open opens or creates a SQLite database at the given path. Use
// ":memory:" for an ephemeral store.
func Open(path string) (*Store, error) {
	conn, err := sqlx.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	s := &Store{conn: conn}
	if err := s.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

func (s *Store) Close() error {
	return s.conn.Close()
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		created_at INTEGER NOT NULL,
		preset TEXT NOT NULL,
		grid_size INTEGER NOT NULL,
		profile_points INTEGER NOT NULL,
		slices INTEGER NOT NULL,
		q_axis REAL NOT NULL,
		q_95 REAL NOT NULL,
		ip REAL NOT NULL,
		beta_normal REAL NOT NULL,
		li_3 REAL NOT NULL,
		volume REAL NOT NULL
	);

	CREATE TABLE IF NOT EXISTS profiles (
		run_id TEXT NOT NULL,
		name TEXT NOT NULL,
		samples_json TEXT NOT NULL,
		PRIMARY KEY (run_id, name)
	);

	CREATE INDEX IF NOT EXISTS idx_runs_created ON runs(created_at);
	`
	_, err := s.conn.Exec(schema)
	return err
}

// RunRecord is one persisted flux-surface run summary.
type RunRecord struct {
	ID            string  `db:"id"`
	CreatedAt     int64   `db:"created_at"`
	Preset        string  `db:"preset"`
	GridSize      int     `db:"grid_size"`
	ProfilePoints int     `db:"profile_points"`
	Slices        int     `db:"slices"`
	QAxis         float64 `db:"q_axis"`
	Q95           float64 `db:"q_95"`
	Ip            float64 `db:"ip"`
	BetaNormal    float64 `db:"beta_normal"`
	Li3           float64 `db:"li_3"`
	Volume        float64 `db:"volume"`
}

// Time returns the record's creation time.
func (r *RunRecord) Time() time.Time {
	return time.Unix(r.CreatedAt, 0)
}

// SaveRun inserts a run summary together with its named 1D profiles.
// A missing ID or timestamp is filled in.
func (s *Store) SaveRun(rec *RunRecord, profiles map[string][]float64) error {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.CreatedAt == 0 {
		rec.CreatedAt = time.Now().Unix()
	}

	tx, err := s.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.NamedExec(`INSERT INTO runs
		(id, created_at, preset, grid_size, profile_points, slices,
		 q_axis, q_95, ip, beta_normal, li_3, volume)
		VALUES (:id, :created_at, :preset, :grid_size, :profile_points, :slices,
		 :q_axis, :q_95, :ip, :beta_normal, :li_3, :volume)`, rec)
	if err != nil {
		return fmt.Errorf("insert run %s: %w", rec.ID, err)
	}

	for name, samples := range profiles {
		data, err := json.Marshal(samples)
		if err != nil {
			return err
		}
		_, err = tx.Exec(
			"INSERT INTO profiles (run_id, name, samples_json) VALUES (?, ?, ?)",
			rec.ID, name, string(data),
		)
		if err != nil {
			return fmt.Errorf("insert profile %s: %w", name, err)
		}
	}

	return tx.Commit()
}

// ListRuns returns all run summaries, newest first.
func (s *Store) ListRuns() ([]RunRecord, error) {
	var runs []RunRecord
	err := s.conn.Select(&runs, "SELECT * FROM runs ORDER BY created_at DESC, id")
	return runs, err
}

// GetRun retrieves one run summary by ID.
func (s *Store) GetRun(id string) (*RunRecord, error) {
	var rec RunRecord
	if err := s.conn.Get(&rec, "SELECT * FROM runs WHERE id = ?", id); err != nil {
		return nil, err
	}
	return &rec, nil
}

// Profile retrieves one stored profile of a run.
func (s *Store) Profile(runID, name string) ([]float64, error) {
	var data string
	err := s.conn.Get(&data,
		"SELECT samples_json FROM profiles WHERE run_id = ? AND name = ?",
		runID, name,
	)
	if err != nil {
		return nil, err
	}
	var samples []float64
	if err := json.Unmarshal([]byte(data), &samples); err != nil {
		return nil, err
	}
	return samples, nil
}
