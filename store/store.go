// Package store keeps scene files and field summaries of past runs in SQLite.
package store

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/martinha-ssv/NX-422-project/field"
)

// Run summary of one field evaluation
type Run struct {
	ID        string  `db:"id"`
	CreatedAt int64   `db:"created_at"` // unix nanoseconds
	Scene     string  `db:"scene"`      // scene file text
	Pairs     int     `db:"pairs"`
	GridN     int     `db:"grid_n"`
	Peak      float64 `db:"peak"` // raw AM peak (V)
	Mean      float64 `db:"mean"` // mean normalized AM inside the disk
	Coverage  float64 `db:"coverage"`
	CentroidX float64 `db:"centroid_x"`
	CentroidY float64 `db:"centroid_y"`
}

// CoverageLevel normalized AM threshold used for Run.Coverage
var CoverageLevel = 0.5

// NewRun summarises f for a scene with the given number of pairs
func NewRun(scene string, pairs int, f *field.AMField) Run {
	_, mean, _ := f.Stats()
	x, y := f.Centroid()
	return Run{
		ID:        uuid.NewString(),
		CreatedAt: time.Now().UnixNano(),
		Scene:     scene,
		Pairs:     pairs,
		GridN:     f.Grid.N,
		Peak:      f.Peak,
		Mean:      mean,
		Coverage:  f.Coverage(CoverageLevel),
		CentroidX: x,
		CentroidY: y,
	}
}

// Created run timestamp
func (r Run) Created() time.Time { return time.Unix(0, r.CreatedAt) }

// DB SQLite run history
type DB struct {
	conn *sqlx.DB
}

// Open opens or creates the database at path
func Open(path string) (*DB, error) {
	conn, err := sqlx.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return db, nil
}

// Close closes the connection
func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		created_at INTEGER NOT NULL,
		scene TEXT NOT NULL,
		pairs INTEGER NOT NULL,
		grid_n INTEGER NOT NULL,
		peak REAL NOT NULL,
		mean REAL NOT NULL,
		coverage REAL NOT NULL,
		centroid_x REAL NOT NULL,
		centroid_y REAL NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_runs_created ON runs(created_at);
	`
	_, err := db.conn.Exec(schema)
	return err
}

// SaveRun inserts r, assigning an id when it has none
func (db *DB) SaveRun(r *Run) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	if r.CreatedAt == 0 {
		r.CreatedAt = time.Now().UnixNano()
	}
	_, err := db.conn.NamedExec(`INSERT INTO runs
		(id, created_at, scene, pairs, grid_n, peak, mean, coverage, centroid_x, centroid_y)
		VALUES (:id, :created_at, :scene, :pairs, :grid_n, :peak, :mean, :coverage, :centroid_x, :centroid_y)`, r)
	if err != nil {
		return fmt.Errorf("save run %s: %w", r.ID, err)
	}
	return nil
}

// Run loads one run by id
func (db *DB) Run(id string) (*Run, error) {
	var r Run
	if err := db.conn.Get(&r, "SELECT * FROM runs WHERE id = ?", id); err != nil {
		return nil, fmt.Errorf("run %s: %w", id, err)
	}
	return &r, nil
}

// Runs all runs, newest first
func (db *DB) Runs() ([]Run, error) {
	var runs []Run
	err := db.conn.Select(&runs, "SELECT * FROM runs ORDER BY created_at DESC, id")
	return runs, err
}
