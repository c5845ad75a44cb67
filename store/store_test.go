package store

import (
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/martinha-ssv/NX-422-project/field"
	"github.com/martinha-ssv/NX-422-project/types"
)

func openTemp(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestSaveAndLoad(t *testing.T) {
	db := openTemp(t)
	first := Run{ID: "a", CreatedAt: 100, Scene: "P1 0 1 0\n", Pairs: 1, GridN: 11, Peak: 2.5, Coverage: 0.3}
	second := Run{CreatedAt: 200, Scene: "P1 90 1 0\n", Pairs: 1, GridN: 21, Peak: 1.5}
	if err := db.SaveRun(&first); err != nil {
		t.Fatalf("SaveRun failed: %v", err)
	}
	if err := db.SaveRun(&second); err != nil {
		t.Fatalf("SaveRun failed: %v", err)
	}
	if second.ID == "" {
		t.Fatalf("Expected generated id")
	}

	runs, err := db.Runs()
	if err != nil {
		t.Fatalf("Runs failed: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("Expected 2 runs, got %d", len(runs))
	}
	if runs[0].ID != second.ID || runs[1] != first {
		t.Errorf("Expected newest first, got %+v", runs)
	}

	got, err := db.Run("a")
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if *got != first {
		t.Errorf("Expected %+v, got %+v", first, *got)
	}
	if _, err := db.Run("missing"); !errors.Is(err, sql.ErrNoRows) {
		t.Errorf("Expected sql.ErrNoRows, got %v", err)
	}
	if err := db.SaveRun(&first); err == nil {
		t.Errorf("Expected duplicate id to fail")
	}
}

func TestNewRun(t *testing.T) {
	g, err := field.NewGrid(types.DefaultRn, 41)
	if err != nil {
		t.Fatalf("NewGrid failed: %v", err)
	}
	pairs := []types.ElectrodePair{types.NewElectrodePair(0, 1, 0.5, types.DefaultF1, types.DefaultF2, types.DefaultRn)}
	f, err := field.ComputeField(pairs, g, types.DefaultTotalI, types.DefaultMedium())
	if err != nil {
		t.Fatalf("ComputeField failed: %v", err)
	}
	r := NewRun("scene", 1, f)
	if r.ID == "" || r.CreatedAt == 0 {
		t.Errorf("Expected id and timestamp, got %+v", r)
	}
	if age := time.Since(r.Created()); age < 0 || age > time.Minute {
		t.Errorf("Expected a fresh creation time, got %v", r.Created())
	}
	if r.GridN != 41 || r.Peak != f.Peak {
		t.Errorf("Expected grid 41 and peak %g, got %d and %g", f.Peak, r.GridN, r.Peak)
	}
	if r.Coverage <= 0 || r.Coverage > 1 {
		t.Errorf("Expected coverage in (0,1], got %g", r.Coverage)
	}

	db := openTemp(t)
	if err := db.SaveRun(&r); err != nil {
		t.Fatalf("SaveRun failed: %v", err)
	}
	got, err := db.Run(r.ID)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if *got != r {
		t.Errorf("Expected %+v, got %+v", r, *got)
	}
}
