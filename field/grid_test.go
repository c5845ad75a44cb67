package field

import (
	"errors"
	"math"
	"testing"

	"github.com/martinha-ssv/NX-422-project/types"
)

// TestGridAxes axes span the extent and mirror exactly around zero
func TestGridAxes(t *testing.T) {
	for _, n := range []int{2, 7, 10, 101} {
		g, err := NewGrid(1e-3, n)
		if err != nil {
			t.Fatalf("NewGrid(%d) failed: %v", n, err)
		}
		if g.X(0) != -1e-3 || g.X(n-1) != 1e-3 {
			t.Errorf("n=%d: expected axis [-1e-3, 1e-3], got [%g, %g]", n, g.X(0), g.X(n-1))
		}
		for i := 0; i < n; i++ {
			if g.Y(i) != -g.Y(n-1-i) {
				t.Errorf("n=%d: axis not mirrored at %d: %g vs %g", n, i, g.Y(i), g.Y(n-1-i))
			}
		}
	}
}

func TestGridMask(t *testing.T) {
	g, err := NewGrid(1, 201)
	if err != nil {
		t.Fatalf("NewGrid failed: %v", err)
	}
	if g.Masked(100, 100) {
		t.Errorf("Expected centre unmasked")
	}
	if !g.Masked(0, 0) {
		t.Errorf("Expected corner masked")
	}
	// unmasked share approaches π/4
	ratio := float64(g.Inside()) / float64(g.Len())
	if math.Abs(ratio-math.Pi/4) > 0.01 {
		t.Errorf("Expected inside ratio ≈ %g, got %g", math.Pi/4, ratio)
	}
}

func TestGridInvalid(t *testing.T) {
	if _, err := NewGrid(1e-3, 1); !errors.Is(err, types.ErrInvalidGrid) {
		t.Errorf("Expected ErrInvalidGrid, got %v", err)
	}
	if _, err := NewGrid(0, 10); !errors.Is(err, types.ErrInvalidGrid) {
		t.Errorf("Expected ErrInvalidGrid, got %v", err)
	}
}

func TestGridIndex(t *testing.T) {
	g, err := NewGrid(1, 11)
	if err != nil {
		t.Fatalf("NewGrid failed: %v", err)
	}
	if i, j := g.Index(0, 0); i != 5 || j != 5 {
		t.Errorf("Expected (5,5), got (%d,%d)", i, j)
	}
	if i, j := g.Index(0.79, -5); i != 0 || j != 9 {
		t.Errorf("Expected (0,9), got (%d,%d)", i, j)
	}
}

func TestFieldSampleAndStats(t *testing.T) {
	g, err := NewGrid(types.DefaultRn, 61)
	if err != nil {
		t.Fatalf("NewGrid failed: %v", err)
	}
	f, err := ComputeField(threePairs(), g, types.DefaultTotalI, types.DefaultMedium())
	if err != nil {
		t.Fatalf("ComputeField failed: %v", err)
	}
	if v := f.Sample(0, 0); v != f.At(30, 30) {
		t.Errorf("Expected centre sample %g, got %g", f.At(30, 30), v)
	}
	if v := f.Sample(types.DefaultRn, types.DefaultRn); !math.IsNaN(v) {
		t.Errorf("Expected NaN at corner, got %g", v)
	}
	lo, mean, hi := f.Stats()
	if hi != 1 || lo < 0 || mean <= lo || mean >= hi {
		t.Errorf("Unexpected stats lo=%g mean=%g hi=%g", lo, mean, hi)
	}
	if c := f.Coverage(0); c != 1 {
		t.Errorf("Expected full coverage at level 0, got %g", c)
	}
	if c := f.Coverage(1); c <= 0 || c >= 1 {
		t.Errorf("Expected partial coverage at level 1, got %g", c)
	}
}
