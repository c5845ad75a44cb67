package waveform

import (
	"errors"
	"math"
	"testing"

	"github.com/martinha-ssv/NX-422-project/types"
)

func TestInterference(t *testing.T) {
	tm := []float64{0, 1e-5, 2.5e-5, 1e-4}
	sum, err := Interference([]float64{20e3, 22e3}, []float64{1e-3, 1e-3}, tm)
	if err != nil {
		t.Fatalf("Interference failed: %v", err)
	}
	for i, ti := range tm {
		expected := 1e-3*math.Sin(2*math.Pi*20e3*ti) + 1e-3*math.Sin(2*math.Pi*22e3*ti)
		if math.Abs(sum[i]-expected) > 1e-15 {
			t.Errorf("t=%g: expected %g, got %g", ti, expected, sum[i])
		}
	}
	if _, err := Interference([]float64{20e3}, []float64{1, 2}, tm); !errors.Is(err, types.ErrLengthMismatch) {
		t.Errorf("Expected ErrLengthMismatch, got %v", err)
	}
}

// TestEnvelope peaks at a1+a2 and dips to |a1-a2| every half beat period
func TestEnvelope(t *testing.T) {
	beat := 1 / 2e3
	env := Envelope(2e-3, 1e-3, 20e3, 22e3, []float64{0, beat / 2, beat})
	if math.Abs(env[0]-3e-3) > 1e-15 {
		t.Errorf("Expected 3e-3 at t=0, got %g", env[0])
	}
	if math.Abs(env[1]-1e-3) > 1e-12 {
		t.Errorf("Expected 1e-3 at half beat, got %g", env[1])
	}
	if math.Abs(env[2]-3e-3) > 1e-12 {
		t.Errorf("Expected 3e-3 at full beat, got %g", env[2])
	}
}
