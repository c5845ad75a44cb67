package types

import (
	"errors"
	"math"
	"testing"
)

// TestCurrentsSplit every steer value splits the pair budget without loss
func TestCurrentsSplit(t *testing.T) {
	p := NewElectrodePair(30, 0.4, 0, DefaultF1, DefaultF2, DefaultRn)
	for steer := -1.0; steer <= 1.0; steer += 0.05 {
		p.Steer = steer
		i1, i2 := p.Currents(2e-3)
		total := 2e-3 * 0.4
		if math.Abs(i1+i2-total) > 1e-18 {
			t.Errorf("steer=%g: expected I1+I2=%g, got %g", steer, total, i1+i2)
		}
		if i1 < 0 || i2 < 0 {
			t.Errorf("steer=%g: expected non-negative currents, got %g, %g", steer, i1, i2)
		}
	}
}

func TestCurrentsExtremes(t *testing.T) {
	p := NewElectrodePair(0, 1, 1, DefaultF1, DefaultF2, DefaultRn)
	if i1, i2 := p.Currents(1); i1 != 1 || i2 != 0 {
		t.Errorf("steer=+1: expected (1, 0), got (%g, %g)", i1, i2)
	}
	p.Steer = -1
	if i1, i2 := p.Currents(1); i1 != 0 || i2 != 1 {
		t.Errorf("steer=-1: expected (0, 1), got (%g, %g)", i1, i2)
	}
	p.Steer = 0
	if i1, i2 := p.Currents(1); i1 != 0.5 || i2 != 0.5 {
		t.Errorf("steer=0: expected (0.5, 0.5), got (%g, %g)", i1, i2)
	}
}

// TestPositions poles sit on the ring, 2Rn apart
func TestPositions(t *testing.T) {
	for _, deg := range []float64{0, 17, 90, 120, 240, 359} {
		p := NewElectrodePair(deg, 1, 0, DefaultF1, DefaultF2, DefaultRn)
		e1, e2 := p.Positions()
		if r := math.Hypot(e1.X, e1.Y); math.Abs(r-DefaultRn) > 1e-15 {
			t.Errorf("angle=%g: pole 1 radius %g, expected %g", deg, r, DefaultRn)
		}
		if r := math.Hypot(e2.X, e2.Y); math.Abs(r-DefaultRn) > 1e-15 {
			t.Errorf("angle=%g: pole 2 radius %g, expected %g", deg, r, DefaultRn)
		}
		if d := e1.Dist(e2.X, e2.Y); math.Abs(d-2*DefaultRn) > 1e-15 {
			t.Errorf("angle=%g: pole distance %g, expected %g", deg, d, 2*DefaultRn)
		}
	}
}

func TestNormalizeWeights(t *testing.T) {
	pairs := []ElectrodePair{
		NewElectrodePair(0, 1, 0, DefaultF1, DefaultF2, DefaultRn),
		NewElectrodePair(120, 2, 0, DefaultF1, DefaultF2, DefaultRn),
		NewElectrodePair(240, 1, 0, DefaultF1, DefaultF2, DefaultRn),
	}
	if err := NormalizeWeights(pairs); err != nil {
		t.Fatalf("NormalizeWeights failed: %v", err)
	}
	expected := []float64{0.25, 0.5, 0.25}
	for i, p := range pairs {
		if p.Weight != expected[i] {
			t.Errorf("pair %d: expected weight %g, got %g", i, expected[i], p.Weight)
		}
	}
	zero := []ElectrodePair{{Weight: 0}}
	if err := NormalizeWeights(zero); !errors.Is(err, ErrZeroWeights) {
		t.Errorf("Expected ErrZeroWeights, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	good := NewElectrodePair(0, 1, 0, DefaultF1, DefaultF2, DefaultRn)
	if err := good.Validate(); err != nil {
		t.Fatalf("Expected valid pair, got %v", err)
	}
	bad := good
	bad.F2 = 0
	if err := bad.Validate(); !errors.Is(err, ErrInvalidFrequency) {
		t.Errorf("Expected ErrInvalidFrequency, got %v", err)
	}
	bad = good
	bad.Angle = math.NaN()
	if err := bad.Validate(); !errors.Is(err, ErrInvalidPair) {
		t.Errorf("Expected ErrInvalidPair for NaN angle, got %v", err)
	}
	bad = good
	bad.Steer = 1.5
	err := bad.Validate()
	var ce *ConfigError
	if !errors.As(err, &ce) || ce.Field != "steer" {
		t.Errorf("Expected steer ConfigError, got %v", err)
	}
}

func TestSetters(t *testing.T) {
	p := NewElectrodePair(0, 1, 0, DefaultF1, DefaultF2, DefaultRn)
	p.SetSteer(3)
	if p.Steer != 1 {
		t.Errorf("Expected steer clamped to 1, got %g", p.Steer)
	}
	if err := p.SetWeight(-1); !errors.Is(err, ErrInvalidPair) {
		t.Errorf("Expected ErrInvalidPair, got %v", err)
	}
	p.SetAngle(180)
	if math.Abs(p.Angle-math.Pi) > 1e-15 {
		t.Errorf("Expected angle π, got %g", p.Angle)
	}
	if p.BeatFrequency() != 2e3 {
		t.Errorf("Expected beat 2 kHz, got %g", p.BeatFrequency())
	}
}
