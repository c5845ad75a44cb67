package types

import (
	"fmt"
	"math"
)

// Point location in the cross-section plane (m)
type Point struct {
	X, Y float64
}

// Dist euclidean distance to (x, y)
func (p Point) Dist(x, y float64) float64 {
	return math.Hypot(x-p.X, y-p.Y)
}

// ElectrodePair two diametrically opposite contacts on the cuff ring
type ElectrodePair struct {
	Label  string  // display name
	Angle  float64 // pole 1 position on the ring (rad)
	Weight float64 // share of the total current
	Steer  float64 // current split between poles, -1 pole 2 only, +1 pole 1 only
	F1     float64 // pole 1 carrier (Hz)
	F2     float64 // pole 2 carrier (Hz)
	Rn     float64 // ring radius (m)
}

// NewElectrodePair creates a pair at angleDeg on a ring of radius rn
func NewElectrodePair(angleDeg, weight, steer, f1, f2, rn float64) ElectrodePair {
	return ElectrodePair{
		Angle:  Deg2Rad(angleDeg),
		Weight: weight,
		Steer:  steer,
		F1:     f1,
		F2:     f2,
		Rn:     rn,
	}
}

// Positions returns pole 1 and pole 2, pole 2 always at Angle+π
func (p ElectrodePair) Positions() (e1, e2 Point) {
	s, c := math.Sincos(p.Angle)
	e1 = Point{X: p.Rn * c, Y: p.Rn * s}
	e2 = Point{X: -e1.X, Y: -e1.Y}
	return e1, e2
}

// Currents splits totalI*Weight between the poles, I1+I2 equals the pair budget
func (p ElectrodePair) Currents(totalI float64) (i1, i2 float64) {
	total := totalI * p.Weight
	alpha := (p.Steer + 1) / 2
	i1 = alpha * total
	i2 = total - i1
	return i1, i2
}

// BeatFrequency |F2-F1|, F1 when both carriers coincide
func (p ElectrodePair) BeatFrequency() float64 {
	if df := math.Abs(p.F2 - p.F1); df != 0 {
		return df
	}
	return p.F1
}

// Omegas angular carrier frequencies
func (p ElectrodePair) Omegas() (w1, w2 float64) {
	return 2 * math.Pi * p.F1, 2 * math.Pi * p.F2
}

// SetAngle sets the ring position in degrees
func (p *ElectrodePair) SetAngle(deg float64) { p.Angle = Deg2Rad(deg) }

// SetSteer clamps into [-1, 1]
func (p *ElectrodePair) SetSteer(steer float64) {
	p.Steer = math.Max(-1, math.Min(1, steer))
}

// SetWeight rejects negative weights
func (p *ElectrodePair) SetWeight(weight float64) error {
	if weight < 0 || math.IsNaN(weight) {
		return NewConfigError("weight", weight, ErrInvalidPair)
	}
	p.Weight = weight
	return nil
}

// Validate checks ranges of a single pair
func (p ElectrodePair) Validate() error {
	switch {
	case math.IsNaN(p.Angle) || math.IsInf(p.Angle, 0):
		return NewConfigError("angle", p.Angle, ErrInvalidPair)
	case !(p.F1 > 0) || math.IsInf(p.F1, 0):
		return NewConfigError("f1", p.F1, ErrInvalidFrequency)
	case !(p.F2 > 0) || math.IsInf(p.F2, 0):
		return NewConfigError("f2", p.F2, ErrInvalidFrequency)
	case !(p.Steer >= -1 && p.Steer <= 1):
		return NewConfigError("steer", p.Steer, ErrInvalidPair)
	case !(p.Weight >= 0) || math.IsInf(p.Weight, 0):
		return NewConfigError("weight", p.Weight, ErrInvalidPair)
	case !(p.Rn > 0) || math.IsInf(p.Rn, 0):
		return NewConfigError("rn", p.Rn, ErrInvalidPair)
	}
	return nil
}

func (p ElectrodePair) String() string {
	return fmt.Sprintf("%s(angle=%.1f° weight=%.3g steer=%.3g f=%g/%g Hz)",
		p.Label, Rad2Deg(p.Angle), p.Weight, p.Steer, p.F1, p.F2)
}

// NormalizeWeights scales weights in place so they sum to 1
func NormalizeWeights(pairs []ElectrodePair) error {
	var sum float64
	for _, p := range pairs {
		sum += p.Weight
	}
	if sum == 0 || math.IsNaN(sum) {
		return ErrZeroWeights
	}
	for i := range pairs {
		pairs[i].Weight /= sum
	}
	return nil
}
