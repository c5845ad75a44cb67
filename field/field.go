package field

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// AMField normalized AM envelope, rows follow Grid.Y and columns Grid.X.
// Points outside the disk hold NaN.
type AMField struct {
	*mat.Dense
	Grid *Grid
	Peak float64 // un-normalized maximum (V)
}

// Masked reports whether the value at (i, j) is undefined
func (f *AMField) Masked(i, j int) bool { return f.Grid.Masked(i, j) }

// Sample nearest-grid value at a physical position
func (f *AMField) Sample(x, y float64) float64 {
	i, j := f.Grid.Index(x, y)
	return f.At(i, j)
}

// Values row-major copy including NaN markers
func (f *AMField) Values() []float64 {
	return append([]float64(nil), f.RawMatrix().Data...)
}

// Stats min, mean and max over unmasked points
func (f *AMField) Stats() (lo, mean, hi float64) {
	lo, hi = math.Inf(1), math.Inf(-1)
	var sum float64
	var n int
	for k, v := range f.RawMatrix().Data {
		if f.Grid.masked(k) {
			continue
		}
		lo, hi = math.Min(lo, v), math.Max(hi, v)
		sum += v
		n++
	}
	if n == 0 {
		return math.NaN(), math.NaN(), math.NaN()
	}
	return lo, sum / float64(n), hi
}

// Coverage fraction of unmasked points at or above level
func (f *AMField) Coverage(level float64) float64 {
	var n int
	for k, v := range f.RawMatrix().Data {
		if !f.Grid.masked(k) && v >= level {
			n++
		}
	}
	if f.Grid.inside == 0 {
		return 0
	}
	return float64(n) / float64(f.Grid.inside)
}

// Centroid AM-weighted centre of the unmasked field (m)
func (f *AMField) Centroid() (x, y float64) {
	var wsum float64
	n := f.Grid.N
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if f.Grid.Masked(i, j) {
				continue
			}
			v := f.At(i, j)
			x += v * f.Grid.X(j)
			y += v * f.Grid.Y(i)
			wsum += v
		}
	}
	if wsum == 0 {
		return 0, 0
	}
	return x / wsum, y / wsum
}
