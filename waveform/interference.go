package waveform

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/martinha-ssv/NX-422-project/types"
)

// Carriers continuous sinusoids amps[k]·sin(2π freqs[k] t), one column per carrier
func Carriers(freqs, amps, t []float64) ([][]float64, error) {
	if len(freqs) != len(amps) {
		return nil, types.NewConfigError("amps", len(amps), types.ErrLengthMismatch)
	}
	out := make([][]float64, len(freqs))
	for k, f := range freqs {
		if !(f > 0) {
			return nil, types.NewConfigError("freq", f, types.ErrInvalidFrequency)
		}
		col := make([]float64, len(t))
		for i, ti := range t {
			col[i] = amps[k] * math.Sin(2*math.Pi*f*ti)
		}
		out[k] = col
	}
	return out, nil
}

// Interference superposition of the carriers at each instant
func Interference(freqs, amps, t []float64) ([]float64, error) {
	cols, err := Carriers(freqs, amps, t)
	if err != nil {
		return nil, err
	}
	sum := make([]float64, len(t))
	for _, col := range cols {
		floats.Add(sum, col)
	}
	return sum, nil
}

// Envelope beat envelope of two carriers, sqrt(a1²+a2²+2·a1·a2·cos(2π(f2-f1)t))
func Envelope(a1, a2, f1, f2 float64, t []float64) []float64 {
	out := make([]float64, len(t))
	df := f2 - f1
	for i, ti := range t {
		v := a1*a1 + a2*a2 + 2*a1*a2*math.Cos(2*math.Pi*df*ti)
		out[i] = math.Sqrt(math.Max(v, 0))
	}
	return out
}
