package waveform

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/martinha-ssv/NX-422-project/maths"
	"github.com/martinha-ssv/NX-422-project/types"
)

// Burst single electrode current time series
type Burst struct {
	Signal []float64 // current (A)
	T      []float64 // sample times (s)
}

// ElectrodeWaveform burst-gated sinusoid of peak a and carrier carrierF.
//
// N = floor(td*fs) samples are spread evenly over [startT, startT+td], both ends
// included. Within every pulse repetition period 1/prf the carrier restarts at
// phase zero and is emitted for the first bd seconds, the rest of the period is 0.
func ElectrodeWaveform(a, td, prf, bd, carrierF, fs, startT float64) (*Burst, error) {
	if err := validate(a, td, prf, bd, carrierF, fs); err != nil {
		return nil, err
	}
	if math.IsNaN(startT) || math.IsInf(startT, 0) {
		return nil, types.NewConfigError("start_t", startT, types.ErrInvalidWaveform)
	}
	n := sampleCount(td, fs)
	if n < 1 {
		return nil, types.NewConfigError("TD*f_s", td*fs, types.ErrNoSamples)
	}
	t := timeAxis(startT, td, n)
	signal := make([]float64, n)
	prp := 1 / prf
	for k, tk := range t {
		signal[k] = sample(a, prp, bd, carrierF, tk)
	}
	return &Burst{Signal: signal, T: t}, nil
}

// sample one gated carrier value, shared by the single and multi-electrode paths
func sample(a, prp, bd, f, t float64) float64 {
	local := maths.FloorMod(t, prp)
	if local >= bd {
		return 0
	}
	return a * math.Sin(2*math.Pi*f*local)
}

func sampleCount(td, fs float64) int {
	return int(math.Floor(td * fs))
}

// timeAxis n evenly spaced instants from start to start+td inclusive
func timeAxis(start, td float64, n int) []float64 {
	if n == 1 {
		return []float64{start}
	}
	return floats.Span(make([]float64, n), start, start+td)
}

func validate(a, td, prf, bd, carrierF, fs float64) error {
	switch {
	case math.IsNaN(a) || math.IsInf(a, 0):
		return types.NewConfigError("A", a, types.ErrInvalidWaveform)
	case !(td > 0) || math.IsInf(td, 0):
		return types.NewConfigError("TD", td, types.ErrInvalidWaveform)
	case !(prf > 0) || math.IsInf(prf, 0):
		return types.NewConfigError("PRF", prf, types.ErrInvalidFrequency)
	case !(bd >= 0) || math.IsInf(bd, 0):
		return types.NewConfigError("BD", bd, types.ErrInvalidWaveform)
	case !(carrierF > 0) || math.IsInf(carrierF, 0):
		return types.NewConfigError("carrier_f", carrierF, types.ErrInvalidFrequency)
	case !(fs > 0) || math.IsInf(fs, 0):
		return types.NewConfigError("f_s", fs, types.ErrInvalidFrequency)
	}
	return nil
}

// Len number of samples
func (b *Burst) Len() int { return len(b.Signal) }

// Peak largest absolute current
func (b *Burst) Peak() float64 {
	if len(b.Signal) == 0 {
		return 0
	}
	return math.Max(floats.Max(b.Signal), -floats.Min(b.Signal))
}

// RMS root mean square current over the whole series
func (b *Burst) RMS() float64 {
	if len(b.Signal) == 0 {
		return 0
	}
	return floats.Norm(b.Signal, 2) / math.Sqrt(float64(len(b.Signal)))
}

// DutyCycle fraction of each repetition period spent emitting
func DutyCycle(prf, bd float64) float64 {
	return math.Min(1, bd*prf)
}
