package waveform

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/martinha-ssv/NX-422-project/types"
)

// Param scalar broadcast to every electrode or one value per electrode
type Param struct {
	values []float64
	scalar bool
}

// Scalar same value for every electrode
func Scalar(v float64) Param { return Param{values: []float64{v}, scalar: true} }

// PerElectrode one value per electrode
func PerElectrode(v ...float64) Param {
	return Param{values: append([]float64(nil), v...)}
}

// IsScalar reports whether p broadcasts
func (p Param) IsScalar() bool { return p.scalar }

func (p Param) String() string {
	if p.scalar {
		return fmt.Sprint(p.values[0])
	}
	return fmt.Sprint(p.values)
}

// expand broadcasts scalars, per-electrode values must have length n
func (p Param) expand(name string, n int) ([]float64, error) {
	if p.scalar {
		out := make([]float64, n)
		for k := range out {
			out[k] = p.values[0]
		}
		return out, nil
	}
	if len(p.values) != n {
		return nil, types.NewConfigError(name, fmt.Sprintf("%d values for %d electrodes", len(p.values), n), types.ErrLengthMismatch)
	}
	return p.values, nil
}

// MultiBurst waveforms of several electrodes on a shared time axis
type MultiBurst struct {
	Signals *mat.Dense // samples × electrodes
	T       []float64  // shared sample times (s)
}

// MultiElectrodeWaveform burst-gated carriers for n electrodes.
//
// The shared time axis holds floor(max(TD)*max(f_s)) samples over
// [startT, startT+max(TD)]. Gating, repetition period and carrier are applied
// per electrode. With n = 1 and scalar parameters the result equals
// ElectrodeWaveform sample for sample.
func MultiElectrodeWaveform(a, td, prf, bd, carrierF, fs Param, n int, startT float64) (*MultiBurst, error) {
	if n < 1 {
		return nil, types.NewConfigError("num_electrodes", n, types.ErrInvalidWaveform)
	}
	if math.IsNaN(startT) || math.IsInf(startT, 0) {
		return nil, types.NewConfigError("start_t", startT, types.ErrInvalidWaveform)
	}
	named := []struct {
		name string
		p    Param
	}{{"A", a}, {"TD", td}, {"PRF", prf}, {"BD", bd}, {"carrier_f", carrierF}, {"f_s", fs}}
	cols := make([][]float64, len(named))
	for k, np := range named {
		if np.p.values == nil {
			return nil, types.NewConfigError(np.name, "missing", types.ErrInvalidWaveform)
		}
		v, err := np.p.expand(np.name, n)
		if err != nil {
			return nil, err
		}
		cols[k] = v
	}
	as, tds, prfs, bds, fcs, fss := cols[0], cols[1], cols[2], cols[3], cols[4], cols[5]
	for e := 0; e < n; e++ {
		if err := validate(as[e], tds[e], prfs[e], bds[e], fcs[e], fss[e]); err != nil {
			return nil, fmt.Errorf("electrode %d: %w", e, err)
		}
	}
	maxTD, maxFs := floats.Max(tds), floats.Max(fss)
	samples := sampleCount(maxTD, maxFs)
	if samples < 1 {
		return nil, types.NewConfigError("TD*f_s", maxTD*maxFs, types.ErrNoSamples)
	}
	t := timeAxis(startT, maxTD, samples)
	signals := mat.NewDense(samples, n, nil)
	for e := 0; e < n; e++ {
		prp := 1 / prfs[e]
		for k, tk := range t {
			signals.Set(k, e, sample(as[e], prp, bds[e], fcs[e], tk))
		}
	}
	return &MultiBurst{Signals: signals, T: t}, nil
}

// Electrodes number of columns
func (m *MultiBurst) Electrodes() int {
	_, c := m.Signals.Dims()
	return c
}

// Electrode single electrode view, the time axis is shared
func (m *MultiBurst) Electrode(e int) *Burst {
	return &Burst{Signal: mat.Col(nil, e, m.Signals), T: m.T}
}

// Sum total injected current per sample
func (m *MultiBurst) Sum() []float64 {
	r, _ := m.Signals.Dims()
	out := make([]float64, r)
	for k := range out {
		out[k] = floats.Sum(m.Signals.RawRowView(k))
	}
	return out
}
