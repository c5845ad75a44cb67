package debug

import (
	"encoding/json"
	"io"
	"math"

	"github.com/martinha-ssv/NX-422-project/field"
	"github.com/martinha-ssv/NX-422-project/types"
	"github.com/martinha-ssv/NX-422-project/waveform"
)

// PairInfo electrode pair as shown to the viewer
type PairInfo struct {
	Label  string     `json:"label"`
	Angle  float64    `json:"angle"` // degrees
	Weight float64    `json:"weight"`
	Steer  float64    `json:"steer"`
	F1     float64    `json:"f1"`
	F2     float64    `json:"f2"`
	E1     [2]float64 `json:"e1"` // pole 1 (mm)
	E2     [2]float64 `json:"e2"` // pole 2 (mm)
}

// Record snapshot of one evaluation
type Record struct {
	Pairs   []PairInfo   `json:"pairs"`
	X       []float64    `json:"x"`       // column coordinates (mm)
	Y       []float64    `json:"y"`       // row coordinates (mm)
	Field   [][]*float64 `json:"field"`   // normalized AM, null outside the disk
	Peak    float64      `json:"peak"`    // raw AM maximum (V)
	Labels  []string     `json:"labels"`  // electrode names
	Time    []float64    `json:"time"`    // sample times (s)
	Signals [][]float64  `json:"signals"` // one series per electrode (A)
	Total   []float64    `json:"total"`   // summed electrode current (A)
	Beats   [][]float64  `json:"beats"`   // beat envelope per pair (A)
}

// SetPairs records the electrode layout
func (list *Record) SetPairs(pairs []types.ElectrodePair) {
	list.Pairs = list.Pairs[:0]
	for _, p := range pairs {
		e1, e2 := p.Positions()
		list.Pairs = append(list.Pairs, PairInfo{
			Label:  p.Label,
			Angle:  types.Rad2Deg(p.Angle),
			Weight: p.Weight,
			Steer:  p.Steer,
			F1:     p.F1,
			F2:     p.F2,
			E1:     [2]float64{e1.X * 1e3, e1.Y * 1e3},
			E2:     [2]float64{e2.X * 1e3, e2.Y * 1e3},
		})
	}
}

// SetField records the AM envelope, NaN markers become null
func (list *Record) SetField(f *field.AMField) {
	g := f.Grid
	list.X = scale(g.Xs(), 1e3)
	list.Y = scale(g.Ys(), 1e3)
	list.Peak = f.Peak
	list.Field = make([][]*float64, g.N)
	for i := range list.Field {
		row := make([]*float64, g.N)
		for j := range row {
			if v := f.At(i, j); !math.IsNaN(v) {
				row[j] = &v
			}
		}
		list.Field[i] = row
	}
}

// SetWaveforms records the electrode currents
func (list *Record) SetWaveforms(m *waveform.MultiBurst, labels []string) {
	list.Time = m.T
	list.Labels = labels
	list.Signals = make([][]float64, m.Electrodes())
	for e := range list.Signals {
		list.Signals[e] = m.Electrode(e).Signal
	}
	list.Total = m.Sum()
}

// SetEnvelopes records the beat envelope of each pair's pole currents on the
// waveform time axis, SetWaveforms must run first
func (list *Record) SetEnvelopes(pairs []types.ElectrodePair, totalI float64) {
	list.Beats = make([][]float64, len(pairs))
	for k, p := range pairs {
		i1, i2 := p.Currents(totalI)
		list.Beats[k] = waveform.Envelope(i1, i2, p.F1, p.F2, list.Time)
	}
}

// Render JSON snapshot
func (list *Record) Render(w io.Writer) error { return json.NewEncoder(w).Encode(list) }

func scale(v []float64, k float64) []float64 {
	for i := range v {
		v[i] *= k
	}
	return v
}
