// Package render draws fields and waveforms to images with gonum/plot.
package render

import (
	"fmt"
	"image/color"
	"io"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/martinha-ssv/NX-422-project/field"
	"github.com/martinha-ssv/NX-422-project/types"
	"github.com/martinha-ssv/NX-422-project/waveform"
)

// MaxPoints samples per plotted waveform
var MaxPoints = 4000

// fieldGrid exposes an AMField as plotter.GridXYZ in millimetres
type fieldGrid struct{ f *field.AMField }

func (g fieldGrid) Dims() (c, r int)   { return g.f.Grid.N, g.f.Grid.N }
func (g fieldGrid) Z(c, r int) float64 { return g.f.At(r, c) }
func (g fieldGrid) X(c int) float64    { return g.f.Grid.X(c) * 1e3 }
func (g fieldGrid) Y(r int) float64    { return g.f.Grid.Y(r) * 1e3 }

// Field heat map of the AM envelope with the nerve outline and electrode poles
func Field(f *field.AMField, pairs []types.ElectrodePair) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = fmt.Sprintf("Interferential field (peak %.3g V)", f.Peak)
	p.X.Label.Text = "x (mm)"
	p.Y.Label.Text = "y (mm)"

	hm := plotter.NewHeatMap(fieldGrid{f}, palette.Heat(64, 1))
	hm.Min, hm.Max = 0, 1
	hm.NaN = color.Transparent
	p.Add(hm)

	outline, err := plotter.NewLine(circle(f.Grid.Rn*1e3, 256))
	if err != nil {
		return nil, err
	}
	outline.Color = color.Black
	p.Add(outline)

	if len(pairs) > 0 {
		poles := make(plotter.XYs, 0, 2*len(pairs))
		for _, pair := range pairs {
			e1, e2 := pair.Positions()
			poles = append(poles, plotter.XY{X: e1.X * 1e3, Y: e1.Y * 1e3}, plotter.XY{X: e2.X * 1e3, Y: e2.Y * 1e3})
		}
		sc, err := plotter.NewScatter(poles)
		if err != nil {
			return nil, err
		}
		sc.GlyphStyle.Shape = draw.CircleGlyph{}
		sc.GlyphStyle.Radius = vg.Points(4)
		p.Add(sc)
	}
	return p, nil
}

// Waveforms one line per electrode against time in milliseconds
func Waveforms(m *waveform.MultiBurst, labels []string) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = "Electrode currents"
	p.X.Label.Text = "t (ms)"
	p.Y.Label.Text = "I (A)"
	lines := make([]interface{}, 0, 2*m.Electrodes())
	for e := 0; e < m.Electrodes(); e++ {
		name := fmt.Sprintf("E%d", e+1)
		if e < len(labels) {
			name = labels[e]
		}
		lines = append(lines, name, series(m.T, m.Electrode(e).Signal))
	}
	if err := plotutil.AddLines(p, lines...); err != nil {
		return nil, err
	}
	p.Legend.Top = true
	return p, nil
}

// PNG writes p as a PNG image
func PNG(w io.Writer, p *plot.Plot, width, height vg.Length) error {
	c := vgimg.New(width, height)
	p.Draw(draw.New(c))
	_, err := vgimg.PngCanvas{Canvas: c}.WriteTo(w)
	return err
}

func series(t, v []float64) plotter.XYs {
	stride := 1
	if MaxPoints > 0 && len(t) > MaxPoints {
		stride = (len(t) + MaxPoints - 1) / MaxPoints
	}
	xys := make(plotter.XYs, 0, len(t)/stride+1)
	for k := 0; k < len(t); k += stride {
		xys = append(xys, plotter.XY{X: t[k] * 1e3, Y: v[k]})
	}
	return xys
}

func circle(r float64, n int) plotter.XYs {
	xys := make(plotter.XYs, n+1)
	for k := range xys {
		s, c := math.Sincos(2 * math.Pi * float64(k) / float64(n))
		xys[k] = plotter.XY{X: r * c, Y: r * s}
	}
	return xys
}

// FieldPNG writes a square heat map of f with the electrode poles marked
func FieldPNG(w io.Writer, f *field.AMField, pairs []types.ElectrodePair) error {
	p, err := Field(f, pairs)
	if err != nil {
		return err
	}
	return PNG(w, p, 6*vg.Inch, 6*vg.Inch)
}

// WaveformPNG writes the electrode currents of m, one labelled line each
func WaveformPNG(w io.Writer, m *waveform.MultiBurst, labels []string) error {
	p, err := Waveforms(m, labels)
	if err != nil {
		return err
	}
	return PNG(w, p, 10*vg.Inch, 4*vg.Inch)
}
