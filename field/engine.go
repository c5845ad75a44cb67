package field

import (
	"fmt"
	"math"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/martinha-ssv/NX-422-project/maths"
	"github.com/martinha-ssv/NX-422-project/types"
)

// Engine evaluates the AM envelope of a set of electrode pairs.
// The zero value computes sequentially.
type Engine struct {
	Workers int // concurrent pair evaluations, <= 1 runs in the caller
}

// ComputeField sequential Engine.Compute
func ComputeField(pairs []types.ElectrodePair, g *Grid, totalI float64, m types.Medium) (*AMField, error) {
	var e Engine
	return e.Compute(pairs, g, totalI, m)
}

// Compute sums 2·min(|V1|, |V2|) over all pairs, masks the exterior with NaN and
// normalizes by the largest unmasked value.
//
// Pair contributions are accumulated in slice order whatever the worker count,
// so sequential and concurrent runs are bit-identical.
func (e *Engine) Compute(pairs []types.ElectrodePair, g *Grid, totalI float64, m types.Medium) (*AMField, error) {
	if err := validate(pairs, g, totalI, m); err != nil {
		return nil, err
	}
	sum := make([]float64, g.Len())
	if e.Workers <= 1 || len(pairs) == 1 {
		buf := make([]float64, g.Len())
		for _, p := range pairs {
			contribution(p, g, totalI, m, buf)
			floats.Add(sum, buf)
		}
	} else {
		bufs := make([][]float64, len(pairs))
		var eg errgroup.Group
		eg.SetLimit(e.Workers)
		for k := range pairs {
			k := k
			bufs[k] = make([]float64, g.Len())
			eg.Go(func() error {
				contribution(pairs[k], g, totalI, m, bufs[k])
				return nil
			})
		}
		if err := eg.Wait(); err != nil {
			return nil, err
		}
		for _, buf := range bufs {
			floats.Add(sum, buf)
		}
	}
	return normalize(sum, g)
}

// contribution writes one pair's AM amplitude into dst, masked points get 0
func contribution(p types.ElectrodePair, g *Grid, totalI float64, m types.Medium, dst []float64) {
	e1, e2 := p.Positions()
	i1, i2 := p.Currents(totalI)
	w1, w2 := p.Omegas()
	n := g.N
	for i, y := range g.ys {
		for j, x := range g.xs {
			k := i*n + j
			if g.masked(k) {
				dst[k] = 0
				continue
			}
			a1 := maths.PointMagnitude(i1, e1.Dist(x, y), w1, m)
			a2 := maths.PointMagnitude(i2, e2.Dist(x, y), w2, m)
			dst[k] = 2 * math.Min(a1, a2)
		}
	}
}

func normalize(sum []float64, g *Grid) (*AMField, error) {
	if g.inside == 0 {
		return nil, types.ErrAllMasked
	}
	peak := math.Inf(-1)
	for k, v := range sum {
		if !g.masked(k) && v > peak {
			peak = v
		}
	}
	if !(peak > 0) || math.IsInf(peak, 1) {
		return nil, fmt.Errorf("peak %g: %w", peak, types.ErrZeroField)
	}
	for k := range sum {
		if g.masked(k) {
			sum[k] = math.NaN()
			continue
		}
		sum[k] /= peak
	}
	return &AMField{Dense: mat.NewDense(g.N, g.N, sum), Grid: g, Peak: peak}, nil
}

func validate(pairs []types.ElectrodePair, g *Grid, totalI float64, m types.Medium) error {
	if len(pairs) == 0 {
		return types.ErrNoPairs
	}
	if g == nil {
		return types.NewConfigError("grid", nil, types.ErrInvalidGrid)
	}
	if math.IsNaN(totalI) || math.IsInf(totalI, 0) || totalI < 0 {
		return types.NewConfigError("total_I", totalI, types.ErrInvalidPair)
	}
	if err := m.Validate(); err != nil {
		return err
	}
	for k, p := range pairs {
		if err := p.Validate(); err != nil {
			return fmt.Errorf("pair %d: %w", k, err)
		}
		if p.Rn != g.Rn {
			return fmt.Errorf("pair %d: %w", k, types.NewConfigError("rn", p.Rn, types.ErrInvalidPair))
		}
	}
	return nil
}

// PoleAmplitudes raw |V| of each pole of one pair, zero outside the disk
func PoleAmplitudes(p types.ElectrodePair, g *Grid, totalI float64, m types.Medium) (a1, a2 *mat.Dense, err error) {
	if err := validate([]types.ElectrodePair{p}, g, totalI, m); err != nil {
		return nil, nil, err
	}
	e1, e2 := p.Positions()
	i1, i2 := p.Currents(totalI)
	w1, w2 := p.Omegas()
	a1, a2 = mat.NewDense(g.N, g.N, nil), mat.NewDense(g.N, g.N, nil)
	for i, y := range g.ys {
		for j, x := range g.xs {
			if g.Masked(i, j) {
				continue
			}
			a1.Set(i, j, maths.PointMagnitude(i1, e1.Dist(x, y), w1, m))
			a2.Set(i, j, maths.PointMagnitude(i2, e2.Dist(x, y), w2, m))
		}
	}
	return a1, a2, nil
}
