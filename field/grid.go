package field

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/martinha-ssv/NX-422-project/types"
	"github.com/martinha-ssv/NX-422-project/utils"
)

// Grid square sampling of the cuff cross-section with an exterior mask
type Grid struct {
	N      int           // samples per axis
	Rn     float64       // disk radius (m)
	Extent float64       // half width of the sampled square (m)
	xs     []float64     // column coordinates
	ys     []float64     // row coordinates
	mask   *utils.Bitmap // row-major, set outside the disk
	inside int           // number of unmasked points
}

// NewGrid samples [-rn, rn]² with n points per axis
func NewGrid(rn float64, n int) (*Grid, error) {
	return NewGridExtent(rn, rn, n)
}

// NewGridExtent samples [-extent, extent]² and masks points outside radius rn
func NewGridExtent(rn, extent float64, n int) (*Grid, error) {
	switch {
	case n < 2:
		return nil, types.NewConfigError("n", n, types.ErrInvalidGrid)
	case !(rn > 0) || math.IsInf(rn, 0):
		return nil, types.NewConfigError("rn", rn, types.ErrInvalidGrid)
	case !(extent > 0) || math.IsInf(extent, 0):
		return nil, types.NewConfigError("extent", extent, types.ErrInvalidGrid)
	}
	g := &Grid{
		N:      n,
		Rn:     rn,
		Extent: extent,
		xs:     axis(extent, n),
		ys:     axis(extent, n),
		mask:   utils.NewBitmap(n * n),
	}
	r2 := rn * rn
	for i, y := range g.ys {
		for j, x := range g.xs {
			g.mask.Set(i*n+j, x*x+y*y > r2)
		}
	}
	g.inside = g.mask.Count(false)
	return g, nil
}

// axis mirror-exact linspace over [-extent, extent]
func axis(extent float64, n int) []float64 {
	v := floats.Span(make([]float64, n), -extent, extent)
	for i := 0; i < n/2; i++ {
		v[n-1-i] = -v[i]
	}
	if n%2 == 1 {
		v[n/2] = 0
	}
	return v
}

// X column coordinate
func (g *Grid) X(j int) float64 { return g.xs[j] }

// Y row coordinate
func (g *Grid) Y(i int) float64 { return g.ys[i] }

// Xs copy of the column coordinates
func (g *Grid) Xs() []float64 { return append([]float64(nil), g.xs...) }

// Ys copy of the row coordinates
func (g *Grid) Ys() []float64 { return append([]float64(nil), g.ys...) }

// Masked reports whether (i, j) lies outside the disk
func (g *Grid) Masked(i, j int) bool { return g.mask.Get(i*g.N + j) }

func (g *Grid) masked(k int) bool { return g.mask.Get(k) }

// Inside number of unmasked points
func (g *Grid) Inside() int { return g.inside }

// Len total number of points
func (g *Grid) Len() int { return g.N * g.N }

// Index nearest grid indices for a physical position
func (g *Grid) Index(x, y float64) (i, j int) {
	return nearest(g.ys, y), nearest(g.xs, x)
}

func nearest(axis []float64, v float64) int {
	step := (axis[len(axis)-1] - axis[0]) / float64(len(axis)-1)
	k := int(math.Round((v - axis[0]) / step))
	return max(0, min(len(axis)-1, k))
}
