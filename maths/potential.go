package maths

import (
	"math"
	"math/cmplx"

	"github.com/martinha-ssv/NX-422-project/types"
)

// SigmaStar complex admittivity σ + jωε0εr of the medium
func SigmaStar(omega float64, m types.Medium) complex128 {
	return complex(m.SigmaDC, omega*types.Eps0*m.EpsR)
}

// PointPotential potential of a point current source in an infinite medium.
//
// Distances below types.RMin are clamped to it: field points sitting on a
// source pole see the potential at RMin instead of the singularity.
func PointPotential(i, r, omega float64, m types.Medium) complex128 {
	return complex(i, 0) / (complex(4*math.Pi, 0) * SigmaStar(omega, m) * complex(math.Max(r, types.RMin), 0))
}

// PointMagnitude |PointPotential|
func PointMagnitude(i, r, omega float64, m types.Medium) float64 {
	return cmplx.Abs(PointPotential(i, r, omega, m))
}
