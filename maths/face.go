package maths

import "math"

// FloorMod floored modulo, result has the sign of m
func FloorMod(x, m float64) float64 {
	r := math.Mod(x, m)
	if r != 0 && (r < 0) != (m < 0) {
		r += m
	}
	return r
}
