package stc

import (
	"math"

	"github.com/gonum/floats"
)

const (
	// stumpffε bounds the region around z=0 where the series limits are used
	// instead of the trigonometric/hyperbolic continuations.
	stumpffε = 1e-6
)

// Norm returns the norm of a given vector which is supposed to be 3x1.
func Norm(v []float64) float64 {
	return math.Sqrt(v[0]*v[0] + v[1]*v[1] + v[2]*v[2])
}

// Unit returns the unit vector of a given vector.
func Unit(a []float64) (b []float64) {
	n := Norm(a)
	if floats.EqualWithinAbs(n, 0, 1e-12) {
		return []float64{0, 0, 0}
	}
	b = make([]float64, len(a))
	for i, val := range a {
		b[i] = val / n
	}
	return
}

// Dot performs the inner product.
func Dot(a, b []float64) float64 {
	return a[0]*b[0] + a[1]*b[1] + a[2]*b[2]
}

// Cross performs the cross product.
func Cross(a, b []float64) []float64 {
	return []float64{a[1]*b[2] - a[2]*b[1],
		a[2]*b[0] - a[0]*b[2],
		a[0]*b[1] - a[1]*b[0]} // Cross product R x V.
}

// StumpffC computes the Stumpff function C(z) across all conic regimes.
// C(0) = 1/2, with the trigonometric continuation for z > 0 (elliptic) and
// the hyperbolic continuation for z < 0. Both branches are analytically
// continuous at z = 0, so the series limit is substituted near the boundary
// to avoid catastrophic cancellation.
func StumpffC(z float64) float64 {
	if z > stumpffε {
		return (1 - math.Cos(math.Sqrt(z))) / z
	}
	if z < -stumpffε {
		return (1 - math.Cosh(math.Sqrt(-z))) / z
	}
	return 1 / 2.
}

// StumpffS computes the Stumpff function S(z) across all conic regimes.
// S(0) = 1/6; see StumpffC for the branching policy.
func StumpffS(z float64) float64 {
	if z > stumpffε {
		sz := math.Sqrt(z)
		return (sz - math.Sin(sz)) / math.Pow(sz, 3)
	}
	if z < -stumpffε {
		sz := math.Sqrt(-z)
		return (math.Sinh(sz) - sz) / math.Pow(sz, 3)
	}
	return 1 / 6.
}
