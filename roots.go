package stc

import (
	"fmt"
	"math"
)

const (
	// RootTolerance is the default absolute tolerance of the root-finder.
	RootTolerance = 1e-8
	// RootMaxIterations is the default iteration budget of the root-finder.
	RootMaxIterations = 500
)

// NewtonRaphson drives the residual f to zero starting from x0, using the
// provided derivative (an analytic derivative or a numerically safe
// substitute such as a finite difference). It returns the root and the
// number of iterations spent, or ErrNonConvergence once maxIter is reached.
// The iteration count is a hard cap: this function never loops unboundedly.
func NewtonRaphson(f, fPrime func(x float64) float64, x0, ε float64, maxIter uint) (float64, uint, error) {
	x := x0
	for i := uint(0); i < maxIter; i++ {
		fx := f(x)
		if math.Abs(fx) < ε {
			return x, i, nil
		}
		dfx := fPrime(x)
		if dfx == 0 || math.IsNaN(fx) || math.IsNaN(dfx) {
			return x, i, fmt.Errorf("newton: residual or derivative undefined at x=%g: %w", x, ErrNonConvergence)
		}
		x -= fx / dfx
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return x, i, fmt.Errorf("newton: iterate diverged: %w", ErrNonConvergence)
		}
	}
	return x, maxIter, fmt.Errorf("newton: %d iterations exhausted: %w", maxIter, ErrNonConvergence)
}

// Halley is the third-order variant of NewtonRaphson for residuals with a
// cheap second derivative. Same contract and bounds as NewtonRaphson.
func Halley(f, fPrime, fDoublePrime func(x float64) float64, x0, ε float64, maxIter uint) (float64, uint, error) {
	x := x0
	for i := uint(0); i < maxIter; i++ {
		fx := f(x)
		if math.Abs(fx) < ε {
			return x, i, nil
		}
		dfx := fPrime(x)
		ddfx := fDoublePrime(x)
		denom := 2*dfx*dfx - fx*ddfx
		if denom == 0 || math.IsNaN(fx) || math.IsNaN(denom) {
			return x, i, fmt.Errorf("halley: residual or derivatives undefined at x=%g: %w", x, ErrNonConvergence)
		}
		x -= 2 * fx * dfx / denom
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return x, i, fmt.Errorf("halley: iterate diverged: %w", ErrNonConvergence)
		}
	}
	return x, maxIter, fmt.Errorf("halley: %d iterations exhausted: %w", maxIter, ErrNonConvergence)
}
