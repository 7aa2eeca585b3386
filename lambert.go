package stc

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/gonum/floats"
	"github.com/gonum/matrix/mat64"
)

const (
	lambertε       = 1e-8           // relative time-of-flight tolerance
	lambertMaxIter = 500            // hard iteration cap on the ψ search
	lambertνε      = 5e-5 / 180 * math.Pi
)

// TransferPath selects which way around the central body the transfer goes.
type TransferPath uint8

const (
	// PathAuto picks the short or long way from the transfer geometry.
	PathAuto TransferPath = iota + 1
	// PathShort forces Δν < π.
	PathShort
	// PathLong forces Δν > π.
	PathLong
)

// String implements the Stringer interface.
func (t TransferPath) String() string {
	switch t {
	case PathAuto:
		return "auto"
	case PathShort:
		return "short"
	case PathLong:
		return "long"
	default:
		return "unknown"
	}
}

// ParseTransferPath converts a config string into a TransferPath.
func ParseTransferPath(value string) (TransferPath, error) {
	switch value {
	case "", "auto":
		return PathAuto, nil
	case "short":
		return PathShort, nil
	case "long":
		return PathLong, nil
	default:
		return 0, fmt.Errorf("undefined transfer path '%s': %w", value, ErrInvalidConfig)
	}
}

// LambertSolution carries the terminal velocities of a solved ballistic arc.
// Vi and Vf are only meaningful when Converged is true: a failed solve never
// leaks partial vectors.
type LambertSolution struct {
	Vi, Vf    *mat64.Vector // km/s
	Ψ         float64       // universal variable at the root
	Converged bool
}

// Lambert solves the two-point boundary value problem: find the conic about
// body which connects position Ri to position Rf in exactly Δt. On any
// solver failure — a stalled ψ search or degenerate geometry — it retries
// exactly once from a slightly perturbed arrival position before reporting
// ErrInfeasibleTransfer. Only malformed inputs skip the retry.
func Lambert(Ri, Rf *mat64.Vector, Δt time.Duration, path TransferPath, body CelestialObject) (LambertSolution, error) {
	if Ri.Len() != 3 {
		return LambertSolution{}, errors.New("initial position must be a 3x1 vector")
	}
	if Rf.Len() != 3 {
		return LambertSolution{}, errors.New("final position must be a 3x1 vector")
	}
	if Δt.Seconds() <= 0 {
		return LambertSolution{}, fmt.Errorf("time of flight must be positive (got %s): %w", Δt, ErrInfeasibleTransfer)
	}
	sol, err := lambertUniversal(Ri, Rf, Δt, path, body)
	if err != nil {
		// One retry from a nudged geometry, then give up.
		RfAlt := mat64.NewVector(3, nil)
		RfAlt.AddVec(Rf, mat64.NewVector(3, []float64{1, 1, 0}))
		if sol, err = lambertUniversal(Ri, RfAlt, Δt, path, body); err == nil {
			return sol, nil
		}
		return LambertSolution{Converged: false}, fmt.Errorf("lambert: no arc found for Δt=%s: %w", Δt, ErrInfeasibleTransfer)
	}
	return sol, nil
}

// lambertUniversal is the universal-variable formulation of the Lambert
// problem: Newton iteration on ψ over the Stumpff functions, then velocity
// recovery through the Lagrange coefficients. Inputs are validated by
// Lambert.
func lambertUniversal(Ri, Rf *mat64.Vector, Δt time.Duration, path TransferPath, body CelestialObject) (LambertSolution, error) {
	Δt0 := Δt.Seconds()
	μ := body.GM()

	rI := mat64.Norm(Ri, 2)
	rF := mat64.Norm(Rf, 2)
	cosΔν := mat64.Dot(Ri, Rf) / (rI * rF)
	if cosΔν > 1 {
		cosΔν = 1
	} else if cosΔν < -1 {
		cosΔν = -1
	}
	Δν := math.Acos(cosΔν)
	// Assume prograde motion: the normal of the transfer plane decides
	// whether the geometric angle or its explement is traversed.
	cz := Ri.At(0, 0)*Rf.At(1, 0) - Ri.At(1, 0)*Rf.At(0, 0)
	if cz < 0 {
		Δν = 2*math.Pi - Δν
	}

	var dm float64
	switch path {
	case PathShort:
		dm = 1
	case PathLong:
		dm = -1
	default:
		if Δν > math.Pi {
			dm = -1
		} else {
			dm = 1
		}
	}

	if math.Abs(Δν-math.Pi) < lambertνε {
		return LambertSolution{}, fmt.Errorf("ΔNu of %f degrees is too close to 180 degrees, the transfer plane is undefined: %w", Δν/math.Pi*180, ErrInfeasibleTransfer)
	}

	A := dm * math.Sqrt(rI*rF*(1+cosΔν))
	if floats.EqualWithinAbs(Δν, 0, 1e-12) && floats.EqualWithinAbs(A, 0, 1e-12) {
		return LambertSolution{}, fmt.Errorf("Δν and A are both zero, cannot compute trajectory: %w", ErrInfeasibleTransfer)
	}

	yAt := func(ψ, c2, c3 float64) float64 {
		return rI + rF + A*(ψ*c3-1)/math.Sqrt(c2)
	}
	// Normalized time-of-flight residual. For y < 0 the square root is
	// continued as an odd function, which keeps the residual monotonically
	// increasing through the infeasible region and steers Newton back out.
	residual := func(ψ float64) float64 {
		c2, c3 := StumpffC(ψ), StumpffS(ψ)
		y := yAt(ψ, c2, c3)
		if y < 0 {
			return (A * -math.Sqrt(-y) / math.Sqrt(μ)) / Δt0 - 1
		}
		χ := math.Sqrt(y / c2)
		return ((math.Pow(χ, 3)*c3 + A*math.Sqrt(y)) / math.Sqrt(μ)) / Δt0 - 1
	}

	ψ0 := 0.0
	if A > 0 {
		// Walk ψ up until the chord parameter y turns positive.
		for yAt(ψ0, StumpffC(ψ0), StumpffS(ψ0)) < 0 {
			ψ0 += 0.1
		}
	}

	// Central finite difference: the analytic dF/dψ is unwieldy near the
	// parabolic boundary, the substitute is accurate enough for Newton.
	fPrime := func(ψ float64) float64 {
		h := 1e-7 * (1 + math.Abs(ψ))
		return (residual(ψ+h) - residual(ψ-h)) / (2 * h)
	}

	ψ, _, err := NewtonRaphson(residual, fPrime, ψ0, lambertε, lambertMaxIter)
	if err != nil {
		return LambertSolution{Converged: false}, err
	}

	c2, c3 := StumpffC(ψ), StumpffS(ψ)
	y := yAt(ψ, c2, c3)
	f := 1 - y/rI
	g := A * math.Sqrt(y/μ)
	gDot := 1 - y/rF
	if math.Abs(g) < 1e-9 {
		return LambertSolution{Converged: false}, fmt.Errorf("Lagrange coefficient g is singular (g=%g): %w", g, ErrInfeasibleTransfer)
	}

	Vi := mat64.NewVector(3, nil)
	Vi.AddScaledVec(Rf, -f, Ri)
	Vi.ScaleVec(1/g, Vi)

	Vf := mat64.NewVector(3, nil)
	Vf.AddScaledVec(Ri, -gDot, Rf)
	Vf.ScaleVec(-1/g, Vf)

	return LambertSolution{Vi: Vi, Vf: Vf, Ψ: ψ, Converged: true}, nil
}
