package stc

import "errors"

// Failure kinds surfaced by the planner. Callers should test with errors.Is
// since most are returned wrapped with context.
var (
	// ErrNonConvergence is returned when an iterative solver exceeds its
	// iteration budget before reaching its tolerance.
	ErrNonConvergence = errors.New("iteration did not converge")
	// ErrInfeasibleTransfer is returned when the geometry and time of flight
	// combination has no physical solution, including degenerate geometry
	// which still fails after the perturbation retry.
	ErrInfeasibleTransfer = errors.New("no physical transfer for this geometry and time of flight")
	// ErrInvalidConfig is returned when a body or vehicle invariant is
	// violated (non-positive μ, zero parking radius, negative mass, ...).
	ErrInvalidConfig = errors.New("invalid body or vehicle configuration")
	// ErrEphemerisGap is returned when no ephemeris data covers the
	// requested body and epoch.
	ErrEphemerisGap = errors.New("no ephemeris data covering the requested epoch")
)
