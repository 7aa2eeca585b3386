package stc

import (
	"fmt"
	"math"
	"time"
)

// Hohmann computes an Hohmann transfer. It returns the departure and arrival
// Δv needed and the time of flight. The velocities at departure and arrival
// are signed against the local circular speed, so an initially hyperbolic
// state still sizes correctly.
func Hohmann(rI, vI, rF, vF float64, body CelestialObject) (ΔvInit, ΔvFinal float64, tof time.Duration, err error) {
	if rI <= 0 || rF <= 0 {
		err = fmt.Errorf("orbit radii must be positive (got %f, %f km): %w", rI, rF, ErrInvalidConfig)
		return
	}
	μ := body.GM()
	aTransfer := (rI + rF) / 2
	vDeparture := math.Sqrt(2*μ/rI - μ/aTransfer)
	vArrival := math.Sqrt(2*μ/rF - μ/aTransfer)
	ΔvInit = vDeparture - vI
	ΔvFinal = vF - vArrival
	tof = time.Duration(math.Pi*math.Sqrt(math.Pow(aTransfer, 3)/μ)) * time.Second
	return
}

// BiElliptic computes a bi-elliptic transfer between two circular orbits via
// an intermediate apoapsis at rB. It returns the three signed burns and the
// total time of flight. With rB equal to the target radius it degenerates to
// the Hohmann transfer.
func BiElliptic(rI, rB, rF float64, body CelestialObject) (Δv1, Δv2, Δv3 float64, tof time.Duration, err error) {
	if rI <= 0 || rB <= 0 || rF <= 0 {
		err = fmt.Errorf("orbit radii must be positive (got %f, %f, %f km): %w", rI, rB, rF, ErrInvalidConfig)
		return
	}
	μ := body.GM()
	a1 := (rI + rB) / 2
	a2 := (rB + rF) / 2
	Δv1 = math.Sqrt(2*μ/rI-μ/a1) - math.Sqrt(μ/rI)
	Δv2 = math.Sqrt(2*μ/rB-μ/a2) - math.Sqrt(2*μ/rB-μ/a1)
	Δv3 = math.Sqrt(μ/rF) - math.Sqrt(2*μ/rF-μ/a2)
	tof = time.Duration(math.Pi*(math.Sqrt(math.Pow(a1, 3)/μ)+math.Sqrt(math.Pow(a2, 3)/μ))) * time.Second
	return
}
