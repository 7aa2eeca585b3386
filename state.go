package stc

import "github.com/gonum/matrix/mat64"

// StateVector is a heliocentric position and velocity at a given epoch,
// expressed in a single consistent inertial frame. It is a pure value:
// produced by the ephemeris layer, consumed by value, never mutated.
type StateVector struct {
	R     [3]float64 // km
	V     [3]float64 // km/s
	Epoch float64    // seconds past J2000
}

// RVec returns the position as a new mat64 vector.
func (s StateVector) RVec() *mat64.Vector {
	return mat64.NewVector(3, []float64{s.R[0], s.R[1], s.R[2]})
}

// VVec returns the velocity as a new mat64 vector.
func (s StateVector) VVec() *mat64.Vector {
	return mat64.NewVector(3, []float64{s.V[0], s.V[1], s.V[2]})
}
