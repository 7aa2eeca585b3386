package stc

import (
	"fmt"
	"math"
)

const (
	// g0 is standard gravity in m/s², used for propellant mass flow.
	g0 = 9.80665
	// ImpulsiveCruiseTOFDays is the fixed coast duration assumed for
	// impulsive vehicles between the escape and capture burns. Solving the
	// actual heliocentric conic for the coast is tracked separately; the
	// burns themselves are sized from the Lambert excess velocities, so
	// this placeholder only affects the reported timeline.
	ImpulsiveCruiseTOFDays = 150.0

	cruiseMinSteps = 10000
	cruiseMaxSteps = 100000000
)

// IntegrationStep advances a 1-D state (x, v) under acceleration a over Δt.
// The default is explicit Euler; higher-order steps plug in here.
type IntegrationStep func(x, v, a, Δt float64) (float64, float64)

// EulerStep is the explicit first-order integration step.
func EulerStep(x, v, a, Δt float64) (float64, float64) {
	return x + v*Δt, v + a*Δt
}

// CruiseResult summarizes the heliocentric leg of a mission.
type CruiseResult struct {
	TOF            float64 // days
	PropellantUsed float64 // kg
	PeakSpeed      float64 // km/s
}

// Cruiser integrates the heliocentric cruise of a vehicle between two
// planetary states. The trajectory model is one-dimensional along the chord
// from departure to arrival, with solar gravity projected onto it.
type Cruiser struct {
	Vehicle Vehicle
	Sun     CelestialObject
	Step    IntegrationStep
}

// NewCruiser returns a Cruiser using the Euler step.
func NewCruiser(vehicle Vehicle, sun CelestialObject) *Cruiser {
	return &Cruiser{Vehicle: vehicle, Sun: sun, Step: EulerStep}
}

// Cruise computes the cruise from one planetary state to another, dispatching
// on the vehicle's propulsion type.
func (c *Cruiser) Cruise(from, to StateVector) (CruiseResult, error) {
	if err := c.Vehicle.Validate(); err != nil {
		return CruiseResult{}, err
	}
	switch c.Vehicle.Propulsion.Type {
	case Continuous:
		return c.cruiseContinuous(from, to)
	default:
		return CruiseResult{TOF: ImpulsiveCruiseTOFDays, PropellantUsed: 0, PeakSpeed: Norm(from.V[:])}, nil
	}
}

// cruiseContinuous flies a thrust/flip/brake profile along the chord: full
// thrust prograde to the midpoint, retrograde after it, engine off once the
// tank runs dry. The cruise ends when the chord is covered or, if propellant
// ran out first, by coasting the remaining distance.
func (c *Cruiser) cruiseContinuous(from, to StateVector) (CruiseResult, error) {
	chord := make([]float64, 3)
	for i := 0; i < 3; i++ {
		chord[i] = to.R[i] - from.R[i]
	}
	D := Norm(chord)
	if D < 1 {
		return CruiseResult{}, nil
	}
	dHat := Unit(chord)

	m0 := c.Vehicle.InitialMass()
	dry := c.Vehicle.DryMass
	thrust := c.Vehicle.Propulsion.Thrust
	mDot := thrust / (c.Vehicle.Propulsion.Isp * g0)
	accelCap := c.Vehicle.Propulsion.MaxAccel
	if accelCap <= 0 {
		accelCap = thrust / m0
	}

	// Time scale of a constant-acceleration bang-bang profile, used only to
	// size the integration step.
	aRef := accelCap / 1000 // km/s²
	tEst := 2 * math.Sqrt(D/aRef)
	steps := math.Ceil(tEst / 10)
	if steps < cruiseMinSteps {
		steps = cruiseMinSteps
	}
	Δt := tEst / steps

	x := 0.0
	v := Dot(from.V[:], dHat)
	m := m0
	t := 0.0
	peak := math.Abs(v)

	for i := 0; x < D; i++ {
		if i >= cruiseMaxSteps {
			return CruiseResult{}, fmt.Errorf("cruise did not cover %f km in %d steps: %w", D, cruiseMaxSteps, ErrNonConvergence)
		}
		a := 0.0
		if m > dry {
			aT := thrust / m
			if aT > accelCap {
				aT = accelCap
			}
			aT /= 1000 // m/s² to km/s²
			if x < D/2 {
				a = aT
			} else {
				a = -aT
			}
			m -= mDot * Δt
			if m < dry {
				m = dry
			}
		} else if v <= 0 {
			return CruiseResult{}, fmt.Errorf("propellant exhausted at %f km with no forward speed: %w", x, ErrInfeasibleTransfer)
		} else {
			// Tank dry but still moving outward: coast the rest.
			t += (D - x) / v
			x = D
			break
		}
		// Solar gravity along the chord at the current position.
		r := []float64{from.R[0] + x*dHat[0], from.R[1] + x*dHat[1], from.R[2] + x*dHat[2]}
		rMag := Norm(r)
		if rMag < 1 {
			rMag = 1
		}
		aGrav := -c.Sun.GM() / (rMag * rMag * rMag) * Dot(r, dHat)
		a += aGrav

		x, v = c.Step(x, v, a, Δt)
		if x < 0 {
			x = 0
		}
		t += Δt
		if s := math.Abs(v); s > peak {
			peak = s
		}
	}

	used := m0 - m
	if used < 0 {
		used = 0
	} else if used > c.Vehicle.PropellantMass {
		used = c.Vehicle.PropellantMass
	}
	return CruiseResult{TOF: t / 86400, PropellantUsed: used, PeakSpeed: peak}, nil
}
