package stc

import "fmt"

// PropulsionType characterizes how a vehicle applies thrust during cruise.
type PropulsionType uint8

const (
	// Impulsive propulsion burns at discrete points only.
	Impulsive PropulsionType = iota + 1
	// Continuous propulsion thrusts throughout the cruise.
	Continuous
)

// String implements the Stringer interface.
func (p PropulsionType) String() string {
	switch p {
	case Impulsive:
		return "impulsive"
	case Continuous:
		return "continuous"
	default:
		return "unknown"
	}
}

// ParsePropulsionType converts a config string into a PropulsionType.
func ParsePropulsionType(value string) (PropulsionType, error) {
	switch value {
	case "impulsive":
		return Impulsive, nil
	case "continuous":
		return Continuous, nil
	default:
		return 0, fmt.Errorf("undefined propulsion type '%s': %w", value, ErrInvalidConfig)
	}
}

// Propulsion defines the thrusting capability of a vehicle.
type Propulsion struct {
	Type     PropulsionType
	Thrust   float64 // N
	Isp      float64 // s
	MaxAccel float64 // m/s², zero means unconstrained
}

// Vehicle defines a spacecraft: dry structure, propellant tank and engine.
type Vehicle struct {
	Name           string
	DryMass        float64 // kg
	PropellantMass float64 // kg
	Propulsion     Propulsion
}

// InitialMass returns the wet mass of the vehicle at departure.
func (v Vehicle) InitialMass() float64 {
	return v.DryMass + v.PropellantMass
}

// Validate checks the physical consistency of the vehicle definition and
// returns ErrInvalidConfig on the first violation found.
func (v Vehicle) Validate() error {
	if v.DryMass <= 0 {
		return fmt.Errorf("vehicle %s: dry mass must be positive (got %f): %w", v.Name, v.DryMass, ErrInvalidConfig)
	}
	if v.PropellantMass < 0 {
		return fmt.Errorf("vehicle %s: propellant mass must not be negative (got %f): %w", v.Name, v.PropellantMass, ErrInvalidConfig)
	}
	switch v.Propulsion.Type {
	case Impulsive:
		// Burn sizing is delegated to the patched-conic phases.
	case Continuous:
		if v.Propulsion.Thrust <= 0 {
			return fmt.Errorf("vehicle %s: continuous propulsion needs positive thrust: %w", v.Name, ErrInvalidConfig)
		}
		if v.Propulsion.Isp <= 0 {
			return fmt.Errorf("vehicle %s: continuous propulsion needs positive specific impulse: %w", v.Name, ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("vehicle %s: unknown propulsion type: %w", v.Name, ErrInvalidConfig)
	}
	return nil
}
