package stc

import (
	"fmt"
	"math"
)

// AerobrakeMode discounts the capture burn for drag passes through the
// destination atmosphere.
type AerobrakeMode uint8

const (
	// AerobrakeNone is a fully propulsive capture.
	AerobrakeNone AerobrakeMode = iota + 1
	// AerobrakePartial offloads half of the capture Δv onto drag.
	AerobrakePartial
	// AerobrakeFull keeps only a small cleanup burn after aerocapture.
	AerobrakeFull
)

// Factor returns the multiplier applied to the propulsive capture Δv.
func (a AerobrakeMode) Factor() float64 {
	switch a {
	case AerobrakePartial:
		return 0.5
	case AerobrakeFull:
		return 0.1
	default:
		return 1.0
	}
}

// String implements the Stringer interface.
func (a AerobrakeMode) String() string {
	switch a {
	case AerobrakeNone:
		return "none"
	case AerobrakePartial:
		return "partial"
	case AerobrakeFull:
		return "full"
	default:
		return "unknown"
	}
}

// ParseAerobrake converts a config string into an AerobrakeMode.
func ParseAerobrake(value string) (AerobrakeMode, error) {
	switch value {
	case "", "none":
		return AerobrakeNone, nil
	case "partial":
		return AerobrakePartial, nil
	case "full":
		return AerobrakeFull, nil
	default:
		return 0, fmt.Errorf("undefined aerobrake mode '%s': %w", value, ErrInvalidConfig)
	}
}

// BurnPlan is a sized patched-conic maneuver at a planetary boundary: the
// hyperbolic excess it must absorb or produce, and the resulting burn.
type BurnPlan struct {
	VInf  float64 // hyperbolic excess speed, km/s
	VCirc float64 // parking orbit circular speed, km/s
	VHyp  float64 // periapsis speed on the hyperbola, km/s
	Δv    float64 // burn magnitude, km/s
}

// NewEscapeBurn sizes the departure burn from a circular parking orbit of
// radius rPark around body onto the escape hyperbola with excess speed vInf.
func NewEscapeBurn(body CelestialObject, rPark, vInf float64) (BurnPlan, error) {
	return newBurn(body, rPark, vInf, AerobrakeNone)
}

// NewCaptureBurn sizes the arrival burn from the approach hyperbola with
// excess speed vInf into a circular parking orbit of radius rPark, optionally
// discounted by aerobraking.
func NewCaptureBurn(body CelestialObject, rPark, vInf float64, mode AerobrakeMode) (BurnPlan, error) {
	return newBurn(body, rPark, vInf, mode)
}

func newBurn(body CelestialObject, rPark, vInf float64, mode AerobrakeMode) (BurnPlan, error) {
	μ := body.GM()
	if μ <= 0 {
		return BurnPlan{}, fmt.Errorf("%s has no gravitational parameter: %w", body, ErrInvalidConfig)
	}
	if rPark <= 0 {
		return BurnPlan{}, fmt.Errorf("parking orbit radius must be positive (got %f km): %w", rPark, ErrInvalidConfig)
	}
	if vInf < 0 {
		return BurnPlan{}, fmt.Errorf("hyperbolic excess speed must not be negative (got %f km/s): %w", vInf, ErrInvalidConfig)
	}
	vCirc := math.Sqrt(μ / rPark)
	vHyp := math.Sqrt(vInf*vInf + 2*μ/rPark)
	Δv := vHyp - vCirc
	if Δv < 0 {
		Δv = 0
	}
	Δv *= mode.Factor()
	return BurnPlan{VInf: vInf, VCirc: vCirc, VHyp: vHyp, Δv: Δv}, nil
}
