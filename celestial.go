package stc

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/soniakeys/meeus/julian"
	"github.com/soniakeys/meeus/planetposition"
)

const (
	// AU is one astronomical unit in kilometers.
	AU = 1.49597870700e8
)

// Atmosphere describes the exponential atmosphere of a body, used by the
// capture heuristics. ScaleHeight in km, SurfaceDensity in kg/m³.
type Atmosphere struct {
	ScaleHeight    float64
	SurfaceDensity float64
}

// CelestialObject defines a celestial object.
// Note: Atmosphere may be nil; does not support satellites yet.
type CelestialObject struct {
	Name           string
	Radius         float64 // mean radius, km
	a              float64 // heliocentric semi-major axis, km
	μ              float64 // km³/s²
	SOI            float64 // sphere of influence with respect to the Sun, km
	Mass           float64 // kg
	SurfaceGravity float64 // m/s²
	Atmosphere     *Atmosphere
	PP             *planetposition.V87Planet
}

// GM returns μ (which is unexported because it's a lowercase letter)
func (c CelestialObject) GM() float64 {
	return c.μ
}

// String implements the Stringer interface.
func (c CelestialObject) String() string {
	return c.Name + " body"
}

// Equals returns whether the provided celestial object is the same.
func (c *CelestialObject) Equals(b CelestialObject) bool {
	return c.Name == b.Name && c.Radius == b.Radius && c.a == b.a && c.μ == b.μ && c.SOI == b.SOI
}

// HelioState returns the heliocentric state vector of this body at a given
// time, computed from the VSOP87 series. The whole VSOP87 file is loaded on
// first use and cached on the object. Failures to cover the requested body
// or to load the series surface as ErrEphemerisGap: the planner never
// fabricates a state.
func (c *CelestialObject) HelioState(dt time.Time) (StateVector, error) {
	epoch := EpochFromTime(dt)
	if c.Name == "Sun" {
		return StateVector{Epoch: epoch}, nil
	}
	if c.PP == nil {
		var vsopPosition int
		switch c.Name {
		case "Venus":
			vsopPosition = 2
		case "Earth":
			vsopPosition = 3
		case "Mars":
			vsopPosition = 4
		case "Jupiter":
			vsopPosition = 5
		default:
			return StateVector{}, fmt.Errorf("no VSOP87 series for %s: %w", c.Name, ErrEphemerisGap)
		}
		conf, err := stcConfig()
		if err != nil {
			return StateVector{}, err
		}
		planet, err := planetposition.LoadPlanetPath(vsopPosition-1, conf.VSOP87Dir)
		if err != nil {
			return StateVector{}, fmt.Errorf("could not load VSOP87 series for %s: %s: %w", c.Name, err, ErrEphemerisGap)
		}
		c.PP = planet
	}
	l, b, r := c.PP.Position2000(julian.TimeToJD(dt))
	r *= AU
	// Vis-viva for the speed, direction from the orbit normal.
	v := math.Sqrt(2*Sun.μ/r - Sun.μ/c.a)
	R, V := [3]float64{}, [3]float64{}
	sB, cB := math.Sincos(b.Rad())
	sL, cL := math.Sincos(l.Rad())
	R[0] = r * cB * cL
	R[1] = r * cB * sL
	R[2] = r * sB
	vDir := Cross(R[:], []float64{0, 0, -1})
	vNorm := Norm(vDir)
	for i := 0; i < 3; i++ {
		V[i] = v * vDir[i] / vNorm
	}
	return StateVector{R: R, V: V, Epoch: epoch}, nil
}

// CelestialObjectFromString returns the object from its name
func CelestialObjectFromString(name string) (CelestialObject, error) {
	switch strings.ToLower(name) {
	case "sun":
		return Sun, nil
	case "venus":
		return Venus, nil
	case "earth":
		return Earth, nil
	case "mars":
		return Mars, nil
	case "jupiter":
		return Jupiter, nil
	default:
		return CelestialObject{}, fmt.Errorf("undefined planet '%s': %w", name, ErrInvalidConfig)
	}
}

/* Definitions */

// Sun is our closest star.
var Sun = CelestialObject{"Sun", 695700, -1, 1.32712440017987e11, -1, 1.989e30, 274.0, nil, nil}

// Venus is poisonous.
var Venus = CelestialObject{"Venus", 6051.8, 108208601, 3.24858599e5, 0.616e6, 4.8675e24, 8.87, &Atmosphere{15.9, 65.0}, nil}

// Earth is home.
var Earth = CelestialObject{"Earth", 6378.1363, 149598023, 3.98600433e5, 924645.0, 5.97237e24, 9.80665, &Atmosphere{8.5, 1.225}, nil}

// Mars is the vacation place.
var Mars = CelestialObject{"Mars", 3396.19, 227939282.5616, 4.28283100e4, 576000, 6.4171e23, 3.71, &Atmosphere{11.1, 0.020}, nil}

// Jupiter is big.
var Jupiter = CelestialObject{"Jupiter", 71492.0, 778298361, 1.266865361e8, 48.2e6, 1.8982e27, 24.79, nil, nil}
