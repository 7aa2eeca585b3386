package stc

import (
	"errors"
	"testing"

	kitlog "github.com/go-kit/kit/log"
	"github.com/gonum/floats"
	"github.com/gonum/matrix/mat64"
)

func testPlanner(vehicle Vehicle) *Planner {
	planner := NewPlanner(vehicle, Earth, Mars, 400, 400, AerobrakeNone, PathAuto)
	planner.SetLogger(kitlog.NewNopLogger())
	return planner
}

func TestPlanEarthMars(t *testing.T) {
	vehicle := Vehicle{Name: "ares", DryMass: 1000, PropellantMass: 500, Propulsion: Propulsion{Type: Impulsive}}
	profile, err := testPlanner(vehicle).Plan(earthDeparture(), marsArrival(210))
	if err != nil {
		t.Fatal(err)
	}
	if profile.Degraded {
		t.Fatal("a solvable geometry must not degrade")
	}
	if profile.Departure.Δv <= 0 || profile.Departure.Δv > 12 {
		t.Fatalf("implausible departure burn: %f km/s", profile.Departure.Δv)
	}
	if profile.Arrival.Δv <= 0 || profile.Arrival.Δv > 12 {
		t.Fatalf("implausible arrival burn: %f km/s", profile.Arrival.Δv)
	}
	if profile.Cruise.TOF != ImpulsiveCruiseTOFDays {
		t.Fatalf("impulsive cruise duration = %f days", profile.Cruise.TOF)
	}
	if got := profile.TotalΔv(); got != profile.Departure.Δv+profile.Arrival.Δv {
		t.Fatalf("total Δv = %f", got)
	}
}

func TestPlanAerobrakeSavesPropellant(t *testing.T) {
	vehicle := Vehicle{Name: "ares", DryMass: 1000, PropellantMass: 500, Propulsion: Propulsion{Type: Impulsive}}
	baseline, err := testPlanner(vehicle).Plan(earthDeparture(), marsArrival(210))
	if err != nil {
		t.Fatal(err)
	}
	braked := testPlanner(vehicle)
	braked.Aerobrake = AerobrakeFull
	profile, err := braked.Plan(earthDeparture(), marsArrival(210))
	if err != nil {
		t.Fatal(err)
	}
	if profile.Arrival.Δv >= baseline.Arrival.Δv {
		t.Fatalf("aerocapture burn %f should undercut propulsive %f", profile.Arrival.Δv, baseline.Arrival.Δv)
	}
}

func TestPlanDegraded(t *testing.T) {
	vehicle := Vehicle{Name: "ares", DryMass: 1000, PropellantMass: 500, Propulsion: Propulsion{Type: Impulsive}}
	// An antipodal arrival has no defined transfer plane, so the arc solve
	// fails and the planner falls back to the default excess velocity.
	arrival := StateVector{R: [3]float64{-1.524 * AU, 0, 0}, V: [3]float64{0, -24.13, 0}, Epoch: 210 * 86400}
	profile, err := testPlanner(vehicle).Plan(earthDeparture(), arrival)
	if err != nil {
		t.Fatal(err)
	}
	if !profile.Degraded {
		t.Fatal("an unsolvable arc must degrade the profile")
	}
	if profile.Departure.VInf != defaultVInf || profile.Arrival.VInf != defaultVInf {
		t.Fatalf("degraded excess velocities = %f, %f", profile.Departure.VInf, profile.Arrival.VInf)
	}
	if profile.Departure.Δv <= 0 || profile.Arrival.Δv <= 0 {
		t.Fatal("degraded profile still needs sized burns")
	}
}

func TestHyperbolicExcess(t *testing.T) {
	boundary := StateVector{V: [3]float64{0, 29.784, 0}}
	v := mat64.NewVector(3, []float64{0, 32.784, 0})
	if got := hyperbolicExcess(v, boundary); !floats.EqualWithinAbs(got, 3, 1e-12) {
		t.Fatalf("v∞ = %f km/s", got)
	}
	// Against the body's own velocity the excess vanishes.
	if got := hyperbolicExcess(boundary.VVec(), boundary); got != 0 {
		t.Fatalf("v∞ against itself = %f km/s", got)
	}
}

func TestPlanRejectsBackwardTime(t *testing.T) {
	vehicle := Vehicle{Name: "ares", DryMass: 1000, PropellantMass: 500, Propulsion: Propulsion{Type: Impulsive}}
	departure := earthDeparture()
	departure.Epoch = 300 * 86400
	if _, err := testPlanner(vehicle).Plan(departure, marsArrival(210)); !errors.Is(err, ErrInfeasibleTransfer) {
		t.Fatalf("expected ErrInfeasibleTransfer, got %v", err)
	}
}

func TestPlanRejectsInvalidVehicle(t *testing.T) {
	vehicle := Vehicle{Name: "paper", DryMass: 0, Propulsion: Propulsion{Type: Impulsive}}
	if _, err := testPlanner(vehicle).Plan(earthDeparture(), marsArrival(210)); !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig, got %v", err)
	}
}
