package stc

import (
	"errors"
	"fmt"
	"os"
	"time"

	kitlog "github.com/go-kit/kit/log"
	"github.com/gonum/matrix/mat64"
)

// defaultVInf is the hyperbolic excess assumed on both legs when the
// ballistic arc could not be solved, in km/s. Zero degrades the burns to
// parabolic escape and capture; set Planner.DefaultVInf for anything better.
const defaultVInf = 0.0

// MissionPhase identifies which leg of the mission the planner is working on.
type MissionPhase uint8

const (
	// PhaseDeparture is the escape burn at the origin.
	PhaseDeparture MissionPhase = iota + 1
	// PhaseCruise is the heliocentric leg.
	PhaseCruise
	// PhaseArrival is the capture burn at the destination.
	PhaseArrival
	// PhaseDone means the profile is complete.
	PhaseDone
)

// String implements the Stringer interface.
func (p MissionPhase) String() string {
	switch p {
	case PhaseDeparture:
		return "departure"
	case PhaseCruise:
		return "cruise"
	case PhaseArrival:
		return "arrival"
	case PhaseDone:
		return "done"
	default:
		return "unknown"
	}
}

// MissionProfile is the planner's output: one sized burn per planetary
// boundary and the cruise in between. Degraded marks a profile whose excess
// velocities fell back to the default because no ballistic arc was found.
type MissionProfile struct {
	Departure BurnPlan
	Cruise    CruiseResult
	Arrival   BurnPlan
	Degraded  bool
}

// TotalΔv returns the summed burn magnitude of the profile in km/s.
func (m MissionProfile) TotalΔv() float64 {
	return m.Departure.Δv + m.Arrival.Δv
}

// Planner assembles a full interplanetary mission profile. All solving is
// synchronous; run concurrent departure sweeps by giving each goroutine its
// own Planner.
type Planner struct {
	Vehicle           Vehicle
	Origin            CelestialObject
	Destination       CelestialObject
	Sun               CelestialObject
	DepartureAltitude float64 // km above the origin surface
	ArrivalAltitude   float64 // km above the destination surface
	Aerobrake         AerobrakeMode
	Path              TransferPath
	DefaultVInf       float64 // km/s, used when the arc solve fails
	logger            kitlog.Logger
	cruiser           *Cruiser
}

// NewPlanner returns a ready mission planner logging to stdout.
func NewPlanner(vehicle Vehicle, origin, destination CelestialObject, departureAltitude, arrivalAltitude float64, aerobrake AerobrakeMode, path TransferPath) *Planner {
	logger := kitlog.NewLogfmtLogger(kitlog.NewSyncWriter(os.Stdout))
	logger = kitlog.With(logger, "time", kitlog.DefaultTimestamp, "mission", vehicle.Name)
	return &Planner{
		Vehicle:           vehicle,
		Origin:            origin,
		Destination:       destination,
		Sun:               Sun,
		DepartureAltitude: departureAltitude,
		ArrivalAltitude:   arrivalAltitude,
		Aerobrake:         aerobrake,
		Path:              path,
		DefaultVInf:       defaultVInf,
		logger:            logger,
		cruiser:           NewCruiser(vehicle, Sun),
	}
}

// SetLogger overrides the default stdout logger.
func (p *Planner) SetLogger(logger kitlog.Logger) {
	p.logger = logger
}

// Plan computes the full profile between two planetary states. An unsolvable
// ballistic arc degrades the profile to the default excess velocities rather
// than aborting; every other failure aborts with a typed error and no
// partial profile.
func (p *Planner) Plan(departure, arrival StateVector) (MissionProfile, error) {
	if err := p.Vehicle.Validate(); err != nil {
		return MissionProfile{}, err
	}
	Δt := arrival.Epoch - departure.Epoch
	if Δt <= 0 {
		return MissionProfile{}, fmt.Errorf("arrival must be after departure (Δt=%f s): %w", Δt, ErrInfeasibleTransfer)
	}
	tof := time.Duration(Δt * float64(time.Second))

	var profile MissionProfile
	var vInfDep, vInfArr float64
	sol, err := Lambert(departure.RVec(), arrival.RVec(), tof, p.Path, p.Sun)
	if err == nil && sol.Converged {
		vInfDep = hyperbolicExcess(sol.Vi, departure)
		vInfArr = hyperbolicExcess(sol.Vf, arrival)
		p.logger.Log("level", "info", "phase", PhaseCruise, "ψ", sol.Ψ, "vInfDeparture", vInfDep, "vInfArrival", vInfArr)
	} else {
		if err != nil && !errors.Is(err, ErrInfeasibleTransfer) && !errors.Is(err, ErrNonConvergence) {
			return MissionProfile{}, err
		}
		vInfDep, vInfArr = p.DefaultVInf, p.DefaultVInf
		profile.Degraded = true
		p.logger.Log("level", "warning", "phase", PhaseCruise, "arc", "unsolved", "vInfDefault", p.DefaultVInf, "err", err)
	}

	profile.Departure, err = NewEscapeBurn(p.Origin, p.Origin.Radius+p.DepartureAltitude, vInfDep)
	if err != nil {
		return MissionProfile{}, fmt.Errorf("%s: %w", PhaseDeparture, err)
	}
	p.logger.Log("level", "info", "phase", PhaseDeparture, "body", p.Origin.Name, "Δv", profile.Departure.Δv)

	profile.Cruise, err = p.cruiser.Cruise(departure, arrival)
	if err != nil {
		return MissionProfile{}, fmt.Errorf("%s: %w", PhaseCruise, err)
	}
	p.logger.Log("level", "info", "phase", PhaseCruise, "tofDays", profile.Cruise.TOF, "propellantKg", profile.Cruise.PropellantUsed)

	profile.Arrival, err = NewCaptureBurn(p.Destination, p.Destination.Radius+p.ArrivalAltitude, vInfArr, p.Aerobrake)
	if err != nil {
		return MissionProfile{}, fmt.Errorf("%s: %w", PhaseArrival, err)
	}
	p.logger.Log("level", "info", "phase", PhaseArrival, "body", p.Destination.Name, "aerobrake", p.Aerobrake, "Δv", profile.Arrival.Δv)

	p.logger.Log("level", "notice", "phase", PhaseDone, "totalΔv", profile.TotalΔv(), "degraded", profile.Degraded)
	return profile, nil
}

// hyperbolicExcess returns the norm of the difference between a heliocentric
// velocity and the planetary velocity of the boundary state, i.e. the v∞ of
// the leg.
func hyperbolicExcess(v *mat64.Vector, boundary StateVector) float64 {
	diff := mat64.NewVector(3, nil)
	diff.SubVec(v, boundary.VVec())
	return mat64.Norm(diff, 2)
}
