package stc

import (
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/spf13/viper"
)

type configuration struct {
	VSOP87Dir string
	outputDir string
}

var (
	config     configuration
	configErr  error
	configOnce sync.Once
)

// stcConfig returns the environment configuration, read once from the
// conf.toml in the directory named by STC_CONFIG. The ephemeris layer is the
// only hard consumer, so a missing configuration surfaces as
// ErrEphemerisGap.
func stcConfig() (configuration, error) {
	configOnce.Do(func() {
		confPath := os.Getenv("STC_CONFIG")
		if confPath == "" {
			configErr = fmt.Errorf("environment variable STC_CONFIG is missing or empty: %w", ErrEphemerisGap)
			return
		}
		v := viper.New()
		v.SetConfigName("conf")
		v.AddConfigPath(confPath)
		if err := v.ReadInConfig(); err != nil {
			configErr = fmt.Errorf("could not read conf.toml in %s: %s: %w", confPath, err, ErrEphemerisGap)
			return
		}
		config.VSOP87Dir = v.GetString("general.VSOP87")
		config.outputDir = v.GetString("general.output_path")
	})
	return config, configErr
}

// Scenario is a fully parsed mission definition: who flies, from where to
// where, when, and how the result is exported.
type Scenario struct {
	Name              string
	Origin            CelestialObject
	Destination       CelestialObject
	Vehicle           Vehicle
	DepartureAltitude float64
	ArrivalAltitude   float64
	Aerobrake         AerobrakeMode
	Path              TransferPath
	DepartureDT       time.Time
	ArrivalDT         time.Time
	Export            ExportConfig
}

// Planner returns a mission planner configured from this scenario.
func (s Scenario) Planner() *Planner {
	return NewPlanner(s.Vehicle, s.Origin, s.Destination, s.DepartureAltitude, s.ArrivalAltitude, s.Aerobrake, s.Path)
}

// LoadScenario reads a mission scenario from a TOML file. All parse and
// consistency failures wrap ErrInvalidConfig.
func LoadScenario(path string) (Scenario, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetDefault("mission.departure_altitude", 400.0)
	v.SetDefault("mission.arrival_altitude", 400.0)
	if err := v.ReadInConfig(); err != nil {
		return Scenario{}, fmt.Errorf("could not read scenario %s: %s: %w", path, err, ErrInvalidConfig)
	}

	var scenario Scenario
	scenario.Name = v.GetString("mission.name")
	if scenario.Name == "" {
		return Scenario{}, fmt.Errorf("scenario %s has no mission.name: %w", path, ErrInvalidConfig)
	}

	var err error
	if scenario.Origin, err = CelestialObjectFromString(v.GetString("mission.origin")); err != nil {
		return Scenario{}, err
	}
	if scenario.Destination, err = CelestialObjectFromString(v.GetString("mission.destination")); err != nil {
		return Scenario{}, err
	}
	if scenario.Origin.Equals(scenario.Destination) {
		return Scenario{}, fmt.Errorf("origin and destination are both %s: %w", scenario.Origin.Name, ErrInvalidConfig)
	}
	// Body overrides, e.g. a denser atmosphere model for Mars entry studies.
	for _, body := range []*CelestialObject{&scenario.Origin, &scenario.Destination} {
		prefix := "bodies." + body.Name + "."
		if v.IsSet(prefix + "radius") {
			body.Radius = v.GetFloat64(prefix + "radius")
		}
		if v.IsSet(prefix + "gm") {
			body.μ = v.GetFloat64(prefix + "gm")
		}
		if v.IsSet(prefix + "soi") {
			body.SOI = v.GetFloat64(prefix + "soi")
		}
	}

	if scenario.DepartureDT, err = ParseEpoch(v.GetString("mission.departure")); err != nil {
		return Scenario{}, err
	}
	if scenario.ArrivalDT, err = ParseEpoch(v.GetString("mission.arrival")); err != nil {
		return Scenario{}, err
	}
	if !scenario.ArrivalDT.After(scenario.DepartureDT) {
		return Scenario{}, fmt.Errorf("arrival %s is not after departure %s: %w", scenario.ArrivalDT, scenario.DepartureDT, ErrInvalidConfig)
	}
	scenario.DepartureAltitude = v.GetFloat64("mission.departure_altitude")
	scenario.ArrivalAltitude = v.GetFloat64("mission.arrival_altitude")
	if scenario.Aerobrake, err = ParseAerobrake(v.GetString("mission.aerobrake")); err != nil {
		return Scenario{}, err
	}
	if scenario.Path, err = ParseTransferPath(v.GetString("mission.path")); err != nil {
		return Scenario{}, err
	}

	scenario.Vehicle = Vehicle{
		Name:           v.GetString("vehicle.name"),
		DryMass:        v.GetFloat64("vehicle.dry_mass"),
		PropellantMass: v.GetFloat64("vehicle.propellant_mass"),
	}
	if scenario.Vehicle.Name == "" {
		scenario.Vehicle.Name = scenario.Name
	}
	if scenario.Vehicle.Propulsion.Type, err = ParsePropulsionType(v.GetString("vehicle.propulsion.type")); err != nil {
		return Scenario{}, err
	}
	scenario.Vehicle.Propulsion.Thrust = v.GetFloat64("vehicle.propulsion.thrust")
	scenario.Vehicle.Propulsion.Isp = v.GetFloat64("vehicle.propulsion.isp")
	scenario.Vehicle.Propulsion.MaxAccel = v.GetFloat64("vehicle.propulsion.max_accel")
	if err = scenario.Vehicle.Validate(); err != nil {
		return Scenario{}, err
	}

	scenario.Export = ExportConfig{
		Filename:  v.GetString("export.filename"),
		AsCSV:     v.GetBool("export.csv"),
		AsJSON:    v.GetBool("export.json"),
		Timestamp: v.GetBool("export.timestamp"),
	}
	return scenario, nil
}
