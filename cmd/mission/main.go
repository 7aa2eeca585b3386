package main

import (
	"errors"
	"flag"
	"fmt"
	"log"

	"github.com/soltrav/stc"
)

var (
	scenario string
	verbose  bool
)

func init() {
	flag.StringVar(&scenario, "scenario", "", "path to the mission TOML file (required)")
	flag.BoolVar(&verbose, "verbose", false, "print the full burn breakdown")
}

func main() {
	flag.Parse()
	if scenario == "" {
		log.Fatal("usage: mission -scenario=./scenario.toml")
	}
	scen, err := stc.LoadScenario(scenario)
	if err != nil {
		log.Fatalf("could not load scenario: %s", err)
	}

	departure, err := scen.Origin.HelioState(scen.DepartureDT)
	if err != nil {
		fatalEphemeris(scen.Origin.Name, err)
	}
	arrival, err := scen.Destination.HelioState(scen.ArrivalDT)
	if err != nil {
		fatalEphemeris(scen.Destination.Name, err)
	}

	profile, err := scen.Planner().Plan(departure, arrival)
	if err != nil {
		log.Fatalf("mission %s failed: %s", scen.Name, err)
	}

	fmt.Printf("=== %s: %s -> %s ===\n", scen.Name, scen.Origin.Name, scen.Destination.Name)
	if profile.Degraded {
		fmt.Println("WARNING: no ballistic arc found, burns sized from the default excess velocity")
	}
	fmt.Printf("departure burn: %.4f km/s\n", profile.Departure.Δv)
	fmt.Printf("cruise: %.2f days, %.2f kg propellant, peak %.3f km/s\n",
		profile.Cruise.TOF, profile.Cruise.PropellantUsed, profile.Cruise.PeakSpeed)
	fmt.Printf("arrival burn (%s aerobrake): %.4f km/s\n", scen.Aerobrake, profile.Arrival.Δv)
	fmt.Printf("total: %.4f km/s\n", profile.TotalΔv())
	if verbose {
		fmt.Printf("departure: vInf=%.4f vCirc=%.4f vHyp=%.4f\n",
			profile.Departure.VInf, profile.Departure.VCirc, profile.Departure.VHyp)
		fmt.Printf("arrival:   vInf=%.4f vCirc=%.4f vHyp=%.4f\n",
			profile.Arrival.VInf, profile.Arrival.VCirc, profile.Arrival.VHyp)
	}

	written, err := stc.WriteProfile(scen.Name, profile, scen.Export)
	if err != nil {
		log.Fatalf("could not export profile: %s", err)
	}
	for _, path := range written {
		fmt.Printf("exported %s\n", path)
	}
}

func fatalEphemeris(body string, err error) {
	if errors.Is(err, stc.ErrEphemerisGap) {
		log.Fatalf("no ephemeris for %s: %s\nSet STC_CONFIG to a directory whose conf.toml points at the VSOP87 files.", body, err)
	}
	log.Fatalf("could not compute state of %s: %s", body, err)
}
