package stc

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// ExportConfig configures how a mission profile is written to disk.
type ExportConfig struct {
	Filename  string
	AsCSV     bool
	AsJSON    bool
	Timestamp bool
}

// IsUseless returns whether this export configuration will export anything.
func (c ExportConfig) IsUseless() bool {
	return !c.AsCSV && !c.AsJSON || len(c.Filename) == 0
}

// NameNoExt returns the export name without any file extension, with the
// timestamp appended when requested.
func (c ExportConfig) NameNoExt() string {
	name := c.Filename
	if c.Timestamp {
		name += "-" + time.Now().Format("2006-01-02-15.04.05")
	}
	return name
}

type burnExport struct {
	VInf  float64 `json:"vInf"`
	VCirc float64 `json:"vCirc"`
	VHyp  float64 `json:"vHyp"`
	ΔV    float64 `json:"deltaV"`
}

type cruiseExport struct {
	TOFDays        float64 `json:"tofDays"`
	PropellantUsed float64 `json:"propellantUsedKg"`
	PeakSpeed      float64 `json:"peakSpeedKmS"`
}

type profileExport struct {
	Name      string       `json:"name"`
	Degraded  bool         `json:"degraded"`
	Departure burnExport   `json:"departure"`
	Cruise    cruiseExport `json:"cruise"`
	Arrival   burnExport   `json:"arrival"`
	TotalΔV   float64      `json:"totalDeltaV"`
}

func newProfileExport(name string, profile MissionProfile) profileExport {
	asBurn := func(b BurnPlan) burnExport {
		return burnExport{VInf: b.VInf, VCirc: b.VCirc, VHyp: b.VHyp, ΔV: b.Δv}
	}
	return profileExport{
		Name:      name,
		Degraded:  profile.Degraded,
		Departure: asBurn(profile.Departure),
		Cruise:    cruiseExport{TOFDays: profile.Cruise.TOF, PropellantUsed: profile.Cruise.PropellantUsed, PeakSpeed: profile.Cruise.PeakSpeed},
		Arrival:   asBurn(profile.Arrival),
		TotalΔV:   profile.TotalΔv(),
	}
}

// WriteProfile exports a mission profile per the export configuration. Files
// land in the configured output directory when one is set, otherwise in the
// working directory. It returns the paths written.
func WriteProfile(name string, profile MissionProfile, c ExportConfig) ([]string, error) {
	if c.IsUseless() {
		return nil, nil
	}
	dir := "."
	if conf, err := stcConfig(); err == nil && conf.outputDir != "" {
		dir = conf.outputDir
	}
	base := filepath.Join(dir, c.NameNoExt())
	view := newProfileExport(name, profile)
	var written []string

	if c.AsJSON {
		data, err := json.MarshalIndent(view, "", "  ")
		if err != nil {
			return written, err
		}
		path := base + ".json"
		if err := os.WriteFile(path, data, 0644); err != nil {
			return written, err
		}
		written = append(written, path)
	}

	if c.AsCSV {
		f, err := os.Create(base + ".csv")
		if err != nil {
			return written, err
		}
		defer f.Close()
		fmt.Fprintf(f, "# Mission profile for %s\n", name)
		fmt.Fprintf(f, "# Generated on %s\n", time.Now().Format(time.RFC1123))
		fmt.Fprintln(f, "degraded,departureDeltaV,cruiseTOFDays,propellantUsedKg,peakSpeedKmS,arrivalDeltaV,totalDeltaV")
		fmt.Fprintf(f, "%t,%f,%f,%f,%f,%f,%f\n", view.Degraded, view.Departure.ΔV, view.Cruise.TOFDays,
			view.Cruise.PropellantUsed, view.Cruise.PeakSpeed, view.Arrival.ΔV, view.TotalΔV)
		written = append(written, f.Name())
	}
	return written, nil
}
