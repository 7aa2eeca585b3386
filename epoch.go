package stc

import (
	"fmt"
	"strconv"
	"time"

	"github.com/soniakeys/meeus/julian"
)

const (
	// J2000JD is the Julian date of the J2000 reference epoch.
	J2000JD = 2451545.0
	// SecondsPerDay is the number of seconds in a Julian day.
	SecondsPerDay = 86400.0
)

// EpochFromTime converts a wall time to seconds past J2000.
func EpochFromTime(dt time.Time) float64 {
	return (julian.TimeToJD(dt) - J2000JD) * SecondsPerDay
}

// TimeFromEpoch converts seconds past J2000 back to a wall time.
func TimeFromEpoch(epoch float64) time.Time {
	return julian.JDToTime(J2000JD + epoch/SecondsPerDay)
}

// ParseEpoch converts a user-facing epoch string into a time. It accepts a
// Julian date as a bare float, or a calendar date with or without a clock
// ("2006-01-02 15:04:05" or "2006-01-02"), always UTC.
func ParseEpoch(value string) (time.Time, error) {
	if jde, err := strconv.ParseFloat(value, 64); err == nil {
		return julian.JDToTime(jde), nil
	}
	if dt, err := time.Parse("2006-01-02 15:04:05", value); err == nil {
		return dt.UTC(), nil
	}
	if dt, err := time.Parse("2006-01-02", value); err == nil {
		return dt.UTC(), nil
	}
	return time.Time{}, fmt.Errorf("cannot parse epoch '%s': %w", value, ErrInvalidConfig)
}
