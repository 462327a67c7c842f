// Package astro holds the shared pieces of the ephemeris engine: time scales,
// periodic series evaluation, nutation, sidereal time and the ecliptic to
// equatorial transform. Angles are carried as unit.Angle (radians).
package astro

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/soniakeys/meeus/v3/julian"
)

const (
	// SecondsPerDay is the length of a day in SI seconds.
	SecondsPerDay = 86400.0

	// J2000 is the Julian day of the J2000.0 epoch.
	J2000 = 2451545.0

	// DaysPerCentury is the length of a Julian century.
	DaysPerCentury = 36525.0

	// DaysPerMillennium is the length of a Julian millennium.
	DaysPerMillennium = 365250.0

	// KmPerAU is the astronomical unit in kilometres.
	KmPerAU = 149597870.7

	// DynamicalOffset is TT-UTC in seconds. As at July 2020 TAI is 37s ahead
	// of UTC and TT is 32.184s ahead of TAI.
	DynamicalOffset = 69.184
)

// ErrNoTimeZone is returned when a timestamp does not name its time zone.
var ErrNoTimeZone = errors.New("timestamp has no time zone")

// UT is a universal time expressed as a Julian day.
type UT float64

// DT is a dynamical (terrestrial) time expressed as a Julian ephemeris day.
type DT float64

// UTToDT converts a universal time to dynamical time.
func UTToDT(ut UT) DT {
	return DT(float64(ut) + DynamicalOffset/SecondsPerDay)
}

// Centuries returns the Julian centuries elapsed since J2000.0.
func (dt DT) Centuries() float64 {
	return (float64(dt) - J2000) / DaysPerCentury
}

// Millennia returns the Julian millennia elapsed since J2000.0.
func (dt DT) Millennia() float64 {
	return (float64(dt) - J2000) / DaysPerMillennium
}

// Midnight returns the universal time of the 0h UT preceding ut.
func (ut UT) Midnight() UT {
	return UT(math.Floor(float64(ut)-0.5) + 0.5)
}

// TimeToUT converts a time to universal time. The zone of t does not
// matter; the instant is read in UTC.
func TimeToUT(t time.Time) UT {
	return UT(julian.TimeToJD(t))
}

// UTToTime converts a universal time to a UTC time.
func UTToTime(ut UT) time.Time {
	return julian.JDToTime(float64(ut))
}

// DateToUT returns the universal time of 0h UT on the calendar date of t,
// taking the year, month and day as written in t's own location.
func DateToUT(t time.Time) UT {
	y, m, d := t.Date()
	return TimeToUT(time.Date(y, m, d, 0, 0, 0, 0, time.UTC))
}

var zonelessLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	"2006-01-02",
}

// ParseTime parses an RFC 3339 timestamp. Timestamps that would otherwise be
// valid but carry no zone offset are rejected with ErrNoTimeZone rather than
// being read in some assumed zone.
func ParseTime(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err == nil {
		return t, nil
	}
	for _, layout := range zonelessLayouts {
		if _, lerr := time.Parse(layout, s); lerr == nil {
			return time.Time{}, fmt.Errorf("%q: %w", s, ErrNoTimeZone)
		}
	}
	return time.Time{}, fmt.Errorf("invalid timestamp %q: %w", s, err)
}
