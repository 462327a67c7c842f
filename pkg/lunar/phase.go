package lunar

import (
	"math"
	"time"

	"github.com/soniakeys/unit"

	"github.com/chrissnell/almanac/pkg/astro"
	"github.com/chrissnell/almanac/pkg/solar"
)

// SynodicMonth is the average length of the lunar cycle in days
const SynodicMonth = 29.530588853

// Phase labels.
const (
	Full           = "full"
	WaningGibbous  = "waning gibbous"
	LastQuarter    = "last quarter"
	WaningCrescent = "waning crescent"
	New            = "new"
	WaxingCrescent = "waxing crescent"
	FirstQuarter   = "first quarter"
	WaxingGibbous  = "waxing gibbous"
)

// MoonPhase describes the Moon's phase at an instant.
type MoonPhase struct {
	// PhaseAngle is the Sun-Moon-Earth angle, 0 at full and π at new.
	PhaseAngle unit.Angle
	// Label names the phase from the phase angle alone.
	Label string
	// Illumination is the illuminated fraction of the disk, [0,1].
	Illumination float64
	// Elongation is the geocentric Sun-Moon angle.
	Elongation unit.Angle
	// Waxing is true when the Moon's longitude leads the Sun's.
	Waxing bool
	// Age is the approximate days since new moon.
	Age float64
}

// Phase computes the moon phase at t. Any location is accepted; t is
// converted to UTC.
func Phase(t time.Time) MoonPhase {
	return PhaseAt(astro.UTToDT(astro.TimeToUT(t)))
}

// PhaseAt computes the moon phase at dynamical time dt, following Meeus
// chapter 48.
func PhaseAt(dt astro.DT) MoonPhase {
	moon, _ := Moon{}.Position(dt)
	sun, _ := solar.Sun{}.Position(dt)
	return phaseFromPositions(moon, sun)
}

func phaseFromPositions(moon, sun astro.SphericalCoordinate) MoonPhase {
	diff := moon.Longitude - sun.Longitude
	psi := math.Acos(astro.Clamp(moon.Latitude.Cos() * diff.Cos()))
	sinPsi, cosPsi := math.Sincos(psi)
	i := math.Atan2(sun.Range*sinPsi, moon.Range-sun.Range*cosPsi)

	lead := diff.Mod1()
	return MoonPhase{
		PhaseAngle:   unit.Angle(i),
		Label:        phaseLabel(unit.Angle(i)),
		Illumination: (1 + math.Cos(i)) / 2,
		Elongation:   unit.Angle(psi),
		Waxing:       lead < math.Pi,
		Age:          lead.Rad() / (2 * math.Pi) * SynodicMonth,
	}
}

// phaseLabel buckets the phase angle allowing 30° (a little over two days)
// for each of full, new and the quarters. The phase angle lies in [0°, 180°]
// so only the first five buckets occur; Waxing tells the halves apart.
func phaseLabel(i unit.Angle) string {
	switch deg := i.Deg(); {
	case deg < 15:
		return Full
	case deg < 75:
		return WaningGibbous
	case deg < 105:
		return LastQuarter
	case deg < 165:
		return WaningCrescent
	case deg < 195:
		return New
	case deg < 255:
		return WaxingCrescent
	case deg < 285:
		return FirstQuarter
	case deg < 345:
		return WaxingGibbous
	default:
		return Full
	}
}
