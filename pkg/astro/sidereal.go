package astro

import (
	"math"

	"github.com/soniakeys/unit"
)

// SiderealRate is the ratio of the sidereal to the solar day.
const SiderealRate = 1.00273790935

// GreenwichSiderealTime returns the apparent sidereal time at Greenwich for a
// universal time, as an angle in [0, 2π).
//
// Evaluating the sidereal time polynomial at ut directly throws away most of
// the fractional day, so it is evaluated at the preceding midnight and the
// elapsed fraction is added at the sidereal rate.
func GreenwichSiderealTime(ut UT) unit.Angle {
	day := float64(ut.Midnight())
	fraction := unit.PMod(float64(ut)-0.5, 1)
	T := (day - J2000) / DaysPerCentury

	theta := unit.AngleFromDeg(100.46061837 + 36000.770053608*T +
		0.000387933*T*T - T*T*T/38710000).Mod1()
	theta += unit.Angle(SiderealRate * fraction * 2 * math.Pi)

	// Equation of the equinoxes takes mean to apparent.
	deltaPsi, _, epsilon := Nutation(UTToDT(ut))
	return (theta + deltaPsi.Mul(epsilon.Cos())).Mod1()
}
