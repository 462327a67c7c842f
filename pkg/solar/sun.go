// Package solar computes the apparent position of the Sun.
package solar

import (
	"math"

	"github.com/soniakeys/unit"

	"github.com/chrissnell/almanac/pkg/astro"
	"github.com/chrissnell/almanac/pkg/riseset"
)

// ApparentAltitude is the altitude of the Sun's centre at sunrise and
// sunset: 34' of refraction plus a 16' semi-diameter below the horizon.
var ApparentAltitude = unit.AngleFromDeg(-0.833)

var (
	fk5Longitude = unit.AngleFromSec(-0.09033)
	fk5Latitude  = unit.AngleFromSec(0.03916)
	aberration   = unit.AngleFromSec(-20.4898)
)

// Sun computes solar positions. The zero value is ready to use.
type Sun struct{}

// Position returns the apparent geocentric ecliptic and equatorial
// coordinates of the Sun at dt, with Range in kilometres.
// See Meeus chapter 25, "higher accuracy".
func (Sun) Position(dt astro.DT) (astro.SphericalCoordinate, astro.EquatorialCoordinate) {
	tau := dt.Millennia()
	T := tau * 10

	L := longitudeSeries.Eval(tau)
	B := latitudeSeries.Eval(tau)
	R := radiusSeries.Eval(tau)

	// Heliocentric Earth to geocentric Sun.
	longitude := unit.Angle(unit.PMod(L+math.Pi, 2*math.Pi))
	latitude := unit.Angle(-B)

	// FK5 frame.
	lambdaDash := longitude - unit.AngleFromDeg(1.397*T+0.00031*T*T)
	sinL, cosL := lambdaDash.Sincos()
	longitude += fk5Longitude
	latitude += fk5Latitude.Mul(cosL - sinL)

	deltaPsi, _, epsilon := astro.Nutation(dt)
	longitude += deltaPsi + aberration.Div(R)

	ecliptic := astro.SphericalCoordinate{
		Latitude:  latitude,
		Longitude: longitude,
		Range:     R * astro.KmPerAU,
	}
	return ecliptic, ecliptic.ToEquatorial(epsilon)
}

// Body returns the Sun as a body for the rise and set solver.
func Body() riseset.Body {
	return riseset.Body{
		Name:             "sun",
		ApparentAltitude: ApparentAltitude,
		Positioner:       Sun{},
	}
}
