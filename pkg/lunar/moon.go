// Package lunar computes the position and phase of the Moon, following
// Meeus chapters 47 and 48.
package lunar

import (
	"math"

	"github.com/soniakeys/unit"

	"github.com/chrissnell/almanac/pkg/astro"
	"github.com/chrissnell/almanac/pkg/riseset"
)

// ApparentAltitude is the altitude of the Moon's centre at moonrise and
// moonset, allowing for its mean horizontal parallax.
var ApparentAltitude = unit.AngleFromDeg(0.125)

// meanDistance is the constant term of the Earth-Moon distance in km.
const meanDistance = 385000.56

// Moon computes lunar positions. The zero value is ready to use.
type Moon struct{}

// arguments holds the fundamental arguments at one instant.
type arguments struct {
	Lp, D, M, Mp, F unit.Angle
	E               float64
}

// fundamentalArguments evaluates Meeus 47.1 to 47.6 for T centuries
// from J2000.
func fundamentalArguments(T float64) arguments {
	T2, T3, T4 := T*T, T*T*T, T*T*T*T
	return arguments{
		// Mean longitude.
		Lp: unit.AngleFromDeg(218.3164477 + 481267.88123421*T - 0.0015786*T2 + T3/538841 - T4/65194000).Mod1(),
		// Mean elongation.
		D: unit.AngleFromDeg(297.8501921 + 445267.1114034*T - 0.0018819*T2 + T3/545868 - T4/113065000).Mod1(),
		// Sun's mean anomaly.
		M: unit.AngleFromDeg(357.5291092 + 35999.0502909*T - 0.0001536*T2 + T3/24490000).Mod1(),
		// Mean anomaly.
		Mp: unit.AngleFromDeg(134.9633964 + 477198.8675055*T + 0.0087414*T2 + T3/69699 - T4/14712000).Mod1(),
		// Argument of latitude.
		F: unit.AngleFromDeg(93.2720950 + 483202.0175233*T - 0.0036539*T2 - T3/3526000 + T4/863310000).Mod1(),
		// Eccentricity of the Earth's orbit.
		E: 1 - 0.002516*T - 0.0000074*T2,
	}
}

// argument combines the fundamental arguments with integer multiples and
// returns the amplitude factor E^|m| for terms involving M.
func (a arguments) argument(d, m, mp, f int) (unit.Angle, float64) {
	arg := a.D.Mul(float64(d)) + a.M.Mul(float64(m)) + a.Mp.Mul(float64(mp)) + a.F.Mul(float64(f))
	return arg, math.Pow(a.E, math.Abs(float64(m)))
}

// Position returns the apparent geocentric ecliptic and equatorial
// coordinates of the Moon at dt, with Range in kilometres.
func (Moon) Position(dt astro.DT) (astro.SphericalCoordinate, astro.EquatorialCoordinate) {
	T := dt.Centuries()
	a := fundamentalArguments(T)

	longitude := make([]astro.Term, 0, len(longitudeDistanceTerms)+3)
	distance := make([]astro.Term, 0, len(longitudeDistanceTerms))
	for _, row := range longitudeDistanceTerms {
		arg, e := a.argument(row.D, row.M, row.Mp, row.F)
		longitude = append(longitude, astro.SineTerm(e*row.L, arg))
		distance = append(distance, astro.CosineTerm(e*row.R, arg))
	}

	latitude := make([]astro.Term, 0, len(latitudeTerms)+6)
	for _, row := range latitudeTerms {
		arg, e := a.argument(row.D, row.M, row.Mp, row.F)
		latitude = append(latitude, astro.SineTerm(e*row.B, arg))
	}

	// Action of Venus, Jupiter and the flattening of the Earth.
	a1 := unit.AngleFromDeg(119.75 + 131.849*T).Mod1()
	a2 := unit.AngleFromDeg(53.09 + 479264.290*T).Mod1()
	a3 := unit.AngleFromDeg(313.45 + 481266.484*T).Mod1()
	longitude = append(longitude,
		astro.SineTerm(3958, a1),
		astro.SineTerm(1962, a.Lp-a.F),
		astro.SineTerm(318, a2),
	)
	latitude = append(latitude,
		astro.SineTerm(-2235, a.Lp),
		astro.SineTerm(382, a3),
		astro.SineTerm(175, a1-a.F),
		astro.SineTerm(175, a1+a.F),
		astro.SineTerm(127, a.Lp-a.Mp),
		astro.SineTerm(-115, a.Lp+a.Mp),
	)

	// The terms have no time dependence of their own, so each sum is a
	// single order evaluated at zero.
	sigmaL := astro.Series{Orders: [][]astro.Term{longitude}, Scale: 1e-6}.Eval(0)
	sigmaB := astro.Series{Orders: [][]astro.Term{latitude}, Scale: 1e-6}.Eval(0)
	sigmaR := astro.Series{Orders: [][]astro.Term{distance}, Scale: 1e-3}.Eval(0)

	deltaPsi, _, epsilon := astro.Nutation(dt)
	ecliptic := astro.SphericalCoordinate{
		Latitude:  unit.AngleFromDeg(sigmaB),
		Longitude: a.Lp + unit.AngleFromDeg(sigmaL) + deltaPsi,
		Range:     meanDistance + sigmaR,
	}
	return ecliptic, ecliptic.ToEquatorial(epsilon)
}

// Body returns the Moon as a body for the rise and set solver.
func Body() riseset.Body {
	return riseset.Body{
		Name:             "moon",
		ApparentAltitude: ApparentAltitude,
		Positioner:       Moon{},
	}
}
