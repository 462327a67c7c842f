package astro

import (
	"github.com/soniakeys/unit"
)

// Nutation returns the nutation in longitude and the mean and true obliquity
// of the ecliptic at dynamical time dt (Meeus ch. 22, low precision form).
//
// The four-term series is good to about 0.5" in Δψ and 0.1" in Δε; the
// obliquity polynomial is only meant for a few thousand years either side of
// J2000. Nothing stops a caller going further, the results just degrade.
func Nutation(dt DT) (deltaPsi, meanObliquity, trueObliquity unit.Angle) {
	T := dt.Centuries()

	// Longitude of the ascending node of the Moon's mean orbit.
	omega := unit.AngleFromDeg(125.04452 - 1934.136261*T + 0.0020708*T*T + T*T*T/450000)
	// Mean longitudes of the Sun and the Moon.
	L := unit.AngleFromDeg(280.4665 + 36000.7698*T)
	Lp := unit.AngleFromDeg(218.3165 + 481267.8813*T)

	inLongitude := Series{Scale: 1, Orders: [][]Term{{
		SineTerm(-17.20, omega),
		SineTerm(-1.32, 2*L),
		SineTerm(-0.23, 2*Lp),
		SineTerm(0.21, 2*omega),
	}}}
	inObliquity := Series{Scale: 1, Orders: [][]Term{{
		CosineTerm(9.2, omega),
		CosineTerm(0.57, 2*L),
		CosineTerm(0.1, 2*Lp),
		CosineTerm(-0.09, 2*omega),
	}}}

	deltaPsi = unit.AngleFromSec(inLongitude.Eval(T))
	meanObliquity = unit.AngleFromDeg(23.43929111111 - 0.01300416667*T -
		1.638888889e-7*T*T + 5.03611111e-7*T*T*T)
	trueObliquity = meanObliquity + unit.AngleFromSec(inObliquity.Eval(T))
	return deltaPsi, meanObliquity, trueObliquity
}
