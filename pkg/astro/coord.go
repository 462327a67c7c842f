package astro

import (
	"math"

	"github.com/soniakeys/unit"
)

// SphericalCoordinate is a position in the ecliptic frame.
type SphericalCoordinate struct {
	Latitude  unit.Angle
	Longitude unit.Angle
	// Range is the distance in kilometres, zero when not known.
	Range float64
}

// EquatorialCoordinate is a position in the equatorial frame.
type EquatorialCoordinate struct {
	RightAscension unit.Angle
	Declination    unit.Angle
}

// ToEquatorial rotates an ecliptic position into the equatorial frame given
// the obliquity of the ecliptic. The right ascension lies in (-π, π].
func (s SphericalCoordinate) ToEquatorial(epsilon unit.Angle) EquatorialCoordinate {
	sinEps, cosEps := epsilon.Sincos()
	sinLat, cosLat := s.Latitude.Sincos()
	sinLng, cosLng := s.Longitude.Sincos()

	ra := math.Atan2(sinLng*cosEps-s.Latitude.Tan()*sinEps, cosLng)
	// atan2(-0, x<0) and atan2(-tiny, x<0) give exactly -π.
	if ra <= -math.Pi {
		ra += 2 * math.Pi
	}
	decl := math.Asin(Clamp(sinLat*cosEps + cosLat*sinEps*sinLng))
	return EquatorialCoordinate{
		RightAscension: unit.Angle(ra),
		Declination:    unit.Angle(decl),
	}
}

// Observer is a place on the Earth. Longitude is measured positive west of
// Greenwich, as in Meeus.
type Observer struct {
	Latitude  unit.Angle
	Longitude unit.Angle
}

// NewObserver builds an Observer from latitude and east-positive longitude in
// degrees, the convention used by maps and config files.
func NewObserver(latDeg, lonEastDeg float64) Observer {
	return Observer{
		Latitude:  unit.AngleFromDeg(latDeg),
		Longitude: unit.AngleFromDeg(-lonEastDeg),
	}
}

// Clamp limits x to [-1, 1] so rounding cannot push an asin or acos argument
// out of its domain.
func Clamp(x float64) float64 {
	switch {
	case x > 1:
		return 1
	case x < -1:
		return -1
	}
	return x
}
