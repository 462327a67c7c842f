package lunar

import (
	"math"
	"time"

	"github.com/chrissnell/almanac/pkg/astro"
	"github.com/chrissnell/almanac/pkg/solar"
)

// CrescentAngle contains the full set of computed orientation values
type CrescentAngle struct {
	BrightLimbAngle  float64 `json:"bright_limb_angle"` // χ: position angle of bright limb (degrees, from celestial N toward E)
	TerminatorAngle  float64 `json:"terminator_angle"`  // θ: terminator orientation in celestial coords (degrees)
	ParallacticAngle float64 `json:"parallactic_angle"` // q: parallactic angle of the Moon (degrees)
	LocalTerminator  float64 `json:"local_terminator"`  // θ_local: terminator angle relative to observer's local vertical (degrees)
	Rotation         float64 `json:"rotation"`          // CSS rotation to apply to the icon (degrees, clockwise positive)
	PhaseAngle       float64 `json:"phase_angle"`       // i: Sun-Moon-Earth angle (degrees)
	Illumination     float64 `json:"illumination"`      // k: illuminated fraction [0,1]
}

// BrightLimb computes the crescent orientation at t. With a nil observer
// the parallactic correction is skipped and the geocentric terminator angle
// is returned.
func BrightLimb(t time.Time, observer *astro.Observer) CrescentAngle {
	ut := astro.TimeToUT(t)
	dt := astro.UTToDT(ut)

	moonEcl, moonEq := Moon{}.Position(dt)
	sunEcl, sunEq := solar.Sun{}.Position(dt)
	phase := phaseFromPositions(moonEcl, sunEcl)

	sinDecSun, cosDecSun := sunEq.Declination.Sincos()
	sinDecMoon, cosDecMoon := moonEq.Declination.Sincos()

	// Position angle of the bright limb χ (Meeus eq. 48.5)
	deltaRA := sunEq.RightAscension - moonEq.RightAscension
	chi := math.Atan2(cosDecSun*deltaRA.Sin(),
		sinDecSun*cosDecMoon-cosDecSun*sinDecMoon*deltaRA.Cos())
	chi = normalizeRadians(chi)

	// Terminator angle θ (perpendicular to bright limb direction)
	theta := normalizeRadians(chi + math.Pi/2)

	result := CrescentAngle{
		BrightLimbAngle: radToDeg(chi),
		TerminatorAngle: radToDeg(theta),
		PhaseAngle:      phase.PhaseAngle.Deg(),
		Illumination:    phase.Illumination,
	}

	if observer == nil {
		result.Rotation = radToDeg(-theta)
		result.LocalTerminator = radToDeg(theta)
		return result
	}

	// Parallactic angle q (Meeus eq. 14.1). Longitude is west positive.
	H := (astro.GreenwichSiderealTime(ut) - observer.Longitude - moonEq.RightAscension).Rad()
	q := math.Atan2(math.Sin(H), observer.Latitude.Tan()*cosDecMoon-sinDecMoon*math.Cos(H))

	thetaLocal := normalizeRadians(theta - q)

	result.ParallacticAngle = radToDeg(q)
	result.LocalTerminator = radToDeg(thetaLocal)
	// CSS clockwise rotation with 0 pointing up: negate θ_local
	result.Rotation = radToDeg(-thetaLocal)

	return result
}

func radToDeg(rad float64) float64 {
	return rad * 180 / math.Pi
}

// normalizeRadians wraps an angle to the range [0, 2π)
func normalizeRadians(angle float64) float64 {
	angle = math.Mod(angle, 2*math.Pi)
	if angle < 0 {
		angle += 2 * math.Pi
	}
	return angle
}
