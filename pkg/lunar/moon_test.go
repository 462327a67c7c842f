package lunar

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/soniakeys/meeus/v3/coord"
	"github.com/soniakeys/meeus/v3/moonposition"
	"github.com/soniakeys/meeus/v3/nutation"
	"github.com/soniakeys/meeus/v3/sidereal"
	"github.com/soniakeys/unit"

	"github.com/chrissnell/almanac/pkg/astro"
	"github.com/chrissnell/almanac/pkg/riseset"
)

func TestMoonPosition(t *testing.T) {
	// Meeus example 47.a, 1992 April 12.0 TD.
	ecliptic, equatorial := Moon{}.Position(2448724.5)

	tests := []struct {
		name      string
		got       float64
		expected  float64
		tolerance float64
	}{
		{"longitude", ecliptic.Longitude.Deg(), unit.NewAngle(' ', 133, 10, 2.0397648).Deg(), 1e-7},
		{"latitude", ecliptic.Latitude.Deg(), unit.NewAngle('-', 3, 13, 44.855109).Deg(), 1e-7},
		{"range", ecliptic.Range, 368409.6848161265, 1e-6},
		{"right ascension", equatorial.RightAscension.Mod1().Time().Hour(), unit.NewTime(' ', 8, 58, 45.225115).Hour(), 1e-7},
		{"declination", equatorial.Declination.Deg(), unit.NewAngle(' ', 13, 46, 6.15162036).Deg(), 1e-7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := math.Abs(tt.got - tt.expected); diff > tt.tolerance {
				t.Errorf("%s = %.10f, expected %.10f", tt.name, tt.got, tt.expected)
			}
		})
	}
}

func TestMoonTables(t *testing.T) {
	if n := len(longitudeDistanceTerms); n != 60 {
		t.Errorf("table 47.A has %d rows, expected 60", n)
	}
	if n := len(latitudeTerms); n != 60 {
		t.Errorf("table 47.B has %d rows, expected 60", n)
	}

	// Spot check rows that carry M, since those are scaled by E.
	if row := longitudeDistanceTerms[4]; row != (longitudeDistanceRow{0, 1, 0, 0, -185116, 48888}) {
		t.Errorf("47.A row 5 = %+v", row)
	}
	if row := longitudeDistanceTerms[31]; row != (longitudeDistanceRow{2, -2, 0, 0, 2236, -9884}) {
		t.Errorf("47.A row 32 = %+v", row)
	}
	if row := latitudeTerms[59]; row != (latitudeRow{2, -2, 0, 1, 107}) {
		t.Errorf("47.B row 60 = %+v", row)
	}
}

func TestEccentricityFactor(t *testing.T) {
	// Example 47.a: E = 1.000194.
	a := fundamentalArguments(-0.077221081451)
	if math.Abs(a.E-1.000194) > 1e-6 {
		t.Fatalf("E = %.7f, expected 1.000194", a.E)
	}

	tests := []struct {
		m        int
		expected float64
	}{
		{0, 1},
		{1, a.E},
		{-1, a.E},
		{2, a.E * a.E},
		{-2, a.E * a.E},
	}
	for _, tt := range tests {
		_, got := a.argument(2, tt.m, 0, 0)
		if math.Abs(got-tt.expected) > 1e-15 {
			t.Errorf("factor for M multiple %d = %.12f, expected %.12f", tt.m, got, tt.expected)
		}
	}
}

func TestFundamentalArguments(t *testing.T) {
	// Example 47.a values in degrees.
	a := fundamentalArguments(-0.077221081451)
	tests := []struct {
		name     string
		got      unit.Angle
		expected float64
	}{
		{"L'", a.Lp, 134.290182},
		{"D", a.D, 113.842304},
		{"M", a.M, 97.643514},
		{"M'", a.Mp, 5.150833},
		{"F", a.F, 219.889721},
	}
	for _, tt := range tests {
		if diff := math.Abs(tt.got.Deg() - tt.expected); diff > 1e-5 {
			t.Errorf("%s = %.6f°, expected %.6f°", tt.name, tt.got.Deg(), tt.expected)
		}
	}
}

func TestMoonDistanceRange(t *testing.T) {
	for dt := astro.DT(2459215.5); dt < 2459215.5+60; dt += 0.25 {
		ecliptic, eq := Moon{}.Position(dt)
		if ecliptic.Range < 356000 || ecliptic.Range > 407000 {
			t.Errorf("JDE %.2f: distance %.0f km out of range", dt, ecliptic.Range)
		}
		if math.Abs(ecliptic.Latitude.Deg()) > 5.4 {
			t.Errorf("JDE %.2f: latitude %.3f° beyond the orbit's inclination", dt, ecliptic.Latitude.Deg())
		}
		if math.Abs(eq.Declination.Deg()) > 29 {
			t.Errorf("JDE %.2f: declination %.3f° out of range", dt, eq.Declination.Deg())
		}
	}
}

// referenceHorizon returns the Moon's geometric altitude and local hour
// angle at jd (UT), evaluated directly from the meeus library's lunar
// theory, full nutation and apparent sidereal time with no interpolation.
func referenceHorizon(jd float64, observer astro.Observer) (altitude, hourAngle float64) {
	jde := jd + astro.DynamicalOffset/astro.SecondsPerDay
	lambda, beta, _ := moonposition.Position(jde)
	deltaPsi, deltaEps := nutation.Nutation(jde)
	eps := nutation.MeanObliquity(jde) + deltaEps
	sinEps, cosEps := eps.Sincos()
	ra, decl := coord.EclToEq(lambda+deltaPsi, beta, sinEps, cosEps)

	h := (sidereal.Apparent(jd).Angle() - observer.Longitude - ra.Angle()).Mod1().Rad()
	if h > math.Pi {
		h -= 2 * math.Pi
	}
	sinLat, cosLat := observer.Latitude.Sincos()
	sinDecl, cosDecl := decl.Sincos()
	return math.Asin(sinLat*sinDecl + cosLat*cosDecl*math.Cos(h)), h
}

// referenceEventTime finds the event of the given kind within 20 minutes of
// near by bisection on the directly evaluated altitude or hour angle.
func referenceEventTime(t *testing.T, kind riseset.Kind, near time.Time, observer astro.Observer) time.Time {
	t.Helper()
	f := func(jd float64) float64 {
		altitude, h := referenceHorizon(jd, observer)
		if kind == riseset.Transit {
			return h
		}
		return altitude - ApparentAltitude.Rad()
	}

	center := float64(astro.TimeToUT(near))
	lo, hi := center-20.0/1440, center+20.0/1440
	flo, fhi := f(lo), f(hi)
	if math.Signbit(flo) == math.Signbit(fhi) {
		t.Fatalf("no %v within 20 minutes of %v", kind, near)
	}
	for i := 0; i < 60; i++ {
		mid := (lo + hi) / 2
		if fmid := f(mid); math.Signbit(fmid) == math.Signbit(flo) {
			lo, flo = mid, fmid
		} else {
			hi = mid
		}
	}
	return astro.UTToTime(astro.UT((lo + hi) / 2))
}

func TestMoonEvents(t *testing.T) {
	sanFrancisco := astro.Observer{
		Latitude:  unit.NewAngle(' ', 37, 46, 0),
		Longitude: unit.NewAngle(' ', 122, 25, 0),
	}
	events, err := Body().Events(context.Background(),
		time.Date(2020, 7, 2, 0, 0, 0, 0, time.UTC),
		time.Date(2020, 7, 4, 0, 0, 0, 0, time.UTC),
		sanFrancisco)
	if err != nil {
		t.Fatalf("Events returned error: %v", err)
	}

	// Moonrise on Jul 1 PDT falls at 00:15 UTC on Jul 2, so each UTC date
	// runs rise, transit, set.
	kinds := []riseset.Kind{riseset.Rise, riseset.Transit, riseset.Set}
	if len(events) != 9 {
		t.Fatalf("got %d events, expected 9: %v", len(events), events)
	}
	for i, e := range events {
		if e.Kind != kinds[i%3] {
			t.Errorf("event %d kind = %v, expected %v", i, e.Kind, kinds[i%3])
		}
		if day := 2 + i/3; e.Time.Day() != day || e.Time.Month() != time.July {
			t.Errorf("event %d (%v) at %v, expected on July %d", i, e.Kind, e.Time, day)
		}

		expected := referenceEventTime(t, e.Kind, e.Time, sanFrancisco)
		if d := e.Time.Sub(expected); d < -5*time.Second || d > 5*time.Second {
			t.Errorf("event %d (%v) at %v, reference gives %v (off by %v)", i, e.Kind, e.Time, expected, d)
		}
	}
}

func TestMoonApparentAltitude(t *testing.T) {
	if b := Body(); math.Abs(b.ApparentAltitude.Deg()-0.125) > 1e-12 || b.Name != "moon" {
		t.Errorf("Body() = %+v", b)
	}
}

func BenchmarkMoonPosition(b *testing.B) {
	for i := 0; i < b.N; i++ {
		Moon{}.Position(2448724.5)
	}
}
