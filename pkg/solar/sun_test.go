package solar

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/nathan-osman/go-sunrise"
	"github.com/soniakeys/unit"

	"github.com/chrissnell/almanac/pkg/astro"
	"github.com/chrissnell/almanac/pkg/riseset"
)

func TestSunPosition(t *testing.T) {
	// Meeus example 25.b, 1992 October 13.0 TD.
	ecliptic, equatorial := Sun{}.Position(2448908.5)

	tests := []struct {
		name      string
		got       float64
		expected  float64
		tolerance float64
	}{
		{"longitude", ecliptic.Longitude.Deg(), unit.NewAngle(' ', 199, 54, 21.93898).Deg(), 1e-7},
		{"latitude", ecliptic.Latitude.Deg(), unit.NewAngle(' ', 0, 0, 0.6202).Deg(), 1e-7},
		{"range", ecliptic.Range / astro.KmPerAU, 0.9976077495, 1e-7},
		{"right ascension", equatorial.RightAscension.Mod1().Time().Hour(), 13.225214027, 1e-8},
		{"declination", equatorial.Declination.Deg(), -7.783881243, 1e-7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := math.Abs(tt.got - tt.expected); diff > tt.tolerance {
				t.Errorf("%s = %.10f, expected %.10f", tt.name, tt.got, tt.expected)
			}
		})
	}
}

func TestSunEquatorialMatchesBook(t *testing.T) {
	// The book gives 13h13m30.749s and -7°47'01.74" with the full series.
	_, eq := Sun{}.Position(2448908.5)
	if diff := math.Abs(eq.RightAscension.Mod1().Time().Sec() - unit.NewTime(' ', 13, 13, 30.749).Sec()); diff > 0.05 {
		t.Errorf("RA off by %.3fs", diff)
	}
	if diff := math.Abs(eq.Declination.Sec() - unit.NewAngle('-', 7, 47, 1.74).Sec()); diff > 0.5 {
		t.Errorf("Dec off by %.3f\"", diff)
	}
}

func TestSunRangeThroughYear(t *testing.T) {
	for dt := astro.DT(2459215.5); dt < 2459215.5+366; dt++ {
		ecliptic, _ := Sun{}.Position(dt)
		au := ecliptic.Range / astro.KmPerAU
		if au < 0.983 || au > 1.017 {
			t.Errorf("JDE %.1f: distance %.5f AU outside the Earth's orbit", dt, au)
		}
		if math.Abs(ecliptic.Latitude.Sec()) > 1.5 {
			t.Errorf("JDE %.1f: latitude %.3f\" too large", dt, ecliptic.Latitude.Sec())
		}
	}
}

var sanFrancisco = astro.Observer{
	Latitude:  unit.NewAngle(' ', 37, 46, 0),
	Longitude: unit.NewAngle(' ', 122, 25, 0),
}

func TestSunEvents(t *testing.T) {
	events, err := Body().Events(context.Background(),
		time.Date(2020, 7, 2, 0, 0, 0, 0, time.UTC),
		time.Date(2020, 7, 3, 0, 0, 0, 0, time.UTC),
		sanFrancisco)
	if err != nil {
		t.Fatalf("Events returned error: %v", err)
	}

	// Checked to the minute against the NOAA solar calculator.
	expected := []riseset.Event{
		{Time: time.Date(2020, 7, 2, 3, 35, 26, 0, time.UTC), Kind: riseset.Set},
		{Time: time.Date(2020, 7, 2, 12, 52, 16, 0, time.UTC), Kind: riseset.Rise},
		{Time: time.Date(2020, 7, 2, 20, 13, 53, 0, time.UTC), Kind: riseset.Transit},
		{Time: time.Date(2020, 7, 3, 3, 35, 19, 0, time.UTC), Kind: riseset.Set},
		{Time: time.Date(2020, 7, 3, 12, 52, 47, 0, time.UTC), Kind: riseset.Rise},
		{Time: time.Date(2020, 7, 3, 20, 14, 4, 0, time.UTC), Kind: riseset.Transit},
	}

	if len(events) != len(expected) {
		t.Fatalf("got %d events, expected %d: %v", len(events), len(expected), events)
	}
	for i, e := range events {
		if e.Kind != expected[i].Kind {
			t.Errorf("event %d kind = %v, expected %v", i, e.Kind, expected[i].Kind)
		}
		if d := e.Time.Truncate(time.Second).Sub(expected[i].Time); d < -2*time.Second || d > 2*time.Second {
			t.Errorf("event %d (%v) at %v, expected %v", i, e.Kind, e.Time, expected[i].Time)
		}
		if e.Time.Location() != time.UTC {
			t.Errorf("event %d location = %v, expected UTC", i, e.Time.Location())
		}
	}
}

func TestSunEventsPolar(t *testing.T) {
	tromso := astro.NewObserver(69.6492, 18.9553)
	tests := []struct {
		name string
		date time.Time
	}{
		{"midnight sun", time.Date(2021, 6, 21, 0, 0, 0, 0, time.UTC)},
		{"polar night", time.Date(2021, 12, 21, 0, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			events, err := Body().Events(context.Background(), tt.date, tt.date, tromso)
			if err != nil {
				t.Fatalf("Events returned error: %v", err)
			}
			if len(events) != 0 {
				t.Errorf("expected no events, got %v", events)
			}
		})
	}
}

func TestSunriseSunsetConsistency(t *testing.T) {
	// Every day of the year at mid-latitude on the prime meridian has a
	// rise, transit and set in that order.
	events, err := Body().Events(context.Background(),
		time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2021, 12, 31, 0, 0, 0, 0, time.UTC),
		astro.NewObserver(45, 0))
	if err != nil {
		t.Fatalf("Events returned error: %v", err)
	}
	if len(events) != 3*365 {
		t.Fatalf("got %d events, expected %d", len(events), 3*365)
	}

	for day := 0; day < 365; day++ {
		rise, transit, set := events[3*day], events[3*day+1], events[3*day+2]
		if rise.Kind != riseset.Rise || transit.Kind != riseset.Transit || set.Kind != riseset.Set {
			t.Fatalf("day %d: unexpected kinds %v %v %v", day, rise.Kind, transit.Kind, set.Kind)
		}

		// Day length should be reasonable (4-20 hours at 45° latitude)
		dayLength := set.Time.Sub(rise.Time)
		if dayLength < 4*time.Hour || dayLength > 20*time.Hour {
			t.Errorf("day %d: unreasonable day length: %v", day, dayLength)
		}

		// Transit stays within 17 minutes of noon on the prime meridian.
		noon := time.Date(transit.Time.Year(), transit.Time.Month(), transit.Time.Day(), 12, 0, 0, 0, time.UTC)
		if d := transit.Time.Sub(noon); d < -17*time.Minute || d > 17*time.Minute {
			t.Errorf("day %d: transit %v too far from noon", day, transit.Time)
		}
	}
}

func TestSunEventsAgainstGoSunrise(t *testing.T) {
	locations := []struct {
		name     string
		lat, lon float64
	}{
		{"San Francisco", 37.7667, -122.4167},
		{"London", 51.5, -0.1},
		{"Sydney", -33.87, 151.21},
		{"Quito", -0.18, -78.47},
	}
	dates := []time.Time{
		time.Date(2021, 3, 20, 0, 0, 0, 0, time.UTC),
		time.Date(2021, 6, 21, 0, 0, 0, 0, time.UTC),
		time.Date(2021, 9, 22, 0, 0, 0, 0, time.UTC),
		time.Date(2021, 12, 21, 0, 0, 0, 0, time.UTC),
	}

	for _, loc := range locations {
		for _, date := range dates {
			rise, set := sunrise.SunriseSunset(loc.lat, loc.lon, date.Year(), date.Month(), date.Day())
			if rise.IsZero() || set.IsZero() {
				continue
			}

			events, err := Body().Events(context.Background(), date.AddDate(0, 0, -1), date.AddDate(0, 0, 1),
				astro.NewObserver(loc.lat, loc.lon))
			if err != nil {
				t.Fatalf("%s %s: Events returned error: %v", loc.name, date.Format(time.DateOnly), err)
			}

			for _, want := range []riseset.Event{{Time: rise, Kind: riseset.Rise}, {Time: set, Kind: riseset.Set}} {
				if d := nearest(events, want); d > 5*time.Minute {
					t.Errorf("%s %s: %v at %v is %v from the nearest solved %v",
						loc.name, date.Format(time.DateOnly), want.Kind, want.Time, d, want.Kind)
				}
			}
		}
	}
}

func nearest(events []riseset.Event, want riseset.Event) time.Duration {
	best := time.Duration(math.MaxInt64)
	for _, e := range events {
		if e.Kind != want.Kind {
			continue
		}
		d := e.Time.Sub(want.Time)
		if d < 0 {
			d = -d
		}
		if d < best {
			best = d
		}
	}
	return best
}

func BenchmarkSunPosition(b *testing.B) {
	for i := 0; i < b.N; i++ {
		Sun{}.Position(2448908.5)
	}
}

func BenchmarkSunEventsMonth(b *testing.B) {
	from := time.Date(2021, 6, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2021, 6, 30, 0, 0, 0, 0, time.UTC)
	for i := 0; i < b.N; i++ {
		if _, err := Body().Events(context.Background(), from, to, sanFrancisco); err != nil {
			b.Fatal(err)
		}
	}
}
