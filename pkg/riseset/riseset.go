// Package riseset finds the times a body rises, transits and sets for an
// observer, following Meeus chapter 15.
package riseset

import (
	"context"
	"errors"
	"fmt"
	"math"
	"runtime"
	"sort"
	"time"

	"github.com/soniakeys/unit"
	"golang.org/x/sync/errgroup"

	"github.com/chrissnell/almanac/pkg/astro"
	"github.com/chrissnell/almanac/pkg/spline"
)

const (
	// siderealSpeed is the Earth's rotation in radians per solar day.
	siderealSpeed = 6.30038809259

	// refinements is the fixed number of correction passes per event.
	refinements = 3

	// duplicateWindow is how close, in days, an event found at the end of
	// one day and the start of the next must be to count as the same event.
	duplicateWindow = 0.01
)

// ErrInvalidRange is returned when the last requested date precedes the first.
var ErrInvalidRange = errors.New("riseset: end date is before start date")

// Positioner computes the apparent geocentric position of a body at a
// dynamical time.
type Positioner interface {
	Position(dt astro.DT) (astro.SphericalCoordinate, astro.EquatorialCoordinate)
}

// Body is something that rises and sets. ApparentAltitude is the geometric
// altitude of the body's centre at the moment it appears on the horizon,
// allowing for refraction, semi-diameter and parallax.
type Body struct {
	Name             string
	ApparentAltitude unit.Angle
	Positioner       Positioner
}

// Events returns the rise, transit and set times of the body on every UTC
// date from the date of from to the date of to inclusive, in time order.
// Only the calendar dates of from and to are used. Days on which the body
// stays above or below the horizon produce no events at all.
func (b Body) Events(ctx context.Context, from, to time.Time, observer astro.Observer) ([]Event, error) {
	start, positions, err := b.window(ctx, from, to)
	if err != nil {
		return nil, err
	}

	utEvents, err := b.EventsFromPositions(positions, start, observer)
	if err != nil {
		return nil, err
	}

	events := make([]Event, len(utEvents))
	for i, e := range utEvents {
		events[i] = e.Event()
	}
	return events, nil
}

// DayEvents holds the events solved from one UTC midnight.
type DayEvents struct {
	Date   time.Time
	Events []Event
}

// DailyEvents returns one entry per UTC date from the date of from to the
// date of to, each with that day's events in time order. A day keeps its
// first event even when Events would drop it as a repeat of the previous
// day's last, so every entry is complete on its own.
func (b Body) DailyEvents(ctx context.Context, from, to time.Time, observer astro.Observer) ([]DayEvents, error) {
	start, positions, err := b.window(ctx, from, to)
	if err != nil {
		return nil, err
	}

	days, err := b.solveDays(positions, start, observer)
	if err != nil {
		return nil, err
	}

	out := make([]DayEvents, len(days))
	for i, day := range days {
		out[i].Date = astro.UTToTime(start + astro.UT(i+1))
		for _, e := range day {
			out[i].Events = append(out[i].Events, e.Event())
		}
	}
	return out, nil
}

// window computes the positions at every midnight from the day before from
// to the day after to, and returns the first of those midnights.
func (b Body) window(ctx context.Context, from, to time.Time) (astro.UT, []astro.EquatorialCoordinate, error) {
	first, last := astro.DateToUT(from), astro.DateToUT(to)
	if last < first {
		return 0, nil, fmt.Errorf("%w: %s to %s", ErrInvalidRange, from.Format(time.DateOnly), to.Format(time.DateOnly))
	}

	// One extra midnight each side so every requested date has neighbours
	// to interpolate between.
	start := first - 1
	n := int(math.Round(float64(last-first))) + 3

	positions, err := b.positions(ctx, start, n)
	if err != nil {
		return 0, nil, err
	}
	return start, positions, nil
}

// positions computes the equatorial position at n consecutive midnights.
// Each midnight is independent so they are computed concurrently.
func (b Body) positions(ctx context.Context, start astro.UT, n int) ([]astro.EquatorialCoordinate, error) {
	positions := make([]astro.EquatorialCoordinate, n)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i := 0; i < n; i++ {
		i := i
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			_, eq := b.Positioner.Position(astro.UTToDT(start + astro.UT(i)))
			positions[i] = eq
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return positions, nil
}

// EventsFromPositions solves for events given the body's equatorial
// position at consecutive midnights starting at startMidnight. Events are
// found for every day except the first and last, which only anchor the
// interpolation.
func (b Body) EventsFromPositions(positions []astro.EquatorialCoordinate, startMidnight astro.UT, observer astro.Observer) ([]UTEvent, error) {
	days, err := b.solveDays(positions, startMidnight, observer)
	if err != nil {
		return nil, err
	}

	var output []UTEvent
	for _, day := range days {
		output = appendDay(output, day)
	}
	return output, nil
}

// solveDays returns the sorted events of each interior midnight, nil for a
// day without a horizon crossing.
func (b Body) solveDays(positions []astro.EquatorialCoordinate, startMidnight astro.UT, observer astro.Observer) ([][]UTEvent, error) {
	midnights := make([]float64, len(positions))
	decls := make([]float64, len(positions))
	ras := make([]unit.Angle, len(positions))
	for i, eq := range positions {
		midnights[i] = float64(startMidnight) + float64(i)
		decls[i] = eq.Declination.Rad()
		ras[i] = eq.RightAscension
	}

	declInterp, err := spline.New(midnights, decls)
	if err != nil {
		return nil, fmt.Errorf("interpolating declination: %w", err)
	}
	raInterp, err := spline.NewAngular(midnights, ras)
	if err != nil {
		return nil, fmt.Errorf("interpolating right ascension: %w", err)
	}

	s := solver{
		altitude: b.ApparentAltitude,
		observer: observer,
		decl:     declInterp,
		ra:       raInterp,
	}
	s.sinLat, s.cosLat = observer.Latitude.Sincos()

	var days [][]UTEvent
	for i := 1; i < len(positions)-1; i++ {
		day, ok := s.solveDay(astro.UT(midnights[i]), positions[i])
		if ok {
			sort.Slice(day, func(x, y int) bool { return day[x].UT < day[y].UT })
		}
		days = append(days, day)
	}
	return days, nil
}

// appendDay appends one day's sorted events to output. The last event of
// one day can reappear as the first of the next; that copy is dropped.
func appendDay(output, day []UTEvent) []UTEvent {
	if len(output) > 0 && len(day) > 0 {
		prev := output[len(output)-1]
		if prev.Kind == day[0].Kind && math.Abs(float64(prev.UT-day[0].UT)) < duplicateWindow {
			day = day[1:]
		}
	}
	return append(output, day...)
}

type solver struct {
	altitude       unit.Angle
	observer       astro.Observer
	sinLat, cosLat float64
	decl           *spline.Interpolator
	ra             *spline.AngularInterpolator
}

// solveDay returns the three events of the day starting at midnight, or
// false if the body does not cross the horizon that day.
func (s solver) solveDay(midnight astro.UT, eq astro.EquatorialCoordinate) ([]UTEvent, bool) {
	sinDecl, cosDecl := eq.Declination.Sincos()
	cosH0 := (s.altitude.Sin() - s.sinLat*sinDecl) / (s.cosLat * cosDecl)
	if !(cosH0 >= -1 && cosH0 <= 1) {
		return nil, false
	}

	theta0 := astro.GreenwichSiderealTime(midnight)
	h0 := math.Acos(cosH0) / (2 * math.Pi)
	transit := unit.PMod((eq.RightAscension+s.observer.Longitude-theta0).Rad()/(2*math.Pi), 1)
	rise := unit.PMod(transit-h0, 1)
	set := unit.PMod(transit+h0, 1)

	for i := 0; i < refinements; i++ {
		transit = s.refineTransit(midnight, theta0, transit)
		rise = s.refineCrossing(midnight, theta0, rise)
		set = s.refineCrossing(midnight, theta0, set)
	}

	return []UTEvent{
		{UT: midnight + astro.UT(rise), Kind: Rise},
		{UT: midnight + astro.UT(transit), Kind: Transit},
		{UT: midnight + astro.UT(set), Kind: Set},
	}, true
}

// hourAngle is the local hour angle m days after midnight, in (-π, π].
func (s solver) hourAngle(theta0 unit.Angle, m float64, alpha unit.Angle) unit.Angle {
	h := (theta0 + unit.Angle(siderealSpeed*m) - s.observer.Longitude - alpha).Mod1()
	if h > math.Pi {
		h -= 2 * math.Pi
	}
	return h
}

func (s solver) refineTransit(midnight astro.UT, theta0 unit.Angle, m float64) float64 {
	alpha := s.ra.At(float64(midnight) + m)
	h := s.hourAngle(theta0, m, alpha)
	return unit.PMod(m-h.Rad()/(2*math.Pi), 1)
}

func (s solver) refineCrossing(midnight astro.UT, theta0 unit.Angle, m float64) float64 {
	x := float64(midnight) + m
	alpha := s.ra.At(x)
	sinDecl, cosDecl := math.Sincos(s.decl.At(x))

	h := s.hourAngle(theta0, m, alpha)
	altitude := math.Asin(astro.Clamp(sinDecl*s.sinLat + s.cosLat*cosDecl*h.Cos()))
	dm := (altitude - s.altitude.Rad()) / (2 * math.Pi * cosDecl * s.cosLat * h.Sin())
	return unit.PMod(m+dm, 1)
}
