// Package almanac answers rise, transit, set and moon phase questions for
// the configured observers, caching solved days when a cache is available.
package almanac

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/chrissnell/almanac/internal/storage/eventcache"
	"github.com/chrissnell/almanac/pkg/config"
	"github.com/chrissnell/almanac/pkg/lunar"
	"github.com/chrissnell/almanac/pkg/riseset"
	"github.com/chrissnell/almanac/pkg/solar"
)

var (
	ErrUnknownBody     = errors.New("unknown body")
	ErrUnknownObserver = errors.New("unknown observer")
)

// duplicateWindow matches the solver's rule for an event reported at the end
// of one day and again at the start of the next.
const duplicateWindow = 864 * time.Second

// EventCache stores solved events per UTC date.
type EventCache interface {
	Get(ctx context.Context, key eventcache.Key, day time.Time) ([]riseset.Event, bool, error)
	Put(ctx context.Context, key eventcache.Key, day time.Time, events []riseset.Event) error
}

// Service combines the solver, moon phase and cache.
type Service struct {
	observers []config.ObserverData
	bodies    map[string]riseset.Body
	cache     EventCache
	logger    *zap.SugaredLogger
}

// DayReport is everything known about one date for one observer.
type DayReport struct {
	Observer config.ObserverData
	Date     time.Time
	Sun      []riseset.Event
	Moon     []riseset.Event
	Phase    lunar.MoonPhase
}

// NewService creates a service for observers. cache may be nil.
func NewService(observers []config.ObserverData, cache EventCache, logger *zap.SugaredLogger) *Service {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	sun, moon := solar.Body(), lunar.Body()
	return &Service{
		observers: observers,
		bodies: map[string]riseset.Body{
			sun.Name:  sun,
			moon.Name: moon,
		},
		cache:  cache,
		logger: logger,
	}
}

// Observers returns the configured observers.
func (s *Service) Observers() []config.ObserverData {
	return s.observers
}

// Observer looks up an observer by name.
func (s *Service) Observer(name string) (config.ObserverData, error) {
	for _, o := range s.observers {
		if o.Name == name {
			return o, nil
		}
	}
	return config.ObserverData{}, fmt.Errorf("%w: %q", ErrUnknownObserver, name)
}

// Body looks up a body by name.
func (s *Service) Body(name string) (riseset.Body, error) {
	b, ok := s.bodies[name]
	if !ok {
		return riseset.Body{}, fmt.Errorf("%w: %q", ErrUnknownBody, name)
	}
	return b, nil
}

// BodyNames lists the bodies the service knows, sorted.
func (s *Service) BodyNames() []string {
	names := make([]string, 0, len(s.bodies))
	for name := range s.bodies {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Events returns the events of body for the named observer on every UTC
// date from from to to inclusive.
func (s *Service) Events(ctx context.Context, observerName, bodyName string, from, to time.Time) ([]riseset.Event, error) {
	observer, err := s.Observer(observerName)
	if err != nil {
		return nil, err
	}
	return s.EventsAt(ctx, observer, bodyName, from, to)
}

// EventsAt is Events for an observer that need not be configured.
func (s *Service) EventsAt(ctx context.Context, observer config.ObserverData, bodyName string, from, to time.Time) ([]riseset.Event, error) {
	body, err := s.Body(bodyName)
	if err != nil {
		return nil, err
	}
	first, last := utcDate(from), utcDate(to)
	if last.Before(first) {
		return nil, fmt.Errorf("%w: %s to %s", riseset.ErrInvalidRange, first.Format(time.DateOnly), last.Format(time.DateOnly))
	}

	if s.cache == nil {
		return body.Events(ctx, first, last, observer.Observer())
	}

	key := eventcache.Key{
		Observer:  observer.Name,
		Latitude:  observer.Latitude,
		Longitude: observer.Longitude,
		Body:      body.Name,
	}

	byDay := make(map[string][]riseset.Event)
	var missing []time.Time
	for d := first; !d.After(last); d = d.AddDate(0, 0, 1) {
		events, ok, err := s.cache.Get(ctx, key, d)
		if err != nil {
			s.logger.Warnw("event cache read failed", "observer", observer.Name, "body", body.Name, "day", d.Format(time.DateOnly), "error", err)
			ok = false
		}
		if ok {
			byDay[d.Format(time.DateOnly)] = events
		} else {
			missing = append(missing, d)
		}
	}
	s.logger.Debugw("event cache lookup", "observer", observer.Name, "body", body.Name,
		"from", first.Format(time.DateOnly), "to", last.Format(time.DateOnly),
		"hits", len(byDay), "misses", len(missing))

	if len(missing) > 0 {
		// Whole days are cached; a repeat across midnight is only dropped
		// when days are joined below.
		solved, err := body.DailyEvents(ctx, missing[0], missing[len(missing)-1], observer.Observer())
		if err != nil {
			return nil, err
		}
		grouped := make(map[string][]riseset.Event, len(solved))
		for _, day := range solved {
			grouped[day.Date.Format(time.DateOnly)] = day.Events
		}
		for _, d := range missing {
			k := d.Format(time.DateOnly)
			byDay[k] = grouped[k]
			if err := s.cache.Put(ctx, key, d, grouped[k]); err != nil {
				s.logger.Warnw("event cache write failed", "observer", observer.Name, "body", body.Name, "day", d.Format(time.DateOnly), "error", err)
			}
		}
	}

	var events []riseset.Event
	for d := first; !d.After(last); d = d.AddDate(0, 0, 1) {
		events = appendEvents(events, byDay[d.Format(time.DateOnly)])
	}
	return events, nil
}

// appendEvents appends one day's events, dropping a repeat of the previous
// day's last event.
func appendEvents(events, day []riseset.Event) []riseset.Event {
	if len(events) > 0 && len(day) > 0 {
		prev := events[len(events)-1]
		if prev.Kind == day[0].Kind && absDuration(day[0].Time.Sub(prev.Time)) < duplicateWindow {
			day = day[1:]
		}
	}
	return append(events, day...)
}

func absDuration(d time.Duration) time.Duration {
	if d < 0 {
		return -d
	}
	return d
}

// Phase returns the moon phase at t.
func (s *Service) Phase(ctx context.Context, t time.Time) (lunar.MoonPhase, error) {
	if err := ctx.Err(); err != nil {
		return lunar.MoonPhase{}, err
	}
	return lunar.Phase(t), nil
}

// Day reports the sun and moon events for the named observer on the UTC
// date of date, with the moon phase at noon UTC.
func (s *Service) Day(ctx context.Context, observerName string, date time.Time) (*DayReport, error) {
	observer, err := s.Observer(observerName)
	if err != nil {
		return nil, err
	}

	d := utcDate(date)
	report := &DayReport{Observer: observer, Date: d}
	if report.Sun, err = s.EventsAt(ctx, observer, solar.Body().Name, d, d); err != nil {
		return nil, fmt.Errorf("sun events: %w", err)
	}
	if report.Moon, err = s.EventsAt(ctx, observer, lunar.Body().Name, d, d); err != nil {
		return nil, fmt.Errorf("moon events: %w", err)
	}
	if report.Phase, err = s.Phase(ctx, d.Add(12*time.Hour)); err != nil {
		return nil, err
	}
	return report, nil
}

// utcDate is midnight UTC on the calendar date of t as written in t's own
// location, the same date the solver uses.
func utcDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Illuminated formats an illuminated fraction as a whole percentage.
func Illuminated(p lunar.MoonPhase) string {
	return fmt.Sprintf("%d%%", int(math.Round(p.Illumination*100)))
}
