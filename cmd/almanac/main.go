package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/chrissnell/almanac/internal/almanac"
	"github.com/chrissnell/almanac/internal/log"
	"github.com/chrissnell/almanac/pkg/astro"
	"github.com/chrissnell/almanac/pkg/config"
	"github.com/chrissnell/almanac/pkg/riseset"
)

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdout, time.Now()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

type options struct {
	configFile string
	observer   string
	lat, lon   float64
	body       string
	from, to   string
	tz         string
	phaseTime  string
	debug      bool
}

func parseFlags(args []string) (*options, error) {
	o := &options{}
	fs := flag.NewFlagSet("almanac", flag.ContinueOnError)
	fs.StringVar(&o.configFile, "config", "", "YAML configuration with named observers")
	fs.StringVar(&o.observer, "observer", "", "Observer name from -config")
	fs.Float64Var(&o.lat, "lat", 0, "Observer latitude in degrees, north positive")
	fs.Float64Var(&o.lon, "lon", 0, "Observer longitude in degrees, east positive")
	fs.StringVar(&o.body, "body", "sun", "Body: 'sun', 'moon' or 'all'")
	fs.StringVar(&o.from, "from", "", "First date, YYYY-MM-DD (default today)")
	fs.StringVar(&o.to, "to", "", "Last date, YYYY-MM-DD (default -from)")
	fs.StringVar(&o.tz, "tz", "", "Time zone for printed times, e.g. America/Los_Angeles")
	fs.StringVar(&o.phaseTime, "phase-time", "", "Instant for the moon phase (RFC3339 with zone, default now)")
	fs.BoolVar(&o.debug, "debug", false, "Turn on debugging output")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return o, nil
}

func run(ctx context.Context, args []string, out io.Writer, now time.Time) error {
	opts, err := parseFlags(args)
	if err != nil {
		return err
	}

	logger := zap.NewNop().Sugar()
	if opts.debug {
		if err := log.Init(true); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		defer log.Sync()
		logger = log.GetSugaredLogger()
	}

	observer, err := resolveObserver(opts)
	if err != nil {
		return err
	}
	if opts.tz != "" {
		observer.TimeZone = opts.tz
	}
	loc, err := observer.Location()
	if err != nil {
		return err
	}

	from, err := parseDate(opts.from, now.In(loc))
	if err != nil {
		return err
	}
	to, err := parseDate(opts.to, from)
	if err != nil {
		return err
	}

	phaseAt := now
	if opts.phaseTime != "" {
		if phaseAt, err = astro.ParseTime(opts.phaseTime); err != nil {
			return err
		}
	}

	svc := almanac.NewService([]config.ObserverData{observer}, nil, logger)
	bodies := []string{opts.body}
	if opts.body == "all" {
		bodies = svc.BodyNames()
	}

	fmt.Fprintf(out, "Observer: %s (%.4f, %.4f) %s\n", observer.Name, observer.Latitude, observer.Longitude, loc)
	for _, body := range bodies {
		logger.Debugw("solving", "body", body, "from", from.Format(time.DateOnly), "to", to.Format(time.DateOnly))
		events, err := svc.EventsAt(ctx, observer, body, from, to)
		if err != nil {
			return err
		}
		printEvents(out, body, events, loc)
	}

	phase, err := svc.Phase(ctx, phaseAt)
	if err != nil {
		return err
	}
	direction := "Waning"
	if phase.Waxing {
		direction = "Waxing"
	}
	fmt.Fprintf(out, "\nMoon Phase for %s\n", phaseAt.In(loc).Format(time.RFC3339))
	fmt.Fprintf(out, "  Phase Name:   %s\n", phase.Label)
	fmt.Fprintf(out, "  Phase Angle:  %.1f°\n", phase.PhaseAngle.Deg())
	fmt.Fprintf(out, "  Illumination: %s\n", almanac.Illuminated(phase))
	fmt.Fprintf(out, "  Age:          %.1f days\n", phase.Age)
	fmt.Fprintf(out, "  Elongation:   %.1f°\n", phase.Elongation.Deg())
	fmt.Fprintf(out, "  Direction:    %s\n", direction)
	return nil
}

func resolveObserver(opts *options) (config.ObserverData, error) {
	if opts.observer == "" {
		o := config.ObserverData{Name: "observer", Latitude: opts.lat, Longitude: opts.lon}
		if err := (&config.ConfigData{Observers: []config.ObserverData{o}}).Validate(); err != nil {
			return o, err
		}
		return o, nil
	}
	if opts.configFile == "" {
		return config.ObserverData{}, errors.New("-observer requires -config")
	}
	cfg, err := config.NewYAMLProvider(opts.configFile).LoadConfig()
	if err != nil {
		return config.ObserverData{}, err
	}
	o, ok := cfg.FindObserver(opts.observer)
	if !ok {
		return o, fmt.Errorf("%w: %q", almanac.ErrUnknownObserver, opts.observer)
	}
	return o, nil
}

// parseDate reads a YYYY-MM-DD date as a UTC calendar date. An empty string
// means the date of fallback as written in its own location.
func parseDate(s string, fallback time.Time) (time.Time, error) {
	if s == "" {
		y, m, d := fallback.Date()
		return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), nil
	}
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", s)
	}
	return t, nil
}

func printEvents(out io.Writer, body string, events []riseset.Event, loc *time.Location) {
	fmt.Fprintf(out, "\n%s\n", strings.ToUpper(body[:1])+body[1:])
	if len(events) == 0 {
		fmt.Fprintln(out, "  no rise or set in this period")
		return
	}
	for _, e := range events {
		fmt.Fprintf(out, "  %s  %-8s %s\n", e.Time.In(loc).Format("Mon Jan 2"), e.Kind, riseset.FormatEventTime(e.Time, loc))
	}
}
