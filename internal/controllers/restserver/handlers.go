package restserver

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/chrissnell/almanac/internal/almanac"
	"github.com/chrissnell/almanac/pkg/astro"
	"github.com/chrissnell/almanac/pkg/config"
	"github.com/chrissnell/almanac/pkg/lunar"
	"github.com/chrissnell/almanac/pkg/responseformat"
	"github.com/chrissnell/almanac/pkg/riseset"
)

// maxRangeDays bounds a single events request.
const maxRangeDays = 366

// Handlers contains all HTTP handlers for the REST server
type Handlers struct {
	controller *Controller
	formatter  *responseformat.Formatter
	now        func() time.Time
}

// NewHandlers creates a new handlers instance
func NewHandlers(ctrl *Controller) *Handlers {
	return &Handlers{
		controller: ctrl,
		formatter:  responseformat.NewFormatter(),
		now:        time.Now,
	}
}

// GetObservers lists the configured observers
func (h *Handlers) GetObservers(w http.ResponseWriter, req *http.Request) {
	observers := h.controller.service.Observers()
	if observers == nil {
		observers = []config.ObserverData{}
	}
	h.write(w, req, observers)
}

// GetEvents returns rise, transit and set times for one body.
// Query parameters: from, to (YYYY-MM-DD, default today UTC)
func (h *Handlers) GetEvents(w http.ResponseWriter, req *http.Request) {
	vars := mux.Vars(req)

	observer, loc, ok := h.observer(w, vars["observer"])
	if !ok {
		return
	}

	today := h.now().UTC()
	from, err := parseDate(req.URL.Query().Get("from"), today)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	to, err := parseDate(req.URL.Query().Get("to"), from)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if to.Sub(from) >= maxRangeDays*24*time.Hour {
		writeError(w, http.StatusBadRequest, fmt.Errorf("date range longer than %d days", maxRangeDays))
		return
	}

	events, err := h.controller.service.Events(req.Context(), observer.Name, vars["body"], from, to)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	h.write(w, req, EventsResponse{
		Observer: observer.Name,
		Body:     vars["body"],
		From:     from.Format(time.DateOnly),
		To:       to.Format(time.DateOnly),
		TimeZone: loc.String(),
		Events:   eventResponses(events, loc),
	})
}

// GetDay returns sun and moon events and the moon phase for one date.
// Query parameter: date (YYYY-MM-DD, default today UTC)
func (h *Handlers) GetDay(w http.ResponseWriter, req *http.Request) {
	observer, loc, ok := h.observer(w, mux.Vars(req)["observer"])
	if !ok {
		return
	}

	date, err := parseDate(req.URL.Query().Get("date"), h.now().UTC())
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	report, err := h.controller.service.Day(req.Context(), observer.Name, date)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	noon := report.Date.Add(12 * time.Hour)
	h.write(w, req, DayResponse{
		Observer: observer.Name,
		Date:     report.Date.Format(time.DateOnly),
		TimeZone: loc.String(),
		Sun:      eventResponses(report.Sun, loc),
		Moon:     eventResponses(report.Moon, loc),
		Phase:    phaseResponse(noon, report.Phase, nil),
	})
}

// GetMoonPhase returns the moon phase at an instant.
// Query parameters: time (RFC 3339 with zone, default now),
// observer (optional, for the bright limb orientation)
func (h *Handlers) GetMoonPhase(w http.ResponseWriter, req *http.Request) {
	t := h.now()
	if s := req.URL.Query().Get("time"); s != "" {
		var err error
		if t, err = astro.ParseTime(s); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
	}

	var obs *astro.Observer
	if name := req.URL.Query().Get("observer"); name != "" {
		observer, _, ok := h.observer(w, name)
		if !ok {
			return
		}
		o := observer.Observer()
		obs = &o
	}

	phase, err := h.controller.service.Phase(req.Context(), t)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	h.write(w, req, phaseResponse(t, phase, obs))
}

// observer resolves a configured observer and its time zone, writing the
// error response itself when it cannot.
func (h *Handlers) observer(w http.ResponseWriter, name string) (config.ObserverData, *time.Location, bool) {
	observer, err := h.controller.service.Observer(name)
	if err != nil {
		writeError(w, http.StatusNotFound, err)
		return observer, nil, false
	}
	loc, err := observer.Location()
	if err != nil {
		h.controller.logger.Errorw("observer has bad time zone", "observer", name, "error", err)
		writeError(w, http.StatusInternalServerError, err)
		return observer, nil, false
	}
	return observer, loc, true
}

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

func eventResponses(events []riseset.Event, loc *time.Location) []EventResponse {
	out := make([]EventResponse, len(events))
	for i, e := range events {
		out[i] = EventResponse{
			Time:  e.Time,
			Kind:  e.Kind,
			Local: riseset.FormatEventTime(e.Time, loc),
		}
	}
	return out
}

func phaseResponse(t time.Time, p lunar.MoonPhase, observer *astro.Observer) PhaseResponse {
	return PhaseResponse{
		Time:         t,
		PhaseAngle:   p.PhaseAngle.Deg(),
		Label:        p.Label,
		Illumination: p.Illumination,
		Elongation:   p.Elongation.Deg(),
		Waxing:       p.Waxing,
		Age:          p.Age,
		BrightLimb:   lunar.BrightLimb(t, observer),
	}
}

func (h *Handlers) writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, almanac.ErrUnknownObserver), errors.Is(err, almanac.ErrUnknownBody):
		writeError(w, http.StatusNotFound, err)
	case errors.Is(err, riseset.ErrInvalidRange):
		writeError(w, http.StatusBadRequest, err)
	default:
		h.controller.logger.Errorw("almanac request failed", "error", err)
		writeError(w, http.StatusInternalServerError, errors.New("internal error"))
	}
}

// write sends v as JSON, or MessagePack when the request asks for it.
func (h *Handlers) write(w http.ResponseWriter, req *http.Request, v any) {
	if err := h.formatter.WriteResponse(w, req, http.StatusOK, v); err != nil {
		h.controller.logger.Errorw("error encoding response", "path", req.URL.Path, "error", err)
	}
}

// writeError always answers in JSON.
func writeError(w http.ResponseWriter, status int, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(ErrorResponse{Error: err.Error()})
}
