package restserver

import (
	"time"

	"github.com/chrissnell/almanac/pkg/lunar"
	"github.com/chrissnell/almanac/pkg/riseset"
)

// EventResponse is a rise, transit or set with its local clock time
type EventResponse struct {
	Time  time.Time    `json:"time"`
	Kind  riseset.Kind `json:"kind"`
	Local string       `json:"local"`
}

// EventsResponse answers /events/{observer}/{body}
type EventsResponse struct {
	Observer string          `json:"observer"`
	Body     string          `json:"body"`
	From     string          `json:"from"`
	To       string          `json:"to"`
	TimeZone string          `json:"time_zone"`
	Events   []EventResponse `json:"events"`
}

// PhaseResponse describes the moon at an instant. Angles are in degrees.
type PhaseResponse struct {
	Time         time.Time           `json:"time"`
	PhaseAngle   float64             `json:"phase_angle"`
	Label        string              `json:"label"`
	Illumination float64             `json:"illumination"`
	Elongation   float64             `json:"elongation"`
	Waxing       bool                `json:"waxing"`
	Age          float64             `json:"age"`
	BrightLimb   lunar.CrescentAngle `json:"bright_limb"`
}

// DayResponse answers /day/{observer}
type DayResponse struct {
	Observer string          `json:"observer"`
	Date     string          `json:"date"`
	TimeZone string          `json:"time_zone"`
	Sun      []EventResponse `json:"sun"`
	Moon     []EventResponse `json:"moon"`
	Phase    PhaseResponse   `json:"phase"`
}

// ErrorResponse is the body of every non-2xx reply
type ErrorResponse struct {
	Error string `json:"error"`
}
