package riseset

import (
	"fmt"
	"time"

	"github.com/chrissnell/almanac/pkg/astro"
)

// Kind identifies a horizon or meridian crossing.
type Kind int

const (
	// Rise is the body appearing above the horizon.
	Rise Kind = iota
	// Transit is the crossing of the local meridian.
	Transit
	// Set is the body dropping below the horizon.
	Set
)

var kindNames = [...]string{
	Rise:    "rise",
	Transit: "transit",
	Set:     "set",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// ParseKind is the inverse of Kind.String.
func ParseKind(s string) (Kind, error) {
	for k, name := range kindNames {
		if name == s {
			return Kind(k), nil
		}
	}
	return 0, fmt.Errorf("unknown event kind %q", s)
}

// MarshalText encodes k by name, e.g. "rise".
func (k Kind) MarshalText() ([]byte, error) {
	if k < 0 || int(k) >= len(kindNames) {
		return nil, fmt.Errorf("unknown event kind %d", int(k))
	}
	return []byte(kindNames[k]), nil
}

// UnmarshalText decodes a name written by MarshalText.
func (k *Kind) UnmarshalText(text []byte) error {
	parsed, err := ParseKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// Event is a rise, transit or set at a UTC instant.
type Event struct {
	Time time.Time `json:"time"`
	Kind Kind      `json:"kind"`
}

// UTEvent is an Event whose time is still a universal time Julian day.
type UTEvent struct {
	UT   astro.UT
	Kind Kind
}

// Event converts e to an Event in UTC.
func (e UTEvent) Event() Event {
	return Event{Time: astro.UTToTime(e.UT), Kind: e.Kind}
}

// FormatEventTime renders t as a 12-hour clock time in loc, e.g. "5:52 AM".
// A nil loc means UTC.
func FormatEventTime(t time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}
	return t.In(loc).Format("3:04 PM")
}
