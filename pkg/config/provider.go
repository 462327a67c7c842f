package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/chrissnell/almanac/pkg/astro"
)

// ConfigProvider defines the interface for configuration data sources
type ConfigProvider interface {
	// Load complete configuration
	LoadConfig() (*ConfigData, error)

	// Get specific configuration sections
	GetObservers() ([]ObserverData, error)
	GetServer() (*ServerData, error)
	GetStorage() (*StorageData, error)

	IsReadOnly() bool
	Close() error
}

// ConfigData represents the complete configuration structure
type ConfigData struct {
	Observers []ObserverData `json:"observers"`
	Server    ServerData     `json:"server,omitempty"`
	Storage   StorageData    `json:"storage,omitempty"`
}

// ObserverData is a named place on the Earth. Longitude is east positive,
// as on a map.
type ObserverData struct {
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	TimeZone  string  `json:"time_zone,omitempty"`
}

// Observer converts o into the astronomical convention.
func (o ObserverData) Observer() astro.Observer {
	return astro.NewObserver(o.Latitude, o.Longitude)
}

// Location loads the observer's time zone, UTC when none is set.
func (o ObserverData) Location() (*time.Location, error) {
	if o.TimeZone == "" {
		return time.UTC, nil
	}
	return time.LoadLocation(o.TimeZone)
}

// ServerData holds the REST server settings
type ServerData struct {
	ListenAddr string `json:"listen_addr,omitempty"`
	Port       int    `json:"port,omitempty"`
	Cert       string `json:"cert,omitempty"`
	Key        string `json:"key,omitempty"`
}

// StorageData holds the event cache settings. An empty CachePath disables
// the cache. PrefetchDays is how many days ahead the cache is kept warm.
type StorageData struct {
	CachePath    string `json:"cache_path,omitempty"`
	PrefetchDays int    `json:"prefetch_days,omitempty"`
}

const (
	DefaultListenAddr   = "0.0.0.0"
	DefaultPort         = 8080
	DefaultPrefetchDays = 7
)

var ErrInvalidConfig = errors.New("invalid configuration")

// ApplyDefaults fills in unset server settings.
func (c *ConfigData) ApplyDefaults() {
	if c.Server.ListenAddr == "" {
		c.Server.ListenAddr = DefaultListenAddr
	}
	if c.Server.Port == 0 {
		c.Server.Port = DefaultPort
	}
	if c.Storage.CachePath != "" && c.Storage.PrefetchDays == 0 {
		c.Storage.PrefetchDays = DefaultPrefetchDays
	}
}

// Validate checks observers for range, uniqueness and loadable time zones.
func (c *ConfigData) Validate() error {
	var errs []error
	seen := make(map[string]bool)
	for i, o := range c.Observers {
		if o.Name == "" {
			errs = append(errs, fmt.Errorf("observer %d has no name", i))
		} else if seen[o.Name] {
			errs = append(errs, fmt.Errorf("observer %q is defined more than once", o.Name))
		}
		seen[o.Name] = true

		if o.Latitude < -90 || o.Latitude > 90 {
			errs = append(errs, fmt.Errorf("observer %q: latitude %v out of range [-90, 90]", o.Name, o.Latitude))
		}
		if o.Longitude < -180 || o.Longitude > 180 {
			errs = append(errs, fmt.Errorf("observer %q: longitude %v out of range [-180, 180]", o.Name, o.Longitude))
		}
		if _, err := o.Location(); err != nil {
			errs = append(errs, fmt.Errorf("observer %q: %w", o.Name, err))
		}
	}
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("server port %d out of range", c.Server.Port))
	}
	if c.Storage.PrefetchDays < 0 || c.Storage.PrefetchDays > 366 {
		errs = append(errs, fmt.Errorf("storage prefetch days %d out of range [0, 366]", c.Storage.PrefetchDays))
	}
	if (c.Server.Cert == "") != (c.Server.Key == "") {
		errs = append(errs, errors.New("server cert and key must be set together"))
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
	}
	return nil
}

// FindObserver returns the observer with the given name.
func (c *ConfigData) FindObserver(name string) (ObserverData, bool) {
	for _, o := range c.Observers {
		if o.Name == name {
			return o, true
		}
	}
	return ObserverData{}, false
}
