package cachewarmer

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/chrissnell/almanac/internal/almanac"
	"github.com/chrissnell/almanac/internal/storage/eventcache"
	"github.com/chrissnell/almanac/pkg/config"
	"github.com/chrissnell/almanac/pkg/riseset"
)

// memoryCache records what the service stores.
type memoryCache struct {
	mu      sync.Mutex
	days    map[string][]riseset.Event
	cutoffs []time.Time
}

func newMemoryCache() *memoryCache {
	return &memoryCache{days: make(map[string][]riseset.Event)}
}

func cacheKey(key eventcache.Key, day time.Time) string {
	return key.Observer + "/" + key.Body + "/" + day.Format(time.DateOnly)
}

func (m *memoryCache) Get(_ context.Context, key eventcache.Key, day time.Time) ([]riseset.Event, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	events, ok := m.days[cacheKey(key, day)]
	return events, ok, nil
}

func (m *memoryCache) Put(_ context.Context, key eventcache.Key, day time.Time, events []riseset.Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.days[cacheKey(key, day)] = events
	return nil
}

func (m *memoryCache) Purge(_ context.Context, cutoff time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cutoffs = append(m.cutoffs, cutoff)
	return 0, nil
}

var observers = []config.ObserverData{
	{Name: "sf", Latitude: 37.7749, Longitude: -122.4194},
	{Name: "boston", Latitude: 42.3601, Longitude: -71.0589},
}

func TestNewControllerDisabled(t *testing.T) {
	svc := almanac.NewService(observers, nil, nil)
	ctrl, err := NewController(context.Background(), &sync.WaitGroup{}, svc, nil, 0, nil)
	if err != nil || ctrl != nil {
		t.Errorf("NewController with no prefetch = %v, %v; expected nil, nil", ctrl, err)
	}

	if _, err := NewController(context.Background(), &sync.WaitGroup{}, svc, nil, -1, nil); err == nil {
		t.Error("negative prefetch days should fail")
	}
	if _, err := NewController(context.Background(), &sync.WaitGroup{}, nil, nil, 3, nil); err == nil {
		t.Error("missing service should fail")
	}
}

func TestWarm(t *testing.T) {
	cache := newMemoryCache()
	svc := almanac.NewService(observers, cache, nil)
	ctrl, err := NewController(context.Background(), &sync.WaitGroup{}, svc, cache, 3, nil)
	if err != nil {
		t.Fatalf("NewController returned error: %v", err)
	}
	now := time.Date(2020, 7, 2, 18, 30, 0, 0, time.UTC)
	ctrl.now = func() time.Time { return now }

	ctrl.warm(context.Background())

	// Two observers, two bodies, three days.
	if n := len(cache.days); n != 12 {
		t.Errorf("cached %d days, expected 12", n)
	}
	for _, o := range observers {
		for _, body := range []string{"sun", "moon"} {
			for _, d := range []string{"2020-07-02", "2020-07-03", "2020-07-04"} {
				if _, ok := cache.days[o.Name+"/"+body+"/"+d]; !ok {
					t.Errorf("missing %s %s %s", o.Name, body, d)
				}
			}
		}
	}

	if len(cache.cutoffs) != 1 || !cache.cutoffs[0].Equal(now.Add(-DefaultRetention)) {
		t.Errorf("purge cutoffs = %v", cache.cutoffs)
	}
}

func TestStartStop(t *testing.T) {
	cache := newMemoryCache()
	svc := almanac.NewService(observers[:1], cache, nil)

	tests := []struct {
		name string
		stop func(cancel context.CancelFunc, ctrl *Controller)
	}{
		{"context cancelled", func(cancel context.CancelFunc, _ *Controller) { cancel() }},
		{"stop requested", func(_ context.CancelFunc, ctrl *Controller) { ctrl.Stop(); ctrl.Stop() }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()
			wg := &sync.WaitGroup{}

			ctrl, err := NewController(ctx, wg, svc, cache, 1, nil)
			if err != nil {
				t.Fatalf("NewController returned error: %v", err)
			}
			if err := ctrl.StartController(); err != nil {
				t.Fatalf("StartController returned error: %v", err)
			}
			tt.stop(cancel, ctrl)

			done := make(chan struct{})
			go func() {
				wg.Wait()
				close(done)
			}()
			select {
			case <-done:
			case <-time.After(10 * time.Second):
				t.Fatal("cache warmer did not stop")
			}
		})
	}
}
