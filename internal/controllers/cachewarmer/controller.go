// Package cachewarmer keeps the event cache filled for the days ahead of
// every configured observer and drops entries that have grown old. It runs
// independently of the REST server.
package cachewarmer

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/chrissnell/almanac/internal/almanac"
)

const (
	// DefaultInterval is the time between warm-up passes.
	DefaultInterval = time.Hour

	// DefaultRetention is how long a computed day stays cached.
	DefaultRetention = 30 * 24 * time.Hour
)

// Purger removes cached days computed before cutoff.
type Purger interface {
	Purge(ctx context.Context, cutoff time.Time) (int64, error)
}

// Controller manages the cache warm-up lifecycle
type Controller struct {
	ctx          context.Context
	wg           *sync.WaitGroup
	service      *almanac.Service
	purger       Purger
	logger       *zap.SugaredLogger
	prefetchDays int
	interval     time.Duration
	retention    time.Duration
	now          func() time.Time
	stopChan     chan struct{}
	stopOnce     sync.Once
}

// NewController creates a new cache warmer. Returns nil if prefetchDays is
// zero, meaning warming is disabled.
func NewController(ctx context.Context, wg *sync.WaitGroup, service *almanac.Service, purger Purger, prefetchDays int, logger *zap.SugaredLogger) (*Controller, error) {
	if service == nil {
		return nil, fmt.Errorf("almanac service required for cache warmer")
	}
	if prefetchDays < 0 {
		return nil, fmt.Errorf("invalid prefetch days %d", prefetchDays)
	}
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	if prefetchDays == 0 {
		logger.Debug("prefetch disabled, cache warmer will not be created")
		return nil, nil
	}

	return &Controller{
		ctx:          ctx,
		wg:           wg,
		service:      service,
		purger:       purger,
		logger:       logger,
		prefetchDays: prefetchDays,
		interval:     DefaultInterval,
		retention:    DefaultRetention,
		now:          time.Now,
		stopChan:     make(chan struct{}),
	}, nil
}

// StartController runs the warm-up loop in the background
func (c *Controller) StartController() error {
	c.logger.Infow("starting cache warmer", "prefetch_days", c.prefetchDays, "interval", c.interval)
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		c.run()
	}()
	return nil
}

func (c *Controller) run() {
	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	c.warm(c.ctx)
	for {
		select {
		case <-c.ctx.Done():
			c.logger.Info("cache warmer stopped (context cancelled)")
			return
		case <-c.stopChan:
			c.logger.Info("cache warmer stopped (stop requested)")
			return
		case <-ticker.C:
			c.warm(c.ctx)
		}
	}
}

// Stop gracefully stops the controller
func (c *Controller) Stop() error {
	c.stopOnce.Do(func() { close(c.stopChan) })
	return nil
}

// warm runs one pass: purge, then fill every observer and body from today
// through the prefetch window. Errors are logged and the pass continues.
func (c *Controller) warm(ctx context.Context) {
	start := time.Now()
	now := c.now().UTC()

	if c.purger != nil {
		n, err := c.purger.Purge(ctx, now.Add(-c.retention))
		if err != nil {
			c.logger.Errorf("cache purge failed: %v", err)
		} else if n > 0 {
			c.logger.Infow("purged cached days", "days", n)
		}
	}

	from := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 0, c.prefetchDays-1)
	for _, observer := range c.service.Observers() {
		for _, body := range c.service.BodyNames() {
			if ctx.Err() != nil {
				return
			}
			if _, err := c.service.Events(ctx, observer.Name, body, from, to); err != nil {
				c.logger.Errorw("cache warm-up failed", "observer", observer.Name, "body", body, "error", err)
			}
		}
	}
	c.logger.Debugw("cache warm-up complete", "from", from.Format(time.DateOnly), "to", to.Format(time.DateOnly), "duration", time.Since(start))
}
