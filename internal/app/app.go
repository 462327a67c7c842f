package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"go.uber.org/zap"

	"github.com/chrissnell/almanac/internal/almanac"
	"github.com/chrissnell/almanac/internal/controllers/cachewarmer"
	"github.com/chrissnell/almanac/internal/managers"
	"github.com/chrissnell/almanac/internal/storage/eventcache"
	"github.com/chrissnell/almanac/pkg/config"
)

// App represents the main application
type App struct {
	configProvider config.ConfigProvider
	logger         *zap.SugaredLogger
}

// New creates a new application instance
func New(configProvider config.ConfigProvider, logger *zap.SugaredLogger) *App {
	return &App{
		configProvider: configProvider,
		logger:         logger,
	}
}

// Run starts the application and blocks until shutdown
func (a *App) Run(ctx context.Context) error {
	var wg sync.WaitGroup

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	cfg, err := a.configProvider.LoadConfig()
	if err != nil {
		return fmt.Errorf("error loading configuration: %w", err)
	}
	if len(cfg.Observers) == 0 {
		a.logger.Warn("no observers configured; only /moon/phase will be useful")
	}

	// Open the event cache if one was configured
	var cache almanac.EventCache
	var purger cachewarmer.Purger
	if cfg.Storage.CachePath != "" {
		c, err := eventcache.Open(ctx, cfg.Storage.CachePath, a.logger)
		if err != nil {
			return err
		}
		defer c.Close()
		cache, purger = c, c
	}

	service := almanac.NewService(cfg.Observers, cache, a.logger)

	cm, err := managers.NewControllerManager(ctx, &wg, cfg, service, purger, a.logger)
	if err != nil {
		return err
	}
	if err := cm.StartControllers(); err != nil {
		return err
	}

	a.logger.Infow("application started successfully", "observers", len(cfg.Observers), "cache", cfg.Storage.CachePath != "")

	// Set up signal handling
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigs)

	// Wait for shutdown signal
	select {
	case <-sigs:
		a.logger.Info("shutdown signal received, initiating graceful shutdown...")
	case <-ctx.Done():
		a.logger.Info("context cancelled, shutting down...")
	}

	// Cancel context to signal all goroutines to stop
	cancel()

	// Wait for all workers to terminate
	a.logger.Info("waiting for all workers to terminate...")
	wg.Wait()
	a.logger.Info("shutdown complete")

	return nil
}
