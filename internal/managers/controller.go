package managers

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/chrissnell/almanac/internal/almanac"
	"github.com/chrissnell/almanac/internal/controllers/cachewarmer"
	"github.com/chrissnell/almanac/internal/controllers/restserver"
	"github.com/chrissnell/almanac/pkg/config"
)

// ControllerManager interface for the controller manager
type ControllerManager interface {
	StartControllers() error
	Controllers() int
}

// Controller is an interface that provides standard methods for various controller backends
type Controller interface {
	StartController() error
}

// NewControllerManager creates the REST server and, when a cache is
// configured, the cache warmer.
func NewControllerManager(ctx context.Context, wg *sync.WaitGroup, c *config.ConfigData, service *almanac.Service, purger cachewarmer.Purger, logger *zap.SugaredLogger) (ControllerManager, error) {
	cm := &controllerManager{
		ctx:         ctx,
		wg:          wg,
		config:      c,
		service:     service,
		logger:      logger,
		controllers: make([]Controller, 0),
	}

	rest, err := restserver.NewController(ctx, wg, c.Server, service, logger)
	if err != nil {
		return nil, fmt.Errorf("error creating REST controller: %v", err)
	}
	cm.controllers = append(cm.controllers, rest)

	if purger != nil {
		warmer, err := cachewarmer.NewController(ctx, wg, service, purger, c.Storage.PrefetchDays, logger)
		if err != nil {
			return nil, fmt.Errorf("error creating cache warmer: %v", err)
		}
		if warmer != nil {
			cm.controllers = append(cm.controllers, warmer)
		}
	}

	return cm, nil
}

type controllerManager struct {
	ctx         context.Context
	wg          *sync.WaitGroup
	config      *config.ConfigData
	service     *almanac.Service
	logger      *zap.SugaredLogger
	controllers []Controller
}

func (c *controllerManager) StartControllers() error {
	c.logger.Info("Starting controller manager...")

	for _, controller := range c.controllers {
		err := controller.StartController()
		if err != nil {
			return fmt.Errorf("error starting controller: %v", err)
		}
	}

	c.logger.Infof("Started %d controllers successfully", len(c.controllers))
	return nil
}

func (c *controllerManager) Controllers() int {
	return len(c.controllers)
}
