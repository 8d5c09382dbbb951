package devservice

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rickgorman/devservices/internal/logging"
)

const (
	stopTimeout  = 10 * time.Second
	closeTimeout = 30 * time.Second
)

// ContainerCloser is the shutdown handle for a dev service container.
// Only the first Close does any work; later calls return nil.
type ContainerCloser struct {
	engine  Engine
	id      string
	service string
	keep    bool

	once sync.Once
}

// NewContainerCloser returns a closer that stops and removes the container.
// When keep is set the container is left running for the next launch.
func NewContainerCloser(engine Engine, id, service string, keep bool) *ContainerCloser {
	return &ContainerCloser{
		engine:  engine,
		id:      id,
		service: service,
		keep:    keep,
	}
}

// Close stops and removes the container.
func (c *ContainerCloser) Close() error {
	var err error
	c.once.Do(func() {
		err = c.shutdown()
	})
	return err
}

func (c *ContainerCloser) shutdown() error {
	if c.keep {
		logging.Info(fmt.Sprintf("Dev Services for %s is no longer needed but is being reused, not shutting down.", c.service),
			"container", c.id)
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), closeTimeout)
	defer cancel()

	if err := c.engine.Stop(ctx, c.id, stopTimeout); err != nil {
		return fmt.Errorf("failed to shut down Dev Services for %s: %w", c.service, err)
	}
	if err := c.engine.Remove(ctx, c.id, true); err != nil {
		return fmt.Errorf("failed to shut down Dev Services for %s: %w", c.service, err)
	}

	logging.Info(fmt.Sprintf("Dev Services for %s shut down.", c.service), "container", c.id)
	return nil
}
