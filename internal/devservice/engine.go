package devservice

import (
	"context"
	"time"

	"github.com/rickgorman/devservices/internal/container"
)

// Engine is the slice of the container engine a provider drives.
// *container.Client implements it.
type Engine interface {
	// Host is where published ports are reachable.
	Host() string

	EnsureImage(ctx context.Context, ref string) error
	EnsureNetwork(ctx context.Context, name string) error
	FindRunningByLabel(ctx context.Context, key, value string) (string, error)

	Run(ctx context.Context, cfg container.RunConfig) (string, error)
	WaitForLog(ctx context.Context, id, message string) error
	Inspect(ctx context.Context, id string) (*container.Status, error)
	Stop(ctx context.Context, id string, timeout time.Duration) error
	Remove(ctx context.Context, id string, force bool) error
}

var _ Engine = (*container.Client)(nil)
