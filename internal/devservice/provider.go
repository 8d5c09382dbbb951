package devservice

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"
)

// LaunchMode is the mode the host application was launched in.
type LaunchMode int

const (
	LaunchNormal LaunchMode = iota
	LaunchTest
	LaunchDev
)

func (m LaunchMode) String() string {
	switch m {
	case LaunchTest:
		return "test"
	case LaunchDev:
		return "dev"
	default:
		return "normal"
	}
}

// ParseLaunchMode parses "normal", "test" or "dev" (case-insensitive).
func ParseLaunchMode(s string) (LaunchMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "normal", "prod":
		return LaunchNormal, nil
	case "test":
		return LaunchTest, nil
	case "dev":
		return LaunchDev, nil
	default:
		return LaunchNormal, fmt.Errorf("%w: unknown launch mode %q", ErrInvalidConfig, s)
	}
}

// StartRequest describes the datasource a provider should start.
// Empty strings and zero values mean "not set"; providers apply their defaults.
type StartRequest struct {
	Username     string
	Password     string
	DatabaseName string
	ImageName    string

	// ContainerEnv is passed to the container as environment variables.
	ContainerEnv map[string]string

	// URLParams are appended to the connection URL as query parameters.
	URLParams map[string]string

	// Volumes maps a host path or named volume to a container path.
	Volumes map[string]string

	FixedPort      int
	LaunchMode     LaunchMode
	StartupTimeout time.Duration
}

// RunningDatasource is what a provider hands back after a successful start.
// The caller owns Closer and must close it exactly once during teardown;
// closing it again is harmless.
type RunningDatasource struct {
	ContainerID string
	URL         string
	Username    string
	Password    string
	Closer      io.Closer
}

// Provider starts a database dev service.
type Provider interface {
	StartDatabase(ctx context.Context, req StartRequest) (*RunningDatasource, error)
}

// ProviderFunc adapts a function to the Provider interface.
type ProviderFunc func(ctx context.Context, req StartRequest) (*RunningDatasource, error)

// StartDatabase calls f(ctx, req).
func (f ProviderFunc) StartDatabase(ctx context.Context, req StartRequest) (*RunningDatasource, error) {
	return f(ctx, req)
}

// Environment is what the host knows about the launch when it builds a provider.
type Environment struct {
	Engine Engine

	// SharedNetwork is set when the application and its dev services join one
	// network and address each other by alias.
	SharedNetwork bool

	// NetworkName is the shared network; DefaultNetworkName when empty.
	NetworkName string

	// ReuseEnabled is set when the user allows containers to outlive a launch.
	ReuseEnabled bool
}

// Network returns the shared network name, falling back to DefaultNetworkName.
func (e Environment) Network() string {
	if e.NetworkName == "" {
		return DefaultNetworkName
	}
	return e.NetworkName
}
