package container

import (
	"context"
	"fmt"
	"time"

	"github.com/docker/docker/api/types/container"
)

// RunConfig holds the configuration for running a container.
// It stays mutable until it is handed to Run.
type RunConfig struct {
	Name         string
	Image        string
	Env          []string
	Labels       map[string]string
	Mounts       []VolumeMount
	Network      string
	Aliases      []string
	PortMappings []PortMapping
	NanoCPUs     int64
}

// Status is the inspected runtime state of a container.
type Status struct {
	ID        string
	Name      string
	Running   bool
	OOMKilled bool
	ExitCode  int
	Labels    map[string]string

	// Ports maps container ports to the host ports the engine bound them to.
	Ports map[int]int
}

// Run creates and starts a new container.
func (c *Client) Run(ctx context.Context, cfg RunConfig) (string, error) {
	// The engine only reports a taken port after creating the container
	if c.host == "localhost" {
		for _, pm := range cfg.PortMappings {
			if !pm.Ephemeral() && CheckPortInUse(pm.Host) {
				return "", fmt.Errorf("%w: %d", ErrPortInUse, pm.Host)
			}
		}
	}

	resp, err := c.cli.ContainerCreate(
		ctx,
		buildContainerConfig(cfg),
		buildHostConfig(cfg),
		buildNetworkingConfig(cfg),
		nil,
		cfg.Name,
	)
	if err != nil {
		return "", fmt.Errorf("failed to create container: %w", err)
	}

	if err := c.cli.ContainerStart(ctx, resp.ID, container.StartOptions{}); err != nil {
		// A container that never started has no value to the caller
		_ = c.Remove(context.WithoutCancel(ctx), resp.ID, true)
		return "", fmt.Errorf("failed to start container: %w", err)
	}

	return resp.ID, nil
}

// Inspect returns the runtime state of a container.
func (c *Client) Inspect(ctx context.Context, nameOrID string) (*Status, error) {
	inspect, err := c.cli.ContainerInspect(ctx, nameOrID)
	if err != nil {
		return nil, fmt.Errorf("failed to inspect container: %w", err)
	}

	status := &Status{
		ID:   inspect.ID,
		Name: trimName(inspect.Name),
	}
	if inspect.State != nil {
		status.Running = inspect.State.Running
		status.OOMKilled = inspect.State.OOMKilled
		status.ExitCode = inspect.State.ExitCode
	}
	if inspect.Config != nil {
		status.Labels = inspect.Config.Labels
	}
	if inspect.NetworkSettings != nil {
		ports, err := mappedPorts(inspect.NetworkSettings.Ports)
		if err != nil {
			return nil, err
		}
		status.Ports = ports
	}

	return status, nil
}

// Stop stops a running container, waiting up to timeout before killing it.
// Stopping a container that no longer exists is not an error.
func (c *Client) Stop(ctx context.Context, nameOrID string, timeout time.Duration) error {
	seconds := int(timeout.Seconds())
	err := c.cli.ContainerStop(ctx, nameOrID, container.StopOptions{Timeout: &seconds})
	if err != nil && !isNotFoundError(err) {
		return fmt.Errorf("failed to stop container: %w", err)
	}
	return nil
}

// Remove removes a container.
func (c *Client) Remove(ctx context.Context, nameOrID string, force bool) error {
	options := container.RemoveOptions{
		Force:         force,
		RemoveVolumes: true,
	}

	err := c.cli.ContainerRemove(ctx, nameOrID, options)
	if err != nil && !isNotFoundError(err) {
		return fmt.Errorf("failed to remove container: %w", err)
	}

	return nil
}

// Uptime returns the uptime of a container as a human-readable string.
func (c *Client) Uptime(ctx context.Context, nameOrID string) (string, error) {
	inspect, err := c.cli.ContainerInspect(ctx, nameOrID)
	if err != nil {
		return "", fmt.Errorf("failed to inspect container: %w", err)
	}

	if inspect.State == nil || !inspect.State.Running {
		return "", fmt.Errorf("container is not running")
	}

	startedAt, err := parseDockerTimestamp(inspect.State.StartedAt)
	if err != nil {
		return "", fmt.Errorf("failed to parse start time: %w", err)
	}

	return formatUptime(time.Since(startedAt)), nil
}

// formatUptime formats a duration into a human-readable uptime string.
func formatUptime(d time.Duration) string {
	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60

	if hours > 0 {
		return fmt.Sprintf("%dh %dm", hours, minutes)
	}
	return fmt.Sprintf("%dm", minutes)
}
