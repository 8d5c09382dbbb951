package container

import (
	"context"
	"fmt"

	"github.com/docker/docker/api/types/network"
)

// ManagedLabel marks networks and containers created by devservices.
const ManagedLabel = "devservices.managed"

// NetworkExists checks if a Docker network exists.
func (c *Client) NetworkExists(ctx context.Context, name string) (bool, error) {
	_, err := c.cli.NetworkInspect(ctx, name, network.InspectOptions{})
	if err != nil {
		if isNotFoundError(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to inspect network: %w", err)
	}
	return true, nil
}

// EnsureNetwork creates a bridge network unless one with that name already exists.
func (c *Client) EnsureNetwork(ctx context.Context, name string) error {
	exists, err := c.NetworkExists(ctx, name)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	_, err = c.cli.NetworkCreate(ctx, name, network.CreateOptions{
		Driver: "bridge",
		Labels: map[string]string{
			ManagedLabel: "true",
		},
	})
	if err != nil {
		// Another launch may have created it in the meantime
		if exists, inspectErr := c.NetworkExists(ctx, name); inspectErr == nil && exists {
			return nil
		}
		return fmt.Errorf("failed to create network: %w", err)
	}

	return nil
}
