// Package container handles Docker operations for dev-service containers.
package container

import (
	"context"
	"fmt"
	"io"

	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/api/types/image"
	"github.com/docker/docker/client"
)

// Client wraps the Docker client with our operations.
type Client struct {
	cli  *client.Client
	host string
}

// NewClient creates a new Docker client wrapper.
func NewClient() (*Client, error) {
	cli, err := client.NewClientWithOpts(client.FromEnv, client.WithAPIVersionNegotiation())
	if err != nil {
		return nil, err
	}
	return &Client{cli: cli, host: EngineHost()}, nil
}

// Close closes the underlying Docker client.
func (c *Client) Close() error {
	return c.cli.Close()
}

// Host returns the host name under which mapped container ports are reachable.
func (c *Client) Host() string {
	return c.host
}

// ImageExists checks if an image reference exists locally.
func (c *Client) ImageExists(ctx context.Context, ref string) (bool, error) {
	_, _, err := c.cli.ImageInspectWithRaw(ctx, ref)
	if err != nil {
		if client.IsErrNotFound(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// PullImage pulls an image reference and waits for the pull to finish.
func (c *Client) PullImage(ctx context.Context, ref string) error {
	reader, err := c.cli.ImagePull(ctx, ref, image.PullOptions{})
	if err != nil {
		return fmt.Errorf("failed to pull image %s: %w", ref, err)
	}
	defer reader.Close()

	// The pull only completes once the progress stream is drained
	if _, err := io.Copy(io.Discard, reader); err != nil {
		return fmt.Errorf("failed to pull image %s: %w", ref, err)
	}
	return nil
}

// EnsureImage pulls the image unless it is already present locally.
func (c *Client) EnsureImage(ctx context.Context, ref string) error {
	exists, err := c.ImageExists(ctx, ref)
	if err != nil {
		return fmt.Errorf("failed to inspect image %s: %w", ref, err)
	}
	if exists {
		return nil
	}
	return c.PullImage(ctx, ref)
}

// FindRunningByLabel returns the ID of a running container carrying the
// given label value, or an empty string when there is none.
func (c *Client) FindRunningByLabel(ctx context.Context, key, value string) (string, error) {
	containers, err := c.cli.ContainerList(ctx, container.ListOptions{
		Filters: mustNewFilter(map[string][]string{
			"label":  {key + "=" + value},
			"status": {"running"},
		}),
	})
	if err != nil {
		return "", err
	}

	if len(containers) == 0 {
		return "", nil
	}
	return containers[0].ID, nil
}

// FindByNamePrefix lists containers (running or stopped) whose name starts with prefix.
func (c *Client) FindByNamePrefix(ctx context.Context, namePrefix string) ([]string, error) {
	containers, err := c.cli.ContainerList(ctx, container.ListOptions{All: true})
	if err != nil {
		return nil, err
	}

	var names []string
	for _, ctr := range containers {
		for _, name := range ctr.Names {
			// Docker container names start with "/"
			if len(name) > 0 && name[0] == '/' {
				name = name[1:]
			}
			if matchesPrefix(name, namePrefix) {
				names = append(names, name)
			}
		}
	}

	return names, nil
}
