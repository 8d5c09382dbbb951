package container

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/api/types/filters"
	"github.com/docker/docker/api/types/network"
	"github.com/docker/docker/client"
	"github.com/docker/go-connections/nat"

	"github.com/rickgorman/devservices/pkg/hash"
)

// buildContainerConfig creates a container.Config from RunConfig.
func buildContainerConfig(cfg RunConfig) *container.Config {
	config := &container.Config{
		Image:  cfg.Image,
		Env:    cfg.Env,
		Labels: cfg.Labels,
	}

	// Add exposed ports for port mappings
	if len(cfg.PortMappings) > 0 {
		exposedPorts := make(nat.PortSet)
		for _, pm := range cfg.PortMappings {
			exposedPorts[pm.natPort()] = struct{}{}
		}
		config.ExposedPorts = exposedPorts
	}

	return config
}

// buildHostConfig creates a container.HostConfig from RunConfig.
func buildHostConfig(cfg RunConfig) *container.HostConfig {
	hostConfig := &container.HostConfig{}

	if cfg.Network != "" {
		hostConfig.NetworkMode = container.NetworkMode(cfg.Network)
	}

	// Add port mappings; an empty HostPort lets the engine choose
	if len(cfg.PortMappings) > 0 {
		portBindings := make(nat.PortMap)
		for _, pm := range cfg.PortMappings {
			hostPort := ""
			if pm.Host > 0 {
				hostPort = strconv.Itoa(pm.Host)
			}
			portBindings[pm.natPort()] = []nat.PortBinding{
				{
					HostIP:   "0.0.0.0",
					HostPort: hostPort,
				},
			}
		}
		hostConfig.PortBindings = portBindings
	}

	if len(cfg.Mounts) > 0 {
		hostConfig.Mounts = toDockerMounts(cfg.Mounts)
	}

	if cfg.NanoCPUs > 0 {
		hostConfig.Resources.NanoCPUs = cfg.NanoCPUs
	}

	return hostConfig
}

// buildNetworkingConfig attaches network aliases when the container joins a user network.
func buildNetworkingConfig(cfg RunConfig) *network.NetworkingConfig {
	if cfg.Network == "" || cfg.Network == "default" || cfg.Network == "bridge" || cfg.Network == "host" {
		return nil
	}

	return &network.NetworkingConfig{
		EndpointsConfig: map[string]*network.EndpointSettings{
			cfg.Network: {
				Aliases: cfg.Aliases,
			},
		},
	}
}

// ConfigHash returns a stable digest of everything that defines a container's
// behaviour. The name and network aliases are excluded because they are
// generated per launch.
func ConfigHash(cfg RunConfig) string {
	var b strings.Builder

	fmt.Fprintf(&b, "image=%s\n", cfg.Image)

	env := append([]string(nil), cfg.Env...)
	sort.Strings(env)
	for _, e := range env {
		fmt.Fprintf(&b, "env=%s\n", e)
	}

	for _, pm := range cfg.PortMappings {
		fmt.Fprintf(&b, "port=%d:%d\n", pm.Host, pm.Container)
	}

	for _, m := range cfg.Mounts {
		fmt.Fprintf(&b, "mount=%s:%s:%s:%t\n", m.Type, m.Source, m.Target, m.ReadOnly)
	}

	fmt.Fprintf(&b, "network=%s\n", cfg.Network)
	fmt.Fprintf(&b, "nanocpus=%d\n", cfg.NanoCPUs)

	return hash.SHA1Sum(b.String())
}

// mappedPorts flattens an inspected port map into container port -> host port.
func mappedPorts(portMap nat.PortMap) (map[int]int, error) {
	ports := make(map[int]int, len(portMap))
	for port, bindings := range portMap {
		if len(bindings) == 0 {
			continue
		}
		for _, binding := range bindings {
			if binding.HostPort == "" {
				continue
			}
			hostPort, err := strconv.Atoi(binding.HostPort)
			if err != nil {
				return nil, fmt.Errorf("invalid host port %q for %s: %w", binding.HostPort, port, err)
			}
			ports[port.Int()] = hostPort
			break
		}
	}
	return ports, nil
}

// mustNewFilter builds filter args from a key -> values map.
func mustNewFilter(kv map[string][]string) filters.Args {
	f := filters.NewArgs()
	for k, values := range kv {
		for _, v := range values {
			f.Add(k, v)
		}
	}
	return f
}

// matchesPrefix checks if a container name matches the expected prefix pattern.
func matchesPrefix(name, prefix string) bool {
	return strings.HasPrefix(name, prefix)
}

// trimName strips the leading "/" Docker puts on container names.
func trimName(name string) string {
	return strings.TrimPrefix(name, "/")
}

// isNotFoundError checks if an error is a "not found" error from Docker.
func isNotFoundError(err error) bool {
	return client.IsErrNotFound(err)
}

// parseDockerTimestamp parses a Docker timestamp string.
func parseDockerTimestamp(ts string) (time.Time, error) {
	// Docker timestamps are in RFC3339Nano format
	return time.Parse(time.RFC3339Nano, ts)
}
