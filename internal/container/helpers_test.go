package container

import (
	"testing"
	"time"

	"github.com/docker/go-connections/nat"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildHostConfig(t *testing.T) {
	tests := []struct {
		name         string
		cfg          RunConfig
		wantHostPort string
		wantNetwork  string
		wantBindings bool
	}{
		{
			name:         "fixed host port",
			cfg:          RunConfig{PortMappings: []PortMapping{FixedPort(15210, 1521)}},
			wantHostPort: "15210",
			wantBindings: true,
		},
		{
			name:         "ephemeral host port",
			cfg:          RunConfig{PortMappings: []PortMapping{EphemeralPort(1521)}},
			wantHostPort: "",
			wantBindings: true,
		},
		{
			name:        "shared network without bindings",
			cfg:         RunConfig{Network: "devservices", Aliases: []string{"oracle-abcde"}},
			wantNetwork: "devservices",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hc := buildHostConfig(tt.cfg)

			assert.Equal(t, tt.wantNetwork, string(hc.NetworkMode))
			if !tt.wantBindings {
				assert.Empty(t, hc.PortBindings)
				return
			}

			bindings := hc.PortBindings[nat.Port("1521/tcp")]
			require.Len(t, bindings, 1)
			assert.Equal(t, tt.wantHostPort, bindings[0].HostPort)
		})
	}
}

func TestBuildHostConfigKeepsExitedContainers(t *testing.T) {
	// Exit code and OOM state are read after the container stops
	hc := buildHostConfig(RunConfig{PortMappings: []PortMapping{EphemeralPort(1521)}})
	assert.False(t, hc.AutoRemove)
}

func TestBuildHostConfigNanoCPUs(t *testing.T) {
	hc := buildHostConfig(RunConfig{NanoCPUs: 2_000_000_000})
	assert.Equal(t, int64(2_000_000_000), hc.Resources.NanoCPUs)

	hc = buildHostConfig(RunConfig{})
	assert.Zero(t, hc.Resources.NanoCPUs)
}

func TestBuildContainerConfigExposesPorts(t *testing.T) {
	cfg := buildContainerConfig(RunConfig{
		Image:        "gvenzl/oracle-xe",
		Env:          []string{"APP_USER=quarkus"},
		Labels:       map[string]string{"a": "b"},
		PortMappings: []PortMapping{EphemeralPort(1521)},
	})

	assert.Equal(t, "gvenzl/oracle-xe", cfg.Image)
	assert.Contains(t, cfg.ExposedPorts, nat.Port("1521/tcp"))
	assert.Equal(t, "b", cfg.Labels["a"])
}

func TestBuildNetworkingConfig(t *testing.T) {
	assert.Nil(t, buildNetworkingConfig(RunConfig{}))
	assert.Nil(t, buildNetworkingConfig(RunConfig{Network: "bridge"}))

	nc := buildNetworkingConfig(RunConfig{Network: "devservices", Aliases: []string{"oracle-x1y2z"}})
	require.NotNil(t, nc)
	require.Contains(t, nc.EndpointsConfig, "devservices")
	assert.Equal(t, []string{"oracle-x1y2z"}, nc.EndpointsConfig["devservices"].Aliases)
}

func TestConfigHash(t *testing.T) {
	base := RunConfig{
		Name:         "devservices-oracle-1",
		Image:        "gvenzl/oracle-xe",
		Env:          []string{"B=2", "A=1"},
		PortMappings: []PortMapping{EphemeralPort(1521)},
		NanoCPUs:     2_000_000_000,
	}

	t.Run("ignores name and aliases", func(t *testing.T) {
		other := base
		other.Name = "devservices-oracle-2"
		other.Aliases = []string{"oracle-abcde"}
		assert.Equal(t, ConfigHash(base), ConfigHash(other))
	})

	t.Run("env order does not matter", func(t *testing.T) {
		other := base
		other.Env = []string{"A=1", "B=2"}
		assert.Equal(t, ConfigHash(base), ConfigHash(other))
	})

	t.Run("port binding matters", func(t *testing.T) {
		other := base
		other.PortMappings = []PortMapping{FixedPort(15210, 1521)}
		assert.NotEqual(t, ConfigHash(base), ConfigHash(other))
	})

	t.Run("cpu cap matters", func(t *testing.T) {
		other := base
		other.NanoCPUs = 1_000_000_000
		assert.NotEqual(t, ConfigHash(base), ConfigHash(other))
	})
}

func TestMappedPorts(t *testing.T) {
	ports, err := mappedPorts(nat.PortMap{
		"1521/tcp": {{HostIP: "0.0.0.0", HostPort: "49153"}},
		"5500/tcp": nil,
	})
	require.NoError(t, err)
	assert.Equal(t, map[int]int{1521: 49153}, ports)

	_, err = mappedPorts(nat.PortMap{"1521/tcp": {{HostPort: "nope"}}})
	assert.Error(t, err)
}

func TestFormatUptime(t *testing.T) {
	assert.Equal(t, "0m", formatUptime(0))
	assert.Equal(t, "1h 5m", formatUptime(65*time.Minute))
}
