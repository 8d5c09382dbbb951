package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rickgorman/devservices/internal/devservice"
)

var overrideNames = []string{
	"DB_KIND", "LAUNCH_MODE", "LOG_LEVEL", "IMAGE_NAME", "USERNAME", "PASSWORD",
	"DB_NAME", "NETWORK", "PORT", "STARTUP_TIMEOUT", "ENABLED", "SHARED_NETWORK", "REUSE",
}

// clearEnv unsets every override for the test and restores them afterwards.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, name := range overrideNames {
		t.Setenv(EnvPrefix+name, "")
		require.NoError(t, os.Unsetenv(EnvPrefix+name))
	}
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, dir, cfg.Dir)
	assert.Equal(t, DefaultKind, cfg.Kind)
	assert.True(t, cfg.Enabled())

	req, err := cfg.StartRequest()
	require.NoError(t, err)
	assert.Equal(t, devservice.StartRequest{LaunchMode: devservice.LaunchNormal}, req)

	env := cfg.Environment(nil)
	assert.False(t, env.SharedNetwork)
	assert.False(t, env.ReuseEnabled)
	assert.Equal(t, devservice.DefaultNetworkName, env.Network())
}

func TestLoadYAML(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	writeFile(t, dir, FileName, `
db-kind: oracle
launch-mode: dev
devservices:
  image-name: gvenzl/oracle-free:23-slim
  username: app
  password: secret
  db-name: orders
  port: 15210
  startup-timeout: 5m
  container-env:
    TZ: UTC
  properties:
    oracle.jdbc.timezoneAsRegion: "false"
  volumes:
    oracle-data: /opt/oracle/oradata
  shared-network: true
  network: ci-net
  reuse: true
`)

	cfg, err := Load(dir)
	require.NoError(t, err)

	req, err := cfg.StartRequest()
	require.NoError(t, err)
	assert.Equal(t, devservice.StartRequest{
		Username:       "app",
		Password:       "secret",
		DatabaseName:   "orders",
		ImageName:      "gvenzl/oracle-free:23-slim",
		ContainerEnv:   map[string]string{"TZ": "UTC"},
		URLParams:      map[string]string{"oracle.jdbc.timezoneAsRegion": "false"},
		Volumes:        map[string]string{"oracle-data": "/opt/oracle/oradata"},
		FixedPort:      15210,
		LaunchMode:     devservice.LaunchDev,
		StartupTimeout: 5 * time.Minute,
	}, req)

	env := cfg.Environment(nil)
	assert.True(t, env.SharedNetwork)
	assert.True(t, env.ReuseEnabled)
	assert.Equal(t, "ci-net", env.Network())
}

func TestLoadEnvOverrides(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	writeFile(t, dir, FileName, `
devservices:
  username: app
  port: 15210
`)

	t.Setenv("DEVSERVICES_USERNAME", "override")
	t.Setenv("DEVSERVICES_PORT", "0")
	t.Setenv("DEVSERVICES_SHARED_NETWORK", "true")
	t.Setenv("DEVSERVICES_STARTUP_TIMEOUT", "90s")
	t.Setenv("DEVSERVICES_ENABLED", "false")
	t.Setenv("DEVSERVICES_LAUNCH_MODE", "test")

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "override", cfg.DevServices.Username)
	assert.Equal(t, 0, cfg.DevServices.Port)
	assert.True(t, cfg.DevServices.SharedNetwork)
	assert.Equal(t, 90*time.Second, cfg.DevServices.StartupTimeout)
	assert.False(t, cfg.Enabled())

	req, err := cfg.StartRequest()
	require.NoError(t, err)
	assert.Equal(t, devservice.LaunchTest, req.LaunchMode)
}

func TestLoadDotEnv(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	writeFile(t, dir, EnvFileName, "DEVSERVICES_PASSWORD=from-dotenv\nDEVSERVICES_DB_NAME=from-dotenv\n")
	t.Setenv("DEVSERVICES_DB_NAME", "from-shell")

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "from-dotenv", cfg.DevServices.Password)
	assert.Equal(t, "from-shell", cfg.DevServices.DatabaseName)
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		env  map[string]string
	}{
		{name: "malformed yaml", yaml: "devservices: [unclosed"},
		{name: "port out of range", yaml: "devservices:\n  port: 70000\n"},
		{name: "unknown launch mode", yaml: "launch-mode: staging\n"},
		{name: "bad port override", env: map[string]string{"DEVSERVICES_PORT": "abc"}},
		{name: "bad timeout override", env: map[string]string{"DEVSERVICES_STARTUP_TIMEOUT": "soon"}},
		{name: "bad bool override", env: map[string]string{"DEVSERVICES_REUSE": "maybe"}},
		{name: "shared default bridge", yaml: "devservices:\n  shared-network: true\n  network: bridge\n"},
		{name: "shared host network", yaml: "devservices:\n  shared-network: true\n  network: HOST\n"},
		{
			name: "shared network override",
			yaml: "devservices:\n  network: default\n",
			env:  map[string]string{"DEVSERVICES_SHARED_NETWORK": "true"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			dir := t.TempDir()
			if tt.yaml != "" {
				writeFile(t, dir, FileName, tt.yaml)
			}
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := Load(dir)
			assert.ErrorIs(t, err, devservice.ErrInvalidConfig)
		})
	}
}

func TestLoadBuiltinNetworkWithoutSharing(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	writeFile(t, dir, FileName, "devservices:\n  network: bridge\n")

	_, err := Load(dir)
	assert.NoError(t, err)
}

func TestStartRequestAnchorsRelativeVolumes(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	writeFile(t, dir, FileName, `
devservices:
  volumes:
    ./oradata: /opt/oracle/oradata
    ../seed: /container-entrypoint-initdb.d:ro
    /var/lib/oracle: /opt/oracle/backup
    oracle-data: /opt/oracle/data
`)

	cfg, err := Load(dir)
	require.NoError(t, err)

	req, err := cfg.StartRequest()
	require.NoError(t, err)
	parent := filepath.Dir(dir)
	assert.Equal(t, map[string]string{
		filepath.Join(dir, "oradata"): "/opt/oracle/oradata",
		filepath.Join(parent, "seed"): "/container-entrypoint-initdb.d:ro",
		"/var/lib/oracle":             "/opt/oracle/backup",
		"oracle-data":                 "/opt/oracle/data",
	}, req.Volumes)
}

func TestProjectRoot(t *testing.T) {
	root, err := ProjectRoot()
	require.NoError(t, err)
	assert.NotEmpty(t, root)
	assert.True(t, filepath.IsAbs(root))
}
