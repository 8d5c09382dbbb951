package container

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/docker/docker/api/types/mount"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandPath(t *testing.T) {
	home, _ := os.UserHomeDir()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"home dir", "~", home},
		{"home subdir", "~/test", filepath.Join(home, "test")},
		{"absolute path", "/tmp/test", "/tmp/test"},
		{"relative path", "test", "test"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, expandPath(tt.input))
		})
	}
}

func TestParseVolumes(t *testing.T) {
	mounts := ParseVolumes(map[string]string{
		"/tmp/oradata":   "/opt/oracle/oradata",
		"oracle-scripts": "/container-entrypoint-initdb.d",
		"./init":         "/container-entrypoint-startdb.d:ro",
	})

	require.Len(t, mounts, 3)

	// Sorted by target
	assert.Equal(t, VolumeMount{Type: "volume", Source: "oracle-scripts", Target: "/container-entrypoint-initdb.d"}, mounts[0])
	assert.Equal(t, VolumeMount{Type: "bind", Source: "./init", Target: "/container-entrypoint-startdb.d", ReadOnly: true}, mounts[1])
	assert.Equal(t, VolumeMount{Type: "bind", Source: "/tmp/oradata", Target: "/opt/oracle/oradata", CreateHost: true}, mounts[2])
}

func TestPrepareVolumeMounts(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "oradata")

	err := PrepareVolumeMounts([]VolumeMount{
		{Type: "bind", Source: dir, Target: "/opt/oracle/oradata", CreateHost: true},
		{Type: "volume", Source: "named", Target: "/data", CreateHost: true},
	})
	require.NoError(t, err)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestToDockerMounts(t *testing.T) {
	result := toDockerMounts([]VolumeMount{
		{Type: "bind", Source: "/tmp/test", Target: "/workspace"},
		{Type: "volume", Source: "my-volume", Target: "/data", ReadOnly: true},
	})

	require.Len(t, result, 2)
	assert.Equal(t, mount.TypeBind, result[0].Type)
	assert.Equal(t, "/tmp/test", result[0].Source)
	assert.Equal(t, mount.TypeVolume, result[1].Type)
	assert.True(t, result[1].ReadOnly)
}
