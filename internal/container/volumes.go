package container

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/docker/docker/api/types/mount"
)

// VolumeMount represents a Docker volume mount.
type VolumeMount struct {
	Type       string // "bind" or "volume"
	Source     string // host path or volume name
	Target     string // container path
	ReadOnly   bool
	CreateHost bool // whether to create host directory if it doesn't exist
}

// ParseVolumes converts a host -> container path map into mounts, sorted by
// target. Sources that are not paths are treated as named volumes, and a
// ":ro" suffix on the container path makes the mount read-only.
func ParseVolumes(volumes map[string]string) []VolumeMount {
	mounts := make([]VolumeMount, 0, len(volumes))

	for source, target := range volumes {
		m := VolumeMount{
			Type:   "bind",
			Source: source,
			Target: target,
		}

		if strings.HasSuffix(target, ":ro") {
			m.Target = strings.TrimSuffix(target, ":ro")
			m.ReadOnly = true
		}

		// Named volume (doesn't start with / . or ~)
		if !strings.HasPrefix(source, "/") && !strings.HasPrefix(source, "~") && !strings.HasPrefix(source, ".") {
			m.Type = "volume"
		} else {
			m.CreateHost = !m.ReadOnly
		}

		mounts = append(mounts, m)
	}

	sort.Slice(mounts, func(i, j int) bool {
		return mounts[i].Target < mounts[j].Target
	})

	return mounts
}

// PrepareVolumeMounts prepares volume mounts, creating host directories as needed.
func PrepareVolumeMounts(mounts []VolumeMount) error {
	for _, mount := range mounts {
		if mount.Type == "bind" && mount.CreateHost {
			source := expandPath(mount.Source)

			if err := os.MkdirAll(source, 0755); err != nil {
				return fmt.Errorf("failed to create bind mount directory %s: %w", source, err)
			}
		}
	}

	return nil
}

// toDockerMounts converts volume mounts to the engine's mount type.
func toDockerMounts(mounts []VolumeMount) []mount.Mount {
	result := make([]mount.Mount, 0, len(mounts))

	for _, m := range mounts {
		dm := mount.Mount{
			Type:     mount.TypeVolume,
			Source:   m.Source,
			Target:   m.Target,
			ReadOnly: m.ReadOnly,
		}
		if m.Type == "bind" {
			dm.Type = mount.TypeBind
			dm.Source = absPath(expandPath(m.Source))
		}
		result = append(result, dm)
	}

	return result
}

// expandPath expands ~ to home directory in paths.
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}

	if path == "~" {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return home
	}

	return path
}

// absPath resolves relative bind sources; the engine rejects them.
func absPath(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	return abs
}
