package config

import (
	"os"
	"os/exec"
	"strings"
)

// ProjectRoot returns the root of the current git worktree.
// Falls back to the current working directory outside a git repository.
func ProjectRoot() (string, error) {
	cmd := exec.Command("git", "rev-parse", "--show-toplevel")
	output, err := cmd.Output()
	if err != nil {
		return os.Getwd()
	}

	path := strings.TrimSpace(string(output))
	if path == "" {
		return os.Getwd()
	}
	return path, nil
}
