package platform

import (
	"fmt"
	"os"
	"path/filepath"
)

// ConfigFileName marks a directory holding project-local jotter settings.
const ConfigFileName = "jotter.yaml"

// FindRoot recursively looks upwards for a project root indicator.
// Indicators are: a jotter.yaml file or a .git directory.
// If found, returns the absolute path to the root.
func FindRoot(startDir string) (string, error) {
	abs, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	dir := abs
	for {
		if hasFile(dir, ConfigFileName) || hasFile(dir, ".git") {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached filesystem root
			break
		}
		dir = parent
	}

	return "", fmt.Errorf("root not found")
}

// FindConfig returns the nearest jotter.yaml at or above startDir, or the
// user-level file (e.g. ~/.config/jotter/config.yaml) when it exists.
// An empty path means no config file applies.
func FindConfig(startDir string) string {
	if root, err := FindRoot(startDir); err == nil && hasFile(root, ConfigFileName) {
		return filepath.Join(root, ConfigFileName)
	}
	if dir, err := os.UserConfigDir(); err == nil {
		path := filepath.Join(dir, "jotter", "config.yaml")
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

func hasFile(dir, name string) bool {
	path := filepath.Join(dir, name)
	_, err := os.Stat(path)
	return err == nil
}
