package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// DefaultConfigFile is the config file name looked up by default.
const DefaultConfigFile = "deploy.yaml"

// ConfigDir returns the path to the user config directory (~/.privatevote).
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to determine home directory: %w", err)
	}
	return filepath.Join(home, ".privatevote"), nil
}

// DefaultPath returns the config file to use when none is given: ./deploy.yaml
// if present, otherwise ~/.privatevote/deploy.yaml if present. It returns ""
// when neither exists, in which case defaults apply.
func DefaultPath() string {
	if _, err := os.Stat(DefaultConfigFile); err == nil {
		return DefaultConfigFile
	}

	dir, err := ConfigDir()
	if err != nil {
		return ""
	}
	userPath := filepath.Join(dir, DefaultConfigFile)
	if _, err := os.Stat(userPath); err == nil {
		return userPath
	}
	return ""
}
