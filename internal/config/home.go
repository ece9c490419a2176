package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// DefaultPath returns the config file location
// Priority order:
//  1. LSF_CONFIG environment variable (if set)
//  2. ~/.config/lsf/config.yaml
func DefaultPath() (string, error) {
	if path := os.Getenv("LSF_CONFIG"); path != "" {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home directory: %w", err)
	}
	return filepath.Join(home, ".config", "lsf", "config.yaml"), nil
}
