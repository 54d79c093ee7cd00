package main

import (
	"fmt"
	"os"
	"path/filepath"
)

// homeDir returns the user's home directory or an error.
func homeDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return home, nil
}

// resolveConfigPath returns --config or ~/.tact/config.yaml.
func resolveConfigPath() (string, error) {
	if configPath != "" {
		return configPath, nil
	}
	home, err := homeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".tact", "config.yaml"), nil
}
