package config

import (
	"fmt"
	"os"
	"path/filepath"
)

var (
	getEnv      = os.Getenv
	userHomeDir = os.UserHomeDir
)

// GlobalConfigPath resolves the global config file path using XDG conventions.
func GlobalConfigPath() (string, error) {
	if xdgHome := getEnv("XDG_CONFIG_HOME"); xdgHome != "" {
		return filepath.Join(xdgHome, FileName, "config.yaml"), nil
	}

	homeDir, err := userHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}

	return filepath.Join(homeDir, ".config", FileName, "config.yaml"), nil
}

// SearchPaths lists the config files tried, in order, when none is given:
// taskdesk.yaml in workDir, then the global file.
func SearchPaths(workDir string) []string {
	paths := []string{filepath.Join(workDir, FileName+".yaml")}
	if global, err := GlobalConfigPath(); err == nil {
		paths = append(paths, global)
	}
	return paths
}

// resolveRelative makes path relative to the directory of configPath.
// Empty and absolute paths are returned unchanged.
func resolveRelative(configPath, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(filepath.Dir(configPath), path)
}
