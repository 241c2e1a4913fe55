package config

import (
	"os"
	"path/filepath"
	"strings"
)

// UserConfigPath returns the path to the user-level config file.
// This follows the XDG Base Directory Specification:
// - Linux: ~/.config/shipnote/config.yml
// - macOS: ~/Library/Application Support/shipnote/config.yml
// - Windows: %APPDATA%\shipnote\config.yml
//
// If XDG_CONFIG_HOME is set, it will be respected on Linux.
func UserConfigPath() (string, error) {
	dir, err := UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yml"), nil
}

// UserConfigDir returns the path to the user-level config directory.
func UserConfigDir() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "shipnote"), nil
}

// ProjectConfigPath returns the path to the project-level config file.
// This is always .shipnote/config.yml relative to the current directory.
func ProjectConfigPath() string {
	return filepath.Join(ProjectConfigDir(), "config.yml")
}

// ProjectJSONConfigPath returns the JSON alternative to ProjectConfigPath.
func ProjectJSONConfigPath() string {
	return filepath.Join(ProjectConfigDir(), "config.json")
}

// ProjectConfigDir returns the path to the project-level config directory.
func ProjectConfigDir() string {
	return ".shipnote"
}

// SourceInfo describes one configuration layer for display.
type SourceInfo struct {
	Source ConfigSource
	Path   string
	Active bool
}

// Sources lists the layers LoadWithOptions would read, in increasing
// priority order.
func Sources(opts LoadOptions) []SourceInfo {
	sources := []SourceInfo{{Source: SourceDefault, Path: "built-in", Active: true}}

	if opts.UserConfigPath != "-" {
		userPath := opts.UserConfigPath
		if userPath == "" {
			userPath, _ = UserConfigPath()
		}
		sources = append(sources, SourceInfo{Source: SourceUser, Path: userPath, Active: fileExists(userPath)})
	}

	projectPath := opts.ProjectConfigPath
	if projectPath == "" {
		projectPath = ProjectConfigPath()
		if !fileExists(projectPath) && fileExists(ProjectJSONConfigPath()) {
			projectPath = ProjectJSONConfigPath()
		}
	}
	sources = append(sources, SourceInfo{Source: SourceProject, Path: projectPath, Active: fileExists(projectPath)})

	envActive := false
	for _, kv := range os.Environ() {
		if strings.HasPrefix(kv, envPrefix) {
			envActive = true
			break
		}
	}
	sources = append(sources, SourceInfo{Source: SourceEnv, Path: envPrefix + "*", Active: envActive})

	return sources
}
