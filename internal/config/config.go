// Package config provides hierarchical configuration management for shipnote using koanf.
// Configuration is loaded with priority: environment variables (SHIPNOTE_*) > project config
// (.shipnote/config.yml or .shipnote/config.json) > user config (~/.config/shipnote/config.yml)
// > defaults.
package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// ConfigSource tracks where a configuration value came from
type ConfigSource string

const (
	SourceDefault ConfigSource = "default"
	SourceUser    ConfigSource = "user"
	SourceProject ConfigSource = "project"
	SourceEnv     ConfigSource = "env"
)

// envPrefix is the prefix of environment variables that override config keys.
const envPrefix = "SHIPNOTE_"

// Configuration represents the shipnote CLI tool configuration
type Configuration struct {
	// ProjectName is written into changelog headers. Empty means the name of
	// the repository (or working) directory.
	ProjectName string `koanf:"project_name" json:"project_name" yaml:"project_name"`

	ChangelogFile string `koanf:"changelog_file" json:"changelog_file" yaml:"changelog_file"`
	ReleaseFile   string `koanf:"release_file" json:"release_file" yaml:"release_file"`

	// VersionFile holds the single `VersionName = "X.Y.Z"` assignment that
	// release rewrites.
	VersionFile string `koanf:"version_file" json:"version_file" yaml:"version_file"`
	VersionName string `koanf:"version_name" json:"version_name" yaml:"version_name"`
	// QuoteVersion wraps the new version in double quotes when rewriting.
	QuoteVersion bool `koanf:"quote_version" json:"quote_version" yaml:"quote_version"`

	TagPrefix       string `koanf:"tag_prefix" json:"tag_prefix" yaml:"tag_prefix"`
	CreateTag       bool   `koanf:"create_tag" json:"create_tag" yaml:"create_tag"`
	KeepReleaseFile bool   `koanf:"keep_release_file" json:"keep_release_file" yaml:"keep_release_file"`

	// MaxHistoryEntries sets the maximum number of release history entries to retain.
	// Oldest entries are pruned when this limit is exceeded.
	// Default: 100. Can be set via SHIPNOTE_MAX_HISTORY_ENTRIES env var.
	HistoryFile       string `koanf:"history_file" json:"history_file" yaml:"history_file"`
	MaxHistoryEntries int    `koanf:"max_history_entries" json:"max_history_entries" yaml:"max_history_entries"`
}

// LoadOptions configures how configuration is loaded
type LoadOptions struct {
	// ProjectConfigPath overrides the project config path (default: .shipnote/config.yml)
	ProjectConfigPath string
	// UserConfigPath overrides the user config path. Set to "-" to skip user config.
	UserConfigPath string
	// WarningWriter receives warnings about unknown keys (default: os.Stderr)
	WarningWriter io.Writer
	// SkipWarnings suppresses warnings
	SkipWarnings bool
}

// Load loads configuration from user, project, and environment sources.
// Priority: Environment variables > Project config > User config > Defaults
func Load(projectConfigPath string) (*Configuration, error) {
	return LoadWithOptions(LoadOptions{ProjectConfigPath: projectConfigPath})
}

// LoadWithOptions loads configuration with custom options
func LoadWithOptions(opts LoadOptions) (*Configuration, error) {
	k := koanf.New(".")
	warningWriter := getWarningWriter(opts.WarningWriter)

	loadDefaults(k)

	if err := loadUserConfig(k, opts.UserConfigPath); err != nil {
		return nil, err
	}

	if err := loadProjectConfig(k, opts.ProjectConfigPath); err != nil {
		return nil, err
	}

	if err := loadEnvironmentConfig(k); err != nil {
		return nil, err
	}

	if !opts.SkipWarnings {
		warnUnknownKeys(k, warningWriter)
	}

	return finalizeConfig(k)
}

// getWarningWriter returns the warning writer or defaults to stderr
func getWarningWriter(w io.Writer) io.Writer {
	if w == nil {
		return os.Stderr
	}
	return w
}

// loadDefaults applies default configuration values
func loadDefaults(k *koanf.Koanf) {
	for key, value := range GetDefaults() {
		k.Set(key, value)
	}
}

// loadUserConfig loads ~/.config/shipnote/config.yml when present.
func loadUserConfig(k *koanf.Koanf, override string) error {
	if override == "-" {
		return nil
	}
	path := override
	if path == "" {
		path, _ = UserConfigPath()
	}
	if !fileExists(path) {
		return nil
	}
	if err := loadConfigFile(k, path, "user"); err != nil {
		return fmt.Errorf("loading user config: %w", err)
	}
	return nil
}

// loadProjectConfig loads the project config. A custom path must exist;
// otherwise .shipnote/config.yml is preferred over .shipnote/config.json.
func loadProjectConfig(k *koanf.Koanf, customPath string) error {
	if customPath != "" {
		if !fileExists(customPath) {
			return fmt.Errorf("loading project config: %w", &os.PathError{Op: "open", Path: customPath, Err: os.ErrNotExist})
		}
		if err := loadConfigFile(k, customPath, "project"); err != nil {
			return fmt.Errorf("loading project config: %w", err)
		}
		return nil
	}

	for _, path := range []string{ProjectConfigPath(), ProjectJSONConfigPath()} {
		if !fileExists(path) {
			continue
		}
		if err := loadConfigFile(k, path, "project"); err != nil {
			return fmt.Errorf("loading project config: %w", err)
		}
		return nil
	}
	return nil
}

// loadConfigFile picks the parser from the file extension. YAML files are
// syntax-checked first so errors carry line and column.
func loadConfigFile(k *koanf.Koanf, path, configType string) error {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		if err := k.Load(file.Provider(path), json.Parser()); err != nil {
			return fmt.Errorf("failed to load %s config %s: %w", configType, path, err)
		}
		return nil
	}

	if err := ValidateYAMLSyntax(path); err != nil {
		return fmt.Errorf("validating YAML syntax for %s config: %w", configType, err)
	}
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return fmt.Errorf("failed to load %s config %s: %w", configType, path, err)
	}
	return nil
}

// loadEnvironmentConfig loads environment variable overrides
func loadEnvironmentConfig(k *koanf.Koanf) error {
	if err := k.Load(env.Provider(envPrefix, ".", envTransform), nil); err != nil {
		return fmt.Errorf("failed to load environment config: %w", err)
	}
	return nil
}

// warnUnknownKeys reports keys that no field reads. Environment variables
// are included, so a typo such as SHIPNOTE_CREATETAG is reported too.
func warnUnknownKeys(k *koanf.Koanf, w io.Writer) {
	var unknown []string
	for _, key := range k.Keys() {
		if _, ok := KnownKeys[key]; !ok {
			unknown = append(unknown, key)
		}
	}
	sort.Strings(unknown)
	for _, key := range unknown {
		fmt.Fprintf(w, "Warning: unknown config key %q (ignored)\n", key)
	}
}

// finalizeConfig unmarshals and validates the merged configuration
func finalizeConfig(k *koanf.Koanf) (*Configuration, error) {
	var cfg Configuration
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := ValidateConfigValues(&cfg, "config"); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	cfg.HistoryFile = expandHomePath(cfg.HistoryFile)

	return &cfg, nil
}

// TagName returns the tag created for version.
func (c *Configuration) TagName(version string) string {
	return c.TagPrefix + version
}

// fileExists returns true if the file exists and is readable
func fileExists(path string) bool {
	if path == "" {
		return false
	}
	_, err := os.Stat(path)
	return err == nil
}

// envTransform converts environment variable names to config keys
// Example: SHIPNOTE_TAG_PREFIX -> tag_prefix
func envTransform(s string) string {
	return strings.ToLower(strings.TrimPrefix(s, envPrefix))
}

// expandHomePath expands ~ to the user's home directory
func expandHomePath(path string) string {
	if strings.HasPrefix(path, "~/") {
		homeDir, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(homeDir, path[2:])
		}
	}
	return path
}
