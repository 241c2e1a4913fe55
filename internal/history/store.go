// Package history keeps a YAML log of completed releases so that past
// version bumps can be listed without parsing the changelog.
package history

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// HistoryFile is the on-disk layout of the release history.
type HistoryFile struct {
	Entries []HistoryEntry `yaml:"entries"`
}

// HistoryEntry records one completed release.
type HistoryEntry struct {
	Timestamp time.Time `yaml:"timestamp"`
	Project   string    `yaml:"project"`
	Previous  string    `yaml:"previous"`
	Version   string    `yaml:"version"`
	Kind      string    `yaml:"kind"`
	Tag       string    `yaml:"tag,omitempty"`
}

// LoadHistory reads the history file at path. A missing file yields an
// empty history.
func LoadHistory(path string) (*HistoryFile, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &HistoryFile{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading history file: %w", err)
	}

	var history HistoryFile
	if err := yaml.Unmarshal(data, &history); err != nil {
		return nil, fmt.Errorf("parsing history file %s: %w", path, err)
	}
	return &history, nil
}

// SaveHistory writes history to path, creating parent directories.
func SaveHistory(path string, history *HistoryFile) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating history directory: %w", err)
	}

	data, err := yaml.Marshal(history)
	if err != nil {
		return fmt.Errorf("encoding history: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing history file: %w", err)
	}
	return nil
}
