package history

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHistoryWriter_LogEntry(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		setupStore  func(t *testing.T, path string)
		maxEntries  int
		wantEntries int
	}{
		"log entry to empty history": {
			setupStore:  func(t *testing.T, path string) {},
			maxEntries:  100,
			wantEntries: 1,
		},
		"log entry to existing history": {
			setupStore: func(t *testing.T, path string) {
				history := &HistoryFile{
					Entries: []HistoryEntry{
						{Timestamp: time.Now(), Project: "P", Previous: "0.9.0", Version: "1.0.0", Kind: "major"},
					},
				}
				require.NoError(t, SaveHistory(path, history))
			},
			maxEntries:  100,
			wantEntries: 2,
		},
	}

	for name, tc := range tests {
		tc := tc
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			path := filepath.Join(t.TempDir(), ".shipnote", "history.yml")
			tc.setupStore(t, path)

			writer := NewWriter(path, tc.maxEntries)
			writer.LogRelease("P", "1.0.0", "1.1.0", "minor", "v1.1.0")

			history, err := LoadHistory(path)
			require.NoError(t, err)
			require.Len(t, history.Entries, tc.wantEntries)

			last := history.Entries[len(history.Entries)-1]
			assert.Equal(t, "1.1.0", last.Version)
			assert.Equal(t, "1.0.0", last.Previous)
			assert.Equal(t, "minor", last.Kind)
			assert.Equal(t, "v1.1.0", last.Tag)
		})
	}
}

func TestHistoryWriter_Pruning(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		existingEntries int
		maxEntries      int
		wantEntries     int
		wantOldest      string
	}{
		"no pruning needed": {
			existingEntries: 5,
			maxEntries:      10,
			wantEntries:     6,
			wantOldest:      "0.0.0",
		},
		"prune oldest when max exceeded": {
			existingEntries: 10,
			maxEntries:      10,
			wantEntries:     10,
			wantOldest:      "0.0.1",
		},
		"unlimited": {
			existingEntries: 10,
			maxEntries:      0,
			wantEntries:     11,
			wantOldest:      "0.0.0",
		},
	}

	for name, tc := range tests {
		tc := tc
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			path := filepath.Join(t.TempDir(), "history.yml")
			existing := &HistoryFile{}
			for i := 0; i < tc.existingEntries; i++ {
				existing.Entries = append(existing.Entries, HistoryEntry{
					Timestamp: time.Now(),
					Version:   fmt.Sprintf("0.0.%d", i),
					Kind:      "patch",
				})
			}
			require.NoError(t, SaveHistory(path, existing))

			NewWriter(path, tc.maxEntries).LogRelease("P", "0.0.9", "0.0.10", "patch", "")

			history, err := LoadHistory(path)
			require.NoError(t, err)
			assert.Len(t, history.Entries, tc.wantEntries)
			assert.Equal(t, tc.wantOldest, history.Entries[0].Version)
		})
	}
}

func TestHistoryWriter_FailureIsWarning(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "history.yml")
	require.NoError(t, os.WriteFile(path, []byte("entries: [unterminated\n"), 0o644))

	var warnings bytes.Buffer
	w := NewWriter(path, 10)
	w.Warnings = &warnings
	w.LogRelease("P", "1.0.0", "1.0.1", "patch", "")

	assert.Contains(t, warnings.String(), "Warning: failed to log release history")
}

func TestLoadHistory_Missing(t *testing.T) {
	t.Parallel()

	history, err := LoadHistory(filepath.Join(t.TempDir(), "nope.yml"))
	require.NoError(t, err)
	assert.Empty(t, history.Entries)
}
