package history

import (
	"fmt"
	"io"
	"os"
	"time"
)

// Writer appends release records with automatic pruning.
type Writer struct {
	// Path is the history file location.
	Path string
	// MaxEntries is the maximum number of entries to retain (0 = unlimited).
	MaxEntries int
	// Warnings receives non-fatal logging failures (default: os.Stderr).
	Warnings io.Writer
}

// NewWriter creates a new history writer.
func NewWriter(path string, maxEntries int) *Writer {
	return &Writer{
		Path:       path,
		MaxEntries: maxEntries,
	}
}

// LogEntry adds a new entry to the history file.
// It loads the existing history, appends the new entry, prunes if needed, and saves.
// Errors are non-fatal: they are written as warnings and don't fail the release.
func (w *Writer) LogEntry(entry HistoryEntry) {
	if err := w.logEntryInternal(entry); err != nil {
		fmt.Fprintf(w.warnings(), "Warning: failed to log release history: %v\n", err)
	}
}

// logEntryInternal handles the actual logging logic.
func (w *Writer) logEntryInternal(entry HistoryEntry) error {
	history, err := LoadHistory(w.Path)
	if err != nil {
		return fmt.Errorf("loading history: %w", err)
	}

	history.Entries = append(history.Entries, entry)

	// Prune oldest entries if over limit
	if w.MaxEntries > 0 && len(history.Entries) > w.MaxEntries {
		excess := len(history.Entries) - w.MaxEntries
		history.Entries = history.Entries[excess:]
	}

	if err := SaveHistory(w.Path, history); err != nil {
		return fmt.Errorf("saving history: %w", err)
	}

	return nil
}

// LogRelease is a convenience method to record a completed release.
func (w *Writer) LogRelease(project, previous, version, kind, tag string) {
	w.LogEntry(HistoryEntry{
		Timestamp: time.Now().UTC(),
		Project:   project,
		Previous:  previous,
		Version:   version,
		Kind:      kind,
		Tag:       tag,
	})
}

func (w *Writer) warnings() io.Writer {
	if w.Warnings == nil {
		return os.Stderr
	}
	return w.Warnings
}
