package changelog

import (
	"fmt"
	"strings"
)

// VersionNotFoundError is returned when a requested version doesn't exist.
type VersionNotFoundError struct {
	Version           string
	AvailableVersions []string
}

func (e *VersionNotFoundError) Error() string {
	return fmt.Sprintf("version %q not found (available: %s)",
		e.Version, strings.Join(e.AvailableVersions, ", "))
}

// GetVersion retrieves the newest entry for a version.
// Accepts both "v0.6.0" and "0.6.0" formats (normalizes the input).
// Returns VersionNotFoundError if the version doesn't exist.
func (c *Changelog) GetVersion(version string) (*Entry, error) {
	normalized := NormalizeVersion(version)

	for i := range c.Entries {
		if NormalizeVersion(c.Entries[i].Version) == normalized {
			return &c.Entries[i], nil
		}
	}

	return nil, &VersionNotFoundError{
		Version:           version,
		AvailableVersions: c.ListVersions(),
	}
}

// ListVersions returns the version of every entry, newest first.
func (c *Changelog) ListVersions() []string {
	versions := make([]string, len(c.Entries))
	for i, e := range c.Entries {
		versions[i] = e.Version
	}
	return versions
}

// GetLastN retrieves the N most recent entries.
// If N is greater than the number of entries, all entries are returned.
func (c *Changelog) GetLastN(n int) []Entry {
	if n <= 0 {
		return []Entry{}
	}
	if len(c.Entries) <= n {
		return c.Entries
	}
	return c.Entries[:n]
}

// Latest returns the most recent entry, or nil for an empty changelog.
func (c *Changelog) Latest() *Entry {
	if len(c.Entries) == 0 {
		return nil
	}
	return &c.Entries[0]
}

// GetEntryCount returns the number of entries in the changelog.
func (c *Changelog) GetEntryCount() int {
	return len(c.Entries)
}
