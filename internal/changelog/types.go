package changelog

import "strings"

// Changelog is a parsed markdown changelog.
type Changelog struct {
	// Preamble is any text before the first entry header, kept verbatim
	// apart from surrounding blank lines.
	Preamble string `yaml:"preamble,omitempty"`
	// Entries are ordered as they appear in the file, newest first.
	Entries []Entry `yaml:"entries"`
}

// Entry is a single released version in the changelog.
type Entry struct {
	Project string `yaml:"project"`
	Version string `yaml:"version"`
	Date    string `yaml:"date"`
	Body    string `yaml:"body"`
}

// HeaderLine returns the entry's header line without a trailing newline.
func (e Entry) HeaderLine() string {
	return "# " + e.Project + " " + e.Version + " (" + e.Date + ")"
}

// IsEmpty returns true if the entry has no note text.
func (e Entry) IsEmpty() bool {
	return strings.TrimSpace(e.Body) == ""
}
