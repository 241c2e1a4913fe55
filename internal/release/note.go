package release

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	apperrors "github.com/ariel-frischer/shipnote/internal/errors"
)

// markerPattern matches the required first line of a release-marker file.
var markerPattern = regexp.MustCompile(`^RELEASE_TYPE:[ \t]+(\S+)[ \t]*$`)

// Note is a parsed release-marker file.
type Note struct {
	Kind Kind `yaml:"kind"`
	// Body is the note text with trailing whitespace stripped from every line
	// and surrounding blank lines removed.
	Body string `yaml:"body"`
	// Source names where the note was read from.
	Source string `yaml:"source"`
}

// ParseNote parses the contents of a release-marker file. source is used in
// error messages only.
func ParseNote(contents, source string) (*Note, error) {
	if contents == "" {
		return nil, apperrors.Invalid(source, "release file is empty")
	}

	lines := strings.Split(contents, "\n")
	first := strings.TrimRight(lines[0], "\r")

	m := markerPattern.FindStringSubmatch(first)
	if m == nil {
		return nil, apperrors.Invalid(source,
			"does not start by specifying release type: the first line should be "+
				"RELEASE_TYPE: followed by one of %s, but was %q",
			strings.Join(KindNames(), ", "), first)
	}

	kind, err := ParseKind(m[1])
	if err != nil {
		return nil, apperrors.Invalid(source, "unrecognised release type %q", m[1])
	}

	return &Note{
		Kind:   kind,
		Body:   cleanBody(lines[1:]),
		Source: source,
	}, nil
}

// LoadNote reads and parses the release-marker file at path.
func LoadNote(path string) (*Note, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading release file: %w", err)
	}
	return ParseNote(string(data), path)
}

// HasNote reports whether a release-marker file exists at path.
func HasNote(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// cleanBody strips trailing whitespace from each line, drops leading and
// trailing blank lines and the indentation of the first line. Indentation of
// later lines and interior blank lines are kept.
func cleanBody(lines []string) string {
	cleaned := make([]string, len(lines))
	for i, l := range lines {
		cleaned[i] = strings.TrimRight(l, " \t\r\f\v")
	}

	start, end := 0, len(cleaned)
	for start < end && cleaned[start] == "" {
		start++
	}
	for end > start && cleaned[end-1] == "" {
		end--
	}
	if start < end {
		cleaned[start] = strings.TrimLeft(cleaned[start], " \t\f\v")
	}
	return strings.Join(cleaned[start:end], "\n")
}
