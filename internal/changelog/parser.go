package changelog

import (
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"
)

// headerPattern matches an entry header: "# <project> <version> (<date>)".
// The project may contain spaces; the version is the last word before the
// parenthesised date.
var headerPattern = regexp.MustCompile(`^# (.+) (\S+) \(([^()]*)\)[ \t]*$`)

// Load reads and parses the changelog file at path.
func Load(path string) (*Changelog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening changelog file: %w", err)
	}
	defer f.Close()

	return LoadFromReader(f)
}

// LoadFromReader parses a markdown changelog from r.
func LoadFromReader(r io.Reader) (*Changelog, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading changelog: %w", err)
	}
	return Parse(string(data)), nil
}

// Parse splits markdown text into entries. Lines that look like headings but
// do not carry a version and date belong to the surrounding body. Parsing
// never fails: text without any header becomes the preamble.
func Parse(text string) *Changelog {
	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")

	c := &Changelog{}
	var current *Entry
	var body []string

	flush := func() {
		if current == nil {
			c.Preamble = trimBlankLines(body)
		} else {
			current.Body = trimBlankLines(body)
			c.Entries = append(c.Entries, *current)
		}
		body = nil
	}

	for _, line := range lines {
		m := headerPattern.FindStringSubmatch(line)
		if m == nil {
			body = append(body, line)
			continue
		}
		flush()
		current = &Entry{Project: m[1], Version: m[2], Date: m[3]}
	}
	flush()

	return c
}

// NormalizeVersion normalizes a version string by removing the "v" prefix.
// This allows accepting both "v0.6.0" and "0.6.0" as input.
func NormalizeVersion(version string) string {
	return strings.TrimPrefix(strings.ToLower(strings.TrimSpace(version)), "v")
}

// trimBlankLines joins lines after dropping blank lines at either end,
// trailing whitespace on every line and the first line's indentation.
func trimBlankLines(lines []string) string {
	start, end := 0, len(lines)
	for start < end && strings.TrimSpace(lines[start]) == "" {
		start++
	}
	for end > start && strings.TrimSpace(lines[end-1]) == "" {
		end--
	}

	out := make([]string, 0, end-start)
	for _, l := range lines[start:end] {
		out = append(out, strings.TrimRight(l, " \t"))
	}
	if len(out) > 0 {
		out[0] = strings.TrimLeft(out[0], " \t")
	}
	return strings.Join(out, "\n")
}
