package changelog

import (
	"fmt"
	"io"
	"strings"
	"time"
)

// DateLayout is the calendar date format used in entry headers.
const DateLayout = "2006-01-02"

// DateString formats t as the UTC calendar date used in entry headers.
func DateString(t time.Time) string {
	return t.UTC().Format(DateLayout)
}

// Header returns the header line for a new entry, without a trailing newline.
func Header(project, version string, date time.Time) string {
	return Entry{Project: project, Version: version, Date: DateString(date)}.HeaderLine()
}

// RenderEntry writes a single entry as markdown: the header line, a blank
// line, then the body followed by a blank line. An entry without a body is
// just the header and a blank line.
func RenderEntry(e Entry, w io.Writer) error {
	if _, err := io.WriteString(w, e.HeaderLine()+"\n\n"); err != nil {
		return err
	}
	body := trimBody(e.Body)
	if body == "" {
		return nil
	}
	_, err := io.WriteString(w, body+"\n\n")
	return err
}

// RenderEntryString is a convenience function that renders an entry to a string.
func RenderEntryString(e Entry) string {
	var b strings.Builder
	_ = RenderEntry(e, &b)
	return b.String()
}

// RenderMarkdown writes the whole changelog: the preamble (if any) followed
// by every entry in order.
//
// Rendering a parsed changelog reproduces the original up to blank-line and
// trailing-whitespace normalization.
func RenderMarkdown(c *Changelog, w io.Writer) error {
	if c.Preamble != "" {
		if _, err := io.WriteString(w, c.Preamble+"\n\n"); err != nil {
			return fmt.Errorf("rendering preamble: %w", err)
		}
	}

	for _, e := range c.Entries {
		if err := RenderEntry(e, w); err != nil {
			return fmt.Errorf("rendering version %s: %w", e.Version, err)
		}
	}

	return nil
}

// RenderMarkdownString is a convenience function that renders to a string.
func RenderMarkdownString(c *Changelog) (string, error) {
	var b strings.Builder
	if err := RenderMarkdown(c, &b); err != nil {
		return "", err
	}
	return b.String(), nil
}

// trimBody drops surrounding whitespace and trailing whitespace on each line
// while keeping the indentation of later lines.
func trimBody(body string) string {
	return trimBlankLines(strings.Split(strings.ReplaceAll(body, "\r\n", "\n"), "\n"))
}
