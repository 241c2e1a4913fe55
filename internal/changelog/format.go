package changelog

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"golang.org/x/term"
)

var (
	versionStyle = color.New(color.FgCyan, color.Bold)
	dateStyle    = color.New(color.Faint)
	projectStyle = color.New(color.Bold)
)

// bodyIndent prefixes every body line in terminal output.
const bodyIndent = "  "

// FormatOptions controls the terminal output formatting.
type FormatOptions struct {
	Plain    bool // Disable colors
	MaxWidth int  // Maximum line width (0 = auto-detect)
}

// FormatTerminal writes changelog entries to the writer with terminal styling.
// Entries are separated by a blank line.
func FormatTerminal(entries []Entry, w io.Writer, opts FormatOptions) error {
	if len(entries) == 0 {
		return nil
	}

	width := resolveWidth(opts.MaxWidth)

	for i := range entries {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		if err := formatEntry(&entries[i], w, opts, width); err != nil {
			return fmt.Errorf("formatting version %s: %w", entries[i].Version, err)
		}
	}

	return nil
}

// FormatEntry writes a single entry to the writer.
func FormatEntry(e *Entry, w io.Writer, opts FormatOptions) error {
	return formatEntry(e, w, opts, resolveWidth(opts.MaxWidth))
}

func formatEntry(e *Entry, w io.Writer, opts FormatOptions, width int) error {
	if err := writeEntryHeader(e, w, opts); err != nil {
		return err
	}

	if e.IsEmpty() {
		_, err := fmt.Fprintf(w, "%s(no release notes)\n", bodyIndent)
		return err
	}

	for _, line := range strings.Split(e.Body, "\n") {
		if line == "" {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
			continue
		}
		wrapped := wrapText(line, width-len(bodyIndent), bodyIndent+leadingSpace(line))
		if _, err := fmt.Fprintf(w, "%s%s\n", bodyIndent, wrapped); err != nil {
			return err
		}
	}
	return nil
}

// writeEntryHeader writes the "project vX.Y.Z (date)" line.
func writeEntryHeader(e *Entry, w io.Writer, opts FormatOptions) error {
	version := "v" + NormalizeVersion(e.Version)

	if opts.Plain {
		_, err := fmt.Fprintf(w, "## %s %s (%s)\n", e.Project, version, e.Date)
		return err
	}

	_, err := fmt.Fprintf(w, "%s %s %s\n",
		projectStyle.Sprint(e.Project),
		versionStyle.Sprint(version),
		dateStyle.Sprintf("(%s)", e.Date))
	return err
}

// resolveWidth determines the terminal width to use.
func resolveWidth(maxWidth int) int {
	if maxWidth > 0 {
		return maxWidth
	}
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		return w
	}
	return 80
}

// leadingSpace returns the indentation of line.
func leadingSpace(line string) string {
	return line[:len(line)-len(strings.TrimLeft(line, " \t"))]
}

// wrapText wraps text to fit within maxWidth, using indent for continuation lines.
func wrapText(text string, maxWidth int, indent string) string {
	if maxWidth <= 0 || len(text) <= maxWidth {
		return text
	}

	var lines []string
	remaining := text

	for len(remaining) > maxWidth {
		// Find the last space within maxWidth
		breakPoint := maxWidth
		for i := maxWidth - 1; i > 0; i-- {
			if remaining[i] == ' ' {
				breakPoint = i
				break
			}
		}

		lines = append(lines, remaining[:breakPoint])
		remaining = strings.TrimLeft(remaining[breakPoint:], " ")
	}

	if len(remaining) > 0 {
		lines = append(lines, remaining)
	}

	return strings.Join(lines, "\n"+indent)
}

// FormatEntrySummary returns a brief one-line summary of an entry.
func FormatEntrySummary(e Entry, opts FormatOptions) string {
	first := strings.TrimSpace(strings.SplitN(e.Body, "\n", 2)[0])
	text := truncateText(first, 60)
	version := "v" + NormalizeVersion(e.Version)

	if opts.Plain {
		return fmt.Sprintf("[%s] %s", version, text)
	}
	return fmt.Sprintf("%s %s", versionStyle.Sprint(version), text)
}

// truncateText truncates text to maxLen, adding ellipsis if needed.
func truncateText(text string, maxLen int) string {
	if len(text) <= maxLen {
		return text
	}
	return text[:maxLen-3] + "..."
}
