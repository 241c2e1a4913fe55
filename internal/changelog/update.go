package changelog

import (
	"fmt"
	"os"
	"strings"
	"time"

	apperrors "github.com/ariel-frischer/shipnote/internal/errors"
)

// Update prepends an entry for project at version, dated today (UTC), to the
// changelog at path. The file is overwritten in place; no backup is kept.
func Update(path, project, version, body string) error {
	return UpdateAt(path, project, version, body, time.Now())
}

// UpdateAt is Update with an explicit release date.
//
// The new file content is the entry header, a blank line, the trimmed body, a
// blank line, then the previous content unchanged. Read and write failures
// are returned wrapped so callers can inspect them with errors.Is.
func UpdateAt(path, project, version, body string, date time.Time) error {
	if err := validateHeaderField(path, "project name", project); err != nil {
		return err
	}
	if err := validateHeaderField(path, "version", version); err != nil {
		return err
	}
	if strings.ContainsAny(version, " \t") {
		return apperrors.Invalid(path, "version %q contains whitespace", version)
	}

	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("reading changelog: %w", err)
	}
	previous, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading changelog: %w", err)
	}

	entry := Entry{
		Project: project,
		Version: version,
		Date:    DateString(date),
		Body:    body,
	}

	var b strings.Builder
	b.Grow(len(previous) + len(body) + 64)
	if err := RenderEntry(entry, &b); err != nil {
		return fmt.Errorf("rendering entry: %w", err)
	}
	b.Write(previous)

	if err := os.WriteFile(path, []byte(b.String()), info.Mode().Perm()); err != nil {
		return fmt.Errorf("writing changelog: %w", err)
	}
	return nil
}

func validateHeaderField(path, field, value string) error {
	if strings.TrimSpace(value) == "" {
		return apperrors.Invalid(path, "%s for changelog entry is empty", field)
	}
	if strings.ContainsAny(value, "\r\n") {
		return apperrors.Invalid(path, "%s for changelog entry spans multiple lines", field)
	}
	return nil
}
