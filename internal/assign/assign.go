// Package assign locates and rewrites single `name = value` statements in
// source text. It is used to read and bump the version constant recorded in
// a project's source tree.
package assign

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	apperrors "github.com/ariel-frischer/shipnote/internal/errors"
)

// stringSource names in-memory input in error messages.
const stringSource = "<string>"

// matcher builds the line pattern for name. Group 1 is everything up to and
// including the spacing after `=`; group 2 is the value. A value may not
// start with `=`, so comparisons like `a == 1` never match.
func matcher(name string) *regexp.Regexp {
	return regexp.MustCompile(`^([ \t]*` + regexp.QuoteMeta(name) + `[ \t]*=[ \t]*)([^=\s].*)$`)
}

// Find returns the value assigned to name in source, with trailing
// whitespace removed. Exactly one line must assign name.
func Find(source, name string) (string, error) {
	return find(source, name, stringSource)
}

// Replace returns source with the value of the single assignment to name
// replaced by value. Indentation, the spacing around `=` and a CRLF line
// ending are kept as they were, and every other line is returned unchanged.
// The value must read back unchanged through Find, so it may not start with
// `=` or carry surrounding whitespace.
func Replace(source, name, value string) (string, error) {
	return replace(source, name, value, stringSource)
}

// ReplaceInFile rewrites the assignment to name in the file at path, keeping
// the file's permissions.
func ReplaceInFile(path, name, value string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	updated, err := replace(string(data), name, value, path)
	if err != nil {
		return err
	}

	if err := os.WriteFile(path, []byte(updated), info.Mode().Perm()); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// FindInFile returns the value assigned to name in the file at path.
func FindInFile(path, name string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	return find(string(data), name, path)
}

func find(source, name, origin string) (string, error) {
	lines := strings.Split(source, "\n")
	idx, m, err := locate(lines, name, origin)
	if err != nil {
		return "", err
	}
	return strings.TrimRight(lines[idx][m[4]:m[5]], " \t\r"), nil
}

func replace(source, name, value, origin string) (string, error) {
	if strings.ContainsAny(value, "\r\n") {
		return "", apperrors.Invalid(origin, "replacement value for %s spans multiple lines", name)
	}
	if strings.TrimSpace(value) == "" {
		return "", apperrors.Invalid(origin, "replacement value for %s is empty", name)
	}
	if strings.TrimSpace(value) != value {
		return "", apperrors.Invalid(origin, "replacement value for %s has leading or trailing whitespace", name)
	}
	if strings.HasPrefix(value, "=") {
		return "", apperrors.Invalid(origin, "replacement value for %s starts with '='", name)
	}

	lines := strings.Split(source, "\n")
	idx, m, err := locate(lines, name, origin)
	if err != nil {
		return "", err
	}

	line := lines[idx]
	updated := line[:m[4]] + value
	if strings.HasSuffix(line, "\r") {
		updated += "\r"
	}
	lines[idx] = updated
	return strings.Join(lines, "\n"), nil
}

// locate returns the index of the only line assigning name together with
// the submatch offsets within that line.
func locate(lines []string, name, origin string) (int, []int, error) {
	if err := validateName(name, origin); err != nil {
		return 0, nil, err
	}

	re := matcher(name)
	found := -1
	var loc []int
	for i, line := range lines {
		m := re.FindStringSubmatchIndex(line)
		if m == nil {
			continue
		}
		if found >= 0 {
			return 0, nil, apperrors.Invalid(origin,
				"ambiguous assignment to %s on lines %d and %d", name, found+1, i+1)
		}
		found, loc = i, m
	}

	if found < 0 {
		return 0, nil, apperrors.Invalid(origin, "no assignment to %s found", name)
	}
	return found, loc, nil
}

func validateName(name, origin string) error {
	if name == "" {
		return apperrors.Invalid(origin, "assignment name is empty")
	}
	if strings.ContainsAny(name, " \t\r\n=") {
		return apperrors.Invalid(origin, "assignment name %q contains whitespace or '='", name)
	}
	return nil
}
