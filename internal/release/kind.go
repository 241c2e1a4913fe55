package release

import (
	"strings"

	apperrors "github.com/ariel-frischer/shipnote/internal/errors"
)

// Kind is a bump kind: which version component a release increments.
type Kind int

const (
	// Patch increments the patch component.
	Patch Kind = iota
	// Minor increments minor and resets patch.
	Minor
	// Major increments major and resets minor and patch.
	Major
)

// String returns the marker-file spelling of the kind.
func (k Kind) String() string {
	switch k {
	case Patch:
		return "patch"
	case Minor:
		return "minor"
	case Major:
		return "major"
	default:
		return "unknown"
	}
}

// MarshalText implements encoding.TextMarshaler so kinds render by name in
// YAML output and history files.
func (k Kind) MarshalText() ([]byte, error) {
	if !k.Valid() {
		return nil, apperrors.Invalid("", "unrecognised release kind %d", int(k))
	}
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Kind) UnmarshalText(text []byte) error {
	parsed, err := ParseKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// Valid reports whether k is one of the recognised kinds.
func (k Kind) Valid() bool {
	return k >= Patch && k <= Major
}

// Kinds returns the recognised kinds from smallest to largest bump.
func Kinds() []Kind {
	return []Kind{Patch, Minor, Major}
}

// KindNames returns the recognised kind names, e.g. for help text.
func KindNames() []string {
	names := make([]string, 0, 3)
	for _, k := range Kinds() {
		names = append(names, k.String())
	}
	return names
}

// ParseKind converts "patch", "minor" or "major" into a Kind.
func ParseKind(s string) (Kind, error) {
	for _, k := range Kinds() {
		if s == k.String() {
			return k, nil
		}
	}
	return Patch, apperrors.Invalid("", "unrecognised release type %q (expected one of %s)",
		s, strings.Join(KindNames(), ", "))
}
