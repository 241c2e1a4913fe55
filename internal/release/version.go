package release

import (
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"

	apperrors "github.com/ariel-frischer/shipnote/internal/errors"
)

// Version is a major.minor.patch release number.
type Version struct {
	Major int `yaml:"major"`
	Minor int `yaml:"minor"`
	Patch int `yaml:"patch"`
}

// NewVersion returns the version (major, minor, patch). Negative components
// are invalid input.
func NewVersion(major, minor, patch int) (Version, error) {
	if major < 0 || minor < 0 || patch < 0 {
		return Version{}, apperrors.Invalid("", "version components must be non-negative, got %d.%d.%d",
			major, minor, patch)
	}
	return Version{Major: major, Minor: minor, Patch: patch}, nil
}

// ParseVersion parses "1.2.3" or "v1.2.3". Pre-release and build suffixes are
// rejected because the bump rules have no meaning for them.
func ParseVersion(s string) (Version, error) {
	trimmed := strings.TrimPrefix(strings.TrimSpace(s), "v")
	sv, err := semver.StrictNewVersion(trimmed)
	if err != nil {
		return Version{}, apperrors.Invalid("", "invalid version %q: %v", s, err)
	}
	if sv.Prerelease() != "" || sv.Metadata() != "" {
		return Version{}, apperrors.Invalid("", "version %q has a pre-release or build suffix", s)
	}
	return Version{
		Major: int(sv.Major()),
		Minor: int(sv.Minor()),
		Patch: int(sv.Patch()),
	}, nil
}

// String returns the dotted form, e.g. "1.2.0".
func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// Compare returns -1, 0 or 1 comparing v and other component by component.
func (v Version) Compare(other Version) int {
	a := [3]int{v.Major, v.Minor, v.Patch}
	b := [3]int{other.Major, other.Minor, other.Patch}
	for i := range a {
		switch {
		case a[i] < b[i]:
			return -1
		case a[i] > b[i]:
			return 1
		}
	}
	return 0
}

// Bump returns the version following v for the given kind.
func (v Version) Bump(kind Kind) (Version, error) {
	switch kind {
	case Patch:
		return Version{Major: v.Major, Minor: v.Minor, Patch: v.Patch + 1}, nil
	case Minor:
		return Version{Major: v.Major, Minor: v.Minor + 1}, nil
	case Major:
		return Version{Major: v.Major + 1}, nil
	default:
		return v, apperrors.Invalid("", "unrecognised release kind %d", int(kind))
	}
}

// BumpString bumps v and returns the new version both as a string and a value.
func BumpString(v Version, kind Kind) (string, Version, error) {
	next, err := v.Bump(kind)
	if err != nil {
		return "", v, err
	}
	return next.String(), next, nil
}

// BumpNamed is BumpString for a kind given by name.
func BumpNamed(v Version, kind string) (string, Version, error) {
	k, err := ParseKind(kind)
	if err != nil {
		return "", v, err
	}
	return BumpString(v, k)
}
