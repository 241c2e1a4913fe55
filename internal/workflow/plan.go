package workflow

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/ariel-frischer/shipnote/internal/assign"
	"github.com/ariel-frischer/shipnote/internal/changelog"
	"github.com/ariel-frischer/shipnote/internal/config"
	apperrors "github.com/ariel-frischer/shipnote/internal/errors"
	"github.com/ariel-frischer/shipnote/internal/git"
	"github.com/ariel-frischer/shipnote/internal/release"
)

// ReleasePlan is everything Execute needs, computed without side effects.
type ReleasePlan struct {
	Root    string       `yaml:"root"`
	Project string       `yaml:"project"`
	Kind    release.Kind `yaml:"kind"`

	Previous release.Version `yaml:"-"`
	Next     release.Version `yaml:"-"`
	// PreviousVersion and NextVersion are the dotted forms of Previous and Next.
	PreviousVersion string `yaml:"previous_version"`
	NextVersion     string `yaml:"next_version"`

	Date time.Time `yaml:"-"`
	// DateString is the changelog date, YYYY-MM-DD in UTC.
	DateString string `yaml:"date"`
	Body       string `yaml:"body"`

	ReleaseFile   string `yaml:"release_file"`
	ChangelogFile string `yaml:"changelog_file"`
	VersionFile   string `yaml:"version_file"`
	VersionName   string `yaml:"version_name"`
	// NewValue is written after `VersionName =`, quoted when configured.
	NewValue string `yaml:"new_value"`

	// Tag is the tag to create, empty when no tag is created.
	Tag             string `yaml:"tag,omitempty"`
	KeepReleaseFile bool   `yaml:"keep_release_file"`

	HistoryFile       string `yaml:"history_file"`
	MaxHistoryEntries int    `yaml:"-"`
}

// ChangelogHeader returns the header line Execute will prepend.
func (p *ReleasePlan) ChangelogHeader() string {
	return changelog.Header(p.Project, p.NextVersion, p.Date)
}

// CheckNote loads and parses the release-marker file named by cfg.
// It returns the note with the resolved path it was read from.
func CheckNote(cfg *config.Configuration, opts Options) (*release.Note, string, error) {
	root, err := ResolveRoot(opts.WorkDir)
	if err != nil {
		return nil, "", err
	}
	path := resolvePath(root, cfg.ReleaseFile)
	note, err := release.LoadNote(path)
	if err != nil {
		return nil, path, stepError(StepReleaseFile, path, err)
	}
	return note, path, nil
}

// Plan reads the release-marker file and the current version and works out
// the release. Every precondition Execute relies on is checked here so a
// failing release stops before anything is written.
func Plan(cfg *config.Configuration, opts Options) (*ReleasePlan, error) {
	root, err := ResolveRoot(opts.WorkDir)
	if err != nil {
		return nil, err
	}

	releasePath := resolvePath(root, cfg.ReleaseFile)
	note, err := release.LoadNote(releasePath)
	if err != nil {
		return nil, stepError(StepReleaseFile, releasePath, err)
	}
	logDebug("[workflow] %s requests a %s release", releasePath, note.Kind)

	versionPath := resolvePath(root, cfg.VersionFile)
	previous, err := ReadVersion(versionPath, cfg.VersionName)
	if err != nil {
		return nil, stepError(StepVersion, versionPath, err)
	}
	next, err := previous.Bump(note.Kind)
	if err != nil {
		return nil, stepError(StepVersion, versionPath, err)
	}
	logDebug("[workflow] %s %s -> %s", cfg.VersionName, previous, next)

	changelogPath := resolvePath(root, cfg.ChangelogFile)
	if _, err := os.Stat(changelogPath); err != nil {
		return nil, stepError(StepChangelog, changelogPath, fmt.Errorf("reading changelog: %w", err))
	}

	date := opts.Date
	if date.IsZero() {
		date = time.Now()
	}

	plan := &ReleasePlan{
		Root:              root,
		Project:           projectName(cfg, root),
		Kind:              note.Kind,
		Previous:          previous,
		Next:              next,
		PreviousVersion:   previous.String(),
		NextVersion:       next.String(),
		Date:              date,
		DateString:        changelog.DateString(date),
		Body:              note.Body,
		ReleaseFile:       releasePath,
		ChangelogFile:     changelogPath,
		VersionFile:       versionPath,
		VersionName:       cfg.VersionName,
		NewValue:          formatValue(next.String(), cfg.QuoteVersion),
		KeepReleaseFile:   cfg.KeepReleaseFile || opts.KeepReleaseFile,
		HistoryFile:       resolvePath(root, cfg.HistoryFile),
		MaxHistoryEntries: cfg.MaxHistoryEntries,
	}

	if cfg.CreateTag || opts.Tag {
		plan.Tag = cfg.TagName(plan.NextVersion)
		if err := checkTag(root, plan.Tag); err != nil {
			return nil, err
		}
	}

	return plan, nil
}

// ReadVersion returns the version assigned to name in the file at path.
// Surrounding quotes are removed before parsing.
func ReadVersion(path, name string) (release.Version, error) {
	raw, err := assign.FindInFile(path, name)
	if err != nil {
		return release.Version{}, err
	}
	return release.ParseVersion(unquote(raw))
}

func checkTag(root, tag string) error {
	if !git.IsRepository(root) {
		return stepError(StepTag, "", ErrNotRepository)
	}
	exists, err := git.TagExists(root, tag)
	if err != nil {
		return stepError(StepTag, tag, err)
	}
	if exists {
		return stepError(StepTag, tag, git.ErrTagExists)
	}
	return nil
}

// unquote strips one pair of matching ", ' or ` quotes from a version value.
func unquote(value string) string {
	if len(value) < 2 {
		return value
	}
	switch value[0] {
	case '"', '`':
		if s, err := strconv.Unquote(value); err == nil {
			return s
		}
	case '\'':
		if value[len(value)-1] == '\'' {
			return value[1 : len(value)-1]
		}
	}
	return value
}

func formatValue(version string, quote bool) string {
	if quote {
		return strconv.Quote(version)
	}
	return version
}

// verifyVersion re-reads the version file and checks it now holds want.
func verifyVersion(path, name, want string) error {
	raw, err := assign.FindInFile(path, name)
	if err != nil {
		return err
	}
	if got := unquote(raw); got != want {
		return apperrors.Invalid(path, "%s reads %q after rewrite, want %q", name, got, want)
	}
	return nil
}
