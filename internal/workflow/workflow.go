// Package workflow runs a release: it plans the version bump from the
// release-marker file, then rewrites the version assignment, prepends the
// changelog entry, removes the marker, tags and logs the release in order.
// Planning touches nothing, so `shipnote plan` and `--dry-run` share it.
package workflow

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/ariel-frischer/shipnote/internal/config"
	"github.com/ariel-frischer/shipnote/internal/git"
)

// debugLogger is a function that logs debug messages when debug mode is enabled.
// By default, it's a no-op. Set it via SetDebugLogger to enable debug output.
var debugLogger func(format string, args ...any)

// SetDebugLogger configures the debug logger for release steps.
// Pass nil to disable debug logging.
func SetDebugLogger(logger func(format string, args ...any)) {
	debugLogger = logger
}

func logDebug(format string, args ...any) {
	if debugLogger != nil {
		debugLogger(format, args...)
	}
}

// Options adjusts a release beyond what the configuration says.
type Options struct {
	// WorkDir is where the release runs from (default: current directory).
	// Relative config paths resolve against the enclosing repository root,
	// or WorkDir itself outside a repository.
	WorkDir string
	// Date overrides the changelog date (zero means now).
	Date time.Time
	// Tag forces tag creation even when create_tag is false.
	Tag bool
	// KeepReleaseFile keeps the marker even when keep_release_file is false.
	KeepReleaseFile bool
}

// ResolveRoot returns the repository root containing workDir, or workDir
// itself when it is not inside a repository.
func ResolveRoot(workDir string) (string, error) {
	if workDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("getting current directory: %w", err)
		}
		workDir = wd
	}

	if root, err := git.RepositoryRoot(workDir); err == nil {
		logDebug("[workflow] repository root %s", root)
		return root, nil
	}

	abs, err := filepath.Abs(workDir)
	if err != nil {
		return "", fmt.Errorf("resolving %s: %w", workDir, err)
	}
	logDebug("[workflow] no repository, using %s", abs)
	return abs, nil
}

// ResolvePath resolves a configured path the way a release does: relative
// paths are joined onto the repository root enclosing workDir.
func ResolvePath(workDir, path string) (string, error) {
	root, err := ResolveRoot(workDir)
	if err != nil {
		return "", err
	}
	return resolvePath(root, path), nil
}

// resolvePath joins relative paths onto root.
func resolvePath(root, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(root, path)
}

// projectName returns the configured name or the root directory's name.
func projectName(cfg *config.Configuration, root string) string {
	if cfg.ProjectName != "" {
		return cfg.ProjectName
	}
	return filepath.Base(root)
}
