// Package git provides the repository operations shipnote needs: locating the
// repository root so release paths resolve consistently, and creating
// annotated release tags. It uses the go-git library, so no git CLI is required.
package git

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/format/index"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// ErrTagExists is returned by CreateTag when the tag is already present.
var ErrTagExists = git.ErrTagExists

// Fallback tagger identity when no user.name/user.email is configured.
const (
	fallbackTaggerName  = "shipnote"
	fallbackTaggerEmail = "shipnote@localhost"
)

// debugLogger is a function that logs debug messages when debug mode is enabled.
// By default, it's a no-op. Set it via SetDebugLogger to enable debug output.
var debugLogger func(format string, args ...any)

// SetDebugLogger configures the debug logger for git operations.
// Pass nil to disable debug logging. The logger function should format
// and output the message (similar to log.Printf signature).
func SetDebugLogger(logger func(format string, args ...any)) {
	debugLogger = logger
}

// logDebug logs a debug message if the debug logger is set.
func logDebug(format string, args ...any) {
	if debugLogger != nil {
		debugLogger(format, args...)
	}
}

// openRepo opens a git repository at the specified path or current working directory.
// It uses go-git's PlainOpenWithOptions with DetectDotGit enabled to traverse
// up the directory tree to find the repository root.
// If path is empty, the current working directory is used.
func openRepo(path string) (*git.Repository, error) {
	if path == "" {
		var err error
		path, err = os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("getting current directory: %w", err)
		}
	}

	logDebug("[git] opening repository at %s", path)

	repo, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{
		DetectDotGit: true,
	})
	if err != nil {
		return nil, fmt.Errorf("opening repository at %s: %w", path, err)
	}

	logDebug("[git] repository opened successfully")
	return repo, nil
}

// RepositoryRoot returns the absolute path to the root of the repository
// containing path.
func RepositoryRoot(path string) (string, error) {
	repo, err := openRepo(path)
	if err != nil {
		return "", err
	}

	worktree, err := repo.Worktree()
	if err != nil {
		return "", fmt.Errorf("getting worktree: %w", err)
	}

	root := worktree.Filesystem.Root()
	logDebug("[git] RepositoryRoot: %s", root)
	return root, nil
}

// IsRepository checks if path is within a git repository.
func IsRepository(path string) bool {
	_, err := openRepo(path)
	result := err == nil
	logDebug("[git] IsRepository(%s): %v", path, result)
	return result
}

// TagExists reports whether the repository containing path has a tag named name.
func TagExists(path, name string) (bool, error) {
	repo, err := openRepo(path)
	if err != nil {
		return false, err
	}
	return tagExists(repo, name)
}

func tagExists(repo *git.Repository, name string) (bool, error) {
	_, err := repo.Reference(plumbing.NewTagReferenceName(name), false)
	if errors.Is(err, plumbing.ErrReferenceNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("looking up tag %s: %w", name, err)
	}
	return true, nil
}

// CommitFiles stages paths in the repository containing root and commits
// them with message, returning the new commit hash. Paths that no longer
// exist are staged as deletions; an untracked path that is gone is skipped.
func CommitFiles(root string, paths []string, message string) (string, error) {
	repo, err := openRepo(root)
	if err != nil {
		return "", err
	}
	worktree, err := repo.Worktree()
	if err != nil {
		return "", fmt.Errorf("getting worktree: %w", err)
	}
	top := worktree.Filesystem.Root()

	for _, path := range paths {
		rel, err := relativeTo(top, path)
		if err != nil {
			return "", err
		}
		if _, statErr := os.Stat(filepath.Join(top, rel)); errors.Is(statErr, os.ErrNotExist) {
			if _, err := worktree.Remove(rel); err != nil && !errors.Is(err, index.ErrEntryNotFound) {
				return "", fmt.Errorf("staging removal of %s: %w", rel, err)
			}
			logDebug("[git] staged removal of %s", rel)
			continue
		}
		if _, err := worktree.Add(rel); err != nil {
			return "", fmt.Errorf("staging %s: %w", rel, err)
		}
		logDebug("[git] staged %s", rel)
	}

	sig := signature(repo)
	hash, err := worktree.Commit(message, &git.CommitOptions{
		Author:    sig,
		Committer: sig,
	})
	if err != nil {
		return "", fmt.Errorf("committing release: %w", err)
	}

	logDebug("[git] CommitFiles: %s", hash)
	return hash.String(), nil
}

// relativeTo returns path relative to the worktree root top, slash separated.
func relativeTo(top, path string) (string, error) {
	if !filepath.IsAbs(path) {
		return filepath.ToSlash(path), nil
	}
	rel, err := filepath.Rel(top, path)
	if err != nil {
		return "", fmt.Errorf("resolving %s: %w", path, err)
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%s is outside the repository at %s", path, top)
	}
	return filepath.ToSlash(rel), nil
}

// CreateTag creates an annotated tag named name at HEAD of the repository
// containing path. The tagger is taken from the git configuration, falling
// back to a shipnote identity.
func CreateTag(path, name, message string) error {
	repo, err := openRepo(path)
	if err != nil {
		return err
	}

	exists, err := tagExists(repo, name)
	if err != nil {
		return err
	}
	if exists {
		return fmt.Errorf("creating tag %s: %w", name, ErrTagExists)
	}

	head, err := repo.Head()
	if err != nil {
		return fmt.Errorf("getting HEAD reference: %w", err)
	}

	_, err = repo.CreateTag(name, head.Hash(), &git.CreateTagOptions{
		Tagger:  signature(repo),
		Message: message,
	})
	if err != nil {
		return fmt.Errorf("creating tag %s: %w", name, err)
	}

	logDebug("[git] CreateTag: %s at %s", name, head.Hash())
	return nil
}

// signature builds the commit and tag identity from repository, then
// global, config.
func signature(repo *git.Repository) *object.Signature {
	sig := &object.Signature{
		Name:  fallbackTaggerName,
		Email: fallbackTaggerEmail,
		When:  time.Now(),
	}

	for _, scope := range []config.Scope{config.LocalScope, config.GlobalScope} {
		cfg, err := repo.ConfigScoped(scope)
		if err != nil {
			logDebug("[git] reading %v config: %v", scope, err)
			continue
		}
		if cfg.User.Name != "" && cfg.User.Email != "" {
			sig.Name = cfg.User.Name
			sig.Email = cfg.User.Email
			break
		}
	}

	return sig
}
