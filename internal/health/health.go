// Package health checks that a project is ready to release: the config
// loads, the version file holds a parseable version, the changelog is
// writable and tagging can succeed. The report backs `shipnote doctor`.
package health

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/ariel-frischer/shipnote/internal/config"
	"github.com/ariel-frischer/shipnote/internal/git"
	"github.com/ariel-frischer/shipnote/internal/release"
	"github.com/ariel-frischer/shipnote/internal/workflow"
)

// CheckResult represents the result of a single health check
type CheckResult struct {
	Name    string
	Passed  bool
	Message string
}

// HealthReport contains all health check results
type HealthReport struct {
	Root   string
	Checks []CheckResult
	Passed bool
}

func (r *HealthReport) add(check CheckResult) {
	r.Checks = append(r.Checks, check)
	if !check.Passed {
		r.Passed = false
	}
}

// RunHealthChecks runs every check for cfg against the project enclosing
// workDir (the current directory when empty).
func RunHealthChecks(cfg *config.Configuration, workDir string) (*HealthReport, error) {
	root, err := workflow.ResolveRoot(workDir)
	if err != nil {
		return nil, err
	}
	resolve := func(p string) string {
		path, _ := workflow.ResolvePath(root, p)
		return path
	}

	report := &HealthReport{Root: root, Passed: true}
	version, versionCheck := CheckVersionFile(resolve(cfg.VersionFile), cfg.VersionName)
	report.add(versionCheck)
	report.add(CheckChangelog(resolve(cfg.ChangelogFile)))
	report.add(CheckReleaseFile(resolve(cfg.ReleaseFile)))

	repoCheck := CheckRepository(root, cfg.CreateTag)
	report.add(repoCheck)
	if cfg.CreateTag && repoCheck.Passed && versionCheck.Passed {
		tags := make([]string, 0, len(release.Kinds()))
		for _, kind := range release.Kinds() {
			if next, err := version.Bump(kind); err == nil {
				tags = append(tags, cfg.TagName(next.String()))
			}
		}
		report.add(CheckTags(root, tags))
	}

	return report, nil
}

// CheckVersionFile checks that path assigns name exactly once and that the
// value is a plain X.Y.Z version.
func CheckVersionFile(path, name string) (release.Version, CheckResult) {
	result := CheckResult{Name: "Version file"}
	v, err := workflow.ReadVersion(path, name)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		result.Message = fmt.Sprintf("%s not found", path)
	case err != nil:
		result.Message = err.Error()
	default:
		result.Passed = true
		result.Message = fmt.Sprintf("%s = %s", name, v)
	}
	return v, result
}

// CheckChangelog checks that the changelog exists and can be opened for
// writing.
func CheckChangelog(path string) CheckResult {
	result := CheckResult{Name: "Changelog"}
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			result.Message = fmt.Sprintf("%s not found (create it empty before the first release)", path)
		} else {
			result.Message = err.Error()
		}
		return result
	}
	if info.IsDir() {
		result.Message = fmt.Sprintf("%s is a directory", path)
		return result
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_APPEND, 0)
	if err != nil {
		result.Message = fmt.Sprintf("%s is not writable: %v", path, err)
		return result
	}
	f.Close()

	result.Passed = true
	result.Message = path
	return result
}

// CheckReleaseFile reports whether a release is pending. A missing release
// file passes; a present but malformed one fails.
func CheckReleaseFile(path string) CheckResult {
	result := CheckResult{Name: "Release file"}
	if !release.HasNote(path) {
		result.Passed = true
		result.Message = "no release pending"
		return result
	}
	note, err := release.LoadNote(path)
	if err != nil {
		result.Message = err.Error()
		return result
	}
	result.Passed = true
	result.Message = fmt.Sprintf("%s release pending", note.Kind)
	return result
}

// CheckRepository checks for an enclosing git repository. It only fails
// when tagging is enabled.
func CheckRepository(root string, tagging bool) CheckResult {
	result := CheckResult{Name: "Git repository"}
	if git.IsRepository(root) {
		result.Passed = true
		result.Message = root
		return result
	}
	result.Passed = !tagging
	if tagging {
		result.Message = "not a git repository (create_tag is enabled)"
	} else {
		result.Message = "not a git repository (tagging unavailable)"
	}
	return result
}

// CheckTags checks that none of the candidate release tags exist yet.
func CheckTags(root string, tags []string) CheckResult {
	result := CheckResult{Name: "Release tags"}
	var taken []string
	for _, tag := range tags {
		exists, err := git.TagExists(root, tag)
		if err != nil {
			result.Message = err.Error()
			return result
		}
		if exists {
			taken = append(taken, tag)
		}
	}
	if len(taken) > 0 {
		result.Message = "already tagged: " + strings.Join(taken, ", ")
		return result
	}
	result.Passed = true
	result.Message = "next tags are free"
	return result
}

// FormatReport formats the health report for console output
func FormatReport(report *HealthReport) string {
	var b strings.Builder
	for _, check := range report.Checks {
		mark := "✓"
		if !check.Passed {
			mark = "✗"
		}
		fmt.Fprintf(&b, "%s %s: %s\n", mark, check.Name, check.Message)
	}
	return b.String()
}
