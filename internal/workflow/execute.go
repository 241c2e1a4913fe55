package workflow

import (
	"fmt"
	"io"
	"os"

	"github.com/ariel-frischer/shipnote/internal/assign"
	"github.com/ariel-frischer/shipnote/internal/changelog"
	"github.com/ariel-frischer/shipnote/internal/git"
	"github.com/ariel-frischer/shipnote/internal/history"
)

// Result reports what Execute did.
type Result struct {
	Plan *ReleasePlan
	// Completed lists the steps that finished, in order.
	Completed []Step
	// ReleaseFileRemoved is false when the marker was kept.
	ReleaseFileRemoved bool
	// Commit is the hash of the release commit made before tagging.
	Commit string
	// Tagged is true when Plan.Tag was created.
	Tagged bool
}

// Execute carries out plan. Steps run in order and the first failure stops
// the release; files already written are left as they are and the returned
// Result lists what completed. When tagging, the changed files are committed
// first and the tag is created on that commit. History logging failures are
// only warnings.
func Execute(plan *ReleasePlan, warnings io.Writer) (*Result, error) {
	result := &Result{Plan: plan}

	logDebug("[workflow] rewriting %s in %s", plan.VersionName, plan.VersionFile)
	if err := assign.ReplaceInFile(plan.VersionFile, plan.VersionName, plan.NewValue); err != nil {
		return result, stepError(StepVersion, plan.VersionFile, err)
	}
	result.Completed = append(result.Completed, StepVersion)

	if err := verifyVersion(plan.VersionFile, plan.VersionName, plan.NextVersion); err != nil {
		return result, stepError(StepVerify, plan.VersionFile, err)
	}
	result.Completed = append(result.Completed, StepVerify)

	logDebug("[workflow] prepending %s", plan.ChangelogHeader())
	if err := changelog.UpdateAt(plan.ChangelogFile, plan.Project, plan.NextVersion, plan.Body, plan.Date); err != nil {
		return result, stepError(StepChangelog, plan.ChangelogFile, err)
	}
	result.Completed = append(result.Completed, StepChangelog)

	if !plan.KeepReleaseFile {
		if err := os.Remove(plan.ReleaseFile); err != nil {
			return result, stepError(StepCleanup, plan.ReleaseFile, fmt.Errorf("removing release file: %w", err))
		}
		result.ReleaseFileRemoved = true
		result.Completed = append(result.Completed, StepCleanup)
	}

	if plan.Tag != "" {
		logDebug("[workflow] committing release files")
		hash, err := git.CommitFiles(plan.Root, plan.releaseFiles(), plan.CommitMessage())
		if err != nil {
			return result, stepError(StepCommit, plan.Root, err)
		}
		result.Commit = hash
		result.Completed = append(result.Completed, StepCommit)

		message := fmt.Sprintf("%s %s\n\n%s", plan.Project, plan.NextVersion, plan.Body)
		if err := git.CreateTag(plan.Root, plan.Tag, message); err != nil {
			return result, stepError(StepTag, plan.Tag, err)
		}
		result.Tagged = true
		result.Completed = append(result.Completed, StepTag)
	}

	if plan.HistoryFile != "" {
		w := history.NewWriter(plan.HistoryFile, plan.MaxHistoryEntries)
		w.Warnings = warnings
		w.LogRelease(plan.Project, plan.PreviousVersion, plan.NextVersion, plan.Kind.String(), plan.Tag)
	}

	return result, nil
}

// CommitMessage is the message of the release commit made before tagging.
func (p *ReleasePlan) CommitMessage() string {
	return fmt.Sprintf("Release %s %s", p.Project, p.NextVersion)
}

// releaseFiles lists the files a release changes.
func (p *ReleasePlan) releaseFiles() []string {
	files := []string{p.VersionFile, p.ChangelogFile}
	if !p.KeepReleaseFile {
		files = append(files, p.ReleaseFile)
	}
	return files
}
