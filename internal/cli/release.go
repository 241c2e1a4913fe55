package cli

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"time"

	"github.com/araddon/dateparse"
	"github.com/ariel-frischer/shipnote/internal/changelog"
	"github.com/ariel-frischer/shipnote/internal/config"
	apperrors "github.com/ariel-frischer/shipnote/internal/errors"
	"github.com/ariel-frischer/shipnote/internal/git"
	"github.com/ariel-frischer/shipnote/internal/output"
	"github.com/ariel-frischer/shipnote/internal/workflow"
	"github.com/spf13/cobra"
)

var (
	releaseDryRun          bool
	releaseDate            string
	releaseTag             bool
	releaseKeepReleaseFile bool
)

var releaseCmd = &cobra.Command{
	Use:   "release",
	Short: "Bump the version and prepend the changelog from RELEASE.md",
	Long: `Cut a release from the release file.

The release runs these steps in order and stops at the first failure:
  1. Rewrite the version assignment in version_file
  2. Re-read it to confirm the new version landed
  3. Prepend "# <project> <version> (<date>)" and the notes to the changelog
  4. Remove the release file (unless --keep-release-file)
  5. Commit those files and create an annotated tag on that commit
     (with --tag or create_tag: true)

Every file is checked before the first write, so a missing changelog or a
malformed release file stops the release with nothing changed.`,
	Example: `  # Release with today's date (UTC)
  shipnote release

  # Preview only
  shipnote release --dry-run

  # Backdate the changelog entry
  shipnote release --date "May 1, 2024"

  # Tag and keep RELEASE.md for a later step
  shipnote release --tag --keep-release-file`,
	Args: cobra.NoArgs,
	RunE: runRelease,
}

func init() {
	releaseCmd.GroupID = GroupRelease
	rootCmd.AddCommand(releaseCmd)

	releaseCmd.Flags().BoolVarP(&releaseDryRun, "dry-run", "n", false, "Show what would change without writing")
	releaseCmd.Flags().StringVar(&releaseDate, "date", "", "Changelog date, any common format (default: today, UTC)")
	releaseCmd.Flags().BoolVar(&releaseTag, "tag", false, "Create an annotated git tag even if create_tag is false")
	releaseCmd.Flags().BoolVar(&releaseKeepReleaseFile, "keep-release-file", false, "Do not remove the release file")
}

func runRelease(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	date, err := parseReleaseDate(releaseDate)
	if err != nil {
		return err
	}

	plan, err := workflow.Plan(cfg, workflow.Options{
		Date:            date,
		Tag:             releaseTag,
		KeepReleaseFile: releaseKeepReleaseFile,
	})
	if err != nil {
		return releaseError(cfg, err)
	}

	out := cmd.OutOrStdout()
	if releaseDryRun {
		printPlanSummary(out, plan, true)
		output.PrintDryRun(out, "no files were changed")
		return nil
	}

	if verboseFlag {
		printPlanSummary(out, plan, false)
	}

	result, err := workflow.Execute(plan, cmd.ErrOrStderr())
	printCompletedSteps(out, result)
	if err != nil {
		return releaseError(cfg, err)
	}

	fmt.Fprintf(out, "\nReleased %s %s\n", plan.Project, plan.NextVersion)
	return nil
}

// parseReleaseDate accepts any date dateparse understands. Empty means now.
func parseReleaseDate(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	date, err := dateparse.ParseIn(value, time.UTC)
	if err != nil {
		return time.Time{}, apperrors.InvalidDate(value, err)
	}
	return date, nil
}

func printCompletedSteps(out io.Writer, result *workflow.Result) {
	if result == nil {
		return
	}
	plan := result.Plan
	total := plannedSteps(plan)
	for i, step := range result.Completed {
		output.PrintStepHeader(out, i+1, total, string(step))
		switch step {
		case workflow.StepVersion:
			output.PrintStepSuccess(out, fmt.Sprintf("%s: %s %s -> %s", plan.VersionFile, plan.VersionName, plan.PreviousVersion, plan.NextVersion))
		case workflow.StepVerify:
			output.PrintStepSuccess(out, fmt.Sprintf("%s reads %s", plan.VersionName, plan.NextVersion))
		case workflow.StepChangelog:
			output.PrintStepSuccess(out, fmt.Sprintf("%s: %s", plan.ChangelogFile, plan.ChangelogHeader()))
		case workflow.StepCleanup:
			output.PrintStepSuccess(out, "removed "+plan.ReleaseFile)
		case workflow.StepCommit:
			output.PrintStepSuccess(out, fmt.Sprintf("committed %q (%s)", plan.CommitMessage(), truncateCommit(result.Commit)))
		case workflow.StepTag:
			output.PrintStepSuccess(out, "tagged "+plan.Tag)
		}
	}
}

// plannedSteps counts the steps Execute will run for plan.
func plannedSteps(plan *workflow.ReleasePlan) int {
	n := 3
	if !plan.KeepReleaseFile {
		n++
	}
	if plan.Tag != "" {
		n += 2
	}
	return n
}

// printPlanSummary prints the plan and, for previews, the changelog entry
// that would be prepended.
func printPlanSummary(out io.Writer, plan *workflow.ReleasePlan, preview bool) {
	output.PrintKeyValue(out, "project", plan.Project)
	output.PrintKeyValue(out, "kind", plan.Kind.String())
	output.PrintKeyValue(out, "version", plan.PreviousVersion+" -> "+plan.NextVersion)
	output.PrintKeyValue(out, "date", plan.DateString)
	output.PrintKeyValue(out, "version file", plan.VersionFile)
	output.PrintKeyValue(out, "changelog", plan.ChangelogFile)
	if plan.Tag != "" {
		output.PrintKeyValue(out, "tag", plan.Tag)
	}
	if plan.KeepReleaseFile {
		output.PrintKeyValue(out, "release file", plan.ReleaseFile+" (kept)")
	} else {
		output.PrintKeyValue(out, "release file", plan.ReleaseFile+" (removed)")
	}

	if !preview {
		fmt.Fprintln(out)
		return
	}
	fmt.Fprintln(out)
	output.PrintSeparator(out, "changelog entry")
	fmt.Fprint(out, changelog.RenderEntryString(changelog.Entry{
		Project: plan.Project,
		Version: plan.NextVersion,
		Date:    plan.DateString,
		Body:    plan.Body,
	}))
}

// releaseError turns a workflow failure into a CLIError with remediation.
func releaseError(cfg *config.Configuration, err error) error {
	var stepErr *workflow.StepError
	if !errors.As(err, &stepErr) {
		return err
	}

	notExist := errors.Is(err, fs.ErrNotExist)
	switch stepErr.Step {
	case workflow.StepReleaseFile:
		if notExist {
			return apperrors.MissingReleaseFile(stepErr.Path)
		}
		return apperrors.InvalidReleaseFile(stepErr.Err)
	case workflow.StepVersion, workflow.StepVerify:
		if notExist {
			return apperrors.MissingVersionFile(stepErr.Path)
		}
		return apperrors.VersionAssignmentError(stepErr.Path, cfg.VersionName, stepErr.Err)
	case workflow.StepChangelog:
		if notExist {
			return apperrors.MissingChangelog(stepErr.Path)
		}
		return apperrors.ChangelogNotWritable(stepErr.Path, stepErr.Err)
	case workflow.StepTag:
		if errors.Is(err, workflow.ErrNotRepository) {
			return apperrors.GitNotRepository()
		}
		if errors.Is(err, git.ErrTagExists) {
			return apperrors.TagExists(stepErr.Path)
		}
	}
	return err
}
