package cli

import (
	"fmt"

	apperrors "github.com/ariel-frischer/shipnote/internal/errors"
	"github.com/ariel-frischer/shipnote/internal/output"
	"github.com/ariel-frischer/shipnote/internal/workflow"
	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate the release file",
	Long: `Check that the release file exists and starts with a valid release type.

Exits 0 when a release is pending and 1 otherwise, so CI can require a
release file on every pull request:

  shipnote check || (echo "add RELEASE.md" && exit 1)`,
	Example: `  shipnote check
  shipnote check --verbose   # also print the release notes`,
	Args: cobra.NoArgs,
	RunE: runCheck,
}

func init() {
	checkCmd.GroupID = GroupRelease
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	note, path, err := workflow.CheckNote(cfg, workflow.Options{})
	if err != nil {
		apperrors.FprintError(cmd.ErrOrStderr(), releaseError(cfg, err))
		return NewExitError(ExitValidationFailed)
	}

	out := cmd.OutOrStdout()
	output.PrintStepSuccess(out, fmt.Sprintf("%s: %s release", path, note.Kind))
	if verboseFlag && note.Body != "" {
		fmt.Fprintln(out)
		fmt.Fprintln(out, note.Body)
	}
	return nil
}
