package cli

import (
	"fmt"

	"github.com/ariel-frischer/shipnote/internal/health"
	"github.com/spf13/cobra"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check that the project is ready to release",
	Long: `Run every release precondition without writing anything:

  - the version file assigns version_name exactly once, to X.Y.Z
  - the changelog exists and is writable
  - the release file, when present, is valid
  - the project is a git repository (required with create_tag)
  - no tag for the next patch, minor or major version exists yet`,
	Example: `  shipnote doctor`,
	Args:    cobra.NoArgs,
	RunE:    runDoctor,
}

func init() {
	doctorCmd.GroupID = GroupGettingStarted
	rootCmd.AddCommand(doctorCmd)
}

func runDoctor(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	report, err := health.RunHealthChecks(cfg, "")
	if err != nil {
		return err
	}

	fmt.Fprint(cmd.OutOrStdout(), health.FormatReport(report))
	if !report.Passed {
		return NewExitError(ExitValidationFailed)
	}
	return nil
}
