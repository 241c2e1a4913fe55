package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var changelogExtractCmd = &cobra.Command{
	Use:   "extract [version]",
	Short: "Print the release notes for a version",
	Long: `Print the release notes of one changelog entry as markdown, without the
header line. Defaults to the newest entry.

The output is meant for release pages and CI pipelines.`,
	Example: `  shipnote changelog extract            # Newest entry
  shipnote changelog extract 1.4.0      # Notes for 1.4.0
  shipnote changelog extract v1.4.0 > notes.md`,
	Args: cobra.MaximumNArgs(1),
	RunE: runChangelogExtract,
}

func init() {
	changelogCmd.AddCommand(changelogExtractCmd)
}

func runChangelogExtract(cmd *cobra.Command, args []string) error {
	log, err := loadChangelog(cmd)
	if err != nil {
		return err
	}

	entry := log.Latest()
	if len(args) == 1 {
		if entry, err = lookupEntry(cmd, log, args[0]); err != nil {
			return err
		}
	}
	if entry == nil {
		fmt.Fprintln(cmd.ErrOrStderr(), "The changelog has no entries yet.")
		return NewExitError(ExitValidationFailed)
	}

	body := strings.TrimRight(entry.Body, "\n")
	if body != "" {
		fmt.Fprintln(cmd.OutOrStdout(), body)
	}
	return nil
}
