package cli

import (
	"fmt"

	apperrors "github.com/ariel-frischer/shipnote/internal/errors"
	"github.com/ariel-frischer/shipnote/internal/release"
	"github.com/spf13/cobra"
)

var bumpCmd = &cobra.Command{
	Use:   "bump <patch|minor|major> <version>",
	Short: "Print the version that follows a given version",
	Long: `Compute the next version without touching any file.

  patch  1.4.2 -> 1.4.3
  minor  1.4.2 -> 1.5.0
  major  1.4.2 -> 2.0.0

A leading "v" is accepted. Pre-release and build suffixes are rejected.`,
	Example: `  shipnote bump minor 1.4.2
  shipnote bump major v0.9.1`,
	Args:      cobra.ExactArgs(2),
	ValidArgs: release.KindNames(),
	RunE:      runBump,
}

func init() {
	bumpCmd.GroupID = GroupInspect
	rootCmd.AddCommand(bumpCmd)
}

func runBump(cmd *cobra.Command, args []string) error {
	kind, err := release.ParseKind(args[0])
	if err != nil {
		return apperrors.InvalidBumpKind(args[0])
	}

	current, err := release.ParseVersion(args[1])
	if err != nil {
		return err
	}

	next, _, err := release.BumpString(current, kind)
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), next)
	return nil
}
