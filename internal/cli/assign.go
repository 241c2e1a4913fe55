package cli

import (
	"fmt"

	"github.com/ariel-frischer/shipnote/internal/assign"
	"github.com/spf13/cobra"
)

var assignCmd = &cobra.Command{
	Use:   "assign <file> <name> [value]",
	Short: "Read or rewrite a single name = value assignment",
	Long: `Print the value of the single assignment to <name> in <file>, or replace it
with [value] when given.

Exactly one line in the file must assign <name>. Indentation, spacing around
"=" and every other line are kept as they are. Quotes are not added, so pass
them as part of the value when the file needs them.`,
	Example: `  shipnote assign internal/build/version.go Version
  shipnote assign setup.cfg version 1.5.0
  shipnote assign version.go Version '"1.5.0"'`,
	Args: cobra.RangeArgs(2, 3),
	RunE: runAssign,
}

func init() {
	assignCmd.GroupID = GroupInspect
	rootCmd.AddCommand(assignCmd)
}

func runAssign(cmd *cobra.Command, args []string) error {
	path, name := args[0], args[1]

	if len(args) == 2 {
		value, err := assign.FindInFile(path, name)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), value)
		return nil
	}

	if err := assign.ReplaceInFile(path, name, args[2]); err != nil {
		return err
	}
	if verboseFlag {
		fmt.Fprintf(cmd.OutOrStdout(), "%s: %s = %s\n", path, name, args[2])
	}
	return nil
}
