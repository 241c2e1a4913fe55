package cli

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/ariel-frischer/shipnote/internal/changelog"
	apperrors "github.com/ariel-frischer/shipnote/internal/errors"
	"github.com/ariel-frischer/shipnote/internal/workflow"
	"github.com/spf13/cobra"
)

var (
	changelogLastFlag  int
	changelogPlainFlag bool
	changelogFileFlag  string
)

var changelogCmd = &cobra.Command{
	Use:   "changelog [version]",
	Short: "View entries from the project changelog",
	Long: `View entries from the project changelog.

By default, shows the 5 most recent entries. Pass a version to see the
entry for that release, or use --last to control how many are shown.`,
	Example: `  shipnote changelog              # Show 5 most recent entries
  shipnote changelog v1.4.0       # Show the entry for 1.4.0
  shipnote changelog 1.4.0        # Same (v prefix optional)
  shipnote changelog --last 10    # Show 10 most recent entries
  shipnote changelog --plain      # Plain output (no colors)`,
	Args: cobra.MaximumNArgs(1),
	RunE: runChangelogView,
}

func init() {
	changelogCmd.GroupID = GroupInspect
	rootCmd.AddCommand(changelogCmd)

	changelogCmd.PersistentFlags().StringVar(&changelogFileFlag, "file", "", "Changelog to read (default: changelog_file from config)")
	changelogCmd.Flags().IntVar(&changelogLastFlag, "last", 5, "Number of entries to show")
	changelogCmd.Flags().BoolVar(&changelogPlainFlag, "plain", false, "Plain text output (no colors)")
}

func runChangelogView(cmd *cobra.Command, args []string) error {
	log, err := loadChangelog(cmd)
	if err != nil {
		return err
	}

	opts := changelog.FormatOptions{
		Plain: changelogPlainFlag,
	}

	if len(args) == 1 {
		entry, err := lookupEntry(cmd, log, args[0])
		if err != nil {
			return err
		}
		return changelog.FormatEntry(entry, cmd.OutOrStdout(), opts)
	}

	return showLastEntries(log, changelogLastFlag, cmd, opts)
}

// loadChangelog reads --file, or the configured changelog resolved against
// the project root.
func loadChangelog(cmd *cobra.Command) (*changelog.Changelog, error) {
	path := changelogFileFlag
	if path == "" {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return nil, err
		}
		path, err = workflow.ResolvePath("", cfg.ChangelogFile)
		if err != nil {
			return nil, err
		}
	}

	log, err := changelog.Load(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, apperrors.MissingChangelog(path)
		}
		return nil, fmt.Errorf("loading changelog: %w", err)
	}
	return log, nil
}

// lookupEntry finds version in log. An unknown version lists the available
// ones on stderr and exits with the invalid-arguments code.
func lookupEntry(cmd *cobra.Command, log *changelog.Changelog, version string) (*changelog.Entry, error) {
	entry, err := log.GetVersion(version)
	if err == nil {
		return entry, nil
	}

	var notFound *changelog.VersionNotFoundError
	if !errors.As(err, &notFound) {
		return nil, fmt.Errorf("getting version: %w", err)
	}

	errOut := cmd.ErrOrStderr()
	fmt.Fprintf(errOut, "Version %q not found.\n\n", version)
	if len(notFound.AvailableVersions) == 0 {
		fmt.Fprintln(errOut, "The changelog has no entries yet.")
	} else {
		fmt.Fprintln(errOut, "Available versions:")
		for _, v := range notFound.AvailableVersions {
			fmt.Fprintf(errOut, "  %s\n", v)
		}
	}
	return nil, NewExitError(ExitInvalidArguments)
}

func showLastEntries(log *changelog.Changelog, n int, cmd *cobra.Command, opts changelog.FormatOptions) error {
	entries := log.GetLastN(n)
	if len(entries) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No changelog entries found.")
		return nil
	}

	if err := changelog.FormatTerminal(entries, cmd.OutOrStdout(), opts); err != nil {
		return fmt.Errorf("formatting entries: %w", err)
	}

	total := log.GetEntryCount()
	if total > len(entries) {
		fmt.Fprintf(cmd.OutOrStdout(), "\n(%d of %d entries shown. Use --last %d to see all)\n",
			len(entries), total, total)
	}

	return nil
}
