// Package cli implements the shipnote command line: cobra commands for
// releasing, inspecting the changelog and managing configuration.
package cli

import (
	"errors"
	"io"
	"log"
	"os"

	"github.com/ariel-frischer/shipnote/internal/cli/shared"
	"github.com/ariel-frischer/shipnote/internal/config"
	apperrors "github.com/ariel-frischer/shipnote/internal/errors"
	"github.com/ariel-frischer/shipnote/internal/git"
	"github.com/ariel-frischer/shipnote/internal/workflow"
	"github.com/spf13/cobra"
)

// Group IDs re-exported for the commands in this package.
const (
	GroupGettingStarted = shared.GroupGettingStarted
	GroupRelease        = shared.GroupRelease
	GroupInspect        = shared.GroupInspect
	GroupConfiguration  = shared.GroupConfiguration
)

var (
	cfgFile     string
	debugFlag   bool
	verboseFlag bool
)

var rootCmd = &cobra.Command{
	Use:   "shipnote",
	Short: "Release helper: bump the version, prepend the changelog, tag",
	Long: `shipnote turns a release file into a release.

Write RELEASE.md with the release type on its first line and the notes below:

  RELEASE_TYPE: minor

  Adds support for custom key bindings.

Then run 'shipnote release'. It bumps the single Version = "X.Y.Z" assignment
in your version file, prepends a dated entry to CHANGELOG.md, removes
RELEASE.md and, when configured, creates an annotated git tag.

Source: https://github.com/ariel-frischer/shipnote`,
	Example: `  # Validate the release file
  shipnote check

  # Preview the release without writing anything
  shipnote plan
  shipnote release --dry-run

  # Cut the release and tag it
  shipnote release --tag

  # Compute a version by hand
  shipnote bump minor 1.4.2`,
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		configureDebugLogging(cmd.ErrOrStderr(), debugFlag)
	},
}

func init() {
	rootCmd.AddGroup(
		&cobra.Group{ID: GroupGettingStarted, Title: "Getting Started:"},
		&cobra.Group{ID: GroupRelease, Title: "Release:"},
		&cobra.Group{ID: GroupInspect, Title: "Inspect:"},
		&cobra.Group{ID: GroupConfiguration, Title: "Configuration:"},
	)
	rootCmd.SetHelpCommandGroupID(GroupGettingStarted)
	rootCmd.SetCompletionCommandGroupID(GroupConfiguration)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "Project config file (default: .shipnote/config.yml)")
	rootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false, "Log every file and git operation to stderr")
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "Show release notes and resolved paths")
}

// Execute runs the root command. Errors are printed here and come back as
// an *shared.ExitError carrying the process exit code.
func Execute() error {
	err := rootCmd.Execute()
	if err == nil {
		return nil
	}
	var exitErr *shared.ExitError
	if errors.As(err, &exitErr) {
		return exitErr
	}

	apperrors.FprintError(rootCmd.ErrOrStderr(), err)
	return shared.NewExitError(exitCodeFor(apperrors.Classify(err)))
}

// exitCodeFor maps an error category to the process exit code.
func exitCodeFor(err *apperrors.CLIError) int {
	if err == nil {
		return ExitSuccess
	}
	switch err.Category {
	case apperrors.Argument:
		return ExitInvalidArguments
	case apperrors.Prerequisite:
		return ExitMissingDependencies
	default:
		return ExitValidationFailed
	}
}

// configureDebugLogging points the package debug hooks at a stdlib logger
// on w, or disables them.
func configureDebugLogging(w io.Writer, enabled bool) {
	if !enabled {
		git.SetDebugLogger(nil)
		workflow.SetDebugLogger(nil)
		return
	}
	logger := log.New(w, "[debug] ", log.Ltime|log.Lmicroseconds)
	git.SetDebugLogger(logger.Printf)
	workflow.SetDebugLogger(logger.Printf)
}

// loadConfig loads the layered configuration, honoring --config.
func loadConfig(cmd *cobra.Command) (*config.Configuration, error) {
	cfg, err := config.LoadWithOptions(config.LoadOptions{
		ProjectConfigPath: cfgFile,
		WarningWriter:     cmd.ErrOrStderr(),
	})
	if err == nil {
		return cfg, nil
	}
	if cfgFile != "" && errors.Is(err, os.ErrNotExist) {
		return nil, apperrors.ConfigFileNotFound(cfgFile)
	}
	path := cfgFile
	if path == "" {
		path = config.ProjectConfigPath()
	}
	return nil, apperrors.ConfigParseError(path, err)
}
