package cli

import (
	"fmt"
	"io"

	"github.com/ariel-frischer/shipnote/internal/build"
	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

// SourceURL is the project source URL.
const SourceURL = "https://github.com/ariel-frischer/shipnote"

var versionPlain bool

var versionCmd = &cobra.Command{
	Use:     "version",
	Aliases: []string{"v"},
	Short:   "Display version information (v)",
	Long:    "Display version, commit, build date, and Go version information for shipnote",
	Example: `  # Show version info
  shipnote version

  # Plain output (for scripts)
  shipnote version --plain`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		info := build.GetInfo()
		if versionPlain {
			printPlainVersion(cmd.OutOrStdout(), info)
			return
		}
		printPrettyVersion(cmd.OutOrStdout(), info)
	},
}

func init() {
	versionCmd.GroupID = GroupGettingStarted
	rootCmd.AddCommand(versionCmd)
	versionCmd.Flags().BoolVar(&versionPlain, "plain", false, "Plain output without formatting")
}

// printPlainVersion prints a simple version output for scripting
func printPlainVersion(w io.Writer, info build.Info) {
	fmt.Fprintf(w, "shipnote %s\n", info.Version)
	fmt.Fprintf(w, "commit: %s\n", info.Commit)
	fmt.Fprintf(w, "built: %s\n", info.BuildDate)
	fmt.Fprintf(w, "go: %s\n", info.GoVersion)
	fmt.Fprintf(w, "platform: %s\n", info.Platform)
}

func printPrettyVersion(w io.Writer, info build.Info) {
	cyan := color.New(color.FgCyan, color.Bold).SprintFunc()
	yellow := color.New(color.FgYellow).SprintFunc()

	fmt.Fprintln(w, cyan("shipnote")+" "+info.Version)

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendRow(table.Row{yellow("Version"), info.Version})
	t.AppendRow(table.Row{yellow("Commit"), truncateCommit(info.Commit)})
	t.AppendRow(table.Row{yellow("Built"), info.BuildDate})
	t.AppendRow(table.Row{yellow("Go"), info.GoVersion})
	t.AppendRow(table.Row{yellow("Platform"), info.Platform})
	t.SetStyle(table.StyleRounded)
	t.Render()

	if build.IsDevBuild() {
		fmt.Fprintln(w, color.New(color.Faint).Sprint(SourceURL))
	}
}

// truncateCommit shortens commit hash if it's too long
func truncateCommit(commit string) string {
	if len(commit) > 8 {
		return commit[:8]
	}
	return commit
}
