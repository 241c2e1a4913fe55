package cli

import (
	"fmt"

	"github.com/ariel-frischer/shipnote/internal/history"
	"github.com/ariel-frischer/shipnote/internal/workflow"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List past releases",
	Long: `List the releases recorded in history_file: timestamp, project, version
change, release type and tag.`,
	Example: `  shipnote history
  shipnote history --limit 5
  shipnote history --project api
  shipnote history --clear`,
	Args: cobra.NoArgs,
	RunE: runHistory,
}

func init() {
	historyCmd.GroupID = GroupInspect
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().StringP("project", "p", "", "Filter by project name")
	historyCmd.Flags().IntP("limit", "n", 0, "Limit to last N entries (most recent)")
	historyCmd.Flags().Bool("clear", false, "Clear all history")
}

func runHistory(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if cfg.HistoryFile == "" {
		fmt.Fprintln(cmd.OutOrStdout(), "History is disabled (history_file is empty).")
		return nil
	}
	path, err := workflow.ResolvePath("", cfg.HistoryFile)
	if err != nil {
		return err
	}
	return runHistoryWithPath(cmd, path)
}

// runHistoryWithPath runs the history command against a specific file.
func runHistoryWithPath(cmd *cobra.Command, path string) error {
	clearFlag, _ := cmd.Flags().GetBool("clear")
	projectFilter, _ := cmd.Flags().GetString("project")
	limit, _ := cmd.Flags().GetInt("limit")

	if limit < 0 {
		return fmt.Errorf("limit must be positive, got %d", limit)
	}

	if clearFlag {
		if err := history.SaveHistory(path, &history.HistoryFile{}); err != nil {
			return fmt.Errorf("clearing history: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "History cleared.")
		return nil
	}

	histFile, err := history.LoadHistory(path)
	if err != nil {
		return fmt.Errorf("loading history: %w", err)
	}

	entries := filterEntries(histFile.Entries, projectFilter, limit)
	if len(entries) == 0 {
		if projectFilter != "" {
			fmt.Fprintf(cmd.OutOrStdout(), "No releases recorded for project '%s'.\n", projectFilter)
		} else {
			fmt.Fprintln(cmd.OutOrStdout(), "No releases recorded.")
		}
		return nil
	}

	displayEntries(cmd, entries)
	return nil
}

// filterEntries filters and limits history entries.
func filterEntries(entries []history.HistoryEntry, projectFilter string, limit int) []history.HistoryEntry {
	var result []history.HistoryEntry

	for _, entry := range entries {
		if projectFilter == "" || entry.Project == projectFilter {
			result = append(result, entry)
		}
	}

	if limit > 0 && len(result) > limit {
		result = result[len(result)-limit:]
	}

	return result
}

func displayEntries(cmd *cobra.Command, entries []history.HistoryEntry) {
	out := cmd.OutOrStdout()

	green := color.New(color.FgGreen).SprintFunc()
	cyan := color.New(color.FgCyan).SprintFunc()
	dim := color.New(color.Faint).SprintFunc()

	for _, entry := range entries {
		timestamp := entry.Timestamp.Format("2006-01-02 15:04:05")

		tag := entry.Tag
		if tag == "" {
			tag = "-"
		}

		fmt.Fprintf(out, "%s  %-15s  %s -> %s  %-5s  %s\n",
			cyan(timestamp),
			entry.Project,
			entry.Previous,
			green(entry.Version),
			entry.Kind,
			dim(tag),
		)
	}
}
