package cli

import (
	"fmt"
	"io"

	apperrors "github.com/ariel-frischer/shipnote/internal/errors"
	"github.com/ariel-frischer/shipnote/internal/workflow"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var (
	planFormat string
	planDate   string
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Show the release that would be made",
	Long: `Compute the next release from the release file and current version and
print it. Nothing is written.

Use --format yaml for a machine-readable plan.`,
	Example: `  shipnote plan
  shipnote plan --format yaml
  shipnote plan --date 2024-05-01`,
	Args: cobra.NoArgs,
	RunE: runPlan,
}

func init() {
	planCmd.GroupID = GroupRelease
	rootCmd.AddCommand(planCmd)

	planCmd.Flags().StringVarP(&planFormat, "format", "f", "table", "Output format: table or yaml")
	planCmd.Flags().StringVar(&planDate, "date", "", "Changelog date (default: today, UTC)")
}

func runPlan(cmd *cobra.Command, args []string) error {
	if planFormat != "table" && planFormat != "yaml" {
		return apperrors.InvalidFlagCombination("--format", fmt.Sprintf("unknown format %q (want table or yaml)", planFormat))
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	date, err := parseReleaseDate(planDate)
	if err != nil {
		return err
	}

	plan, err := workflow.Plan(cfg, workflow.Options{Date: date})
	if err != nil {
		return releaseError(cfg, err)
	}

	if planFormat == "yaml" {
		return writePlanYAML(cmd.OutOrStdout(), plan)
	}
	writePlanTable(cmd.OutOrStdout(), plan)
	return nil
}

func writePlanYAML(w io.Writer, plan *workflow.ReleasePlan) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(plan); err != nil {
		return fmt.Errorf("encoding plan: %w", err)
	}
	return enc.Close()
}

func writePlanTable(w io.Writer, plan *workflow.ReleasePlan) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"Field", "Value"})

	t.AppendRow(table.Row{"Project", plan.Project})
	t.AppendRow(table.Row{"Release type", plan.Kind.String()})
	t.AppendRow(table.Row{"Version", plan.PreviousVersion + " -> " + plan.NextVersion})
	t.AppendRow(table.Row{"Changelog header", plan.ChangelogHeader()})
	t.AppendRow(table.Row{"Version file", fmt.Sprintf("%s (%s = %s)", plan.VersionFile, plan.VersionName, plan.NewValue)})
	t.AppendRow(table.Row{"Changelog", plan.ChangelogFile})

	releaseFile := plan.ReleaseFile + " (removed)"
	if plan.KeepReleaseFile {
		releaseFile = plan.ReleaseFile + " (kept)"
	}
	t.AppendRow(table.Row{"Release file", releaseFile})

	tag := "-"
	if plan.Tag != "" {
		tag = plan.Tag
	}
	t.AppendRow(table.Row{"Tag", tag})

	t.SetStyle(table.StyleRounded)
	t.Render()
}
