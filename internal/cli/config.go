package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/ariel-frischer/shipnote/internal/config"
	apperrors "github.com/ariel-frischer/shipnote/internal/errors"
	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var (
	configShowJSON bool
	configSetUser  bool
	configInitUser bool
	configForce    bool
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage shipnote configuration",
	Long: `Manage shipnote configuration settings.

Configuration is loaded with the following priority (highest to lowest):
  1. Environment variables (SHIPNOTE_*)
  2. Project config (.shipnote/config.yml or .shipnote/config.json)
  3. User config (~/.config/shipnote/config.yml)
  4. Built-in defaults`,
	Example: `  # Show the effective configuration
  shipnote config show

  # List every key
  shipnote config keys

  # Set a value in the project config
  shipnote config set tag_prefix release-

  # Write a commented config file
  shipnote config init`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration and where it came from",
	Args:  cobra.NoArgs,
	RunE:  runConfigShow,
}

var configKeysCmd = &cobra.Command{
	Use:   "keys",
	Short: "List configuration keys with types and defaults",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		printConfigKeys(cmd.OutOrStdout())
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Long: `Set a configuration value in the project config, or the user config with
--user. The value is checked against the key's type and comments in the file
are kept.`,
	Example: `  shipnote config set create_tag true
  shipnote config set max_history_entries 20 --user`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a commented default config file",
	Args:  cobra.NoArgs,
	RunE:  runConfigInit,
}

func init() {
	configCmd.GroupID = GroupConfiguration
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd, configKeysCmd, configSetCmd, configInitCmd)

	configShowCmd.Flags().BoolVar(&configShowJSON, "json", false, "Print the configuration as JSON")
	configSetCmd.Flags().BoolVar(&configSetUser, "user", false, "Write to the user config instead of the project config")
	configInitCmd.Flags().BoolVar(&configInitUser, "user", false, "Create the user config instead of the project config")
	configInitCmd.Flags().BoolVarP(&configForce, "force", "f", false, "Overwrite an existing config file")
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if configShowJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(cfg)
	}

	green := color.New(color.FgGreen).SprintFunc()
	dim := color.New(color.Faint).SprintFunc()
	fmt.Fprintln(out, "Sources (lowest to highest priority):")
	for _, src := range config.Sources(config.LoadOptions{ProjectConfigPath: cfgFile}) {
		mark := dim("-")
		if src.Active {
			mark = green("✓")
		}
		fmt.Fprintf(out, "  %s %-8s %s\n", mark, src.Source, dim(src.Path))
	}
	fmt.Fprintln(out)

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	_, err = out.Write(data)
	return err
}

func printConfigKeys(w io.Writer) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"Key", "Type", "Default", "Description"})
	for _, key := range config.SortedKeys() {
		t.AppendRow(table.Row{key.Path, key.Type.String(), fmt.Sprintf("%v", key.Default), key.Description})
	}
	t.SetStyle(table.StyleRounded)
	t.Render()
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	path, err := configTargetPath(configSetUser)
	if err != nil {
		return err
	}
	if err := config.SetConfigValue(path, args[0], args[1]); err != nil {
		var unknown config.ErrUnknownKey
		if errors.As(err, &unknown) {
			return apperrors.NewArgumentError(err.Error(), "List valid keys with: shipnote config keys")
		}
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s %s = %s in %s\n",
		color.New(color.FgGreen).Sprint("✓"), args[0], args[1], path)
	return nil
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	path, err := configTargetPath(configInitUser)
	if err != nil {
		return err
	}
	_, err = initializeConfig(cmd.OutOrStdout(), path, configForce)
	return err
}

// configTargetPath returns the file config set and init write to.
func configTargetPath(user bool) (string, error) {
	if !user {
		if cfgFile != "" {
			return cfgFile, nil
		}
		return config.ProjectConfigPath(), nil
	}
	path, err := config.UserConfigPath()
	if err != nil {
		return "", fmt.Errorf("failed to get user config path: %w", err)
	}
	return path, nil
}

// initializeConfig writes the default template to path unless it exists and
// force is false. It reports whether a new file was created.
func initializeConfig(out io.Writer, path string, force bool) (bool, error) {
	green := color.New(color.FgGreen).SprintFunc()
	dim := color.New(color.Faint).SprintFunc()

	_, statErr := os.Stat(path)
	exists := statErr == nil

	if exists && !force {
		fmt.Fprintf(out, "%s Config exists at %s (use --force to overwrite)\n", green("✓"), dim(path))
		return false, nil
	}

	if err := writeDefaultConfig(path); err != nil {
		return false, fmt.Errorf("writing default config: %w", err)
	}

	if exists {
		fmt.Fprintf(out, "%s Config overwritten at %s\n", green("✓"), dim(path))
	} else {
		fmt.Fprintf(out, "%s Config created at %s\n", green("✓"), dim(path))
	}
	return !exists, nil
}

func writeDefaultConfig(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(config.GetDefaultConfigTemplate()), 0o644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}
