package cli

import (
	"bytes"
	"errors"
	"testing"

	"github.com/ariel-frischer/shipnote/internal/cli/shared"
	apperrors "github.com/ariel-frischer/shipnote/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCmd_Structure(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "shipnote", rootCmd.Use)
	assert.NotEmpty(t, rootCmd.Short)
	assert.Contains(t, rootCmd.Long, "RELEASE_TYPE: minor")
	assert.Contains(t, rootCmd.Long, "github.com")
	assert.Contains(t, rootCmd.Example, "shipnote release")
	assert.True(t, rootCmd.SilenceErrors)
	assert.True(t, rootCmd.SilenceUsage)
}

func TestRootCmd_PersistentFlags(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		flagName     string
		wantShortcut string
	}{
		"config has shortcut c":  {flagName: "config", wantShortcut: "c"},
		"debug has no shortcut":  {flagName: "debug", wantShortcut: ""},
		"verbose has shortcut v": {flagName: "verbose", wantShortcut: "v"},
	}

	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			flag := rootCmd.PersistentFlags().Lookup(tt.flagName)
			require.NotNil(t, flag, "Flag %s should exist", tt.flagName)
			assert.Equal(t, tt.wantShortcut, flag.Shorthand)
		})
	}
}

func TestRootCmd_SubcommandGroups(t *testing.T) {
	t.Parallel()

	groupIDs := make(map[string]bool)
	for _, g := range rootCmd.Groups() {
		groupIDs[g.ID] = true
	}

	for _, id := range []string{GroupGettingStarted, GroupRelease, GroupInspect, GroupConfiguration} {
		assert.True(t, groupIDs[id], "Should have %s group", id)
	}
}

func TestRootCmd_Subcommands(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		wantGroup string
	}{
		"release":   {wantGroup: GroupRelease},
		"check":     {wantGroup: GroupRelease},
		"plan":      {wantGroup: GroupRelease},
		"bump":      {wantGroup: GroupInspect},
		"assign":    {wantGroup: GroupInspect},
		"changelog": {wantGroup: GroupInspect},
		"history":   {wantGroup: GroupInspect},
		"version":   {wantGroup: GroupGettingStarted},
		"doctor":    {wantGroup: GroupGettingStarted},
		"config":    {wantGroup: GroupConfiguration},
	}

	commands := make(map[string]string)
	for _, cmd := range rootCmd.Commands() {
		commands[cmd.Name()] = cmd.GroupID
	}

	for name, tt := range tests {
		name := name
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			group, ok := commands[name]
			require.True(t, ok, "Should have %s command", name)
			assert.Equal(t, tt.wantGroup, group)
		})
	}
}

func TestExitCodeFor(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		err  *apperrors.CLIError
		want int
	}{
		"nil":          {err: nil, want: ExitSuccess},
		"argument":     {err: apperrors.NewArgumentError("bad"), want: ExitInvalidArguments},
		"prerequisite": {err: apperrors.MissingReleaseFile("RELEASE.md"), want: ExitMissingDependencies},
		"config":       {err: apperrors.NewConfigError("bad"), want: ExitValidationFailed},
		"input": {
			err:  apperrors.InvalidReleaseFile(apperrors.Invalid("RELEASE.md", "bad")),
			want: ExitValidationFailed,
		},
		"runtime": {err: apperrors.NewRuntimeError("boom"), want: ExitValidationFailed},
	}

	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, exitCodeFor(tt.err))
		})
	}
}

func TestExecute(t *testing.T) {
	// Cannot run in parallel due to global rootCmd state
	tests := map[string]struct {
		args       []string
		wantCode   int
		wantStderr string
		wantStdout string
	}{
		"help": {
			args:       []string{"--help"},
			wantCode:   ExitSuccess,
			wantStdout: "Release:",
		},
		"bump": {
			args:       []string{"bump", "minor", "1.4.2"},
			wantCode:   ExitSuccess,
			wantStdout: "1.5.0\n",
		},
		"bad bump kind": {
			args:       []string{"bump", "huge", "1.4.2"},
			wantCode:   ExitInvalidArguments,
			wantStderr: "invalid bump kind: huge",
		},
		"invalid version": {
			args:       []string{"bump", "patch", "1.x"},
			wantCode:   ExitValidationFailed,
			wantStderr: "invalid version",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			resetCLIFlags(t)

			var stdout, stderr bytes.Buffer
			rootCmd.SetOut(&stdout)
			rootCmd.SetErr(&stderr)
			rootCmd.SetArgs(tt.args)
			t.Cleanup(func() {
				rootCmd.SetOut(nil)
				rootCmd.SetErr(nil)
				rootCmd.SetArgs(nil)
				_ = rootCmd.Flags().Set("help", "false")
			})

			err := Execute()
			assert.Equal(t, tt.wantCode, shared.ExitCode(err))
			if tt.wantCode != ExitSuccess {
				var exitErr *shared.ExitError
				assert.True(t, errors.As(err, &exitErr))
			}
			assert.Contains(t, stdout.String(), tt.wantStdout)
			assert.Contains(t, stderr.String(), tt.wantStderr)
		})
	}
}

func TestExecute_MissingReleaseFile(t *testing.T) {
	setupProject(t, "")

	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs([]string{"release"})
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	err := Execute()
	assert.Equal(t, ExitMissingDependencies, shared.ExitCode(err))
	assert.Contains(t, stderr.String(), "release file not found")
	assert.Contains(t, stderr.String(), "RELEASE_TYPE: patch|minor|major")
}

func TestConfigureDebugLogging(t *testing.T) {
	var buf bytes.Buffer
	configureDebugLogging(&buf, true)
	t.Cleanup(func() { configureDebugLogging(nil, false) })

	setupProject(t, minorRelease)
	cmd, _, _ := newTestCmd()
	require.NoError(t, runPlan(cmd, nil))

	assert.Contains(t, buf.String(), "[debug] ")
	assert.Contains(t, buf.String(), "requests a minor release")
}
