//go:build e2e

package main

import (
	"strings"
	"testing"

	"github.com/ariel-frischer/shipnote/internal/cli/shared"
	"github.com/ariel-frischer/shipnote/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestE2E_Release(t *testing.T) {
	env := testutil.NewE2EEnv(t)
	env.SetupProject("1.4.2")
	env.SetupRelease("minor", "Adds custom key bindings.")

	result := env.Run("release", "--date", "2024-05-01")
	require.Equal(t, shared.ExitSuccess, result.ExitCode, result.Stderr)

	assert.Contains(t, env.ReadFile("internal/build/version.go"), `Version = "1.5.0"`)
	assert.Equal(t, "# project 1.5.0 (2024-05-01)\n\nAdds custom key bindings.\n\n", env.ReadFile("CHANGELOG.md"))
	assert.False(t, env.FileExists("RELEASE.md"))
	assert.True(t, env.FileExists(".shipnote/history.yml"))

	view := env.Run("changelog", "extract")
	require.Equal(t, shared.ExitSuccess, view.ExitCode, view.Stderr)
	assert.Equal(t, "Adds custom key bindings.\n", view.Stdout)
}

func TestE2E_ExitCodes(t *testing.T) {
	tests := map[string]struct {
		setup        func(env *testutil.E2EEnv)
		command      []string
		wantExitCode int
		wantStderr   string
	}{
		"success": {
			command:      []string{"bump", "patch", "1.0.0"},
			wantExitCode: shared.ExitSuccess,
		},
		"invalid input": {
			command:      []string{"bump", "patch", "not-a-version"},
			wantExitCode: shared.ExitValidationFailed,
			wantStderr:   "invalid version",
		},
		"invalid arguments": {
			command:      []string{"bump", "huge", "1.0.0"},
			wantExitCode: shared.ExitInvalidArguments,
			wantStderr:   "invalid bump kind",
		},
		"missing release file": {
			setup:        func(env *testutil.E2EEnv) { env.SetupProject("1.0.0") },
			command:      []string{"release"},
			wantExitCode: shared.ExitMissingDependency,
			wantStderr:   "release file not found",
		},
		"check without release file": {
			setup:        func(env *testutil.E2EEnv) { env.SetupProject("1.0.0") },
			command:      []string{"check"},
			wantExitCode: shared.ExitValidationFailed,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			env := testutil.NewE2EEnv(t)
			if tt.setup != nil {
				tt.setup(env)
			}

			result := env.Run(tt.command...)
			assert.Equal(t, tt.wantExitCode, result.ExitCode, "stdout: %s\nstderr: %s", result.Stdout, result.Stderr)
			if tt.wantStderr != "" {
				assert.Contains(t, result.Stderr, tt.wantStderr)
			}
		})
	}
}

func TestE2E_EnvOverride(t *testing.T) {
	env := testutil.NewE2EEnv(t)
	env.SetupProject("0.9.0")
	env.SetupRelease("patch", "Fix.")
	env.SetEnv("SHIPNOTE_PROJECT_NAME", "demo")
	env.SetEnv("SHIPNOTE_KEEP_RELEASE_FILE", "true")

	result := env.Run("release")
	require.Equal(t, shared.ExitSuccess, result.ExitCode, result.Stderr)

	assert.True(t, strings.HasPrefix(env.ReadFile("CHANGELOG.md"), "# demo 0.9.1 ("))
	assert.True(t, env.FileExists("RELEASE.md"))
}
