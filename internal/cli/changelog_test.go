package cli

import (
	"path/filepath"
	"testing"

	"github.com/ariel-frischer/shipnote/internal/cli/shared"
	apperrors "github.com/ariel-frischer/shipnote/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChangelogCmdFlags(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		flagName string
		defValue string
		wantType string
	}{
		"last flag": {
			flagName: "last",
			defValue: "5",
			wantType: "int",
		},
		"plain flag": {
			flagName: "plain",
			defValue: "false",
			wantType: "bool",
		},
		"file flag": {
			flagName: "file",
			defValue: "",
			wantType: "string",
		},
	}

	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			f := changelogCmd.Flags().Lookup(tt.flagName)
			require.NotNil(t, f, "flag %s should exist", tt.flagName)
			assert.Equal(t, tt.defValue, f.DefValue)
			assert.Equal(t, tt.wantType, f.Value.Type())
		})
	}
}

func TestRunChangelogView(t *testing.T) {
	tests := map[string]struct {
		args     []string
		last     int
		want     []string
		dontWant []string
	}{
		"default shows all entries": {
			want: []string{"## demo v1.4.2 (2024-03-01)", "  Fixes a crash on empty input.", "## demo v1.4.1 (2024-02-01)"},
		},
		"last limits entries": {
			last:     1,
			want:     []string{"## demo v1.4.2", "(1 of 2 entries shown. Use --last 2 to see all)"},
			dontWant: []string{"v1.4.1"},
		},
		"specific version with v prefix": {
			args:     []string{"v1.4.1"},
			want:     []string{"## demo v1.4.1 (2024-02-01)", "  First patch."},
			dontWant: []string{"v1.4.2"},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			setupProject(t, "")
			changelogPlainFlag = true
			if tt.last > 0 {
				changelogLastFlag = tt.last
			}

			cmd, stdout, _ := newTestCmd()
			require.NoError(t, runChangelogView(cmd, tt.args))

			for _, want := range tt.want {
				assert.Contains(t, stdout.String(), want)
			}
			for _, dont := range tt.dontWant {
				assert.NotContains(t, stdout.String(), dont)
			}
		})
	}
}

func TestRunChangelogView_UnknownVersion(t *testing.T) {
	setupProject(t, "")

	cmd, _, stderr := newTestCmd()
	err := runChangelogView(cmd, []string{"9.9.9"})

	var exitErr *shared.ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, ExitInvalidArguments, exitErr.Code)
	assert.Contains(t, stderr.String(), `Version "9.9.9" not found.`)
	assert.Contains(t, stderr.String(), "  1.4.2\n  1.4.1\n")
}

func TestRunChangelogView_FileFlag(t *testing.T) {
	dir := setupProject(t, "")
	other := filepath.Join(dir, "docs", "HISTORY.md")
	writeTestFile(t, other, "# tool 0.2.0 (2023-01-01)\n\nOld.\n")
	changelogFileFlag = other
	changelogPlainFlag = true

	cmd, stdout, _ := newTestCmd()
	require.NoError(t, runChangelogView(cmd, nil))
	assert.Contains(t, stdout.String(), "## tool v0.2.0 (2023-01-01)")
	assert.NotContains(t, stdout.String(), "demo")
}

func TestRunChangelogView_Empty(t *testing.T) {
	dir := setupProject(t, "")
	writeTestFile(t, filepath.Join(dir, "CHANGELOG.md"), "")

	cmd, stdout, _ := newTestCmd()
	require.NoError(t, runChangelogView(cmd, nil))
	assert.Equal(t, "No changelog entries found.\n", stdout.String())
}

func TestRunChangelogView_MissingChangelog(t *testing.T) {
	setupProject(t, "")
	changelogFileFlag = "does-not-exist.md"

	cmd, _, _ := newTestCmd()
	err := runChangelogView(cmd, nil)
	require.Error(t, err)
	cliErr := apperrors.AsCLIError(err)
	require.NotNil(t, cliErr)
	assert.Equal(t, apperrors.Prerequisite, cliErr.Category)
}

func TestRunChangelogExtract(t *testing.T) {
	tests := map[string]struct {
		args []string
		want string
	}{
		"newest entry by default": {
			want: "Fixes a crash on empty input.\n",
		},
		"named version": {
			args: []string{"1.4.1"},
			want: "First patch.\n",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			setupProject(t, "")

			cmd, stdout, _ := newTestCmd()
			require.NoError(t, runChangelogExtract(cmd, tt.args))
			assert.Equal(t, tt.want, stdout.String())
		})
	}
}

func TestRunChangelogExtract_NoEntries(t *testing.T) {
	dir := setupProject(t, "")
	writeTestFile(t, filepath.Join(dir, "CHANGELOG.md"), "Intro only.\n")

	cmd, stdout, stderr := newTestCmd()
	err := runChangelogExtract(cmd, nil)

	var exitErr *shared.ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, ExitValidationFailed, exitErr.Code)
	assert.Empty(t, stdout.String())
	assert.Contains(t, stderr.String(), "no entries")
}
