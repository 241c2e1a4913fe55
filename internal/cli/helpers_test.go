package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	color.NoColor = true
	os.Exit(m.Run())
}

const testChangelog = `# demo 1.4.2 (2024-03-01)

Fixes a crash on empty input.

# demo 1.4.1 (2024-02-01)

First patch.
`

// newTestCmd returns a bare command with captured stdout and stderr.
func newTestCmd() (*cobra.Command, *bytes.Buffer, *bytes.Buffer) {
	cmd := &cobra.Command{}
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	return cmd, &stdout, &stderr
}

// setupProject creates a project in a temp dir, changes into it and isolates
// the user config. The release file holds releaseFile unless it is empty.
func setupProject(t *testing.T, releaseFile string) string {
	t.Helper()

	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, ".xdg"))
	t.Setenv("HOME", dir)
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	resetCLIFlags(t)

	writeTestFile(t, filepath.Join(dir, ".shipnote", "config.yml"), `project_name: demo
version_file: version.go
history_file: history.yml
`)
	writeTestFile(t, filepath.Join(dir, "version.go"), "package demo\n\nconst (\n\tVersion = \"1.4.2\"\n)\n")
	writeTestFile(t, filepath.Join(dir, "CHANGELOG.md"), testChangelog)
	if releaseFile != "" {
		writeTestFile(t, filepath.Join(dir, "RELEASE.md"), releaseFile)
	}
	return dir
}

func writeTestFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func readTestFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

// resetCLIFlags restores every package-level flag variable to its default
// and again when the test ends.
func resetCLIFlags(t *testing.T) {
	t.Helper()
	reset := func() {
		cfgFile, debugFlag, verboseFlag = "", false, false
		releaseDryRun, releaseDate, releaseTag, releaseKeepReleaseFile = false, "", false, false
		planFormat, planDate = "table", ""
		changelogLastFlag, changelogPlainFlag, changelogFileFlag = 5, false, ""
		versionPlain = false
		configShowJSON, configSetUser, configInitUser, configForce = false, false, false, false
	}
	reset()
	t.Cleanup(reset)
}
