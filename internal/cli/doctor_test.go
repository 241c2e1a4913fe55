package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ariel-frischer/shipnote/internal/cli/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunDoctor(t *testing.T) {
	setupProject(t, minorRelease)

	cmd, stdout, _ := newTestCmd()
	require.NoError(t, runDoctor(cmd, nil))

	out := stdout.String()
	assert.Contains(t, out, "✓ Version file: Version = 1.4.2")
	assert.Contains(t, out, "✓ Release file: minor release pending")
}

func TestRunDoctor_Fails(t *testing.T) {
	dir := setupProject(t, "")
	require.NoError(t, os.Remove(filepath.Join(dir, "CHANGELOG.md")))

	cmd, stdout, _ := newTestCmd()
	err := runDoctor(cmd, nil)

	var exitErr *shared.ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, ExitValidationFailed, exitErr.Code)
	assert.Contains(t, stdout.String(), "✗ Changelog:")
}
