package release

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	apperrors "github.com/ariel-frischer/shipnote/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseNote(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		contents string
		wantKind Kind
		wantBody string
	}{
		"patch single line": {
			contents: "RELEASE_TYPE: patch\nhi",
			wantKind: Patch,
			wantBody: "hi",
		},
		"leading blank lines stripped": {
			contents: "RELEASE_TYPE: minor\n\n\n\nhi",
			wantKind: Minor,
			wantBody: "hi",
		},
		"whitespace-only line stripped": {
			contents: "RELEASE_TYPE: major\n \n\nhi",
			wantKind: Major,
			wantBody: "hi",
		},
		"trailing whitespace stripped, indentation kept": {
			contents: "RELEASE_TYPE: patch\n\nAdds a feature    \n    indented.\n",
			wantKind: Patch,
			wantBody: "Adds a feature\n    indented.",
		},
		"first line indentation stripped": {
			contents: "RELEASE_TYPE: patch\n    hi\nthere",
			wantKind: Patch,
			wantBody: "hi\nthere",
		},
		"interior blank lines kept": {
			contents: "RELEASE_TYPE: minor\n\nfirst\n\n\nsecond\n\n\n",
			wantKind: Minor,
			wantBody: "first\n\n\nsecond",
		},
		"crlf line endings": {
			contents: "RELEASE_TYPE: patch\r\n\r\nfixed a bug\r\n",
			wantKind: Patch,
			wantBody: "fixed a bug",
		},
		"marker only": {
			contents: "RELEASE_TYPE: patch",
			wantKind: Patch,
			wantBody: "",
		},
		"extra spaces after colon": {
			contents: "RELEASE_TYPE:   minor  \nbody",
			wantKind: Minor,
			wantBody: "body",
		},
	}

	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			note, err := ParseNote(tt.contents, "<string>")
			require.NoError(t, err)
			assert.Equal(t, tt.wantKind, note.Kind)
			assert.Equal(t, tt.wantBody, note.Body)
			assert.Equal(t, "<string>", note.Source)
		})
	}
}

func TestParseNote_Invalid(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		contents    string
		errContains string
	}{
		"empty": {
			contents:    "",
			errContains: "release file is empty",
		},
		"unknown kind": {
			contents:    "RELEASE_TYPE: wrong\nstuff",
			errContains: `unrecognised release type "wrong"`,
		},
		"missing marker": {
			contents:    "Fixes a bug\n",
			errContains: "does not start by specifying release type",
		},
		"marker not on first line": {
			contents:    "\nRELEASE_TYPE: patch\nhi",
			errContains: "does not start by specifying release type",
		},
		"no space after colon": {
			contents:    "RELEASE_TYPE:patch\nhi",
			errContains: "does not start by specifying release type",
		},
		"lowercase marker": {
			contents:    "release_type: patch\nhi",
			errContains: "does not start by specifying release type",
		},
		"trailing text after kind": {
			contents:    "RELEASE_TYPE: patch please\nhi",
			errContains: "does not start by specifying release type",
		},
	}

	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			_, err := ParseNote(tt.contents, "RELEASE.md")
			require.Error(t, err)
			assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
			assert.Contains(t, err.Error(), tt.errContains)
			assert.True(t, strings.HasPrefix(err.Error(), "RELEASE.md: "))
		})
	}
}

func TestLoadNote(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "RELEASE.md")
	require.NoError(t, os.WriteFile(path, []byte("RELEASE_TYPE: minor\n\nNew thing.\n"), 0o644))

	assert.True(t, HasNote(path))
	note, err := LoadNote(path)
	require.NoError(t, err)
	assert.Equal(t, Minor, note.Kind)
	assert.Equal(t, "New thing.", note.Body)
	assert.Equal(t, path, note.Source)
}

func TestLoadNote_Missing(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "RELEASE.md")

	assert.False(t, HasNote(path))
	assert.False(t, HasNote(dir), "directories are not notes")

	_, err := LoadNote(path)
	require.Error(t, err)
	assert.ErrorIs(t, err, fs.ErrNotExist)
	assert.False(t, apperrors.IsInvalidInput(err))
}
