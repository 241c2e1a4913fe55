package errors

import (
	"bytes"
	stderrors "errors"
	"fmt"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInvalidInputError_MatchesSentinel(t *testing.T) {
	t.Parallel()

	err := Invalid("RELEASE.md", "unrecognised release type %q", "wrong")

	assert.True(t, stderrors.Is(err, ErrInvalidInput))
	assert.True(t, IsInvalidInput(fmt.Errorf("loading: %w", err)))
	assert.Equal(t, `RELEASE.md: unrecognised release type "wrong"`, err.Error())
}

func TestInvalidInputError_NoSource(t *testing.T) {
	t.Parallel()

	err := Invalid("", "empty name")
	assert.Equal(t, "empty name", err.Error())
}

func TestIsInvalidInput_FilesystemErrors(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("reading changelog: %w", fs.ErrNotExist)
	assert.False(t, IsInvalidInput(err))
	assert.False(t, IsInvalidInput(nil))
}

func TestClassify(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		err          error
		wantNil      bool
		wantCategory ErrorCategory
	}{
		"nil": {
			err:     nil,
			wantNil: true,
		},
		"invalid input": {
			err:          fmt.Errorf("parse: %w", Invalid("x", "bad")),
			wantCategory: Input,
		},
		"filesystem": {
			err:          fmt.Errorf("open: %w", fs.ErrPermission),
			wantCategory: Runtime,
		},
		"cli error passes through": {
			err:          MissingReleaseFile("RELEASE.md"),
			wantCategory: Prerequisite,
		},
	}

	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got := Classify(tt.err)
			if tt.wantNil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, tt.wantCategory, got.Category)
		})
	}
}

func TestWrap_PreservesCause(t *testing.T) {
	t.Parallel()

	cause := Invalid("RELEASE.md", "missing marker")
	wrapped := InvalidReleaseFile(cause)

	assert.True(t, IsInvalidInput(wrapped))
	assert.Equal(t, Input, wrapped.Category)
	assert.Contains(t, wrapped.Message, "missing marker")
	assert.Nil(t, Wrap(nil, Runtime))
}

func TestErrorCategory_String(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		category ErrorCategory
		want     string
	}{
		"argument":      {category: Argument, want: "Argument Error"},
		"configuration": {category: Configuration, want: "Configuration Error"},
		"prerequisite":  {category: Prerequisite, want: "Prerequisite Error"},
		"runtime":       {category: Runtime, want: "Runtime Error"},
		"input":         {category: Input, want: "Invalid Input"},
		"unknown":       {category: ErrorCategory(99), want: "Error"},
	}

	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.category.String())
		})
	}
}

func TestFormatErrorPlain(t *testing.T) {
	t.Parallel()

	out := FormatErrorPlain(InvalidBumpKind("huge"))

	assert.Contains(t, out, "Error [Argument Error]: invalid bump kind: huge")
	assert.Contains(t, out, "Usage: shipnote bump <patch|minor|major> <version>")
	assert.Contains(t, out, "To fix this:")
	assert.Contains(t, out, "  • Valid kinds: patch, minor, major")
	assert.Empty(t, FormatErrorPlain(nil))
}

func TestFprintError_Nil(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	FprintError(&buf, nil)
	assert.Empty(t, buf.String())
}
