package output

import (
	"bytes"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
)

func TestPrintHelpers(t *testing.T) {
	color.NoColor = true

	tests := map[string]struct {
		print func(*bytes.Buffer)
		want  string
	}{
		"step header": {
			print: func(b *bytes.Buffer) { PrintStepHeader(b, 2, 5, "Updating changelog") },
			want:  "[Step 2/5] Updating changelog...\n",
		},
		"step success": {
			print: func(b *bytes.Buffer) { PrintStepSuccess(b, "Version = \"1.2.0\"") },
			want:  "✓ Version = \"1.2.0\"\n",
		},
		"dry run": {
			print: func(b *bytes.Buffer) { PrintDryRun(b, "no files were changed") },
			want:  "[dry run] no files were changed\n",
		},
		"key value": {
			print: func(b *bytes.Buffer) { PrintKeyValue(b, "kind", "minor") },
			want:  "  kind:        minor\n",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.print(&buf)
			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestPrintSeparator(t *testing.T) {
	color.NoColor = true

	var buf bytes.Buffer
	PrintSeparator(&buf, "release notes")
	assert.Contains(t, buf.String(), " release notes ")
	assert.Contains(t, buf.String(), "───")
}

func TestGetTerminalWidth_Default(t *testing.T) {
	assert.Positive(t, GetTerminalWidth())
}
