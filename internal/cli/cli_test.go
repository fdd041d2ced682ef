package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chromafy/chromafy-server/internal/export"
)

// run executes the command tree with args and returns stdout and stderr.
func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestGenerate_Text(t *testing.T) {
	out, _, err := run(t, "generate", "--base", "0f766e", "--mode", "analogous", "--color", "never")
	require.NoError(t, err)

	assert.Contains(t, out, "Analogous palette from #0f766e")
	assert.Equal(t, 5, strings.Count(out, ":1 "), out)
	assert.Contains(t, out, "#0F766E")
}

func TestGenerate_SeededJSONIsReproducible(t *testing.T) {
	args := []string{"generate", "--seed", "42", "--count", "4", "--format", "json"}

	first, _, err := run(t, args...)
	require.NoError(t, err)
	second, _, err := run(t, args...)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	var doc export.Document
	require.NoError(t, json.Unmarshal([]byte(first), &doc))
	assert.Len(t, doc.Colors, 4)
	assert.Len(t, doc.Swatches, 4)
	assert.Equal(t, "Random", doc.Mode)
	assert.NotEmpty(t, doc.Name)
}

func TestGenerate_TOMLAndCSS(t *testing.T) {
	out, _, err := run(t, "generate", "--mode", "triadic", "--count", "3", "--format", "TOML", "--name", "Night Owl")
	require.NoError(t, err)

	doc, err := export.DecodeTOML([]byte(out))
	require.NoError(t, err)
	assert.Equal(t, "Night Owl", doc.Name)
	assert.Equal(t, "Triadic", doc.Mode)
	assert.Len(t, doc.Colors, 3)

	out, _, err = run(t, "generate", "--count", "2", "--format", "css", "--name", "Night Owl")
	require.NoError(t, err)
	assert.Contains(t, out, ":root {")
	assert.Contains(t, out, "--night-owl-1:")
	assert.Contains(t, out, "--night-owl-2-text:")
}

func TestGenerate_WritesPNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "strip.png")

	_, stderr, err := run(t, "generate", "--count", "3", "--png", path, "--color", "never")
	require.NoError(t, err)
	assert.Contains(t, stderr, "Wrote "+path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("\x89PNG\r\n\x1a\n")))
}

func TestGenerate_Rejects(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"unknown mode", []string{"--mode", "pastel"}, "unknown mode"},
		{"zero count", []string{"--count", "0"}, "count must be between 1 and 64"},
		{"huge count", []string{"--count", "65"}, "count must be between 1 and 64"},
		{"unknown format", []string{"--format", "pdf"}, "unknown format"},
		{"bad color flag", []string{"--color", "sometimes"}, "invalid --color"},
		{"positional arg", []string{"extra"}, "unknown command"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := run(t, append([]string{"generate"}, tt.args...)...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestContrast(t *testing.T) {
	tests := []struct {
		fg, bg    string
		wantRatio string
		wantGrade string
	}{
		{"ffffff", "000000", "Ratio: 21.00:1", "AA"},
		{"#777777", "#ffffff", "Ratio: 4.48:1", "AA Large"},
		{"cccccc", "ffffff", "Ratio: 1.61:1", "Fail"},
	}

	for _, tt := range tests {
		t.Run(tt.fg+"/"+tt.bg, func(t *testing.T) {
			out, _, err := run(t, "contrast", tt.fg, tt.bg, "--color", "never")
			require.NoError(t, err)
			assert.Contains(t, out, tt.wantRatio)
			assert.Contains(t, out, tt.wantGrade)
			assert.Contains(t, out, "Sample text")
		})
	}
}

func TestContrast_RequiresTwoColours(t *testing.T) {
	_, _, err := run(t, "contrast", "ffffff")
	assert.Error(t, err)
}

func TestModes(t *testing.T) {
	out, _, err := run(t, "modes")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 6)
	assert.True(t, strings.HasPrefix(lines[0], "* Random"))
	assert.Contains(t, out, "Tetradic")
}
