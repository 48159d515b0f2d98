package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testDoc = `
width: 300
height: 100
y: {domain: [0, 10]}
series:
  - name: temperature
    kind: area
    curve: monotone
    y: [1, 2, null, 4]
    gradient: {axis: y, stops: [{offset: min, color: red}, {offset: max, color: blue, opacity: 0.5}]}
  - name: pressure
    y: [4, 3, 2, 1]
`

// resetFlags restores the flag defaults
func resetFlags(t *testing.T) {
	logger = zap.NewNop()
	mode, format, out, width, height = "strict", "", "", 0, 0
	t.Cleanup(func() { mode, format, out, width, height = "warn", "", "", 0, 0 })
}

func writeDoc(t *testing.T) string {
	path := filepath.Join(t.TempDir(), "chart.yaml")
	require.NoError(t, os.WriteFile(path, []byte(testDoc), 0o644))
	return path
}

func TestRenderFormats(t *testing.T) {
	resetFlags(t)
	doc := writeDoc(t)

	for _, test := range []struct {
		format string
		header string
	}{
		{"png", "\x89PNG"},
		{"pdf", "%PDF-"},
		{"svg", "<?xml"},
	} {
		format = test.format
		require.NoError(t, runRender(&cobra.Command{}, []string{doc}))

		content, err := os.ReadFile(doc[:len(doc)-len(".yaml")] + "." + test.format)
		require.NoError(t, err)
		require.True(t, bytes.HasPrefix(content, []byte(test.header)), test.format)
	}
}

func TestRenderStdout(t *testing.T) {
	resetFlags(t)
	doc := writeDoc(t)
	out, format, width = "-", "svg", 600

	cmd := &cobra.Command{}
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	require.NoError(t, runRender(cmd, []string{doc}))
	require.Contains(t, buf.String(), `width="600"`)
	require.Contains(t, buf.String(), "linearGradient")
}

func TestRenderOutExtension(t *testing.T) {
	resetFlags(t)
	doc := writeDoc(t)
	out = filepath.Join(t.TempDir(), "chart.pdf")
	require.NoError(t, runRender(&cobra.Command{}, []string{doc}))
	_, err := os.Stat(out)
	require.NoError(t, err)

	out = filepath.Join(t.TempDir(), "chart.gif")
	require.Error(t, runRender(&cobra.Command{}, []string{doc}))
}

func TestPath(t *testing.T) {
	resetFlags(t)
	doc := writeDoc(t)

	cmd := &cobra.Command{}
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	require.NoError(t, runPath(cmd, []string{doc}))
	require.Contains(t, buf.String(), "pressure\tM0,60L100,70L200,80L300,90\n")
	require.Contains(t, buf.String(), "temperature\tM")
}

func TestInvalidDocument(t *testing.T) {
	resetFlags(t)
	path := filepath.Join(t.TempDir(), "chart.yaml")
	require.NoError(t, os.WriteFile(path, []byte("series: [{y: [1], curve: wavy}]"), 0o644))
	require.Error(t, runPath(&cobra.Command{}, []string{path}))

	mode = "ignore"
	require.NoError(t, runPath(&cobra.Command{}, []string{path}))

	mode = "loud"
	require.Error(t, runPath(&cobra.Command{}, []string{path}))
}
