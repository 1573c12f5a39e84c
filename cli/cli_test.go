package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"lumen/fx/scene"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "lumen dev")
}

func TestWriteInspectPlain(t *testing.T) {
	def, err := scene.Builtin(scene.VariantConstellation)
	require.NoError(t, err)
	g, err := scene.NewGraph(def.Nodes)
	require.NoError(t, err)

	var out bytes.Buffer
	require.NoError(t, writeInspect(&out, scene.VariantConstellation, g, false))

	s := out.String()
	assert.Contains(t, s, "constellation: 10 nodes, 10 edges")
	assert.Contains(t, s, "javascript -- nodejs")
	assert.NotContains(t, s, "nodejs -- javascript")
	assert.NotContains(t, s, "\x1b[", "no escapes when not a terminal")
}

func TestInspectCommand(t *testing.T) {
	out, err := execute(t, "inspect", "--variant", "keyboard")
	require.NoError(t, err)
	assert.Contains(t, out, "keyboard: 11 nodes, 0 edges")
}

func TestInspectRejectsUnknownConnection(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
variant: constellation
nodes:
  - id: go
    name: Go
    color: "#00ADD8"
    connections: [rust]
`), 0o644))

	_, err := execute(t, "inspect", "--scene", path)
	assert.ErrorIs(t, err, scene.ErrUnknownConnection)
}

func TestRunHeadless(t *testing.T) {
	_, err := execute(t, "run", "--host", "headless", "--ticks", "5", "--hz", "240", "--width", "64", "--height", "48")
	require.NoError(t, err)
}

func TestRunRejectsBadHost(t *testing.T) {
	_, err := execute(t, "run", "--host", "tv")
	assert.Error(t, err)
}
