package commands

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSource(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestRenderCommandSingleFile(t *testing.T) {
	dir := t.TempDir()
	in := writeSource(t, dir, "f.py", "def f(x):\n    return x\n")
	out := filepath.Join(dir, "out.tex")

	cmd := NewRenderCommand()
	cmd.SetArgs([]string{"--output", out, in})
	require.NoError(t, cmd.Execute())

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "f(x) = x\n", string(data))
}

func TestRenderCommandMultipleFiles(t *testing.T) {
	dir := t.TempDir()
	first := writeSource(t, dir, "f.py", "def f(x):\n    return x\n")
	second := writeSource(t, dir, "g.py", "def g(y):\n    return 2*y\n")
	out := filepath.Join(dir, "out.tex")

	cmd := NewRenderCommand()
	cmd.SetArgs([]string{"--output", out, first, second})
	require.NoError(t, cmd.Execute())

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "f(x) = x\ng(y) = 2 y\n", string(data))
}

func TestRenderCommandDedentsInput(t *testing.T) {
	dir := t.TempDir()
	in := writeSource(t, dir, "f.py", "    def f(x):\n        return 2*x\n")
	out := filepath.Join(dir, "out.tex")

	cmd := NewRenderCommand()
	cmd.SetArgs([]string{"--output", out, in})
	require.NoError(t, cmd.Execute())

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "f(x) = 2 x\n", string(data))
}

func TestRenderCommandRejectsBinaryInput(t *testing.T) {
	dir := t.TempDir()
	in := writeSource(t, dir, "blob.bin", "def f\x00(x):")

	cmd := NewRenderCommand()
	cmd.SetArgs([]string{in})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a text file")
}
