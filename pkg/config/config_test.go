package config_test

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/texfang/pkg/config"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Parallel()

	// Test loading with no config file (should use defaults).
	cfg, err := config.LoadConfig("")
	require.NoError(t, err)

	// Check default values.
	assert.Equal(t, "function", cfg.Render.Style)
	assert.True(t, cfg.Render.UseMathrm)
	assert.True(t, cfg.Render.UseSignature)
	assert.False(t, cfg.Render.UseMathSymbols)
	assert.Equal(t, `\dagger`, cfg.Render.PinvSymbol)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoadConfigFromFile(t *testing.T) {
	t.Parallel()

	// Create a temporary config file.
	configContent := `
render:
  style: "algorithmic"
  use_math_symbols: true
  prefixes:
    - "math"
    - "numpy.linalg"
  identifiers:
    my_function: f

logging:
  level: "debug"
`

	tmpDir := t.TempDir()

	tmpFile, err := os.CreateTemp(tmpDir, "test-config-*.yaml")
	require.NoError(t, err)

	_, writeErr := tmpFile.WriteString(configContent)
	require.NoError(t, writeErr)

	tmpFile.Close()

	// Load config from file.
	cfg, loadErr := config.LoadConfig(tmpFile.Name())
	require.NoError(t, loadErr)

	// Check custom values.
	assert.Equal(t, "algorithmic", cfg.Render.Style)
	assert.True(t, cfg.Render.UseMathSymbols)
	assert.Equal(t, []string{"math", "numpy.linalg"}, cfg.Render.Prefixes)
	assert.Equal(t, map[string]string{"my_function": "f"}, cfg.Render.Identifiers)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoadConfigFromEnvironment(t *testing.T) {
	// Set environment variables.
	t.Setenv("TEXFANG_RENDER_STYLE", "expression")
	t.Setenv("TEXFANG_LOGGING_LEVEL", "warn")

	// Load config (should pick up environment variables).
	cfg, err := config.LoadConfig("")
	require.NoError(t, err)

	// Check environment variable values.
	assert.Equal(t, "expression", cfg.Render.Style)
	assert.Equal(t, "warn", cfg.Logging.Level)
}

func TestLoadConfigMalformedFile(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()

	tmpFile, err := os.CreateTemp(tmpDir, "test-config-*.yaml")
	require.NoError(t, err)

	_, writeErr := tmpFile.WriteString("render: [not a mapping")
	require.NoError(t, writeErr)

	tmpFile.Close()

	_, loadErr := config.LoadConfig(tmpFile.Name())
	require.Error(t, loadErr)
	assert.Contains(t, loadErr.Error(), "failed to read config file")
}

func TestLoadConfigInvalidStyle(t *testing.T) {
	t.Setenv("TEXFANG_RENDER_STYLE", "fancy")

	_, err := config.LoadConfig("")
	require.Error(t, err)
	assert.ErrorIs(t, err, config.ErrInvalidStyle)
}

func TestLoadConfigInvalidLogLevel(t *testing.T) {
	t.Setenv("TEXFANG_LOGGING_LEVEL", "loud")

	_, err := config.LoadConfig("")
	require.Error(t, err)
	assert.ErrorIs(t, err, config.ErrInvalidLogLevel)
}
