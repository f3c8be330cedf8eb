package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.EqualValues(t, 1_000_000, cfg.Execution.MaxCycles)
	assert.EqualValues(t, 65536, cfg.Execution.StackSize)
	assert.False(t, cfg.Execution.EnableTrace)

	assert.Equal(t, "iris", cfg.Assembler.DefaultDialect)
	assert.Equal(t, "error", cfg.Assembler.ReservedBitPolicy)

	assert.False(t, cfg.Monitor.Enabled)
	assert.Equal(t, "hex", cfg.Monitor.NumberFormat)
}

func TestPath(t *testing.T) {
	path := Path()
	assert.NotEmpty(t, path)
	assert.Equal(t, "config.toml", filepath.Base(path))
}

func TestSaveAndLoad(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "test_config.toml")

	cfg := Default()
	cfg.Execution.MaxCycles = 5_000_000
	cfg.Execution.EnableTrace = true
	cfg.Assembler.DefaultDialect = "cisc0"
	cfg.Monitor.Enabled = true

	require.NoError(t, cfg.SaveTo(configPath))
	require.FileExists(t, configPath)

	loaded, err := LoadFrom(configPath)
	require.NoError(t, err)

	assert.EqualValues(t, 5_000_000, loaded.Execution.MaxCycles)
	assert.True(t, loaded.Execution.EnableTrace)
	assert.Equal(t, "cisc0", loaded.Assembler.DefaultDialect)
	assert.True(t, loaded.Monitor.Enabled)
}

func TestLoadNonExistent(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "nonexistent.toml")

	cfg, err := LoadFrom(configPath)
	require.NoError(t, err)
	assert.EqualValues(t, 1_000_000, cfg.Execution.MaxCycles)
}

func TestLoadInvalidTOML(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "invalid.toml")

	invalidTOML := `
[execution]
max_cycles = "not a number"
`
	require.NoError(t, os.WriteFile(configPath, []byte(invalidTOML), 0644))

	_, err := LoadFrom(configPath)
	assert.Error(t, err)
}

func TestSaveCreatesDirectory(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "subdir1", "subdir2", "config.toml")

	cfg := Default()
	require.NoError(t, cfg.SaveTo(configPath))
	require.FileExists(t, configPath)
}
