package am

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ConfigFileName)
	require.NoError(t, os.WriteFile(path, []byte(`
default_editor = "claude"
allow_commands = true
command_timeout_seconds = 10
vars_file = "team-vars.yaml"
strict = true
`), 0o644))

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, "claude", cfg.DefaultEditor)
	assert.True(t, cfg.AllowCommands)
	assert.Equal(t, 10, cfg.CommandTimeoutSeconds)
	assert.Equal(t, "team-vars.yaml", cfg.VarsFile)
	assert.True(t, cfg.Strict)
	assert.False(t, cfg.EnvVariables)
}

func TestLoadFromFileDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ConfigFileName)
	require.NoError(t, os.WriteFile(path, []byte(""), 0o644))

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, "", cfg.DefaultEditor)
	assert.False(t, cfg.AllowCommands)
	assert.Equal(t, 5, cfg.CommandTimeoutSeconds)
}

func TestLoadFromFileMissing(t *testing.T) {
	_, err := LoadFromFile(filepath.Join(t.TempDir(), "nope.toml"))
	require.Error(t, err)
}
