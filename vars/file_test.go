package vars

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gopkg.in/yaml.v3"
)

func TestDefinitionUnmarshal(t *testing.T) {
	input := []byte(`
STATIC_VAR: plain value
DYNAMIC_VAR:
  type: command
  value: git branch --show-current
  cache: true
UNCACHED:
  type: command
  value: date
`)
	defs := make(map[string]Definition)
	require.NoError(t, yaml.Unmarshal(input, &defs))

	assert.False(t, defs["STATIC_VAR"].IsCommand())
	assert.Equal(t, "plain value", defs["STATIC_VAR"].Static)

	assert.True(t, defs["DYNAMIC_VAR"].IsCommand())
	assert.Equal(t, "git branch --show-current", defs["DYNAMIC_VAR"].Command)
	assert.True(t, defs["DYNAMIC_VAR"].Cache)

	assert.True(t, defs["UNCACHED"].IsCommand())
	assert.False(t, defs["UNCACHED"].Cache)
}

func TestDefinitionUnmarshalUnknownType(t *testing.T) {
	input := []byte(`
BAD:
  type: script
  value: whatever
`)
	defs := make(map[string]Definition)
	err := yaml.Unmarshal(input, &defs)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "script")
}

func TestFindVarsFileNearestWins(t *testing.T) {
	root := t.TempDir()
	child := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(child, 0o755))

	rootFile := filepath.Join(root, DefaultVarsFileName)
	require.NoError(t, os.WriteFile(rootFile, []byte("ROOT: yes\n"), 0o644))

	// Only the ancestor file exists: it is found from the child
	assert.Equal(t, rootFile, FindVarsFile(child, ""))

	// A closer file shadows the ancestor
	childFile := filepath.Join(child, DefaultVarsFileName)
	require.NoError(t, os.WriteFile(childFile, []byte("CHILD: yes\n"), 0o644))
	assert.Equal(t, childFile, FindVarsFile(child, ""))
}

func TestFindVarsFileMissing(t *testing.T) {
	assert.Equal(t, "", FindVarsFile(t.TempDir(), "definitely-not-a-real-vars-file.yaml"))
}

func TestFindVarsFileCustomName(t *testing.T) {
	dir := t.TempDir()
	custom := filepath.Join(dir, "team-vars.yaml")
	require.NoError(t, os.WriteFile(custom, []byte("X: 1\n"), 0o644))
	assert.Equal(t, custom, FindVarsFile(dir, "team-vars.yaml"))
}

func TestParseVarsFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, DefaultVarsFileName)
	require.NoError(t, os.WriteFile(path, []byte("VAR1: local_value\n"), 0o644))

	defs, err := ParseVarsFile(path)
	require.NoError(t, err)
	assert.Equal(t, "local_value", defs["VAR1"].Static)
}
