package vars

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuiltinsDateAndProject(t *testing.T) {
	now := time.Date(2026, 8, 29, 14, 30, 5, 0, time.UTC)
	cwd := filepath.Join(t.TempDir(), "my-service")
	require.NoError(t, os.Mkdir(cwd, 0o755))

	vars := Builtins(now, cwd)

	assert.Equal(t, "2026-08-29", vars["DATE"])
	assert.Equal(t, "14:30:05", vars["TIME"])
	assert.Equal(t, "2026", vars["YEAR"])
	assert.Equal(t, "08", vars["MONTH"])
	assert.Equal(t, "29", vars["DAY"])
	assert.Equal(t, now.Format(time.RFC3339), vars["DATETIME"])
	assert.Equal(t, "my-service", vars["PROJECT_NAME"])
	assert.Equal(t, cwd, vars["PROJECT_ROOT"])
}

func TestBuiltinsOutsideRepository(t *testing.T) {
	vars := Builtins(time.Now(), t.TempDir())

	// Omitted, not empty-stringed
	_, hasBranch := vars["GIT_BRANCH"]
	_, hasCommit := vars["GIT_COMMIT"]
	assert.False(t, hasBranch)
	assert.False(t, hasCommit)
}

func TestBuiltinsInsideRepository(t *testing.T) {
	dir := t.TempDir()
	repo, err := git.PlainInit(dir, false)
	require.NoError(t, err)

	path := filepath.Join(dir, "README.md")
	require.NoError(t, os.WriteFile(path, []byte("# test\n"), 0o644))

	wt, err := repo.Worktree()
	require.NoError(t, err)
	_, err = wt.Add("README.md")
	require.NoError(t, err)
	hash, err := wt.Commit("initial", &git.CommitOptions{
		Author: &object.Signature{Name: "test", Email: "test@example.com", When: time.Now()},
	})
	require.NoError(t, err)

	vars := Builtins(time.Now(), dir)

	assert.Equal(t, "master", vars["GIT_BRANCH"])
	assert.Equal(t, hash.String()[:7], vars["GIT_COMMIT"])
}

func TestBuiltinsEmptyRepositoryOmitsGit(t *testing.T) {
	dir := t.TempDir()
	_, err := git.PlainInit(dir, false)
	require.NoError(t, err)

	// No commits yet: head resolution fails, git vars are omitted
	vars := Builtins(time.Now(), dir)
	_, hasBranch := vars["GIT_BRANCH"]
	assert.False(t, hasBranch)
}
