package vars

import (
	"fmt"
	"path/filepath"
	"time"

	git "github.com/go-git/go-git/v5"
)

// Builtins returns the ambient variable set: date/time parts from now,
// project name and root from cwd, and git branch/commit when cwd is
// inside a repository. It is a pure function of its arguments so tests
// inject a fixed clock and directory.
//
// Git variables are omitted entirely (not empty-stringed) outside a
// repository or when head resolution fails, so non-strict substitution
// leaves their placeholders visible instead of silently blanking them.
func Builtins(now time.Time, cwd string) map[string]string {
	vars := map[string]string{
		"DATE":         now.Format("2006-01-02"),
		"TIME":         now.Format("15:04:05"),
		"DATETIME":     now.Format(time.RFC3339),
		"YEAR":         now.Format("2006"),
		"MONTH":        now.Format("01"),
		"DAY":          now.Format("02"),
		"PROJECT_NAME": filepath.Base(cwd),
		"PROJECT_ROOT": cwd,
	}

	if branch, commit, ok := gitState(cwd); ok {
		vars["GIT_BRANCH"] = branch
		vars["GIT_COMMIT"] = commit
	}

	return vars
}

// gitState reads the current branch name and short revision id from the
// repository containing dir, if any.
func gitState(dir string) (branch, commit string, ok bool) {
	repo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return "", "", false
	}
	head, err := repo.Head()
	if err != nil {
		// Repository with no commits yet
		return "", "", false
	}
	hash := head.Hash().String()
	if len(hash) > 7 {
		hash = hash[:7]
	}
	name := head.Name()
	if name.IsBranch() {
		branch = name.Short()
	} else {
		// Detached head: use the short hash as the branch label
		branch = fmt.Sprintf("detached@%s", hash)
	}
	return branch, hash, true
}
