package git

import (
	"context"
	"strings"
)

// PrimaryBranch determines the repository's primary branch: the target
// of origin/HEAD when set, otherwise main, otherwise master. Falls back
// to "main" when nothing resolves so callers always get a usable name.
func PrimaryBranch(ctx context.Context, repoDir string) string {
	out, err := outputGit(ctx, repoDir, "symbolic-ref", "--short", "refs/remotes/origin/HEAD")
	if err == nil {
		ref := strings.TrimSpace(string(out))
		if name, ok := strings.CutPrefix(ref, "origin/"); ok && name != "" {
			return name
		}
	}
	for _, name := range []string{"main", "master"} {
		if BranchExists(ctx, repoDir, name) {
			return name
		}
	}
	return "main"
}
