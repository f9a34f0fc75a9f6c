package git

import (
	"context"
	"fmt"
	"strings"
)

// WorktreeInfo is one entry of `git worktree list --porcelain`.
type WorktreeInfo struct {
	Path     string
	Branch   string // empty when bare or detached
	Bare     bool
	Detached bool
}

// ListWorktrees returns every worktree registered in the repository at
// repoDir, including the bare entry itself.
func ListWorktrees(ctx context.Context, repoDir string) ([]WorktreeInfo, error) {
	out, err := outputGit(ctx, repoDir, "worktree", "list", "--porcelain")
	if err != nil {
		return nil, fmt.Errorf("failed to list worktrees: %w", err)
	}
	return parseWorktreeList(string(out))
}

// parseWorktreeList parses porcelain output: one paragraph per
// worktree, starting with a "worktree <path>" line.
func parseWorktreeList(out string) ([]WorktreeInfo, error) {
	var (
		worktrees []WorktreeInfo
		cur       *WorktreeInfo
	)
	flush := func() {
		if cur != nil {
			worktrees = append(worktrees, *cur)
			cur = nil
		}
	}
	for _, line := range strings.Split(out, "\n") {
		switch {
		case strings.HasPrefix(line, "worktree "):
			flush()
			cur = &WorktreeInfo{Path: strings.TrimPrefix(line, "worktree ")}
		case line == "":
			flush()
		case cur == nil:
			return nil, fmt.Errorf("malformed worktree list: attribute %q before any worktree line", line)
		case line == "bare":
			cur.Bare = true
		case line == "detached":
			cur.Detached = true
		case strings.HasPrefix(line, "branch "):
			cur.Branch = strings.TrimPrefix(line, "branch refs/heads/")
		}
	}
	flush()
	return worktrees, nil
}

// BranchExists reports whether a local branch exists in repoDir.
func BranchExists(ctx context.Context, repoDir, branch string) bool {
	err := runGit(ctx, repoDir, "rev-parse", "--verify", "--quiet", "refs/heads/"+branch)
	return err == nil
}

// AddWorktree registers a new worktree at path. With createBranch a new
// branch is created from base; otherwise the existing branch is checked
// out. base may be empty to branch from HEAD.
func AddWorktree(ctx context.Context, repoDir, path, branch string, createBranch bool, base string) error {
	args := []string{"worktree", "add", path}
	if createBranch {
		args = append(args, "-b", branch)
		if base != "" {
			args = append(args, base)
		}
	} else {
		args = append(args, branch)
	}
	if err := runGit(ctx, repoDir, args...); err != nil {
		return fmt.Errorf("failed to create worktree: %w", err)
	}
	return nil
}

// RemoveWorktree unregisters and deletes the worktree at path. force
// lets git discard uncommitted changes.
func RemoveWorktree(ctx context.Context, repoDir, path string, force bool) error {
	args := []string{"worktree", "remove"}
	if force {
		args = append(args, "--force")
	}
	args = append(args, path)
	if err := runGit(ctx, repoDir, args...); err != nil {
		return fmt.Errorf("failed to remove worktree: %w", err)
	}
	return nil
}

// PruneWorktrees drops registrations whose directories are gone.
func PruneWorktrees(ctx context.Context, repoDir string) error {
	return runGit(ctx, repoDir, "worktree", "prune")
}

// Fetch updates all remotes of the repository, pruning deleted remote
// branches so remote status reflects the server.
func Fetch(ctx context.Context, repoDir string) error {
	return runGit(ctx, repoDir, "fetch", "--all", "--prune")
}
