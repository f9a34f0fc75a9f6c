package git

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/wipctl/wip/internal/status"
)

// Facts answers the status engine's questions through the git CLI.
// The zero value is ready to use; instances are stateless and safe for
// concurrent use.
type Facts struct{}

var _ status.Facts = Facts{}

// DiffState inspects uncommitted changes under a worktree path via
// `git status --porcelain`. Untracked files count as unstaged.
func (Facts) DiffState(ctx context.Context, path string) (status.DiffState, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return status.DiffState{}, status.ErrPathMissing
	} else if err != nil {
		return status.DiffState{}, err
	}

	out, err := outputGit(ctx, path, "status", "--porcelain")
	if err != nil {
		return status.DiffState{}, fmt.Errorf("failed to read status of %s: %w", path, err)
	}

	var ds status.DiffState
	for _, line := range strings.Split(string(out), "\n") {
		if len(line) < 2 {
			continue
		}
		index, worktree := line[0], line[1]
		if index == '?' {
			ds.Unstaged = true
			continue
		}
		if index != ' ' {
			ds.Staged = true
		}
		if worktree != ' ' {
			ds.Unstaged = true
		}
	}
	return ds, nil
}

// Upstream returns the short upstream ref of branch, e.g.
// "origin/feature", or status.ErrNoUpstream when none is configured.
func (Facts) Upstream(ctx context.Context, repoDir, branch string) (string, error) {
	out, err := outputGit(ctx, repoDir, "for-each-ref",
		"--format=%(upstream:short)", "refs/heads/"+branch)
	if err != nil {
		return "", fmt.Errorf("failed to read upstream of %s: %w", branch, err)
	}
	upstream := strings.TrimSpace(string(out))
	if upstream == "" {
		return "", status.ErrNoUpstream
	}
	return upstream, nil
}

// ResolveRef resolves ref to a commit hash. Any resolution failure
// maps to status.ErrRefMissing: git does not distinguish a deleted
// remote branch from a never-pushed one.
func (Facts) ResolveRef(ctx context.Context, repoDir, ref string) (string, error) {
	out, err := outputGit(ctx, repoDir, "rev-parse", "--verify", "--quiet", ref+"^{commit}")
	if err != nil {
		return "", status.ErrRefMissing
	}
	return strings.TrimSpace(string(out)), nil
}

// AheadBehind counts commits exclusive to each side using the commit
// graph, so rebases and merges are handled correctly.
func (Facts) AheadBehind(ctx context.Context, repoDir, local, upstream string) (int, int, error) {
	out, err := outputGit(ctx, repoDir, "rev-list", "--left-right", "--count",
		local+"..."+upstream)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to count %s...%s: %w", local, upstream, err)
	}
	fields := strings.Fields(strings.TrimSpace(string(out)))
	if len(fields) != 2 {
		return 0, 0, fmt.Errorf("unexpected rev-list output %q", strings.TrimSpace(string(out)))
	}
	ahead, err := strconv.Atoi(fields[0])
	if err != nil {
		return 0, 0, fmt.Errorf("unexpected rev-list output %q", fields[0])
	}
	behind, err := strconv.Atoi(fields[1])
	if err != nil {
		return 0, 0, fmt.Errorf("unexpected rev-list output %q", fields[1])
	}
	return ahead, behind, nil
}

// IsAncestor reports whether ref is fully contained in tip. merge-base
// signals "no" with a plain non-zero exit, which is indistinguishable
// here from a real failure; both answer false, which is the safe
// direction for merge checks.
func (Facts) IsAncestor(ctx context.Context, repoDir, ref, tip string) (bool, error) {
	err := runGit(ctx, repoDir, "merge-base", "--is-ancestor", ref, tip)
	return err == nil, nil
}

// LastCommitTime returns the committer time of the branch tip.
func (Facts) LastCommitTime(ctx context.Context, repoDir, branch string) (time.Time, error) {
	out, err := outputGit(ctx, repoDir, "log", "-1", "--format=%ct", "refs/heads/"+branch, "--")
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to read last commit of %s: %w", branch, err)
	}
	unix, err := strconv.ParseInt(strings.TrimSpace(string(out)), 10, 64)
	if err != nil {
		return time.Time{}, fmt.Errorf("unexpected commit time %q", strings.TrimSpace(string(out)))
	}
	return time.Unix(unix, 0), nil
}
