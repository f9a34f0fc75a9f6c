package git

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/wipctl/wip/internal/status"
)

// Discover scans the direct children of root for bare repositories and
// returns them with their linked worktrees. Directories that are not
// bare repositories are ignored; repositories whose worktree metadata
// cannot be read are skipped and reported as warnings so one broken
// checkout never hides the rest.
//
// The bare entry itself and the primary-branch checkout are excluded
// from each repository's worktree set: neither is work in progress.
// Detached worktrees are excluded as well since every operation here is
// keyed by branch name.
func Discover(ctx context.Context, root string) ([]status.Repo, []string, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read root %s: %w", root, err)
	}

	var (
		repos    []status.Repo
		warnings []string
	)
	for _, entry := range entries {
		if !entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, nil, err
		}

		dir := filepath.Join(root, entry.Name())
		if !isBareRepo(ctx, dir) {
			continue
		}

		infos, err := ListWorktrees(ctx, dir)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("skipping %s: %v", entry.Name(), err))
			continue
		}

		primary := PrimaryBranch(ctx, dir)
		repo := status.Repo{Name: entry.Name(), Dir: dir}
		for _, wt := range infos {
			if wt.Bare || wt.Detached || wt.Branch == "" || wt.Branch == primary {
				continue
			}
			repo.Worktrees = append(repo.Worktrees, status.Entry{
				Branch: wt.Branch,
				Path:   wt.Path,
			})
		}
		repos = append(repos, repo)
	}
	return repos, warnings, nil
}

// FindRepo discovers repositories under root and returns the one named
// name, plus all discovered names for suggestion purposes.
func FindRepo(ctx context.Context, root, name string) (status.Repo, []string, error) {
	repos, _, err := Discover(ctx, root)
	if err != nil {
		return status.Repo{}, nil, err
	}
	names := make([]string, len(repos))
	for i, r := range repos {
		names[i] = r.Name
	}
	for _, r := range repos {
		if r.Name == name {
			return r, names, nil
		}
	}
	return status.Repo{}, names, fmt.Errorf("repository %q not found under %s", name, root)
}

func isBareRepo(ctx context.Context, dir string) bool {
	out, err := outputGit(ctx, dir, "rev-parse", "--is-bare-repository")
	return err == nil && strings.TrimSpace(string(out)) == "true"
}
