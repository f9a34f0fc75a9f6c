package worktree

import (
	"context"
	"time"

	"github.com/wipctl/wip/internal/git"
	"github.com/wipctl/wip/internal/status"
)

// Candidate is one worktree eligible for cleanup: its branch tip is
// fully merged into the repository's primary branch and the checkout
// is clean.
type Candidate struct {
	Repo    status.Repo
	Status  status.WorktreeStatus
	Primary string
}

// CleanupOptions restricts candidate selection.
type CleanupOptions struct {
	// OlderThan keeps only worktrees whose last activity predates
	// now-OlderThan. Zero means no age restriction.
	OlderThan time.Duration
	// Primary overrides per-repository primary branch detection.
	Primary string
}

// CleanupCandidates selects removable worktrees. A candidate must be
// Clean (not merely missing or unknown) and its branch an ancestor of
// the primary tip, so nothing unmerged and no uncommitted work is ever
// suggested.
func CleanupCandidates(ctx context.Context, f status.Facts, repos []status.Repo, now time.Time, opts CleanupOptions) ([]Candidate, error) {
	statuses, err := status.Collector{Facts: f}.Collect(ctx, repos)
	if err != nil {
		return nil, err
	}

	byName := make(map[string]status.Repo, len(repos))
	for _, r := range repos {
		byName[r.Name] = r
	}
	primaries := make(map[string]string, len(repos))

	var ageFilter status.Filter
	if opts.OlderThan > 0 {
		ageFilter.Add(status.OlderThan(now.Add(-opts.OlderThan)))
	}

	var candidates []Candidate
	for _, ws := range statuses {
		if ws.Local != status.LocalClean {
			continue
		}
		if !ageFilter.Matches(ws) {
			continue
		}
		repo := byName[ws.Repo]

		primary, ok := primaries[ws.Repo]
		if !ok {
			primary = opts.Primary
			if primary == "" {
				primary = git.PrimaryBranch(ctx, repo.Dir)
			}
			primaries[ws.Repo] = primary
		}

		merged, err := f.IsAncestor(ctx, repo.Dir, ws.Branch, primary)
		if err != nil || !merged {
			continue
		}
		candidates = append(candidates, Candidate{Repo: repo, Status: ws, Primary: primary})
	}
	return candidates, nil
}

// CleanupResult is the outcome of removing one candidate.
type CleanupResult struct {
	Action Action
	Err    error
}

// Cleanup removes the given candidates one by one. A failure on one
// candidate is recorded and the rest still run.
func Cleanup(ctx context.Context, f status.Facts, candidates []Candidate, dryRun bool) []CleanupResult {
	results := make([]CleanupResult, 0, len(candidates))
	for _, c := range candidates {
		action, err := Remove(ctx, f, RemoveRequest{
			Repo:   c.Repo,
			Branch: c.Status.Branch,
			DryRun: dryRun,
		})
		results = append(results, CleanupResult{Action: action, Err: err})
	}
	return results
}
