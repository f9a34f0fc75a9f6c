package status

import (
	"context"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency bounds parallel worktree inspection when the
// collector is not configured otherwise.
const DefaultConcurrency = 8

// Collector computes worktree statuses for discovered repositories.
// Inspection runs in parallel, bounded by Limit, and the result order
// is independent of scheduling: snapshots are sorted by repository
// name, then branch name.
type Collector struct {
	Facts Facts
	Limit int
}

// Collect derives a status snapshot for every worktree of every repo.
// A failure on one worktree never aborts the batch; the affected
// dimensions come back Unknown instead. The only error returned is the
// context's, when the whole collection is cancelled.
func (c Collector) Collect(ctx context.Context, repos []Repo) ([]WorktreeStatus, error) {
	type job struct {
		repo Repo
		wt   Entry
	}

	var jobs []job
	for _, r := range repos {
		for _, wt := range r.Worktrees {
			jobs = append(jobs, job{repo: r, wt: wt})
		}
	}

	limit := c.Limit
	if limit <= 0 {
		limit = DefaultConcurrency
	}

	out := make([]WorktreeStatus, len(jobs))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i, j := range jobs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			out[i] = c.inspect(ctx, j.repo, j.wt)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Repo != out[j].Repo {
			return strings.Compare(out[i].Repo, out[j].Repo) < 0
		}
		return strings.Compare(out[i].Branch, out[j].Branch) < 0
	})
	return out, nil
}

func (c Collector) inspect(ctx context.Context, repo Repo, wt Entry) WorktreeStatus {
	ws := WorktreeStatus{
		Repo:   repo.Name,
		Branch: wt.Branch,
		Path:   wt.Path,
	}
	ws.Local = DeriveLocal(ctx, c.Facts, wt.Path)
	// Remote state and last activity come from refs in the bare repo,
	// so they stay available even when the worktree path is missing.
	ws.Remote = DeriveRemote(ctx, c.Facts, repo.Dir, wt.Branch)
	if t, err := c.Facts.LastCommitTime(ctx, repo.Dir, wt.Branch); err == nil {
		ws.LastActivity = t
	}
	return ws
}
