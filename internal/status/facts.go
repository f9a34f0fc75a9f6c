package status

import (
	"context"
	"errors"
	"time"
)

// Sentinel errors Facts implementations return to signal expected
// conditions. Anything else is treated as a real failure and degrades
// the affected dimension to Unknown.
var (
	// ErrPathMissing reports that a worktree path does not exist.
	ErrPathMissing = errors.New("worktree path does not exist")
	// ErrNoUpstream reports that a branch has no configured upstream.
	ErrNoUpstream = errors.New("no upstream configured")
	// ErrRefMissing reports that a ref cannot be resolved to a commit.
	ErrRefMissing = errors.New("ref not found")
)

// DiffState is the raw uncommitted-changes answer for one worktree.
type DiffState struct {
	Staged   bool
	Unstaged bool
}

// Facts supplies the raw repository observations status derivation is
// built on. The production implementation shells out to git; tests
// substitute a synthetic provider. Implementations must be safe for
// concurrent use.
type Facts interface {
	// DiffState reports staged/unstaged changes under path, or
	// ErrPathMissing when the path is gone.
	DiffState(ctx context.Context, path string) (DiffState, error)

	// Upstream returns the configured upstream ref of branch (for
	// example "origin/feature"), or ErrNoUpstream.
	Upstream(ctx context.Context, repoDir, branch string) (string, error)

	// ResolveRef resolves ref to a commit hash, or ErrRefMissing.
	ResolveRef(ctx context.Context, repoDir, ref string) (string, error)

	// AheadBehind counts commits exclusive to local and to upstream.
	AheadBehind(ctx context.Context, repoDir, local, upstream string) (ahead, behind int, err error)

	// IsAncestor reports whether ref is an ancestor of tip, i.e. fully
	// merged into it.
	IsAncestor(ctx context.Context, repoDir, ref, tip string) (bool, error)

	// LastCommitTime returns the committer time of the branch tip.
	LastCommitTime(ctx context.Context, repoDir, branch string) (time.Time, error)
}

// DeriveLocal computes the local status of the worktree at path.
// Failures other than a missing path degrade to LocalUnknown.
func DeriveLocal(ctx context.Context, f Facts, path string) LocalStatus {
	ds, err := f.DiffState(ctx, path)
	switch {
	case errors.Is(err, ErrPathMissing):
		return LocalMissing
	case err != nil:
		return LocalUnknown
	case ds.Staged:
		return LocalStaged
	case ds.Unstaged:
		return LocalDirty
	default:
		return LocalClean
	}
}

// DeriveRemote computes the remote status of branch in repoDir. The
// chain is: no upstream configured means NotTracking, an upstream that
// does not resolve means NotPushed, otherwise the ahead/behind counts
// decide. Any unexpected failure degrades to RemoteUnknown.
func DeriveRemote(ctx context.Context, f Facts, repoDir, branch string) RemoteStatus {
	upstream, err := f.Upstream(ctx, repoDir, branch)
	if errors.Is(err, ErrNoUpstream) {
		return RemoteStatus{Kind: RemoteNotTracking}
	}
	if err != nil {
		return RemoteStatus{Kind: RemoteUnknown}
	}

	if _, err := f.ResolveRef(ctx, repoDir, upstream); err != nil {
		if errors.Is(err, ErrRefMissing) {
			return RemoteStatus{Kind: RemoteNotPushed}
		}
		return RemoteStatus{Kind: RemoteUnknown}
	}

	ahead, behind, err := f.AheadBehind(ctx, repoDir, branch, upstream)
	if err != nil {
		return RemoteStatus{Kind: RemoteUnknown}
	}
	return ClassifyRemote(ahead, behind)
}
