// Package status computes and filters work-in-progress status for git
// worktrees across many repositories.
//
// The package is the decision core of wip: it derives a normalized
// status per worktree from raw repository facts, evaluates filter
// predicates against those statuses, and aggregates summary counts.
// All facts are obtained through the [Facts] interface so the logic
// here performs no I/O of its own and tests run against synthetic
// providers without real repositories on disk.
package status

import (
	"fmt"
	"time"
)

// LocalStatus describes the working tree and index of one worktree.
// Exactly one value holds per snapshot. Staged wins over Dirty when
// both staged and unstaged changes exist: both are uncommitted work,
// and the staged part is the one closest to a commit.
type LocalStatus int

const (
	// LocalUnknown marks a worktree whose inspection failed.
	LocalUnknown LocalStatus = iota
	// LocalClean means no staged or unstaged changes.
	LocalClean
	// LocalDirty means unstaged modifications are present.
	LocalDirty
	// LocalStaged means changes are staged but not committed.
	LocalStaged
	// LocalMissing means the worktree path no longer exists on disk.
	// It overrides all other local states.
	LocalMissing
)

// String returns the filter-flag spelling of the status.
func (s LocalStatus) String() string {
	switch s {
	case LocalClean:
		return "clean"
	case LocalDirty:
		return "dirty"
	case LocalStaged:
		return "staged"
	case LocalMissing:
		return "missing"
	default:
		return "unknown"
	}
}

// RemoteKind classifies a branch relative to its upstream.
type RemoteKind int

const (
	// RemoteUnknown marks a branch whose remote comparison failed.
	RemoteUnknown RemoteKind = iota
	// RemoteUpToDate means local and upstream tips are identical.
	RemoteUpToDate
	// RemoteAhead means only local commits are unpushed.
	RemoteAhead
	// RemoteBehind means only upstream commits are unpulled.
	RemoteBehind
	// RemoteDiverged means both sides have exclusive commits.
	RemoteDiverged
	// RemoteNotPushed means an upstream is configured but the remote
	// branch does not exist (deleted or never pushed).
	RemoteNotPushed
	// RemoteNotTracking means no upstream is configured at all.
	RemoteNotTracking
)

// RemoteStatus is the remote classification plus ahead/behind counts.
// Counts are only meaningful for RemoteAhead, RemoteBehind and
// RemoteDiverged. Zero ahead and zero behind always classifies as
// RemoteUpToDate, never Ahead(0) or Behind(0).
type RemoteStatus struct {
	Kind   RemoteKind
	Ahead  int
	Behind int
}

// ClassifyRemote builds a RemoteStatus from ahead/behind counts.
func ClassifyRemote(ahead, behind int) RemoteStatus {
	switch {
	case ahead > 0 && behind > 0:
		return RemoteStatus{Kind: RemoteDiverged, Ahead: ahead, Behind: behind}
	case ahead > 0:
		return RemoteStatus{Kind: RemoteAhead, Ahead: ahead}
	case behind > 0:
		return RemoteStatus{Kind: RemoteBehind, Behind: behind}
	default:
		return RemoteStatus{Kind: RemoteUpToDate}
	}
}

// String returns the filter-flag spelling of the kind.
func (k RemoteKind) String() string {
	switch k {
	case RemoteUpToDate:
		return "up-to-date"
	case RemoteAhead:
		return "ahead"
	case RemoteBehind:
		return "behind"
	case RemoteDiverged:
		return "diverged"
	case RemoteNotPushed:
		return "not-pushed"
	case RemoteNotTracking:
		return "not-tracking"
	default:
		return "unknown"
	}
}

// String returns the kind plus counts where relevant.
func (r RemoteStatus) String() string {
	switch r.Kind {
	case RemoteAhead:
		return fmt.Sprintf("ahead %d", r.Ahead)
	case RemoteBehind:
		return fmt.Sprintf("behind %d", r.Behind)
	case RemoteDiverged:
		return fmt.Sprintf("diverged +%d/-%d", r.Ahead, r.Behind)
	default:
		return r.Kind.String()
	}
}

// WorktreeStatus is the immutable snapshot of one worktree: identity,
// derived local and remote state, and the last-commit timestamp used by
// age filters. LastActivity is the zero time when it could not be
// determined; age predicates let unknown-age worktrees pass.
type WorktreeStatus struct {
	Repo         string
	Branch       string
	Path         string
	Local        LocalStatus
	Remote       RemoteStatus
	LastActivity time.Time
}

// Entry is one registered worktree of a repository as reported by
// discovery: the checked-out branch and its filesystem path. The path
// may have been deleted externally; existence is decided during status
// derivation, not during discovery.
type Entry struct {
	Branch string
	Path   string
}

// Repo describes one discovered bare repository and its linked
// worktrees. Name is the directory base name and serves as display key.
type Repo struct {
	Name      string
	Dir       string
	Worktrees []Entry
}
