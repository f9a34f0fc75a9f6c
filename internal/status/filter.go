package status

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Default age thresholds for the filter presets.
const (
	DefaultActiveWindow = 7 * 24 * time.Hour
	DefaultStaleAfter   = 30 * 24 * time.Hour
)

// Predicate is one named filter condition over a status snapshot.
// Predicates are pure: they read the snapshot and nothing else, so the
// same filter applied to the same snapshots always selects the same
// set regardless of evaluation order.
type Predicate struct {
	Name  string
	Match func(WorktreeStatus) bool
}

// Filter is a conjunction of predicates. An empty filter matches
// everything; adding predicates only ever narrows the selection.
type Filter struct {
	preds []Predicate
}

// Add appends a predicate to the conjunction.
func (f *Filter) Add(p Predicate) { f.preds = append(f.preds, p) }

// Empty reports whether no predicates have been added.
func (f Filter) Empty() bool { return len(f.preds) == 0 }

// Matches reports whether the snapshot satisfies every predicate.
func (f Filter) Matches(ws WorktreeStatus) bool {
	for _, p := range f.preds {
		if !p.Match(ws) {
			return false
		}
	}
	return true
}

// Apply returns the snapshots matching the filter, preserving order.
func (f Filter) Apply(in []WorktreeStatus) []WorktreeStatus {
	if f.Empty() {
		return in
	}
	out := make([]WorktreeStatus, 0, len(in))
	for _, ws := range in {
		if f.Matches(ws) {
			out = append(out, ws)
		}
	}
	return out
}

// Describe names the active predicates, for diagnostics.
func (f Filter) Describe() string {
	if f.Empty() {
		return "all"
	}
	names := make([]string, len(f.preds))
	for i, p := range f.preds {
		names[i] = p.Name
	}
	return strings.Join(names, "+")
}

func localIs(name string, want LocalStatus) Predicate {
	return Predicate{Name: name, Match: func(ws WorktreeStatus) bool {
		return ws.Local == want
	}}
}

func remoteIs(name string, want RemoteKind) Predicate {
	return Predicate{Name: name, Match: func(ws WorktreeStatus) bool {
		return ws.Remote.Kind == want
	}}
}

// Clean matches worktrees with no uncommitted changes.
func Clean() Predicate { return localIs("clean", LocalClean) }

// Dirty matches worktrees with unstaged modifications.
func Dirty() Predicate { return localIs("dirty", LocalDirty) }

// Staged matches worktrees with staged, uncommitted changes.
func Staged() Predicate { return localIs("staged", LocalStaged) }

// Missing matches worktrees whose path no longer exists.
func Missing() Predicate { return localIs("missing", LocalMissing) }

// UpToDate matches branches level with their upstream.
func UpToDate() Predicate { return remoteIs("up-to-date", RemoteUpToDate) }

// Ahead matches branches with unpushed commits only.
func Ahead() Predicate { return remoteIs("ahead", RemoteAhead) }

// Behind matches branches with unpulled commits only.
func Behind() Predicate { return remoteIs("behind", RemoteBehind) }

// Diverged matches branches where both sides have exclusive commits.
func Diverged() Predicate { return remoteIs("diverged", RemoteDiverged) }

// NotPushed matches branches whose upstream ref does not exist.
func NotPushed() Predicate { return remoteIs("not-pushed", RemoteNotPushed) }

// NotTracking matches branches with no configured upstream.
func NotTracking() Predicate { return remoteIs("not-tracking", RemoteNotTracking) }

// OlderThan matches worktrees whose last activity is before cutoff.
// Unknown activity (zero time) passes: age cannot disqualify what it
// cannot measure.
func OlderThan(cutoff time.Time) Predicate {
	return Predicate{Name: "older-than", Match: func(ws WorktreeStatus) bool {
		return ws.LastActivity.IsZero() || ws.LastActivity.Before(cutoff)
	}}
}

// NewerThan matches worktrees whose last activity is at or after
// cutoff. Unknown activity passes here too.
func NewerThan(cutoff time.Time) Predicate {
	return Predicate{Name: "newer-than", Match: func(ws WorktreeStatus) bool {
		return ws.LastActivity.IsZero() || !ws.LastActivity.Before(cutoff)
	}}
}

// Active matches worktrees touched within window of now that still
// exist on disk.
func Active(now time.Time, window time.Duration) Predicate {
	cutoff := now.Add(-window)
	recent := NewerThan(cutoff)
	return Predicate{Name: "active", Match: func(ws WorktreeStatus) bool {
		return ws.Local != LocalMissing && recent.Match(ws)
	}}
}

// NeedsAttention matches worktrees requiring a user decision before
// they can be safely removed or merged: uncommitted work in any form,
// a diverged branch, or commits that exist nowhere but locally.
func NeedsAttention() Predicate {
	return Predicate{Name: "needs-attention", Match: func(ws WorktreeStatus) bool {
		switch {
		case ws.Local == LocalDirty, ws.Local == LocalStaged:
			return true
		case ws.Remote.Kind == RemoteDiverged, ws.Remote.Kind == RemoteNotPushed:
			return true
		default:
			return false
		}
	}}
}

// Stale matches clean worktrees untouched for longer than threshold
// before now. Clean is required so stale never suggests removing
// uncommitted work.
func Stale(now time.Time, threshold time.Duration) Predicate {
	cutoff := now.Add(-threshold)
	old := OlderThan(cutoff)
	return Predicate{Name: "stale", Match: func(ws WorktreeStatus) bool {
		return ws.Local == LocalClean && old.Match(ws)
	}}
}

// ParseAge converts a user-supplied age string to a duration. A bare
// number means days; the suffixes d, w and m (or days, weeks,
// months) select the unit, where a month counts as 30 days. The
// value must be a positive integer.
func ParseAge(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty age")
	}

	unit := 24 * time.Hour
	num := s
	switch {
	case strings.HasSuffix(s, "days"):
		num = s[:len(s)-4]
	case strings.HasSuffix(s, "weeks"):
		num = s[:len(s)-5]
		unit = 7 * 24 * time.Hour
	case strings.HasSuffix(s, "months"):
		num = s[:len(s)-6]
		unit = 30 * 24 * time.Hour
	default:
		switch s[len(s)-1] {
		case 'd':
			num = s[:len(s)-1]
		case 'w':
			num = s[:len(s)-1]
			unit = 7 * 24 * time.Hour
		case 'm':
			num = s[:len(s)-1]
			unit = 30 * 24 * time.Hour
		}
	}

	n, err := strconv.Atoi(num)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("invalid age %q: expected a positive number with optional d/w/m suffix", s)
	}
	return time.Duration(n) * unit, nil
}
