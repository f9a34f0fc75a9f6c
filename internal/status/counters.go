package status

// Counters aggregates how many worktrees fall into each status bucket.
// Local and remote dimensions are counted independently, so each sums
// to Total.
type Counters struct {
	Total int

	Clean        int
	Dirty        int
	Staged       int
	Missing      int
	LocalUnknown int

	UpToDate      int
	Ahead         int
	Behind        int
	Diverged      int
	NotPushed     int
	NotTracking   int
	RemoteUnknown int
}

// Count tallies the snapshots into per-status buckets.
func Count(statuses []WorktreeStatus) Counters {
	var c Counters
	c.Total = len(statuses)
	for _, ws := range statuses {
		switch ws.Local {
		case LocalClean:
			c.Clean++
		case LocalDirty:
			c.Dirty++
		case LocalStaged:
			c.Staged++
		case LocalMissing:
			c.Missing++
		default:
			c.LocalUnknown++
		}
		switch ws.Remote.Kind {
		case RemoteUpToDate:
			c.UpToDate++
		case RemoteAhead:
			c.Ahead++
		case RemoteBehind:
			c.Behind++
		case RemoteDiverged:
			c.Diverged++
		case RemoteNotPushed:
			c.NotPushed++
		case RemoteNotTracking:
			c.NotTracking++
		default:
			c.RemoteUnknown++
		}
	}
	return c
}

// NeedsAttention reports how many counted worktrees demand a user
// decision: uncommitted work, diverged branches, or local-only commits.
func (c Counters) NeedsAttention() int {
	return c.Dirty + c.Staged + c.Diverged + c.NotPushed
}
