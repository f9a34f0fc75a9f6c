package ui

import (
	"fmt"

	"github.com/wipctl/wip/internal/status"
)

// LocalCell renders a local status for the table, optionally with an
// emoji icon in front of the label.
func LocalCell(s status.LocalStatus, emoji bool) string {
	if !emoji {
		return s.String()
	}
	var icon string
	switch s {
	case status.LocalClean:
		icon = "✅"
	case status.LocalDirty:
		icon = "✏️"
	case status.LocalStaged:
		icon = "📦"
	case status.LocalMissing:
		icon = "❌"
	default:
		icon = "❓"
	}
	return icon + " " + s.String()
}

// RemoteCell renders a remote status for the table. Counts are shown
// for the ahead/behind/diverged variants.
func RemoteCell(r status.RemoteStatus, emoji bool) string {
	if !emoji {
		return r.String()
	}
	switch r.Kind {
	case status.RemoteUpToDate:
		return "✅ up-to-date"
	case status.RemoteAhead:
		return fmt.Sprintf("⬆️ ahead %d", r.Ahead)
	case status.RemoteBehind:
		return fmt.Sprintf("⬇️ behind %d", r.Behind)
	case status.RemoteDiverged:
		return fmt.Sprintf("🔀 diverged +%d/-%d", r.Ahead, r.Behind)
	case status.RemoteNotPushed:
		return "📤 not-pushed"
	case status.RemoteNotTracking:
		return "🔗 not-tracking"
	default:
		return "❓ unknown"
	}
}

// Summary formats the post-table summary line: totals, the buckets
// that are non-zero, and the applied filter names.
func Summary(c status.Counters, filters string) string {
	out := fmt.Sprintf("%d worktrees", c.Total)
	buckets := []struct {
		n    int
		name string
	}{
		{c.Clean, "clean"},
		{c.Dirty, "dirty"},
		{c.Staged, "staged"},
		{c.Missing, "missing"},
		{c.LocalUnknown, "unknown"},
		{c.Ahead, "ahead"},
		{c.Behind, "behind"},
		{c.Diverged, "diverged"},
		{c.NotPushed, "not-pushed"},
		{c.NotTracking, "not-tracking"},
	}
	for _, b := range buckets {
		if b.n > 0 {
			out += fmt.Sprintf(", %d %s", b.n, b.name)
		}
	}
	if filters != "" && filters != "all" {
		out += fmt.Sprintf(" (filter: %s)", filters)
	}
	return out
}
