package main

import (
	"encoding/json"
	"os"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/wipctl/wip/internal/format"
	"github.com/wipctl/wip/internal/git"
	"github.com/wipctl/wip/internal/output"
	"github.com/wipctl/wip/internal/status"
	"github.com/wipctl/wip/internal/ui"
	"github.com/wipctl/wip/internal/worktree"
)

// worktreeDisplay is the JSON shape of one status snapshot.
type worktreeDisplay struct {
	Repo         string    `json:"repo"`
	Branch       string    `json:"branch"`
	Path         string    `json:"path"`
	Local        string    `json:"local"`
	Remote       string    `json:"remote"`
	Ahead        int       `json:"ahead,omitempty"`
	Behind       int       `json:"behind,omitempty"`
	LastActivity time.Time `json:"last_activity,omitzero"`
}

func newListCmd() *cobra.Command {
	var (
		jsonOutput bool
		noEmoji    bool

		// Preset filters
		active          bool
		needsAttention  bool
		stale           bool
		pruneCandidates bool

		// Primitive filters
		clean       bool
		dirty       bool
		staged      bool
		missing     bool
		upToDate    bool
		ahead       bool
		behind      bool
		diverged    bool
		notPushed   bool
		notTracking bool

		olderThan string
		newerThan string
	)

	cmd := &cobra.Command{
		Use:     "list",
		Short:   "List worktrees with their status",
		Aliases: []string{"ls"},
		GroupID: GroupCore,
		Args:    cobra.NoArgs,
		Long: `List the status of every worktree under the root.

All filter flags combine with logical AND: each additional flag narrows
the selection. Contradictory combinations yield an empty list.`,
		Example: `  wip list                       # All worktrees
  wip list --dirty               # Uncommitted, unstaged changes only
  wip list --needs-attention     # Work requiring a decision
  wip list --stale               # Clean and untouched for 30+ days
  wip list --clean --older-than 2w
  wip list --json                # Machine-readable output`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := output.FromContext(ctx)
			now := time.Now()

			var filter status.Filter
			for _, p := range []struct {
				set  bool
				pred status.Predicate
			}{
				{clean, status.Clean()},
				{dirty, status.Dirty()},
				{staged, status.Staged()},
				{missing, status.Missing()},
				{upToDate, status.UpToDate()},
				{ahead, status.Ahead()},
				{behind, status.Behind()},
				{diverged, status.Diverged()},
				{notPushed, status.NotPushed()},
				{notTracking, status.NotTracking()},
				{active, status.Active(now, activeWindow())},
				{needsAttention, status.NeedsAttention()},
				{stale, status.Stale(now, staleThreshold())},
			} {
				if p.set {
					filter.Add(p.pred)
				}
			}
			if olderThan != "" {
				d, err := status.ParseAge(olderThan)
				if err != nil {
					return err
				}
				filter.Add(status.OlderThan(now.Add(-d)))
			}
			if newerThan != "" {
				d, err := status.ParseAge(newerThan)
				if err != nil {
					return err
				}
				filter.Add(status.NewerThan(now.Add(-d)))
			}

			repos, _, err := discoverRepos(ctx)
			if err != nil {
				return err
			}

			statuses, err := collector().Collect(ctx, repos)
			if err != nil {
				return err
			}
			statuses = filter.Apply(statuses)

			if pruneCandidates {
				statuses, err = keepPruneCandidates(cmd, statuses, repos)
				if err != nil {
					return err
				}
			}

			if jsonOutput {
				display := make([]worktreeDisplay, 0, len(statuses))
				for _, ws := range statuses {
					display = append(display, worktreeDisplay{
						Repo:         ws.Repo,
						Branch:       ws.Branch,
						Path:         ws.Path,
						Local:        ws.Local.String(),
						Remote:       ws.Remote.Kind.String(),
						Ahead:        ws.Remote.Ahead,
						Behind:       ws.Remote.Behind,
						LastActivity: ws.LastActivity,
					})
				}
				enc := json.NewEncoder(out.Writer())
				enc.SetIndent("", "  ")
				return enc.Encode(display)
			}

			if len(statuses) == 0 {
				out.Println("No worktrees found")
				return nil
			}

			emoji := useEmoji(noEmoji)
			headers := []string{"REPO", "BRANCH", "LOCAL", "REMOTE", "LAST ACTIVITY"}
			var rows [][]string
			for _, ws := range statuses {
				rows = append(rows, []string{
					ws.Repo,
					ws.Branch,
					ui.LocalCell(ws.Local, emoji),
					ui.RemoteCell(ws.Remote, emoji),
					format.RelativeTime(ws.LastActivity),
				})
			}
			out.Print(ui.RenderTable(headers, rows))
			out.Println(ui.Summary(status.Count(statuses), filter.Describe()))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	cmd.Flags().BoolVar(&noEmoji, "no-emoji", false, "Plain text status labels")

	cmd.Flags().BoolVar(&active, "active", false, "Touched within the active window and present on disk")
	cmd.Flags().BoolVar(&needsAttention, "needs-attention", false, "Dirty, staged, diverged, or not pushed")
	cmd.Flags().BoolVar(&stale, "stale", false, "Clean and untouched beyond the stale threshold")
	cmd.Flags().BoolVar(&pruneCandidates, "prune-candidates", false, "Clean and fully merged into the primary branch")

	cmd.Flags().BoolVar(&clean, "clean", false, "No uncommitted changes")
	cmd.Flags().BoolVar(&dirty, "dirty", false, "Unstaged changes")
	cmd.Flags().BoolVar(&staged, "staged", false, "Staged, uncommitted changes")
	cmd.Flags().BoolVar(&missing, "missing", false, "Directory gone from disk")
	cmd.Flags().BoolVar(&upToDate, "up-to-date", false, "Level with upstream")
	cmd.Flags().BoolVar(&ahead, "ahead", false, "Unpushed commits")
	cmd.Flags().BoolVar(&behind, "behind", false, "Unpulled upstream commits")
	cmd.Flags().BoolVar(&diverged, "diverged", false, "Both sides have exclusive commits")
	cmd.Flags().BoolVar(&notPushed, "not-pushed", false, "Upstream branch does not exist")
	cmd.Flags().BoolVar(&notTracking, "not-tracking", false, "No upstream configured")

	cmd.Flags().StringVar(&olderThan, "older-than", "", "Last activity before AGE ago (e.g. 30, 30d, 2w, 3m)")
	cmd.Flags().StringVar(&newerThan, "newer-than", "", "Last activity within AGE (e.g. 7, 7d, 1w)")

	return cmd
}

// keepPruneCandidates narrows statuses to worktrees the cleanup
// command would remove.
func keepPruneCandidates(cmd *cobra.Command, statuses []status.WorktreeStatus, repos []status.Repo) ([]status.WorktreeStatus, error) {
	candidates, err := worktree.CleanupCandidates(cmd.Context(), git.Facts{}, repos, time.Now(),
		worktree.CleanupOptions{Primary: primaryOverride()})
	if err != nil {
		return nil, err
	}
	keep := make(map[string]bool, len(candidates))
	for _, c := range candidates {
		keep[c.Status.Repo+"\x00"+c.Status.Branch] = true
	}
	var out []status.WorktreeStatus
	for _, ws := range statuses {
		if keep[ws.Repo+"\x00"+ws.Branch] {
			out = append(out, ws)
		}
	}
	return out, nil
}

func activeWindow() time.Duration {
	days := 7
	if cfg != nil && cfg.ActiveDays > 0 {
		days = cfg.ActiveDays
	}
	return time.Duration(days) * 24 * time.Hour
}

func staleThreshold() time.Duration {
	days := 30
	if cfg != nil && cfg.StaleDays > 0 {
		days = cfg.StaleDays
	}
	return time.Duration(days) * 24 * time.Hour
}

// useEmoji decides whether status cells get emoji icons: disabled by
// flag, config, or a non-terminal stdout.
func useEmoji(noEmojiFlag bool) bool {
	if noEmojiFlag {
		return false
	}
	if cfg != nil && cfg.NoEmoji {
		return false
	}
	return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
}
