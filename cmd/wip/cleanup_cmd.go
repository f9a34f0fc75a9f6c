package main

import (
	"fmt"
	"os"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/wipctl/wip/internal/format"
	"github.com/wipctl/wip/internal/git"
	"github.com/wipctl/wip/internal/log"
	"github.com/wipctl/wip/internal/output"
	"github.com/wipctl/wip/internal/status"
	"github.com/wipctl/wip/internal/ui"
	"github.com/wipctl/wip/internal/ui/prompt"
	"github.com/wipctl/wip/internal/worktree"
)

func newCleanupCmd() *cobra.Command {
	var (
		force     bool
		dryRun    bool
		olderThan string
	)

	cmd := &cobra.Command{
		Use:     "cleanup",
		Short:   "Remove worktrees whose branches are merged",
		GroupID: GroupCore,
		Args:    cobra.NoArgs,
		Long: `Remove worktrees that are safe to delete: clean checkouts whose
branch tip is fully merged into the repository's primary branch.

Unmerged branches and worktrees with uncommitted changes are never
touched, regardless of flags or age.`,
		Example: `  wip cleanup                   # Confirm, then remove merged worktrees
  wip cleanup --dry-run         # Show what would be removed
  wip cleanup --older-than 2w   # Only merged worktrees idle for 2 weeks
  wip cleanup --force           # Skip the confirmation prompt`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			l := log.FromContext(ctx)
			out := output.FromContext(ctx)

			var minAge time.Duration
			if olderThan != "" {
				d, err := status.ParseAge(olderThan)
				if err != nil {
					return err
				}
				minAge = d
			}

			repos, _, err := discoverRepos(ctx)
			if err != nil {
				return err
			}

			candidates, err := worktree.CleanupCandidates(ctx, git.Facts{}, repos, time.Now(), worktree.CleanupOptions{
				OlderThan: minAge,
				Primary:   primaryOverride(),
			})
			if err != nil {
				return err
			}
			if len(candidates) == 0 {
				out.Println("Nothing to clean up")
				return nil
			}

			headers := []string{"REPO", "BRANCH", "MERGED INTO", "LAST ACTIVITY"}
			var rows [][]string
			for _, c := range candidates {
				rows = append(rows, []string{
					c.Status.Repo,
					c.Status.Branch,
					c.Primary,
					format.RelativeTime(c.Status.LastActivity),
				})
			}
			out.Print(ui.RenderTable(headers, rows))

			if dryRun {
				l.Printf("Would remove %d worktrees\n", len(candidates))
				return nil
			}

			if !force && isatty.IsTerminal(os.Stdin.Fd()) {
				result, err := prompt.Confirm(fmt.Sprintf("Remove these %d worktrees?", len(candidates)))
				if err != nil {
					return err
				}
				if !result.Confirmed {
					l.Println("Aborted")
					return nil
				}
			}

			removed := 0
			for _, r := range worktree.Cleanup(ctx, git.Facts{}, candidates, false) {
				if r.Err != nil {
					l.Printf("Warning: %s/%s: %v\n", r.Action.Repo, r.Action.Branch, r.Err)
					continue
				}
				removed++
			}
			l.Printf("Removed %d of %d worktrees\n", removed, len(candidates))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Skip the confirmation prompt")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Show candidates without removing anything")
	cmd.Flags().StringVar(&olderThan, "older-than", "", "Only candidates idle for at least AGE (e.g. 30, 2w, 3m)")

	return cmd
}
