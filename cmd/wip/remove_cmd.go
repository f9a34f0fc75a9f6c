package main

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/wipctl/wip/internal/git"
	"github.com/wipctl/wip/internal/log"
	"github.com/wipctl/wip/internal/ui/prompt"
	"github.com/wipctl/wip/internal/worktree"
)

func newRemoveCmd() *cobra.Command {
	var (
		force  bool
		dryRun bool
	)

	cmd := &cobra.Command{
		Use:     "remove <repo> <branch>",
		Short:   "Remove a worktree",
		Aliases: []string{"rm"},
		GroupID: GroupCore,
		Args:    cobra.ExactArgs(2),
		Long: `Remove the worktree of a branch.

Worktrees with uncommitted changes are refused unless --force is set.
A worktree whose directory is already gone is always removable; only
the stale registration is pruned.`,
		Example: `  wip remove backend feature-login
  wip remove backend feature-login --force
  wip remove backend feature-login --dry-run`,
		ValidArgsFunction: completeRepoThenBranch,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			l := log.FromContext(ctx)

			repo, err := findRepo(ctx, args[0])
			if err != nil {
				return err
			}

			if !force && !dryRun && isatty.IsTerminal(os.Stdin.Fd()) {
				result, err := prompt.Confirm(fmt.Sprintf("Remove worktree %s/%s?", repo.Name, args[1]))
				if err != nil {
					return err
				}
				if !result.Confirmed {
					l.Println("Aborted")
					return nil
				}
			}

			action, err := worktree.Remove(ctx, git.Facts{}, worktree.RemoveRequest{
				Repo:   repo,
				Branch: args[1],
				Force:  force,
				DryRun: dryRun,
			})
			if err != nil {
				return err
			}

			if dryRun {
				l.Printf("Would remove %s/%s (%s)\n", action.Repo, action.Branch, action.Path)
				return nil
			}
			if action.Kind == worktree.ActionPrune {
				l.Printf("Pruned stale worktree %s/%s\n", action.Repo, action.Branch)
				return nil
			}
			l.Printf("Removed %s/%s\n", action.Repo, action.Branch)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Remove despite uncommitted changes, skip confirmation")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Report the planned action without removing anything")

	return cmd
}
