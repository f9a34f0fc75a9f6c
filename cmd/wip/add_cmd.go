package main

import (
	"github.com/spf13/cobra"

	"github.com/wipctl/wip/internal/log"
	"github.com/wipctl/wip/internal/output"
	"github.com/wipctl/wip/internal/worktree"
)

func newAddCmd() *cobra.Command {
	var (
		base   string
		reuse  bool
		dryRun bool
	)

	cmd := &cobra.Command{
		Use:     "add <repo> <branch>",
		Short:   "Create a worktree for a new or existing branch",
		GroupID: GroupCore,
		Args:    cobra.ExactArgs(2),
		Long: `Create a worktree for a branch of a repository under the root.

The worktree is created as a sibling directory of the repository named
<repo>-<branch>. A new branch starts from --base, defaulting to the
repository's primary branch. Pass --reuse to check out a branch that
already exists.`,
		Example: `  wip add backend feature-login
  wip add backend hotfix --base v2.1
  wip add backend parked-branch --reuse
  wip add backend feature-login --dry-run`,
		ValidArgsFunction: completeRepoThenBranch,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			l := log.FromContext(ctx)
			out := output.FromContext(ctx)

			repo, err := findRepo(ctx, args[0])
			if err != nil {
				return err
			}

			if base == "" {
				base = primaryOverride()
			}
			action, err := worktree.Add(ctx, worktree.AddRequest{
				Repo:   repo,
				Branch: args[1],
				Base:   base,
				Reuse:  reuse,
				DryRun: dryRun,
			})
			if err != nil {
				return err
			}

			if dryRun {
				l.Printf("Would create %s/%s at %s\n", action.Repo, action.Branch, action.Path)
				return nil
			}
			l.Printf("Created %s/%s\n", action.Repo, action.Branch)
			out.Println(action.Path)
			return nil
		},
	}

	cmd.Flags().StringVar(&base, "base", "", "Starting point for a new branch (default: primary branch)")
	cmd.Flags().BoolVar(&reuse, "reuse", false, "Check out an existing branch instead of failing")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Report the planned action without creating anything")

	return cmd
}
