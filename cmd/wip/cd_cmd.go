package main

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/wipctl/wip/internal/log"
	"github.com/wipctl/wip/internal/output"
)

func newCdCmd() *cobra.Command {
	var copyToClipboard bool

	cmd := &cobra.Command{
		Use:     "cd <branch> | <repo> <branch>",
		Short:   "Print a worktree path for shell scripting",
		GroupID: GroupUtility,
		Args:    cobra.RangeArgs(1, 2),
		Long: `Print the path of a worktree for shell command substitution.

With a single argument the branch is searched across all repositories;
the lookup fails when the name is ambiguous. Two arguments name the
repository and branch exactly.`,
		Example: `  cd $(wip cd feature-login)          # search all repos
  cd $(wip cd backend feature-login)  # exact
  wip cd --copy backend feature-login # copy path to clipboard`,
		ValidArgsFunction: completeRepoThenBranch,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := output.FromContext(ctx)

			var path string
			if len(args) == 2 {
				repo, err := findRepo(ctx, args[0])
				if err != nil {
					return err
				}
				for _, wt := range repo.Worktrees {
					if wt.Branch == args[1] {
						path = wt.Path
						break
					}
				}
				if path == "" {
					return fmt.Errorf("no worktree for %s/%s", repo.Name, args[1])
				}
			} else {
				repos, _, err := discoverRepos(ctx)
				if err != nil {
					return err
				}
				var matches []string
				for _, repo := range repos {
					for _, wt := range repo.Worktrees {
						if wt.Branch == args[0] {
							matches = append(matches, repo.Name)
							path = wt.Path
						}
					}
				}
				if len(matches) == 0 {
					return fmt.Errorf("no worktree for branch %q", args[0])
				}
				if len(matches) > 1 {
					return fmt.Errorf("branch %q is ambiguous (in %s); use 'wip cd <repo> %s'",
						args[0], strings.Join(matches, ", "), args[0])
				}
			}

			if copyToClipboard {
				if err := clipboard.WriteAll(path); err != nil {
					return fmt.Errorf("failed to copy to clipboard: %w", err)
				}
				log.FromContext(ctx).Printf("Copied %s\n", path)
				return nil
			}
			out.Println(path)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&copyToClipboard, "copy", "c", false, "Copy the path to the clipboard instead of printing")

	return cmd
}
