package main

import (
	"strings"

	"github.com/spf13/cobra"
)

// completeRepos provides repository name completion from discovery.
func completeRepos(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	repos, _, err := discoverRepos(cmd.Context())
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	var names []string
	for _, r := range repos {
		if strings.HasPrefix(r.Name, toComplete) {
			names = append(names, r.Name)
		}
	}
	return names, cobra.ShellCompDirectiveNoFileComp
}

// completeRepoBranches completes branch names of the repo named in the
// first positional argument.
func completeRepoBranches(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) == 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	repo, err := findRepo(cmd.Context(), args[0])
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	var branches []string
	for _, wt := range repo.Worktrees {
		if strings.HasPrefix(wt.Branch, toComplete) {
			branches = append(branches, wt.Branch)
		}
	}
	return branches, cobra.ShellCompDirectiveNoFileComp
}

// completeRepoThenBranch drives two-argument <repo> <branch> commands.
func completeRepoThenBranch(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	switch len(args) {
	case 0:
		return completeRepos(cmd, args, toComplete)
	case 1:
		return completeRepoBranches(cmd, args, toComplete)
	default:
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
}
