package main

import (
	"fmt"
	"sync"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/wipctl/wip/internal/git"
	"github.com/wipctl/wip/internal/log"
	"github.com/wipctl/wip/internal/status"
)

func newSyncCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "sync",
		Short:   "Fetch remotes of all repositories",
		GroupID: GroupUtility,
		Args:    cobra.NoArgs,
		Long: `Fetch all remotes of every repository under the root, pruning
remote-tracking refs whose branches were deleted on the server.

Remote statuses are computed from local refs, so they are only as
fresh as the last fetch.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			l := log.FromContext(ctx)

			repos, _, err := discoverRepos(ctx)
			if err != nil {
				return err
			}
			if len(repos) == 0 {
				l.Println("No repositories found")
				return nil
			}

			var (
				mu     sync.Mutex
				failed int
			)
			limit := status.DefaultConcurrency
			if cfg != nil && cfg.Concurrency > 0 {
				limit = cfg.Concurrency
			}
			g, gctx := errgroup.WithContext(ctx)
			g.SetLimit(limit)
			for _, repo := range repos {
				g.Go(func() error {
					if err := git.Fetch(gctx, repo.Dir); err != nil {
						mu.Lock()
						failed++
						mu.Unlock()
						l.Printf("%s: %v\n", repo.Name, err)
						return nil
					}
					l.Printf("%s: fetched\n", repo.Name)
					return nil
				})
			}
			if err := g.Wait(); err != nil {
				return err
			}

			if failed > 0 {
				return fmt.Errorf("%d of %d repositories failed to sync", failed, len(repos))
			}
			return nil
		},
	}
	return cmd
}
