package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sahilm/fuzzy"

	"github.com/wipctl/wip/internal/config"
	"github.com/wipctl/wip/internal/git"
	"github.com/wipctl/wip/internal/log"
	"github.com/wipctl/wip/internal/status"
)

// resolveRoot determines the worktree root directory. Precedence:
// --path flag, then WIP_ROOT, then the config file, then the current
// working directory. The engine itself never reads ambient state; this
// is the single place the root is decided.
func resolveRoot() (string, error) {
	root := rootFlag
	if root == "" {
		root = os.Getenv("WIP_ROOT")
	}
	if root == "" && cfg != nil {
		root = cfg.Root
	}
	if root == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("failed to get working directory: %w", err)
		}
		return wd, nil
	}
	expanded, err := config.ExpandPath(root)
	if err != nil {
		return "", err
	}
	return filepath.Abs(expanded)
}

// discoverRepos runs discovery under the resolved root, logging any
// per-repository warnings.
func discoverRepos(ctx context.Context) ([]status.Repo, string, error) {
	root, err := resolveRoot()
	if err != nil {
		return nil, "", err
	}
	repos, warnings, err := git.Discover(ctx, root)
	if err != nil {
		return nil, root, err
	}
	l := log.FromContext(ctx)
	for _, w := range warnings {
		l.Printf("Warning: %s\n", w)
	}
	return repos, root, nil
}

// findRepo resolves a repository by name, decorating not-found errors
// with a fuzzy "did you mean" suggestion.
func findRepo(ctx context.Context, name string) (status.Repo, error) {
	root, err := resolveRoot()
	if err != nil {
		return status.Repo{}, err
	}
	repo, names, err := git.FindRepo(ctx, root, name)
	if err != nil {
		if s := suggest(name, names); s != "" {
			return status.Repo{}, fmt.Errorf("%w (did you mean %q?)", err, s)
		}
		return status.Repo{}, err
	}
	return repo, nil
}

// suggest returns the closest fuzzy match for input among candidates,
// or "" when nothing comes close.
func suggest(input string, candidates []string) string {
	matches := fuzzy.Find(input, candidates)
	if len(matches) == 0 {
		return ""
	}
	return matches[0].Str
}

// primaryOverride returns the configured primary branch name, or ""
// to let each repository's own origin/HEAD decide.
func primaryOverride() string {
	if cfg != nil {
		return cfg.PrimaryBranch
	}
	return ""
}

// collector builds the status collector with the configured
// concurrency bound.
func collector() status.Collector {
	limit := 0
	if cfg != nil {
		limit = cfg.Concurrency
	}
	return status.Collector{Facts: git.Facts{}, Limit: limit}
}
