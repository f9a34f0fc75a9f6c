// Package worktree implements the mutating operations: adding,
// removing and cleaning up worktrees. All mutations are serialized
// through a package-level mutex; the status engine stays read-only.
package worktree

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/wipctl/wip/internal/format"
	"github.com/wipctl/wip/internal/git"
	"github.com/wipctl/wip/internal/status"
)

// Sentinel errors for the mutation operations.
var (
	// ErrAlreadyExists reports that the branch already has a worktree
	// or the target path is taken.
	ErrAlreadyExists = errors.New("worktree already exists")
	// ErrNotFound reports that no worktree exists for the branch.
	ErrNotFound = errors.New("worktree not found")
	// ErrUnsafeRemoval reports uncommitted changes that removal
	// without force would destroy.
	ErrUnsafeRemoval = errors.New("worktree has uncommitted changes")
)

// mu serializes all mutations in the process. Concurrent status reads
// are unaffected.
var mu sync.Mutex

// ActionKind names what an operation did or would do.
type ActionKind string

const (
	ActionAdd    ActionKind = "add"
	ActionRemove ActionKind = "remove"
	// ActionPrune is the removal variant for worktrees whose directory
	// is already gone: only the stale registration is dropped.
	ActionPrune ActionKind = "prune"
)

// Action describes one performed or planned mutation.
type Action struct {
	Kind   ActionKind
	Repo   string
	Branch string
	Path   string
	DryRun bool
}

func (a Action) String() string {
	verb := string(a.Kind)
	if a.DryRun {
		verb = "would " + verb
	}
	return fmt.Sprintf("%s %s/%s (%s)", verb, a.Repo, a.Branch, a.Path)
}

// AddRequest parameterizes Add.
type AddRequest struct {
	Repo   status.Repo
	Branch string
	// Base is the starting point for the new branch. Empty means the
	// repository's primary branch.
	Base string
	// Reuse permits checking out an already existing branch instead of
	// failing with ErrAlreadyExists.
	Reuse  bool
	DryRun bool
}

// Add creates a worktree for a branch as a sibling directory of the
// repository, named <repo>-<branch> with path-hostile characters
// replaced. The branch is created from Base unless it already exists
// and Reuse is set.
func Add(ctx context.Context, req AddRequest) (Action, error) {
	mu.Lock()
	defer mu.Unlock()

	action := Action{
		Kind:   ActionAdd,
		Repo:   req.Repo.Name,
		Branch: req.Branch,
		DryRun: req.DryRun,
	}

	// Consult the live registration list rather than the discovery
	// snapshot: the snapshot excludes the primary checkout and may be
	// stale.
	infos, err := git.ListWorktrees(ctx, req.Repo.Dir)
	if err != nil {
		return action, err
	}
	for _, wt := range infos {
		if wt.Branch == req.Branch {
			return action, fmt.Errorf("branch %s/%s is checked out at %s: %w",
				req.Repo.Name, req.Branch, wt.Path, ErrAlreadyExists)
		}
	}

	name := req.Repo.Name + "-" + format.SanitizeForPath(req.Branch)
	action.Path = filepath.Join(filepath.Dir(req.Repo.Dir), name)
	if _, err := os.Stat(action.Path); err == nil {
		return action, fmt.Errorf("path %s is taken: %w", action.Path, ErrAlreadyExists)
	}

	branchExists := git.BranchExists(ctx, req.Repo.Dir, req.Branch)
	if branchExists && !req.Reuse {
		return action, fmt.Errorf("branch %s/%s already exists, pass --reuse to check it out: %w",
			req.Repo.Name, req.Branch, ErrAlreadyExists)
	}

	if req.DryRun {
		return action, nil
	}

	if branchExists {
		err = git.AddWorktree(ctx, req.Repo.Dir, action.Path, req.Branch, false, "")
	} else {
		base := req.Base
		if base == "" {
			base = git.PrimaryBranch(ctx, req.Repo.Dir)
		}
		err = git.AddWorktree(ctx, req.Repo.Dir, action.Path, req.Branch, true, base)
	}
	if err != nil {
		return action, err
	}
	return action, nil
}

// RemoveRequest parameterizes Remove.
type RemoveRequest struct {
	Repo   status.Repo
	Branch string
	// Force removes despite uncommitted changes.
	Force  bool
	DryRun bool
}

// Remove deletes the worktree of a branch. Dirty or staged worktrees
// are refused with ErrUnsafeRemoval unless Force is set. A worktree
// whose directory is already gone is always removable: only the stale
// registration is pruned, no work can be lost.
func Remove(ctx context.Context, f status.Facts, req RemoveRequest) (Action, error) {
	mu.Lock()
	defer mu.Unlock()

	action := Action{
		Kind:   ActionRemove,
		Repo:   req.Repo.Name,
		Branch: req.Branch,
		DryRun: req.DryRun,
	}

	var entry *status.Entry
	for i, wt := range req.Repo.Worktrees {
		if wt.Branch == req.Branch {
			entry = &req.Repo.Worktrees[i]
			break
		}
	}
	if entry == nil {
		return action, fmt.Errorf("no worktree for %s/%s: %w", req.Repo.Name, req.Branch, ErrNotFound)
	}
	action.Path = entry.Path

	local := status.DeriveLocal(ctx, f, entry.Path)
	switch local {
	case status.LocalMissing:
		action.Kind = ActionPrune
	case status.LocalDirty, status.LocalStaged:
		if !req.Force {
			return action, fmt.Errorf("%s/%s is %s, pass --force to discard: %w",
				req.Repo.Name, req.Branch, local, ErrUnsafeRemoval)
		}
	}

	if req.DryRun {
		return action, nil
	}

	if action.Kind == ActionPrune {
		if err := git.PruneWorktrees(ctx, req.Repo.Dir); err != nil {
			return action, err
		}
		return action, nil
	}
	if err := git.RemoveWorktree(ctx, req.Repo.Dir, entry.Path, req.Force); err != nil {
		return action, err
	}
	return action, nil
}
