//go:build integration

package main

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/wipctl/wip/internal/config"
	"github.com/wipctl/wip/internal/log"
	"github.com/wipctl/wip/internal/output"
)

// gitRun runs a git command in dir, failing the test on error.
func gitRun(t *testing.T, dir string, args ...string) {
	t.Helper()
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	if out, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("git %v: %v\n%s", args, err, out)
	}
}

// setupFleet builds a root directory containing one bare repository
// "alpha" with a linked worktree per branch. Returns the root.
func setupFleet(t *testing.T, branches ...string) string {
	t.Helper()
	root, err := filepath.EvalSymlinks(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	seed := filepath.Join(root, ".seed")
	if err := os.MkdirAll(seed, 0755); err != nil {
		t.Fatal(err)
	}
	gitRun(t, root, "init", "-b", "main", seed)
	gitRun(t, seed, "config", "user.email", "test@test.com")
	gitRun(t, seed, "config", "user.name", "Test User")
	gitRun(t, seed, "config", "commit.gpgsign", "false")
	if err := os.WriteFile(filepath.Join(seed, "README.md"), []byte("# test\n"), 0644); err != nil {
		t.Fatal(err)
	}
	gitRun(t, seed, "add", "README.md")
	gitRun(t, seed, "commit", "-m", "Initial commit")

	bare := filepath.Join(root, "alpha")
	gitRun(t, root, "clone", "--bare", seed, bare)
	gitRun(t, bare, "config", "user.email", "test@test.com")
	gitRun(t, bare, "config", "user.name", "Test User")
	gitRun(t, bare, "config", "commit.gpgsign", "false")

	for _, branch := range branches {
		gitRun(t, bare, "worktree", "add", filepath.Join(root, "alpha-"+branch), "-b", branch, "main")
	}
	return root
}

// useRoot points the command globals at root for the duration of the
// test. Commands read the root through resolveRoot, so tests using
// this helper must not run in parallel.
func useRoot(t *testing.T, root string) {
	t.Helper()
	prevFlag, prevCfg := rootFlag, cfg
	rootFlag = root
	defaults := config.Default()
	cfg = &defaults
	t.Cleanup(func() {
		rootFlag, cfg = prevFlag, prevCfg
	})
}

// testContext returns a context carrying a quiet logger and a printer
// writing into the returned buffer.
func testContext(t *testing.T) (context.Context, *bytes.Buffer) {
	t.Helper()
	var out bytes.Buffer
	ctx := log.WithLogger(context.Background(), log.New(os.Stderr, false, true))
	ctx = output.WithPrinter(ctx, &out)
	return ctx, &out
}
