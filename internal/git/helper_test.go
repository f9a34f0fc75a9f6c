package git

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

// resolveTempDir creates a temp directory and resolves macOS symlinks.
func resolveTempDir(t *testing.T) string {
	t.Helper()
	tmpDir := t.TempDir()
	resolved, err := filepath.EvalSymlinks(tmpDir)
	if err != nil {
		t.Fatalf("failed to resolve symlinks for %s: %v", tmpDir, err)
	}
	return resolved
}

// configureTestRepo sets git user config and disables GPG signing.
func configureTestRepo(t *testing.T, repoPath string) {
	t.Helper()
	ctx := context.Background()
	for _, args := range [][]string{
		{"config", "user.email", "test@test.com"},
		{"config", "user.name", "Test User"},
		{"config", "commit.gpgsign", "false"},
	} {
		if err := runGit(ctx, repoPath, args...); err != nil {
			t.Fatalf("failed to run git %v: %v", args, err)
		}
	}
}

// setupTestRepo creates a git repo with main branch, initial commit,
// and test git config. Returns the resolved repo path.
func setupTestRepo(t *testing.T) string {
	t.Helper()
	tmpDir := resolveTempDir(t)
	repoPath := filepath.Join(tmpDir, "test-repo")

	ctx := context.Background()
	if err := runGit(ctx, "", "init", "-b", "main", repoPath); err != nil {
		t.Fatalf("failed to init repo: %v", err)
	}
	configureTestRepo(t, repoPath)
	commitFile(t, repoPath, "README.md", "# test\n", "Initial commit")
	return repoPath
}

// setupTestRepoWithOrigin creates a repo cloned from a local bare
// origin, so branches have remote-tracking refs and upstreams.
// Returns (clonePath, originPath).
func setupTestRepoWithOrigin(t *testing.T) (string, string) {
	t.Helper()
	tmpDir := resolveTempDir(t)
	ctx := context.Background()

	seed := filepath.Join(tmpDir, "seed")
	if err := runGit(ctx, "", "init", "-b", "main", seed); err != nil {
		t.Fatalf("failed to init seed repo: %v", err)
	}
	configureTestRepo(t, seed)
	commitFile(t, seed, "README.md", "# test\n", "Initial commit")

	origin := filepath.Join(tmpDir, "origin.git")
	if err := runGit(ctx, "", "clone", "--bare", seed, origin); err != nil {
		t.Fatalf("failed to create origin: %v", err)
	}

	clone := filepath.Join(tmpDir, "clone")
	if err := runGit(ctx, "", "clone", origin, clone); err != nil {
		t.Fatalf("failed to clone: %v", err)
	}
	configureTestRepo(t, clone)
	return clone, origin
}

// commitFile writes content to name inside repoPath and commits it.
func commitFile(t *testing.T, repoPath, name, content, message string) {
	t.Helper()
	ctx := context.Background()
	path := filepath.Join(repoPath, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	if err := runGit(ctx, repoPath, "add", name); err != nil {
		t.Fatalf("failed to add %s: %v", name, err)
	}
	if err := runGit(ctx, repoPath, "commit", "-m", message); err != nil {
		t.Fatalf("failed to commit: %v", err)
	}
}
