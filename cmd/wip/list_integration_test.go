//go:build integration

package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// TestList_Table lists a fleet with one clean and one dirty worktree.
//
// Expected: both rows appear, the summary counts them, and emoji are
// suppressed because stdout is a buffer.
func TestList_Table(t *testing.T) {
	root := setupFleet(t, "feature", "bugfix")
	useRoot(t, root)

	if err := os.WriteFile(filepath.Join(root, "alpha-bugfix", "scratch.txt"), []byte("x\n"), 0644); err != nil {
		t.Fatal(err)
	}

	ctx, out := testContext(t)
	cmd := newListCmd()
	cmd.SetContext(ctx)
	cmd.SetArgs([]string{"--no-emoji"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("list failed: %v", err)
	}

	got := out.String()
	for _, want := range []string{"alpha", "feature", "bugfix", "dirty", "clean", "2 worktrees"} {
		if !strings.Contains(got, want) {
			t.Errorf("list output missing %q:\n%s", want, got)
		}
	}
}

// TestList_DirtyFilter narrows to dirty worktrees only.
func TestList_DirtyFilter(t *testing.T) {
	root := setupFleet(t, "feature", "bugfix")
	useRoot(t, root)

	if err := os.WriteFile(filepath.Join(root, "alpha-bugfix", "scratch.txt"), []byte("x\n"), 0644); err != nil {
		t.Fatal(err)
	}

	ctx, out := testContext(t)
	cmd := newListCmd()
	cmd.SetContext(ctx)
	cmd.SetArgs([]string{"--dirty", "--no-emoji"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("list failed: %v", err)
	}

	got := out.String()
	if !strings.Contains(got, "bugfix") {
		t.Errorf("dirty worktree missing:\n%s", got)
	}
	if strings.Contains(got, "feature") {
		t.Errorf("clean worktree should be filtered out:\n%s", got)
	}
}

// TestList_JSON checks the machine-readable shape.
func TestList_JSON(t *testing.T) {
	root := setupFleet(t, "feature")
	useRoot(t, root)

	ctx, out := testContext(t)
	cmd := newListCmd()
	cmd.SetContext(ctx)
	cmd.SetArgs([]string{"--json"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("list failed: %v", err)
	}

	var rows []map[string]any
	if err := json.Unmarshal(out.Bytes(), &rows); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, out.String())
	}
	if len(rows) != 1 {
		t.Fatalf("got %d rows, want 1", len(rows))
	}
	if rows[0]["repo"] != "alpha" || rows[0]["branch"] != "feature" {
		t.Errorf("row = %v", rows[0])
	}
	if rows[0]["local"] != "clean" {
		t.Errorf("local = %v, want clean", rows[0]["local"])
	}
	// Branch created from a local bare clone has no upstream.
	if rows[0]["remote"] != "not-tracking" {
		t.Errorf("remote = %v, want not-tracking", rows[0]["remote"])
	}
}

// TestList_Empty prints a friendly message when nothing matches.
func TestList_Empty(t *testing.T) {
	root := setupFleet(t)
	useRoot(t, root)

	ctx, out := testContext(t)
	cmd := newListCmd()
	cmd.SetContext(ctx)
	cmd.SetArgs([]string{})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if !strings.Contains(out.String(), "No worktrees found") {
		t.Errorf("output = %q", out.String())
	}
}

// TestList_ContradictoryFilters legally yields the empty set.
func TestList_ContradictoryFilters(t *testing.T) {
	root := setupFleet(t, "feature")
	useRoot(t, root)

	ctx, out := testContext(t)
	cmd := newListCmd()
	cmd.SetContext(ctx)
	cmd.SetArgs([]string{"--clean", "--dirty"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if !strings.Contains(out.String(), "No worktrees found") {
		t.Errorf("output = %q", out.String())
	}
}
