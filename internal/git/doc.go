// Package git talks to repositories by shelling out to the git CLI.
//
// It provides the production implementation of the status engine's
// fact interface plus discovery of bare repositories and their linked
// worktrees under a root directory. Shelling out keeps behavior
// identical to whatever git version the user runs and inherits their
// config (credentials, includes, core settings) for free; the cost of
// a subprocess per question is acceptable because calls run inside a
// bounded worker pool.
//
// Every function takes an explicit repository or worktree path. The
// package never reads the process working directory.
package git
