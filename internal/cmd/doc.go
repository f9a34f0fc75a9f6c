// Package cmd provides helpers for executing external commands with
// proper error handling.
//
// The helpers wrap [os/exec.Cmd] to capture stderr and fold it into the
// returned error, making subprocess failures readable for users. All
// entry points take a context for cancellation and log the executed
// command through the log package when verbose mode is enabled.
//
// # Design Notes
//
// wip shells out to the git CLI rather than using repository-parsing
// libraries. This keeps behavior identical to what the user sees on the
// command line and honors their git configuration (credential helpers,
// includes, SSH settings) without reimplementing it.
package cmd
