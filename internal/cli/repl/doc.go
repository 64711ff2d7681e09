// Package repl provides interactive mode for keva-cli.
//
// This package implements the Read-Eval-Print loop for interactive
// sessions:
//
//   - repl.go: the prompt loop and command dispatch
//   - parse.go: quote-aware splitting of input lines
//   - completer.go: prefix completion backing the help command
//   - history.go: command history persistence
//
// The loop itself knows nothing about the wire protocol; parsed
// commands go through the Handler the caller supplies, which keeps
// the package testable without a server.
package repl
