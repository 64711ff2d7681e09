// Package repl provides the interactive mode for keva-cli.
package repl

import "strings"

// Completer provides command completion for the REPL.
type Completer struct {
	commands []string
}

// NewCompleter creates a Completer seeded with the Keva commands.
func NewCompleter() *Completer {
	return &Completer{
		commands: []string{
			"get", "set", "del", "append", "exists",
			"keys", "flushall", "ping",
			"help", "exit", "quit",
		},
	}
}

// Commands returns every known command.
func (c *Completer) Commands() []string {
	return c.commands
}

// Complete returns completion suggestions for the given prefix.
func (c *Completer) Complete(prefix string) []string {
	var suggestions []string
	for _, cmd := range c.commands {
		if strings.HasPrefix(cmd, prefix) {
			suggestions = append(suggestions, cmd)
		}
	}
	return suggestions
}
