// Package repl provides the interactive mode for keva-cli.
package repl

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// Handler executes one parsed command and returns its rendered reply.
type Handler func(args []string) (string, error)

// REPL is the Read-Eval-Print loop.
type REPL struct {
	input     io.Reader
	output    io.Writer
	prompt    string
	handler   Handler
	completer *Completer
	history   *History
}

// New creates a REPL dispatching parsed input lines to handler.
func New(handler Handler) *REPL {
	return &REPL{
		input:     os.Stdin,
		output:    os.Stdout,
		prompt:    "keva> ",
		handler:   handler,
		completer: NewCompleter(),
		history:   NewHistory(),
	}
}

// Run starts the REPL loop and blocks until exit, quit or EOF.
func (r *REPL) Run() error {
	if err := r.history.Load(); err != nil {
		fmt.Fprintf(r.output, "warning: cannot load history: %v\n", err)
	}
	defer func() {
		if err := r.history.Save(); err != nil {
			fmt.Fprintf(r.output, "warning: cannot save history: %v\n", err)
		}
	}()

	reader := bufio.NewReader(r.input)

	for {
		// Print prompt
		fmt.Fprint(r.output, r.prompt)

		// Read line
		line, err := reader.ReadString('\n')
		if err == io.EOF {
			fmt.Fprintln(r.output)
			return nil
		}
		if err != nil {
			return err
		}

		// Trim and skip empty lines
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		// Add to history
		r.history.Add(line)

		// Handle special commands
		if line == "exit" || line == "quit" {
			return nil
		}
		if line == "help" || strings.HasPrefix(line, "help ") {
			r.printHelp(strings.TrimSpace(strings.TrimPrefix(line, "help")))
			continue
		}

		// Execute command
		out, err := r.execute(line)
		if err != nil {
			fmt.Fprintf(r.output, "Error: %v\n", err)
			continue
		}
		fmt.Fprintln(r.output, out)
	}
}

// execute parses one input line and dispatches it to the handler.
func (r *REPL) execute(line string) (string, error) {
	if r.handler == nil {
		return "", fmt.Errorf("no command handler configured")
	}

	args, err := SplitArgs(line)
	if err != nil {
		return "", err
	}
	if len(args) == 0 {
		return "", nil
	}
	return r.handler(args)
}

// printHelp lists the known commands, narrowed by prefix when given.
func (r *REPL) printHelp(prefix string) {
	cmds := r.completer.Commands()
	if prefix != "" {
		cmds = r.completer.Complete(prefix)
		if len(cmds) == 0 {
			fmt.Fprintf(r.output, "no commands matching %q\n", prefix)
			return
		}
	}

	fmt.Fprintln(r.output, "Commands:")
	for _, cmd := range cmds {
		fmt.Fprintf(r.output, "  %s\n", cmd)
	}
}
