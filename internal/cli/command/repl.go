// Package command provides CLI command definitions for keva-cli.
package command

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/kevadb/keva-go/internal/cli/repl"
)

// ReplCommand returns the repl command.
func ReplCommand() *cli.Command {
	return &cli.Command{
		Name:   "repl",
		Usage:  "Start an interactive session",
		Action: replAction,
	}
}

func replAction(c *cli.Context) error {
	client, err := Connect(c)
	if err != nil {
		return err
	}
	defer client.Close()

	fmt.Fprintf(c.App.Writer, "Connected to %s. Type 'help' for commands, 'exit' to leave.\n", client.Addr())

	r := repl.New(func(args []string) (string, error) {
		reply, err := client.DoStrings(args...)
		if err != nil {
			return "", err
		}
		return replyText(reply), nil
	})

	return r.Run()
}
