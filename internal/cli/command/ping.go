// Package command provides CLI command definitions for keva-cli.
package command

import (
	"fmt"

	"github.com/urfave/cli/v2"
)

// PingCommand returns the ping command.
func PingCommand() *cli.Command {
	return &cli.Command{
		Name:      "ping",
		Usage:     "Check that the server is reachable",
		ArgsUsage: "[MESSAGE]",
		Action:    pingAction,
	}
}

func pingAction(c *cli.Context) error {
	if c.NArg() > 1 {
		return fmt.Errorf("usage: ping [MESSAGE]")
	}

	client, err := Connect(c)
	if err != nil {
		return err
	}
	defer client.Close()

	args := []string{"PING"}
	if c.NArg() == 1 {
		args = append(args, c.Args().Get(0))
	}

	reply, err := client.DoStrings(args...)
	if err != nil {
		return err
	}
	return printReply(c, reply)
}
