// Package command provides CLI command definitions for keva-cli.
package command

import (
	"fmt"
	"sort"

	"github.com/urfave/cli/v2"
)

// KeysCommand returns the keys command.
func KeysCommand() *cli.Command {
	return &cli.Command{
		Name:      "keys",
		Usage:     "List stored keys",
		ArgsUsage: "[PATTERN]",
		Action:    keysAction,
	}
}

// FlushAllCommand returns the flushall command.
func FlushAllCommand() *cli.Command {
	return &cli.Command{
		Name:   "flushall",
		Usage:  "Remove every key from the store",
		Action: flushAllAction,
	}
}

func keysAction(c *cli.Context) error {
	if c.NArg() > 1 {
		return fmt.Errorf("usage: keys [PATTERN]")
	}
	pattern := "*"
	if c.NArg() == 1 {
		pattern = c.Args().Get(0)
	}

	client, err := Connect(c)
	if err != nil {
		return err
	}
	defer client.Close()

	reply, err := client.DoStrings("KEYS", pattern)
	if err != nil {
		return err
	}

	// The server answers in map order; sort for stable display.
	sort.Slice(reply.Elems, func(i, j int) bool {
		return string(reply.Elems[i].Bulk) < string(reply.Elems[j].Bulk)
	})

	return printReply(c, reply)
}

func flushAllAction(c *cli.Context) error {
	if c.NArg() != 0 {
		return fmt.Errorf("usage: flushall")
	}

	client, err := Connect(c)
	if err != nil {
		return err
	}
	defer client.Close()

	reply, err := client.DoStrings("FLUSHALL")
	if err != nil {
		return err
	}
	return printReply(c, reply)
}
