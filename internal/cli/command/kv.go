// Package command provides CLI command definitions for keva-cli.
package command

import (
	"fmt"

	"github.com/urfave/cli/v2"
)

// GetCommand returns the get command.
func GetCommand() *cli.Command {
	return &cli.Command{
		Name:      "get",
		Usage:     "Fetch the value stored under a key",
		ArgsUsage: "KEY",
		Action:    getAction,
	}
}

// SetCommand returns the set command.
func SetCommand() *cli.Command {
	return &cli.Command{
		Name:      "set",
		Usage:     "Store a value under a key, replacing any previous value",
		ArgsUsage: "KEY VALUE",
		Action:    setAction,
	}
}

// DelCommand returns the del command.
func DelCommand() *cli.Command {
	return &cli.Command{
		Name:      "del",
		Usage:     "Remove keys and report how many were present",
		ArgsUsage: "KEY [KEY...]",
		Action:    delAction,
	}
}

// AppendCommand returns the append command.
func AppendCommand() *cli.Command {
	return &cli.Command{
		Name:      "append",
		Usage:     "Append to the value under a key, creating it when absent",
		ArgsUsage: "KEY VALUE",
		Action:    appendAction,
	}
}

// ExistsCommand returns the exists command.
func ExistsCommand() *cli.Command {
	return &cli.Command{
		Name:      "exists",
		Usage:     "Report whether a key is present",
		ArgsUsage: "KEY",
		Action:    existsAction,
	}
}

func getAction(c *cli.Context) error {
	if c.NArg() != 1 {
		return fmt.Errorf("usage: get KEY")
	}

	client, err := Connect(c)
	if err != nil {
		return err
	}
	defer client.Close()

	reply, err := client.DoStrings("GET", c.Args().Get(0))
	if err != nil {
		return err
	}
	return printReply(c, reply)
}

func setAction(c *cli.Context) error {
	if c.NArg() != 2 {
		return fmt.Errorf("usage: set KEY VALUE")
	}

	client, err := Connect(c)
	if err != nil {
		return err
	}
	defer client.Close()

	reply, err := client.DoStrings("SET", c.Args().Get(0), c.Args().Get(1))
	if err != nil {
		return err
	}
	return printReply(c, reply)
}

func delAction(c *cli.Context) error {
	if c.NArg() < 1 {
		return fmt.Errorf("usage: del KEY [KEY...]")
	}

	client, err := Connect(c)
	if err != nil {
		return err
	}
	defer client.Close()

	args := append([]string{"DEL"}, c.Args().Slice()...)
	reply, err := client.DoStrings(args...)
	if err != nil {
		return err
	}
	return printReply(c, reply)
}

func appendAction(c *cli.Context) error {
	if c.NArg() != 2 {
		return fmt.Errorf("usage: append KEY VALUE")
	}

	client, err := Connect(c)
	if err != nil {
		return err
	}
	defer client.Close()

	reply, err := client.DoStrings("APPEND", c.Args().Get(0), c.Args().Get(1))
	if err != nil {
		return err
	}
	return printReply(c, reply)
}

func existsAction(c *cli.Context) error {
	if c.NArg() != 1 {
		return fmt.Errorf("usage: exists KEY")
	}

	client, err := Connect(c)
	if err != nil {
		return err
	}
	defer client.Close()

	reply, err := client.DoStrings("EXISTS", c.Args().Get(0))
	if err != nil {
		return err
	}
	return printReply(c, reply)
}
