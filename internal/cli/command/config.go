// Package command provides CLI command definitions for keva-cli.
package command

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	cliconfig "github.com/kevadb/keva-go/internal/cli/config"
)

// ConfigCommand returns the config subcommand group.
func ConfigCommand() *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: "Local CLI configuration",
		Subcommands: []*cli.Command{
			{
				Name:   "show",
				Usage:  "Show the CLI configuration file and effective defaults",
				Action: configShow,
			},
			{
				Name:   "init",
				Usage:  "Write the current --server and --output values as defaults",
				Action: configInit,
			},
		},
	}
}

func configShow(c *cli.Context) error {
	path := cliconfig.DefaultConfigPath()
	fmt.Fprintf(c.App.Writer, "Config file: %s\n\n", path)

	if _, err := os.Stat(path); os.IsNotExist(err) {
		fmt.Fprintln(c.App.Writer, "(No configuration file found)")
	} else {
		content, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read config: %w", err)
		}
		fmt.Fprintf(c.App.Writer, "%s\n", content)
	}

	cfg, err := cliconfig.Load("")
	if err != nil {
		return err
	}
	fmt.Fprintln(c.App.Writer, "Effective defaults:")
	fmt.Fprintf(c.App.Writer, "  Server: %s\n", cfg.DefaultServer)
	fmt.Fprintf(c.App.Writer, "  Output: %s\n", cfg.DefaultOutput)
	return nil
}

func configInit(c *cli.Context) error {
	flags := ParseGlobalFlags(c)

	cfg := &cliconfig.CLIConfig{
		DefaultServer: flags.Server,
		DefaultOutput: flags.Output,
	}
	if err := cliconfig.Save(cfg, ""); err != nil {
		return fmt.Errorf("save config: %w", err)
	}

	fmt.Fprintf(c.App.Writer, "Wrote %s\n", cliconfig.DefaultConfigPath())
	return nil
}
