// Package command provides CLI command definitions for keva-cli.
//
// It uses urfave/cli/v2 for command parsing and supports both
// single-command mode and interactive REPL mode.
package command

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/urfave/cli/v2"

	cliconfig "github.com/kevadb/keva-go/internal/cli/config"
	"github.com/kevadb/keva-go/internal/cli/connection"
	"github.com/kevadb/keva-go/internal/cli/output"
	"github.com/kevadb/keva-go/internal/infra/buildinfo"
	"github.com/kevadb/keva-go/pkg/resp"
)

// App creates the CLI application.
func App() *cli.App {
	app := &cli.App{
		Name:    "keva-cli",
		Usage:   "Keva command-line client",
		Version: buildinfo.String(),
		Flags:   globalFlags(),
		Commands: []*cli.Command{
			GetCommand(),
			SetCommand(),
			DelCommand(),
			AppendCommand(),
			ExistsCommand(),
			KeysCommand(),
			FlushAllCommand(),
			PingCommand(),
			ReplCommand(),
			ConfigCommand(),
		},
		Before: applyConfigDefaults,
	}

	return app
}

// applyConfigDefaults fills unset flags from ~/.keva/cli.yaml.
// Flags and environment variables keep precedence over the file.
func applyConfigDefaults(c *cli.Context) error {
	cfg, err := cliconfig.Load("")
	if err != nil {
		// A broken config file must not wedge the CLI.
		PrintError("ignoring CLI config: %v", err)
		return nil
	}

	if !c.IsSet("server") && cfg.DefaultServer != "" {
		if err := c.Set("server", cfg.DefaultServer); err != nil {
			return err
		}
	}
	if !c.IsSet("output") && cfg.DefaultOutput != "" {
		if err := c.Set("output", cfg.DefaultOutput); err != nil {
			return err
		}
	}
	return nil
}

// globalFlags returns the global CLI flags.
func globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "server",
			Aliases: []string{"s"},
			Usage:   "Keva server address (e.g., 127.0.0.1:6142)",
			EnvVars: []string{"KEVA_SERVER"},
			Value:   "127.0.0.1:6142",
		},
		&cli.DurationFlag{
			Name:    "timeout",
			Usage:   "Timeout for dialing and each request",
			EnvVars: []string{"KEVA_TIMEOUT"},
			Value:   connection.DefaultTimeout,
		},
		&cli.BoolFlag{
			Name:    "tls",
			Usage:   "Connect over TLS",
			EnvVars: []string{"KEVA_TLS"},
		},
		&cli.StringFlag{
			Name:    "ca-file",
			Usage:   "PEM bundle to trust in addition to the system roots",
			EnvVars: []string{"KEVA_CA_FILE"},
		},
		&cli.BoolFlag{
			Name:  "insecure",
			Usage: "Skip server certificate verification",
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "Output format: table, json, yaml",
			Value:   "table",
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"V"},
			Usage:   "Trace wire frames to stderr",
		},
	}
}

// GlobalFlags defines flags available to all commands.
type GlobalFlags struct {
	// Server connection
	Server   string
	Timeout  time.Duration
	TLS      bool
	CAFile   string
	Insecure bool

	// Output format
	Output string // table, json, yaml

	// Other
	Verbose bool
}

// ParseGlobalFlags extracts global flags from context.
func ParseGlobalFlags(c *cli.Context) *GlobalFlags {
	return &GlobalFlags{
		Server:   c.String("server"),
		Timeout:  c.Duration("timeout"),
		TLS:      c.Bool("tls"),
		CAFile:   c.String("ca-file"),
		Insecure: c.Bool("insecure"),
		Output:   c.String("output"),
		Verbose:  c.Bool("verbose"),
	}
}

// Connect dials the server addressed by the global flags.
func Connect(c *cli.Context) (*connection.Client, error) {
	flags := ParseGlobalFlags(c)

	cfg := connection.Config{
		Addr:     flags.Server,
		TLS:      flags.TLS,
		CAFile:   flags.CAFile,
		Insecure: flags.Insecure,
		Timeout:  flags.Timeout,
	}
	if flags.Verbose {
		cfg.Trace = os.Stderr
	}

	return connection.Dial(cfg)
}

// printReply renders one server reply according to --output. An error
// reply becomes a command error so the process exits non-zero.
func printReply(c *cli.Context, v resp.Value) error {
	if v.Kind == resp.KindError {
		return fmt.Errorf("server error: %s", v.Text)
	}

	flags := ParseGlobalFlags(c)
	format := output.Format(flags.Output)

	switch format {
	case output.FormatJSON, output.FormatYAML:
		return output.NewFormatter(format).Format(c.App.Writer, replyData(v))
	}

	if v.Kind == resp.KindArray {
		table := &output.Table{Headers: []string{"#", "VALUE"}}
		for i, e := range v.Elems {
			table.AddRow(strconv.Itoa(i+1), e.String())
		}
		return output.NewFormatter(output.FormatTable).Format(c.App.Writer, table)
	}

	_, err := fmt.Fprintln(c.App.Writer, replyText(v))
	return err
}

// replyData converts a reply value to plain data for the structured
// formatters.
func replyData(v resp.Value) any {
	switch v.Kind {
	case resp.KindNull:
		return nil
	case resp.KindInteger:
		return v.Int
	case resp.KindStatus:
		return v.Text
	case resp.KindBulk:
		return resp.DisplayBytes(v.Bulk)
	case resp.KindArray:
		items := make([]any, len(v.Elems))
		for i, e := range v.Elems {
			items[i] = replyData(e)
		}
		return items
	default:
		return v.String()
	}
}

// replyText renders a reply for interactive display: scalars on one
// line, arrays numbered, error replies marked but not fatal.
func replyText(v resp.Value) string {
	switch v.Kind {
	case resp.KindError:
		return "(error) " + v.Text
	case resp.KindInteger:
		return fmt.Sprintf("(integer) %d", v.Int)
	case resp.KindArray:
		if len(v.Elems) == 0 {
			return "(empty list)"
		}
		var b strings.Builder
		for i, e := range v.Elems {
			if i > 0 {
				b.WriteByte('\n')
			}
			fmt.Fprintf(&b, "%d) %s", i+1, e.String())
		}
		return b.String()
	default:
		return v.String()
	}
}

// PrintError prints an error message to stderr.
func PrintError(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "error: "+format+"\n", args...)
}
