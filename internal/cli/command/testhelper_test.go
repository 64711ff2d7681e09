package command

import (
	"bytes"
	"context"
	"flag"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/kevadb/keva-go/internal/server/respserver"
	"github.com/kevadb/keva-go/internal/store"
	"github.com/kevadb/keva-go/internal/telemetry/metric"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// startTestServer runs a real RESP server on a loopback port backed
// by a fresh store, so commands are exercised end to end.
func startTestServer(t *testing.T) (*store.Store, string) {
	t.Helper()

	st := store.New()
	cfg := respserver.DefaultConfig()
	cfg.Addr = "127.0.0.1:0"

	srv := respserver.New(cfg, st, metric.New(), discardLogger())
	if err := srv.Start(context.Background()); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		srv.Shutdown(ctx)
	})

	return st, srv.Addr().String()
}

// testContext builds a CLI context pointing at addr. Flags must come
// before positional arguments. Command output lands in the returned
// buffer.
func testContext(t *testing.T, addr string, args ...string) (*cli.Context, *bytes.Buffer) {
	t.Helper()

	buf := &bytes.Buffer{}
	app := &cli.App{
		Name:   "test",
		Flags:  globalFlags(),
		Writer: buf,
	}

	set := flag.NewFlagSet("test", flag.ContinueOnError)
	for _, f := range app.Flags {
		if err := f.Apply(set); err != nil {
			t.Fatalf("Apply() error = %v", err)
		}
	}

	fullArgs := []string{"--server", addr}
	fullArgs = append(fullArgs, args...)
	if err := set.Parse(fullArgs); err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	// App.Run copies a set alias (e.g. -o) onto the flag's other names
	// after parsing; the raw FlagSet skips that, so replicate it here.
	visited := map[string]bool{}
	set.Visit(func(f *flag.Flag) { visited[f.Name] = true })
	for _, f := range app.Flags {
		names := f.Names()
		if len(names) < 2 {
			continue
		}
		var src *flag.Flag
		for _, name := range names {
			if visited[name] {
				src = set.Lookup(name)
			}
		}
		if src == nil {
			continue
		}
		for _, name := range names {
			if !visited[name] {
				if err := set.Set(name, src.Value.String()); err != nil {
					t.Fatalf("Set(%q) error = %v", name, err)
				}
			}
		}
	}

	return cli.NewContext(app, set, nil), buf
}
