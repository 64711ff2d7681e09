// Package main provides the entry point for keva-server.
//
// keva-server is the Keva service process: an in-memory key-value
// store reachable over a RESP-style wire protocol, with an optional
// admin HTTP endpoint for health checks and metrics.
package main

import (
	"context"
	"crypto/tls"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/kevadb/keva-go/internal/infra/buildinfo"
	"github.com/kevadb/keva-go/internal/infra/confloader"
	"github.com/kevadb/keva-go/internal/infra/shutdown"
	"github.com/kevadb/keva-go/internal/infra/tlsroots"
	"github.com/kevadb/keva-go/internal/server/config"
	"github.com/kevadb/keva-go/internal/server/httpserver"
	"github.com/kevadb/keva-go/internal/server/respserver"
	"github.com/kevadb/keva-go/internal/store"
	"github.com/kevadb/keva-go/internal/telemetry/logger"
	"github.com/kevadb/keva-go/internal/telemetry/metric"
	"github.com/kevadb/keva-go/pkg/resp"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Parse command line flags
	var (
		configFile  = flag.String("config", "", "Path to configuration file")
		showVersion = flag.Bool("version", false, "Show version information")
	)
	flag.Parse()

	// Show version and exit
	if *showVersion {
		fmt.Printf("keva-server %s\n", buildinfo.String())
		return nil
	}

	// Load configuration
	cfg, err := loadConfig(*configFile)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// Initialize logger
	log, slogLogger, err := initLogger(cfg)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}

	log.Info("starting keva-server",
		"version", buildinfo.Version,
		"commit", buildinfo.Commit,
		"config", *configFile)

	// Initialize store and metrics
	st := store.New()
	metrics := metric.New().RegisterKeyCount(func() float64 {
		return float64(st.Len())
	})

	// Build the RESP server configuration, including the certificate
	// watcher when the TLS listener is enabled.
	respCfg, certWatcher, err := respConfig(cfg, slogLogger)
	if err != nil {
		return fmt.Errorf("init tls: %w", err)
	}

	respSrv := respserver.New(respCfg, st, metrics, slogLogger)

	ctx := context.Background()
	if err := respSrv.Start(ctx); err != nil {
		return fmt.Errorf("start resp server: %w", err)
	}

	// Setup graceful shutdown
	shutdownHandler := shutdown.NewHandler(30 * time.Second)

	// Hooks run in reverse order of registration, so the RESP server
	// drains last.
	shutdownHandler.OnShutdown(func(ctx context.Context) error {
		log.Info("shutting down RESP server")
		return respSrv.Shutdown(ctx)
	})

	if certWatcher != nil {
		certWatcher.StartAsync()
		shutdownHandler.OnShutdown(func(context.Context) error {
			certWatcher.Stop()
			return nil
		})
	}

	// Start the admin HTTP server if enabled
	if cfg.Server.HTTP.Enabled {
		router := httpserver.NewRouter(&httpserver.RouterConfig{
			Store:   st,
			Conns:   respSrv,
			Metrics: metrics.Handler(),
			Logger:  slogLogger,
		})
		httpSrv := httpserver.New(cfg.Server.HTTP.Addr, router)

		shutdownHandler.OnShutdown(func(ctx context.Context) error {
			log.Info("shutting down HTTP server")
			return httpSrv.Shutdown(ctx)
		})

		go func() {
			log.Info("HTTP server listening", "addr", cfg.Server.HTTP.Addr)
			if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Error("HTTP server error", "error", err)
			}
		}()
	}

	// Reload the log level when the config file changes
	if *configFile != "" {
		confWatcher, err := watchLogLevel(*configFile, log)
		if err != nil {
			log.Warn("config watcher unavailable", "error", err)
		} else {
			shutdownHandler.OnShutdown(func(context.Context) error {
				return confWatcher.Stop()
			})
		}
	}

	// Wait for shutdown signal
	log.Info("server started, press Ctrl+C to stop")
	if err := shutdownHandler.Wait(); err != nil {
		log.Error("shutdown error", "error", err)
		return err
	}

	log.Info("server stopped gracefully")
	return nil
}

// loadConfig loads configuration from file and environment.
func loadConfig(configFile string) (*config.ServerConfig, error) {
	// Start with defaults
	cfg := config.Default()

	// Create loader with optional config file
	opts := []confloader.Option{confloader.WithDotEnv(".env")}
	if configFile != "" {
		opts = append(opts, confloader.WithConfigFile(configFile))
	}

	loader := confloader.NewLoader(opts...)

	// Load and unmarshal
	if err := loader.Load(cfg); err != nil {
		return nil, err
	}

	// Validate configuration
	if err := config.Verify(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// initLogger initializes the structured logger.
// Returns both the logger interface and slog.Logger for components that need it.
func initLogger(cfg *config.ServerConfig) (logger.Logger, *slog.Logger, error) {
	log, err := logger.New(logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: os.Stdout,
	})
	if err != nil {
		return nil, nil, err
	}

	// Set as default logger
	logger.SetDefault(log)

	// Create a standard slog.Logger for components that need it
	slogLogger := slog.Default()

	return log, slogLogger, nil
}

// respConfig maps the server configuration onto the RESP server. When
// the TLS listener is enabled it also returns a certificate watcher
// that hot-reloads the key pair on file changes.
func respConfig(cfg *config.ServerConfig, log *slog.Logger) (*respserver.Config, *tlsroots.Watcher, error) {
	rc := &respserver.Config{
		Addr:           cfg.Server.Resp.Addr,
		TLSEnabled:     cfg.Server.Resp.TLSEnabled,
		TLSAddr:        cfg.Server.Resp.TLSAddr,
		RateLimit:      cfg.Server.Resp.RateLimit,
		ReadBufferSize: cfg.Server.Resp.ReadBufferSize,
		Limits: resp.Limits{
			MaxInlineLen: cfg.Limits.MaxInlineLen,
			MaxArrayLen:  cfg.Limits.MaxArrayLen,
			MaxBulkLen:   cfg.Limits.MaxBulkLen,
		},
	}

	if !cfg.Server.Resp.TLSEnabled {
		return rc, nil, nil
	}

	watcher, err := tlsroots.NewWatcher(
		cfg.Server.Resp.TLSCertFile,
		cfg.Server.Resp.TLSKeyFile,
		tlsroots.WithLogger(log),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("load TLS certificate: %w", err)
	}

	rc.TLSConfig = &tls.Config{
		GetCertificate: watcher.GetCertificate,
		MinVersion:     tls.VersionTLS12,
	}

	return rc, watcher, nil
}

// watchLogLevel watches the config file and applies log level changes
// without a restart. Other settings still require one.
func watchLogLevel(configFile string, log logger.Logger) (*confloader.Watcher, error) {
	watcher, err := confloader.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := watcher.Watch(configFile); err != nil {
		_ = watcher.Stop()
		return nil, err
	}

	base := filepath.Base(configFile)
	watcher.OnChange(func(path string) {
		if filepath.Base(path) != base {
			return
		}

		cfg := config.Default()
		loader := confloader.NewLoader(confloader.WithConfigFile(configFile))
		if err := loader.Load(cfg); err != nil {
			log.Warn("config reload failed", "error", err)
			return
		}
		if err := config.Verify(cfg); err != nil {
			log.Warn("config reload rejected", "error", err)
			return
		}

		// Compare through GetLevel so aliases like "warning" do not
		// read as a change on every reload.
		before := logger.GetLevel()
		logger.SetLevel(cfg.Log.Level)
		if after := logger.GetLevel(); after != before {
			log.Info("log level changed", "level", after)
		}
	})

	watcher.StartAsync()
	return watcher, nil
}
