// Package config defines the server configuration structure.
package config

import (
	"errors"
	"fmt"
	"os"
)

// Verify validates the configuration.
func Verify(cfg *ServerConfig) error {
	if err := verifyServer(&cfg.Server); err != nil {
		return err
	}
	if err := verifyLimits(&cfg.Limits); err != nil {
		return err
	}
	return verifyLog(&cfg.Log)
}

func verifyServer(cfg *ServerSection) error {
	if cfg.Resp.Addr == "" {
		return errors.New("server.resp.addr is required")
	}
	if cfg.Resp.RateLimit < 0 {
		return errors.New("server.resp.rate_limit must not be negative")
	}
	if cfg.Resp.ReadBufferSize < 0 {
		return errors.New("server.resp.read_buffer_size must not be negative")
	}

	if cfg.Resp.TLSEnabled {
		if cfg.Resp.TLSAddr == "" {
			return errors.New("server.resp.tls_addr is required when TLS is enabled")
		}
		if cfg.Resp.TLSCertFile == "" || cfg.Resp.TLSKeyFile == "" {
			return errors.New("server.resp.tls_cert_file and tls_key_file are required when TLS is enabled")
		}
		if _, err := os.Stat(cfg.Resp.TLSCertFile); err != nil {
			return errors.New("cannot read TLS certificate: " + err.Error())
		}
		if _, err := os.Stat(cfg.Resp.TLSKeyFile); err != nil {
			return errors.New("cannot read TLS key: " + err.Error())
		}
	}

	if cfg.HTTP.Enabled && cfg.HTTP.Addr == "" {
		return errors.New("server.http.addr is required when the HTTP server is enabled")
	}

	return nil
}

func verifyLimits(cfg *LimitsSection) error {
	if cfg.MaxInlineLen <= 0 {
		return errors.New("limits.max_inline_len must be positive")
	}
	if cfg.MaxArrayLen <= 0 {
		return errors.New("limits.max_array_len must be positive")
	}
	if cfg.MaxBulkLen <= 0 {
		return errors.New("limits.max_bulk_len must be positive")
	}
	return nil
}

func verifyLog(cfg *LogSection) error {
	switch cfg.Level {
	case "", "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("log.level %q is not one of debug, info, warn, error", cfg.Level)
	}

	switch cfg.Format {
	case "", "json", "text", "console":
	default:
		return fmt.Errorf("log.format %q is not one of json, text", cfg.Format)
	}

	return nil
}
