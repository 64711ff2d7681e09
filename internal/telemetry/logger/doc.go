// Package logger provides structured logging for Keva.
//
// This package wraps log/slog for structured logging:
//
//   - logger.go: logger construction, level control, global default
//   - context.go: context-aware logging with request IDs
//
// Features:
//
//   - JSON and text output formats
//   - Runtime log level adjustment (config reload)
//   - Context propagation for request correlation
package logger
