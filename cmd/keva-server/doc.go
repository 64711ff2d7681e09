// Package main provides the entry point for keva-server.
//
// The server is the core Keva process that provides:
//
//   - RESP protocol listener for key-value commands
//   - Optional TLS listener with certificate hot reload
//   - Optional admin HTTP server (health, metrics, stats)
//
// Usage:
//
//	keva-server [flags]
//	keva-server --config /path/to/config.yaml
//
// The server loads configuration, initializes infrastructure components,
// and starts all configured listeners. Sending SIGINT or SIGTERM drains
// open connections before the process exits.
package main
