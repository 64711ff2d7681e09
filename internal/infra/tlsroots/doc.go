// Package tlsroots provides TLS certificate management for Keva.
//
// This package handles TLS certificate loading and management:
//
//   - roots.go: System certificates + custom CA loading
//   - watcher.go: Certificate hot-reload via fsnotify
//
// The server uses the watcher to rotate its listener certificate without
// a restart; the CLI uses the pool to trust private CAs when connecting
// over TLS.
package tlsroots
