// Package main provides the entry point for keva-cli.
//
// The CLI tool provides command-line access to a Keva server for:
//
//   - Key-value operations (get, set, del, append, exists)
//   - Keyspace inspection (keys, flushall)
//   - Connectivity checks (ping)
//   - Local configuration management
//
// Usage:
//
//	keva-cli [command] [flags]
//	keva-cli set greeting hello
//	keva-cli --server 127.0.0.1:6142 --output json keys
//
// The CLI supports both single-command mode and interactive REPL mode.
package main
