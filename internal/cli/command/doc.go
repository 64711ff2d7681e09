// Package command provides CLI command definitions for keva-cli.
//
// Each store operation maps to one top-level command:
//
//   - kv.go: get, set, del, append, exists
//   - keys.go: keys, flushall
//   - ping.go: ping
//   - repl.go: the interactive session
//   - config.go: the local CLI configuration file
//
// root.go carries the application setup, the global flags, the dial
// helper and the reply rendering shared by every command. Replies
// follow --output: the default table mode prints scalars redis-style
// and arrays as numbered tables; json and yaml emit plain data for
// scripting.
package command
