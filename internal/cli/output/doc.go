// Package output provides output formatting for keva-cli.
//
// This package handles all CLI output formatting:
//
//   - formatter.go: Formatter interface and factory
//   - table.go: aligned table rendering
//   - json.go: JSON output formatting
//   - yaml.go: YAML output formatting
//
// The table format is the interactive default; json and yaml emit
// machine-readable output for scripting.
package output
