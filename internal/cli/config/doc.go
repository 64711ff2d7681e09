// Package config manages the local keva-cli configuration file.
//
// The file lives at ~/.keva/cli.yaml and stores the defaults applied
// when the matching flags are not set:
//
//   - default_server: server address
//   - default_output: table, json or yaml
//
// Flags and environment variables always win over the file.
package config
