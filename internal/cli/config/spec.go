// Package config defines the CLI configuration structure.
package config

// CLIConfig is the configuration for keva-cli.
type CLIConfig struct {
	// DefaultServer is used when --server is not given.
	DefaultServer string `yaml:"default_server"`

	// DefaultOutput is used when --output is not given.
	DefaultOutput string `yaml:"default_output"` // table, json, yaml
}

// Default returns the default CLI configuration.
func Default() *CLIConfig {
	return &CLIConfig{
		DefaultServer: "127.0.0.1:6142",
		DefaultOutput: "table",
	}
}
