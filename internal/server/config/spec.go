// Package config defines the server configuration structure.
package config

// ServerConfig is the root configuration for keva-server.
type ServerConfig struct {
	Server ServerSection `koanf:"server"`
	Limits LimitsSection `koanf:"limits"`
	Log    LogSection    `koanf:"log"`
}

// ServerSection configures server endpoints.
type ServerSection struct {
	Resp RespConfig `koanf:"resp"`
	HTTP HTTPConfig `koanf:"http"`
}

// RespConfig configures the RESP protocol server.
type RespConfig struct {
	// Addr is the plaintext listener address.
	Addr string `koanf:"addr"`

	// TLSEnabled enables the TLS listener.
	TLSEnabled bool `koanf:"tls_enabled"`

	// TLSAddr is the TLS listener address.
	TLSAddr string `koanf:"tls_addr"`

	// TLSCertFile and TLSKeyFile are the PEM-encoded certificate and
	// key for the TLS listener. Both are required when TLSEnabled.
	TLSCertFile string `koanf:"tls_cert_file"`
	TLSKeyFile  string `koanf:"tls_key_file"`

	// RateLimit caps commands per second per client IP. 0 disables.
	RateLimit int `koanf:"rate_limit"`

	// ReadBufferSize is the per-connection read buffer size in bytes.
	ReadBufferSize int `koanf:"read_buffer_size"`
}

// HTTPConfig configures the admin HTTP server (health, metrics, stats).
type HTTPConfig struct {
	Enabled bool   `koanf:"enabled"`
	Addr    string `koanf:"addr"`
}

// LimitsSection bounds decoded protocol requests.
type LimitsSection struct {
	// MaxInlineLen is the maximum inline command line length in bytes.
	MaxInlineLen int `koanf:"max_inline_len"`

	// MaxArrayLen is the maximum number of elements in a request array.
	MaxArrayLen int `koanf:"max_array_len"`

	// MaxBulkLen is the maximum bulk string payload size in bytes.
	MaxBulkLen int `koanf:"max_bulk_len"`
}

// LogSection configures logging.
type LogSection struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}
