// Package config defines the server configuration structure.
package config

import "github.com/kevadb/keva-go/pkg/resp"

// Default configuration values.
const (
	DefaultRespAddr    = "127.0.0.1:6142"
	DefaultRespTLSAddr = "127.0.0.1:6143"
	DefaultHTTPAddr    = "127.0.0.1:7142"

	DefaultReadBufferSize = 4096

	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"
)

// Default returns the default server configuration.
func Default() *ServerConfig {
	return &ServerConfig{
		Server: ServerSection{
			Resp: RespConfig{
				Addr:           DefaultRespAddr,
				TLSEnabled:     false,
				TLSAddr:        DefaultRespTLSAddr,
				RateLimit:      0,
				ReadBufferSize: DefaultReadBufferSize,
			},
			HTTP: HTTPConfig{
				Enabled: false,
				Addr:    DefaultHTTPAddr,
			},
		},
		Limits: LimitsSection{
			MaxInlineLen: resp.DefaultMaxInlineLen,
			MaxArrayLen:  resp.DefaultMaxArrayLen,
			MaxBulkLen:   resp.DefaultMaxBulkLen,
		},
		Log: LogSection{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
	}
}
