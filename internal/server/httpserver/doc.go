// Package httpserver provides the admin HTTP server for Keva.
//
// This package implements the operational surface using stdlib net/http:
//
//   - Health endpoints: /health, /ready
//   - Metrics endpoint: /metrics (Prometheus exposition)
//   - Statistics endpoint: /stats (key count, connections, uptime, build)
//
// Features:
//
//   - Middleware chain: Recover, RequestID, RequestLog
//   - Graceful shutdown with configurable timeout
//
// The server is disabled by default and never carries data-plane
// traffic; keys and values are reachable only over RESP.
package httpserver
