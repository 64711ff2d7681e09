// Package handler provides HTTP request handlers for Keva.
//
// This package contains handlers for the operational endpoints:
//
//   - health.go: Health and readiness checks
//   - stats.go: Store and connection statistics
//
// The Prometheus exposition handler is mounted at /metrics as-is.
// All endpoints are read-only; data-plane traffic goes through the
// RESP server, never through HTTP.
package handler
