// Package handler provides HTTP request handlers for Keva.
package handler

import "github.com/kevadb/keva-go/internal/infra/buildinfo"

// StatsResponse is the response body for GET /stats.
type StatsResponse struct {
	Keys          int             `json:"keys"`
	UptimeSeconds int64           `json:"uptime_seconds"`
	Connections   ConnectionStats `json:"connections"`
	Build         buildinfo.Info  `json:"build"`
}

// ConnectionStats summarizes RESP connection counts.
type ConnectionStats struct {
	Active int64 `json:"active"`
	Total  int64 `json:"total"`
}
