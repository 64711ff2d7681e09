// Package httpserver provides the admin HTTP server for Keva.
package httpserver

import (
	"log/slog"
	"net/http"

	"github.com/kevadb/keva-go/internal/server/httpserver/handler"
	"github.com/kevadb/keva-go/internal/store"
)

// RouterConfig holds configuration for the HTTP router.
type RouterConfig struct {
	// Store backs the key count in /stats.
	Store *store.Store

	// Conns reports connection counts for /stats. May be nil.
	Conns handler.ConnCounter

	// Metrics is the Prometheus exposition handler for /metrics. May be nil.
	Metrics http.Handler

	// Logger for request logging.
	Logger *slog.Logger
}

// NewRouter creates the HTTP handler with all routes and middleware.
//
// Order: Recover -> RequestID -> RequestLog -> Handler.
func NewRouter(cfg *RouterConfig) http.Handler {
	log := cfg.Logger
	if log == nil {
		log = slog.Default()
	}

	h := handler.New(cfg.Store, cfg.Conns, cfg.Metrics, log)

	return Chain(h,
		Recover(log),
		RequestID(),
		RequestLog(log),
	)
}
