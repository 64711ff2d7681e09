// Package handler provides HTTP request handlers for Keva.
package handler

import (
	"net/http"
	"time"

	"github.com/kevadb/keva-go/internal/infra/buildinfo"
)

// handleStats handles GET /stats.
func (h *Handler) handleStats(w http.ResponseWriter, r *http.Request) {
	stats := StatsResponse{
		Keys:          h.store.Len(),
		UptimeSeconds: int64(time.Since(h.started).Seconds()),
		Build:         buildinfo.Get(),
	}
	if h.conns != nil {
		stats.Connections.Active = h.conns.ConnsActive()
		stats.Connections.Total = h.conns.ConnsTotal()
	}

	h.writeJSON(w, r, http.StatusOK, stats)
}
