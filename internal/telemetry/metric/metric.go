// Package metric provides Prometheus metrics for Keva.
package metric

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry bundles the Prometheus collectors exported by a Keva server.
//
// Collectors are wired into the hot path, so they are plain struct
// fields rather than lookups: callers touch them directly.
type Registry struct {
	reg *prometheus.Registry

	// Connection lifecycle.
	ConnectionsActive prometheus.Gauge
	ConnectionsTotal  prometheus.Counter

	// Command execution, labelled by command name.
	CommandsTotal   *prometheus.CounterVec
	CommandDuration *prometheus.HistogramVec

	// Wire traffic in both directions.
	BytesRead    prometheus.Counter
	BytesWritten prometheus.Counter

	// Protocol violations that terminated a connection.
	DecodeErrors prometheus.Counter
}

// New creates a Registry with all collectors registered against a
// fresh private prometheus.Registry.
func New() *Registry {
	r := &Registry{reg: prometheus.NewRegistry()}

	r.ConnectionsActive = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "keva",
		Subsystem: "resp",
		Name:      "connections_active",
		Help:      "Number of currently open client connections",
	})

	r.ConnectionsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "keva",
		Subsystem: "resp",
		Name:      "connections_total",
		Help:      "Total client connections accepted",
	})

	r.CommandsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "keva",
		Subsystem: "resp",
		Name:      "commands_total",
		Help:      "Total commands executed, by command name",
	}, []string{"command"})

	// In-memory operations complete in microseconds, so the default
	// bucket layout would collapse everything into the first bucket.
	r.CommandDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "keva",
		Subsystem: "resp",
		Name:      "command_duration_seconds",
		Help:      "Command execution time in seconds, by command name",
		Buckets:   prometheus.ExponentialBuckets(1e-6, 4, 10),
	}, []string{"command"})

	r.BytesRead = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "keva",
		Subsystem: "resp",
		Name:      "bytes_read_total",
		Help:      "Total bytes read from client connections",
	})

	r.BytesWritten = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "keva",
		Subsystem: "resp",
		Name:      "bytes_written_total",
		Help:      "Total bytes written to client connections",
	})

	r.DecodeErrors = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "keva",
		Subsystem: "resp",
		Name:      "decode_errors_total",
		Help:      "Total protocol errors that closed a connection",
	})

	r.reg.MustRegister(
		r.ConnectionsActive,
		r.ConnectionsTotal,
		r.CommandsTotal,
		r.CommandDuration,
		r.BytesRead,
		r.BytesWritten,
		r.DecodeErrors,
	)

	return r
}

// RegisterKeyCount exposes the current key count as the keva_keys gauge.
//
// The callback runs on every scrape and must be safe for concurrent use.
// Returns the registry for method chaining.
func (r *Registry) RegisterKeyCount(fn func() float64) *Registry {
	r.reg.MustRegister(prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: "keva",
		Name:      "keys",
		Help:      "Number of keys currently stored",
	}, fn))
	return r
}

// Handler returns an HTTP handler serving this registry in the
// Prometheus exposition format.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{})
}
