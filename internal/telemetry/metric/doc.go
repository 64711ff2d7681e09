// Package metric provides Prometheus metrics for Keva.
//
// All collectors live in a private prometheus.Registry owned by a
// *Registry value, so independent server instances (and tests) never
// collide on the global default registry. The exposition handler is
// mounted on the admin HTTP server at /metrics.
//
// Exported series use the "keva" namespace:
//
//   - keva_resp_connections_active / keva_resp_connections_total
//   - keva_resp_commands_total{command} and command duration histogram
//   - keva_resp_bytes_read_total / keva_resp_bytes_written_total
//   - keva_resp_decode_errors_total
//   - keva_keys (registered via RegisterKeyCount)
package metric
