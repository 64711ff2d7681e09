// Package connection provides the RESP client used by keva-cli.
//
// This package dials a Keva server and speaks the wire protocol
// directly:
//
//   - client.go: TCP/TLS dialing and the request/response round trip
//
// Requests are encoded as arrays of bulk strings and replies are
// decoded with the incremental decoder from pkg/resp, so the CLI
// exercises the same codec as the server.
//
// Features:
//
//   - Plain TCP and TLS connections
//   - Private CA trust for self-hosted servers
//   - Per-request deadlines
//   - Optional wire tracing for --verbose
package connection
