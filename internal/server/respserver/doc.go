// Package respserver provides the RESP wire protocol server for Keva.
//
// Requests are decoded by pkg/resp: clients may send inline command
// lines or arrays of bulk strings, and pipelined requests are answered
// in order with one write per batch.
//
// Supported commands:
//   - PING, COMMAND
//   - GET, SET, DEL, APPEND
//   - KEYS, EXISTS, FLUSHALL
//
// Malformed requests (unknown command, bad arity, non-bulk arguments)
// answer with an error value and leave the connection open. Protocol
// and limit violations are fatal: the offending request gets no reply
// and the connection is closed.
package respserver
