// Package cmap provides a concurrent map implementation for Keva.
//
// This package implements a sharded concurrent map used for
// per-client bookkeeping on the server hot path, with the
// following properties:
//
//   - Sharding: configurable power-of-two shard count
//   - Fine-grained locking: per-shard RWMutex for minimal contention
//   - Atomic per-key operations: Get, Set, GetOrSet, Delete
//   - Iteration: Range walks shards under read locks
//
// Usage:
//
//	m := cmap.New[string, *rate.Limiter]()
//	lim, loaded := m.GetOrSet("10.0.0.1", newLimiter())
//
// Thread Safety:
//
// All operations are thread-safe. Read operations (Get, Has) use RLock,
// write operations (Set, Delete) use Lock. Range does not present a
// consistent cross-shard snapshot; callers that need one must serialize
// writers themselves.
package cmap
