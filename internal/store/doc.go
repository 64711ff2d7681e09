// Package store provides the in-memory key-value store behind keva.
//
// The store is a single map from opaque byte-string keys to opaque
// byte-string values, guarded by one RWMutex. That mutex is the only
// serialization point in the system: every mutation happens-before any
// later read, and readers always observe fully settled state.
//
// Value handling:
//
//   - Writes copy their inputs, so callers may reuse argument slices
//   - Stored values are never mutated in place; Append installs a
//     freshly built value
//   - Reads return the stored slice itself, which is stable because of
//     the rule above; callers must not modify it
//
// Keys compare byte-exact. There is no expiry, no eviction, and no
// persistence; the store lives and dies with the process.
package store
