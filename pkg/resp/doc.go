// Package resp implements the subset of the RESP wire protocol spoken by keva.
//
// The package provides three pieces:
//
//   - Value: a tagged representation of every protocol variant
//     (status, error, integer, bulk string, array, null)
//   - Decoder: an incremental, resumable decoder that accepts input in
//     arbitrary fragments and never loses partial progress
//   - Append/Encode: the deterministic wire encoding of a Value
//
// The two directions of the protocol have different grammars, so each
// gets its own decoder constructor. Requests (NewDecoder) arrive either
// as arrays of bulk strings ("*2\r\n$3\r\nGET\r\n...") or as inline
// command lines ("PING\r\n"). Replies (NewReplyDecoder) use the full
// variant set: "+OK", "-INVALID_COMMAND", ":1", "$5\r\nhello", and
// arrays over any of those.
//
// Usage:
//
//	d := resp.NewDecoder(resp.Limits{})
//	d.Feed(chunk)
//	for {
//		v, err := d.Next()
//		if errors.Is(err, resp.ErrIncomplete) {
//			break // feed more bytes
//		}
//		if err != nil {
//			return err // malformed stream, close the connection
//		}
//		out = resp.Append(out, handle(v))
//	}
//
// Decoders are stateful and owned by a single connection; they are not
// safe for concurrent use.
package resp
