package resp

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Kind identifies the protocol variant of a Value.
type Kind uint8

// KindNull is the zero Kind, so the zero Value is the null sentinel.
const (
	KindNull Kind = iota
	KindStatus
	KindError
	KindInteger
	KindBulk
	KindArray
)

// String returns the lowercase variant name.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindStatus:
		return "status"
	case KindError:
		return "error"
	case KindInteger:
		return "integer"
	case KindBulk:
		return "bulk"
	case KindArray:
		return "array"
	default:
		return "kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Value is a single protocol value. Exactly one payload field is
// meaningful for a given Kind:
//
//	KindStatus  Text
//	KindError   Text (wire code) and Detail (in-process only)
//	KindInteger Int
//	KindBulk    Bulk
//	KindArray   Elems
//	KindNull    none
//
// Values are treated as immutable once built. The decoder always returns
// values whose payloads are independent copies of the input buffer.
type Value struct {
	Kind Kind

	// Text holds the status text or the error code.
	Text string
	// Detail optionally annotates an error for logs and diagnostics.
	// It is never serialized.
	Detail string
	// Int holds the integer payload.
	Int int64
	// Bulk holds the bulk string payload. Arbitrary bytes are allowed.
	Bulk []byte
	// Elems holds the array elements in order.
	Elems []Value
}

// Null is the null value. It encodes as the null bulk string "$-1\r\n".
var Null = Value{Kind: KindNull}

// Status returns a simple status value such as "OK" or "PONG".
func Status(s string) Value {
	return Value{Kind: KindStatus, Text: s}
}

// Error returns an error value carrying only a wire code.
func Error(code string) Value {
	return Value{Kind: KindError, Text: code}
}

// Errorf returns an error value with a wire code and a formatted detail.
// Only the code reaches the wire; the detail is for local diagnostics.
func Errorf(code, format string, args ...any) Value {
	return Value{Kind: KindError, Text: code, Detail: fmt.Sprintf(format, args...)}
}

// Integer returns an integer value.
func Integer(n int64) Value {
	return Value{Kind: KindInteger, Int: n}
}

// Bulk returns a bulk string value holding b. The slice is not copied.
func Bulk(b []byte) Value {
	return Value{Kind: KindBulk, Bulk: b}
}

// BulkString returns a bulk string value holding s.
func BulkString(s string) Value {
	return Value{Kind: KindBulk, Bulk: []byte(s)}
}

// Array returns an array value of the given elements.
func Array(elems ...Value) Value {
	return Value{Kind: KindArray, Elems: elems}
}

// Equal reports whether v and o are structurally identical. Bulk payloads
// compare byte-exact; error details participate.
func (v Value) Equal(o Value) bool {
	if v.Kind != o.Kind {
		return false
	}
	switch v.Kind {
	case KindStatus:
		return v.Text == o.Text
	case KindError:
		return v.Text == o.Text && v.Detail == o.Detail
	case KindInteger:
		return v.Int == o.Int
	case KindBulk:
		return bytes.Equal(v.Bulk, o.Bulk)
	case KindArray:
		if len(v.Elems) != len(o.Elems) {
			return false
		}
		for i := range v.Elems {
			if !v.Elems[i].Equal(o.Elems[i]) {
				return false
			}
		}
		return true
	default:
		return true
	}
}

// String renders the value for logs and interactive display. Bulk payloads
// that are valid UTF-8 render as text, anything else falls back to quoted
// byte syntax. The rendering is cosmetic and has no wire meaning.
func (v Value) String() string {
	switch v.Kind {
	case KindNull:
		return "(nil)"
	case KindStatus:
		return v.Text
	case KindError:
		if v.Detail != "" {
			return v.Text + ": " + v.Detail
		}
		return v.Text
	case KindInteger:
		return strconv.FormatInt(v.Int, 10)
	case KindBulk:
		return DisplayBytes(v.Bulk)
	case KindArray:
		parts := make([]string, len(v.Elems))
		for i, e := range v.Elems {
			parts[i] = e.String()
		}
		return "[" + strings.Join(parts, " ") + "]"
	default:
		return v.Kind.String()
	}
}

// DisplayBytes renders b as text when it is valid UTF-8 and as quoted
// bytes otherwise.
func DisplayBytes(b []byte) string {
	if utf8.Valid(b) {
		return string(b)
	}
	return strconv.Quote(string(b))
}
