package resp

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Default protocol limits. They bound what a single request may ask the
// server to buffer before it is rejected.
const (
	// DefaultMaxInlineLen is the default cap on an inline command line,
	// terminator excluded (64 KiB).
	DefaultMaxInlineLen = 64 << 10

	// DefaultMaxArrayLen is the default cap on request array elements.
	DefaultMaxArrayLen = 1 << 20

	// DefaultMaxBulkLen is the default cap on a bulk string payload (512 MiB).
	DefaultMaxBulkLen = 512 << 20
)

// Length lines such as "*2\r\n" and "$1024\r\n" are always short.
const headerLineMax = 64

var (
	// ErrIncomplete reports that the buffered input does not yet hold a
	// complete value. Feed more bytes and call Next again; no progress
	// is lost.
	ErrIncomplete = errors.New("resp: incomplete input")

	// ErrProtocol is the base error for malformed input.
	ErrProtocol = errors.New("resp: protocol error")

	// ErrLimitExceeded is the base error for input exceeding a protocol limit.
	ErrLimitExceeded = errors.New("resp: limit exceeded")
)

// SyntaxError reports malformed or over-limit input together with the
// absolute stream offset where the problem was detected. It unwraps to
// ErrProtocol or ErrLimitExceeded for errors.Is dispatch.
type SyntaxError struct {
	Offset int64
	Msg    string
	base   error
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%v at offset %d: %s", e.base, e.Offset, e.Msg)
}

func (e *SyntaxError) Unwrap() error { return e.base }

func protoErr(offset int64, msg string) error {
	return &SyntaxError{Offset: offset, Msg: msg, base: ErrProtocol}
}

func limitErr(offset int64, msg string) error {
	return &SyntaxError{Offset: offset, Msg: msg, base: ErrLimitExceeded}
}

// Limits bounds decoded input. The zero value of any field selects the
// corresponding default.
type Limits struct {
	// MaxInlineLen caps the length of an inline command line in bytes,
	// terminator excluded.
	MaxInlineLen int
	// MaxArrayLen caps the number of elements in a request array.
	MaxArrayLen int
	// MaxBulkLen caps the payload length of a bulk string in bytes.
	MaxBulkLen int
}

func (l Limits) withDefaults() Limits {
	if l.MaxInlineLen <= 0 {
		l.MaxInlineLen = DefaultMaxInlineLen
	}
	if l.MaxArrayLen <= 0 {
		l.MaxArrayLen = DefaultMaxArrayLen
	}
	if l.MaxBulkLen <= 0 {
		l.MaxBulkLen = DefaultMaxBulkLen
	}
	return l
}

// decodeState tells Next where to resume inside a partially received value.
type decodeState uint8

const (
	// stateValue: at a value boundary, dispatching on the first byte.
	stateValue decodeState = iota
	// stateElem: expecting the "$<len>\r\n" header of the next array element.
	stateElem
	// stateBulkBody: expecting bulkLen payload bytes plus CRLF.
	stateBulkBody
)

// Decoder incrementally decodes values from a byte stream.
//
// Feed buffers raw input, Next extracts the next complete value. All
// partial-parse progress survives between calls, so input may arrive in
// arbitrary fragments, down to one byte at a time. A single Feed may
// complete any number of pipelined values; callers drain them by calling
// Next until it reports ErrIncomplete.
//
// A decoder speaks one side of the protocol: NewDecoder builds one for
// the request grammar (arrays of bulk strings, inline command lines),
// NewReplyDecoder one for the reply grammar over the full value set.
//
// Errors other than ErrIncomplete are fatal: the stream position is no
// longer trustworthy and every later Next returns the same error.
type Decoder struct {
	limits Limits
	reply  bool // decode the reply grammar instead of the request grammar

	buf      []byte // buffered, not yet consumed input
	consumed int64  // absolute stream offset of buf[0]
	scan     int    // prefix of buf already searched for a line terminator

	state   decodeState
	elems   []Value      // completed elements of the in-progress request array
	want    int          // declared element count of the in-progress request array
	stack   []replyFrame // open reply arrays, innermost last
	bulkLen int          // declared payload length of the in-progress bulk string

	err error // sticky fatal error
}

// NewDecoder returns a request decoder enforcing the given limits.
func NewDecoder(limits Limits) *Decoder {
	return &Decoder{limits: limits.withDefaults()}
}

// Feed buffers p for decoding. The bytes are copied, so the caller may
// reuse p immediately.
func (d *Decoder) Feed(p []byte) {
	if len(p) == 0 {
		return
	}
	d.buf = append(d.buf, p...)
}

// Buffered returns the number of fed bytes not yet consumed by a
// completed value.
func (d *Decoder) Buffered() int { return len(d.buf) }

// Consumed returns the total number of stream bytes fully decoded so far.
func (d *Decoder) Consumed() int64 { return d.consumed }

// Idle reports whether the decoder sits at a value boundary with nothing
// buffered. End-of-stream while idle is an orderly close; end-of-stream
// mid-value is a premature one.
func (d *Decoder) Idle() bool {
	return len(d.buf) == 0 && d.state == stateValue && len(d.stack) == 0
}

// Next extracts the next complete value from the buffered input.
func (d *Decoder) Next() (Value, error) {
	if d.err != nil {
		return Value{}, d.err
	}
	v, err := d.next()
	if err != nil {
		if errors.Is(err, ErrIncomplete) {
			return Value{}, err
		}
		d.err = err
		return Value{}, err
	}
	return v, nil
}

func (d *Decoder) next() (Value, error) {
	if d.reply {
		return d.nextReply()
	}
	for {
		switch d.state {
		case stateValue:
			if len(d.buf) == 0 {
				return Value{}, ErrIncomplete
			}
			if d.buf[0] != '*' {
				return d.nextInline()
			}
			start := d.consumed
			n, ok, err := d.readLength()
			if err != nil {
				return Value{}, err
			}
			if !ok {
				return Value{}, ErrIncomplete
			}
			if n < 0 {
				return Null, nil
			}
			if n > int64(d.limits.MaxArrayLen) {
				return Value{}, limitErr(start, fmt.Sprintf("array of %d elements exceeds limit %d", n, d.limits.MaxArrayLen))
			}
			if n == 0 {
				return Value{Kind: KindArray}, nil
			}
			d.want = int(n)
			d.elems = make([]Value, 0, min(d.want, 32))
			d.state = stateElem

		case stateElem:
			if len(d.buf) == 0 {
				return Value{}, ErrIncomplete
			}
			if d.buf[0] != '$' {
				return Value{}, protoErr(d.consumed, fmt.Sprintf("array element %d: expected bulk string, found %q", len(d.elems), d.buf[0]))
			}
			start := d.consumed
			n, ok, err := d.readLength()
			if err != nil {
				return Value{}, err
			}
			if !ok {
				return Value{}, ErrIncomplete
			}
			if n < 0 {
				if v, done := d.pushElem(Null); done {
					return v, nil
				}
				continue
			}
			if n > int64(d.limits.MaxBulkLen) {
				return Value{}, limitErr(start, fmt.Sprintf("bulk string of %d bytes exceeds limit %d", n, d.limits.MaxBulkLen))
			}
			d.bulkLen = int(n)
			d.state = stateBulkBody

		case stateBulkBody:
			if len(d.buf) < d.bulkLen+2 {
				return Value{}, ErrIncomplete
			}
			if d.buf[d.bulkLen] != '\r' || d.buf[d.bulkLen+1] != '\n' {
				return Value{}, protoErr(d.consumed+int64(d.bulkLen), "bulk payload missing CRLF terminator")
			}
			payload := make([]byte, d.bulkLen)
			copy(payload, d.buf)
			d.advance(d.bulkLen + 2)
			d.bulkLen = 0
			if v, done := d.pushElem(Bulk(payload)); done {
				return v, nil
			}
		}
	}
}

// nextInline decodes one CRLF-terminated command line into an array of
// bulk strings, one per whitespace-separated word. An empty line decodes
// to an empty array.
func (d *Decoder) nextInline() (Value, error) {
	line, size, ok, err := d.findLine(0, d.limits.MaxInlineLen)
	if err != nil {
		return Value{}, err
	}
	if !ok {
		return Value{}, ErrIncomplete
	}
	if !utf8.Valid(line) {
		return Value{}, protoErr(d.consumed, "inline command is not valid UTF-8")
	}
	words := strings.Fields(string(line))
	elems := make([]Value, len(words))
	for i, w := range words {
		elems[i] = BulkString(w)
	}
	d.advance(size)
	return Value{Kind: KindArray, Elems: elems}, nil
}

// readLength consumes a length line such as "*2\r\n" or "$5\r\n" from the
// front of the buffer. ok is false while the terminator has not arrived.
func (d *Decoder) readLength() (n int64, ok bool, err error) {
	line, size, ok, err := d.findLine(1, headerLineMax)
	if err != nil || !ok {
		return 0, ok, err
	}
	s := strings.TrimSpace(string(line))
	v, perr := strconv.ParseInt(s, 10, 64)
	if perr != nil {
		return 0, true, protoErr(d.consumed, "invalid length "+strconv.Quote(s))
	}
	d.advance(size)
	return v, true, nil
}

// findLine locates the CRLF-terminated line starting at buf[from]. It
// returns the line content without the terminator and the total size of
// the line including it. ok is false while the terminator has not arrived;
// the scan position is remembered so repeated calls never re-examine bytes.
func (d *Decoder) findLine(from, maxLen int) (line []byte, size int, ok bool, err error) {
	if len(d.buf) < from {
		return nil, 0, false, nil
	}
	if d.scan < from {
		d.scan = from
	}
	rel := bytes.IndexByte(d.buf[d.scan:], '\n')
	if rel < 0 {
		d.scan = len(d.buf)
		if len(d.buf)-from > maxLen+1 {
			return nil, 0, false, limitErr(d.consumed+int64(from), fmt.Sprintf("line longer than %d bytes", maxLen))
		}
		return nil, 0, false, nil
	}
	end := d.scan + rel
	if end == from || d.buf[end-1] != '\r' {
		return nil, 0, false, protoErr(d.consumed+int64(end), "LF without preceding CR")
	}
	line = d.buf[from : end-1]
	if len(line) > maxLen {
		return nil, 0, false, limitErr(d.consumed+int64(from), fmt.Sprintf("line longer than %d bytes", maxLen))
	}
	if j := bytes.IndexByte(line, '\r'); j >= 0 {
		return nil, 0, false, protoErr(d.consumed+int64(from+j), "bare CR inside line")
	}
	d.scan = 0
	return line, end + 1, true, nil
}

// pushElem appends a completed element to the in-progress array and, when
// it was the last one, returns the finished array value.
func (d *Decoder) pushElem(v Value) (Value, bool) {
	d.elems = append(d.elems, v)
	if len(d.elems) < d.want {
		d.state = stateElem
		return Value{}, false
	}
	out := Value{Kind: KindArray, Elems: d.elems}
	d.elems = nil
	d.want = 0
	d.state = stateValue
	return out, true
}

// advance drops n consumed bytes from the front of the buffer.
func (d *Decoder) advance(n int) {
	d.consumed += int64(n)
	if n == len(d.buf) {
		d.buf = nil
	} else {
		d.buf = d.buf[n:]
	}
	d.scan = 0
}
