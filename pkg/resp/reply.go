package resp

import (
	"fmt"
	"strconv"
	"strings"
)

// replyFrame is one array still being filled while decoding a reply.
// Reply arrays may nest, so the decoder keeps a stack of them.
type replyFrame struct {
	elems []Value
	want  int
}

// NewReplyDecoder returns a decoder for the reply grammar: statuses,
// errors, integers, bulk strings, and arrays whose elements may be any
// of those, recursively. Negative-length bulk strings and arrays decode
// to Null. Feed and Next behave exactly as on the request decoder.
func NewReplyDecoder(limits Limits) *Decoder {
	d := NewDecoder(limits)
	d.reply = true
	return d
}

func (d *Decoder) nextReply() (Value, error) {
	for {
		switch d.state {
		case stateValue:
			if len(d.buf) == 0 {
				return Value{}, ErrIncomplete
			}
			switch d.buf[0] {
			case '+', '-':
				marker := d.buf[0]
				line, size, ok, err := d.findLine(1, d.limits.MaxInlineLen)
				if err != nil {
					return Value{}, err
				}
				if !ok {
					return Value{}, ErrIncomplete
				}
				text := string(line)
				d.advance(size)
				v := Status(text)
				if marker == '-' {
					v = Error(text)
				}
				if out, done := d.finishReply(v); done {
					return out, nil
				}

			case ':':
				line, size, ok, err := d.findLine(1, headerLineMax)
				if err != nil {
					return Value{}, err
				}
				if !ok {
					return Value{}, ErrIncomplete
				}
				s := strings.TrimSpace(string(line))
				n, perr := strconv.ParseInt(s, 10, 64)
				if perr != nil {
					return Value{}, protoErr(d.consumed, "invalid integer "+strconv.Quote(s))
				}
				d.advance(size)
				if out, done := d.finishReply(Integer(n)); done {
					return out, nil
				}

			case '$':
				start := d.consumed
				n, ok, err := d.readLength()
				if err != nil {
					return Value{}, err
				}
				if !ok {
					return Value{}, ErrIncomplete
				}
				if n < 0 {
					if out, done := d.finishReply(Null); done {
						return out, nil
					}
					continue
				}
				if n > int64(d.limits.MaxBulkLen) {
					return Value{}, limitErr(start, fmt.Sprintf("bulk string of %d bytes exceeds limit %d", n, d.limits.MaxBulkLen))
				}
				d.bulkLen = int(n)
				d.state = stateBulkBody

			case '*':
				start := d.consumed
				n, ok, err := d.readLength()
				if err != nil {
					return Value{}, err
				}
				if !ok {
					return Value{}, ErrIncomplete
				}
				if n < 0 {
					if out, done := d.finishReply(Null); done {
						return out, nil
					}
					continue
				}
				if n > int64(d.limits.MaxArrayLen) {
					return Value{}, limitErr(start, fmt.Sprintf("array of %d elements exceeds limit %d", n, d.limits.MaxArrayLen))
				}
				if n == 0 {
					if out, done := d.finishReply(Value{Kind: KindArray}); done {
						return out, nil
					}
					continue
				}
				d.stack = append(d.stack, replyFrame{
					elems: make([]Value, 0, min(int(n), 32)),
					want:  int(n),
				})

			default:
				return Value{}, protoErr(d.consumed, fmt.Sprintf("unknown reply type %q", d.buf[0]))
			}

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
			if out, done := d.finishReply(Bulk(payload)); done {
				return out, nil
			}
		}
	}
}

// finishReply delivers one completed value: appended to the innermost
// open array when one exists, returned to the caller otherwise. An array
// that becomes full completes as a value of its parent in turn.
func (d *Decoder) finishReply(v Value) (Value, bool) {
	d.state = stateValue
	for len(d.stack) > 0 {
		top := &d.stack[len(d.stack)-1]
		top.elems = append(top.elems, v)
		if len(top.elems) < top.want {
			return Value{}, false
		}
		v = Value{Kind: KindArray, Elems: top.elems}
		d.stack = d.stack[:len(d.stack)-1]
	}
	return v, true
}
