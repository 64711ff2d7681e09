package resp

import "strconv"

// Append appends the wire encoding of v to dst and returns the extended
// buffer. Encoding is total over the variant set: every value has exactly
// one wire form and there is no error path. Null encodes as the null bulk
// string. Error details never reach the wire.
func Append(dst []byte, v Value) []byte {
	switch v.Kind {
	case KindStatus:
		dst = append(dst, '+')
		dst = append(dst, v.Text...)
		return append(dst, '\r', '\n')
	case KindError:
		dst = append(dst, '-')
		dst = append(dst, v.Text...)
		return append(dst, '\r', '\n')
	case KindInteger:
		dst = append(dst, ':')
		dst = strconv.AppendInt(dst, v.Int, 10)
		return append(dst, '\r', '\n')
	case KindBulk:
		dst = append(dst, '$')
		dst = strconv.AppendInt(dst, int64(len(v.Bulk)), 10)
		dst = append(dst, '\r', '\n')
		dst = append(dst, v.Bulk...)
		return append(dst, '\r', '\n')
	case KindArray:
		dst = append(dst, '*')
		dst = strconv.AppendInt(dst, int64(len(v.Elems)), 10)
		dst = append(dst, '\r', '\n')
		for _, e := range v.Elems {
			dst = Append(dst, e)
		}
		return dst
	default:
		return append(dst, "$-1\r\n"...)
	}
}

// Encode returns the wire encoding of v in a fresh buffer.
func Encode(v Value) []byte {
	return Append(nil, v)
}
