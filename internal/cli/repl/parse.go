// Package repl provides the interactive mode for keva-cli.
package repl

import (
	"fmt"
	"strings"
)

// SplitArgs splits an input line into command arguments. Single and
// double quotes group words; inside double quotes the escapes \"
// \\ \n \r \t are recognized. Quoting allows keys and values that
// contain spaces.
func SplitArgs(line string) ([]string, error) {
	var (
		args   []string
		cur    strings.Builder
		inWord bool
	)

	for i := 0; i < len(line); i++ {
		ch := line[i]
		switch {
		case ch == ' ' || ch == '\t':
			if inWord {
				args = append(args, cur.String())
				cur.Reset()
				inWord = false
			}

		case ch == '\'':
			inWord = true
			end := strings.IndexByte(line[i+1:], '\'')
			if end < 0 {
				return nil, fmt.Errorf("unterminated single quote")
			}
			cur.WriteString(line[i+1 : i+1+end])
			i += end + 1

		case ch == '"':
			inWord = true
			i++
			closed := false
			for ; i < len(line); i++ {
				c := line[i]
				if c == '\\' && i+1 < len(line) {
					i++
					switch line[i] {
					case 'n':
						cur.WriteByte('\n')
					case 'r':
						cur.WriteByte('\r')
					case 't':
						cur.WriteByte('\t')
					case '"':
						cur.WriteByte('"')
					case '\\':
						cur.WriteByte('\\')
					default:
						// Unknown escape, keep it verbatim.
						cur.WriteByte('\\')
						cur.WriteByte(line[i])
					}
					continue
				}
				if c == '"' {
					closed = true
					break
				}
				cur.WriteByte(c)
			}
			if !closed {
				return nil, fmt.Errorf("unterminated double quote")
			}

		default:
			inWord = true
			cur.WriteByte(ch)
		}
	}

	if inWord {
		args = append(args, cur.String())
	}

	return args, nil
}
