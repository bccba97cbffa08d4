// Package quote is the value-formatting layer on top of dynstr: escaping and
// quoting of arbitrary payloads, splitting on separators, and parsing of
// quoted argument lines. It deliberately uses only the public Buffer API
// (construction, appends, release, length queries) and never reaches into
// the layout, so it doubles as a reference consumer of the core contract.
package quote

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/rony4d/go-dynstr/dynstr"
)

// Standard errors for parsing and splitting.
var (
	ErrUnbalancedQuotes = errors.New("unbalanced quotes: argument line ends inside a quoted token")
	ErrEmptySeparator   = errors.New("empty separator: split requires at least one separator byte")
)

// AppendRepr appends a double-quoted, escaped rendering of p to b: a form
// safe to print and to parse back with SplitArgs. Printable ASCII passes
// through, known control characters use their backslash escapes, everything
// else becomes \xHH.
func AppendRepr(b *dynstr.Buffer, p []byte) error {
	if err := b.AppendString(`"`); err != nil {
		return err
	}
	for _, c := range p {
		var err error
		switch c {
		case '\\', '"':
			err = b.Append([]byte{'\\', c})
		case '\n':
			err = b.AppendString(`\n`)
		case '\r':
			err = b.AppendString(`\r`)
		case '\t':
			err = b.AppendString(`\t`)
		case '\a':
			err = b.AppendString(`\a`)
		case '\b':
			err = b.AppendString(`\b`)
		default:
			if isPrint(c) {
				err = b.Append([]byte{c})
			} else {
				err = b.AppendFormat(`\x%02x`, c)
			}
		}
		if err != nil {
			return err
		}
	}
	return b.AppendString(`"`)
}

// SplitArgs parses a command line into its arguments. Tokens are separated
// by runs of whitespace; double-quoted tokens understand the escapes
// produced by AppendRepr (including \xHH), single-quoted tokens only \'.
// A closing quote must be followed by whitespace or the end of the line.
//
// On a malformed line (unterminated quote, trailing characters after a
// closing quote) every partially built Buffer is released and
// ErrUnbalancedQuotes is returned: no partial result leaks.
func SplitArgs(line string) ([]*dynstr.Buffer, error) {
	args := make([]*dynstr.Buffer, 0)
	i := 0
	for {
		// Skip the whitespace between tokens.
		for i < len(line) && isSpace(line[i]) {
			i++
		}
		if i >= len(line) {
			return args, nil
		}

		current := dynstr.Empty()
		inQuotes := false  // inside "..."
		inSingle := false  // inside '...'
		done := false
		ok := true

		for !done {
			switch {
			case inQuotes:
				switch {
				case i >= len(line):
					ok = false // unterminated double quote
					done = true
				case line[i] == '\\' && i+3 < len(line) && line[i+1] == 'x' &&
					isHexDigit(line[i+2]) && isHexDigit(line[i+3]):
					appendByte(current, hexDigit(line[i+2])<<4|hexDigit(line[i+3]))
					i += 3
				case line[i] == '\\' && i+1 < len(line):
					var c byte
					switch line[i+1] {
					case 'n':
						c = '\n'
					case 'r':
						c = '\r'
					case 't':
						c = '\t'
					case 'b':
						c = '\b'
					case 'a':
						c = '\a'
					default:
						c = line[i+1]
					}
					appendByte(current, c)
					i++
				case line[i] == '"':
					// Closing quote must be followed by a separator or EOL.
					if i+1 < len(line) && !isSpace(line[i+1]) {
						ok = false
					}
					inQuotes = false
					done = true
				default:
					appendByte(current, line[i])
				}
			case inSingle:
				switch {
				case i >= len(line):
					ok = false // unterminated single quote
					done = true
				case line[i] == '\\' && i+1 < len(line) && line[i+1] == '\'':
					appendByte(current, '\'')
					i++
				case line[i] == '\'':
					if i+1 < len(line) && !isSpace(line[i+1]) {
						ok = false
					}
					inSingle = false
					done = true
				default:
					appendByte(current, line[i])
				}
			default:
				switch {
				case i >= len(line) || isSpace(line[i]):
					done = true
					i-- // counter the increment below; position stays put
				case line[i] == '"':
					inQuotes = true
				case line[i] == '\'':
					inSingle = true
				default:
					appendByte(current, line[i])
				}
			}
			i++
			if !ok {
				break
			}
		}

		if !ok {
			current.Release()
			ReleaseAll(args)
			return nil, ErrUnbalancedQuotes
		}
		args = append(args, current)
	}
}

// Split cuts p on every occurrence of sep and returns the pieces as
// independent Buffers, including empty pieces between adjacent separators.
// Returns ErrEmptySeparator when sep is empty.
func Split(p, sep []byte) ([]*dynstr.Buffer, error) {
	if len(sep) < 1 {
		return nil, ErrEmptySeparator
	}
	tokens := make([]*dynstr.Buffer, 0, 4)
	for {
		i := bytes.Index(p, sep)
		if i < 0 {
			tokens = append(tokens, dynstr.New(p))
			return tokens, nil
		}
		tokens = append(tokens, dynstr.New(p[:i]))
		p = p[i+len(sep):]
	}
}

// Join concatenates argv with sep between elements into a fresh Buffer.
func Join(argv []string, sep string) (*dynstr.Buffer, error) {
	joined := dynstr.Empty()
	for i, arg := range argv {
		if err := joined.AppendString(arg); err != nil {
			joined.Release()
			return nil, err
		}
		if i != len(argv)-1 {
			if err := joined.AppendString(sep); err != nil {
				joined.Release()
				return nil, err
			}
		}
	}
	return joined, nil
}

// ReleaseAll releases every Buffer of a split result in one call.
func ReleaseAll(tokens []*dynstr.Buffer) {
	for _, tok := range tokens {
		tok.Release()
	}
}

// appendByte grows the token one byte at a time. Single-byte growth is the
// amortized-O(1) path of the core, so this stays linear over the whole line.
// Growth of a command-line sized token cannot overflow, so a failure here is
// a programming error and panics.
func appendByte(b *dynstr.Buffer, c byte) {
	if err := b.Append([]byte{c}); err != nil {
		panic(fmt.Sprintf("quote: append failed: %v", err))
	}
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

func isPrint(c byte) bool {
	return c >= 0x20 && c < 0x7f
}

func isHexDigit(c byte) bool {
	return ('0' <= c && c <= '9') || ('a' <= c && c <= 'f') || ('A' <= c && c <= 'F')
}

// hexDigit maps a hex character to its value; callers check isHexDigit first.
func hexDigit(c byte) byte {
	switch {
	case '0' <= c && c <= '9':
		return c - '0'
	case 'a' <= c && c <= 'f':
		return c - 'a' + 10
	default:
		return c - 'A' + 10
	}
}
