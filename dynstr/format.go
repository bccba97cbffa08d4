package dynstr

// format.go holds the convenience operations layered on the core Buffer:
// formatted appends, integer rendering and byte-level rewrites. None of them
// touch the layout directly; everything funnels through the mutators in
// buffer.go so the terminator invariant holds for free.

import (
	"fmt"
	"strconv"
)

// AppendFormat renders the fmt-style format string and appends the result.
// The rendering primitive sizes its own output, so a single render is enough;
// no guess-grow-retry loop is needed.
func (b *Buffer) AppendFormat(format string, args ...interface{}) error {
	return b.AppendString(fmt.Sprintf(format, args...))
}

// FromInt creates a Buffer holding the decimal rendering of v.
func FromInt(v int64) *Buffer {
	return New(strconv.AppendInt(make([]byte, 0, 21), v, 10))
}

// ToLower lowercases every ASCII letter of the payload in place.
func (b *Buffer) ToLower() {
	payload := b.Bytes()
	for i, c := range payload {
		if 'A' <= c && c <= 'Z' {
			payload[i] = c + ('a' - 'A')
		}
	}
}

// ToUpper uppercases every ASCII letter of the payload in place.
func (b *Buffer) ToUpper() {
	payload := b.Bytes()
	for i, c := range payload {
		if 'a' <= c && c <= 'z' {
			payload[i] = c - ('a' - 'A')
		}
	}
}

// MapChars replaces, in place, every payload byte found in from with the
// byte at the same index in to. Panics if the two sets differ in length;
// mismatched sets are a programming error, not an input condition.
func (b *Buffer) MapChars(from, to string) {
	if len(from) != len(to) {
		panic("dynstr: MapChars sets differ in length")
	}
	payload := b.Bytes()
	for i, c := range payload {
		for j := 0; j < len(from); j++ {
			if c == from[j] {
				payload[i] = to[j]
				break
			}
		}
	}
}
