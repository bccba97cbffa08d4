package dynstr

// buffer.go implements a dynamic byte string: one contiguous allocation that
// carries its own length/capacity metadata next to the payload.
//
// Purpose:
// - A plain []byte forces you to choose between O(n) length scans (C-style
//   terminated strings) and losing the guaranteed terminator that lets the
//   payload be handed to routines expecting a terminated byte sequence.
// - Buffer keeps both: Len() is O(1), and a zero byte is always maintained
//   just past the last meaningful byte, transparently, by every mutator.
// - Payloads are binary safe: zero bytes inside the first Len() bytes are
//   data, only the byte AT offset Len() is the terminator.
//
// The layout is a single slice where len(data) == Len()+1 (the +1 is the
// terminator) and the spare capacity lives between len(data) and cap(data).
// Growth is geometric below MaxPrealloc and linear above it, so a sequence of
// n single-byte appends triggers O(log n) reallocations, not O(n).
//
// A Buffer is single-owner and NOT safe for concurrent mutation. Use Dup to
// hand an independent copy to another owner.

import (
	"bytes"
	"errors"
)

// MaxPrealloc caps the geometric growth policy. Below this size a growing
// Buffer doubles; above it, growth adds exactly MaxPrealloc bytes of
// headroom, preventing unbounded overshoot on very large strings.
const MaxPrealloc = 1024 * 1024

// ErrTooLargeAlloc is returned when a requested growth cannot be satisfied:
// the new size would overflow the platform int. This is the recoverable
// out-of-memory surface; callers may abort or propagate instead of the
// process dying inside the growth primitive.
var ErrTooLargeAlloc = errors.New("too large allocation: requested buffer size overflows")

// maxInt is the largest value an int can hold on this platform.
const maxInt = int(^uint(0) >> 1)

// Buffer is a dynamic byte string.
//
// data always holds Len()+1 bytes: the payload followed by one zero
// terminator byte. Spare capacity (bytes usable without reallocation) is
// cap(data)-len(data). Mutators swap data when they relocate, so the *Buffer
// handle itself stays valid across growth.
type Buffer struct {
	data []byte
}

// New creates a Buffer holding a copy of p, sized exactly: capacity is zero,
// the next append reallocates. p may contain zero bytes; they are data.
func New(p []byte) *Buffer {
	data := make([]byte, len(p)+1)
	copy(data, p)
	// data[len(p)] is already zero: the terminator.
	return &Buffer{data: data}
}

// NewString creates a Buffer from the terminated-text reading of s: the
// payload stops at the first zero byte, if any. Use New for binary-safe
// construction of content that may embed zero bytes.
func NewString(s string) *Buffer {
	if i := indexZero(s); i >= 0 {
		s = s[:i]
	}
	data := make([]byte, len(s)+1)
	copy(data, s)
	return &Buffer{data: data}
}

// Empty creates a zero-length Buffer with zero capacity. The terminator is
// still present, so Terminated() is valid immediately.
func Empty() *Buffer {
	return &Buffer{data: make([]byte, 1)}
}

// Dup creates an independent copy. The two Buffers share no storage;
// mutating one never affects the other.
func (b *Buffer) Dup() *Buffer {
	return New(b.Bytes())
}

// Len returns the number of meaningful payload bytes. O(1); the terminator
// is not counted.
func (b *Buffer) Len() int {
	return len(b.data) - 1
}

// Avail returns the spare capacity: bytes that can be appended without
// triggering a reallocation. O(1).
func (b *Buffer) Avail() int {
	return cap(b.data) - len(b.data)
}

// AllocSize returns the total size of the allocation backing the Buffer:
// Len() + Avail() + 1 terminator byte.
func (b *Buffer) AllocSize() int {
	return cap(b.data)
}

// Bytes returns the payload: exactly Len() bytes, no terminator.
//
// Note: the returned slice shares memory with the Buffer and is invalidated
// by any mutator that relocates the allocation.
func (b *Buffer) Bytes() []byte {
	return b.data[:len(b.data)-1]
}

// Terminated returns the payload plus the trailing zero byte, for handing to
// consumers that expect a terminated byte sequence. Same sharing caveat as
// Bytes.
func (b *Buffer) Terminated() []byte {
	return b.data
}

// String returns a copy of the payload as a Go string.
func (b *Buffer) String() string {
	return string(b.Bytes())
}

// MakeRoomFor guarantees Avail() >= addLen, relocating if necessary. This is
// the growth primitive every append runs through.
//
// Policy: if the spare capacity already satisfies the request, nothing
// happens (this is what amortizes repeated small appends). Otherwise the new
// payload size is doubled while below MaxPrealloc, or grown by exactly
// MaxPrealloc above it. Growth is monotonic; MakeRoomFor never shrinks.
func (b *Buffer) MakeRoomFor(addLen int) error {
	if addLen <= b.Avail() {
		return nil
	}

	length := b.Len()
	if addLen > maxInt-length {
		return ErrTooLargeAlloc
	}
	newLen := length + addLen

	var allocPayload int
	if newLen < MaxPrealloc {
		allocPayload = 2 * newLen
	} else {
		if newLen > maxInt-MaxPrealloc {
			return ErrTooLargeAlloc
		}
		allocPayload = newLen + MaxPrealloc
	}
	if allocPayload == maxInt {
		// No room left for the terminator byte.
		return ErrTooLargeAlloc
	}

	// Relocate: copy payload + terminator, keep len(data) unchanged so the
	// extra room shows up as spare capacity, not as payload.
	data := make([]byte, len(b.data), allocPayload+1)
	copy(data, b.data)
	b.data = data
	return nil
}

// RemoveFreeSpace reallocates the Buffer so that Avail() == 0, trading future
// growth cost for a minimal footprint. Useful once a value's size is final.
func (b *Buffer) RemoveFreeSpace() {
	if b.Avail() == 0 {
		return
	}
	data := make([]byte, len(b.data))
	copy(data, b.data)
	b.data = data
}

// GrowZero extends the payload to target bytes, zero-filling the gap between
// the old and new length. No-op when target <= Len().
func (b *Buffer) GrowZero(target int) error {
	length := b.Len()
	if target <= length {
		return nil
	}
	if err := b.MakeRoomFor(target - length); err != nil {
		return err
	}
	// Freshly made slices are zeroed, but the spare region may hold stale
	// bytes from earlier direct writes, so clear it explicitly.
	b.data = b.data[:target+1]
	for i := length; i <= target; i++ {
		b.data[i] = 0
	}
	return nil
}

// Append copies p past the current payload, growing first if needed.
func (b *Buffer) Append(p []byte) error {
	if err := b.MakeRoomFor(len(p)); err != nil {
		return err
	}
	length := b.Len()
	b.data = b.data[:length+len(p)+1]
	copy(b.data[length:], p)
	b.data[len(b.data)-1] = 0
	return nil
}

// AppendString appends the bytes of s.
func (b *Buffer) AppendString(s string) error {
	if err := b.MakeRoomFor(len(s)); err != nil {
		return err
	}
	length := b.Len()
	b.data = b.data[:length+len(s)+1]
	copy(b.data[length:], s)
	b.data[len(b.data)-1] = 0
	return nil
}

// AppendBuffer appends another Buffer's payload.
func (b *Buffer) AppendBuffer(o *Buffer) error {
	return b.Append(o.Bytes())
}

// CopyFrom overwrites the payload entirely with p. Existing capacity beyond
// the new length is preserved, not freed.
func (b *Buffer) CopyFrom(p []byte) error {
	// Total room is payload + spare; grow only when p does not fit in the
	// current allocation (minus the terminator byte).
	if total := b.AllocSize() - 1; len(p) > total {
		if err := b.MakeRoomFor(len(p) - b.Len()); err != nil {
			return err
		}
	}
	b.data = b.data[:len(p)+1]
	copy(b.data, p)
	b.data[len(p)] = 0
	return nil
}

// CopyString overwrites the payload with the bytes of s.
func (b *Buffer) CopyString(s string) error {
	return b.CopyFrom([]byte(s))
}

// Trim removes from both ends every byte present in cutset. The retained
// span shifts to offset 0; freed bytes become spare capacity. No
// reallocation happens.
func (b *Buffer) Trim(cutset string) {
	payload := b.Bytes()
	start := 0
	end := len(payload)
	for start < end && indexByteString(cutset, payload[start]) {
		start++
	}
	for end > start && indexByteString(cutset, payload[end-1]) {
		end--
	}
	n := end - start
	if start > 0 {
		copy(b.data, payload[start:end])
	}
	b.data = b.data[:n+1]
	b.data[n] = 0
}

// Range slices the payload in place to the inclusive [start, end] span.
// Negative indices count from the end (-1 is the last byte). Out-of-range
// indices are clamped, never reported as errors; if start ends up past end
// the result is empty. Retained bytes shift to offset 0.
func (b *Buffer) Range(start, end int) {
	length := b.Len()
	if length == 0 {
		return
	}
	if start < 0 {
		start += length
		if start < 0 {
			start = 0
		}
	}
	if end < 0 {
		end += length
		if end < 0 {
			end = 0
		}
	}
	var n int
	if start > end {
		n = 0
	} else {
		n = end - start + 1
		if start >= length {
			n = 0
		} else if end >= length {
			n = length - start
		}
	}
	if n > 0 && start > 0 {
		copy(b.data, b.data[start:start+n])
	}
	b.data = b.data[:n+1]
	b.data[n] = 0
}

// UpdateLen rescans the allocation for the first zero byte and resets the
// length metadata to it. This is an escape hatch for code that rewrote
// payload bytes directly (e.g. shortened the string by planting a zero byte)
// without going through a mutator; until it is called such a Buffer violates
// the length/terminator invariants. Use sparingly.
func (b *Buffer) UpdateLen() {
	full := b.data[:cap(b.data)]
	i := bytes.IndexByte(full, 0)
	if i < 0 {
		// No terminator anywhere in the allocation: external writes clobbered
		// it. Reserve the final byte as the terminator.
		i = cap(b.data) - 1
		full[i] = 0
	}
	b.data = b.data[:i+1]
}

// Clear empties the Buffer without releasing the allocation: the whole
// previous payload becomes spare capacity, ready for reuse.
func (b *Buffer) Clear() {
	b.data = b.data[:1]
	b.data[0] = 0
}

// Compare orders two Buffers like ordinary byte strings: lexicographic
// comparison over the common prefix, ties broken by length (the shorter
// Buffer sorts first). Returns <0, 0 or >0.
func (b *Buffer) Compare(o *Buffer) int {
	return bytes.Compare(b.Bytes(), o.Bytes())
}

// Release drops the allocation so the garbage collector can reclaim it. The
// handle must not be used afterwards; most operations on a released Buffer
// panic on the nil payload. Release a Buffer at most once.
func (b *Buffer) Release() {
	b.data = nil
}

// Spare returns the writable spare-capacity region: Avail() bytes anchored
// AT the terminator slot, so a write to Spare()[0] lands at payload offset
// Len(). This is the low-level escape hatch for read-into-buffer I/O: grow
// with MakeRoomFor, write directly into Spare(), then commit with IncrLen
// (which rewrites the terminator past the committed bytes). The caller must
// not touch the Buffer through any other mutator between the write and the
// commit; until the commit the terminator invariant is suspended.
func (b *Buffer) Spare() []byte {
	return b.data[len(b.data)-1 : cap(b.data)-1]
}

// IncrLen commits incr bytes written directly into the spare region (or,
// when negative, gives bytes back), then restores the terminator. Panics if
// the resulting length would exceed the allocation or drop below zero; that
// is a contract violation by the caller, not a runtime condition.
func (b *Buffer) IncrLen(incr int) {
	length := b.Len() + incr
	if length < 0 || length+1 > cap(b.data) {
		panic("dynstr: IncrLen out of range")
	}
	b.data = b.data[:length+1]
	b.data[length] = 0
}

// indexZero reports the index of the first zero byte in s, or -1.
func indexZero(s string) int {
	for i := 0; i < len(s); i++ {
		if s[i] == 0 {
			return i
		}
	}
	return -1
}

// indexByteString reports whether c occurs in set.
func indexByteString(set string, c byte) bool {
	for i := 0; i < len(set); i++ {
		if set[i] == c {
			return true
		}
	}
	return false
}
