// Package readbuf reads from an io.Reader directly into a Buffer's spare
// capacity, using the low-level escape hatch (MakeRoomFor / Spare / IncrLen)
// instead of staging through an intermediate slice. This is the
// read-into-buffer I/O pattern: grow, let the reader fill the spare region,
// then commit exactly the number of bytes actually written.
package readbuf

import (
	"io"

	"github.com/rony4d/go-dynstr/dynstr"
)

// DefaultChunk is how much spare room ReadAll asks for per read when the
// caller has no better estimate. 16 KiB matches a typical socket read.
const DefaultChunk = 16 * 1024

// ReadInto performs a single read of up to chunk bytes into b's spare
// capacity and commits what was read. It returns the byte count and the
// reader's error, io.EOF included; on error nothing beyond the bytes
// actually read is committed, so the Buffer stays consistent either way.
func ReadInto(r io.Reader, b *dynstr.Buffer, chunk int) (int, error) {
	if err := b.MakeRoomFor(chunk); err != nil {
		return 0, err
	}
	spare := b.Spare()
	if chunk < len(spare) {
		spare = spare[:chunk]
	}
	n, err := r.Read(spare)
	b.IncrLen(n)
	return n, err
}

// maxConsecutiveEmptyReads bounds how many (0, nil) results in a row ReadAll
// tolerates before declaring the reader broken, the same budget bufio uses.
const maxConsecutiveEmptyReads = 100

// ReadAll appends the reader's entire remaining content to b, growing in
// DefaultChunk steps. Returns the total number of bytes appended. A reader
// that keeps returning (0, nil) is reported as io.ErrNoProgress instead of
// spinning forever.
func ReadAll(r io.Reader, b *dynstr.Buffer) (int, error) {
	total := 0
	empties := 0
	for {
		n, err := ReadInto(r, b, DefaultChunk)
		total += n
		if err == io.EOF {
			return total, nil
		}
		if err != nil {
			return total, err
		}
		if n > 0 {
			empties = 0
			continue
		}
		empties++
		if empties >= maxConsecutiveEmptyReads {
			return total, io.ErrNoProgress
		}
	}
}
