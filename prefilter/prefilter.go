// Package prefilter provides fast candidate filtering for the line matcher.
//
// A prefilter scans a line for positions that could start a match, so the
// backtracking engine only runs where it might succeed. Two filters exist:
//
//   - FirstByte: the program begins with a plain literal byte; candidates
//     are the positions holding that byte. Verification is still required.
//   - Literal: the whole program is an exact byte string; the scan IS the
//     match and no verification runs at all.
//
// Results are a performance contract only: the driver must produce exactly
// the lines the naive position-by-position loop would.
package prefilter

import "bytes"

// Prefilter finds candidate match positions in a line.
type Prefilter interface {
	// Find returns the index of the first candidate at or after start,
	// or -1 when no candidate remains. start may equal len(line).
	Find(line []byte, start int) int

	// IsComplete reports whether a candidate is already a full match,
	// letting the caller skip engine verification entirely.
	IsComplete() bool
}

// FirstByte filters on the single byte every match must begin with.
type FirstByte struct {
	c byte
}

// NewFirstByte returns a prefilter for programs opening with the literal c.
func NewFirstByte(c byte) *FirstByte {
	return &FirstByte{c: c}
}

// Find scans for the next occurrence of the byte. The scan rides on
// bytes.IndexByte, which the runtime vectorizes.
func (f *FirstByte) Find(line []byte, start int) int {
	if start >= len(line) {
		return -1
	}
	i := bytes.IndexByte(line[start:], f.c)
	if i < 0 {
		return -1
	}
	return start + i
}

// IsComplete returns false: a first-byte hit still needs verification.
func (f *FirstByte) IsComplete() bool {
	return false
}
