package vm

import (
	"bytes"
	"fmt"

	"github.com/coregx/v7grep/internal/byteset"
)

// unset marks a capture boundary that has not been recorded during the
// current attempt.
const unset = -1

// Backtracker runs a compiled Program against one line at a time using
// recursive backtracking. It owns the mutable match state — the capture
// tables and the current line — so a single Backtracker must not be shared
// between goroutines; the Program it wraps may be.
//
// Recursion only happens at starred instructions, so the stack depth is
// bounded by the number of stars in the program times the line length.
type Backtracker struct {
	prog *Program
	line []byte

	// Capture boundaries, by group index. Valid only between the bra/ket
	// that records them and the end of the current attempt; backtracking
	// may freely overwrite them.
	braStart [MaxGroups]int
	braEnd   [MaxGroups]int
}

// NewBacktracker returns a matcher for prog with empty capture state.
func NewBacktracker(prog *Program) *Backtracker {
	return &Backtracker{prog: prog}
}

// MatchAt reports whether the program accepts the line starting at pos.
// End-of-line sits at len(line); pos == len(line) is a valid attempt
// position (a '$'-only or empty program accepts there). The capture tables
// are cleared before the attempt so a backreference can never observe a
// group closed by an earlier attempt.
func (b *Backtracker) MatchAt(line []byte, pos int) bool {
	b.line = line
	for i := range b.braStart {
		b.braStart[i] = unset
		b.braEnd[i] = unset
	}
	return b.advance(pos, 0)
}

// advance executes the program from pc with the input cursor at lp.
// Consuming instructions advance lp; failures propagate up to the nearest
// star, which retries with a shorter repetition.
func (b *Backtracker) advance(lp, pc int) bool {
	line, code := b.line, b.prog.code
	for {
		op := code[pc]
		pc++
		switch op {

		case opChar:
			if lp < len(line) && line[lp] == code[pc] {
				pc++
				lp++
				continue
			}
			return false

		case opAny:
			if lp < len(line) {
				lp++
				continue
			}
			return false

		case opDollar:
			if lp >= len(line) {
				continue
			}
			return false

		case opEnd:
			return true

		case opClass:
			if lp < len(line) && byteset.Load(code[pc:]).Contains(line[lp]) {
				pc += byteset.Size
				lp++
				continue
			}
			return false

		case opBra:
			b.braStart[code[pc]] = lp
			pc++
			continue

		case opKet:
			b.braEnd[code[pc]] = lp
			pc++
			continue

		case opBackref:
			idx := code[pc]
			pc++
			if b.braEnd[idx] == unset {
				return false
			}
			span := line[b.braStart[idx]:b.braEnd[idx]]
			if lp+len(span) <= len(line) && bytes.Equal(span, line[lp:lp+len(span)]) {
				lp += len(span)
				continue
			}
			return false

		case opBackref | opStarBit:
			idx := code[pc]
			pc++
			if b.braEnd[idx] == unset {
				return false
			}
			span := line[b.braStart[idx]:b.braEnd[idx]]
			n := len(span)
			if n == 0 {
				// An empty capture repeats without consuming; treat the
				// star as zero repetitions so the attempt terminates.
				continue
			}
			curlp := lp
			for lp+n <= len(line) && bytes.Equal(span, line[lp:lp+n]) {
				lp += n
			}
			// Backtrack a whole span at a time, never single bytes.
			for lp >= curlp {
				if b.advance(lp, pc) {
					return true
				}
				lp -= n
			}
			return false

		case opChar | opStarBit:
			ch := code[pc]
			pc++
			curlp := lp
			for lp < len(line) && line[lp] == ch {
				lp++
			}
			return b.star(curlp, lp, pc)

		case opAny | opStarBit:
			return b.star(lp, len(line), pc)

		case opClass | opStarBit:
			set := byteset.Load(code[pc:])
			pc += byteset.Size
			curlp := lp
			for lp < len(line) && set.Contains(line[lp]) {
				lp++
			}
			return b.star(curlp, lp, pc)

		default:
			panic(fmt.Sprintf("vm: program botch: opcode %d at %d", op, pc-1))
		}
	}
}

// star finishes a greedy repetition whose maximal run covered
// [curlp, lp): try the rest of the program at each boundary from the
// longest run down to the empty one.
func (b *Backtracker) star(curlp, lp, pc int) bool {
	line, code := b.line, b.prog.code
	if lp == curlp {
		return b.advance(lp, pc)
	}

	// When the next instruction is a plain literal, only boundaries
	// holding that byte can possibly succeed; skip the rest.
	if code[pc] == opChar {
		ch := code[pc+1]
		for lp >= curlp {
			if lp < len(line) && line[lp] == ch {
				if b.advance(lp, pc) {
					return true
				}
			}
			lp--
		}
		return false
	}

	for lp >= curlp {
		if b.advance(lp, pc) {
			return true
		}
		lp--
	}
	return false
}
