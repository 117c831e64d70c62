package vm

import (
	"fmt"
	"strings"
)

// Limits of the dialect. Compiled programs never exceed MaxProgram bytes,
// and at most MaxGroups capture groups may be open over a pattern's
// lifetime. Both bounds are checked during compilation, never at match time.
const (
	// MaxProgram is the size bound of a compiled program in bytes,
	// including the terminating end opcode.
	MaxProgram = 256

	// MaxGroups is the number of capture groups a pattern may use, and
	// therefore the highest backreference ('\9').
	MaxGroups = 9
)

// Program is a compiled pattern: an immutable instruction buffer plus the
// anchor flag. A Program carries no match state; construct a Backtracker
// to run it. Programs are safe to share, Backtrackers are not.
type Program struct {
	code     []byte
	anchored bool
}

// Anchored reports whether the pattern began with '^', i.e. whether a
// match may start only at position 0.
func (p *Program) Anchored() bool {
	return p.anchored
}

// Code returns the instruction buffer. Callers must not modify it.
func (p *Program) Code() []byte {
	return p.code
}

// FirstByte returns the literal byte the match must start with, when the
// program's first instruction is an unstarred char. The caller can then
// restrict match attempts to positions holding that byte.
func (p *Program) FirstByte() (byte, bool) {
	if p.code[0] == opChar {
		return p.code[1], true
	}
	return 0, false
}

// Literal returns the exact byte string the program is equivalent to, when
// the whole program is a chain of unstarred char instructions. Such a
// program matches a line iff the line contains that substring, which lets
// the caller bypass the backtracker entirely. The second result is false
// when the program is anything but a pure literal, or when the literal is
// empty (an empty program matches everything; there is nothing to scan for).
func (p *Program) Literal() ([]byte, bool) {
	var lit []byte
	pc := 0
	for p.code[pc] == opChar {
		lit = append(lit, p.code[pc+1])
		pc += 2
	}
	if p.code[pc] != opEnd || len(lit) == 0 {
		return nil, false
	}
	return lit, true
}

// String renders the program one instruction per line, for tests and
// debugging.
func (p *Program) String() string {
	var b strings.Builder
	if p.anchored {
		b.WriteString("anchored\n")
	}
	for pc := 0; pc < len(p.code); {
		op := p.code[pc]
		fmt.Fprintf(&b, "%3d %s", pc, opName(op))
		base := op
		switch op {
		case opChar | opStarBit, opAny | opStarBit, opClass | opStarBit, opBackref | opStarBit:
			base = op &^ opStarBit
		}
		n := operandLen(base)
		switch {
		case op == opEnd || op == opDollar:
		case n == 1:
			fmt.Fprintf(&b, " %d", p.code[pc+1])
		case n == 16:
			fmt.Fprintf(&b, " %x", p.code[pc+1:pc+17])
		}
		b.WriteByte('\n')
		pc += 1 + n
		if op == opEnd {
			break
		}
	}
	return b.String()
}
