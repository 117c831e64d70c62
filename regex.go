// Package v7grep provides a line-oriented regex engine with the classic
// grep pattern dialect.
//
// Patterns are compiled to a compact byte-coded program and executed by a
// recursive backtracking matcher with capture groups and backreferences:
//
//	^      anchor at the start of the line
//	.      any byte
//	$      end of line (final pattern byte only)
//	*      zero or more of the previous element, greedy
//	[...]  byte class, '^' negates, '-' ranges
//	\(..\) capture group (up to 9)
//	\1-\9  backreference
//
// Basic usage:
//
//	re, err := v7grep.Compile(`a.*b`)
//	if err != nil {
//	    // malformed pattern
//	}
//	re.Match([]byte("aXXb")) // true
//
// A Regex matches one line at a time; input never spans a newline. Lines
// are bytes, not runes: bytes above 0x7F match '.', literal occurrences of
// themselves, and any class holding their low 7 bits, since class tests
// mask to 7 bits.
//
// A Regex owns reusable match state and must not be used from more than
// one goroutine at a time.
package v7grep

import (
	"bytes"

	"github.com/coregx/v7grep/prefilter"
	"github.com/coregx/v7grep/vm"
)

// Regex is a compiled pattern plus the execution strategy chosen for it.
type Regex struct {
	prog     *vm.Program
	bt       *vm.Backtracker
	strategy Strategy
	pf       prefilter.Prefilter
	literal  *prefilter.Literal
	pattern  string
}

// Compile compiles a pattern.
//
// Malformed patterns — an unterminated class, unbalanced group
// delimiters, a tenth group, a backreference to an unclosed group, or a
// program over the size bound — return an error wrapping vm.ErrSyntax.
func Compile(pattern string) (*Regex, error) {
	prog, err := vm.Compile(pattern)
	if err != nil {
		return nil, err
	}

	r := &Regex{
		prog:    prog,
		bt:      vm.NewBacktracker(prog),
		pattern: pattern,
	}
	r.strategy = selectStrategy(prog)

	switch r.strategy {
	case UseLiteral:
		lit, _ := prog.Literal()
		l, lerr := prefilter.NewLiteral(lit)
		if lerr != nil {
			// No automaton, no bypass; candidate scanning still applies.
			r.strategy = UseFirstByte
			c, _ := prog.FirstByte()
			r.pf = prefilter.NewFirstByte(c)
			break
		}
		r.literal = l
		r.pf = l
	case UseFirstByte:
		c, _ := prog.FirstByte()
		r.pf = prefilter.NewFirstByte(c)
	}
	return r, nil
}

// MustCompile compiles a pattern known to be valid and panics if it is not.
func MustCompile(pattern string) *Regex {
	re, err := Compile(pattern)
	if err != nil {
		panic("v7grep: Compile(" + pattern + "): " + err.Error())
	}
	return re
}

// String returns the source pattern.
func (r *Regex) String() string {
	return r.pattern
}

// Anchored reports whether the pattern began with '^'.
func (r *Regex) Anchored() bool {
	return r.prog.Anchored()
}

// Strategy returns the execution strategy chosen at compile time.
func (r *Regex) Strategy() Strategy {
	return r.strategy
}

// Match reports whether the line contains a match. The line must not
// contain a newline; bytes at and past an embedded NUL are ignored, NUL
// being the line terminator of the dialect.
//
// An anchored pattern is tried at position 0 only; anything else is tried
// at every position up to and including end-of-line, with the prefilter
// narrowing the attempts where one applies. Every strategy returns exactly
// what the position-by-position loop would.
func (r *Regex) Match(line []byte) bool {
	if i := bytes.IndexByte(line, 0); i >= 0 {
		line = line[:i]
	}

	switch r.strategy {
	case UseAnchored:
		return r.bt.MatchAt(line, 0)

	case UseLiteral:
		return r.literal.IsMatch(line)

	case UseFirstByte:
		for pos := 0; ; pos++ {
			pos = r.pf.Find(line, pos)
			if pos < 0 {
				return false
			}
			if r.bt.MatchAt(line, pos) {
				return true
			}
		}

	default:
		for pos := 0; pos <= len(line); pos++ {
			if r.bt.MatchAt(line, pos) {
				return true
			}
		}
		return false
	}
}

// MatchString is Match for a string line.
func (r *Regex) MatchString(line string) bool {
	return r.Match([]byte(line))
}
