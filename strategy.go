package v7grep

import "github.com/coregx/v7grep/vm"

// Strategy is the per-line execution plan chosen when a pattern compiles.
//
// Selection is automatic from the shape of the compiled program; every
// strategy reports the same matches as the naive scan, only faster.
type Strategy int

const (
	// UseScan tries the backtracker at every position, end-of-line
	// included. Selected when no faster shape applies — the program opens
	// with '.', a class, a group, or a starred element.
	UseScan Strategy = iota

	// UseAnchored tries the backtracker at position 0 only.
	// Selected for patterns beginning with '^'.
	UseAnchored

	// UseFirstByte scans for the literal byte every match must begin
	// with and verifies only there. Selected for unanchored programs
	// opening with a plain literal.
	UseFirstByte

	// UseLiteral bypasses the backtracker: the program is an exact byte
	// string and the automaton scan is the whole decision. Selected for
	// unanchored programs that are a chain of plain literals.
	UseLiteral
)

// String returns the strategy name for tests and debug output.
func (s Strategy) String() string {
	switch s {
	case UseScan:
		return "scan"
	case UseAnchored:
		return "anchored"
	case UseFirstByte:
		return "first-byte"
	case UseLiteral:
		return "literal"
	default:
		return "unknown"
	}
}

// selectStrategy inspects a compiled program and picks the cheapest plan
// that preserves exact matching behavior.
func selectStrategy(prog *vm.Program) Strategy {
	if prog.Anchored() {
		return UseAnchored
	}
	if _, ok := prog.Literal(); ok {
		return UseLiteral
	}
	if _, ok := prog.FirstByte(); ok {
		return UseFirstByte
	}
	return UseScan
}
