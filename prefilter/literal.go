package prefilter

import (
	"github.com/coregx/ahocorasick"
)

// Literal is the complete prefilter for exact-literal programs: the
// automaton scan decides the line by itself and the backtracker never runs.
// The automaton accepts any number of literals, so a future multi-pattern
// front end can share this path unchanged.
type Literal struct {
	auto *ahocorasick.Automaton
}

// NewLiteral builds a Literal over the given byte strings. It fails only
// if the automaton cannot be constructed, in which case the caller should
// fall back to engine verification.
func NewLiteral(literals ...[]byte) (*Literal, error) {
	builder := ahocorasick.NewBuilder()
	for _, lit := range literals {
		builder.AddPattern(lit)
	}
	auto, err := builder.Build()
	if err != nil {
		return nil, err
	}
	return &Literal{auto: auto}, nil
}

// Find returns the start of the first literal occurrence at or after
// start, or -1.
func (l *Literal) Find(line []byte, start int) int {
	if start > len(line) {
		return -1
	}
	m := l.auto.Find(line, start)
	if m == nil {
		return -1
	}
	return m.Start
}

// IsMatch reports whether any literal occurs in the line.
func (l *Literal) IsMatch(line []byte) bool {
	return l.auto.IsMatch(line)
}

// IsComplete returns true: a hit is a full match.
func (l *Literal) IsComplete() bool {
	return true
}
