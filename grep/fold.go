package grep

import "errors"

// foldMax bounds the rewritten pattern, leaving slack for one worst-case
// [Xx] expansion per step.
const foldMax = 256 - 5

// ErrPatternTooLong indicates the case-fold rewrite outgrew the pattern
// buffer.
var ErrPatternTooLong = errors.New("argument too long")

// FoldCase rewrites a pattern so lowercase letters also match uppercase
// input: outside classes and escape pairs, each lowercase x becomes [Xx].
// Class interiors are copied verbatim, so [a-z] keeps its meaning. The
// rewrite is idempotent over patterns with no bare lowercase letters.
func FoldCase(pattern string) (string, error) {
	out := make([]byte, 0, len(pattern))
	for p := 0; p < len(pattern); {
		switch c := pattern[p]; {
		case c == '\\':
			out = append(out, c)
			p++
			if p < len(pattern) {
				out = append(out, pattern[p])
				p++
			}
		case c == '[':
			for p < len(pattern) && pattern[p] != ']' {
				out = append(out, pattern[p])
				p++
			}
		case c >= 'a' && c <= 'z':
			out = append(out, '[', c-'a'+'A', c, ']')
			p++
		default:
			out = append(out, c)
			p++
		}
		if len(out) >= foldMax {
			return "", ErrPatternTooLong
		}
	}
	return string(out), nil
}
