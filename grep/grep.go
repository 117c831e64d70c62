// Package grep implements the line driver: per-file iteration, the match
// loop, and output formatting with the classic flag surface (-v -c -l -n
// -b -s -h -y).
//
// The driver owns all I/O. Matching itself is delegated to a compiled
// v7grep.Regex, so tests can exercise either layer on its own.
package grep

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/coregx/v7grep"
)

const (
	// lineMax is the longest line the matcher sees. Longer lines split
	// here; the remainder becomes the next logical line.
	lineMax = 511

	// BlockSize divides byte offsets into the block numbers printed
	// under -b.
	BlockSize = 512
)

// Options selects the driver's output mode and polarity. The zero value
// prints every matching line, prefixed with the filename when more than
// one file is scanned.
type Options struct {
	// Invert reports lines that do NOT match.
	Invert bool

	// Count prints only a per-file count of reported lines.
	Count bool

	// FilesWithMatches prints only the names of files with at least one
	// reported line, and stops scanning a file at its first hit.
	FilesWithMatches bool

	// LineNumber prefixes each line with its 1-based line number.
	LineNumber bool

	// BlockNumber prefixes each line with the block number of the byte
	// before its terminator, counted in BlockSize-byte blocks.
	BlockNumber bool

	// Silent suppresses all output; only the exit decision is meaningful.
	Silent bool

	// NoFilename suppresses the filename prefix even with several files.
	// It does not affect the prefix on -c count lines.
	NoFilename bool

	// FoldCase rewrites the pattern so lowercase letters also match
	// their uppercase forms.
	FoldCase bool
}

// Grep drives one compiled pattern over a set of inputs.
type Grep struct {
	re    *v7grep.Regex
	opts  Options
	files []string
	out   io.Writer

	matched bool // some line was reported under the current polarity
	lineBuf []byte
}

// New compiles the pattern (after case-folding when requested) and returns
// a driver writing reported lines to out. files may be empty, in which
// case Run reads the default input stream.
func New(pattern string, files []string, opts Options, out io.Writer) (*Grep, error) {
	if opts.FoldCase {
		folded, err := FoldCase(pattern)
		if err != nil {
			return nil, err
		}
		pattern = folded
	}
	re, err := v7grep.Compile(pattern)
	if err != nil {
		return nil, err
	}
	return &Grep{
		re:      re,
		opts:    opts,
		files:   files,
		out:     out,
		lineBuf: make([]byte, 0, lineMax),
	}, nil
}

// Run scans every input in order and reports whether any line was
// reported. A file that cannot be opened aborts the run with an error
// naming it; the caller maps that to exit status 2.
//
// With FilesWithMatches and no file operands there is nothing to name, so
// the run reports no matches without reading anything.
func (g *Grep) Run(stdin io.Reader) (bool, error) {
	if len(g.files) == 0 {
		if g.opts.FilesWithMatches {
			return false, nil
		}
		g.execute(stdin, "")
		return g.matched, nil
	}
	for _, name := range g.files {
		f, err := os.Open(name)
		if err != nil {
			return g.matched, fmt.Errorf("can't open %s: %w", name, err)
		}
		g.execute(f, name)
		f.Close()
	}
	return g.matched, nil
}

// execute runs the per-line loop over one input.
func (g *Grep) execute(r io.Reader, name string) {
	br := bufio.NewReader(r)
	var (
		lnum int64 // 1-based line number, truncation chunks included
		tln  int64 // reported lines in this file
		off  int64 // bytes consumed from this input so far
	)
	for {
		lnum++
		line, consumed, err := g.readLine(br)
		off += int64(consumed)
		if err != nil {
			// End of input (or a failed read) before a newline: any
			// partial line was never terminated and is not matched.
			if g.opts.Count {
				g.countLine(name, tln)
			}
			return
		}

		// Bytes at and past an embedded NUL take no part in matching or
		// output; NUL is the terminator inside the matcher.
		if i := bytes.IndexByte(line, 0); i >= 0 {
			line = line[:i]
		}

		if g.re.Match(line) != g.opts.Invert {
			g.matched = true
			switch {
			case g.opts.Silent:
			case g.opts.Count:
				tln++
			case g.opts.FilesWithMatches:
				fmt.Fprintf(g.out, "%s\n", name)
				return
			default:
				g.printLine(name, line, lnum, off)
			}
		}
	}
}

// readLine reads one logical line: bytes up to a newline, capped at
// lineMax. consumed counts every byte taken from the reader, newline
// included. A non-nil error means the line was never terminated.
func (g *Grep) readLine(br *bufio.Reader) (line []byte, consumed int, err error) {
	buf := g.lineBuf[:0]
	for {
		c, err := br.ReadByte()
		if err != nil {
			return buf, len(buf), err
		}
		if c == '\n' {
			return buf, len(buf) + 1, nil
		}
		buf = append(buf, c)
		if len(buf) >= lineMax {
			return buf, len(buf), nil
		}
	}
}

// printLine writes one reported line with its prefixes, in fixed order:
// filename, block number, line number.
func (g *Grep) printLine(name string, line []byte, lnum, end int64) {
	if len(g.files) > 1 && !g.opts.NoFilename {
		fmt.Fprintf(g.out, "%s:", name)
	}
	if g.opts.BlockNumber {
		fmt.Fprintf(g.out, "%d:", (end-1)/BlockSize)
	}
	if g.opts.LineNumber {
		fmt.Fprintf(g.out, "%d:", lnum)
	}
	g.out.Write(line)
	g.out.Write([]byte{'\n'})
}

// countLine writes one per-file count. The filename prefix follows the
// file count alone; -h does not suppress it here.
func (g *Grep) countLine(name string, tln int64) {
	if len(g.files) > 1 {
		fmt.Fprintf(g.out, "%s:", name)
	}
	fmt.Fprintf(g.out, "%d\n", tln)
}
