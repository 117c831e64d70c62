// Command grep prints lines matching (or, with -v, not matching) a
// pattern.
//
//	grep [ -bchlnsvy ] [ -e ] pattern [ file ... ]
//
// Exit status is 0 when some line was reported, 1 when none was, and 2 on
// any usage, compilation or I/O error.
package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/coregx/v7grep/grep"
	flag "github.com/spf13/pflag"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(argv []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("grep", flag.ContinueOnError)
	fs.SetInterspersed(false) // flag parsing stops at the first non-flag
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintln(stderr, "usage: grep [ -bchlnsvy ] [ -e ] pattern [ file ... ]")
	}

	var opts grep.Options
	fs.BoolVarP(&opts.Invert, "invert-match", "v", false, "print lines that do not match")
	fs.BoolVarP(&opts.Count, "count", "c", false, "print only a count of matching lines per file")
	fs.BoolVarP(&opts.FilesWithMatches, "files-with-matches", "l", false, "print only names of files with matches")
	fs.BoolVarP(&opts.LineNumber, "line-number", "n", false, "prefix each line with its line number")
	fs.BoolVarP(&opts.BlockNumber, "block-number", "b", false, "prefix each line with its block number")
	fs.BoolVarP(&opts.Silent, "silent", "s", false, "suppress output; only the exit status matters")
	fs.BoolVarP(&opts.NoFilename, "no-filename", "h", false, "never prefix lines with filenames")
	fs.BoolVarP(&opts.FoldCase, "fold-case", "y", false, "lowercase pattern letters also match uppercase input")
	pat := fs.StringP("regexp", "e", "", "use pattern for matching (it may begin with -)")

	if err := fs.Parse(argv); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 2
		}
		fmt.Fprintf(stderr, "grep: %v\n", err)
		return 2
	}

	args := fs.Args()
	pattern := *pat
	if !fs.Changed("regexp") {
		if len(args) == 0 {
			fs.Usage()
			return 2
		}
		pattern = args[0]
		args = args[1:]
	}

	out := bufio.NewWriter(stdout)
	g, err := grep.New(pattern, args, opts, out)
	if err != nil {
		fmt.Fprintf(stderr, "grep: %v\n", err)
		return 2
	}

	matched, err := g.Run(stdin)
	out.Flush()
	if err != nil {
		fmt.Fprintf(stderr, "grep: %v\n", err)
		return 2
	}
	if matched {
		return 0
	}
	return 1
}
