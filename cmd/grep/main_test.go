package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runGrep(t *testing.T, argv []string, stdin string) (code int, stdout, stderr string) {
	t.Helper()
	var out, errb bytes.Buffer
	code = run(argv, strings.NewReader(stdin), &out, &errb)
	return code, out.String(), errb.String()
}

func TestExitStatusContract(t *testing.T) {
	code, out, _ := runGrep(t, []string{"hello"}, "hello world\ngoodbye\n")
	assert.Equal(t, 0, code)
	assert.Equal(t, "hello world\n", out)

	code, out, _ = runGrep(t, []string{"absent"}, "hello world\n")
	assert.Equal(t, 1, code)
	assert.Empty(t, out)
}

func TestBadPatternExits2(t *testing.T) {
	code, out, stderr := runGrep(t, []string{`\(`}, "anything\n")
	assert.Equal(t, 2, code)
	assert.Empty(t, out)
	assert.Contains(t, stderr, "grep:")
}

func TestMissingPatternExits2(t *testing.T) {
	code, _, stderr := runGrep(t, nil, "")
	assert.Equal(t, 2, code)
	assert.Contains(t, stderr, "usage:")
}

func TestUnknownFlagExits2(t *testing.T) {
	code, _, stderr := runGrep(t, []string{"-q", "pat"}, "")
	assert.Equal(t, 2, code)
	assert.Contains(t, stderr, "grep:")
}

func TestDashEPattern(t *testing.T) {
	code, out, _ := runGrep(t, []string{"-e", "-dash-"}, "a -dash- b\nplain\n")
	assert.Equal(t, 0, code)
	assert.Equal(t, "a -dash- b\n", out)
}

func TestFlagsStopAtFirstNonFlag(t *testing.T) {
	dir := t.TempDir()
	name := filepath.Join(dir, "f")
	require.NoError(t, os.WriteFile(name, []byte("-v\nx\n"), 0o644))

	// "-v" after the pattern is a file operand, not a flag.
	code, _, stderr := runGrep(t, []string{"x", "-v", name}, "")
	assert.Equal(t, 2, code)
	assert.Contains(t, stderr, "can't open -v")
}

func TestInvertFlag(t *testing.T) {
	code, out, _ := runGrep(t, []string{"-v", "xyz"}, "xyz\nabc\n")
	assert.Equal(t, 0, code)
	assert.Equal(t, "abc\n", out)
}

func TestCountFiles(t *testing.T) {
	dir := t.TempDir()
	f1 := filepath.Join(dir, "f1")
	f2 := filepath.Join(dir, "f2")
	require.NoError(t, os.WriteFile(f1, []byte("q\nq\nr\n"), 0o644))
	require.NoError(t, os.WriteFile(f2, []byte("r\n"), 0o644))

	code, out, _ := runGrep(t, []string{"-c", "q", f1, f2}, "")
	assert.Equal(t, 0, code)
	assert.Equal(t, f1+":2\n"+f2+":0\n", out)
}

func TestFoldCaseFlag(t *testing.T) {
	code, out, _ := runGrep(t, []string{"-y", "a"}, "Apple\nBANANA\nxyz\n")
	assert.Equal(t, 0, code)
	assert.Equal(t, "Apple\nBANANA\n", out)
}

func TestListFlagNoFilesExits1(t *testing.T) {
	code, out, _ := runGrep(t, []string{"-l", "q"}, "q\n")
	assert.Equal(t, 1, code)
	assert.Empty(t, out)
}

func TestSilentFlag(t *testing.T) {
	code, out, _ := runGrep(t, []string{"-s", "q"}, "q\n")
	assert.Equal(t, 0, code)
	assert.Empty(t, out)
}

func TestCombinedFlags(t *testing.T) {
	code, out, _ := runGrep(t, []string{"-vn", "a"}, "abc\nxyz\nqrs\n")
	assert.Equal(t, 0, code)
	assert.Equal(t, "2:xyz\n3:qrs\n", out)
}

func TestMissingFileExits2(t *testing.T) {
	code, _, stderr := runGrep(t, []string{"q", filepath.Join(t.TempDir(), "nope")}, "")
	assert.Equal(t, 2, code)
	assert.Contains(t, stderr, "can't open")
}

func TestArgumentTooLong(t *testing.T) {
	code, _, stderr := runGrep(t, []string{"-y", strings.Repeat("a", 100)}, "")
	assert.Equal(t, 2, code)
	assert.Contains(t, stderr, "argument too long")
}
