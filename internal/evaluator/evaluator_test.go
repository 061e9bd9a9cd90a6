package evaluator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/regexvm-go/regexvm/internal/codegen"
	"github.com/regexvm-go/regexvm/internal/parser"
)

func compile(t *testing.T, expr string) []codegen.Inst {
	t.Helper()
	ast, err := parser.Parse(expr)
	require.NoError(t, err)
	prog, err := codegen.Generate(ast)
	require.NoError(t, err)
	return prog
}

func TestEvalDepthFirst(t *testing.T) {
	tests := []struct {
		expr string
		line string
		want bool
	}{
		// Anchored prefix semantics.
		{"abc", "abc", true},
		{"abc", "abcdef", true},
		{"abc", "xabc", false},
		{"abc", "ab", false},

		// Alternation.
		{"abc|def", "def", true},
		{"abc|def", "abc", true},
		{"abc|def", "efa", false},

		// Star allows zero repetitions.
		{"(abc)*", "abcabc", true},
		{"(abc)*", "", true},
		{"(abc)*", "xyz", true},

		// Plus requires at least one.
		{"(ab|cd)+", "abcdcd", true},
		{"(ab|cd)+", "cd", true},
		{"(ab|cd)+", "", false},
		{"(ab|cd)+", "xy", false},

		// Question.
		{"abc?", "ab", true},
		{"abc?", "abc", true},
		{"abc?", "acb", false},

		// Dot consumes exactly one symbol and needs one to exist.
		{"a.c", "abc", true},
		{"a.c", "ac", false},
		{"a.", "a", false},
		{".*", "anything", true},

		// Dollar.
		{"abc$", "abc", true},
		{"abc$", "abcd", false},
		{"a*$", "aaa", true},

		// Caret at offset zero.
		{"^abc", "abc", true},
		{"^", "whatever", true},

		// Quantified groups backtrack into earlier repetitions.
		{"(ab)*ab", "abab", true},
		{"(ab)*abc", "ababc", true},
		{"a*ab", "aaab", true},
	}

	for _, tt := range tests {
		prog := compile(t, tt.expr)
		got, err := Eval(prog, []rune(tt.line), 0, DepthFirst)
		require.NoError(t, err, "expr %q line %q", tt.expr, tt.line)
		assert.Equal(t, tt.want, got, "expr %q line %q", tt.expr, tt.line)
	}
}

// A caret only holds when the supplied slice really is the start of the
// line, which the absolute start offset tracks.
func TestEvalCaretOffset(t *testing.T) {
	prog := compile(t, "^abc")
	line := []rune("abcabc")

	got, err := Eval(prog, line, 0, DepthFirst)
	require.NoError(t, err)
	assert.True(t, got)

	got, err = Eval(prog, line[3:], 3, DepthFirst)
	require.NoError(t, err)
	assert.False(t, got)
}

// An unanchored pattern matched at a later offset ignores the offset.
func TestEvalLaterOffset(t *testing.T) {
	prog := compile(t, "abc")
	line := []rune("xxabc")

	got, err := Eval(prog, line[2:], 2, DepthFirst)
	require.NoError(t, err)
	assert.True(t, got)
}

// Split explores its first target to exhaustion before the second, so
// the left alternative wins when both could match.
func TestEvalSplitOrdering(t *testing.T) {
	// "a|ab" against "ab": the left branch already matches the prefix "a".
	prog := compile(t, "(a|ab)c")
	got, err := Eval(prog, []rune("abc"), 0, DepthFirst)
	require.NoError(t, err)
	// Left branch consumes "a", then "c" fails against "b"; backtracking
	// must recover via the right branch.
	assert.True(t, got)
}

func TestEvalCaretMidProgram(t *testing.T) {
	prog := compile(t, "a^b")
	_, err := Eval(prog, []rune("ab"), 0, DepthFirst)
	require.ErrorIs(t, err, ErrInvalidPC)
}

func TestEvalInvalidPC(t *testing.T) {
	// A jump past the end of the program is a compiler defect; the
	// evaluator must report it rather than matching or crashing.
	prog := []codegen.Inst{{Op: codegen.OpJump, X: 5}}
	_, err := Eval(prog, []rune("a"), 0, DepthFirst)
	require.ErrorIs(t, err, ErrInvalidPC)

	_, err = Eval(nil, []rune("a"), 0, DepthFirst)
	require.ErrorIs(t, err, ErrInvalidPC)
}

func TestEvalUnsupportedStrategy(t *testing.T) {
	prog := compile(t, "abc")

	_, err := Eval(prog, []rune("abc"), 0, BreadthFirst)
	require.ErrorIs(t, err, ErrUnsupportedStrategy)

	_, err = Eval(prog, []rune("abc"), 0, Strategy(42))
	require.ErrorIs(t, err, ErrUnsupportedStrategy)
}
