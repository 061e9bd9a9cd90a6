package regexvm

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/regexvm-go/regexvm/internal/parser"
)

func TestMatch(t *testing.T) {
	tests := []struct {
		expr string
		text string
		want bool
	}{
		{"abc", "abcdef", true},
		{"abc", "xabc", false},
		{"abc|def", "def", true},
		{"abc|def", "efa", false},
		{"(abc)*", "abcabc", true},
		{"(abc)*", "", true},
		{"(ab|cd)+", "abcdcd", true},
		{"(ab|cd)+", "", false},
		{"abc?", "ab", true},
		{"abc?", "acb", false},
		{"a(bc)+|c(def)*", "cdefdefdef", true},
		{"a(bc)+|c(def)*", "abcbc", true},
		{"a(bc)+|c(def)*", "ab", false},
	}

	for _, tt := range tests {
		got, err := Match(tt.expr, tt.text)
		require.NoError(t, err, "expr %q text %q", tt.expr, tt.text)
		assert.Equal(t, tt.want, got, "expr %q text %q", tt.expr, tt.text)
	}
}

func TestMatchErrorPropagation(t *testing.T) {
	tests := []struct {
		name string
		expr string
	}{
		{"leading quantifier", "+b"},
		{"unclosed group", "(abc"},
		{"stray right paren", "abc)"},
		{"bad escape", `\d`},
		{"empty", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Match(tt.expr, "anything")

			var perr *parser.ParseError
			require.ErrorAs(t, err, &perr)
		})
	}
}

func TestCompileReuse(t *testing.T) {
	re, err := Compile("^ab")
	require.NoError(t, err)

	line := []rune("abab")
	got, err := re.MatchRunes(line, 0)
	require.NoError(t, err)
	assert.True(t, got)

	// Same program, later offset: the caret must see the offset and fail.
	got, err = re.MatchRunes(line, 2)
	require.NoError(t, err)
	assert.False(t, got)

	_, err = re.MatchRunes(line, 5)
	require.Error(t, err)
}

func TestMatchRunesEvaluatesSuffix(t *testing.T) {
	re, err := Compile("cd")
	require.NoError(t, err)

	got, err := re.MatchRunes([]rune("abcd"), 2)
	require.NoError(t, err)
	assert.True(t, got)
}

func TestExplain(t *testing.T) {
	var sb strings.Builder
	require.NoError(t, Explain(&sb, "a|b"))

	want := `pattern: a|b
ast: Or(Seq(Char(a)), Seq(Char(b)))
program:
0000: split 0001, 0003
0001: char a
0002: jump 0004
0003: char b
0004: match
`
	assert.Equal(t, want, sb.String())
}

func TestExplainBadPattern(t *testing.T) {
	var sb strings.Builder
	err := Explain(&sb, "(abc")
	require.Error(t, err)
	assert.Empty(t, sb.String())
}

func TestAnalyze(t *testing.T) {
	res, err := Analyze("^(ab|cd)+$")
	require.NoError(t, err)
	assert.Equal(t, []string{"Alternation", "Anchors", "Literal", "Quantifiers"}, res.FeatureLabels)
	assert.True(t, res.HasLoop)
	assert.Equal(t, 2, res.SplitCount)

	_, err = Analyze("+a")
	require.Error(t, err)
}

func TestRegexpAccessors(t *testing.T) {
	re, err := Compile("a|b")
	require.NoError(t, err)
	assert.Equal(t, "a|b", re.String())
	assert.Equal(t, 5, re.NumInst())
}
