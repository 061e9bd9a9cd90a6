// Package regexvm provides a minimal backtracking regular expression
// engine. A pattern is parsed into a syntax tree, translated into a flat
// instruction program, and evaluated against input by a depth-first
// recursive virtual machine.
//
// Matching is anchored: a pattern matches a prefix of the supplied text.
// Callers that want to find a match anywhere in a line compile once and
// probe successive offsets with MatchRunes.
package regexvm

import (
	"fmt"
	"io"

	"github.com/regexvm-go/regexvm/internal/codegen"
	"github.com/regexvm-go/regexvm/internal/evaluator"
	"github.com/regexvm-go/regexvm/internal/parser"
)

// Regexp is a compiled pattern. It is immutable after Compile and may be
// reused across any number of match attempts.
type Regexp struct {
	expr string
	ast  parser.AST
	prog []codegen.Inst
}

// Compile parses and translates expr into a reusable program.
func Compile(expr string) (*Regexp, error) {
	ast, err := parser.Parse(expr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse pattern: %w", err)
	}
	prog, err := codegen.Generate(ast)
	if err != nil {
		return nil, fmt.Errorf("failed to compile pattern: %w", err)
	}
	return &Regexp{expr: expr, ast: ast, prog: prog}, nil
}

// String returns the source pattern.
func (re *Regexp) String() string {
	return re.expr
}

// NumInst returns the length of the compiled program.
func (re *Regexp) NumInst() int {
	return len(re.prog)
}

// MatchString reports whether s matches the pattern, anchored at its start.
// A false result with a nil error is a normal failed match.
func (re *Regexp) MatchString(s string) (bool, error) {
	return re.MatchRunes([]rune(s), 0)
}

// MatchRunes attempts a match against line beginning at the given offset.
// The offset is also what a leading caret asserts against, so scanning a
// line offset by offset behaves correctly for anchored patterns.
func (re *Regexp) MatchRunes(line []rune, start int) (bool, error) {
	if start < 0 || start > len(line) {
		return false, fmt.Errorf("start offset %d out of range [0, %d]", start, len(line))
	}
	return evaluator.Eval(re.prog, line[start:], start, evaluator.DepthFirst)
}

// Explain writes the syntax tree and the numbered instruction listing
// of the compiled pattern to w.
func (re *Regexp) Explain(w io.Writer) error {
	if _, err := fmt.Fprintf(w, "pattern: %s\nast: %s\nprogram:\n", re.expr, re.ast); err != nil {
		return err
	}
	for addr, inst := range re.prog {
		if _, err := fmt.Fprintf(w, "%04d: %s\n", addr, inst); err != nil {
			return err
		}
	}
	return nil
}

// Match compiles expr and evaluates it against text, anchored at the
// start of text. It propagates the first error from the parse, compile,
// or evaluate stage; a failed match is (false, nil), not an error.
func Match(expr, text string) (bool, error) {
	re, err := Compile(expr)
	if err != nil {
		return false, err
	}
	return re.MatchString(text)
}

// Explain compiles expr and writes its syntax tree and instruction
// listing to w without evaluating anything.
func Explain(w io.Writer, expr string) error {
	re, err := Compile(expr)
	if err != nil {
		return err
	}
	return re.Explain(w)
}
