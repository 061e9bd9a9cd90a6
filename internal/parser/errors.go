package parser

import "fmt"

// ErrorKind identifies one of the closed set of parse failure conditions.
type ErrorKind int

const (
	// InvalidEscape reports a backslash followed by a non-escapable character.
	InvalidEscape ErrorKind = iota
	// InvalidRightParen reports a closing parenthesis with no open group.
	InvalidRightParen
	// NoPrev reports a quantifier or alternation with no preceding expression.
	NoPrev
	// NoRightParen reports a group left open at the end of the expression.
	NoRightParen
	// Empty reports an expression that parsed to nothing.
	Empty
)

// ParseError describes why an expression was rejected. Pos is the rune
// index of the offending character; it is meaningful for every kind
// except NoRightParen and Empty. Ch is set only for InvalidEscape.
type ParseError struct {
	Kind ErrorKind
	Pos  int
	Ch   rune
}

func (e *ParseError) Error() string {
	switch e.Kind {
	case InvalidEscape:
		return fmt.Sprintf("invalid escape: pos = %d, char = %q", e.Pos, e.Ch)
	case InvalidRightParen:
		return fmt.Sprintf("invalid right parenthesis: pos = %d", e.Pos)
	case NoPrev:
		return fmt.Sprintf("no previous expression: pos = %d", e.Pos)
	case NoRightParen:
		return "no right parenthesis"
	case Empty:
		return "empty expression"
	default:
		return fmt.Sprintf("unknown parse error: kind = %d", e.Kind)
	}
}
