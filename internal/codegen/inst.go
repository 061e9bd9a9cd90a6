package codegen

import "fmt"

// Op identifies an instruction kind.
type Op int

const (
	// OpChar consumes one input symbol equal to Ch.
	OpChar Op = iota
	// OpDot consumes any one input symbol.
	OpDot
	// OpCaret asserts the match started at the beginning of the line.
	OpCaret
	// OpDollar asserts the scan pointer reached the end of the input.
	OpDollar
	// OpMatch reports success.
	OpMatch
	// OpJump continues execution at address X.
	OpJump
	// OpSplit tries address X first, then address Y on failure.
	OpSplit
)

// Inst is one instruction of a compiled program. Ch is set for OpChar;
// X is set for OpJump and OpSplit; Y is set for OpSplit. X and Y are
// indexes into the same program and are always less than its length.
type Inst struct {
	Op Op
	Ch rune
	X  int
	Y  int
}

func (i Inst) String() string {
	switch i.Op {
	case OpChar:
		return fmt.Sprintf("char %c", i.Ch)
	case OpDot:
		return "dot"
	case OpCaret:
		return "caret"
	case OpDollar:
		return "dollar"
	case OpMatch:
		return "match"
	case OpJump:
		return fmt.Sprintf("jump %04d", i.X)
	case OpSplit:
		return fmt.Sprintf("split %04d, %04d", i.X, i.Y)
	default:
		return fmt.Sprintf("op(%d)", i.Op)
	}
}
