// Package evaluator executes a compiled instruction program against an
// input symbol slice using depth-first backtracking.
package evaluator

import (
	"errors"
	"fmt"

	"github.com/regexvm-go/regexvm/internal/codegen"
	"github.com/regexvm-go/regexvm/internal/safemath"
)

var (
	// ErrPCOverflow reports a program counter that cannot advance.
	ErrPCOverflow = errors.New("program counter overflow")
	// ErrSPOverflow reports a scan pointer that cannot advance.
	ErrSPOverflow = errors.New("scan pointer overflow")
	// ErrInvalidPC reports execution reaching an instruction that a
	// correctly compiled program can never reach. Defect, not input error.
	ErrInvalidPC = errors.New("invalid program counter")
	// ErrUnsupportedStrategy reports a search strategy with no
	// implementation. Returned explicitly rather than masked as a
	// failed match.
	ErrUnsupportedStrategy = errors.New("unsupported search strategy")
)

// Strategy selects how the evaluator explores split alternatives.
type Strategy int

const (
	// DepthFirst explores the first split target to exhaustion before
	// trying the second. The only implemented strategy.
	DepthFirst Strategy = iota
	// BreadthFirst is reserved and not implemented.
	BreadthFirst
)

// Eval runs prog against line. line is the candidate input, already
// sliced to the attempted offset; start is that offset in the original
// line, which is what a leading caret asserts against. A false result
// with a nil error is a normal failed match.
func Eval(prog []codegen.Inst, line []rune, start int, strategy Strategy) (bool, error) {
	switch strategy {
	case DepthFirst:
		return evalDepth(prog, line, start, 0, 0)
	case BreadthFirst:
		return false, fmt.Errorf("%w: breadth-first", ErrUnsupportedStrategy)
	default:
		return false, fmt.Errorf("%w: strategy %d", ErrUnsupportedStrategy, strategy)
	}
}

// evalDepth executes instructions from (pc, sp) until the branch matches,
// fails, or errors. Splits recurse; everything else stays in the loop.
// Recursion depth is bounded by the splits along the explored path, so
// looping programs can take exponential time on adversarial input.
func evalDepth(prog []codegen.Inst, line []rune, start, pc, sp int) (bool, error) {
	for {
		if pc < 0 || pc >= len(prog) {
			return false, ErrInvalidPC
		}

		switch inst := prog[pc]; inst.Op {
		case codegen.OpChar:
			if sp >= len(line) || line[sp] != inst.Ch {
				return false, nil
			}
			if err := safemath.Add(&pc, 1, ErrPCOverflow); err != nil {
				return false, err
			}
			if err := safemath.Add(&sp, 1, ErrSPOverflow); err != nil {
				return false, err
			}

		case codegen.OpDot:
			if sp >= len(line) {
				return false, nil
			}
			if err := safemath.Add(&pc, 1, ErrPCOverflow); err != nil {
				return false, err
			}
			if err := safemath.Add(&sp, 1, ErrSPOverflow); err != nil {
				return false, err
			}

		case codegen.OpCaret:
			// The compiler only places a meaningful caret at address 0;
			// anywhere else the assertion is unsupported.
			if pc != 0 {
				return false, fmt.Errorf("%w: caret at %d", ErrInvalidPC, pc)
			}
			if start != 0 {
				return false, nil
			}
			if err := safemath.Add(&pc, 1, ErrPCOverflow); err != nil {
				return false, err
			}

		case codegen.OpDollar:
			return sp == len(line), nil

		case codegen.OpMatch:
			return true, nil

		case codegen.OpJump:
			pc = inst.X

		case codegen.OpSplit:
			matched, err := evalDepth(prog, line, start, inst.X, sp)
			if err != nil || matched {
				return matched, err
			}
			return evalDepth(prog, line, start, inst.Y, sp)

		default:
			return false, fmt.Errorf("%w: unknown op %d at %d", ErrInvalidPC, inst.Op, pc)
		}
	}
}
