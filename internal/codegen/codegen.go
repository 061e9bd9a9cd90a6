// Package codegen translates a parsed expression tree into a flat,
// addressable instruction program for the evaluator.
package codegen

import (
	"errors"
	"fmt"

	"github.com/regexvm-go/regexvm/internal/parser"
	"github.com/regexvm-go/regexvm/internal/safemath"
)

var (
	// ErrPCOverflow reports a program too large for the counter.
	ErrPCOverflow = errors.New("program counter overflow")
	// ErrFailOr reports a malformed alternation patch. Defect, not input error.
	ErrFailOr = errors.New("alternation patch target is not the expected instruction")
	// ErrFailStar reports a malformed star patch. Defect, not input error.
	ErrFailStar = errors.New("star patch target is not the expected instruction")
	// ErrFailQuestion reports a malformed question patch. Defect, not input error.
	ErrFailQuestion = errors.New("question patch target is not the expected instruction")
)

// generator carries the program counter and the instruction buffer.
// The pc tracks len(insts) with checked increments so a pathologically
// large tree fails with ErrPCOverflow instead of wrapping an address.
type generator struct {
	pc    int
	insts []Inst
}

// Generate compiles ast into an instruction program. The returned program
// ends with exactly one OpMatch, and every OpJump/OpSplit operand is a
// valid index into it.
func Generate(ast parser.AST) ([]Inst, error) {
	g := &generator{}
	if err := g.expr(ast); err != nil {
		return nil, err
	}
	if err := g.emit(Inst{Op: OpMatch}); err != nil {
		return nil, err
	}
	return g.insts, nil
}

func (g *generator) incPC() error {
	return safemath.Add(&g.pc, 1, ErrPCOverflow)
}

// emit appends one instruction and advances the pc past it.
func (g *generator) emit(inst Inst) error {
	g.insts = append(g.insts, inst)
	return g.incPC()
}

func (g *generator) expr(ast parser.AST) error {
	switch n := ast.(type) {
	case parser.Char:
		return g.emit(Inst{Op: OpChar, Ch: n.Ch})
	case parser.Dot:
		return g.emit(Inst{Op: OpDot})
	case parser.Caret:
		return g.emit(Inst{Op: OpCaret})
	case parser.Dollar:
		return g.emit(Inst{Op: OpDollar})
	case parser.Seq:
		for _, c := range n.Children {
			if err := g.expr(c); err != nil {
				return err
			}
		}
		return nil
	case parser.Or:
		return g.genOr(n)
	case parser.Plus:
		return g.genPlus(n)
	case parser.Star:
		return g.genStar(n)
	case parser.Question:
		return g.genQuestion(n)
	default:
		return fmt.Errorf("unsupported AST node: %T", ast)
	}
}

// genOr emits
//
//	split L1, L2
//	L1: code(left)
//	    jump L3
//	L2: code(right)
//	L3:
//
// L2 and L3 are not known when their instructions are emitted, so both
// are written as placeholders and patched once the addresses exist.
func (g *generator) genOr(n parser.Or) error {
	splitAddr := g.pc
	if err := g.incPC(); err != nil {
		return err
	}
	g.insts = append(g.insts, Inst{Op: OpSplit, X: g.pc})

	if err := g.expr(n.Left); err != nil {
		return err
	}

	jmpAddr := g.pc
	g.insts = append(g.insts, Inst{Op: OpJump})
	if err := g.incPC(); err != nil {
		return err
	}

	if splitAddr >= len(g.insts) || g.insts[splitAddr].Op != OpSplit {
		return ErrFailOr
	}
	g.insts[splitAddr].Y = g.pc

	if err := g.expr(n.Right); err != nil {
		return err
	}

	if jmpAddr >= len(g.insts) || g.insts[jmpAddr].Op != OpJump {
		return ErrFailOr
	}
	g.insts[jmpAddr].X = g.pc
	return nil
}

// genPlus emits
//
//	L1: code(child)
//	    split L1, L2
//	L2:
//
// No patching: both targets are known once the split's own address is.
func (g *generator) genPlus(n parser.Plus) error {
	l1 := g.pc
	if err := g.expr(n.Child); err != nil {
		return err
	}
	if err := g.incPC(); err != nil {
		return err
	}
	g.insts = append(g.insts, Inst{Op: OpSplit, X: l1, Y: g.pc})
	return nil
}

// genStar emits
//
//	L1: split L2, L3
//	L2: code(child)
//	    jump L1
//	L3:
func (g *generator) genStar(n parser.Star) error {
	l1 := g.pc
	if err := g.incPC(); err != nil {
		return err
	}
	g.insts = append(g.insts, Inst{Op: OpSplit, X: g.pc})

	if err := g.expr(n.Child); err != nil {
		return err
	}

	g.insts = append(g.insts, Inst{Op: OpJump, X: l1})
	if err := g.incPC(); err != nil {
		return err
	}

	if l1 >= len(g.insts) || g.insts[l1].Op != OpSplit {
		return ErrFailStar
	}
	g.insts[l1].Y = g.pc
	return nil
}

// genQuestion emits
//
//	split L1, L2
//	L1: code(child)
//	L2:
func (g *generator) genQuestion(n parser.Question) error {
	splitAddr := g.pc
	if err := g.incPC(); err != nil {
		return err
	}
	g.insts = append(g.insts, Inst{Op: OpSplit, X: g.pc})

	if err := g.expr(n.Child); err != nil {
		return err
	}

	if splitAddr >= len(g.insts) || g.insts[splitAddr].Op != OpSplit {
		return ErrFailQuestion
	}
	g.insts[splitAddr].Y = g.pc
	return nil
}
