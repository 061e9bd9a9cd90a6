package parser

import (
	"fmt"
	"strings"
)

// AST is a node of the parsed expression tree. Each node exclusively owns
// its children; the tree is built once per Parse call and never aliased.
type AST interface {
	fmt.Stringer
	astNode()
}

// Char matches a single literal symbol.
type Char struct {
	Ch rune
}

// Dot matches any single symbol.
type Dot struct{}

// Caret asserts the start of the input without consuming a symbol.
type Caret struct{}

// Dollar asserts the end of the input without consuming a symbol.
type Dollar struct{}

// Plus matches its child one or more times.
type Plus struct {
	Child AST
}

// Star matches its child zero or more times.
type Star struct {
	Child AST
}

// Question matches its child zero or one time.
type Question struct {
	Child AST
}

// Or matches either of its two branches, preferring the left one.
type Or struct {
	Left  AST
	Right AST
}

// Seq matches its children one after another, in order.
type Seq struct {
	Children []AST
}

func (Char) astNode()     {}
func (Dot) astNode()      {}
func (Caret) astNode()    {}
func (Dollar) astNode()   {}
func (Plus) astNode()     {}
func (Star) astNode()     {}
func (Question) astNode() {}
func (Or) astNode()       {}
func (Seq) astNode()      {}

func (n Char) String() string     { return fmt.Sprintf("Char(%c)", n.Ch) }
func (Dot) String() string        { return "Dot" }
func (Caret) String() string      { return "Caret" }
func (Dollar) String() string     { return "Dollar" }
func (n Plus) String() string     { return fmt.Sprintf("Plus(%s)", n.Child) }
func (n Star) String() string     { return fmt.Sprintf("Star(%s)", n.Child) }
func (n Question) String() string { return fmt.Sprintf("Question(%s)", n.Child) }
func (n Or) String() string       { return fmt.Sprintf("Or(%s, %s)", n.Left, n.Right) }

func (n Seq) String() string {
	parts := make([]string, len(n.Children))
	for i, c := range n.Children {
		parts[i] = c.String()
	}
	return fmt.Sprintf("Seq(%s)", strings.Join(parts, ", "))
}
