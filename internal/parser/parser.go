// Package parser turns a regular expression into an abstract syntax tree.
//
// The surface syntax covers literal characters, the escapes \\ \( \) \| \+
// \* \?, the quantifiers + * ?, alternation |, grouping ( ), the wildcard
// '.', and the anchors ^ and $. Anything else is a literal.
package parser

import "sort"

type parseState int

const (
	stateNormal parseState = iota
	stateEscape
)

// context is one saved level of group nesting: the concatenation built so
// far and the alternation branches collected so far, both frozen while the
// group body is parsed.
type context struct {
	seq      []AST
	branches []AST
}

type parser struct {
	seq      []AST // current concatenation buffer
	branches []AST // current alternation branches
	stack    []context
	state    parseState
}

// Parse scans expr left to right and returns its syntax tree.
// All returned errors are of type *ParseError.
func Parse(expr string) (AST, error) {
	p := &parser{}

	for i, c := range []rune(expr) {
		if p.state == stateEscape {
			node, err := parseEscape(i, c)
			if err != nil {
				return nil, err
			}
			p.seq = append(p.seq, node)
			p.state = stateNormal
			continue
		}

		switch c {
		case '+', '*', '?':
			if err := p.quantify(c, i); err != nil {
				return nil, err
			}
		case '(':
			p.stack = append(p.stack, context{seq: p.seq, branches: p.branches})
			p.seq = nil
			p.branches = nil
		case ')':
			if err := p.closeGroup(i); err != nil {
				return nil, err
			}
		case '|':
			if len(p.seq) == 0 {
				return nil, &ParseError{Kind: NoPrev, Pos: i}
			}
			p.branches = append(p.branches, Seq{Children: p.seq})
			p.seq = nil
		case '\\':
			p.state = stateEscape
		case '.':
			p.seq = append(p.seq, Dot{})
		case '^':
			p.seq = append(p.seq, Caret{})
		case '$':
			p.seq = append(p.seq, Dollar{})
		default:
			p.seq = append(p.seq, Char{Ch: c})
		}
	}

	if len(p.stack) != 0 {
		return nil, &ParseError{Kind: NoRightParen}
	}
	if len(p.seq) != 0 {
		p.branches = append(p.branches, Seq{Children: p.seq})
	}
	ast := foldOr(p.branches)
	if ast == nil {
		return nil, &ParseError{Kind: Empty}
	}
	return ast, nil
}

// parseEscape maps an escaped character to its literal node.
func parseEscape(pos int, c rune) (AST, error) {
	switch c {
	case '\\', '(', ')', '|', '+', '*', '?':
		return Char{Ch: c}, nil
	default:
		return nil, &ParseError{Kind: InvalidEscape, Pos: pos, Ch: c}
	}
}

// quantify wraps the most recent item of the concatenation buffer in the
// quantifier node for c. An empty buffer means the quantifier has nothing
// to apply to, e.g. a leading "+".
func (p *parser) quantify(c rune, pos int) error {
	if len(p.seq) == 0 {
		return &ParseError{Kind: NoPrev, Pos: pos}
	}
	prev := p.seq[len(p.seq)-1]
	p.seq = p.seq[:len(p.seq)-1]

	var node AST
	switch c {
	case '+':
		node = Plus{Child: prev}
	case '*':
		node = Star{Child: prev}
	case '?':
		node = Question{Child: prev}
	}
	p.seq = append(p.seq, node)
	return nil
}

// closeGroup pops one nesting level, folds the group body into a single
// node, and appends it to the restored concatenation. An empty body, as
// in "()", contributes nothing.
func (p *parser) closeGroup(pos int) error {
	if len(p.stack) == 0 {
		return &ParseError{Kind: InvalidRightParen, Pos: pos}
	}
	saved := p.stack[len(p.stack)-1]
	p.stack = p.stack[:len(p.stack)-1]

	if len(p.seq) != 0 {
		p.branches = append(p.branches, Seq{Children: p.seq})
	}
	body := foldOr(p.branches)

	p.seq = saved.seq
	p.branches = saved.branches
	if body != nil {
		p.seq = append(p.seq, body)
	}
	return nil
}

// foldOr combines alternation branches into a right-nested Or chain:
// [b1, b2, b3] becomes Or(b1, Or(b2, b3)). A single branch is returned
// unchanged and no branches yield nil.
func foldOr(branches []AST) AST {
	if len(branches) == 0 {
		return nil
	}
	ast := branches[len(branches)-1]
	for i := len(branches) - 2; i >= 0; i-- {
		ast = Or{Left: branches[i], Right: ast}
	}
	return ast
}

// Features reports which syntactic constructs appear in the tree, as a
// sorted label list. Used by pattern analysis.
func Features(ast AST) []string {
	set := map[string]bool{}
	collectFeatures(ast, set)
	labels := make([]string, 0, len(set))
	for l := range set {
		labels = append(labels, l)
	}
	sort.Strings(labels)
	return labels
}

func collectFeatures(ast AST, set map[string]bool) {
	switch n := ast.(type) {
	case Char:
		set["Literal"] = true
	case Dot:
		set["Dot"] = true
	case Caret, Dollar:
		set["Anchors"] = true
	case Plus:
		set["Quantifiers"] = true
		collectFeatures(n.Child, set)
	case Star:
		set["Quantifiers"] = true
		collectFeatures(n.Child, set)
	case Question:
		set["Quantifiers"] = true
		collectFeatures(n.Child, set)
	case Or:
		set["Alternation"] = true
		collectFeatures(n.Left, set)
		collectFeatures(n.Right, set)
	case Seq:
		for _, c := range n.Children {
			collectFeatures(c, set)
		}
	}
}
