// Package gogen emits a standalone Go source file containing a matcher
// function specialized to one compiled pattern. The generated matcher is
// a goto-threaded rendering of the instruction program: one labeled block
// per instruction, an explicit backtrack stack instead of recursion, and
// no dependency on this module.
package gogen

import (
	"fmt"
	"go/format"
	"os"

	"github.com/dave/jennifer/jen"

	"github.com/regexvm-go/regexvm/internal/codegen"
)

// Config holds the configuration for matcher generation.
type Config struct {
	Pattern    string
	Name       string
	Package    string
	OutputFile string
	Program    []codegen.Inst
	Verbose    bool
}

// Generator renders a compiled program as Go source.
type Generator struct {
	config Config
	file   *jen.File
	logger *Logger

	reachable []bool // addresses reachable from instruction 0
	consumes  bool   // program reads input symbols (char, dot)
	checksEnd bool   // program compares offset to input length (dollar)
	splits    bool   // program branches and needs the backtrack stack
}

// New creates a generator for the given configuration.
func New(config Config) *Generator {
	g := &Generator{
		config: config,
		file:   jen.NewFile(config.Package),
		logger: NewLogger(config.Verbose),
	}
	g.analyzeProgram()
	return g
}

// analyzeProgram walks the program from address 0 and records which
// instructions execution can reach. A dollar ends its branch, so code
// after it on a straight line has no incoming edge; emitting a label
// for it would leave the label unused, which Go rejects. Only reachable
// instructions get labeled blocks, and the feature flags that decide
// which variables the matcher declares follow the reachable set.
func (g *Generator) analyzeProgram() {
	g.reachable = make([]bool, len(g.config.Program))

	work := []int{0}
	for len(work) > 0 {
		addr := work[len(work)-1]
		work = work[:len(work)-1]
		if addr < 0 || addr >= len(g.config.Program) || g.reachable[addr] {
			continue
		}
		g.reachable[addr] = true

		switch inst := g.config.Program[addr]; inst.Op {
		case codegen.OpChar, codegen.OpDot, codegen.OpCaret:
			work = append(work, addr+1)
		case codegen.OpJump:
			work = append(work, inst.X)
		case codegen.OpSplit:
			work = append(work, inst.X, inst.Y)
		}
	}

	for addr, inst := range g.config.Program {
		if !g.reachable[addr] {
			continue
		}
		switch inst.Op {
		case codegen.OpChar, codegen.OpDot:
			g.consumes = true
		case codegen.OpDollar:
			g.checksEnd = true
		case codegen.OpSplit:
			g.splits = true
		}
	}
}

// Generate writes the matcher source file.
func (g *Generator) Generate() error {
	g.logger.Section("Matcher Generation")
	g.logger.Log("Pattern: %s", g.config.Pattern)
	g.logger.Log("Instructions: %d", len(g.config.Program))
	g.logger.Log("Needs backtrack stack: %v", g.splits)

	g.file.Comment(fmt.Sprintf("Code generated by regexvm for pattern: %s", g.config.Pattern))
	g.file.Comment("DO NOT EDIT.")
	g.file.Line()

	body, err := g.matcherBody()
	if err != nil {
		return err
	}

	g.file.Comment(fmt.Sprintf("%s%s reports whether line, taken at the given start offset of its", g.config.Name, matchRunesSuffix))
	g.file.Comment("original line, matches the pattern as a prefix.")
	g.file.Func().Id(g.config.Name + matchRunesSuffix).
		Params(jen.Id(inputName).Index().Rune(), jen.Id(startName).Int()).
		Params(jen.Bool()).
		Block(body...)

	g.file.Comment(fmt.Sprintf("%s%s reports whether s matches the pattern as a prefix.", g.config.Name, matchSuffix))
	g.file.Func().Id(g.config.Name + matchSuffix).
		Params(jen.Id("s").String()).
		Params(jen.Bool()).
		Block(jen.Return(jen.Id(g.config.Name + matchRunesSuffix).Call(
			jen.Index().Rune().Call(jen.Id("s")),
			jen.Lit(0),
		)))

	if err := g.file.Save(g.config.OutputFile); err != nil {
		return fmt.Errorf("failed to save file: %w", err)
	}
	if err := formatFile(g.config.OutputFile); err != nil {
		return fmt.Errorf("failed to format file: %w", err)
	}
	return nil
}

// matcherBody builds the threaded function body: declarations first, so
// the entry goto does not jump over any of them, then the step selector
// and fallback blocks, then one labeled block per instruction.
func (g *Generator) matcherBody() ([]jen.Code, error) {
	var code []jen.Code

	if g.consumes || g.checksEnd {
		code = append(code, jen.Id(inputLenName).Op(":=").Len(jen.Id(inputName)))
	}
	if g.consumes || g.checksEnd || g.splits {
		code = append(code, jen.Id(offsetName).Op(":=").Lit(0))
	}
	if g.splits {
		code = append(code,
			jen.Var().Id(stackName).Index().Int(),
			jen.Var().Id(nextInstName).Int(),
		)
	}
	code = append(code, jen.Goto().Id(instLabel(0)))

	if g.splits {
		code = append(code, g.stepSelector()...)
	}
	code = append(code, g.tryFallback()...)

	for addr, inst := range g.config.Program {
		if !g.reachable[addr] {
			continue
		}
		instCode, err := g.generateInstruction(addr, inst)
		if err != nil {
			return nil, fmt.Errorf("failed to generate instruction %d: %w", addr, err)
		}
		code = append(code, instCode...)
	}
	return code, nil
}

// stepSelector generates the dispatch switch the fallback path jumps
// through to resume at a popped instruction address. Only reachable
// addresses have labels, so only those get cases.
func (g *Generator) stepSelector() []jen.Code {
	cases := []jen.Code{}
	for addr := range g.config.Program {
		if !g.reachable[addr] {
			continue
		}
		cases = append(cases,
			jen.Case(jen.Lit(addr)).Block(jen.Goto().Id(instLabel(addr))),
		)
	}
	return []jen.Code{
		jen.Id(stepSelectName).Op(":"),
		jen.Switch(jen.Id(nextInstName)).Block(cases...),
	}
}

// tryFallback generates the shared failure path. With no splits in the
// program there is nothing to resume, so failure is final.
func (g *Generator) tryFallback() []jen.Code {
	label := jen.Id(tryFallbackName).Op(":")
	if !g.splits {
		return []jen.Code{
			label,
			jen.Block(jen.Return(jen.False())),
		}
	}
	return []jen.Code{
		label,
		jen.Block(
			jen.If(jen.Len(jen.Id(stackName)).Op("==").Lit(0)).Block(
				jen.Return(jen.False()),
			),
			jen.Id(offsetName).Op("=").Id(stackName).Index(jen.Len(jen.Id(stackName)).Op("-").Lit(1)),
			jen.Id(nextInstName).Op("=").Id(stackName).Index(jen.Len(jen.Id(stackName)).Op("-").Lit(2)),
			jen.Id(stackName).Op("=").Id(stackName).Index(jen.Empty(), jen.Len(jen.Id(stackName)).Op("-").Lit(2)),
			jen.Goto().Id(stepSelectName),
		),
	}
}

// generateInstruction generates the labeled block for a single instruction.
func (g *Generator) generateInstruction(addr int, inst codegen.Inst) ([]jen.Code, error) {
	label := jen.Id(instLabel(addr)).Op(":")

	switch inst.Op {
	case codegen.OpChar:
		return []jen.Code{
			label,
			jen.Block(
				jen.If(jen.Id(inputLenName).Op("<=").Id(offsetName).Op("||").
					Id(inputName).Index(jen.Id(offsetName)).Op("!=").LitRune(inst.Ch)).Block(
					jen.Goto().Id(tryFallbackName),
				),
				jen.Id(offsetName).Op("++"),
				jen.Goto().Id(instLabel(addr+1)),
			),
		}, nil

	case codegen.OpDot:
		return []jen.Code{
			label,
			jen.Block(
				jen.If(jen.Id(inputLenName).Op("<=").Id(offsetName)).Block(
					jen.Goto().Id(tryFallbackName),
				),
				jen.Id(offsetName).Op("++"),
				jen.Goto().Id(instLabel(addr+1)),
			),
		}, nil

	case codegen.OpCaret:
		if addr != 0 {
			return nil, fmt.Errorf("caret at address %d is unsupported", addr)
		}
		return []jen.Code{
			label,
			jen.Block(
				jen.If(jen.Id(startName).Op("!=").Lit(0)).Block(
					jen.Goto().Id(tryFallbackName),
				),
				jen.Goto().Id(instLabel(addr+1)),
			),
		}, nil

	case codegen.OpDollar:
		return []jen.Code{
			label,
			jen.Block(
				jen.If(jen.Id(offsetName).Op("==").Id(inputLenName)).Block(
					jen.Return(jen.True()),
				),
				jen.Goto().Id(tryFallbackName),
			),
		}, nil

	case codegen.OpMatch:
		return []jen.Code{
			label,
			jen.Block(jen.Return(jen.True())),
		}, nil

	case codegen.OpJump:
		return []jen.Code{
			label,
			jen.Block(jen.Goto().Id(instLabel(inst.X))),
		}, nil

	case codegen.OpSplit:
		return []jen.Code{
			label,
			jen.Block(
				jen.Id(stackName).Op("=").Append(jen.Id(stackName), jen.Lit(inst.Y), jen.Id(offsetName)),
				jen.Goto().Id(instLabel(inst.X)),
			),
		}, nil

	default:
		return nil, fmt.Errorf("unsupported instruction type: %v", inst.Op)
	}
}

// formatFile runs gofmt over a written file.
func formatFile(path string) error {
	src, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	formatted, err := format.Source(src)
	if err != nil {
		return err
	}
	return os.WriteFile(path, formatted, 0o644)
}
