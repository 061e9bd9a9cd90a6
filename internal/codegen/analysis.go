package codegen

import "github.com/regexvm-go/regexvm/internal/parser"

// AnalysisResult describes a compiled pattern without evaluating it.
// FeatureLabels come from the syntax tree; the remaining fields come
// from the instruction program.
type AnalysisResult struct {
	// FeatureLabels names the syntactic constructs the pattern uses,
	// sorted alphabetically for deterministic comparison.
	FeatureLabels []string

	// InstCount is the total number of instructions, including the
	// trailing match.
	InstCount int

	// SplitCount is the number of split instructions, an upper bound on
	// the branching the evaluator explores per input position.
	SplitCount int

	// HasLoop reports whether any jump targets an earlier address,
	// which is how star loops appear in compiled form. Looping programs
	// can backtrack exponentially on adversarial input.
	HasLoop bool
}

// Analyze inspects a syntax tree and its compiled program.
func Analyze(ast parser.AST, prog []Inst) *AnalysisResult {
	res := &AnalysisResult{
		FeatureLabels: parser.Features(ast),
		InstCount:     len(prog),
	}
	for addr, inst := range prog {
		switch inst.Op {
		case OpSplit:
			res.SplitCount++
			if inst.X <= addr || inst.Y <= addr {
				res.HasLoop = true
			}
		case OpJump:
			if inst.X <= addr {
				res.HasLoop = true
			}
		}
	}
	return res
}
