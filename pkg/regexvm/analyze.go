package regexvm

import (
	"fmt"

	"github.com/regexvm-go/regexvm/internal/codegen"
	"github.com/regexvm-go/regexvm/internal/parser"
)

// AnalysisResult contains the results of pattern analysis without any
// evaluation. FeatureLabels are sorted alphabetically for deterministic
// comparison.
type AnalysisResult = codegen.AnalysisResult

// Analyze parses and compiles expr, then reports which syntactic
// constructs it uses and the shape of its compiled program. A looping
// program (star or plus in compiled form) can backtrack exponentially
// on adversarial input, which is worth knowing before embedding a
// pattern in a hot path.
func Analyze(expr string) (*AnalysisResult, error) {
	ast, err := parser.Parse(expr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse pattern: %w", err)
	}
	prog, err := codegen.Generate(ast)
	if err != nil {
		return nil, fmt.Errorf("failed to compile pattern: %w", err)
	}
	return codegen.Analyze(ast, prog), nil
}
