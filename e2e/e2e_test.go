package e2e

import (
	"encoding/json"
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"go/types"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/regexvm-go/regexvm/pkg/regexvm"
)

// TestCase is one pattern with inputs it must accept and inputs it must
// reject. Matching is prefix-anchored, so "matches" means the pattern
// matches at the start of the input.
type TestCase struct {
	Pattern string   `json:"pattern"`
	Matches []string `json:"matches"`
	Rejects []string `json:"rejects"`
}

func TestE2E(t *testing.T) {
	data, err := os.ReadFile("testdata.json")
	require.NoError(t, err, "failed to read test data")

	var testCases []TestCase
	require.NoError(t, json.Unmarshal(data, &testCases), "failed to parse test data")
	require.NotEmpty(t, testCases, "no test cases found in testdata.json")

	for i, tc := range testCases {
		tc := tc
		name := fmt.Sprintf("Pattern%02d", i+1)
		t.Run(name, func(t *testing.T) {
			re, err := regexvm.Compile(tc.Pattern)
			require.NoError(t, err, "failed to compile pattern %q", tc.Pattern)

			for _, input := range tc.Matches {
				got, err := re.MatchString(input)
				require.NoError(t, err, "pattern %q input %q", tc.Pattern, input)
				assert.True(t, got, "pattern %q should match %q", tc.Pattern, input)
			}
			for _, input := range tc.Rejects {
				got, err := re.MatchString(input)
				require.NoError(t, err, "pattern %q input %q", tc.Pattern, input)
				assert.False(t, got, "pattern %q should reject %q", tc.Pattern, input)
			}

			// The same pattern must also round-trip through matcher
			// generation into compilable Go.
			generateAndTypeCheck(t, tc.Pattern, name)
		})
	}
}

// generateAndTypeCheck writes the standalone matcher for pattern and
// fails unless the result is a compilable Go file. The generated file
// imports nothing, so type checking needs no importer.
func generateAndTypeCheck(t *testing.T, pattern, name string) {
	t.Helper()

	outputFile := filepath.Join(t.TempDir(), "matcher.go")
	require.NoError(t, regexvm.Generate(regexvm.GenerateOptions{
		Pattern:    pattern,
		Name:       name,
		OutputFile: outputFile,
		Package:    "generated",
	}), "failed to generate matcher for %q", pattern)

	src, err := os.ReadFile(outputFile)
	require.NoError(t, err)

	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, "matcher.go", src, 0)
	require.NoError(t, err, "generated matcher for %q does not parse:\n%s", pattern, src)

	conf := types.Config{}
	_, err = conf.Check("generated", fset, []*ast.File{file}, nil)
	require.NoError(t, err, "generated matcher for %q does not compile:\n%s", pattern, src)
}
