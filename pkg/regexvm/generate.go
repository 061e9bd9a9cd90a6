package regexvm

import (
	"fmt"

	"github.com/regexvm-go/regexvm/internal/codegen"
	"github.com/regexvm-go/regexvm/internal/gogen"
	"github.com/regexvm-go/regexvm/internal/parser"
)

// GenerateOptions configures standalone matcher generation.
type GenerateOptions struct {
	// Pattern is the regular expression to compile
	Pattern string

	// Name is the prefix for generated function names (e.g., "Ident" generates "IdentMatch")
	Name string

	// OutputFile is the path where generated code will be written
	OutputFile string

	// Package is the Go package name for the generated code
	Package string

	// Verbose enables logging of generation decisions to stderr
	Verbose bool
}

// Validate checks if the options are valid.
func (o GenerateOptions) Validate() error {
	if o.Pattern == "" {
		return fmt.Errorf("pattern cannot be empty")
	}
	if o.Name == "" {
		return fmt.Errorf("name cannot be empty")
	}
	if o.OutputFile == "" {
		return fmt.Errorf("output file cannot be empty")
	}
	if o.Package == "" {
		return fmt.Errorf("package cannot be empty")
	}
	return nil
}

// Generate compiles the pattern once and writes a Go source file with a
// self-contained, goto-threaded matcher function for it. The generated
// file does not import this module.
func Generate(opts GenerateOptions) error {
	if err := opts.Validate(); err != nil {
		return fmt.Errorf("invalid options: %w", err)
	}

	ast, err := parser.Parse(opts.Pattern)
	if err != nil {
		return fmt.Errorf("failed to parse pattern: %w", err)
	}
	prog, err := codegen.Generate(ast)
	if err != nil {
		return fmt.Errorf("failed to compile pattern: %w", err)
	}

	gen := gogen.New(gogen.Config{
		Pattern:    opts.Pattern,
		Name:       opts.Name,
		Package:    opts.Package,
		OutputFile: opts.OutputFile,
		Program:    prog,
		Verbose:    opts.Verbose,
	})
	if err := gen.Generate(); err != nil {
		return fmt.Errorf("failed to generate matcher: %w", err)
	}
	return nil
}
