package gogen

import "fmt"

// Variable and label names used in generated code.
const (
	inputName        = "line"
	inputLenName     = "l"
	offsetName       = "offset"
	startName        = "start"
	stackName        = "stack"
	nextInstName     = "nextInstruction"
	stepSelectName   = "StepSelect"
	tryFallbackName  = "TryFallback"
	matchSuffix      = "Match"
	matchRunesSuffix = "MatchRunes"
)

// instLabel returns the label name for an instruction address.
func instLabel(addr int) string {
	return fmt.Sprintf("Ins%d", addr)
}
