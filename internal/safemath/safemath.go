// Package safemath provides checked counter arithmetic for the compiler
// and evaluator. Counters here index programs and input, so silent
// wraparound would corrupt addresses; overflow fails fast instead.
package safemath

import "math"

// Add adds n to *dst, returning overflow instead of wrapping.
// n must be non-negative.
func Add(dst *int, n int, overflow error) error {
	if *dst > math.MaxInt-n {
		return overflow
	}
	*dst += n
	return nil
}
