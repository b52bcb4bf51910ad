// Package ckk - validation of inputs and options.
//
// Everything here runs before the first node is allocated, so a caller never
// receives a partially constructed Search:
//  1. Options sanity (method, eps, workers, result cap).
//  2. Input shape (non-empty, 1 <= K <= N).
//  3. Input values (finite, non-negative).
//
// Design principles:
//   - Deterministic, side-effect free functions.
//   - No logging; only sentinel errors from types.go, wrapped with the offending value.
package ckk

import (
	"fmt"
	"math"
)

// validateAll runs the staged checks and returns the first failure.
//
// Complexity: O(n).
func validateAll(numbers []float64, parts int, opts Options) error {
	var err error

	// Stage 1: Options-only sanity.
	if err = validateOptions(opts); err != nil {
		return err
	}

	// Stage 2: shape.
	if len(numbers) == 0 {
		return ErrEmptyInput
	}
	if parts < 1 || parts > len(numbers) {
		return fmt.Errorf("%w: parts=%d, numbers=%d", ErrInvalidParts, parts, len(numbers))
	}

	// Stage 3: values.
	return validateNumbers(numbers)
}

// validateOptions checks Options without looking at the input.
//
// Complexity: O(1).
func validateOptions(opts Options) error {
	switch opts.Method {
	case MethodDefault:
		// ok
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedMethod, string(opts.Method))
	}
	// A negative tolerance would invert the improvement test.
	if opts.Eps < 0 || math.IsNaN(opts.Eps) {
		return fmt.Errorf("%w: eps=%v", ErrInvalidOption, opts.Eps)
	}
	if opts.Workers < 1 {
		return fmt.Errorf("%w: workers=%d", ErrInvalidOption, opts.Workers)
	}
	if opts.MaxResults < 0 {
		return fmt.Errorf("%w: max results=%d", ErrInvalidOption, opts.MaxResults)
	}

	return nil
}

// validateNumbers rejects NaN, ±Inf and negative values, reporting the index.
//
// Complexity: O(n).
func validateNumbers(numbers []float64) error {
	var (
		i int
		x float64
	)
	for i, x = range numbers {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return fmt.Errorf("%w: numbers[%d]=%v", ErrInvalidNumber, i, x)
		}
		if x < 0 {
			return fmt.Errorf("%w: numbers[%d]=%v", ErrNegativeNumber, i, x)
		}
	}

	return nil
}
