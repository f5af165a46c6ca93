package rbindex

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by tree operations. Use errors.Is to test for a
// specific kind; operations that fail wrap one of these with operation-
// specific context via fmt.Errorf("%w: ...", ...).
var (
	// ErrCapacityExceeded is returned when a requested capacity or live
	// count would exceed the index width's maximum (2^width - 1).
	ErrCapacityExceeded = errors.New("rbindex: capacity exceeded")

	// ErrAllocFail is returned when the backing allocation could not be
	// grown, shrunk, or replaced.
	ErrAllocFail = errors.New("rbindex: allocation failed")

	// ErrWidthMismatch is returned by SetBacking when the image's index
	// width does not match the receiving tree's width.
	ErrWidthMismatch = errors.New("rbindex: index width mismatch")

	// ErrInvalidPredicate is returned when a bulk-delete predicate reports
	// failure; the error it produced is wrapped and propagated, never
	// swallowed. A panicking predicate is not recovered.
	ErrInvalidPredicate = errors.New("rbindex: predicate failed")

	// errCorruptInvariant backs the panic raised when the tree observes a
	// structural impossibility (unknown color byte, dangling link in an
	// adopted image). This is a programming/data-corruption bug, not a
	// recoverable runtime condition, so it is never returned as an error.
	errCorruptInvariant = errors.New("rbindex: corrupt invariant")
)

func capacityErrorf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrCapacityExceeded}, args...)...)
}

func allocErrorf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrAllocFail}, args...)...)
}

func predicateErrorf(cause error) error {
	return fmt.Errorf("%w: %w", ErrInvalidPredicate, cause)
}

// invariantViolation panics with errCorruptInvariant wrapped with detail.
// Callers never recover from this; it signals that the backing array no
// longer describes a valid red-black tree.
func invariantViolation(detail string) {
	panic(fmt.Errorf("%w: %s", errCorruptInvariant, detail))
}
