package relalign

import "errors"

// Sentinel errors for conditions callers may need to handle differently.
var (
	// ErrDeadlineExceeded indicates the alignment did not finish before its
	// deadline. No partial alignment is returned; inspect the input for
	// documents with many mutually overlapping argument spans.
	ErrDeadlineExceeded = errors.New("relalign: alignment deadline exceeded")

	// ErrInvalidCutoff indicates a partial-match cutoff outside [0, 1].
	ErrInvalidCutoff = errors.New("relalign: cutoff must be within [0, 1]")
)
