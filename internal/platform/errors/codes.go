// Package errors provides structured domain errors for contract violations.
package errors

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown represents an unknown error.
	CodeUnknown Code = "UNKNOWN"

	// CodeInvalidArgument marks a caller bug such as a zero range bound.
	CodeInvalidArgument Code = "INVALID_ARGUMENT"

	// CodeInvariantViolation marks a broken lifecycle invariant, e.g. a
	// reseed of the shared generator after it has already produced output.
	CodeInvariantViolation Code = "INVARIANT_VIOLATION"
)

// Fatal reports whether errors with this code represent programmer error.
func (c Code) Fatal() bool {
	switch c {
	case CodeInvalidArgument, CodeInvariantViolation:
		return true
	default:
		return false
	}
}
