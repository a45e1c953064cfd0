package domain

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a per-client calculation failure. Every kind is
// recoverable at client granularity: in batch mode a failed client produces
// an ERROR result row and the batch continues.
type ErrorKind string

const (
	ErrInvalidInput             ErrorKind = "InvalidInput"
	ErrInvalidSalaryInput       ErrorKind = "InvalidSalaryInput"
	ErrInvalidBalance           ErrorKind = "InvalidBalance"
	ErrInvalidGenderFrequency   ErrorKind = "InvalidGenderFrequency"
	ErrAgeNotFound              ErrorKind = "AgeNotFound"
	ErrBelowMinimumLumpSum      ErrorKind = "BelowMinimumLumpSum"
	ErrExceedsMaxLumpSum        ErrorKind = "ExceedsMaxLumpSum"
	ErrExceedsRegulatoryLumpSum ErrorKind = "ExceedsRegulatoryLumpSum"
	ErrExceedsMaxArrears        ErrorKind = "ExceedsMaxArrears"
)

// CalcError is a calculation failure carrying its kind. Two CalcErrors match
// under errors.Is when their kinds are equal, so tests and callers can probe
// with Kind sentinels.
type CalcError struct {
	Kind    ErrorKind
	Message string
}

func (e *CalcError) Error() string {
	return e.Message
}

// Is matches any *CalcError with the same kind.
func (e *CalcError) Is(target error) bool {
	var other *CalcError
	if !errors.As(target, &other) {
		return false
	}
	return e.Kind == other.Kind
}

// Errf builds a CalcError of the given kind with a formatted message.
func Errf(kind ErrorKind, format string, args ...any) *CalcError {
	return &CalcError{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// KindOf extracts the kind from an error chain. The second return is false
// when the error is not a CalcError.
func KindOf(err error) (ErrorKind, bool) {
	var ce *CalcError
	if errors.As(err, &ce) {
		return ce.Kind, true
	}
	return "", false
}
