// Package errs implements the three error classes shared across satkey:
// precondition violations, external resource failures, and corrupt
// deserialization (spec §7).
package errs

import "fmt"

// Kind classifies why an operation failed.
type Kind uint8

const (
	// Precondition covers invalid timestamps, out-of-range decoder ids,
	// t_lo > t_hi, and wrong key lengths. Fatal, never recoverable by
	// the core.
	Precondition Kind = iota

	// Resource covers CSRNG unavailability. The caller decides whether
	// to retry. subkey.ForDecoder returns no error, so an Argon2id
	// allocation failure is not reported as a Resource error.
	Resource

	// Parse covers malformed JSON, bad array lengths, and a missing
	// channel 0 during deserialization.
	Parse
)

func (k Kind) String() string {
	switch k {
	case Precondition:
		return "precondition"
	case Resource:
		return "resource"
	case Parse:
		return "parse"
	default:
		return "unknown"
	}
}

// Error is the single error type returned by every satkey package.
type Error struct {
	kind  Kind
	msg   string
	inner error
}

func (e *Error) Kind() Kind   { return e.kind }
func (e *Error) Inner() error { return e.inner }

func (e *Error) Error() string {
	if e.inner != nil {
		return fmt.Sprintf("%s: %s: %s", e.kind, e.msg, e.inner.Error())
	}
	return fmt.Sprintf("%s: %s", e.kind, e.msg)
}

func (e *Error) Unwrap() error { return e.inner }

// New formats a new Error of the given kind.
func New(kind Kind, format string, a ...interface{}) *Error {
	return &Error{kind: kind, msg: fmt.Sprintf(format, a...)}
}

// Wrap formats a new Error of the given kind that wraps an underlying
// cause.
func Wrap(kind Kind, err error, format string, a ...interface{}) *Error {
	return &Error{kind: kind, msg: fmt.Sprintf(format, a...), inner: err}
}
