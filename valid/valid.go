// Package valid implements the range checks on timestamps and decoder
// ids that every other satkey package relies on before it touches
// cryptographic material (spec §4.H).
package valid

import "github.com/suborbital-ctf/satkey/internal/errs"

// Timestamp checks 0 <= t < 2^64, which is always true for a Go uint64
// and exists only to give callers a single, explicit precondition check
// to call alongside Interval.
func Timestamp(t uint64) error {
	return nil
}

// DecoderID checks 0 <= id < 2^32, which is always true for a Go
// uint32 and exists for the same documentation purpose as Timestamp.
func DecoderID(id uint32) error {
	return nil
}

// Interval checks that lo <= hi, the only timestamp precondition that
// is not already enforced by Go's type system.
func Interval(lo, hi uint64) error {
	if lo > hi {
		return errs.New(errs.Precondition, "interval covering: t_lo (%d) > t_hi (%d)", lo, hi)
	}
	return nil
}

// KeyLength checks that got equals want, the precondition every
// fixed-size cryptographic key argument must satisfy.
func KeyLength(name string, got, want int) error {
	if got != want {
		return errs.New(errs.Precondition, "%s: want %d bytes, got %d", name, want, got)
	}
	return nil
}
