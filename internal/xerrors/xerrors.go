// Copyright 2020 Grail Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

// Package xerrors defines the error taxonomy shared by every cloudhmm
// component: fatal kinds returned (never panicked) from the core, plus
// the one warning kind (PruneOverflow) that rides along with an
// otherwise-successful result.
package xerrors

import (
	"errors"
	"fmt"

	pkgerrors "github.com/pkg/errors"
)

// Kind classifies a CoreError so callers can switch on failure mode
// without string-matching messages.
type Kind int

const (
	// InvalidShape: Q <= 0, T <= 0, or an anchor outside [1..Q] x [1..T].
	InvalidShape Kind = iota
	// InvariantViolation: unsorted bounds, a mode mismatch on union, or a
	// span outside [0, T+1] or [0, Q+1].
	InvariantViolation
	// AllocFailure: memory exhausted while growing a scratch buffer.
	AllocFailure
	// PruneOverflow is a warning, not a fatal error: row-max was exceeded
	// during reorientation and the abridged fallback was used.
	PruneOverflow
)

func (k Kind) String() string {
	switch k {
	case InvalidShape:
		return "invalid_shape"
	case InvariantViolation:
		return "invariant_violation"
	case AllocFailure:
		return "alloc_failure"
	case PruneOverflow:
		return "prune_overflow"
	default:
		return "unknown"
	}
}

// CoreError is the concrete error type returned by every exported
// cloudhmm function that can fail. Op names the failing operation
// (e.g. "edge.Union", "cloud.Forward") so a caller can identify the
// failing stage from the error alone.
type CoreError struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *CoreError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Kind)
}

func (e *CoreError) Unwrap() error { return e.Err }

// Invalid builds an InvalidShape CoreError.
func Invalid(op, format string, args ...interface{}) error {
	return &CoreError{Kind: InvalidShape, Op: op, Err: pkgerrors.Errorf(format, args...)}
}

// Invariant builds an InvariantViolation CoreError from a formatted
// message.
func Invariant(op string, format string, args ...interface{}) error {
	return &CoreError{Kind: InvariantViolation, Op: op, Err: pkgerrors.Errorf(format, args...)}
}

// Alloc builds an AllocFailure CoreError.
func Alloc(op string, cause error) error {
	return &CoreError{Kind: AllocFailure, Op: op, Err: pkgerrors.Wrap(cause, "allocation failed")}
}

// Overflow builds a PruneOverflow warning CoreError. Callers treat
// this as non-fatal: the operation still returns a usable result
// alongside it.
func Overflow(op string, format string, args ...interface{}) error {
	return &CoreError{Kind: PruneOverflow, Op: op, Err: pkgerrors.Errorf(format, args...)}
}

// Is reports whether err is a *CoreError of the given kind.
func Is(err error, kind Kind) bool {
	var ce *CoreError
	if errors.As(err, &ce) {
		return ce.Kind == kind
	}
	return false
}
