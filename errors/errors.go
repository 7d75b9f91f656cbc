// Package errors provides error handling for crossbind.
//
// This package re-exports github.com/cockroachdb/errors, providing:
//   - Stack traces for debugging
//   - Error wrapping and context
//   - Sentinel-based error classification
//
// Usage:
//
//	// Wrap with context
//	if err := doSomething(); err != nil {
//	    return errors.Wrap(err, "failed to do something")
//	}
//
//	// Classify errors
//	if errors.IsMalformedInput(err) {
//	    // the scanned tree did not have the expected shape
//	}
//
// For full documentation see: https://pkg.go.dev/github.com/cockroachdb/errors
package errors

import (
	crdb "github.com/cockroachdb/errors"
)

// Core error creation and wrapping
var (
	New          = crdb.New
	Newf         = crdb.Newf
	Wrap         = crdb.Wrap
	Wrapf        = crdb.Wrapf
	WithStack    = crdb.WithStack
	WithMessage  = crdb.WithMessage
	WithMessagef = crdb.WithMessagef
)

// User-facing messages and details
var (
	WithHint    = crdb.WithHint
	WithHintf   = crdb.WithHintf
	WithDetail  = crdb.WithDetail
	WithDetailf = crdb.WithDetailf
)

// Error inspection
var (
	Is        = crdb.Is
	IsAny     = crdb.IsAny
	As        = crdb.As
	Unwrap    = crdb.Unwrap
	UnwrapAll = crdb.UnwrapAll
)

// Assertions and internal defects
var (
	AssertionFailedf = crdb.AssertionFailedf
)

// Sentinel errors for the conversion pipeline.
// Use these with errors.Is() for type-safe error checking.
// Wrap these with errors.Wrap() to add context while preserving the kind.
var (
	// ErrNoContent indicates the scanned tree has no root container at all
	ErrNoContent = New("no content in scanned declaration tree")

	// ErrUnexpectedOuterItem indicates a top-level item that is not the
	// expected root namespace container
	ErrUnexpectedOuterItem = New("unexpected item outside root namespace")

	// ErrSafetyViolation indicates a type the user requested as
	// pass-by-value failed by-value safety verification
	ErrSafetyViolation = New("by-value safety violation")

	// ErrUnrecognizedDeclaration indicates a declaration item whose shape
	// the parser does not support
	ErrUnrecognizedDeclaration = New("unrecognized declaration")

	// ErrGraphInconsistency indicates an internal invariant violation in
	// the dependency graph. This is a defect, never a user input error.
	ErrGraphInconsistency = New("dependency graph inconsistency")
)

// IsMalformedInput checks whether err classifies as a malformed scanned
// tree (missing root container or unexpected outer item).
func IsMalformedInput(err error) bool {
	return err != nil && IsAny(err, ErrNoContent, ErrUnexpectedOuterItem)
}

// IsSafetyViolation checks if an error is or wraps ErrSafetyViolation
func IsSafetyViolation(err error) bool {
	return err != nil && Is(err, ErrSafetyViolation)
}

// IsUnrecognizedDeclaration checks if an error is or wraps ErrUnrecognizedDeclaration
func IsUnrecognizedDeclaration(err error) bool {
	return err != nil && Is(err, ErrUnrecognizedDeclaration)
}

// IsGraphInconsistency checks if an error is or wraps ErrGraphInconsistency
func IsGraphInconsistency(err error) bool {
	return err != nil && Is(err, ErrGraphInconsistency)
}

// NewSafetyViolation creates a safety-violation error naming the type that
// failed verification and the reason it failed.
func NewSafetyViolation(typeName, reason string) error {
	return Wrap(ErrSafetyViolation, Newf("type %s: %s", typeName, reason).Error())
}

// NewUnrecognizedDeclaration creates an unrecognized-declaration error with
// enough context to locate the offending input item.
func NewUnrecognizedDeclaration(kind, name string) error {
	return Wrap(ErrUnrecognizedDeclaration, Newf("item %s of kind %q", name, kind).Error())
}
