// Package errors provides error handling for uniprompt.
//
// This package re-exports github.com/cockroachdb/errors, providing:
//   - Stack traces for debugging
//   - Error wrapping and context
//   - User-facing hints
//
// Usage:
//
//	// Create new error
//	err := errors.New("something went wrong")
//
//	// Wrap with context
//	if err := doSomething(); err != nil {
//	    return errors.Wrap(err, "failed to do something")
//	}
//
//	// Check errors
//	if errors.Is(err, errors.ErrImportNotFound) {
//	    // handle missing import
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

// Sentinel errors for the resolution pipeline.
// Use these with errors.Is() for type-safe error checking.
// Wrap these with errors.Wrap() to add context while preserving the type.
var (
	// ErrImportNotFound indicates an imported document does not exist
	// or could not be parsed. Fatal: the pipeline aborts.
	ErrImportNotFound = New("import not found")

	// ErrCircularImport indicates an import chain that revisits a file
	// already being resolved. Fatal: the pipeline aborts.
	ErrCircularImport = New("circular import")

	// ErrCommandDisabled indicates a dynamic variable needed command
	// execution while the executor was constructed with commands off.
	ErrCommandDisabled = New("command execution is disabled")

	// ErrCommandTimeout indicates a dynamic variable's command exceeded
	// its timeout.
	ErrCommandTimeout = New("command timed out")

	// ErrCommandFailed indicates a dynamic variable's command exited
	// non-zero.
	ErrCommandFailed = New("command failed")

	// ErrUndefinedVariable indicates a placeholder referenced a variable
	// with no value while substituting in strict mode.
	ErrUndefinedVariable = New("undefined variable")

	// ErrConditionSyntax indicates a condition expression that cannot be
	// parsed. Fatal: a condition that cannot be evaluated cannot be
	// safely skipped.
	ErrConditionSyntax = New("condition syntax error")
)

// IsTemplateError reports whether err belongs to the template error
// family: undefined variable in strict mode, or any command-execution
// failure while evaluating a dynamic variable.
func IsTemplateError(err error) bool {
	return err != nil && IsAny(err,
		ErrUndefinedVariable, ErrCommandDisabled, ErrCommandTimeout, ErrCommandFailed)
}

// IsCommandError reports whether err came from dynamic-variable command
// execution. The variable loader recovers these locally: the variable is
// dropped from the map with a warning instead of failing the run.
func IsCommandError(err error) bool {
	return err != nil && IsAny(err, ErrCommandDisabled, ErrCommandTimeout, ErrCommandFailed)
}
