// Package errors provides foundational, type-safe error primitives used across versobench.
//
// This package contains classified error types and helpers for robust error handling,
// including a fluent builder API for constructing ClassifiedError values with context.
//
// Key features:
//   - ErrorCategory: Broad error classification (checkout, compile, run, filesystem, etc.)
//   - ErrorSeverity: Impact level (fatal, error, warning, info)
//   - ClassifiedError: Structured error with category, severity, and context
//   - ErrorBuilder: Fluent API for creating classified errors
//   - CLI adapter for exit codes and error presentation
//
// Example usage:
//
//	err := errors.CheckoutError("clone failed").
//		WithContext("url", repoURL).
//		WithCause(originalErr).
//		Build()
package errors
