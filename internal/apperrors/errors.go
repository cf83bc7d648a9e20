// Package apperrors defines the core error taxonomy shared by the
// planning, dispatch and execution pipeline.
package apperrors

import (
	"errors"
	"fmt"
	"strings"
)

// ValidationError marks input or plan malformation that is never retried.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return "validation error: " + e.Reason }

// NewValidationError builds a ValidationError.
func NewValidationError(format string, args ...any) *ValidationError {
	return &ValidationError{Reason: fmt.Sprintf(format, args...)}
}

// AdapterError wraps a tool adapter failure (success=false from the registry).
type AdapterError struct {
	ActionType string
	Message    string
}

func (e *AdapterError) Error() string {
	return fmt.Sprintf("adapter error (%s): %s", e.ActionType, e.Message)
}

// NewAdapterError builds an AdapterError.
func NewAdapterError(actionType, message string) *AdapterError {
	return &AdapterError{ActionType: actionType, Message: message}
}

// VerificationError marks an adapter success whose side effect the
// verifier could not confirm. Classified with the same permanence rules
// as AdapterError.
type VerificationError struct {
	ActionType string
	Message    string
}

func (e *VerificationError) Error() string {
	return fmt.Sprintf("verification error (%s): %s", e.ActionType, e.Message)
}

// NewVerificationError builds a VerificationError.
func NewVerificationError(actionType, message string) *VerificationError {
	return &VerificationError{ActionType: actionType, Message: message}
}

// TimeoutError marks a subprocess or LLM call that exceeded its deadline.
type TimeoutError struct {
	Operation string
}

func (e *TimeoutError) Error() string { return fmt.Sprintf("timeout during %s", e.Operation) }

// NewTimeoutError builds a TimeoutError.
func NewTimeoutError(operation string) *TimeoutError {
	return &TimeoutError{Operation: operation}
}

// ProviderError marks LLM connectivity/transport failure, distinguishable
// from an empty or malformed reply from the same provider.
type ProviderError struct {
	Provider string
	Cause    error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("provider error (%s): %v", e.Provider, e.Cause)
}

func (e *ProviderError) Unwrap() error { return e.Cause }

// NewProviderError builds a ProviderError.
func NewProviderError(provider string, cause error) *ProviderError {
	return &ProviderError{Provider: provider, Cause: cause}
}

// StorageError marks a backend I/O fault. Never retried inside the core.
type StorageError struct {
	Op    string
	Cause error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage error during %s: %v", e.Op, e.Cause)
}

func (e *StorageError) Unwrap() error { return e.Cause }

// NewStorageError builds a StorageError.
func NewStorageError(op string, cause error) *StorageError {
	return &StorageError{Op: op, Cause: cause}
}

// FatalError marks an error whose message contains "fatal"; it stops the
// current plan entirely regardless of the step's retry budget.
type FatalError struct {
	Message string
}

func (e *FatalError) Error() string { return "fatal: " + e.Message }

// IsFatal reports whether err's message case-insensitively contains "fatal".
func IsFatal(err error) bool {
	if err == nil {
		return false
	}
	var fe *FatalError
	if errors.As(err, &fe) {
		return true
	}
	return strings.Contains(strings.ToLower(err.Error()), "fatal")
}

// permanentAdapterMarkers classifies an AdapterError/VerificationError
// message as non-retriable, per spec §4.6/§7.
var permanentAdapterMarkers = []string{
	"not found",
	"no such file",
	"permission denied",
	"access denied",
	"not installed",
	"does not exist",
}

// permanentVerificationMarkers is the narrower set used for verifier
// failures, per spec §4.6.
var permanentVerificationMarkers = []string{
	"does not exist",
	"not found",
	"locked",
	"permission denied",
}

// IsPermanentAdapterError reports whether an adapter failure message
// should terminate retries immediately.
func IsPermanentAdapterError(message string) bool {
	return containsAny(strings.ToLower(message), permanentAdapterMarkers)
}

// IsPermanentVerificationError reports whether a verifier failure message
// should terminate retries immediately.
func IsPermanentVerificationError(message string) bool {
	return containsAny(strings.ToLower(message), permanentVerificationMarkers)
}

func containsAny(haystack string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(haystack, n) {
			return true
		}
	}
	return false
}
