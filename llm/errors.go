package llm

import (
	"errors"
	"fmt"
	"strings"
)

// Error types for classifying LLM errors.

// TransientError represents a temporary error that may succeed on another
// model or a later attempt.
type TransientError struct {
	err error
}

func (e *TransientError) Error() string {
	return e.err.Error()
}

func (e *TransientError) Unwrap() error {
	return e.err
}

// NewTransientError wraps an error as transient (retryable).
func NewTransientError(err error) error {
	return &TransientError{err: err}
}

// FatalError represents an error that will not succeed on another attempt
// against the same endpoint. It suppresses in-place retries only; the
// fallback chain still moves on to the next model.
type FatalError struct {
	err error
}

func (e *FatalError) Error() string {
	return e.err.Error()
}

func (e *FatalError) Unwrap() error {
	return e.err
}

// NewFatalError wraps an error as fatal (non-retryable).
func NewFatalError(err error) error {
	return &FatalError{err: err}
}

// AllModelsFailedError is the terminal error returned when every model in a
// capability's fallback chain has failed. It carries the last underlying
// error so callers can inspect the final failure.
type AllModelsFailedError struct {
	// Capability is the capability whose chain was exhausted.
	Capability string

	// Last is the error from the final model attempted.
	Last error
}

func (e *AllModelsFailedError) Error() string {
	return fmt.Sprintf("all models failed for capability %s: %v", e.Capability, e.Last)
}

func (e *AllModelsFailedError) Unwrap() error {
	return e.Last
}

// IsTransient returns true if the error is transient and should be retried.
func IsTransient(err error) bool {
	var transient *TransientError
	return errors.As(err, &transient)
}

// IsFatal returns true if the error is fatal and should not be retried.
func IsFatal(err error) bool {
	var fatal *FatalError
	return errors.As(err, &fatal)
}

// IsAllModelsFailed returns true if the error is the terminal
// chain-exhausted error.
func IsAllModelsFailed(err error) bool {
	var all *AllModelsFailedError
	return errors.As(err, &all)
}

// IsModelUnavailable reports whether an error looks like a model
// availability problem (exhausted chain, decommissioned or unknown model)
// rather than a generic internal failure. The gateway uses this to pick the
// wording of its degraded response.
func IsModelUnavailable(err error) bool {
	if err == nil {
		return false
	}
	if IsAllModelsFailed(err) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "decommissioned") || strings.Contains(msg, "model")
}
