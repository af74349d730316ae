package provider

import (
	"errors"
	"fmt"
	"time"
)

// TimeoutError indicates the provider did not answer within the configured bound
type TimeoutError struct {
	Provider string
	Timeout  time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("%s: no response within %s", e.Provider, e.Timeout)
}

// AuthError indicates the provider rejected the API credentials
type AuthError struct {
	Provider string
	Cause    error
}

func (e *AuthError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: authentication failed: %v", e.Provider, e.Cause)
	}
	return fmt.Sprintf("%s: authentication failed", e.Provider)
}

func (e *AuthError) Unwrap() error {
	return e.Cause
}

// RateLimitError indicates the provider returned a quota/rate-limit response
type RateLimitError struct {
	Provider string
	Cause    error
}

func (e *RateLimitError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: rate limited: %v", e.Provider, e.Cause)
	}
	return fmt.Sprintf("%s: rate limited", e.Provider)
}

func (e *RateLimitError) Unwrap() error {
	return e.Cause
}

// CallError represents any other provider failure
type CallError struct {
	Provider string
	Message  string
	Cause    error
}

func (e *CallError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Provider, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Provider, e.Message)
}

func (e *CallError) Unwrap() error {
	return e.Cause
}

// Retryable reports whether the caller may retry the call once with backoff.
// The adapter itself never retries; retry policy belongs to the caller.
func Retryable(err error) bool {
	var timeout *TimeoutError
	var rateLimited *RateLimitError
	return errors.As(err, &timeout) || errors.As(err, &rateLimited)
}
