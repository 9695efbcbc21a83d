package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// APICallError represents a failed call to the generative-text provider.
type APICallError struct {
	Message string
	Cause   error
}

func (e *APICallError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("API call failed: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("API call failed: %s", e.Message)
}

func (e *APICallError) Unwrap() error {
	return e.Cause
}

// ParseError represents an error parsing the provider response. It never
// escapes this package to callers of AnalyzeResume; three parse failures in
// a row surface as ServiceUnavailableError instead.
type ParseError struct {
	Message string
	Cause   error
}

func (e *ParseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("parse error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("parse error: %s", e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}

// ServiceUnavailableError means the AI provider could not produce a usable
// result after exhausting retries. Callers are expected to fall back to the
// rule-based path.
type ServiceUnavailableError struct {
	Attempts int
	Cause    error
}

func (e *ServiceUnavailableError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("AI analysis unavailable after %d attempt(s): %v", e.Attempts, e.Cause)
	}
	return fmt.Sprintf("AI analysis unavailable after %d attempt(s)", e.Attempts)
}

func (e *ServiceUnavailableError) Unwrap() error {
	return e.Cause
}

// IsServiceUnavailable reports whether err is a *ServiceUnavailableError.
func IsServiceUnavailable(err error) bool {
	var sue *ServiceUnavailableError
	return errors.As(err, &sue)
}

// isQuotaError reports whether the provider error is a quota or rate-limit
// rejection, which triggers key rotation instead of backoff.
func isQuotaError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "quota") ||
		strings.Contains(msg, "rate limit") ||
		strings.Contains(msg, "ratelimit") ||
		strings.Contains(msg, "resource exhausted") ||
		strings.Contains(msg, "resource_exhausted") ||
		strings.Contains(msg, "429")
}

// isFatalError reports whether the provider error is unrecoverable
// (malformed or invalid credential). Fatal errors abort without retry.
func isFatalError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "api key not valid") ||
		strings.Contains(msg, "api_key_invalid") ||
		strings.Contains(msg, "invalid api key") ||
		strings.Contains(msg, "permission denied") ||
		strings.Contains(msg, "unauthenticated") ||
		strings.Contains(msg, "401") ||
		strings.Contains(msg, "403")
}

// isRetriableError reports whether the error warrants another attempt.
// Timeouts count as retriable; fatal credential errors do not.
func isRetriableError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	if isFatalError(err) {
		return false
	}
	return true
}
