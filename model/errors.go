package model

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

// APIError classifies a failed backend call. Retryable is true for rate
// limiting, server side failures and transport errors.
type APIError struct {
	Provider   string
	StatusCode int
	Message    string
	Retryable  bool
	Err        error
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("%s api error (status %d): %s", e.Provider, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s api error: %s", e.Provider, e.Message)
}

// Unwrap returns the original error.
func (e *APIError) Unwrap() error { return e.Err }

// NewAPIError builds an APIError, deriving retryability from the status code.
// A zero status code denotes a transport level failure.
func NewAPIError(provider string, status int, err error) *APIError {
	msg := ""
	if err != nil {
		msg = err.Error()
	}
	return &APIError{
		Provider:   provider,
		StatusCode: status,
		Message:    msg,
		Retryable:  retryableStatus(status) && !isContextErr(err),
		Err:        err,
	}
}

func retryableStatus(status int) bool {
	switch {
	case status == 0:
		return true
	case status == http.StatusTooManyRequests:
		return true
	case status == http.StatusRequestTimeout:
		return true
	case status >= 500:
		return true
	default:
		return false
	}
}

func isContextErr(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

// IsRetryable reports whether err is worth another attempt. Malformed
// completions (no choices, empty text) count as transient.
func IsRetryable(err error) bool {
	if err == nil || isContextErr(err) {
		return false
	}
	if errors.Is(err, ErrNoChoices) || errors.Is(err, ErrEmptyCompletion) {
		return true
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Retryable
	}
	return false
}
