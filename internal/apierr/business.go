// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 PPALLI Contributors

package apierr

import (
	"fmt"
	"maps"
	"net/http"
)

// BusinessError is an intentional failure whose status, code and detail are
// safe to return to the client verbatim.
type BusinessError struct {
	Status int
	Code   Code
	Detail map[string]any
	cause  error
}

// New creates a BusinessError. A nil detail is allowed.
func New(status int, code Code, detail map[string]any) *BusinessError {
	return &BusinessError{Status: status, Code: code, Detail: detail}
}

// Wrap attaches an internal cause. The cause is for server-side logs only.
func (e *BusinessError) Wrap(cause error) *BusinessError {
	e.cause = cause
	return e
}

// Error implements error.
func (e *BusinessError) Error() string {
	return fmt.Sprintf("[%d] %s: %v", e.Status, e.Code, e.Detail)
}

// Unwrap returns the internal cause.
func (e *BusinessError) Unwrap() error {
	return e.cause
}

// Info returns the response body for this error.
func (e *BusinessError) Info() ErrorInfo {
	return ErrorInfo{Code: e.Code, Additional: maps.Clone(e.Detail)}
}

// DuplicateUsername is returned when a username is already registered.
func DuplicateUsername(username string) *BusinessError {
	return New(http.StatusBadRequest, CodeDuplicateUsername, map[string]any{"username": username})
}

// MaxTryIDGeneration is returned when identifier collisions exhaust the
// retry budget.
func MaxTryIDGeneration(attempts int) *BusinessError {
	return New(http.StatusInternalServerError, CodeMaxTryIDGeneration, nil).
		Wrap(fmt.Errorf("identifier collided %d times", attempts))
}
