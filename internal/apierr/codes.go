// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 PPALLI Contributors

// Package apierr defines the closed set of error codes that may be returned
// to clients and the rules that map HTTP statuses onto them.
package apierr

import "net/http"

// Code is a machine-readable error identifier. Only the constants below are
// ever written to a response.
type Code string

// Business: client errors.
const (
	// CodeValidationFailed reports one or more failed field constraints.
	CodeValidationFailed Code = "VALIDATION_FAILED"
	// CodeEmptyBody reports a missing or unreadable request body.
	CodeEmptyBody Code = "EMPTY_BODY"
	// CodeDuplicateUsername reports that the username is already taken.
	CodeDuplicateUsername Code = "DUPLICATE_USERNAME"
)

// Business: server errors.
const (
	// CodeMaxTryIDGeneration reports that identifier collisions exhausted
	// the retry budget.
	CodeMaxTryIDGeneration Code = "MAX_TRY_ID_GENERATION"
)

// Fallback: HTTP client errors.
const (
	CodeBadRequest       Code = "BAD_REQUEST"
	CodeUnauthorized     Code = "UNAUTHORIZED"
	CodeForbidden        Code = "FORBIDDEN"
	CodeNotFound         Code = "NOT_FOUND"
	CodeMethodNotAllowed Code = "METHOD_NOT_ALLOWED"
)

// Fallback: HTTP server errors.
const (
	CodeServerError Code = "SERVER_ERROR"
)

// CodeUnknownError is used when a non-error status reaches error handling.
const CodeUnknownError Code = "UNKNOWN_ERROR"

var codes = map[Code]struct{}{
	CodeValidationFailed:   {},
	CodeEmptyBody:          {},
	CodeDuplicateUsername:  {},
	CodeMaxTryIDGeneration: {},
	CodeBadRequest:         {},
	CodeUnauthorized:       {},
	CodeForbidden:          {},
	CodeNotFound:           {},
	CodeMethodNotAllowed:   {},
	CodeServerError:        {},
	CodeUnknownError:       {},
}

// Valid reports whether c is a defined code.
func (c Code) Valid() bool {
	_, ok := codes[c]
	return ok
}

// String implements fmt.Stringer.
func (c Code) String() string {
	return string(c)
}

// CodeForStatus returns the fallback code for an HTTP status:
//   - 400, 401, 403, 404, 405 map to the code of the same name
//   - any other 4xx maps to CodeBadRequest
//   - any 5xx maps to CodeServerError
//   - anything else maps to CodeUnknownError
func CodeForStatus(status int) Code {
	switch status {
	case http.StatusBadRequest:
		return CodeBadRequest
	case http.StatusUnauthorized:
		return CodeUnauthorized
	case http.StatusForbidden:
		return CodeForbidden
	case http.StatusNotFound:
		return CodeNotFound
	case http.StatusMethodNotAllowed:
		return CodeMethodNotAllowed
	}
	switch {
	case status >= 400 && status <= 499:
		return CodeBadRequest
	case status >= 500 && status <= 599:
		return CodeServerError
	default:
		return CodeUnknownError
	}
}

// PublicStatus rewrites a framework-produced status before it is shown to a
// client. 403 becomes 404 so callers cannot probe for protected resources,
// and every 5xx collapses to 500. Statuses carried by a BusinessError are
// never passed through here.
func PublicStatus(status int) int {
	switch {
	case status == http.StatusForbidden:
		return http.StatusNotFound
	case status >= 500 && status <= 599:
		return http.StatusInternalServerError
	default:
		return status
	}
}
