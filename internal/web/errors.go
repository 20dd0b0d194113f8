// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 PPALLI Contributors

package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// maxBodyBytes caps request bodies read by DecodeJSON.
const maxBodyBytes = 1 << 20

// StatusError is a failure produced by the HTTP layer itself, such as an
// unmatched route, rather than by application code.
type StatusError struct {
	Status int
	Err    error
}

func (e *StatusError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("http %d: %v", e.Status, e.Err)
	}
	return fmt.Sprintf("http %d: %s", e.Status, http.StatusText(e.Status))
}

func (e *StatusError) Unwrap() error { return e.Err }

// MalformedBodyError reports a request body that is missing or cannot be
// decoded.
type MalformedBodyError struct {
	Err error
}

func (e *MalformedBodyError) Error() string {
	return "malformed request body: " + e.Err.Error()
}

func (e *MalformedBodyError) Unwrap() error { return e.Err }

var (
	errEmptyBody    = errors.New("empty body")
	errTrailingData = errors.New("unexpected data after JSON value")
)

// DecodeJSON decodes one JSON value from the request body into v. Any
// failure to read or parse the body is returned as *MalformedBodyError.
func DecodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	if r.Body == nil || r.Body == http.NoBody {
		return &MalformedBodyError{Err: errEmptyBody}
	}

	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			err = errEmptyBody
		}
		return &MalformedBodyError{Err: err}
	}
	var extra json.RawMessage
	if err := dec.Decode(&extra); !errors.Is(err, io.EOF) {
		return &MalformedBodyError{Err: errTrailingData}
	}
	return nil
}
