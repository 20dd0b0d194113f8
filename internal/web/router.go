// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 PPALLI Contributors

package web

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/ppalli/ppalli/pkg/errutil"
)

// ErrorRouter is the single place where handler errors become responses.
type ErrorRouter struct {
	logger *slog.Logger
}

// NewErrorRouter creates an ErrorRouter. A nil logger uses slog.Default.
func NewErrorRouter(logger *slog.Logger) *ErrorRouter {
	if logger == nil {
		logger = slog.Default()
	}
	return &ErrorRouter{logger: logger}
}

// Respond classifies err, logs it and writes the response.
func (er *ErrorRouter) Respond(w http.ResponseWriter, r *http.Request, err error) {
	f := Classify(err)
	ctx := r.Context()
	attrs := []any{
		"kind", f.Kind.String(),
		"response_code", f.Body.Code.String(),
		"status", f.Status,
		"method", r.Method,
		"path", r.URL.Path,
	}

	switch f.Kind {
	case KindBusiness, KindValidation, KindMalformedBody:
		er.logger.DebugContext(ctx, "request rejected", append(attrs, "error", err)...)
	case KindStatus:
		if f.Status >= http.StatusInternalServerError {
			er.logger.ErrorContext(ctx, "request failed", append(attrs, "error", err)...)
		} else {
			er.logger.DebugContext(ctx, "request rejected", append(attrs, "error", err)...)
		}
	case KindUnhandled:
		errutil.LogError(ctx, er.logger, "unhandled error", err, attrs...)
	}

	errorsTotal.WithLabelValues(f.Body.Code.String(), strconv.Itoa(f.Status)).Inc()
	writeJSON(w, f.Status, f.Body)
}

// StatusHandler responds to every request as if the HTTP layer had
// produced status. It is used for chi's NotFound and MethodNotAllowed.
func (er *ErrorRouter) StatusHandler(status int) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		er.Respond(w, r, &StatusError{Status: status})
	})
}

// HandlerFunc is an http.HandlerFunc that reports failure by returning an
// error instead of writing it.
type HandlerFunc func(w http.ResponseWriter, r *http.Request) error

// Handle adapts fn so that any returned error goes through Respond.
func (er *ErrorRouter) Handle(fn HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := fn(w, r); err != nil {
			er.Respond(w, r, err)
		}
	})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	//nolint:errcheck // client may have gone away
	json.NewEncoder(w).Encode(body)
}
