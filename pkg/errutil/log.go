// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 PPALLI Contributors

// Package errutil logs and inspects oops errors.
package errutil

import (
	"context"
	"log/slog"

	"github.com/samber/oops"
)

// Code returns the oops code attached to err, or "" when err carries none.
func Code(err error) string {
	oopsErr, ok := oops.AsOops(err)
	if !ok {
		return ""
	}
	code, _ := oopsErr.Code().(string)
	return code
}

// LogError logs err at error level. For oops errors the code, context and
// stacktrace are logged as separate attributes; other errors log their
// message only. Extra attrs are appended as given.
func LogError(ctx context.Context, logger *slog.Logger, msg string, err error, attrs ...any) {
	oopsErr, ok := oops.AsOops(err)
	if !ok {
		logger.ErrorContext(ctx, msg, append([]any{"error", err}, attrs...)...)
		return
	}

	all := []any{"error", oopsErr.Error()}
	if code := oopsErr.Code(); code != nil {
		all = append(all, "code", code)
	}
	if c := oopsErr.Context(); len(c) > 0 {
		all = append(all, "context", c)
	}
	if st := oopsErr.Stacktrace(); st != "" {
		all = append(all, "stacktrace", st)
	}
	logger.ErrorContext(ctx, msg, append(all, attrs...)...)
}
