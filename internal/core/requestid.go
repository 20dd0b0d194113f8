// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 PPALLI Contributors

// Package core holds request-scoped primitives shared by the HTTP layer and
// logging.
package core

import (
	"context"
	"crypto/rand"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"
)

var (
	entropy     = ulid.Monotonic(rand.Reader, 0)
	entropyLock sync.Mutex
)

type requestIDKey struct{}

// NewRequestID returns a new correlation id for an inbound request.
func NewRequestID() ulid.ULID {
	entropyLock.Lock()
	defer entropyLock.Unlock()
	return ulid.MustNew(ulid.Timestamp(time.Now()), entropy)
}

// ParseRequestID parses a correlation id supplied by a caller.
func ParseRequestID(s string) (ulid.ULID, error) {
	id, err := ulid.Parse(s)
	if err != nil {
		return ulid.ULID{}, oops.Code("REQUEST_ID_INVALID").With("request_id", s).Wrap(err)
	}
	return id, nil
}

// WithRequestID returns a copy of ctx carrying id.
func WithRequestID(ctx context.Context, id ulid.ULID) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestIDFromContext returns the request id stored in ctx, if any.
func RequestIDFromContext(ctx context.Context) (ulid.ULID, bool) {
	id, ok := ctx.Value(requestIDKey{}).(ulid.ULID)
	return id, ok
}
