// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 PPALLI Contributors

package errutil

import (
	"errors"
	"testing"

	"github.com/samber/oops"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ppalli/ppalli/internal/apierr"
	"github.com/ppalli/ppalli/internal/validation"
)

// AssertErrorCode asserts that the innermost oops code in err's chain is code.
func AssertErrorCode(t testing.TB, err error, code string) {
	t.Helper()
	require.Error(t, err, "expected error with code %s", code)
	oopsErr, ok := oops.AsOops(err)
	require.True(t, ok, "expected oops error, got %T: %v", err, err)
	assert.Equal(t, code, oopsErr.Code(), "error: %v", err)
}

// AssertErrorContext asserts that err carries key=value in its oops context.
func AssertErrorContext(t testing.TB, err error, key string, value any) {
	t.Helper()
	oopsErr, ok := oops.AsOops(err)
	require.True(t, ok, "expected oops error, got %T: %v", err, err)
	got, found := oopsErr.Context()[key]
	require.True(t, found, "context has no key %q", key)
	assert.Equal(t, value, got)
}

// AssertBusinessError asserts that err wraps a business error with status
// and code, and returns it for further checks on its detail.
func AssertBusinessError(t testing.TB, err error, status int, code apierr.Code) *apierr.BusinessError {
	t.Helper()
	var be *apierr.BusinessError
	require.True(t, errors.As(err, &be), "expected business error, got %T: %v", err, err)
	assert.Equal(t, code, be.Code)
	assert.Equal(t, status, be.Status)
	return be
}

// AssertViolatedFields asserts that err is a validation error and returns
// how many constraints failed per field.
func AssertViolatedFields(t testing.TB, err error) map[string]int {
	t.Helper()
	var verr *validation.Error
	require.True(t, errors.As(err, &verr), "expected validation error, got %T: %v", err, err)
	fields := make(map[string]int, len(verr.Violations))
	for _, v := range verr.Violations {
		fields[v.Field]++
	}
	return fields
}
