// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 PPALLI Contributors

package apierr_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ppalli/ppalli/internal/apierr"
)

func TestErrorInfo_MarshalJSON(t *testing.T) {
	t.Run("code only", func(t *testing.T) {
		data, err := json.Marshal(apierr.ErrorInfo{Code: apierr.CodeNotFound})
		require.NoError(t, err)
		assert.JSONEq(t, `{"code":"NOT_FOUND"}`, string(data))
	})

	t.Run("additional keys are flattened", func(t *testing.T) {
		data, err := json.Marshal(apierr.ErrorInfo{
			Code:       apierr.CodeDuplicateUsername,
			Additional: map[string]any{"username": "user01"},
		})
		require.NoError(t, err)
		assert.Equal(t, `{"code":"DUPLICATE_USERNAME","username":"user01"}`, string(data))
	})

	t.Run("additional code key cannot override", func(t *testing.T) {
		data, err := json.Marshal(apierr.ErrorInfo{
			Code:       apierr.CodeBadRequest,
			Additional: map[string]any{"code": "HIJACK", "a": 1},
		})
		require.NoError(t, err)
		assert.Equal(t, `{"code":"BAD_REQUEST","a":1}`, string(data))
	})

	t.Run("unmarshal splits code from additional", func(t *testing.T) {
		var info apierr.ErrorInfo
		require.NoError(t, json.Unmarshal([]byte(`{"code":"DUPLICATE_USERNAME","username":"alice"}`), &info))
		assert.Equal(t, apierr.CodeDuplicateUsername, info.Code)
		assert.Equal(t, map[string]any{"username": "alice"}, info.Additional)
	})
}

func TestBusinessError(t *testing.T) {
	t.Run("duplicate username", func(t *testing.T) {
		err := apierr.DuplicateUsername("alice")
		assert.Equal(t, http.StatusBadRequest, err.Status)
		assert.Equal(t, apierr.CodeDuplicateUsername, err.Code)

		data, jerr := json.Marshal(err.Info())
		require.NoError(t, jerr)
		assert.Equal(t, `{"code":"DUPLICATE_USERNAME","username":"alice"}`, string(data))
	})

	t.Run("cause is unwrapped but not exposed", func(t *testing.T) {
		cause := errors.New("pq: duplicate key value violates unique constraint")
		err := apierr.DuplicateUsername("alice").Wrap(cause)

		assert.ErrorIs(t, err, cause)
		data, jerr := json.Marshal(err.Info())
		require.NoError(t, jerr)
		assert.NotContains(t, string(data), "pq:")
	})

	t.Run("found through wrapping", func(t *testing.T) {
		wrapped := errors.Join(errors.New("context"), apierr.MaxTryIDGeneration(3))

		var be *apierr.BusinessError
		require.ErrorAs(t, wrapped, &be)
		assert.Equal(t, http.StatusInternalServerError, be.Status)
		assert.Equal(t, apierr.CodeMaxTryIDGeneration, be.Code)
	})
}
