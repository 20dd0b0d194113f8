// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 PPALLI Contributors

package idgen_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ppalli/ppalli/internal/idgen"
	"github.com/ppalli/ppalli/pkg/errutil"
)

func TestID_String(t *testing.T) {
	t.Run("renders 13 characters", func(t *testing.T) {
		assert.Equal(t, "0000000000000", idgen.ID(0).String())
		assert.Equal(t, "000000000000Z", idgen.ID(31).String())
		assert.Len(t, idgen.Next().String(), 13)
	})

	t.Run("round trips through Parse", func(t *testing.T) {
		id := idgen.Next()
		parsed, err := idgen.Parse(id.String())
		require.NoError(t, err)
		assert.Equal(t, id, parsed)
	})

	t.Run("preserves ordering", func(t *testing.T) {
		a := idgen.Next()
		b := idgen.Next()
		assert.Less(t, a.String(), b.String())
	})
}

func TestParse(t *testing.T) {
	t.Run("accepts lowercase and aliases", func(t *testing.T) {
		id, err := idgen.Parse("000000000000z")
		require.NoError(t, err)
		assert.Equal(t, idgen.ID(31), id)

		id, err = idgen.Parse("00000000000Ol")
		require.NoError(t, err)
		assert.Equal(t, idgen.ID(1), id)
	})

	t.Run("accepts the largest id", func(t *testing.T) {
		id, err := idgen.Parse("7ZZZZZZZZZZZZ")
		require.NoError(t, err)
		assert.Equal(t, idgen.ID(math.MaxInt64), id)
	})

	tests := []struct {
		name  string
		input string
	}{
		{name: "too short", input: "ABC"},
		{name: "invalid character", input: "000000000000U"},
		{name: "overflow", input: "Z000000000000"},
		{name: "sign bit set", input: "8000000000000"},
		{name: "sign bit set with max nibble", input: "F000000000000"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := idgen.Parse(tt.input)
			require.Error(t, err)
			errutil.AssertErrorCode(t, err, "ID_INVALID")
		})
	}
}
