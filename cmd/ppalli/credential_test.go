// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 PPALLI Contributors

package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/ppalli/ppalli/internal/validation"
	"github.com/ppalli/ppalli/pkg/errutil"
)

func TestCredentialCmd_HashAndVerify(t *testing.T) {
	out, err := execute(t, "correct-h0rse!\n", "credential", "hash")
	require.NoError(t, err)
	encoded := strings.TrimSpace(out)
	assert.True(t, strings.HasPrefix(encoded, "{v1}$argon2id$"), encoded)

	out, err = execute(t, "correct-h0rse!\n", "credential", "verify", encoded)
	require.NoError(t, err)
	assert.Equal(t, "match\n", out, "active version needs no upgrade")

	_, err = execute(t, "wrong\n", "credential", "verify", encoded)
	errutil.AssertErrorCode(t, err, "CREDENTIAL_MISMATCH")
}

const upgradeVersions = `
  versions:
    v0:
      algorithm: bcrypt
      bcrypt_cost: 4
    v1:
      algorithm: argon2id
      argon2id: {salt_length: 16, key_length: 32, parallelism: 1, memory: 1024, iterations: 1}
    v2:
      algorithm: argon2id
      argon2id: {salt_length: 16, key_length: 32, parallelism: 1, memory: 2048, iterations: 1}
`

func TestCredentialCmd_VerifyUpgrades(t *testing.T) {
	dir := t.TempDir()
	oldCfg := filepath.Join(dir, "old.yaml")
	newCfg := filepath.Join(dir, "new.yaml")
	require.NoError(t, os.WriteFile(oldCfg, []byte("credential:\n  active: v1"+upgradeVersions), 0o600))
	require.NoError(t, os.WriteFile(newCfg, []byte("credential:\n  active: v2"+upgradeVersions), 0o600))

	t.Run("older argon2id version", func(t *testing.T) {
		out, err := execute(t, "s3cret!\n", "--config", oldCfg, "credential", "hash")
		require.NoError(t, err)
		encoded := strings.TrimSpace(out)
		require.True(t, strings.HasPrefix(encoded, "{v1}"), encoded)

		out, err = execute(t, "s3cret!\n", "--config", newCfg, "credential", "verify", encoded)
		require.NoError(t, err)
		assert.Contains(t, out, "match")
		assert.Contains(t, out, "upgraded: {v2}")
	})

	t.Run("bcrypt version", func(t *testing.T) {
		hash, err := bcrypt.GenerateFromPassword([]byte("s3cret!"), 4)
		require.NoError(t, err)

		out, err := execute(t, "s3cret!\n", "--config", newCfg, "credential", "verify", "{v0}"+string(hash))
		require.NoError(t, err)
		assert.Contains(t, out, "upgraded: {v2}")
	})
}

func TestCredentialCmd_BcryptActiveRejected(t *testing.T) {
	cfg := filepath.Join(t.TempDir(), "bcrypt.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte("credential:\n  active: v0"+upgradeVersions), 0o600))

	_, err := execute(t, "s3cret!\n", "--config", cfg, "credential", "hash")
	errutil.AssertErrorCode(t, err, "CONFIG_INVALID")
}

func TestCredentialCmd_EnforcePolicy(t *testing.T) {
	_, err := execute(t, "short\n", "credential", "hash", "--enforce-policy")

	var invalid *validation.Error
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, "password", invalid.Violations[0].Field)
}

func TestCredentialCmd_EmptyStdin(t *testing.T) {
	_, err := execute(t, "", "credential", "hash")
	errutil.AssertErrorCode(t, err, "CREDENTIAL_EMPTY")
}
