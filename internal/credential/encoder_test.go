// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 PPALLI Contributors

package credential_test

import (
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ppalli/ppalli/internal/credential"
	"github.com/ppalli/ppalli/pkg/errutil"
)

// fastParams keeps argon2id cheap enough for unit tests.
var fastParams = credential.Argon2idParams{
	SaltLength:  16,
	KeyLength:   32,
	Parallelism: 1,
	Memory:      1024,
	Iterations:  1,
}

func newRegistry(t *testing.T) *credential.Registry {
	t.Helper()
	v1, err := credential.NewArgon2id(credential.DefaultArgon2idParams)
	require.NoError(t, err)
	v11, err := credential.NewArgon2id(fastParams)
	require.NoError(t, err)
	v0, err := credential.NewBcrypt(4)
	require.NoError(t, err)

	reg, err := credential.NewRegistry(map[string]credential.Algorithm{
		"v0":   v0,
		"v1":   v1,
		"v1.1": v11,
	})
	require.NoError(t, err)
	return reg
}

func newEncoder(t *testing.T, active string) *credential.Encoder {
	t.Helper()
	enc, err := credential.NewEncoder(newRegistry(t), active)
	require.NoError(t, err)
	return enc
}

func TestEncoder_Encode(t *testing.T) {
	enc := credential.NewDefaultEncoder()

	t.Run("prefixes the active version", func(t *testing.T) {
		encoded, err := enc.Encode("2uZDgsTCcwIiVwWilAv6cP")
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(encoded.Raw(), "{"+credential.DefaultVersion+"}$argon2id$v=19$m=16384,t=2,p=1$"))
	})

	t.Run("never contains the secret", func(t *testing.T) {
		secret := credential.Secret("fBJ03TOGecAqvq8Dtc5Tzp")
		encoded, err := enc.Encode(secret)
		require.NoError(t, err)
		assert.NotContains(t, encoded.Raw(), string(secret))
	})

	t.Run("same secret produces different values (salt)", func(t *testing.T) {
		a, err := enc.Encode("secret")
		require.NoError(t, err)
		b, err := enc.Encode("secret")
		require.NoError(t, err)
		assert.NotEqual(t, a, b)
	})

	t.Run("rejects empty secret", func(t *testing.T) {
		_, err := enc.Encode("")
		require.ErrorIs(t, err, credential.ErrEmptySecret)
		errutil.AssertErrorCode(t, err, "CREDENTIAL_EMPTY_SECRET")
	})

	t.Run("uses the configured active version", func(t *testing.T) {
		for _, active := range []string{"v1", "v1.1"} {
			encoded, err := newEncoder(t, active).Encode("P@ssw0rd")
			require.NoError(t, err)
			version, ok := encoded.Version()
			require.True(t, ok)
			assert.Equal(t, active, version)
		}
	})
}

func TestEncoder_Verify(t *testing.T) {
	enc := newEncoder(t, "v1.1")

	t.Run("round trip", func(t *testing.T) {
		for _, secret := range []credential.Secret{"tLNzOrZrEh", "p", "공백 포함 비밀번호", "0u!vxt0Wg3U9xDz"} {
			encoded, err := enc.Encode(secret)
			require.NoError(t, err)
			ok, err := enc.Verify(secret, encoded)
			require.NoError(t, err)
			assert.True(t, ok)
		}
	})

	t.Run("secrets longer than 72 bytes round trip", func(t *testing.T) {
		secret := credential.Secret(strings.Repeat("Lo9!", 25))
		encoded, err := enc.Encode(secret)
		require.NoError(t, err)
		assert.True(t, enc.Matches(secret, encoded))
		assert.False(t, enc.Matches(secret[:72], encoded))
	})

	t.Run("different secret does not match", func(t *testing.T) {
		encoded, err := enc.Encode("tLNzOrZrEh")
		require.NoError(t, err)

		ok, err := enc.Verify("tLNzOrZrEh123", encoded)
		require.NoError(t, err)
		assert.False(t, ok)
		assert.False(t, enc.Matches("tLNzOrZrEh123", encoded))
	})

	tests := []struct {
		name    string
		encoded credential.Encoded
		want    error
	}{
		{name: "missing version tag", encoded: "$argon2id$v=19$m=1024,t=1,p=1$c2FsdA$aGFzaA", want: credential.ErrUnrecognizedFormat},
		{name: "empty tag", encoded: "{}$argon2id$v=19$m=1024,t=1,p=1$c2FsdA$aGFzaA", want: credential.ErrUnrecognizedFormat},
		{name: "unclosed tag", encoded: "{v1$argon2id", want: credential.ErrUnrecognizedFormat},
		{name: "unregistered version", encoded: "{v9}$argon2id$v=19$m=1024,t=1,p=1$c2FsdA$aGFzaA", want: credential.ErrUnrecognizedFormat},
		{name: "empty value", encoded: "", want: credential.ErrUnrecognizedFormat},
		{name: "truncated payload", encoded: "{v1}$argon2id$v=19", want: credential.ErrMalformedCredential},
		{name: "wrong algorithm", encoded: "{v1}$argon2i$v=19$m=1024,t=1,p=1$c2FsdA$aGFzaA", want: credential.ErrMalformedCredential},
		{name: "bad version field", encoded: "{v1}$argon2id$vXX$m=1024,t=1,p=1$c2FsdA$aGFzaA", want: credential.ErrMalformedCredential},
		{name: "bad params field", encoded: "{v1}$argon2id$v=19$invalid$c2FsdA$aGFzaA", want: credential.ErrMalformedCredential},
		{name: "threads overflow", encoded: "{v1}$argon2id$v=19$m=1024,t=1,p=256$c2FsdA$aGFzaA", want: credential.ErrMalformedCredential},
		{name: "bad salt encoding", encoded: "{v1}$argon2id$v=19$m=1024,t=1,p=1$!!!$aGFzaA", want: credential.ErrMalformedCredential},
		{name: "bad hash encoding", encoded: "{v1}$argon2id$v=19$m=1024,t=1,p=1$c2FsdA$!!!", want: credential.ErrMalformedCredential},
		{name: "iterations above cost limit", encoded: "{v1}$argon2id$v=19$m=8,t=4294967295,p=1$c2FsdHNhbHRzYWx0$aGFzaGhhc2hoYXNoaGFzaA", want: credential.ErrMalformedCredential},
		{name: "memory above cost limit", encoded: "{v1}$argon2id$v=19$m=4294967295,t=1,p=1$c2FsdHNhbHRzYWx0$aGFzaGhhc2hoYXNoaGFzaA", want: credential.ErrMalformedCredential},
		{name: "threads above cost limit", encoded: "{v1}$argon2id$v=19$m=16384,t=2,p=255$c2FsdHNhbHRzYWx0$aGFzaGhhc2hoYXNoaGFzaA", want: credential.ErrMalformedCredential},
		{name: "bad bcrypt payload", encoded: "{v0}not-bcrypt", want: credential.ErrMalformedCredential},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, err := enc.Verify("password", tt.encoded)
			assert.False(t, ok)
			require.ErrorIs(t, err, tt.want)
		})
	}
}

func TestEncoder_Migration(t *testing.T) {
	reg := newRegistry(t)

	legacy, ok := reg.Lookup("v0")
	require.True(t, ok)
	payload, err := legacy.Encode([]byte("pVwFycFVeprTB6nO!"))
	require.NoError(t, err)
	old := credential.Encoded("{v0}" + payload)

	current, err := credential.NewEncoder(reg, "v1.1")
	require.NoError(t, err)

	t.Run("previous version still verifies", func(t *testing.T) {
		ok, err := current.Verify("pVwFycFVeprTB6nO!", old)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("previous version needs upgrade", func(t *testing.T) {
		assert.True(t, current.NeedsUpgrade(old))
	})

	t.Run("verify and upgrade re-encodes with the active version", func(t *testing.T) {
		ok, upgraded, err := current.VerifyAndUpgrade("pVwFycFVeprTB6nO!", old)
		require.NoError(t, err)
		require.True(t, ok)
		require.NotEmpty(t, upgraded)

		version, _ := upgraded.Version()
		assert.Equal(t, "v1.1", version)
		assert.False(t, current.NeedsUpgrade(upgraded))
		assert.True(t, current.Matches("pVwFycFVeprTB6nO!", upgraded))
	})

	t.Run("active version is not re-encoded", func(t *testing.T) {
		fresh, err := current.Encode("pVwFycFVeprTB6nO!")
		require.NoError(t, err)

		ok, upgraded, err := current.VerifyAndUpgrade("pVwFycFVeprTB6nO!", fresh)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Empty(t, upgraded)
	})

	t.Run("wrong secret is not upgraded", func(t *testing.T) {
		ok, upgraded, err := current.VerifyAndUpgrade("wrong", old)
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Empty(t, upgraded)
	})
}

func TestEncoder_Concurrent(t *testing.T) {
	enc := newEncoder(t, "v1.1")

	var wg sync.WaitGroup
	errs := make(chan error, 8)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			encoded, err := enc.Encode("concurrent-secret")
			if err != nil {
				errs <- err
				return
			}
			if !enc.Matches("concurrent-secret", encoded) {
				errs <- assert.AnError
			}
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		assert.NoError(t, err)
	}
}

func TestNewEncoder(t *testing.T) {
	t.Run("rejects unregistered active version", func(t *testing.T) {
		_, err := credential.NewEncoder(newRegistry(t), "v2")
		require.Error(t, err)
		errutil.AssertErrorCode(t, err, "CREDENTIAL_UNKNOWN_VERSION")
	})

	t.Run("rejects verify-only active version", func(t *testing.T) {
		_, err := credential.NewEncoder(newRegistry(t), "v0")
		require.Error(t, err)
		errutil.AssertErrorCode(t, err, "CREDENTIAL_VERIFY_ONLY")
	})

	t.Run("rejects nil registry", func(t *testing.T) {
		_, err := credential.NewEncoder(nil, "v1")
		require.Error(t, err)
	})
}
