// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 PPALLI Contributors

package credential

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"github.com/samber/oops"
	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/bcrypt"
)

// Algorithm hashes and checks secrets for one registered version.
// Implementations must be safe for concurrent use and hold no locks while
// hashing.
type Algorithm interface {
	// Encode hashes secret with a fresh random salt.
	Encode(secret []byte) (string, error)

	// Matches checks secret against a payload produced by Encode.
	// Returns (false, ErrMalformedCredential) when payload cannot be parsed.
	Matches(secret []byte, payload string) (bool, error)
}

// VerifyOnly is implemented by algorithms kept to check stored credentials.
// An Encoder refuses to make one its active version.
type VerifyOnly interface {
	Algorithm
	verifyOnly()
}

// maxCostFactor bounds the argon2id costs Matches accepts, as a multiple of
// the algorithm's own parameters.
const maxCostFactor = 4

// Argon2idParams configures an Argon2id algorithm.
type Argon2idParams struct {
	SaltLength  uint32 `koanf:"salt_length" json:"salt_length" jsonschema:"minimum=8"`
	KeyLength   uint32 `koanf:"key_length" json:"key_length" jsonschema:"minimum=16"`
	Parallelism uint8  `koanf:"parallelism" json:"parallelism" jsonschema:"minimum=1"`
	Memory      uint32 `koanf:"memory" json:"memory" jsonschema:"minimum=1024,description=Memory cost in KiB"`
	Iterations  uint32 `koanf:"iterations" json:"iterations" jsonschema:"minimum=1"`
}

// Argon2id implements Algorithm with argon2id and PHC-formatted payloads:
//
//	$argon2id$v=19$m=16384,t=2,p=1$<salt>$<hash>
type Argon2id struct {
	params Argon2idParams
}

// NewArgon2id creates an Argon2id algorithm.
func NewArgon2id(params Argon2idParams) (*Argon2id, error) {
	if params.SaltLength == 0 || params.KeyLength == 0 || params.Parallelism == 0 ||
		params.Memory == 0 || params.Iterations == 0 {
		return nil, oops.Code("CREDENTIAL_INVALID_PARAMS").
			With("params", params).
			Errorf("argon2id parameters must all be positive")
	}
	return &Argon2id{params: params}, nil
}

// Encode produces an argon2id payload for secret.
func (a *Argon2id) Encode(secret []byte) (string, error) {
	salt := make([]byte, a.params.SaltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", oops.Code("CREDENTIAL_SALT_FAILED").Wrap(err)
	}

	hash := argon2.IDKey(secret, salt, a.params.Iterations, a.params.Memory, a.params.Parallelism, a.params.KeyLength)

	return fmt.Sprintf(
		"$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version,
		a.params.Memory,
		a.params.Iterations,
		a.params.Parallelism,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(hash),
	), nil
}

// Matches recomputes the hash with the parameters embedded in payload.
func (a *Argon2id) Matches(secret []byte, payload string) (bool, error) {
	parts := strings.Split(payload, "$")
	if len(parts) != 6 || parts[0] != "" {
		return false, malformed("invalid argon2id payload format")
	}
	if parts[1] != "argon2id" {
		return false, malformed("unsupported hash algorithm: %s", parts[1])
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil {
		return false, malformed("invalid argon2 version field")
	}
	if version != argon2.Version {
		return false, malformed("unsupported argon2 version %d", version)
	}

	var memory, iterations, threads uint32
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &memory, &iterations, &threads); err != nil {
		return false, malformed("invalid argon2 parameter field")
	}
	if threads == 0 || threads > 255 {
		return false, malformed("threads value %d out of range", threads)
	}
	if memory == 0 || iterations == 0 {
		return false, malformed("argon2 cost parameters must be positive")
	}
	if !a.withinCost(memory, iterations, threads) {
		return false, malformed("argon2 cost m=%d,t=%d,p=%d exceeds limit", memory, iterations, threads)
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return false, malformed("invalid salt encoding")
	}
	expected, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		return false, malformed("invalid hash encoding")
	}
	keyLen := len(expected)
	if keyLen == 0 || keyLen > 1<<10 {
		return false, malformed("invalid hash key length: %d", keyLen)
	}

	computed := argon2.IDKey(secret, salt, iterations, memory, uint8(threads), uint32(keyLen))
	return subtle.ConstantTimeCompare(computed, expected) == 1, nil
}

func (a *Argon2id) withinCost(memory, iterations, threads uint32) bool {
	return uint64(memory) <= maxCostFactor*uint64(a.params.Memory) &&
		uint64(iterations) <= maxCostFactor*uint64(a.params.Iterations) &&
		threads <= maxCostFactor*uint32(a.params.Parallelism)
}

// Bcrypt implements Algorithm with bcrypt. It is registered for credentials
// issued before argon2id was adopted and is verify-only: bcrypt truncates
// secrets past 72 bytes.
type Bcrypt struct {
	cost int
}

// NewBcrypt creates a Bcrypt algorithm with the given cost.
func NewBcrypt(cost int) (*Bcrypt, error) {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		return nil, oops.Code("CREDENTIAL_INVALID_PARAMS").
			With("cost", cost).
			Errorf("bcrypt cost must be between %d and %d", bcrypt.MinCost, bcrypt.MaxCost)
	}
	return &Bcrypt{cost: cost}, nil
}

// Encode produces a bcrypt payload for secret.
func (b *Bcrypt) Encode(secret []byte) (string, error) {
	hash, err := bcrypt.GenerateFromPassword(secret, b.cost)
	if err != nil {
		return "", oops.Code("CREDENTIAL_ENCODE_FAILED").Wrap(err)
	}
	return string(hash), nil
}

func (*Bcrypt) verifyOnly() {}

// Matches checks secret against a bcrypt payload.
func (b *Bcrypt) Matches(secret []byte, payload string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(payload), secret)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return false, nil
	default:
		return false, malformed("invalid bcrypt payload")
	}
}

func malformed(format string, args ...any) error {
	return oops.Code("CREDENTIAL_MALFORMED").Wrapf(ErrMalformedCredential, format, args...)
}
