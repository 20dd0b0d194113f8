// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 PPALLI Contributors

package credential

import (
	"errors"
	"time"

	"github.com/samber/oops"
)

// Sentinel errors returned alongside a false verification result.
var (
	// ErrUnrecognizedFormat means the encoded value has no version tag or a
	// tag that is not registered.
	ErrUnrecognizedFormat = errors.New("unrecognized credential format")

	// ErrMalformedCredential means the version is known but its payload
	// cannot be parsed by the registered algorithm.
	ErrMalformedCredential = errors.New("malformed credential payload")

	// ErrEmptySecret is returned when encoding an empty secret.
	ErrEmptySecret = oops.Code("CREDENTIAL_EMPTY_SECRET").Errorf("secret cannot be empty")
)

// Encoder hashes new secrets with the active version and verifies stored
// credentials with whichever registered version produced them.
type Encoder struct {
	registry *Registry
	active   string
}

// NewEncoder creates an Encoder. The active version must be registered and
// must not be VerifyOnly.
func NewEncoder(registry *Registry, active string) (*Encoder, error) {
	if registry == nil {
		return nil, oops.Code("CREDENTIAL_REGISTRY_EMPTY").Errorf("registry is required")
	}
	alg, ok := registry.Lookup(active)
	if !ok {
		return nil, oops.Code("CREDENTIAL_UNKNOWN_VERSION").
			With("version", active).
			With("registered", registry.Versions()).
			Errorf("active version is not registered")
	}
	if _, legacy := alg.(VerifyOnly); legacy {
		return nil, oops.Code("CREDENTIAL_VERIFY_ONLY").
			With("version", active).
			Errorf("active version can only verify existing credentials")
	}
	return &Encoder{registry: registry, active: active}, nil
}

// ActiveVersion returns the version tag used by Encode.
func (e *Encoder) ActiveVersion() string {
	return e.active
}

// Encode hashes secret with the active version. Two calls with the same
// secret return different values.
func (e *Encoder) Encode(secret Secret) (Encoded, error) {
	if secret == "" {
		return "", ErrEmptySecret
	}

	alg, _ := e.registry.Lookup(e.active)

	start := time.Now()
	payload, err := alg.Encode([]byte(secret))
	encodeDuration.WithLabelValues(e.active).Observe(time.Since(start).Seconds())
	if err != nil {
		return "", oops.Code("CREDENTIAL_ENCODE_FAILED").With("version", e.active).Wrap(err)
	}
	return Encoded("{" + e.active + "}" + payload), nil
}

// Verify checks secret against encoded using the algorithm registered for
// the encoded version tag. It returns (false, ErrUnrecognizedFormat) for a
// missing or unregistered tag and (false, ErrMalformedCredential) for an
// unparseable payload. A mismatch is (false, nil).
func (e *Encoder) Verify(secret Secret, encoded Encoded) (bool, error) {
	version, payload, ok := encoded.split()
	if !ok {
		verifyTotal.WithLabelValues("", resultUnrecognized).Inc()
		return false, oops.Code("CREDENTIAL_UNRECOGNIZED").Wrap(ErrUnrecognizedFormat)
	}
	alg, ok := e.registry.Lookup(version)
	if !ok {
		verifyTotal.WithLabelValues("", resultUnrecognized).Inc()
		return false, oops.Code("CREDENTIAL_UNRECOGNIZED").With("version", version).Wrap(ErrUnrecognizedFormat)
	}

	start := time.Now()
	matched, err := alg.Matches([]byte(secret), payload)
	verifyDuration.WithLabelValues(version).Observe(time.Since(start).Seconds())
	if err != nil {
		verifyTotal.WithLabelValues(version, resultMalformed).Inc()
		return false, oops.With("version", version).Wrap(err)
	}
	if !matched {
		verifyTotal.WithLabelValues(version, resultMismatch).Inc()
		return false, nil
	}
	verifyTotal.WithLabelValues(version, resultMatch).Inc()
	return true, nil
}

// Matches is Verify without the error detail.
func (e *Encoder) Matches(secret Secret, encoded Encoded) bool {
	ok, _ := e.Verify(secret, encoded)
	return ok
}

// NeedsUpgrade reports whether encoded was produced by a version other than
// the active one.
func (e *Encoder) NeedsUpgrade(encoded Encoded) bool {
	version, ok := encoded.Version()
	return !ok || version != e.active
}

// VerifyAndUpgrade verifies secret and, when it matches a credential from a
// non-active version, re-encodes it with the active version. upgraded is
// empty when no re-encoding happened. A failed re-encode does not fail the
// verification.
func (e *Encoder) VerifyAndUpgrade(secret Secret, encoded Encoded) (ok bool, upgraded Encoded, err error) {
	ok, err = e.Verify(secret, encoded)
	if !ok || err != nil {
		return ok, "", err
	}
	if !e.NeedsUpgrade(encoded) {
		return true, "", nil
	}
	upgraded, encErr := e.Encode(secret)
	if encErr != nil {
		return true, "", nil
	}
	return true, upgraded, nil
}
