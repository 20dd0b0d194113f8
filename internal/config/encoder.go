// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 PPALLI Contributors

package config

import (
	"github.com/samber/oops"

	"github.com/ppalli/ppalli/internal/credential"
)

// Encoder builds the credential encoder described by c.
func (c CredentialConfig) Encoder() (*credential.Encoder, error) {
	if len(c.Versions) == 0 {
		active := c.Active
		if active == "" {
			active = credential.DefaultVersion
		}
		return credential.NewEncoder(credential.DefaultRegistry(), active)
	}

	algorithms := make(map[string]credential.Algorithm, len(c.Versions))
	for tag, v := range c.Versions {
		alg, err := v.algorithm()
		if err != nil {
			return nil, oops.With("version", tag).Wrap(err)
		}
		algorithms[tag] = alg
	}

	registry, err := credential.NewRegistry(algorithms)
	if err != nil {
		return nil, err
	}
	active := c.Active
	if active == "" {
		active = registry.Latest()
	}
	return credential.NewEncoder(registry, active)
}

func (v VersionConfig) algorithm() (credential.Algorithm, error) {
	switch v.Algorithm {
	case AlgorithmArgon2id:
		params := credential.DefaultArgon2idParams
		if v.Argon2id != nil {
			params = *v.Argon2id
		}
		return credential.NewArgon2id(params)
	case AlgorithmBcrypt:
		return credential.NewBcrypt(v.BcryptCost)
	default:
		return nil, oops.Code("CONFIG_UNKNOWN_ALGORITHM").
			With("algorithm", v.Algorithm).
			Errorf("unknown credential algorithm %q", v.Algorithm)
	}
}
