// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 PPALLI Contributors

package credential

// DefaultVersion is the version tag of DefaultArgon2idParams.
const DefaultVersion = "v1"

// DefaultArgon2idParams are the parameters of version v1.
var DefaultArgon2idParams = Argon2idParams{
	SaltLength:  16,
	KeyLength:   32,
	Parallelism: 1,
	Memory:      1 << 14,
	Iterations:  2,
}

// DefaultRegistry returns a registry holding only DefaultVersion.
func DefaultRegistry() *Registry {
	alg, err := NewArgon2id(DefaultArgon2idParams)
	if err != nil {
		panic(err)
	}
	r, err := NewRegistry(map[string]Algorithm{DefaultVersion: alg})
	if err != nil {
		panic(err)
	}
	return r
}

// NewDefaultEncoder returns an Encoder over DefaultRegistry.
func NewDefaultEncoder() *Encoder {
	e, err := NewEncoder(DefaultRegistry(), DefaultVersion)
	if err != nil {
		panic(err)
	}
	return e
}
