// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 PPALLI Contributors

// Package credential provides versioned password hashing.
//
// Every stored credential carries the version tag of the algorithm that
// produced it:
//
//	{v1}$argon2id$v=19$m=16384,t=2,p=1$xTxUmsnixEraULyIT8+lCw$VytIxMDo1smvF7Yh/lTPGPXbFAK0axspkYbmSYAycyM
//
// A Registry maps tags to algorithms and is fixed at startup. The Encoder
// hashes new secrets with the active tag and verifies any registered tag, so
// changing the active version in configuration migrates credentials lazily:
// old values keep verifying and VerifyAndUpgrade re-encodes them on the next
// successful check.
//
// Tags follow semantic versioning. A new algorithm bumps the major version
// ("v1" -> "v2"); new parameters for the same algorithm bump the minor
// version ("v1" -> "v1.1").
package credential
