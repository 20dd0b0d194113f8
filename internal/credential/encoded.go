// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 PPALLI Contributors

package credential

import (
	"log/slog"
	"strings"
)

const masked = "[masked]"

// Encoded is a stored credential of the form "{version}payload".
// String and LogValue never reveal the payload.
type Encoded string

// Version returns the version tag, or false when the tag is missing.
func (e Encoded) Version() (string, bool) {
	version, _, ok := e.split()
	return version, ok
}

func (e Encoded) split() (version, payload string, ok bool) {
	s := string(e)
	if !strings.HasPrefix(s, "{") {
		return "", "", false
	}
	end := strings.IndexByte(s, '}')
	if end <= 1 {
		return "", "", false
	}
	return s[1:end], s[end+1:], true
}

// Raw returns the full stored text, for persistence only.
func (e Encoded) Raw() string {
	return string(e)
}

// String renders the version tag and a mask.
func (e Encoded) String() string {
	if version, ok := e.Version(); ok {
		return "{" + version + "}" + masked
	}
	return masked
}

// LogValue implements slog.LogValuer.
func (e Encoded) LogValue() slog.Value {
	return slog.StringValue(e.String())
}

// Secret is a raw secret such as a plaintext password. It renders as a mask
// in fmt and slog output.
type Secret string

// String implements fmt.Stringer.
func (Secret) String() string {
	return masked
}

// GoString implements fmt.GoStringer so %#v is masked too.
func (Secret) GoString() string {
	return masked
}

// LogValue implements slog.LogValuer.
func (Secret) LogValue() slog.Value {
	return slog.StringValue(masked)
}
