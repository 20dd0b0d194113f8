// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 PPALLI Contributors

// Package validation checks request fields against typed constraints and
// translates the failures into client-safe detail objects.
package validation

import (
	"math"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// Unbounded is the Size.Max sentinel meaning "no upper bound".
const Unbounded = math.MaxInt32

// Constraint is a single named check on a string value. The set of
// implementations is closed.
type Constraint interface {
	// Kind is the name reported to clients under "validation".
	Kind() string
	// Params returns the constraint's extra parameters. Sentinel "no bound"
	// values are omitted.
	Params() map[string]any
	// Satisfied reports whether value passes the check.
	Satisfied(value string) bool

	constraint()
}

// composite is a constraint built from members. When it fails, each failing
// member is reported in its place.
type composite interface {
	Constraint
	members() []Constraint
}

var (
	alphabetPattern = regexp.MustCompile(`(?i)[a-z]`)
	numberPattern   = regexp.MustCompile(`[0-9]`)
	specialPattern  = regexp.MustCompile(`(?i)[^a-z0-9]`)
)

// Size bounds the length of a value in characters, inclusive. Max has no
// implicit default: use Unbounded, or MinSize, for a lower bound only.
type Size struct {
	Min int
	Max int
}

// MinSize returns a Size with only a lower bound.
func MinSize(n int) Size {
	return Size{Min: n, Max: Unbounded}
}

func (Size) Kind() string { return "Size" }

func (c Size) Params() map[string]any {
	params := map[string]any{}
	if c.Min != 0 {
		params["min"] = c.Min
	}
	if c.Max != Unbounded {
		params["max"] = c.Max
	}
	return params
}

func (c Size) Satisfied(value string) bool {
	n := utf8.RuneCountInString(value)
	return n >= c.Min && n <= c.Max
}

func (Size) constraint() {}

// RequireAlphabet requires at least one ASCII letter.
type RequireAlphabet struct{}

func (RequireAlphabet) Kind() string                { return "RequireAlphabet" }
func (RequireAlphabet) Params() map[string]any      { return nil }
func (RequireAlphabet) Satisfied(value string) bool { return alphabetPattern.MatchString(value) }
func (RequireAlphabet) constraint()                 {}

// RequireNumber requires at least one ASCII digit.
type RequireNumber struct{}

func (RequireNumber) Kind() string                { return "RequireNumber" }
func (RequireNumber) Params() map[string]any      { return nil }
func (RequireNumber) Satisfied(value string) bool { return numberPattern.MatchString(value) }
func (RequireNumber) constraint()                 {}

// RequireSpecialCharacter requires at least one character that is neither
// an ASCII letter nor a digit.
type RequireSpecialCharacter struct{}

func (RequireSpecialCharacter) Kind() string                { return "RequireSpecialCharacter" }
func (RequireSpecialCharacter) Params() map[string]any      { return nil }
func (RequireSpecialCharacter) Satisfied(value string) bool { return specialPattern.MatchString(value) }
func (RequireSpecialCharacter) constraint()                 {}

// DefaultAllow is the special-character allow-list used by usernames.
var DefaultAllow = []rune{'-', '_'}

// SpecialCharacterConstraint limits a value to ASCII letters, digits and
// the runes in Allow.
type SpecialCharacterConstraint struct {
	Allow []rune
}

func (SpecialCharacterConstraint) Kind() string { return "SpecialCharacterConstraint" }

func (c SpecialCharacterConstraint) Params() map[string]any {
	allow := make([]string, len(c.Allow))
	for i, r := range c.Allow {
		allow[i] = string(r)
	}
	return map[string]any{"allow": allow}
}

func (c SpecialCharacterConstraint) Satisfied(value string) bool {
	for _, r := range value {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		case strings.ContainsRune(string(c.Allow), r):
		default:
			return false
		}
	}
	return true
}

func (SpecialCharacterConstraint) constraint() {}

// RequireAlphabetOrNumber requires at least one ASCII letter or digit. On
// failure it reports RequireAlphabet and RequireNumber.
type RequireAlphabetOrNumber struct{}

func (RequireAlphabetOrNumber) Kind() string           { return "RequireAlphabetOrNumber" }
func (RequireAlphabetOrNumber) Params() map[string]any { return nil }

func (c RequireAlphabetOrNumber) Satisfied(value string) bool {
	for _, m := range c.members() {
		if m.Satisfied(value) {
			return true
		}
	}
	return false
}

func (RequireAlphabetOrNumber) members() []Constraint {
	return []Constraint{RequireAlphabet{}, RequireNumber{}}
}

func (RequireAlphabetOrNumber) constraint() {}

// Email requires a syntactically valid email address. An empty value
// passes; pair it with NotBlank to require one.
type Email struct{}

func (Email) Kind() string           { return "Email" }
func (Email) Params() map[string]any { return nil }

func (Email) Satisfied(value string) bool {
	return is.EmailFormat.Validate(value) == nil
}

func (Email) constraint() {}

// NotBlank requires at least one non-whitespace character.
type NotBlank struct{}

func (NotBlank) Kind() string                { return "NotBlank" }
func (NotBlank) Params() map[string]any      { return nil }
func (NotBlank) Satisfied(value string) bool { return strings.TrimSpace(value) != "" }
func (NotBlank) constraint()                 {}
