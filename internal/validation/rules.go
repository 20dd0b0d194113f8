// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 PPALLI Contributors

package validation

import "slices"

// Violation records one failed constraint on one field.
type Violation struct {
	Field      string
	Constraint Constraint
}

// Rules is an ordered list of constraints applied to one field.
type Rules []Constraint

var (
	usernameRules = Rules{
		Size{Min: 3, Max: 20},
		RequireAlphabetOrNumber{},
		SpecialCharacterConstraint{Allow: DefaultAllow},
	}
	passwordRules = Rules{
		MinSize(8),
		RequireAlphabet{},
		RequireNumber{},
		RequireSpecialCharacter{},
	}
	emailRules = Rules{
		NotBlank{},
		Email{},
	}
)

// Username returns the rules for account names: 3 to 20 characters, at least
// one letter or digit, and no special characters other than '-' and '_'.
func Username() Rules { return slices.Clone(usernameRules) }

// Password returns the rules for passwords: at least 8 characters with at
// least one letter, one digit and one special character.
func Password() Rules { return slices.Clone(passwordRules) }

// EmailAddress returns the rules for a required email address.
func EmailAddress() Rules { return slices.Clone(emailRules) }

// Field checks value against every rule without stopping at the first
// failure and returns the violations in rule order.
func Field(name, value string, rules ...Constraint) []Violation {
	var violations []Violation
	for _, rule := range rules {
		if rule.Satisfied(value) {
			continue
		}
		if c, ok := rule.(composite); ok {
			for _, m := range c.members() {
				if !m.Satisfied(value) {
					violations = append(violations, Violation{Field: name, Constraint: m})
				}
			}
			continue
		}
		violations = append(violations, Violation{Field: name, Constraint: rule})
	}
	return violations
}

// Validator accumulates violations across fields.
type Validator struct {
	violations []Violation
}

// Check runs rules against a field and records any violations.
func (v *Validator) Check(name, value string, rules Rules) *Validator {
	v.violations = append(v.violations, Field(name, value, rules...)...)
	return v
}

// Violations returns the recorded violations in the order they were found.
func (v *Validator) Violations() []Violation {
	return v.violations
}

// Err returns an *Error holding every violation, or nil if there are none.
func (v *Validator) Err() error {
	if len(v.violations) == 0 {
		return nil
	}
	return &Error{Violations: v.violations}
}
