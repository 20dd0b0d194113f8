// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 PPALLI Contributors

package validation

import (
	"fmt"
	"strings"
)

// Error is returned when one or more fields fail validation.
type Error struct {
	Violations []Violation
}

// Error implements error.
func (e *Error) Error() string {
	parts := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		parts[i] = fmt.Sprintf("%s: %s", v.Field, v.Constraint.Kind())
	}
	return "validation failed: " + strings.Join(parts, ", ")
}

// Translate groups violations by field into client-safe detail objects:
//
//	{"fields": {"username": [{"validation": "Size", "min": 3, "max": 20}]}}
//
// Per-field order follows the input order.
func Translate(violations []Violation) map[string]any {
	fields := make(map[string][]map[string]any)
	for _, v := range violations {
		detail := map[string]any{"validation": v.Constraint.Kind()}
		for k, val := range v.Constraint.Params() {
			if k == "validation" {
				continue
			}
			detail[k] = val
		}
		fields[v.Field] = append(fields[v.Field], detail)
	}
	return map[string]any{"fields": fields}
}
