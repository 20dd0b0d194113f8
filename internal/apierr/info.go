// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 PPALLI Contributors

package apierr

import (
	"bytes"
	"encoding/json"
	"maps"
	"slices"
)

// ErrorInfo is the error response body: {"code": ..., <additional keys>}.
// Additional keys are flattened to the top level; a "code" key in
// Additional is ignored.
type ErrorInfo struct {
	Code       Code
	Additional map[string]any
}

// MarshalJSON writes code first, then the additional keys in sorted order.
func (i ErrorInfo) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(`{"code":`)
	code, err := json.Marshal(i.Code)
	if err != nil {
		return nil, err
	}
	buf.Write(code)

	for _, key := range slices.Sorted(maps.Keys(i.Additional)) {
		if key == "code" {
			continue
		}
		k, err := json.Marshal(key)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(i.Additional[key])
		if err != nil {
			return nil, err
		}
		buf.WriteByte(',')
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads a body produced by MarshalJSON.
func (i *ErrorInfo) UnmarshalJSON(data []byte) error {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	code, _ := raw["code"].(string)
	delete(raw, "code")
	i.Code = Code(code)
	i.Additional = nil
	if len(raw) > 0 {
		i.Additional = raw
	}
	return nil
}
