// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 PPALLI Contributors

package idgen

import (
	"strings"
	"time"

	"github.com/samber/oops"
)

// crockford is the Crockford base32 alphabet.
const crockford = "0123456789ABCDEFGHJKMNPQRSTVWXYZ"

// encodedLen is the length of an ID rendered in base32 (13 * 5 = 65 bits).
const encodedLen = 13

// ID is a 64-bit time-sortable identifier. Persisted as BIGINT.
type ID int64

// Int64 returns the raw value.
func (id ID) Int64() int64 {
	return int64(id)
}

// Time returns the millisecond timestamp embedded in the id.
func (id ID) Time() time.Time {
	ms := uint64(id) >> counterBits
	return Epoch.Add(time.Duration(ms) * time.Millisecond)
}

// Counter returns the low-order counter component.
func (id ID) Counter() uint32 {
	return uint32(uint64(id) & counterMask)
}

// String renders the id as 13 Crockford base32 characters. The encoding
// preserves ordering: lexical order of strings equals numeric order of ids.
func (id ID) String() string {
	var buf [encodedLen]byte
	v := uint64(id)
	for i := encodedLen - 1; i >= 0; i-- {
		buf[i] = crockford[v&0x1f]
		v >>= 5
	}
	return string(buf[:])
}

// Parse decodes the output of ID.String. Lowercase input and the Crockford
// aliases (O for 0, I and L for 1) are accepted.
func Parse(s string) (ID, error) {
	if len(s) != encodedLen {
		return 0, oops.Code("ID_INVALID").With("id", s).Errorf("id must be %d characters", encodedLen)
	}
	var v uint64
	for i, c := range strings.ToUpper(s) {
		switch c {
		case 'O':
			c = '0'
		case 'I', 'L':
			c = '1'
		}
		d := strings.IndexRune(crockford, c)
		if d < 0 {
			return 0, oops.Code("ID_INVALID").With("id", s).Errorf("invalid character %q at %d", c, i)
		}
		if i == 0 && d > 7 {
			return 0, oops.Code("ID_INVALID").With("id", s).Errorf("id overflows 63 bits")
		}
		v = v<<5 | uint64(d)
	}
	return ID(v), nil
}
