// Copyright (C) 2025 Radportal Labs, Inc.
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the FSF, either version 3 of the License, or (at your option) any later version.
// See the LICENSE file in the root of this repository for full license text or
// visit: <https://www.gnu.org/licenses/gpl-3.0.html>.

package unittest

import "math/rand"

type CharSet string

const (
	// CharSetAlpha spells account names and e-mail local parts.
	CharSetAlpha CharSet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"
	// CharSetNumeric spells catalog codes.
	CharSetNumeric CharSet = "0123456789"
)

// GenerateRandStr returns a random fixture string drawn from the given
// character set. Nothing generated here is a secret, so math/rand is
// fine.
func GenerateRandStr(cs CharSet, strLen int) string {
	b := make([]byte, strLen)
	for i := range b {
		b[i] = cs[rand.Intn(len(cs))] // #nosec G404
	}
	return string(b)
}
