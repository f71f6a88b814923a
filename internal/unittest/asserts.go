// Copyright (C) 2025 Radportal Labs, Inc.
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the FSF, either version 3 of the License, or (at your option) any later version.
// See the LICENSE file in the root of this repository for full license text or
// visit: <https://www.gnu.org/licenses/gpl-3.0.html>.

package unittest

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

// AssertEqualRecords compares two registry records for equality by their
// JSON form, so unexported state and timestamp precision do not matter.
func AssertEqualRecords[T any](t *testing.T, expected, actual T) {
	t.Helper()
	actualJSON, err := json.Marshal(actual)
	if err != nil {
		t.Fatalf("failed to marshal actual record: %v", err)
	}

	expectedJSON, err := json.Marshal(expected)
	if err != nil {
		t.Fatalf("failed to marshal expected record: %v", err)
	}

	assert.JSONEq(t, string(expectedJSON), string(actualJSON), "records are not equal")
}
