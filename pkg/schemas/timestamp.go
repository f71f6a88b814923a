// Copyright (C) 2025 Radportal Labs, Inc.
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the FSF, either version 3 of the License, or (at your option) any later version.
// See the LICENSE file in the root of this repository for full license text or
// visit: <https://www.gnu.org/licenses/gpl-3.0.html>.

package schemas

import (
	"fmt"
	"strings"
	"time"
)

// Timestamp is a second-precision UTC timestamp. Existing registry files
// store timestamps as zoneless ISO 8601 strings ("2006-01-02T15:04:05"),
// so Timestamp marshals to that layout and accepts RFC 3339 and fractional
// seconds on the way in.
type Timestamp struct {
	time.Time
}

const isoLayout = "2006-01-02T15:04:05"

// timestampLayouts are tried in order when parsing.
var timestampLayouts = []string{
	isoLayout,
	"2006-01-02T15:04:05.999999",
	time.RFC3339,
	time.RFC3339Nano,
}

// NewTimestamp truncates t to second precision in UTC.
func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{t.UTC().Truncate(time.Second)}
}

// ParseTimestamp parses s using the accepted layouts.
func ParseTimestamp(s string) (Timestamp, error) {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return NewTimestamp(t), nil
		}
	}
	return Timestamp{}, fmt.Errorf("unrecognized timestamp %q", s)
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte(`""`), nil
	}
	return []byte(`"` + t.UTC().Format(isoLayout) + `"`), nil
}

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		*t = Timestamp{}
		return nil
	}
	parsed, err := ParseTimestamp(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// FormatBR renders the timestamp in the portal's display format.
func (t Timestamp) FormatBR() string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format("02/01/2006 15:04")
}
