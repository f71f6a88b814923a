// Copyright (C) 2025 Radportal Labs, Inc.
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the FSF, either version 3 of the License, or (at your option) any later version.
// See the LICENSE file in the root of this repository for full license text or
// visit: <https://www.gnu.org/licenses/gpl-3.0.html>.

package utilities

import (
	"fmt"
	"strings"
	"time"
)

// brDateLayout is the date format the portal presents to operators.
const brDateLayout = "02/01/2006"

// ParseBRDate parses a DD/MM/YYYY date at midnight UTC.
func ParseBRDate(s string) (time.Time, error) {
	t, err := time.Parse(brDateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected DD/MM/YYYY: %w", s, err)
	}
	return t.UTC(), nil
}

// ParsePeriod parses a "DD/MM/YYYY a DD/MM/YYYY" range into a half-open
// [from, to) interval; the end date is inclusive, so the upper bound is
// the following midnight. Both bounds are zero when the string is empty
// or malformed, matching how the dashboard filter has always treated
// unparsable periods.
func ParsePeriod(period string) (from, to time.Time) {
	period = strings.TrimSpace(period)
	if period == "" {
		return time.Time{}, time.Time{}
	}
	parts := strings.SplitN(period, " a ", 2)
	if len(parts) != 2 {
		return time.Time{}, time.Time{}
	}
	start, err := ParseBRDate(parts[0])
	if err != nil {
		return time.Time{}, time.Time{}
	}
	end, err := ParseBRDate(parts[1])
	if err != nil {
		return time.Time{}, time.Time{}
	}
	return start, end.AddDate(0, 0, 1)
}

// DayBounds returns the [start, end) interval implied by optional start
// and end DD/MM/YYYY strings, used by the CSV export. Either bound may be
// zero when its string is empty or malformed.
func DayBounds(startStr, endStr string) (from, to time.Time) {
	if s, err := ParseBRDate(startStr); err == nil && startStr != "" {
		from = s
	}
	if e, err := ParseBRDate(endStr); err == nil && endStr != "" {
		to = e.AddDate(0, 0, 1)
	}
	return from, to
}
