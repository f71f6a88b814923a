// Copyright (C) 2025 Radportal Labs, Inc.
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the FSF, either version 3 of the License, or (at your option) any later version.
// See the LICENSE file in the root of this repository for full license text or
// visit: <https://www.gnu.org/licenses/gpl-3.0.html>.

package utilities

import (
	"testing"
	"time"
)

func TestParseBRDate(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    time.Time
		wantErr bool
	}{
		{
			name:  "valid date",
			input: "14/03/2025",
			want:  time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC),
		},
		{
			name:  "padded input",
			input: " 01/01/2024 ",
			want:  time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name:    "iso date",
			input:   "2025-03-14",
			wantErr: true,
		},
		{
			name:    "empty",
			input:   "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseBRDate(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseBRDate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && !got.Equal(tt.want) {
				t.Errorf("ParseBRDate() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParsePeriod(t *testing.T) {
	from, to := ParsePeriod("01/03/2025 a 14/03/2025")
	if !from.Equal(time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("ParsePeriod() from = %v", from)
	}
	// end date is inclusive
	if !to.Equal(time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("ParsePeriod() to = %v", to)
	}

	for _, malformed := range []string{"", "01/03/2025", "01/03/2025 a banana", "2025-03-01 a 2025-03-14"} {
		from, to := ParsePeriod(malformed)
		if !from.IsZero() || !to.IsZero() {
			t.Errorf("ParsePeriod(%q) should yield zero bounds", malformed)
		}
	}
}

func TestDayBounds(t *testing.T) {
	from, to := DayBounds("01/03/2025", "02/03/2025")
	if from.IsZero() || to.IsZero() {
		t.Fatal("DayBounds() returned zero bounds for valid dates")
	}
	if got := to.Sub(from); got != 48*time.Hour {
		t.Errorf("DayBounds() interval = %v, want 48h", got)
	}

	from, to = DayBounds("", "nonsense")
	if !from.IsZero() || !to.IsZero() {
		t.Error("DayBounds() should ignore empty/malformed bounds")
	}
}
