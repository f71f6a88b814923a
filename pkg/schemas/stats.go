// Copyright (C) 2025 Radportal Labs, Inc.
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the FSF, either version 3 of the License, or (at your option) any later version.
// See the LICENSE file in the root of this repository for full license text or
// visit: <https://www.gnu.org/licenses/gpl-3.0.html>.

package schemas

// StatsSummary is the dashboard aggregate over a filtered set of exams.
type StatsSummary struct {
	Total int `json:"total"`
	// ContrastPct is the percentage of exams with contrast, 0-100.
	ContrastPct float64 `json:"contrast_pct"`
	// MeanAge and MedianAge are nil when no exam carries an age.
	MeanAge    *float64        `json:"mean_age,omitempty"`
	MedianAge  *float64        `json:"median_age,omitempty"`
	ByModality []ModalityCount `json:"by_modality"`
	ByDay      []DayCount      `json:"by_day"`
	// Physicians is the exam count ranking, capped at the top 15.
	Physicians []PhysicianCount `json:"physicians"`
	Contrast   ContrastSplit    `json:"contrast"`
}

type ModalityCount struct {
	Modality Modality `json:"modality"`
	Label    string   `json:"label"`
	Count    int      `json:"count"`
}

type DayCount struct {
	// Day is the exam date in ISO form (YYYY-MM-DD).
	Day   string `json:"day"`
	Count int    `json:"count"`
}

type PhysicianCount struct {
	Physician string `json:"physician"`
	Count     int    `json:"count"`
}

type ContrastSplit struct {
	With    int `json:"with"`
	Without int `json:"without"`
}
