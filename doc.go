// Copyright (C) 2025 Radportal Labs, Inc.
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the FSF, either version 3 of the License, or (at your option) any later version.
// See the LICENSE file in the root of this repository for full license text or
// visit: <https://www.gnu.org/licenses/gpl-3.0.html>.

// Package radportal is a single-tenant radiology exam registry.
// It records imaging exams (modality, study, physician, patient age and
// contrast usage), manages the reference catalogs behind them, and exposes
// aggregate statistics, audit history and CSV export over a login-gated
// HTTP API. All state lives in flat JSON files under a single data directory.
package radportal
