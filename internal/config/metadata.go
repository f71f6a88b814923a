// Copyright (C) 2025 Radportal Labs, Inc.
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the FSF, either version 3 of the License, or (at your option) any later version.
// See the LICENSE file in the root of this repository for full license text or
// visit: <https://www.gnu.org/licenses/gpl-3.0.html>.

package config

// Build metadata, set via -ldflags at build time.
var (
	Version   = "dev"
	BuildTime = "unknown"
	Commit    = "unknown"
)

// Environments that Radportal distinguishes between. The only behavioral
// differences are logger construction and gin's release mode.
const (
	EnvProduction  = "production"
	EnvStaging     = "staging"
	EnvDevelopment = "development"
)

// IsEnvironmentIn reports whether the configured environment is one of the
// given environments.
func IsEnvironmentIn(envs ...string) bool {
	for _, e := range envs {
		if State.Environment == e {
			return true
		}
	}
	return false
}
