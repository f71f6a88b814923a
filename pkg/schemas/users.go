// Copyright (C) 2025 Radportal Labs, Inc.
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the FSF, either version 3 of the License, or (at your option) any later version.
// See the LICENSE file in the root of this repository for full license text or
// visit: <https://www.gnu.org/licenses/gpl-3.0.html>.

package schemas

import (
	"strings"

	errs "github.com/radportal-labs/radportal/pkg/errors"
)

// Role is a portal access level.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// AllModalities is the wildcard value of a user's allowed modalities.
const AllModalities = "*"

// User is a portal account. The JSON keys match users.json as written by
// every version of the registry; PasswordHash must be stripped with
// [User.Sanitized] before a record leaves the API.
type User struct {
	ID           int    `json:"id"`
	Name         string `json:"nome"`
	Email        string `json:"email"`
	PasswordHash string `json:"senha_hash,omitempty"`
	// AllowedModalities is "*" or a comma-separated list of modality
	// codes the user may register exams under.
	AllowedModalities string `json:"modalidades_permitidas"`
	Role              Role   `json:"perfil"`
}

func (u User) Key() int            { return u.ID }
func (u User) WithKey(id int) User { u.ID = id; return u }

func (u User) Normalize() User {
	u.Name = strings.TrimSpace(u.Name)
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	u.AllowedModalities = strings.TrimSpace(u.AllowedModalities)
	if u.AllowedModalities == "" {
		u.AllowedModalities = AllModalities
	}
	if u.Role == "" {
		u.Role = RoleUser
	}
	return u
}

func (u User) Validate() error {
	if strings.TrimSpace(u.Name) == "" {
		return errs.New(errs.TypeBadRequest, nil, "user name is required")
	}
	email := strings.TrimSpace(u.Email)
	if email == "" || !strings.Contains(email, "@") {
		return errs.New(errs.TypeBadRequest, nil, "a valid e-mail is required")
	}
	if u.Role != RoleAdmin && u.Role != RoleUser {
		return errs.New(errs.TypeBadRequest, nil, "role %q is not recognized", u.Role)
	}
	return nil
}

// Sanitized returns a copy safe to serialize in API responses.
func (u User) Sanitized() User {
	u.PasswordHash = ""
	return u
}

// IsAdmin reports whether the user holds the admin role.
func (u User) IsAdmin() bool { return u.Role == RoleAdmin }

// Allows reports whether the user may register exams under the given
// modality.
func (u User) Allows(m Modality) bool {
	allowed := strings.TrimSpace(u.AllowedModalities)
	if allowed == AllModalities || allowed == "" {
		return true
	}
	for _, part := range strings.Split(allowed, ",") {
		if strings.EqualFold(strings.TrimSpace(part), string(m)) {
			return true
		}
	}
	return false
}
