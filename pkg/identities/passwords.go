// Copyright (C) 2025 Radportal Labs, Inc.
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the FSF, either version 3 of the License, or (at your option) any later version.
// See the LICENSE file in the root of this repository for full license text or
// visit: <https://www.gnu.org/licenses/gpl-3.0.html>.

// Package identities handles who is using the portal: password hashing
// and the login sessions the API authenticates against.
package identities

import (
	errs "github.com/radportal-labs/radportal/pkg/errors"
	"golang.org/x/crypto/bcrypt"
)

// MinPasswordLength is enforced whenever a user sets a password.
const MinPasswordLength = 6

// HashPassword returns a bcrypt hash of the given password.
func HashPassword(password string) (string, error) {
	if len(password) < MinPasswordLength {
		return "", errs.New(errs.TypeBadRequest, nil,
			"password must be at least %d characters", MinPasswordLength)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword reports whether the password matches the stored hash.
func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
