// Copyright (C) 2025 Radportal Labs, Inc.
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the FSF, either version 3 of the License, or (at your option) any later version.
// See the LICENSE file in the root of this repository for full license text or
// visit: <https://www.gnu.org/licenses/gpl-3.0.html>.

// Package schemas defines the records stored by the registry and the
// request/response types of the API.
package schemas

type ErrorMsg = string

const (
	/* Standard error messages */

	// ErrUnknown is a generic error message used when the error type is not known.
	ErrUnknown ErrorMsg = "unknown error"
	// ErrInvalidPayload is returned when the payload is invalid and cannot be parsed.
	ErrInvalidPayload    ErrorMsg = "invalid payload, unable to parse"
	ErrInvalidParameter  ErrorMsg = "invalid parameter, unable to parse"
	ErrInvalidIdentifier ErrorMsg = "invalid identifier, unable to parse"
	ErrRecordNotFound    ErrorMsg = "record not found"
	ErrRecordConflict    ErrorMsg = "record conflicts with an existing record"

	/* Authentication errors */

	// ErrInvalidAuthenticationHeader is returned when the authentication header is invalid.
	ErrInvalidAuthenticationHeader ErrorMsg = "invalid authentication header"
	// ErrInvalidCredentials is returned when the e-mail/password pair does not match.
	ErrInvalidCredentials ErrorMsg = "invalid credentials"
	// ErrSessionExpired is returned when the session is missing or timed out.
	ErrSessionExpired ErrorMsg = "session expired, log in again"
	// ErrUnauthorized is returned when the user is not authorized to access the resource.
	ErrUnauthorized ErrorMsg = "unauthorized to access resource"
)

// SessionCookie is the cookie that carries the opaque session token.
const SessionCookie = "radportal_session"

type APIResponse[T any] struct {
	Success  bool     `json:"success"            yaml:"success"`
	Error    ErrorMsg `json:"error,omitempty"    yaml:"error,omitempty"`
	Response T        `json:"response,omitempty" yaml:"response,omitempty"`
}

type APIVersionResponse struct {
	Version   string `json:"version"             yaml:"version"`
	BuildTime string `json:"buildTime,omitempty" yaml:"buildTime,omitempty"`
	Commit    string `json:"commit,omitempty"    yaml:"commit,omitempty"`
}

// LoginRequest is the payload of POST /login.
type LoginRequest struct {
	Email    string `json:"email"    form:"email"`
	Password string `json:"password" form:"password"`
}

// LoginResponse returns the opaque session token alongside the sanitized
// user record. The token is also set as the session cookie.
type LoginResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// PasswordChangeRequest is the payload of POST /api/v1/auth/password.
type PasswordChangeRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
	ConfirmPassword string `json:"confirm_password"`
}
