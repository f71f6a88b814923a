// Copyright (C) 2025 Radportal Labs, Inc.
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the FSF, either version 3 of the License, or (at your option) any later version.
// See the LICENSE file in the root of this repository for full license text or
// visit: <https://www.gnu.org/licenses/gpl-3.0.html>.

package v1

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/radportal-labs/radportal/pkg/identities"
	"github.com/radportal-labs/radportal/pkg/schemas"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func authRouter(p *testPortal) *gin.Engine {
	r := gin.New()
	r.POST("/login", Login(p.reg, p.sessions))
	auth := r.Group("", p.sessionMiddleware())
	auth.POST("/logout", Logout(p.sessions))
	auth.POST("/api/v1/auth/password", ChangePassword(p.reg))
	return r
}

func TestLogin(t *testing.T) {
	p := newTestPortal(t)
	r := authRouter(p)

	w := doJSON(r, http.MethodPost, "/login", "",
		schemas.LoginRequest{Email: "Admin@Local", Password: "admin123"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	resp := decodeResponse[schemas.LoginResponse](t, w)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "admin@local", resp.User.Email)
	assert.Empty(t, resp.User.PasswordHash)

	// the session cookie is set for browser clients
	found := false
	for _, cookie := range w.Result().Cookies() {
		if cookie.Name == schemas.SessionCookie && cookie.Value == resp.Token {
			found = true
		}
	}
	assert.True(t, found, "login must set the session cookie")

	_, ok := p.sessions.Resolve(resp.Token)
	assert.True(t, ok)
}

func TestLogin_Rejected(t *testing.T) {
	p := newTestPortal(t)
	r := authRouter(p)

	w := doJSON(r, http.MethodPost, "/login",
		"", schemas.LoginRequest{Email: "admin@local", Password: "wrong"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(r, http.MethodPost, "/login",
		"", schemas.LoginRequest{Email: "ghost@local", Password: "admin123"})
	assert.Equal(t, http.StatusUnauthorized, w.Code,
		"unknown accounts and bad passwords are indistinguishable")
}

func TestLogout(t *testing.T) {
	p := newTestPortal(t)
	r := authRouter(p)

	w := doJSON(r, http.MethodPost, "/logout", p.userToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	_, ok := p.sessions.Resolve(p.userToken)
	assert.False(t, ok, "logout revokes the session")
}

func TestChangePassword(t *testing.T) {
	p := newTestPortal(t)
	r := authRouter(p)

	tests := []struct {
		name           string
		req            schemas.PasswordChangeRequest
		expectedStatus int
	}{
		{
			name: "wrong current password",
			req: schemas.PasswordChangeRequest{
				CurrentPassword: "wrong", NewPassword: "nova-senha", ConfirmPassword: "nova-senha",
			},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name: "confirmation mismatch",
			req: schemas.PasswordChangeRequest{
				CurrentPassword: "admin123", NewPassword: "nova-senha", ConfirmPassword: "outra",
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "too short",
			req: schemas.PasswordChangeRequest{
				CurrentPassword: "admin123", NewPassword: "abc", ConfirmPassword: "abc",
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "success",
			req: schemas.PasswordChangeRequest{
				CurrentPassword: "admin123", NewPassword: "nova-senha", ConfirmPassword: "nova-senha",
			},
			expectedStatus: http.StatusOK,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doJSON(r, http.MethodPost, "/api/v1/auth/password", p.userToken, tt.req)
			assert.Equal(t, tt.expectedStatus, w.Code, w.Body.String())
		})
	}

	stored, err := p.reg.Users.Get(t.Context(), 2)
	require.NoError(t, err)
	assert.True(t, identities.CheckPassword(stored.PasswordHash, "nova-senha"))
}
