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
	"github.com/radportal-labs/radportal/internal/unittest"
	"github.com/radportal-labs/radportal/pkg/api/middleware"
	"github.com/radportal-labs/radportal/pkg/identities"
	"github.com/radportal-labs/radportal/pkg/schemas"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func userRouter(p *testPortal) *gin.Engine {
	return p.router(func(v1 *gin.RouterGroup) {
		users := v1.Group("/users", middleware.RequireAdmin())
		users.GET("", ListUsers(p.reg))
		users.GET("/:id", GetUser(p.reg))
		users.POST("", CreateUser(p.reg))
		users.PUT("/:id", UpdateUser(p.reg))
		users.DELETE("/:id", DeleteUser(p.reg, p.sessions))
	})
}

func TestUsers_AdminOnly(t *testing.T) {
	p := newTestPortal(t)
	r := userRouter(p)

	w := doJSON(r, http.MethodGet, "/api/v1/users", p.userToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestListUsers_Sanitized(t *testing.T) {
	p := newTestPortal(t)
	r := userRouter(p)

	w := doJSON(r, http.MethodGet, "/api/v1/users", p.adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), "senha_hash")

	users := decodeResponse[[]schemas.User](t, w)
	require.Len(t, users, 2)
}

func TestCreateUser(t *testing.T) {
	p := newTestPortal(t)
	r := userRouter(p)

	email := unittest.GenerateRandStr(unittest.CharSetAlpha, 8) + "@local"
	w := doJSON(r, http.MethodPost, "/api/v1/users", p.adminToken, gin.H{
		"nome": "Técnico RX", "email": email, "senha": "segredo1",
		"modalidades_permitidas": "RX", "perfil": "user",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	created := decodeResponse[schemas.User](t, w)
	assert.Empty(t, created.PasswordHash)

	stored, err := p.reg.FindUserByEmail(t.Context(), email)
	require.NoError(t, err)
	assert.True(t, identities.CheckPassword(stored.PasswordHash, "segredo1"))
	assert.True(t, stored.Allows(schemas.ModalityRX))
	assert.False(t, stored.Allows(schemas.ModalityCT))
}

func TestCreateUser_DuplicateEmail(t *testing.T) {
	p := newTestPortal(t)
	r := userRouter(p)

	w := doJSON(r, http.MethodPost, "/api/v1/users", p.adminToken, gin.H{
		"nome": "Outro Admin", "email": "ADMIN@local", "senha": "segredo1",
	})
	assert.Equal(t, http.StatusConflict, w.Code, "e-mail comparison is case-insensitive")
}

func TestCreateUser_ShortPassword(t *testing.T) {
	p := newTestPortal(t)
	r := userRouter(p)

	w := doJSON(r, http.MethodPost, "/api/v1/users", p.adminToken, gin.H{
		"nome": "Técnico", "email": "x@local", "senha": "abc",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateUser_KeepsPasswordWhenEmpty(t *testing.T) {
	p := newTestPortal(t)
	r := userRouter(p)

	w := doJSON(r, http.MethodPut, "/api/v1/users/2", p.adminToken, gin.H{
		"nome": "Técnico CT Renomeado", "email": "ct@local",
		"modalidades_permitidas": "CT,MR", "perfil": "user",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	stored, err := p.reg.Users.Get(t.Context(), 2)
	require.NoError(t, err)
	assert.Equal(t, "Técnico CT Renomeado", stored.Name)
	assert.True(t, identities.CheckPassword(stored.PasswordHash, "admin123"),
		"an empty password field keeps the stored hash")
	assert.True(t, stored.Allows(schemas.ModalityMR))
}

func TestDeleteUser(t *testing.T) {
	p := newTestPortal(t)
	r := userRouter(p)

	// self-delete is rejected
	w := doJSON(r, http.MethodDelete, "/api/v1/users/1", p.adminToken, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(r, http.MethodDelete, "/api/v1/users/2", p.adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	// the deleted account's session is gone
	_, ok := p.sessions.Resolve(p.userToken)
	assert.False(t, ok)
}
