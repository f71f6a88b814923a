// Copyright (C) 2025 Radportal Labs, Inc.
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the FSF, either version 3 of the License, or (at your option) any later version.
// See the LICENSE file in the root of this repository for full license text or
// visit: <https://www.gnu.org/licenses/gpl-3.0.html>.

package v1

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/radportal-labs/radportal/internal/unittest"
	"github.com/radportal-labs/radportal/pkg/api/middleware"
	"github.com/radportal-labs/radportal/pkg/identities"
	"github.com/radportal-labs/radportal/pkg/registry"
	"github.com/radportal-labs/radportal/pkg/schemas"
	"github.com/stretchr/testify/require"
)

// testPortal is a registry plus a session manager with two logged-in
// accounts: an admin and a user restricted to CT.
type testPortal struct {
	reg      *registry.Registry
	sessions *identities.Manager

	adminToken string
	userToken  string
}

func newTestPortal(t *testing.T) *testPortal {
	t.Helper()
	gin.SetMode(gin.TestMode)
	unittest.EnableLogs(t)

	reg, err := registry.Open(t.TempDir(), schemas.DefaultSettings("Portal Radiológico", schemas.DefaultTheme))
	require.NoError(t, err)
	t.Cleanup(func() { _ = reg.Close() })

	hash, err := identities.HashPassword("admin123")
	require.NoError(t, err)
	admin, err := reg.Users.Insert(t.Context(), schemas.User{
		Name: "Administrador", Email: "admin@local", PasswordHash: hash,
		AllowedModalities: schemas.AllModalities, Role: schemas.RoleAdmin,
	})
	require.NoError(t, err)
	user, err := reg.Users.Insert(t.Context(), schemas.User{
		Name: "Técnico CT", Email: "ct@local", PasswordHash: hash,
		AllowedModalities: "CT", Role: schemas.RoleUser,
	})
	require.NoError(t, err)

	sessions := identities.NewManager(30 * time.Minute)
	return &testPortal{
		reg:        reg,
		sessions:   sessions,
		adminToken: sessions.Issue(admin).Token,
		userToken:  sessions.Issue(user).Token,
	}
}

func (p *testPortal) sessionMiddleware() gin.HandlerFunc {
	return middleware.SessionAuthenticator(p.sessions)
}

func (p *testPortal) router(register func(v1 *gin.RouterGroup)) *gin.Engine {
	r := gin.New()
	v1 := r.Group("/api/v1")
	v1.Use(middleware.SessionAuthenticator(p.sessions))
	register(v1)
	return r
}

func doJSON(r *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		raw, _ := json.Marshal(body)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeResponse[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var envelope schemas.APIResponse[T]
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope), w.Body.String())
	return envelope.Response
}

func testExam(modality schemas.Modality, when time.Time) schemas.Exam {
	return schemas.Exam{
		AccessionNumber: "AC-100",
		PatientAge:      40,
		Modality:        modality,
		StudyName:       "Crânio",
		Physician:       "Dra. Lima",
		PerformedAt:     schemas.NewTimestamp(when),
	}
}
