// Copyright (C) 2025 Radportal Labs, Inc.
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the FSF, either version 3 of the License, or (at your option) any later version.
// See the LICENSE file in the root of this repository for full license text or
// visit: <https://www.gnu.org/licenses/gpl-3.0.html>.

// Package middleware provides middleware for the portal API.
// It includes session authentication and role authorization.
package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/radportal-labs/radportal/pkg/api/routes"
	"github.com/radportal-labs/radportal/pkg/identities"
	"github.com/radportal-labs/radportal/pkg/schemas"
	"go.uber.org/zap"
)

const sessionKey = "session"

// GetSession retrieves the authenticated session from the request context.
func GetSession(c *gin.Context) (identities.Session, bool) {
	val, exists := c.Get(sessionKey)
	if !exists {
		return identities.Session{}, false
	}
	s, valid := val.(identities.Session)
	return s, valid
}

// SetSession stores the authenticated session in the request context.
func SetSession(c *gin.Context, s identities.Session) {
	c.Set(sessionKey, s)
}

// MustSession retrieves the authenticated session from the request context.
// It panics if no authenticator ran before the handler; that is a routing
// bug, not a client error.
func MustSession(c *gin.Context) identities.Session {
	s, exists := GetSession(c)
	if !exists {
		zap.L().Warn("handler reached without an authenticated session", zap.String("path", c.FullPath()))
		routes.WriteErrorResponse(c, http.StatusUnauthorized, schemas.ErrUnauthorized, nil)
		panic("no session found")
	}
	return s
}
