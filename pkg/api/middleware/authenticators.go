// Copyright (C) 2025 Radportal Labs, Inc.
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the FSF, either version 3 of the License, or (at your option) any later version.
// See the LICENSE file in the root of this repository for full license text or
// visit: <https://www.gnu.org/licenses/gpl-3.0.html>.

package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/radportal-labs/radportal/pkg/api/routes"
	"github.com/radportal-labs/radportal/pkg/identities"
	"github.com/radportal-labs/radportal/pkg/schemas"
	"go.uber.org/zap"
)

// SessionAuthenticator is a gin middleware that authenticates the request
// against the session manager. The token comes from the session cookie set
// at login, or from an "Authorization: Bearer" header for API clients.
// Requests without a live session get a 401 response.
func SessionAuthenticator(sessions *identities.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		l := zap.L()

		if _, exists := GetSession(c); exists {
			l.Debug("session already set for request")
			return
		}

		token, errMsg := requestToken(c)
		if errMsg != "" {
			l.Debug("invalid authorization header")
			routes.WriteErrorResponse(c, http.StatusBadRequest, errMsg, nil)
			return
		}
		if token == "" {
			routes.WriteErrorResponse(c, http.StatusUnauthorized, schemas.ErrSessionExpired, nil)
			return
		}

		session, ok := sessions.Resolve(token)
		if !ok {
			l.Debug("token does not resolve to a live session")
			routes.WriteErrorResponse(c, http.StatusUnauthorized, schemas.ErrSessionExpired, nil)
			return
		}

		SetSession(c, session)
	}
}

// requestToken extracts the session token from the cookie or the bearer
// header. The second return value is non-empty when the header is present
// but malformed.
func requestToken(c *gin.Context) (string, schemas.ErrorMsg) {
	if cookie, err := c.Cookie(schemas.SessionCookie); err == nil && cookie != "" {
		return cookie, ""
	}

	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return "", ""
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
		return "", schemas.ErrInvalidAuthenticationHeader
	}
	return parts[1], ""
}
