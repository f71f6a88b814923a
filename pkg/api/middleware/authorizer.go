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

	"github.com/gin-gonic/gin"
	"github.com/radportal-labs/radportal/pkg/api/routes"
	"github.com/radportal-labs/radportal/pkg/schemas"
	"go.uber.org/zap"
)

// RequireAdmin is a middleware that rejects requests whose session does
// not belong to an administrator account.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		session, exists := GetSession(c)
		if !exists {
			routes.WriteErrorResponse(c, http.StatusUnauthorized, schemas.ErrSessionExpired, nil)
			return
		}

		if !session.User.IsAdmin() {
			zap.L().Debug("non-admin user denied",
				zap.String("email", session.User.Email),
				zap.String("path", c.FullPath()))
			routes.WriteErrorResponse(c, http.StatusForbidden, schemas.ErrUnauthorized, nil)
			return
		}
	}
}
