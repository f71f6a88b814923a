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

	"github.com/gin-gonic/gin"
	"github.com/radportal-labs/radportal/pkg/api/middleware"
	"github.com/radportal-labs/radportal/pkg/api/routes"
	errs "github.com/radportal-labs/radportal/pkg/errors"
	"github.com/radportal-labs/radportal/pkg/identities"
	"github.com/radportal-labs/radportal/pkg/registry"
	"github.com/radportal-labs/radportal/pkg/schemas"
	"go.uber.org/zap"
)

// Login authenticates a user by e-mail and password and issues a session.
// The token is returned in the response body and also set as a cookie so
// both browsers and API clients can use it.
func Login(reg *registry.Registry, sessions *identities.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req schemas.LoginRequest
		if err := c.ShouldBind(&req); err != nil {
			routes.WriteErrorResponse(c, http.StatusBadRequest, schemas.ErrInvalidPayload, err.Error())
			return
		}

		user, err := reg.FindUserByEmail(c, req.Email)
		if err != nil || !identities.CheckPassword(user.PasswordHash, req.Password) {
			zap.L().Debug("login rejected", zap.String("email", req.Email))
			routes.WriteErrorResponse(c, http.StatusUnauthorized, schemas.ErrInvalidCredentials, nil)
			return
		}

		session := sessions.Issue(user)
		c.SetCookie(schemas.SessionCookie, session.Token, 0, "/", "", false, true)
		zap.L().Info("user logged in", zap.String("email", user.Email))
		routes.WriteSuccessResponse(c, schemas.LoginResponse{
			Token: session.Token,
			User:  session.User,
		})
	}
}

// Logout revokes the current session and clears the cookie.
func Logout(sessions *identities.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		session := middleware.MustSession(c)
		sessions.Revoke(session.Token)
		c.SetCookie(schemas.SessionCookie, "", -1, "/", "", false, true)
		zap.L().Info("user logged out", zap.String("email", session.User.Email))
		routes.WriteSuccessResponse(c, nil)
	}
}

// ChangePassword lets any authenticated user change their own password.
// The current password must check out and the new one must be confirmed.
func ChangePassword(reg *registry.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		session := middleware.MustSession(c)

		var req schemas.PasswordChangeRequest
		if err := c.ShouldBind(&req); err != nil {
			routes.WriteErrorResponse(c, http.StatusBadRequest, schemas.ErrInvalidPayload, err.Error())
			return
		}
		if req.NewPassword != req.ConfirmPassword {
			routes.WriteErr(c, errs.New(errs.TypeBadRequest, nil, "password confirmation does not match"))
			return
		}

		user, err := reg.Users.Get(c, session.User.ID)
		if err != nil {
			routes.WriteErr(c, err)
			return
		}
		if !identities.CheckPassword(user.PasswordHash, req.CurrentPassword) {
			routes.WriteErrorResponse(c, http.StatusUnauthorized, schemas.ErrInvalidCredentials, nil)
			return
		}

		hash, err := identities.HashPassword(req.NewPassword)
		if err != nil {
			routes.WriteErr(c, err)
			return
		}
		user.PasswordHash = hash
		if _, err := reg.Users.Update(c, user.ID, user); err != nil {
			routes.WriteErr(c, err)
			return
		}

		reg.Audit(c, session.User.Email, schemas.ActionUpdate, schemas.EntityUser, user.ID,
			nil, schemas.Snapshot{"event": "password_change"})
		zap.L().Info("password changed", zap.String("email", user.Email))
		routes.WriteSuccessResponse(c, nil)
	}
}
