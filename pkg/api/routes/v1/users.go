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
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/radportal-labs/radportal/pkg/api/middleware"
	"github.com/radportal-labs/radportal/pkg/api/routes"
	errs "github.com/radportal-labs/radportal/pkg/errors"
	"github.com/radportal-labs/radportal/pkg/identities"
	"github.com/radportal-labs/radportal/pkg/registry"
	"github.com/radportal-labs/radportal/pkg/schemas"
)

// userRequest is the admin-facing account payload. The password is only
// applied when non-empty, so edits do not have to resend it.
type userRequest struct {
	Name              string       `json:"nome"                  form:"nome"`
	Email             string       `json:"email"                 form:"email"`
	Password          string       `json:"senha,omitempty"       form:"senha"`
	AllowedModalities string       `json:"modalidades_permitidas" form:"modalidades_permitidas"`
	Role              schemas.Role `json:"perfil"                form:"perfil"`
}

// ListUsers returns all accounts without password hashes. Admin only.
func ListUsers(reg *registry.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		users, err := reg.Users.List(c)
		if err != nil {
			routes.WriteErr(c, err)
			return
		}
		sanitized := make([]schemas.User, 0, len(users))
		for _, u := range users {
			sanitized = append(sanitized, u.Sanitized())
		}
		routes.WriteSuccessResponse(c, sanitized)
	}
}

// GetUser returns one account without its password hash. Admin only.
func GetUser(reg *registry.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := routes.MustID(c, "id")
		if !ok {
			return
		}
		user, err := reg.Users.Get(c, id)
		if err != nil {
			routes.WriteErr(c, err)
			return
		}
		routes.WriteSuccessResponse(c, user.Sanitized())
	}
}

// CreateUser registers an account. The e-mail must be unique and a
// password is required. Admin only.
func CreateUser(reg *registry.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		session := middleware.MustSession(c)

		var req userRequest
		if err := c.ShouldBind(&req); err != nil {
			routes.WriteErrorResponse(c, http.StatusBadRequest, schemas.ErrInvalidPayload, err.Error())
			return
		}
		if req.Password == "" {
			routes.WriteErr(c, errs.New(errs.TypeBadRequest, nil, "password is required"))
			return
		}

		user := schemas.User{
			Name:              req.Name,
			Email:             req.Email,
			AllowedModalities: req.AllowedModalities,
			Role:              req.Role,
		}.Normalize()
		if err := user.Validate(); err != nil {
			routes.WriteErr(c, err)
			return
		}
		if _, err := reg.FindUserByEmail(c, user.Email); err == nil {
			routes.WriteErr(c, errs.New(errs.TypeConflict, nil, "e-mail %s is already registered", user.Email))
			return
		}

		hash, err := identities.HashPassword(req.Password)
		if err != nil {
			routes.WriteErr(c, err)
			return
		}
		user.PasswordHash = hash

		created, err := reg.Users.Insert(c, user)
		if err != nil {
			routes.WriteErr(c, err)
			return
		}
		reg.Audit(c, session.User.Email, schemas.ActionCreate, schemas.EntityUser, created.ID,
			nil, schemas.NewSnapshot(created))
		routes.WriteSuccessResponse(c, created.Sanitized())
	}
}

// UpdateUser edits an account. An empty password keeps the stored hash;
// changing the e-mail to one already in use is a conflict. Admin only.
func UpdateUser(reg *registry.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		session := middleware.MustSession(c)
		id, ok := routes.MustID(c, "id")
		if !ok {
			return
		}

		before, err := reg.Users.Get(c, id)
		if err != nil {
			routes.WriteErr(c, err)
			return
		}

		var req userRequest
		if err := c.ShouldBind(&req); err != nil {
			routes.WriteErrorResponse(c, http.StatusBadRequest, schemas.ErrInvalidPayload, err.Error())
			return
		}

		user := schemas.User{
			Name:              req.Name,
			Email:             req.Email,
			AllowedModalities: req.AllowedModalities,
			Role:              req.Role,
		}.Normalize()
		if err := user.Validate(); err != nil {
			routes.WriteErr(c, err)
			return
		}
		if !strings.EqualFold(user.Email, before.Email) {
			if _, err := reg.FindUserByEmail(c, user.Email); err == nil {
				routes.WriteErr(c, errs.New(errs.TypeConflict, nil, "e-mail %s is already registered", user.Email))
				return
			}
		}

		user.PasswordHash = before.PasswordHash
		if req.Password != "" {
			hash, err := identities.HashPassword(req.Password)
			if err != nil {
				routes.WriteErr(c, err)
				return
			}
			user.PasswordHash = hash
		}

		updated, err := reg.Users.Update(c, id, user)
		if err != nil {
			routes.WriteErr(c, err)
			return
		}
		reg.Audit(c, session.User.Email, schemas.ActionUpdate, schemas.EntityUser, id,
			schemas.NewSnapshot(before), schemas.NewSnapshot(updated))
		routes.WriteSuccessResponse(c, updated.Sanitized())
	}
}

// DeleteUser removes an account and revokes its sessions. Admins cannot
// delete themselves. Admin only.
func DeleteUser(reg *registry.Registry, sessions *identities.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		session := middleware.MustSession(c)
		id, ok := routes.MustID(c, "id")
		if !ok {
			return
		}
		if id == session.User.ID {
			routes.WriteErr(c, errs.New(errs.TypeBadRequest, nil, "you cannot delete your own account"))
			return
		}

		deleted, err := reg.Users.Delete(c, id)
		if err != nil {
			routes.WriteErr(c, err)
			return
		}
		sessions.RevokeUser(id)
		reg.Audit(c, session.User.Email, schemas.ActionDelete, schemas.EntityUser, id,
			schemas.NewSnapshot(deleted), nil)
		routes.WriteSuccessResponse(c, nil)
	}
}
