// Copyright (C) 2025 Radportal Labs, Inc.
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the FSF, either version 3 of the License, or (at your option) any later version.
// See the LICENSE file in the root of this repository for full license text or
// visit: <https://www.gnu.org/licenses/gpl-3.0.html>.

// Package routes (and sub-packages) provides the API routes for the portal.
package routes

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/radportal-labs/radportal/pkg/schemas"
	"go.uber.org/zap"
)

// MustParam retrieves a parameter from the URL path and checks if it is empty.
// If it is empty, it writes an error response and returns false.
func MustParam(c *gin.Context, key string) (string, bool) {
	value := c.Param(key)
	if value == "" {
		zap.L().Debug(c.FullPath() + " " + key + " not provided")
		WriteErrorResponse(
			c,
			http.StatusBadRequest,
			schemas.ErrInvalidParameter,
			key+" is required in path "+c.FullPath(),
		)
		return "", false
	}
	return value, true
}

// MustID retrieves a numeric record id from the URL path. Every registry
// record is addressed by a positive integer.
func MustID(c *gin.Context, key string) (int, bool) {
	value, ok := MustParam(c, key)
	if !ok {
		return 0, false
	}
	id, err := strconv.Atoi(value)
	if err != nil || id <= 0 {
		zap.L().Debug(c.FullPath() + " " + key + " is not a valid id")
		WriteErrorResponse(
			c,
			http.StatusBadRequest,
			schemas.ErrInvalidIdentifier,
			key+" must be a positive integer",
		)
		return 0, false
	}
	return id, true
}

// Health returns a handler function that responds with a success message.
func Health() gin.HandlerFunc {
	return func(c *gin.Context) {
		WriteSuccessResponse(c, "ok")
	}
}

func Version(version, buildTime, commit string) gin.HandlerFunc {
	return func(c *gin.Context) {
		WriteSuccessResponse(c,
			schemas.APIVersionResponse{
				Version:   version,
				BuildTime: buildTime,
				Commit:    commit,
			})
	}
}
