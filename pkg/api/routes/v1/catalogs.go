// Copyright (C) 2025 Radportal Labs, Inc.
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the FSF, either version 3 of the License, or (at your option) any later version.
// See the LICENSE file in the root of this repository for full license text or
// visit: <https://www.gnu.org/licenses/gpl-3.0.html>.

// Package v1 provides the version 1 API routes for the portal.
package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/radportal-labs/radportal/pkg/api/middleware"
	"github.com/radportal-labs/radportal/pkg/api/routes"
	"github.com/radportal-labs/radportal/pkg/registry"
	"github.com/radportal-labs/radportal/pkg/schemas"
	"github.com/radportal-labs/radportal/pkg/storage"
)

// CatalogRecord is a registry record that can clean itself up before
// validation. All reference catalog types implement it.
type CatalogRecord[T any] interface {
	storage.Record[T]
	Normalize() T
}

// RequestBodyParser is a function that takes a gin context and returns an
// object of type T. It allows routes to use custom parsing methods.
type RequestBodyParser[T any] = func(c *gin.Context) (T, error)

// ContentTypeRequestBodyParser is a default request body parser that uses
// [gin.Context.ShouldBind] to parse the request body into the specified
// object type.
func ContentTypeRequestBodyParser[T any](c *gin.Context) (T, error) {
	var object T
	err := c.ShouldBind(&object)
	return object, err
}

// catalogRouteOpts holds the options for catalog routes.
type catalogRouteOpts struct {
	ListHandler gin.HandlerFunc
}

// CatalogRouteOption modifies catalogRouteOpts.
type CatalogRouteOption func(catalogRouteOpts) catalogRouteOpts

// WithListHandler is a CatalogRouteOption that replaces the default list
// route, for catalogs whose listing supports filtering.
func WithListHandler(handler gin.HandlerFunc) CatalogRouteOption {
	return func(opts catalogRouteOpts) catalogRouteOpts {
		opts.ListHandler = handler
		return opts
	}
}

// RegisterRoutesForCollection registers CRUD routes for a reference
// catalog. Any authenticated user may read the catalog; mutations are
// admin only and are recorded in the audit trail under the given entity
// name.
func RegisterRoutesForCollection[T CatalogRecord[T]](
	g *gin.RouterGroup,
	reg *registry.Registry,
	col *storage.Collection[T],
	entity string,
	bodyParser RequestBodyParser[T],
	opts ...CatalogRouteOption,
) {
	var options catalogRouteOpts
	for _, opt := range opts {
		options = opt(options)
	}

	list := options.ListHandler
	if list == nil {
		list = func(c *gin.Context) {
			records, err := col.List(c)
			if err != nil {
				routes.WriteErr(c, err)
				return
			}
			routes.WriteSuccessResponse(c, records)
		}
	}
	g.GET("", list)

	g.GET("/:id", func(c *gin.Context) {
		id, ok := routes.MustID(c, "id")
		if !ok {
			return
		}
		record, err := col.Get(c, id)
		if err != nil {
			routes.WriteErr(c, err)
			return
		}
		routes.WriteSuccessResponse(c, record)
	})

	g.POST("", middleware.RequireAdmin(), func(c *gin.Context) {
		session := middleware.MustSession(c)

		record, err := bodyParser(c)
		if err != nil {
			routes.WriteErrorResponse(c, http.StatusBadRequest, schemas.ErrInvalidPayload, err.Error())
			return
		}
		record = record.Normalize()
		if err := record.Validate(); err != nil {
			routes.WriteErr(c, err)
			return
		}

		created, err := col.Insert(c, record)
		if err != nil {
			routes.WriteErr(c, err)
			return
		}
		reg.Audit(c, session.User.Email, schemas.ActionCreate, entity, created.Key(),
			nil, schemas.NewSnapshot(created))
		routes.WriteSuccessResponse(c, created)
	})

	g.PUT("/:id", middleware.RequireAdmin(), func(c *gin.Context) {
		session := middleware.MustSession(c)
		id, ok := routes.MustID(c, "id")
		if !ok {
			return
		}

		before, err := col.Get(c, id)
		if err != nil {
			routes.WriteErr(c, err)
			return
		}

		record, err := bodyParser(c)
		if err != nil {
			routes.WriteErrorResponse(c, http.StatusBadRequest, schemas.ErrInvalidPayload, err.Error())
			return
		}
		record = record.Normalize()
		if err := record.Validate(); err != nil {
			routes.WriteErr(c, err)
			return
		}

		updated, err := col.Update(c, id, record)
		if err != nil {
			routes.WriteErr(c, err)
			return
		}
		reg.Audit(c, session.User.Email, schemas.ActionUpdate, entity, id,
			schemas.NewSnapshot(before), schemas.NewSnapshot(updated))
		routes.WriteSuccessResponse(c, updated)
	})

	g.DELETE("/:id", middleware.RequireAdmin(), func(c *gin.Context) {
		session := middleware.MustSession(c)
		id, ok := routes.MustID(c, "id")
		if !ok {
			return
		}

		deleted, err := col.Delete(c, id)
		if err != nil {
			routes.WriteErr(c, err)
			return
		}
		reg.Audit(c, session.User.Email, schemas.ActionDelete, entity, id,
			schemas.NewSnapshot(deleted), nil)
		routes.WriteSuccessResponse(c, nil)
	})
}
