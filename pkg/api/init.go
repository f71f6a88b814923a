// Copyright (C) 2025 Radportal Labs, Inc.
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the FSF, either version 3 of the License, or (at your option) any later version.
// See the LICENSE file in the root of this repository for full license text or
// visit: <https://www.gnu.org/licenses/gpl-3.0.html>.

// Package api assembles the portal HTTP server.
package api

import (
	"github.com/gin-gonic/gin"
	"github.com/radportal-labs/radportal/internal/config"
	"github.com/radportal-labs/radportal/pkg/api/middleware"
	"github.com/radportal-labs/radportal/pkg/api/routes"
	routesV1 "github.com/radportal-labs/radportal/pkg/api/routes/v1"
	"github.com/radportal-labs/radportal/pkg/identities"
	"github.com/radportal-labs/radportal/pkg/registry"
	"github.com/radportal-labs/radportal/pkg/schemas"
)

// InitializeEngine initializes the gin engine and sets up the routes.
// Everything except the health check, version, login and the uploaded
// assets sits behind the session authenticator; mutating reference data
// additionally requires the admin role.
func InitializeEngine(reg *registry.Registry, sessions *identities.Manager) (*gin.Engine, error) {
	if config.IsEnvironmentIn(config.EnvProduction, config.EnvStaging) {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.GET("/health", routes.Health())
	router.GET("/version", routes.Version(config.Version, config.BuildTime, config.Commit))
	router.POST("/login", routesV1.Login(reg, sessions))
	router.Static("/uploads", reg.UploadsDir())

	authenticated := router.Group("")
	authenticated.Use(middleware.SessionAuthenticator(sessions))
	authenticated.POST("/logout", routesV1.Logout(sessions))
	authenticated.GET("/export.csv", routesV1.ExportCSV(reg))

	api := router.Group("/api")
	api.Use(middleware.SessionAuthenticator(sessions))

	v1 := api.Group("/v1")
	{
		exams := v1.Group("/exams")
		{
			exams.GET("", routesV1.ListExams(reg))
			exams.GET("/:id", routesV1.GetExam(reg))
			exams.POST("", routesV1.CreateExam(reg))
			exams.PUT("/:id", routesV1.UpdateExam(reg))
			exams.DELETE("/:id", routesV1.DeleteExam(reg))
		}

		v1.GET("/stats/summary", routesV1.StatsSummary(reg))

		routesV1.RegisterRoutesForCollection(
			v1.Group("/doctors"),
			reg, reg.Doctors, schemas.EntityDoctor,
			routesV1.ContentTypeRequestBodyParser[schemas.Doctor],
		)
		examtypes := v1.Group("/examtypes")
		examtypes.GET("/labels", routesV1.ListExamTypeLabels(reg))
		routesV1.RegisterRoutesForCollection(
			examtypes,
			reg, reg.ExamTypes, schemas.EntityExamType,
			routesV1.ContentTypeRequestBodyParser[schemas.ExamType],
			routesV1.WithListHandler(routesV1.ListExamTypes(reg)),
		)
		routesV1.RegisterRoutesForCollection(
			v1.Group("/materials"),
			reg, reg.Materials, schemas.EntityMaterial,
			routesV1.ContentTypeRequestBodyParser[schemas.Material],
		)

		users := v1.Group("/users", middleware.RequireAdmin())
		{
			users.GET("", routesV1.ListUsers(reg))
			users.GET("/:id", routesV1.GetUser(reg))
			users.POST("", routesV1.CreateUser(reg))
			users.PUT("/:id", routesV1.UpdateUser(reg))
			users.DELETE("/:id", routesV1.DeleteUser(reg, sessions))
		}

		v1.POST("/auth/password", routesV1.ChangePassword(reg))

		settings := v1.Group("/settings")
		{
			settings.GET("", routesV1.GetSettings(reg))
			settings.PUT("", middleware.RequireAdmin(), routesV1.UpdateSettings(reg))
			settings.POST("/logo", middleware.RequireAdmin(), routesV1.UploadLogo(reg))
		}

		v1.GET("/audit", middleware.RequireAdmin(), routesV1.ListAudit(reg))
	}

	return router, nil
}
