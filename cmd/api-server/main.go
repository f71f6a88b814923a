// Copyright (C) 2025 Radportal Labs, Inc.
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the FSF, either version 3 of the License, or (at your option) any later version.
// See the LICENSE file in the root of this repository for full license text or
// visit: <https://www.gnu.org/licenses/gpl-3.0.html>.

// Entrypoint for the API server.
// The API server keeps the exam registry: it records imaging exams,
// serves the reference catalogs and the dashboard aggregates, and
// manages accounts, branding and the audit trail.
package main

import (
	"context"

	"github.com/radportal-labs/radportal/internal/config"
	"github.com/radportal-labs/radportal/internal/utilities"
	"github.com/radportal-labs/radportal/pkg/api"
	"github.com/radportal-labs/radportal/pkg/identities"
	"github.com/radportal-labs/radportal/pkg/registry"
	"github.com/radportal-labs/radportal/pkg/schemas"
	"go.uber.org/zap"
)

func init() {
	config.Init()
}

func main() {
	ctx := context.Background()
	l := zap.L()
	l.Info("starting api server")

	l.Debug("config file loaded", zap.Any("config_file", config.State))
	reg, err := registry.Open(
		config.State.Data.Dir,
		schemas.DefaultSettings(config.State.Portal.Name, config.State.Portal.Theme),
	)
	if err != nil {
		l.With(zap.Error(err)).Fatal("unable to open data directory")
	}
	defer utilities.CloseAndLog(reg)

	if err := registry.Seed(ctx, reg); err != nil {
		l.With(zap.Error(err)).Fatal("unable to seed data directory")
	}

	sessions := identities.NewManager(config.State.Session.Timeout)

	l.Debug("initializing api")
	engine, err := api.InitializeEngine(reg, sessions)
	if err != nil {
		l.With(zap.Error(err)).Fatal("unable to initialize api router")
	}

	err = api.RunEngine(engine)
	if err != nil {
		l.With(zap.Error(err)).Fatal("http server exited with error")
	}
}
