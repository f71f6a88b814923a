// Copyright (C) 2025 Radportal Labs, Inc.
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the FSF, either version 3 of the License, or (at your option) any later version.
// See the LICENSE file in the root of this repository for full license text or
// visit: <https://www.gnu.org/licenses/gpl-3.0.html>.

package config

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// InitLogger replaces the global zap logger with one configured from the
// given level and format ("json" or "console"). Any fields are attached to
// every entry the logger produces.
func InitLogger(level, format string, fields ...zap.Field) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		lvl = zapcore.InfoLevel
	}

	var cfg zap.Config
	if IsEnvironmentIn(EnvDevelopment) {
		cfg = zap.NewDevelopmentConfig()
	} else {
		cfg = zap.NewProductionConfig()
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	switch format {
	case "console":
		cfg.Encoding = "console"
		cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	default:
		cfg.Encoding = "json"
	}

	logger, err := cfg.Build()
	if err != nil {
		// fall back to a bare production logger rather than running silent
		logger = zap.Must(zap.NewProduction())
	}
	zap.ReplaceGlobals(logger.With(fields...))
}
