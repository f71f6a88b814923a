// Copyright (C) 2025 Radportal Labs, Inc.
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the FSF, either version 3 of the License, or (at your option) any later version.
// See the LICENSE file in the root of this repository for full license text or
// visit: <https://www.gnu.org/licenses/gpl-3.0.html>.

// Package config provides the global configuration for Radportal.
package config

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"time"

	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// Config is the structure for the global configuration file for Radportal.
// It is loaded from a config file at startup time, and values can be overridden
// by environment variables. The config file is expected to be in YAML format.
// Environment variables are expected to be prefixed with "RADPORTAL_", all
// capital and use underscores to separate nested keys. For example, the key
// "api.port" can be overridden by the environment variable "RADPORTAL_API_PORT".
type Config struct {
	// Environment is the environment that Radportal is running in.
	Environment string `json:"environment" yaml:"environment"`

	// API is the configuration for the API server.
	API struct {
		// TLS is the configuration for TLS.
		TLS struct {
			// Enabled is whether TLS is enabled for the API.
			Enabled bool `json:"enabled" yaml:"enabled"`
			// CertPath is the path to the TLS certificate.
			CertPath string `json:"certpath" yaml:"certpath"`
			// KeyPath is the path to the TLS key.
			KeyPath string `json:"keypath" yaml:"keypath"`
		} `json:"tls"`
		// Port is the port that the API server will listen on.
		Port int `json:"port" yaml:"port"`
		// Host is the hostname of the API server.
		Host string `json:"host" yaml:"host"`
	} `json:"api" yaml:"api"`

	// Logging is the configuration for the logger.
	Logging struct {
		// Level is the logging level.
		Level  string `json:"level"`
		Format string `json:"format"`
	} `json:"logging" yaml:"logging"`

	// Data is the configuration for the registry data directory.
	// Every collection is a flat JSON file below Dir; branding uploads
	// live in the "uploads" subdirectory.
	Data struct {
		Dir string `json:"dir" yaml:"dir"`
	} `json:"data" yaml:"data"`

	// Session is the configuration for login sessions.
	Session struct {
		// Timeout is the sliding inactivity timeout after which a
		// session is discarded.
		Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout"`
	} `json:"session" yaml:"session"`

	// Portal holds the branding defaults used when the settings file
	// does not exist yet.
	Portal struct {
		Name  string `json:"name"  yaml:"name"`
		Theme string `json:"theme" yaml:"theme"`
	} `json:"portal" yaml:"portal"`
}

// UploadsDir returns the directory that branding uploads are stored in.
func (c Config) UploadsDir() string {
	return filepath.Join(c.Data.Dir, "uploads")
}

// State is the global configuration state for Radportal.
var State Config

func Init() {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("/etc/radportal/")
	viper.AddConfigPath("$HOME/.radportal")
	viper.AddConfigPath(".")

	if configPath, exists := os.LookupEnv("RADPORTAL_CONFIG_PATH"); exists {
		// If the RADPORTAL_CONFIG_PATH environment variable is set, add it as a config path.
		viper.AddConfigPath(configPath)
	}

	viper.SetEnvPrefix("radportal")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	viper.SetDefault("Environment", "production")
	viper.SetDefault("API.TLS.Enabled", false)
	viper.SetDefault("API.Port", "8050")
	viper.SetDefault("API.Host", "localhost")

	viper.SetDefault("Logging.Level", "info")
	viper.SetDefault("Logging.Format", "json")

	viper.SetDefault("Data.Dir", "data")
	viper.SetDefault("Session.Timeout", "30m")

	viper.SetDefault("Portal.Name", "Portal Radiológico")
	viper.SetDefault("Portal.Theme", "Flatly")

	err := viper.ReadInConfig()
	if err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			zap.L().Error("error reading config", zap.Error(err))
			return
		} else if err != nil {
			zap.L().Info("config file not found, using defaults")
		}
	}
	viper.AutomaticEnv()

	err = viper.Unmarshal(
		&State,
		viper.DecodeHook(
			func(f reflect.Type, t reflect.Type, data interface{}) (interface{}, error) {
				// Custom decode hook for time.Duration
				if t == reflect.TypeOf(time.Duration(0)) {
					if f.Kind() == reflect.String {
						return time.ParseDuration(data.(string))
					}
				}

				return data, nil
			},
		),
	)
	if err != nil {
		zap.L().Error("error unmarshalling config", zap.Error(err))
	}
	InitLogger(State.Logging.Level, State.Logging.Format,
		zap.Any("build_metadata", map[string]string{
			"version":    Version,
			"build_time": BuildTime,
			"commit":     Commit,
		}))
}

func WriteConfig(w io.Writer) error {
	if err := viper.WriteConfigTo(w); err != nil {
		return err
	}
	return nil
}
