// Copyright (C) 2025 Radportal Labs, Inc.
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the FSF, either version 3 of the License, or (at your option) any later version.
// See the LICENSE file in the root of this repository for full license text or
// visit: <https://www.gnu.org/licenses/gpl-3.0.html>.

package v1

import (
	"encoding/base64"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/radportal-labs/radportal/pkg/api/middleware"
	"github.com/radportal-labs/radportal/pkg/api/routes"
	errs "github.com/radportal-labs/radportal/pkg/errors"
	"github.com/radportal-labs/radportal/pkg/registry"
	"github.com/radportal-labs/radportal/pkg/schemas"
	"go.uber.org/zap"
)

// settingsResponse is the branding plus the resolved theme stylesheet.
type settingsResponse struct {
	schemas.Settings
	ThemeURL string `json:"theme_url"`
	// LogoURL is the path the logo is served from, empty without a logo.
	LogoURL string `json:"logo_url,omitempty"`
}

func newSettingsResponse(s schemas.Settings) settingsResponse {
	resp := settingsResponse{Settings: s, ThemeURL: s.ThemeURL()}
	if s.LogoFile != "" {
		resp.LogoURL = "/uploads/" + s.LogoFile
	}
	return resp
}

// GetSettings returns the portal branding to any authenticated user.
func GetSettings(reg *registry.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		routes.WriteSuccessResponse(c, newSettingsResponse(reg.Settings.Load(c)))
	}
}

type settingsUpdateRequest struct {
	PortalName string `json:"portal_name" form:"portal_name"`
	Theme      string `json:"theme"       form:"theme"`
}

// UpdateSettings changes the portal name and theme. Admin only.
func UpdateSettings(reg *registry.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		session := middleware.MustSession(c)

		var req settingsUpdateRequest
		if err := c.ShouldBind(&req); err != nil {
			routes.WriteErrorResponse(c, http.StatusBadRequest, schemas.ErrInvalidPayload, err.Error())
			return
		}
		if strings.TrimSpace(req.PortalName) == "" {
			routes.WriteErr(c, errs.New(errs.TypeBadRequest, nil, "portal name is required"))
			return
		}
		if _, ok := schemas.Themes[req.Theme]; !ok {
			routes.WriteErr(c, errs.New(errs.TypeBadRequest, nil, "unknown theme %q", req.Theme))
			return
		}

		before := reg.Settings.Load(c)
		after := before
		after.PortalName = strings.TrimSpace(req.PortalName)
		after.Theme = req.Theme
		if err := reg.Settings.Store(c, after); err != nil {
			routes.WriteErr(c, err)
			return
		}

		reg.Audit(c, session.User.Email, schemas.ActionUpdate, schemas.EntitySettings, 0,
			schemas.NewSnapshot(before), schemas.NewSnapshot(after))
		routes.WriteSuccessResponse(c, newSettingsResponse(after))
	}
}

// logoExtensions is the upload allowlist. Anything else is stored as png,
// which is what browsers send when the type is unknown.
var logoExtensions = map[string]bool{
	"png": true, "jpg": true, "jpeg": true, "svg": true, "webp": true,
}

type logoUploadRequest struct {
	// DataURI is the logo encoded as a data URI, e.g.
	// "data:image/png;base64,...".
	DataURI string `json:"data_uri" form:"data_uri"`
}

// UploadLogo replaces the portal logo. The image arrives as a base64
// data URI; the decoded file lands in the uploads directory and older
// logos are removed. Admin only.
func UploadLogo(reg *registry.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		session := middleware.MustSession(c)

		var req logoUploadRequest
		if err := c.ShouldBind(&req); err != nil {
			routes.WriteErrorResponse(c, http.StatusBadRequest, schemas.ErrInvalidPayload, err.Error())
			return
		}

		data, ext, err := decodeDataURI(req.DataURI)
		if err != nil {
			routes.WriteErr(c, err)
			return
		}

		name := "logo." + ext
		if err := replaceLogo(reg.UploadsDir(), name, data); err != nil {
			routes.WriteErr(c, err)
			return
		}

		before := reg.Settings.Load(c)
		after := before
		after.LogoFile = name
		if err := reg.Settings.Store(c, after); err != nil {
			routes.WriteErr(c, err)
			return
		}

		reg.Audit(c, session.User.Email, schemas.ActionUpdate, schemas.EntitySettings, 0,
			schemas.NewSnapshot(before), schemas.NewSnapshot(after))
		routes.WriteSuccessResponse(c, newSettingsResponse(after))
	}
}

// decodeDataURI splits a base64 data URI into its payload and a safe file
// extension derived from the MIME subtype.
func decodeDataURI(uri string) ([]byte, string, error) {
	header, payload, found := strings.Cut(uri, ",")
	if !found || !strings.HasPrefix(header, "data:") {
		return nil, "", errs.New(errs.TypeBadRequest, nil, "logo must be a base64 data URI")
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, "", errs.New(errs.TypeBadRequest, err, "logo payload is not valid base64")
	}

	ext := "png"
	if mime, _, ok := strings.Cut(strings.TrimPrefix(header, "data:"), ";"); ok {
		if _, subtype, ok := strings.Cut(mime, "/"); ok {
			subtype = strings.ToLower(subtype)
			if subtype == "svg+xml" {
				subtype = "svg"
			}
			if logoExtensions[subtype] {
				ext = subtype
			}
		}
	}
	return data, ext, nil
}

// replaceLogo writes the new logo and removes any previous logo.* file so
// stale extensions do not linger.
func replaceLogo(dir, name string, data []byte) error {
	old, err := filepath.Glob(filepath.Join(dir, "logo.*"))
	if err == nil {
		for _, path := range old {
			if filepath.Base(path) == name {
				continue
			}
			if err := os.Remove(path); err != nil {
				zap.L().Warn("failed to remove stale logo", zap.String("path", path), zap.Error(err))
			}
		}
	}
	return os.WriteFile(filepath.Join(dir, name), data, 0o644)
}
