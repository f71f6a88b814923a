// Copyright (C) 2025 Radportal Labs, Inc.
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the FSF, either version 3 of the License, or (at your option) any later version.
// See the LICENSE file in the root of this repository for full license text or
// visit: <https://www.gnu.org/licenses/gpl-3.0.html>.

package schemas

import "strings"

// DefaultTheme is applied when the stored theme is missing or unknown.
const DefaultTheme = "Flatly"

// Themes maps the selectable Bootswatch themes to their CDN stylesheets.
var Themes = map[string]string{
	"Flatly":          "https://cdn.jsdelivr.net/npm/bootswatch@5.3.3/dist/flatly/bootstrap.min.css",
	"Lux":             "https://cdn.jsdelivr.net/npm/bootswatch@5.3.3/dist/lux/bootstrap.min.css",
	"Materia":         "https://cdn.jsdelivr.net/npm/bootswatch@5.3.3/dist/materia/bootstrap.min.css",
	"Yeti":            "https://cdn.jsdelivr.net/npm/bootswatch@5.3.3/dist/yeti/bootstrap.min.css",
	"Morph":           "https://cdn.jsdelivr.net/npm/bootswatch@5.3.3/dist/morph/bootstrap.min.css",
	"Quartz":          "https://cdn.jsdelivr.net/npm/bootswatch@5.3.3/dist/quartz/bootstrap.min.css",
	"Cyborg (escuro)": "https://cdn.jsdelivr.net/npm/bootswatch@5.3.3/dist/cyborg/bootstrap.min.css",
}

// Settings holds the portal branding. Stored as a singleton document in
// settings.json.
type Settings struct {
	PortalName string `json:"portal_name"`
	Theme      string `json:"theme"`
	// LogoFile is the file name of the uploaded logo below the uploads
	// directory, e.g. "logo.png"; empty when no logo was uploaded.
	LogoFile string `json:"logo_file,omitempty"`
}

// DefaultSettings returns the branding used until an admin customizes it.
func DefaultSettings(portalName, theme string) Settings {
	if strings.TrimSpace(portalName) == "" {
		portalName = "Portal Radiológico"
	}
	if _, ok := Themes[theme]; !ok {
		theme = DefaultTheme
	}
	return Settings{PortalName: portalName, Theme: theme}
}

// Normalize repairs a settings document read from disk: a blank name gets
// the default and an unknown theme falls back to the default theme. The
// stored value is not rewritten; repair happens on every read.
func (s Settings) Normalize() Settings {
	s.PortalName = strings.TrimSpace(s.PortalName)
	if s.PortalName == "" {
		s.PortalName = "Portal Radiológico"
	}
	if _, ok := Themes[s.Theme]; !ok {
		s.Theme = DefaultTheme
	}
	return s
}

// ThemeURL resolves the stylesheet of the configured theme.
func (s Settings) ThemeURL() string {
	if url, ok := Themes[s.Theme]; ok {
		return url
	}
	return Themes[DefaultTheme]
}
