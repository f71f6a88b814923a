// Copyright (C) 2025 Radportal Labs, Inc.
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the FSF, either version 3 of the License, or (at your option) any later version.
// See the LICENSE file in the root of this repository for full license text or
// visit: <https://www.gnu.org/licenses/gpl-3.0.html>.

package v1

import (
	"sort"

	"github.com/gin-gonic/gin"
	"github.com/radportal-labs/radportal/pkg/api/routes"
	"github.com/radportal-labs/radportal/pkg/registry"
	"github.com/radportal-labs/radportal/pkg/schemas"
)

// auditPageSize caps the audit listing; older entries stay on disk but
// are not returned.
const auditPageSize = 300

// auditEntryResponse is an audit entry plus the field names an update
// touched, so the trail renders without diffing snapshots client side.
type auditEntryResponse struct {
	schemas.AuditEntry
	ChangedFields []string `json:"changed_fields,omitempty"`
}

// ListAudit returns the newest audit entries, most recent first. Admin
// only.
func ListAudit(reg *registry.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		entries, err := reg.Logs.List(c)
		if err != nil {
			routes.WriteErr(c, err)
			return
		}

		sort.SliceStable(entries, func(i, j int) bool {
			a, b := entries[i], entries[j]
			if !a.Time.Equal(b.Time.Time) {
				return a.Time.After(b.Time.Time)
			}
			return a.ID > b.ID
		})
		if len(entries) > auditPageSize {
			entries = entries[:auditPageSize]
		}

		page := make([]auditEntryResponse, 0, len(entries))
		for _, e := range entries {
			page = append(page, auditEntryResponse{AuditEntry: e, ChangedFields: e.Summary()})
		}
		routes.WriteSuccessResponse(c, page)
	}
}
