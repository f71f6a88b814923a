// Copyright (C) 2025 Radportal Labs, Inc.
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the FSF, either version 3 of the License, or (at your option) any later version.
// See the LICENSE file in the root of this repository for full license text or
// visit: <https://www.gnu.org/licenses/gpl-3.0.html>.

package v1

import (
	"github.com/gin-gonic/gin"
	"github.com/radportal-labs/radportal/pkg/api/routes"
	"github.com/radportal-labs/radportal/pkg/registry"
	"github.com/radportal-labs/radportal/pkg/schemas"
)

// ListExamTypes lists the exam catalog, optionally restricted to one
// modality via the "modality" query parameter.
func ListExamTypes(reg *registry.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		types, err := reg.ExamTypes.List(c)
		if err != nil {
			routes.WriteErr(c, err)
			return
		}

		modality := schemas.Modality(c.Query("modality"))
		if modality == "" {
			routes.WriteSuccessResponse(c, types)
			return
		}

		filtered := make([]schemas.ExamType, 0, len(types))
		for _, t := range types {
			if t.Modality == modality {
				filtered = append(filtered, t)
			}
		}
		routes.WriteSuccessResponse(c, filtered)
	}
}

// ListExamTypeLabels returns the display labels of the exam catalog,
// sorted, for the exam-form autocomplete. Accepts the same "modality"
// query parameter as the listing.
func ListExamTypeLabels(reg *registry.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		types, err := reg.ExamTypes.List(c)
		if err != nil {
			routes.WriteErr(c, err)
			return
		}
		labels := schemas.ExamTypeLabels(types, schemas.Modality(c.Query("modality")))
		routes.WriteSuccessResponse(c, labels)
	}
}
