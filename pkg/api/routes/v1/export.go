// Copyright (C) 2025 Radportal Labs, Inc.
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the FSF, either version 3 of the License, or (at your option) any later version.
// See the LICENSE file in the root of this repository for full license text or
// visit: <https://www.gnu.org/licenses/gpl-3.0.html>.

package v1

import (
	"bytes"
	"fmt"
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/radportal-labs/radportal/internal/utilities"
	"github.com/radportal-labs/radportal/pkg/api/middleware"
	"github.com/radportal-labs/radportal/pkg/api/routes"
	"github.com/radportal-labs/radportal/pkg/registry"
	"github.com/radportal-labs/radportal/pkg/schemas"
)

// ExportCSV streams the exams visible to the session user as a CSV
// download. Optional start and end query parameters (DD/MM/YYYY) bound
// the exam date, end inclusive.
func ExportCSV(reg *registry.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		session := middleware.MustSession(c)
		from, to := utilities.DayBounds(c.Query("start"), c.Query("end"))

		exams, err := reg.Exams.List(c)
		if err != nil {
			routes.WriteErr(c, err)
			return
		}

		visible := make([]schemas.Exam, 0, len(exams))
		for _, e := range exams {
			if !session.User.Allows(e.Modality) {
				continue
			}
			when := e.PerformedAt.Time
			if !from.IsZero() && when.Before(from) {
				continue
			}
			if !to.IsZero() && !when.Before(to) {
				continue
			}
			visible = append(visible, e)
		}
		sort.SliceStable(visible, func(i, j int) bool {
			return visible[i].PerformedAt.Time.Before(visible[j].PerformedAt.Time)
		})

		buf := &bytes.Buffer{}
		if err := registry.WriteExamsCSV(buf, visible); err != nil {
			routes.WriteErr(c, err)
			return
		}

		filename := fmt.Sprintf("exames_%s.csv", time.Now().Format("20060102"))
		c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
		c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
	}
}
