// Copyright (C) 2025 Radportal Labs, Inc.
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the FSF, either version 3 of the License, or (at your option) any later version.
// See the LICENSE file in the root of this repository for full license text or
// visit: <https://www.gnu.org/licenses/gpl-3.0.html>.

package v1

import (
	"net/http"
	"sort"

	"github.com/gin-gonic/gin"
	"github.com/radportal-labs/radportal/pkg/api/middleware"
	"github.com/radportal-labs/radportal/pkg/api/routes"
	"github.com/radportal-labs/radportal/pkg/registry"
	"github.com/radportal-labs/radportal/pkg/schemas"
)

// topPhysicians caps the physician ranking in the summary.
const topPhysicians = 15

// StatsSummary aggregates the exams visible to the session user. It
// accepts the same filters as the exam listing so the dashboard charts
// follow the active filter.
func StatsSummary(reg *registry.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		session := middleware.MustSession(c)

		var filter examFilter
		if err := c.ShouldBindQuery(&filter); err != nil {
			routes.WriteErrorResponse(c, http.StatusBadRequest, schemas.ErrInvalidParameter, err.Error())
			return
		}

		exams, err := reg.Exams.List(c)
		if err != nil {
			routes.WriteErr(c, err)
			return
		}

		visible := make([]schemas.Exam, 0, len(exams))
		for _, e := range exams {
			if filter.match(e, session.User) {
				visible = append(visible, e)
			}
		}
		routes.WriteSuccessResponse(c, summarize(visible))
	}
}

func summarize(exams []schemas.Exam) schemas.StatsSummary {
	summary := schemas.StatsSummary{
		Total:      len(exams),
		ByModality: []schemas.ModalityCount{},
		ByDay:      []schemas.DayCount{},
		Physicians: []schemas.PhysicianCount{},
	}
	if len(exams) == 0 {
		return summary
	}

	var ages []float64
	byModality := map[schemas.Modality]int{}
	byDay := map[string]int{}
	byPhysician := map[string]int{}

	for _, e := range exams {
		if e.ContrastUsed {
			summary.Contrast.With++
		} else {
			summary.Contrast.Without++
		}
		ages = append(ages, float64(e.PatientAge))
		byModality[e.Modality]++
		byDay[e.PerformedAt.Time.Format("2006-01-02")]++
		if e.Physician != "" {
			byPhysician[e.Physician]++
		}
	}

	summary.ContrastPct = 100 * float64(summary.Contrast.With) / float64(summary.Total)
	summary.MeanAge, summary.MedianAge = ageStats(ages)

	for m, n := range byModality {
		summary.ByModality = append(summary.ByModality, schemas.ModalityCount{
			Modality: m, Label: m.Label(), Count: n,
		})
	}
	sort.Slice(summary.ByModality, func(i, j int) bool {
		a, b := summary.ByModality[i], summary.ByModality[j]
		if a.Count != b.Count {
			return a.Count > b.Count
		}
		return a.Modality < b.Modality
	})

	for day, n := range byDay {
		summary.ByDay = append(summary.ByDay, schemas.DayCount{Day: day, Count: n})
	}
	sort.Slice(summary.ByDay, func(i, j int) bool {
		return summary.ByDay[i].Day < summary.ByDay[j].Day
	})

	for physician, n := range byPhysician {
		summary.Physicians = append(summary.Physicians, schemas.PhysicianCount{
			Physician: physician, Count: n,
		})
	}
	sort.Slice(summary.Physicians, func(i, j int) bool {
		a, b := summary.Physicians[i], summary.Physicians[j]
		if a.Count != b.Count {
			return a.Count > b.Count
		}
		return a.Physician < b.Physician
	})
	if len(summary.Physicians) > topPhysicians {
		summary.Physicians = summary.Physicians[:topPhysicians]
	}

	return summary
}

// ageStats returns the mean and median of the recorded ages, or nils when
// there are no exams. Age zero is a valid recorded age and counts.
func ageStats(ages []float64) (mean, median *float64) {
	if len(ages) == 0 {
		return nil, nil
	}
	sort.Float64s(ages)

	var sum float64
	for _, a := range ages {
		sum += a
	}
	m := sum / float64(len(ages))

	var md float64
	mid := len(ages) / 2
	if len(ages)%2 == 0 {
		md = (ages[mid-1] + ages[mid]) / 2
	} else {
		md = ages[mid]
	}
	return &m, &md
}
