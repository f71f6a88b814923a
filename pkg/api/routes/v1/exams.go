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
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/radportal-labs/radportal/internal/utilities"
	"github.com/radportal-labs/radportal/pkg/api/middleware"
	"github.com/radportal-labs/radportal/pkg/api/routes"
	errs "github.com/radportal-labs/radportal/pkg/errors"
	"github.com/radportal-labs/radportal/pkg/registry"
	"github.com/radportal-labs/radportal/pkg/schemas"
)

// examFilter is the query surface of the exam listing.
type examFilter struct {
	// Modalities is a comma separated list of modality codes.
	Modalities string `form:"modalities"`
	// Physician matches case-insensitively on a substring of the
	// requesting physician's name.
	Physician string `form:"medico"`
	// Period is a "DD/MM/YYYY a DD/MM/YYYY" range over the exam time.
	Period string `form:"periodo"`
}

func (f examFilter) match(e schemas.Exam, viewer schemas.User) bool {
	if !viewer.Allows(e.Modality) {
		return false
	}
	if f.Modalities != "" {
		found := false
		for _, m := range strings.Split(f.Modalities, ",") {
			if strings.EqualFold(strings.TrimSpace(m), string(e.Modality)) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if f.Physician != "" &&
		!strings.Contains(strings.ToLower(e.Physician), strings.ToLower(strings.TrimSpace(f.Physician))) {
		return false
	}
	if from, to := utilities.ParsePeriod(f.Period); !from.IsZero() {
		when := e.PerformedAt.Time
		if when.Before(from) || !when.Before(to) {
			return false
		}
	}
	return true
}

// ListExams returns the exams visible to the session user, newest first.
// Users restricted to specific modalities never see exams outside them.
func ListExams(reg *registry.Registry) gin.HandlerFunc {
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
		sort.SliceStable(visible, func(i, j int) bool {
			return visible[i].PerformedAt.Time.After(visible[j].PerformedAt.Time)
		})
		routes.WriteSuccessResponse(c, visible)
	}
}

// GetExam returns a single exam, subject to the viewer's modalities.
func GetExam(reg *registry.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		session := middleware.MustSession(c)
		id, ok := routes.MustID(c, "id")
		if !ok {
			return
		}

		exam, err := reg.Exams.Get(c, id)
		if err != nil {
			routes.WriteErr(c, err)
			return
		}
		if !session.User.Allows(exam.Modality) {
			routes.WriteErr(c, errs.New(errs.TypeForbidden, nil,
				"modality %s is not enabled for this account", exam.Modality))
			return
		}
		routes.WriteSuccessResponse(c, exam)
	}
}

// CreateExam records a new exam. The session user must be allowed to work
// in the exam's modality; the record is stamped with their e-mail.
func CreateExam(reg *registry.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		session := middleware.MustSession(c)

		exam, err := ContentTypeRequestBodyParser[schemas.Exam](c)
		if err != nil {
			routes.WriteErrorResponse(c, http.StatusBadRequest, schemas.ErrInvalidPayload, err.Error())
			return
		}
		exam = exam.Normalize()
		if err := exam.Validate(); err != nil {
			routes.WriteErr(c, err)
			return
		}
		if !session.User.Allows(exam.Modality) {
			routes.WriteErr(c, errs.New(errs.TypeForbidden, nil,
				"modality %s is not enabled for this account", exam.Modality))
			return
		}

		exam.RecordedBy = session.User.Email
		created, err := reg.Exams.Insert(c, exam)
		if err != nil {
			routes.WriteErr(c, err)
			return
		}
		reg.Audit(c, session.User.Email, schemas.ActionCreate, schemas.EntityExam, created.ID,
			nil, schemas.NewSnapshot(created))
		routes.WriteSuccessResponse(c, created)
	}
}

// UpdateExam rewrites an exam. Both the stored modality and the incoming
// one must be enabled for the session user.
func UpdateExam(reg *registry.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		session := middleware.MustSession(c)
		id, ok := routes.MustID(c, "id")
		if !ok {
			return
		}

		before, err := reg.Exams.Get(c, id)
		if err != nil {
			routes.WriteErr(c, err)
			return
		}

		exam, err := ContentTypeRequestBodyParser[schemas.Exam](c)
		if err != nil {
			routes.WriteErrorResponse(c, http.StatusBadRequest, schemas.ErrInvalidPayload, err.Error())
			return
		}
		exam = exam.Normalize()
		if err := exam.Validate(); err != nil {
			routes.WriteErr(c, err)
			return
		}
		if !session.User.Allows(before.Modality) || !session.User.Allows(exam.Modality) {
			routes.WriteErr(c, errs.New(errs.TypeForbidden, nil,
				"modality %s is not enabled for this account", exam.Modality))
			return
		}

		// who recorded the exam never changes on edit
		exam.RecordedBy = before.RecordedBy
		updated, err := reg.Exams.Update(c, id, exam)
		if err != nil {
			routes.WriteErr(c, err)
			return
		}
		reg.Audit(c, session.User.Email, schemas.ActionUpdate, schemas.EntityExam, id,
			schemas.NewSnapshot(before), schemas.NewSnapshot(updated))
		routes.WriteSuccessResponse(c, updated)
	}
}

// DeleteExam removes an exam, subject to the viewer's modalities.
func DeleteExam(reg *registry.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		session := middleware.MustSession(c)
		id, ok := routes.MustID(c, "id")
		if !ok {
			return
		}

		exam, err := reg.Exams.Get(c, id)
		if err != nil {
			routes.WriteErr(c, err)
			return
		}
		if !session.User.Allows(exam.Modality) {
			routes.WriteErr(c, errs.New(errs.TypeForbidden, nil,
				"modality %s is not enabled for this account", exam.Modality))
			return
		}

		deleted, err := reg.Exams.Delete(c, id)
		if err != nil {
			routes.WriteErr(c, err)
			return
		}
		reg.Audit(c, session.User.Email, schemas.ActionDelete, schemas.EntityExam, id,
			schemas.NewSnapshot(deleted), nil)
		routes.WriteSuccessResponse(c, nil)
	}
}
