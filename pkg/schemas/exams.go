// Copyright (C) 2025 Radportal Labs, Inc.
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the FSF, either version 3 of the License, or (at your option) any later version.
// See the LICENSE file in the root of this repository for full license text or
// visit: <https://www.gnu.org/licenses/gpl-3.0.html>.

package schemas

import (
	"strings"

	"github.com/hashicorp/go-multierror"
	errs "github.com/radportal-labs/radportal/pkg/errors"
)

// Exam is a single performed imaging exam (an "atendimento"). The JSON
// keys match the records the registry has always written to exams.json.
type Exam struct {
	ID               int       `json:"id"`
	AccessionNumber  string    `json:"exam_id"`
	PatientAge       int       `json:"idade"`
	Modality         Modality  `json:"modalidade"`
	StudyName        string    `json:"exame"`
	Physician        string    `json:"medico"`
	PerformedAt      Timestamp `json:"data_hora"`
	ContrastUsed     bool      `json:"contraste_usado"`
	ContrastVolumeML float64   `json:"contraste_qtd"`
	// MaterialID references the contrast material catalog; zero means
	// no material was recorded.
	MaterialID int `json:"material_id,omitempty"`
	// RecordedBy is the e-mail of the user that entered the record.
	RecordedBy string `json:"user_email"`
}

func (e Exam) Key() int            { return e.ID }
func (e Exam) WithKey(id int) Exam { e.ID = id; return e }

// Normalize trims free-text fields and zeroes the contrast volume when no
// contrast was used, mirroring how the exam form always behaved.
func (e Exam) Normalize() Exam {
	e.AccessionNumber = strings.TrimSpace(e.AccessionNumber)
	e.StudyName = strings.TrimSpace(e.StudyName)
	e.Physician = strings.TrimSpace(e.Physician)
	if !e.ContrastUsed {
		e.ContrastVolumeML = 0
		e.MaterialID = 0
	}
	return e
}

// Validate checks the required fields of an exam. All problems are
// reported at once so the form can surface the full list.
func (e Exam) Validate() error {
	var result *multierror.Error
	if e.AccessionNumber == "" {
		result = multierror.Append(result, errs.New(errs.TypeBadRequest, nil, "accession number is required"))
	}
	if e.PatientAge < 0 || e.PatientAge > 120 {
		result = multierror.Append(result, errs.New(errs.TypeBadRequest, nil, "patient age must be between 0 and 120"))
	}
	if !e.Modality.Valid() {
		result = multierror.Append(result, errs.New(errs.TypeBadRequest, nil, "modality %q is not recognized", e.Modality))
	}
	if e.StudyName == "" {
		result = multierror.Append(result, errs.New(errs.TypeBadRequest, nil, "study name is required"))
	}
	if e.Physician == "" {
		result = multierror.Append(result, errs.New(errs.TypeBadRequest, nil, "physician is required"))
	}
	if e.PerformedAt.IsZero() {
		result = multierror.Append(result, errs.New(errs.TypeBadRequest, nil, "performed-at timestamp is required"))
	}
	if e.ContrastUsed && e.ContrastVolumeML < 0 {
		result = multierror.Append(result, errs.New(errs.TypeBadRequest, nil, "contrast volume must not be negative"))
	}
	if err := result.ErrorOrNil(); err != nil {
		return errs.New(errs.TypeBadRequest, err, "invalid exam: %v", err)
	}
	return nil
}
