// Copyright (C) 2025 Radportal Labs, Inc.
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the FSF, either version 3 of the License, or (at your option) any later version.
// See the LICENSE file in the root of this repository for full license text or
// visit: <https://www.gnu.org/licenses/gpl-3.0.html>.

package registry

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/radportal-labs/radportal/pkg/schemas"
)

// utf8BOM makes spreadsheet software decode the accented Portuguese
// content correctly.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

var examCSVHeader = []string{
	"id", "exam_id", "idade", "modalidade", "exame",
	"medico", "data_hora", "contraste_usado", "contraste_qtd", "user_email",
}

// WriteExamsCSV writes the exams as a UTF-8 CSV with a byte order mark,
// one row per exam, timestamps in DD/MM/YYYY HH:MM form.
func WriteExamsCSV(w io.Writer, exams []schemas.Exam) error {
	if _, err := w.Write(utf8BOM); err != nil {
		return err
	}
	cw := csv.NewWriter(w)
	if err := cw.Write(examCSVHeader); err != nil {
		return err
	}
	for _, e := range exams {
		row := []string{
			strconv.Itoa(e.ID),
			e.AccessionNumber,
			strconv.Itoa(e.PatientAge),
			string(e.Modality),
			e.StudyName,
			e.Physician,
			e.PerformedAt.FormatBR(),
			strconv.FormatBool(e.ContrastUsed),
			strconv.FormatFloat(e.ContrastVolumeML, 'f', -1, 64),
			e.RecordedBy,
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
