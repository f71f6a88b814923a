// Copyright (C) 2025 Radportal Labs, Inc.
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the FSF, either version 3 of the License, or (at your option) any later version.
// See the LICENSE file in the root of this repository for full license text or
// visit: <https://www.gnu.org/licenses/gpl-3.0.html>.

package schemas

// Modality is an imaging modality code (DICOM-style two letter codes).
type Modality string

const (
	ModalityRX Modality = "RX"
	ModalityCT Modality = "CT"
	ModalityUS Modality = "US"
	ModalityMR Modality = "MR"
	ModalityMG Modality = "MG"
	ModalityNM Modality = "NM"
)

// Modalities lists every modality the registry accepts, in display order.
var Modalities = []Modality{
	ModalityRX, ModalityCT, ModalityUS, ModalityMR, ModalityMG, ModalityNM,
}

// modalityLabels maps modality codes to the Portuguese display names used
// across the portal and in the exam catalog labels.
var modalityLabels = map[Modality]string{
	ModalityRX: "Raio-X",
	ModalityCT: "Tomografia",
	ModalityUS: "Ultrassom",
	ModalityMR: "Ressonância",
	ModalityMG: "Mamografia",
	ModalityNM: "Medicina Nuclear",
}

// Label returns the display name of the modality. Unknown codes are
// returned as-is so that data recorded with a retired code still renders.
func (m Modality) Label() string {
	if label, ok := modalityLabels[m]; ok {
		return label
	}
	return string(m)
}

// Valid reports whether the modality is one the registry accepts.
func (m Modality) Valid() bool {
	_, ok := modalityLabels[m]
	return ok
}
