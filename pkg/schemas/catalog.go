// Copyright (C) 2025 Radportal Labs, Inc.
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the FSF, either version 3 of the License, or (at your option) any later version.
// See the LICENSE file in the root of this repository for full license text or
// visit: <https://www.gnu.org/licenses/gpl-3.0.html>.

package schemas

import (
	"sort"
	"strings"

	errs "github.com/radportal-labs/radportal/pkg/errors"
)

// Doctor is an entry in the physician reference catalog.
type Doctor struct {
	ID   int    `json:"id"`
	Name string `json:"nome"`
	// CRM is the physician's regional medical council registration,
	// free-form and optional.
	CRM string `json:"crm,omitempty"`
}

func (d Doctor) Key() int              { return d.ID }
func (d Doctor) WithKey(id int) Doctor { d.ID = id; return d }

func (d Doctor) Normalize() Doctor {
	d.Name = strings.TrimSpace(d.Name)
	d.CRM = strings.TrimSpace(d.CRM)
	return d
}

func (d Doctor) Validate() error {
	if strings.TrimSpace(d.Name) == "" {
		return errs.New(errs.TypeBadRequest, nil, "doctor name is required")
	}
	return nil
}

// ExamType is an entry in the exam catalog; it feeds the autocomplete on
// the exam registration form.
type ExamType struct {
	ID       int      `json:"id"`
	Modality Modality `json:"modalidade"`
	Name     string   `json:"nome"`
	Code     string   `json:"codigo,omitempty"`
}

func (t ExamType) Key() int                { return t.ID }
func (t ExamType) WithKey(id int) ExamType { t.ID = id; return t }

func (t ExamType) Normalize() ExamType {
	t.Name = strings.TrimSpace(t.Name)
	t.Code = strings.TrimSpace(t.Code)
	return t
}

func (t ExamType) Validate() error {
	if !t.Modality.Valid() {
		return errs.New(errs.TypeBadRequest, nil, "modality %q is not recognized", t.Modality)
	}
	if strings.TrimSpace(t.Name) == "" {
		return errs.New(errs.TypeBadRequest, nil, "exam type name is required")
	}
	return nil
}

// Label renders the catalog entry the way the exam form displays it.
func (t ExamType) Label() string {
	if t.Modality == "" {
		return t.Name
	}
	return t.Modality.Label() + " - " + t.Name
}

// ExamTypeLabels returns the display labels of the given catalog entries,
// optionally restricted to one modality, sorted case-insensitively.
func ExamTypeLabels(types []ExamType, modality Modality) []string {
	filtered := make([]ExamType, 0, len(types))
	for _, t := range types {
		if modality != "" && t.Modality != modality {
			continue
		}
		filtered = append(filtered, t)
	}
	sort.Slice(filtered, func(i, j int) bool {
		a := strings.ToLower(string(filtered[i].Modality) + " " + filtered[i].Name)
		b := strings.ToLower(string(filtered[j].Modality) + " " + filtered[j].Name)
		return a < b
	})
	labels := make([]string, len(filtered))
	for i, t := range filtered {
		labels[i] = t.Label()
	}
	return labels
}

// MaterialKind distinguishes contrast agents from other consumables.
type MaterialKind string

const (
	MaterialContrast MaterialKind = "contraste"
	MaterialSupply   MaterialKind = "insumo"
)

// Material is an entry in the contrast/consumable catalog.
type Material struct {
	ID   int          `json:"id"`
	Name string       `json:"nome"`
	Kind MaterialKind `json:"tipo"`
	// Unit is the unit quantities are recorded in, e.g. "mL".
	Unit string `json:"unidade,omitempty"`
}

func (m Material) Key() int                { return m.ID }
func (m Material) WithKey(id int) Material { m.ID = id; return m }

func (m Material) Normalize() Material {
	m.Name = strings.TrimSpace(m.Name)
	m.Unit = strings.TrimSpace(m.Unit)
	if m.Kind == "" {
		m.Kind = MaterialContrast
	}
	return m
}

func (m Material) Validate() error {
	if strings.TrimSpace(m.Name) == "" {
		return errs.New(errs.TypeBadRequest, nil, "material name is required")
	}
	if m.Kind != "" && m.Kind != MaterialContrast && m.Kind != MaterialSupply {
		return errs.New(errs.TypeBadRequest, nil, "material kind %q is not recognized", m.Kind)
	}
	return nil
}
