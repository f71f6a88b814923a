// Copyright (C) 2025 Radportal Labs, Inc.
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the FSF, either version 3 of the License, or (at your option) any later version.
// See the LICENSE file in the root of this repository for full license text or
// visit: <https://www.gnu.org/licenses/gpl-3.0.html>.

package registry

import (
	"context"
	_ "embed"
	"fmt"
	"time"

	"github.com/radportal-labs/radportal/pkg/identities"
	"github.com/radportal-labs/radportal/pkg/schemas"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var catalogYAML []byte

// Seed admin credentials. The portal insists on a password change being
// possible, not on it having happened; operators are told to rotate this.
const (
	SeedAdminEmail    = "admin@local"
	SeedAdminPassword = "admin123"
)

// Seed fills in whatever first-run data is missing: the admin account,
// the exam catalog, demo exams and the settings file. Existing data is
// never touched, so it is safe to run on every start.
func Seed(ctx context.Context, r *Registry) error {
	if err := seedAdmin(ctx, r); err != nil {
		return err
	}
	if err := seedCatalog(ctx, r); err != nil {
		return err
	}
	if err := seedExams(ctx, r); err != nil {
		return err
	}

	// make sure every data file exists on disk, empty or not
	if !r.Doctors.Exists() {
		if err := r.Doctors.Replace(ctx, nil); err != nil {
			return err
		}
	}
	if !r.Materials.Exists() {
		if err := r.Materials.Replace(ctx, nil); err != nil {
			return err
		}
	}
	if !r.Logs.Exists() {
		if err := r.Logs.Replace(ctx, nil); err != nil {
			return err
		}
	}
	if !r.Settings.Exists() {
		if err := r.Settings.Store(ctx, r.Settings.Load(ctx)); err != nil {
			return err
		}
	}
	return nil
}

func seedAdmin(ctx context.Context, r *Registry) error {
	users, err := r.Users.List(ctx)
	if err != nil {
		return err
	}
	if len(users) > 0 {
		return nil
	}

	hash, err := identities.HashPassword(SeedAdminPassword)
	if err != nil {
		return err
	}
	admin := schemas.User{
		Name:              "Administrador",
		Email:             SeedAdminEmail,
		PasswordHash:      hash,
		AllowedModalities: schemas.AllModalities,
		Role:              schemas.RoleAdmin,
	}
	if _, err := r.Users.Insert(ctx, admin); err != nil {
		return err
	}
	zap.L().Info("seeded administrator account", zap.String("email", SeedAdminEmail))
	return nil
}

func seedCatalog(ctx context.Context, r *Registry) error {
	types, err := r.ExamTypes.List(ctx)
	if err != nil {
		return err
	}
	if len(types) > 0 {
		return nil
	}

	var catalog struct {
		ExamTypes []schemas.ExamType `yaml:"exam_types"`
	}
	if err := yaml.Unmarshal(catalogYAML, &catalog); err != nil {
		return fmt.Errorf("parsing embedded exam catalog: %w", err)
	}
	for _, et := range catalog.ExamTypes {
		if _, err := r.ExamTypes.Insert(ctx, et); err != nil {
			return err
		}
	}
	zap.L().Info("seeded exam catalog", zap.Int("exam_types", len(catalog.ExamTypes)))
	return nil
}

// seedExams writes a handful of recent exams so the dashboard and the
// statistics page are not empty on a fresh install.
func seedExams(ctx context.Context, r *Registry) error {
	if r.Exams.Exists() {
		return nil
	}

	now := r.now()
	demo := []schemas.Exam{
		{
			AccessionNumber: "RX-0001", PatientAge: 34, Modality: schemas.ModalityRX,
			StudyName: "Tórax PA/L", Physician: "Dr. Souza",
			PerformedAt: schemas.NewTimestamp(now.Add(-74 * time.Hour)),
			RecordedBy:  SeedAdminEmail,
		},
		{
			AccessionNumber: "CT-0001", PatientAge: 61, Modality: schemas.ModalityCT,
			StudyName: "Crânio", Physician: "Dra. Lima",
			PerformedAt:  schemas.NewTimestamp(now.Add(-50 * time.Hour)),
			ContrastUsed: true, ContrastVolumeML: 80,
			RecordedBy: SeedAdminEmail,
		},
		{
			AccessionNumber: "US-0001", PatientAge: 28, Modality: schemas.ModalityUS,
			StudyName: "Abdômen total", Physician: "Dr. Souza",
			PerformedAt: schemas.NewTimestamp(now.Add(-31 * time.Hour)),
			RecordedBy:  SeedAdminEmail,
		},
		{
			AccessionNumber: "MR-0001", PatientAge: 45, Modality: schemas.ModalityMR,
			StudyName: "Joelho", Physician: "Dr. Andrade",
			PerformedAt: schemas.NewTimestamp(now.Add(-26 * time.Hour)),
			RecordedBy:  SeedAdminEmail,
		},
		{
			AccessionNumber: "CT-0002", PatientAge: 52, Modality: schemas.ModalityCT,
			StudyName: "Abdômen", Physician: "Dra. Lima",
			PerformedAt:  schemas.NewTimestamp(now.Add(-7 * time.Hour)),
			ContrastUsed: true, ContrastVolumeML: 100,
			RecordedBy: SeedAdminEmail,
		},
		{
			AccessionNumber: "MG-0001", PatientAge: 49, Modality: schemas.ModalityMG,
			StudyName: "Mamografia Bilateral", Physician: "Dra. Campos",
			PerformedAt: schemas.NewTimestamp(now.Add(-2 * time.Hour)),
			RecordedBy:  SeedAdminEmail,
		},
	}
	for _, e := range demo {
		if _, err := r.Exams.Insert(ctx, e); err != nil {
			return err
		}
	}
	zap.L().Info("seeded demo exams", zap.Int("exams", len(demo)))
	return nil
}
