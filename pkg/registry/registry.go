// Copyright (C) 2025 Radportal Labs, Inc.
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the FSF, either version 3 of the License, or (at your option) any later version.
// See the LICENSE file in the root of this repository for full license text or
// visit: <https://www.gnu.org/licenses/gpl-3.0.html>.

// Package registry owns the data directory: it wires every collection to
// its JSON file, guards the directory against a second server process,
// seeds first-run data and records the audit trail.
package registry

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofrs/flock"
	errs "github.com/radportal-labs/radportal/pkg/errors"
	"github.com/radportal-labs/radportal/pkg/schemas"
	"github.com/radportal-labs/radportal/pkg/storage"
	"go.uber.org/zap"
)

// Registry is the open data directory.
type Registry struct {
	dir  string
	lock *flock.Flock
	now  func() time.Time

	Users     *storage.Collection[schemas.User]
	Doctors   *storage.Collection[schemas.Doctor]
	ExamTypes *storage.Collection[schemas.ExamType]
	Materials *storage.Collection[schemas.Material]
	Exams     *storage.Collection[schemas.Exam]
	Logs      *storage.Collection[schemas.AuditEntry]
	Settings  *storage.Document[schemas.Settings]
}

// Open prepares the data directory and takes an exclusive flock on it so
// two server processes never interleave whole-file writes. defaults is
// the branding applied until the settings file exists.
func Open(dir string, defaults schemas.Settings) (*Registry, error) {
	if err := os.MkdirAll(filepath.Join(dir, "uploads"), 0o755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	lock := flock.New(filepath.Join(dir, "registry.lock"))
	locked, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("locking data directory: %w", err)
	}
	if !locked {
		return nil, fmt.Errorf("data directory %s is in use by another process", dir)
	}

	r := &Registry{
		dir:       dir,
		lock:      lock,
		now:       time.Now,
		Users:     storage.NewCollection[schemas.User](filepath.Join(dir, "users.json"), "users"),
		Doctors:   storage.NewCollection[schemas.Doctor](filepath.Join(dir, "doctors.json"), "doctors"),
		ExamTypes: storage.NewCollection[schemas.ExamType](filepath.Join(dir, "exam_types.json"), "exam_types"),
		Materials: storage.NewCollection[schemas.Material](filepath.Join(dir, "materials.json"), "materials"),
		Exams:     storage.NewCollection[schemas.Exam](filepath.Join(dir, "exams.json"), "exams"),
		Logs:      storage.NewCollection[schemas.AuditEntry](filepath.Join(dir, "logs.json"), "logs"),
		Settings: storage.NewDocument(filepath.Join(dir, "settings.json"),
			func() schemas.Settings { return defaults },
			schemas.Settings.Normalize),
	}
	return r, nil
}

// Dir returns the data directory path.
func (r *Registry) Dir() string { return r.dir }

// UploadsDir returns the branding uploads directory.
func (r *Registry) UploadsDir() string { return filepath.Join(r.dir, "uploads") }

// Close releases the directory lock.
func (r *Registry) Close() error {
	return r.lock.Unlock()
}

// FindUserByEmail looks an account up by e-mail, case-insensitively.
func (r *Registry) FindUserByEmail(ctx context.Context, email string) (schemas.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	users, err := r.Users.List(ctx)
	if err != nil {
		return schemas.User{}, err
	}
	for _, u := range users {
		if strings.ToLower(u.Email) == email {
			return u, nil
		}
	}
	return schemas.User{}, errs.New(errs.TypeNotFound, nil, "no user with e-mail %s", email)
}

// Audit appends an entry to the audit trail. Failures are logged rather
// than surfaced: the audited mutation has already been applied, and the
// trail has never been allowed to roll it back.
func (r *Registry) Audit(
	ctx context.Context,
	actor, action, entity string,
	entityID int,
	before, after schemas.Snapshot,
) {
	if actor == "" {
		actor = "desconhecido"
	}
	entry := schemas.AuditEntry{
		Time:     schemas.NewTimestamp(r.now()),
		Actor:    actor,
		Action:   action,
		Entity:   entity,
		EntityID: entityID,
		Before:   before,
		After:    after,
	}
	if _, err := r.Logs.Insert(ctx, entry); err != nil {
		zap.L().Error("failed to record audit entry",
			zap.String("action", action),
			zap.String("entity", entity),
			zap.Int("entity_id", entityID),
			zap.Error(err))
	}
}
