// Copyright (C) 2025 Radportal Labs, Inc.
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the FSF, either version 3 of the License, or (at your option) any later version.
// See the LICENSE file in the root of this repository for full license text or
// visit: <https://www.gnu.org/licenses/gpl-3.0.html>.

package schemas

import (
	"encoding/json"
	"sort"
)

// Audit actions.
const (
	ActionCreate = "create"
	ActionUpdate = "update"
	ActionDelete = "delete"
)

// Audit entities.
const (
	EntityExam     = "exam"
	EntityDoctor   = "doctor"
	EntityUser     = "user"
	EntityExamType = "exam_type"
	EntityMaterial = "material"
	EntitySettings = "settings"
)

// Snapshot is a point-in-time copy of a record, stored alongside audit
// entries so updates can be diffed later.
type Snapshot map[string]any

// NewSnapshot converts any record to a Snapshot via its JSON form.
// Password hashes are never snapshotted.
func NewSnapshot(v any) Snapshot {
	if v == nil {
		return nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil
	}
	delete(snap, "senha_hash")
	return snap
}

// ChangedFields returns the sorted field names whose values differ between
// the two snapshots. Used by the audit listing to summarize updates.
func ChangedFields(before, after Snapshot) []string {
	seen := map[string]bool{}
	for k, v := range after {
		bv, ok := before[k]
		if !ok || !jsonEqual(bv, v) {
			seen[k] = true
		}
	}
	for k := range before {
		if _, ok := after[k]; !ok {
			seen[k] = true
		}
	}
	fields := make([]string, 0, len(seen))
	for k := range seen {
		fields = append(fields, k)
	}
	sort.Strings(fields)
	return fields
}

func jsonEqual(a, b any) bool {
	aj, errA := json.Marshal(a)
	bj, errB := json.Marshal(b)
	return errA == nil && errB == nil && string(aj) == string(bj)
}

// AuditEntry is one line of the registry's audit trail.
type AuditEntry struct {
	ID       int       `json:"id"`
	Time     Timestamp `json:"ts"`
	Actor    string    `json:"user"`
	Action   string    `json:"action"`
	Entity   string    `json:"entity"`
	EntityID int       `json:"entity_id"`
	Before   Snapshot  `json:"before,omitempty"`
	After    Snapshot  `json:"after,omitempty"`
}

func (a AuditEntry) Key() int                  { return a.ID }
func (a AuditEntry) WithKey(id int) AuditEntry { a.ID = id; return a }

func (a AuditEntry) Validate() error { return nil }

// Summary lists the fields an update touched; empty for other actions.
func (a AuditEntry) Summary() []string {
	if a.Action != ActionUpdate || a.Before == nil || a.After == nil {
		return nil
	}
	return ChangedFields(a.Before, a.After)
}
