// Copyright (C) 2025 Radportal Labs, Inc.
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the FSF, either version 3 of the License, or (at your option) any later version.
// See the LICENSE file in the root of this repository for full license text or
// visit: <https://www.gnu.org/licenses/gpl-3.0.html>.

package storage

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	errs "github.com/radportal-labs/radportal/pkg/errors"
)

// note is a minimal record for exercising the collection.
type note struct {
	ID   int    `json:"id"`
	Text string `json:"text"`
}

func (n note) Validate() error     { return nil }
func (n note) Key() int            { return n.ID }
func (n note) WithKey(id int) note { n.ID = id; return n }

func newTestCollection(t *testing.T) *Collection[note] {
	t.Helper()
	return NewCollection[note](filepath.Join(t.TempDir(), "notes.json"), "notes")
}

func TestCollection_InsertAssignsIDs(t *testing.T) {
	ctx := context.Background()
	c := newTestCollection(t)

	first, err := c.Insert(ctx, note{Text: "a"})
	if err != nil {
		t.Fatalf("Insert() error = %v", err)
	}
	second, err := c.Insert(ctx, note{Text: "b"})
	if err != nil {
		t.Fatalf("Insert() error = %v", err)
	}
	if first.ID != 1 || second.ID != 2 {
		t.Errorf("ids = %d, %d, want 1, 2", first.ID, second.ID)
	}

	// ids are max+1, so deleting the middle never reuses a live id
	if _, err := c.Delete(ctx, first.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	third, err := c.Insert(ctx, note{Text: "c"})
	if err != nil {
		t.Fatalf("Insert() error = %v", err)
	}
	if third.ID != 3 {
		t.Errorf("id after delete = %d, want 3", third.ID)
	}
}

func TestCollection_GetUpdateDelete(t *testing.T) {
	ctx := context.Background()
	c := newTestCollection(t)

	inserted, err := c.Insert(ctx, note{Text: "original"})
	if err != nil {
		t.Fatalf("Insert() error = %v", err)
	}

	got, err := c.Get(ctx, inserted.ID)
	if err != nil || got.Text != "original" {
		t.Fatalf("Get() = %+v, %v", got, err)
	}

	updated, err := c.Update(ctx, inserted.ID, note{ID: 99, Text: "changed"})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if updated.ID != inserted.ID {
		t.Errorf("Update() must keep the id, got %d", updated.ID)
	}

	deleted, err := c.Delete(ctx, inserted.ID)
	if err != nil || deleted.Text != "changed" {
		t.Fatalf("Delete() = %+v, %v", deleted, err)
	}

	var typed *errs.Error
	if _, err := c.Get(ctx, inserted.ID); !errors.As(err, &typed) || typed.Type != errs.TypeNotFound {
		t.Errorf("Get() after delete error = %v, want not-found", err)
	}
	if _, err := c.Update(ctx, inserted.ID, note{}); err == nil {
		t.Error("Update() of a deleted record should fail")
	}
	if _, err := c.Delete(ctx, inserted.ID); err == nil {
		t.Error("Delete() of a deleted record should fail")
	}
}

func TestCollection_MissingAndCorruptFiles(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	path := filepath.Join(dir, "notes.json")
	c := NewCollection[note](path, "notes")

	if c.Exists() {
		t.Error("Exists() = true before first write")
	}
	items, err := c.List(ctx)
	if err != nil || len(items) != 0 {
		t.Fatalf("List() on missing file = %v, %v", items, err)
	}

	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	items, err = c.List(ctx)
	if err != nil || len(items) != 0 {
		t.Fatalf("List() on corrupt file = %v, %v", items, err)
	}

	// a write through the collection repairs the file
	if _, err := c.Insert(ctx, note{Text: "recovered"}); err != nil {
		t.Fatalf("Insert() error = %v", err)
	}
	items, _ = c.List(ctx)
	if len(items) != 1 {
		t.Errorf("List() after repair = %v", items)
	}
}

func TestCollection_WrapperDocumentOnDisk(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	path := filepath.Join(dir, "notes.json")
	c := NewCollection[note](path, "notes")

	if _, err := c.Insert(ctx, note{Text: "x"}); err != nil {
		t.Fatalf("Insert() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var doc map[string][]note
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("file is not a wrapper document: %v", err)
	}
	if len(doc["notes"]) != 1 {
		t.Errorf("wrapper key missing: %s", data)
	}
	if _, err := os.Stat(path + ".tmp"); !errors.Is(err, os.ErrNotExist) {
		t.Error("temporary file left behind after write")
	}
}

func TestCollection_ConcurrentInserts(t *testing.T) {
	ctx := context.Background()
	c := newTestCollection(t)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := c.Insert(ctx, note{Text: "w"}); err != nil {
				t.Errorf("Insert() error = %v", err)
			}
		}()
	}
	wg.Wait()

	items, _ := c.List(ctx)
	if len(items) != 20 {
		t.Fatalf("List() = %d items, want 20", len(items))
	}
	seen := map[int]bool{}
	for _, item := range items {
		if seen[item.ID] {
			t.Fatalf("duplicate id %d", item.ID)
		}
		seen[item.ID] = true
	}
}
