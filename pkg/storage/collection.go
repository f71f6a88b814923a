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
	"os"

	errs "github.com/radportal-labs/radportal/pkg/errors"
)

// Record is a value stored in a [Collection]. Records carry a numeric id
// assigned by the collection at insert time; WithKey returns a copy with
// the id set, keeping record types value-typed.
type Record[T any] interface {
	// Validate reports whether the record may be stored. It is called
	// by the API layer before a record reaches the collection.
	Validate() error
	Key() int
	WithKey(id int) T
}

// Collection is a set of records persisted as one JSON file. All methods
// are safe for concurrent use within the process; cross-process exclusion
// is the registry's flock guard.
type Collection[T Record[T]] struct {
	path string
	// wrapper is the top-level key of the stored document, e.g. "exams"
	// in {"exams": [...]}. It doubles as the collection name in errors.
	wrapper string
}

// NewCollection returns a collection stored at path under the given
// wrapper key. The file is created lazily on first write.
func NewCollection[T Record[T]](path, wrapper string) *Collection[T] {
	return &Collection[T]{path: path, wrapper: wrapper}
}

// Exists reports whether the backing file exists yet.
func (c *Collection[T]) Exists() bool {
	_, err := os.Stat(c.path)
	return err == nil
}

// load reads the full record list. The caller must hold the file lock
// when the result feeds a mutation.
func (c *Collection[T]) load() []T {
	doc := map[string][]T{}
	if err := readDocument(c.path, &doc); err != nil {
		warnCorrupt(c.path, err)
		return nil
	}
	return doc[c.wrapper]
}

func (c *Collection[T]) store(items []T) error {
	if items == nil {
		items = []T{}
	}
	return writeDocument(c.path, map[string][]T{c.wrapper: items})
}

// List returns every record in storage order.
func (c *Collection[T]) List(_ context.Context) ([]T, error) {
	mu := lockFor(c.path)
	mu.Lock()
	defer mu.Unlock()
	return c.load(), nil
}

// Get retrieves the record with the given id.
func (c *Collection[T]) Get(_ context.Context, id int) (T, error) {
	mu := lockFor(c.path)
	mu.Lock()
	defer mu.Unlock()

	for _, item := range c.load() {
		if item.Key() == id {
			return item, nil
		}
	}
	var zero T
	return zero, errs.New(errs.TypeNotFound, nil, "no record %d in %s", id, c.wrapper)
}

// Insert stores the record under the next free id (max+1) and returns the
// stored copy.
func (c *Collection[T]) Insert(_ context.Context, value T) (T, error) {
	mu := lockFor(c.path)
	mu.Lock()
	defer mu.Unlock()

	items := c.load()
	next := 1
	for _, item := range items {
		if item.Key() >= next {
			next = item.Key() + 1
		}
	}
	value = value.WithKey(next)
	if err := c.store(append(items, value)); err != nil {
		var zero T
		return zero, err
	}
	return value, nil
}

// Update replaces the record with the given id, keeping its id.
func (c *Collection[T]) Update(_ context.Context, id int, value T) (T, error) {
	mu := lockFor(c.path)
	mu.Lock()
	defer mu.Unlock()

	items := c.load()
	for i, item := range items {
		if item.Key() != id {
			continue
		}
		items[i] = value.WithKey(id)
		if err := c.store(items); err != nil {
			var zero T
			return zero, err
		}
		return items[i], nil
	}
	var zero T
	return zero, errs.New(errs.TypeNotFound, nil, "no record %d in %s", id, c.wrapper)
}

// Delete removes the record with the given id and returns it, so callers
// can snapshot it for the audit trail.
func (c *Collection[T]) Delete(_ context.Context, id int) (T, error) {
	mu := lockFor(c.path)
	mu.Lock()
	defer mu.Unlock()

	items := c.load()
	for i, item := range items {
		if item.Key() != id {
			continue
		}
		deleted := item
		items = append(items[:i], items[i+1:]...)
		if err := c.store(items); err != nil {
			var zero T
			return zero, err
		}
		return deleted, nil
	}
	var zero T
	return zero, errs.New(errs.TypeNotFound, nil, "no record %d in %s", id, c.wrapper)
}

// Replace overwrites the whole collection. Used by first-run seeding.
func (c *Collection[T]) Replace(_ context.Context, items []T) error {
	mu := lockFor(c.path)
	mu.Lock()
	defer mu.Unlock()
	return c.store(items)
}
