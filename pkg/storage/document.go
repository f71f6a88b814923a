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
)

// Document is a singleton JSON document, used for the settings file.
// Reads of a missing or corrupt file yield the default value, and every
// read passes through normalize so stale values (such as a retired theme
// name) are repaired without rewriting the file.
type Document[T any] struct {
	path      string
	defaults  func() T
	normalize func(T) T
}

func NewDocument[T any](path string, defaults func() T, normalize func(T) T) *Document[T] {
	if normalize == nil {
		normalize = func(v T) T { return v }
	}
	return &Document[T]{path: path, defaults: defaults, normalize: normalize}
}

// Exists reports whether the backing file exists yet.
func (d *Document[T]) Exists() bool {
	_, err := os.Stat(d.path)
	return err == nil
}

// Load returns the stored document, or the default when missing/corrupt.
func (d *Document[T]) Load(_ context.Context) T {
	mu := lockFor(d.path)
	mu.Lock()
	defer mu.Unlock()

	value := d.defaults()
	if err := readDocument(d.path, &value); err != nil {
		warnCorrupt(d.path, err)
		return d.normalize(d.defaults())
	}
	return d.normalize(value)
}

// Store atomically replaces the document.
func (d *Document[T]) Store(_ context.Context, value T) error {
	mu := lockFor(d.path)
	mu.Lock()
	defer mu.Unlock()
	return writeDocument(d.path, d.normalize(value))
}
