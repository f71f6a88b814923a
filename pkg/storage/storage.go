// Copyright (C) 2025 Radportal Labs, Inc.
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the FSF, either version 3 of the License, or (at your option) any later version.
// See the LICENSE file in the root of this repository for full license text or
// visit: <https://www.gnu.org/licenses/gpl-3.0.html>.

// Package storage persists registry records in flat JSON files. Every
// collection is one file holding a wrapper document ({"exams": [...]}).
// Mutations take a per-file in-process mutex, rewrite the whole document
// to a temporary file and atomically replace the original, so readers
// never observe a partial write.
package storage

import (
	"encoding/json"
	"errors"
	"os"
	"sync"

	"go.uber.org/zap"
)

// lockRegistry hands out one mutex per file path. Two collections backed
// by the same path share a lock.
var lockRegistry = struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}{locks: map[string]*sync.Mutex{}}

func lockFor(path string) *sync.Mutex {
	lockRegistry.mu.Lock()
	defer lockRegistry.mu.Unlock()
	l, ok := lockRegistry.locks[path]
	if !ok {
		l = &sync.Mutex{}
		lockRegistry.locks[path] = l
	}
	return l
}

// readDocument unmarshals the JSON document at path into out. A missing
// file returns os.ErrNotExist; the caller decides what the default is.
func readDocument(path string, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, out)
}

// writeDocument serializes v and atomically replaces the file at path.
func writeDocument(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

// warnCorrupt logs a document that failed to parse. The registry treats
// corrupt files as empty rather than refusing to start, matching how the
// portal has always behaved.
func warnCorrupt(path string, err error) {
	if errors.Is(err, os.ErrNotExist) {
		return
	}
	zap.L().Warn("data file unreadable, treating as empty",
		zap.String("path", path), zap.Error(err))
}
