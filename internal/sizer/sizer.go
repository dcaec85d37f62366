// Package sizer resolves on-disk sizes, memoizing directory totals so
// repeated lookups during a run stay cheap.
package sizer

import (
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

// Resolver returns on-disk sizes for paths. Directory sizes are
// computed recursively once and cached by canonical path; files are a
// direct attribute lookup. Safe for concurrent use: results for the
// same path are idempotent, so concurrent first-writers are harmless.
type Resolver struct {
	mu    sync.RWMutex
	cache map[string]int64
}

// New creates a Resolver with an empty cache
func New() *Resolver {
	return &Resolver{cache: make(map[string]int64)}
}

// Size returns the on-disk size of path in bytes. Nonexistent or
// unreadable paths report 0.
func (r *Resolver) Size(path string) int64 {
	info, err := os.Lstat(path)
	if err != nil {
		return 0
	}
	if !info.IsDir() {
		return info.Size()
	}

	key := filepath.Clean(path)

	r.mu.RLock()
	size, ok := r.cache[key]
	r.mu.RUnlock()
	if ok {
		return size
	}

	size = dirSize(key)

	r.mu.Lock()
	r.cache[key] = size
	r.mu.Unlock()

	return size
}

// SizeAll sums Size over paths
func (r *Resolver) SizeAll(paths []string) int64 {
	var total int64
	for _, p := range paths {
		total += r.Size(p)
	}
	return total
}

// dirSize walks dir and sums regular file sizes. Unreadable entries are
// skipped rather than failing the walk.
func dirSize(dir string) int64 {
	var total int64
	_ = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return nil
		}
		if info.Mode().IsRegular() {
			total += info.Size()
		}
		return nil
	})
	return total
}
