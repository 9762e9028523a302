// Package store persists logical records as pretty-printed JSON documents,
// one file per record, serialized by a per-path lock. Update holds the lock
// across the full read-modify-write so single-file updates are atomic against
// concurrent writers. There is no cross-file transaction: a crash between two
// related writes can leave them inconsistent.
package store

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
)

// Store maps file paths to lazily created locks.
type Store struct {
	locks sync.Map // path -> *sync.Mutex
}

// New creates an empty store.
func New() *Store {
	return &Store{}
}

func (s *Store) lock(path string) *sync.Mutex {
	value, _ := s.locks.LoadOrStore(path, &sync.Mutex{})
	return value.(*sync.Mutex)
}

// Read returns the document at path, creating it with def when absent.
// Any read or parse failure yields def instead of an error.
func Read[T any](s *Store, path string, def T) T {
	mu := s.lock(path)
	mu.Lock()
	defer mu.Unlock()
	return readLocked(path, def)
}

// Write serializes data as indented JSON, creating parent directories as needed.
func Write[T any](s *Store, path string, data T) error {
	mu := s.lock(path)
	mu.Lock()
	defer mu.Unlock()
	return writeLocked(path, data)
}

// Update applies fn to the current document (or def when absent/corrupt) and
// writes the result back, all under the path lock.
func Update[T any](s *Store, path string, def T, fn func(T) (T, error)) (T, error) {
	mu := s.lock(path)
	mu.Lock()
	defer mu.Unlock()

	current := readLocked(path, def)
	next, err := fn(current)
	if err != nil {
		var zero T
		return zero, err
	}
	if err := writeLocked(path, next); err != nil {
		var zero T
		return zero, err
	}
	return next, nil
}

func readLocked[T any](path string, def T) T {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if writeLocked(path, def) != nil {
			return def
		}
		return def
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return def
	}
	var out T
	if err := json.Unmarshal(raw, &out); err != nil {
		return def
	}
	return out
}

func writeLocked[T any](path string, data T) error {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	raw, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, raw, 0o644)
}
