// Package file implements the on-disk prompt cache: a single JSON object
// mapping prompt strings to completion strings.
package file

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/recall-ai/recall/pkg/models"
)

// ErrCorrupt reports that the cache file exists but does not parse. Callers
// are expected to log it and proceed with an empty store.
var ErrCorrupt = errors.New("cache file corrupt")

// Store is an exact-match prompt cache persisted as one JSON file. The file
// is shared mutable state: there is no locking and no atomic replace, so
// concurrent writers can lose updates. Every operation goes back to disk,
// which keeps separate processes loosely in sync.
type Store struct {
	path string
}

// New creates a Store backed by the given file path. The file is not
// created until the first Put.
func New(path string) *Store {
	return &Store{path: path}
}

// Path exposes the cache file path.
func (s *Store) Path() string {
	return s.path
}

// Load reads the full prompt→completion map from disk. A missing file
// yields an empty map and no error. Malformed content yields an empty map
// and ErrCorrupt so the caller can warn and continue.
func (s *Store) Load() (map[string]string, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return map[string]string{}, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}

	entries := map[string]string{}
	if err := json.Unmarshal(data, &entries); err != nil {
		return map[string]string{}, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	return entries, nil
}

// Lookup loads the store and performs an exact string match on the prompt.
func (s *Store) Lookup(prompt string) (string, bool, error) {
	entries, err := s.Load()
	if err != nil {
		return "", false, err
	}
	completion, ok := entries[prompt]
	return completion, ok, nil
}

// Put inserts or overwrites the entry for the prompt and writes the full
// map back. The store is reloaded first to narrow, not close, the window
// for losing another writer's entries. Last writer wins.
func (s *Store) Put(prompt, completion string) error {
	entries, err := s.Load()
	if err != nil {
		// A corrupt store is replaced wholesale.
		entries = map[string]string{}
	}
	entries[prompt] = completion

	data, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("encode cache: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("write cache: %w", err)
	}
	return nil
}

// Stats returns entry count and file size.
func (s *Store) Stats() (models.CacheStats, error) {
	entries, err := s.Load()
	if err != nil {
		return models.CacheStats{}, err
	}

	var size int64
	if info, err := os.Stat(s.path); err == nil {
		size = info.Size()
	}

	return models.CacheStats{
		Entries:   len(entries),
		SizeBytes: size,
	}, nil
}

// Clear removes the cache file. A missing file is not an error.
func (s *Store) Clear() error {
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("clear cache: %w", err)
	}
	return nil
}
