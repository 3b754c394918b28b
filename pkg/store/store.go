// Package store provides the persisted string-keyed map that holds the
// library index and the extraction cache across process runs.
package store

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/plugbay/plugbay/pkg/errors"
)

// Logical keys used by the managers on top of the store.
const (
	KeyLibraries = "libraries"
	KeyServers   = "servers"
	KeyCache     = "metadata-cache"
)

// Store is an opaque durable string-keyed map. Writes are whole-value
// overwrites; two concurrent writers to the same key are last-write-wins.
type Store interface {
	// GetItem returns the value stored under key, or ok=false if absent.
	GetItem(key string) (value string, ok bool, err error)

	// SetItem stores value under key, replacing any previous value.
	SetItem(key, value string) error
}

// FileStore persists the map as a single JSON file. Every mutation reads the
// full map, applies the change in memory, and writes the map back.
type FileStore struct {
	path string
}

// NewFileStore creates a store backed by the given file path. The file is
// created lazily on first write.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// GetItem implements Store.
func (s *FileStore) GetItem(key string) (string, bool, error) {
	items, err := s.load()
	if err != nil {
		return "", false, err
	}
	raw, ok := items[key]
	if !ok {
		return "", false, nil
	}
	return string(raw), true, nil
}

// SetItem implements Store.
func (s *FileStore) SetItem(key, value string) error {
	items, err := s.load()
	if err != nil {
		return err
	}
	items[key] = json.RawMessage(value)
	return s.save(items)
}

func (s *FileStore) load() (map[string]json.RawMessage, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return make(map[string]json.RawMessage), nil
		}
		return nil, errors.Wrapf(err, "failed to read state file %s", s.path)
	}

	items := make(map[string]json.RawMessage)
	if len(data) > 0 {
		if err := json.Unmarshal(data, &items); err != nil {
			return nil, errors.Wrapf(err, "failed to parse state file %s", s.path)
		}
	}
	return items, nil
}

func (s *FileStore) save(items map[string]json.RawMessage) error {
	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return errors.Wrap(err, "failed to marshal state")
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return errors.Wrapf(err, "failed to create state directory for %s", s.path)
	}

	tempPath := s.path + ".tmp"
	if err := os.WriteFile(tempPath, data, 0644); err != nil {
		return errors.Wrapf(err, "failed to write state file %s", tempPath)
	}
	if err := os.Rename(tempPath, s.path); err != nil {
		_ = os.Remove(tempPath)
		return errors.Wrapf(err, "failed to replace state file %s", s.path)
	}
	return nil
}
