// Package cache memoizes descriptor extraction results keyed by archive path
// and content hash. It is a pure optimization layer: correctness never depends
// on the cache being populated, and a hash mismatch always triggers a fresh
// extraction.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io"
	"os"

	"github.com/plugbay/plugbay/pkg/errors"
	"github.com/plugbay/plugbay/pkg/model"
	"github.com/plugbay/plugbay/pkg/store"
)

// Manager is the content-addressed extraction cache.
type Manager struct {
	store     store.Store
	extractor Extractor
}

// NewManager creates a cache manager over the given store and extractor.
func NewManager(st store.Store, extractor Extractor) *Manager {
	return &Manager{store: st, extractor: extractor}
}

// GetOrCompute returns the records for the archive together with its content
// hash. The stored result is reused only while the archive's bytes are
// unchanged; otherwise the extractor runs and the new result is stored.
func (m *Manager) GetOrCompute(ctx context.Context, archivePath string) (string, []model.ArchiveRecord, error) {
	hash, err := HashFile(archivePath)
	if err != nil {
		return "", nil, err
	}

	entries, err := m.load()
	if err != nil {
		return "", nil, err
	}

	if entry, ok := entries[archivePath]; ok && entry.Hash == hash {
		return hash, entry.Records, nil
	}

	records, err := m.extractor.Extract(ctx, archivePath)
	if err != nil {
		return "", nil, err
	}

	entries[archivePath] = model.CacheEntry{Hash: hash, Records: records}
	if err := m.save(entries); err != nil {
		return "", nil, err
	}
	return hash, records, nil
}

// Recompute hashes and extracts the archive unconditionally, replacing any
// stored result. Used by full index rebuilds.
func (m *Manager) Recompute(ctx context.Context, archivePath string) (string, []model.ArchiveRecord, error) {
	hash, err := HashFile(archivePath)
	if err != nil {
		return "", nil, err
	}

	records, err := m.extractor.Extract(ctx, archivePath)
	if err != nil {
		return "", nil, err
	}

	entries, err := m.load()
	if err != nil {
		return "", nil, err
	}
	entries[archivePath] = model.CacheEntry{Hash: hash, Records: records}
	if err := m.save(entries); err != nil {
		return "", nil, err
	}
	return hash, records, nil
}

// HashFile computes the hex-encoded SHA-256 digest of the file's full content.
func HashFile(path string) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", errors.Wrapf(err, "failed to open %s for hashing", path)
	}
	defer func() { _ = file.Close() }()

	hasher := sha256.New()
	if _, err := io.Copy(hasher, file); err != nil {
		return "", errors.Wrapf(err, "failed to hash %s", path)
	}
	return hex.EncodeToString(hasher.Sum(nil)), nil
}

func (m *Manager) load() (map[string]model.CacheEntry, error) {
	value, ok, err := m.store.GetItem(store.KeyCache)
	if err != nil {
		return nil, err
	}
	entries := make(map[string]model.CacheEntry)
	if ok {
		if err := json.Unmarshal([]byte(value), &entries); err != nil {
			return nil, errors.Wrap(err, "failed to parse cache state")
		}
	}
	return entries, nil
}

func (m *Manager) save(entries map[string]model.CacheEntry) error {
	data, err := json.Marshal(entries)
	if err != nil {
		return errors.Wrap(err, "failed to marshal cache state")
	}
	return m.store.SetItem(store.KeyCache, string(data))
}
