// Package library manages plugin libraries: registered archive directories
// and their persisted metadata indexes.
package library

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/plugbay/plugbay/pkg/cache"
	"github.com/plugbay/plugbay/pkg/errors"
	"github.com/plugbay/plugbay/pkg/logger"
	"github.com/plugbay/plugbay/pkg/model"
	"github.com/plugbay/plugbay/pkg/store"
)

// archiveExt is the file extension library directories are scanned for.
const archiveExt = ".jar"

// RecordSource produces the metadata records and content hash for an archive,
// normally backed by the content cache.
type RecordSource interface {
	// GetOrCompute reuses a memoized result while the archive is unchanged.
	GetOrCompute(ctx context.Context, archivePath string) (hash string, records []model.ArchiveRecord, err error)

	// Recompute extracts unconditionally, refreshing the memoized result.
	Recompute(ctx context.Context, archivePath string) (hash string, records []model.ArchiveRecord, err error)
}

// Manager owns the registered libraries and their indexes.
type Manager struct {
	store   store.Store
	records RecordSource
}

// NewManager creates a library manager over the given store and record source.
func NewManager(st store.Store, records RecordSource) *Manager {
	return &Manager{store: st, records: records}
}

// Add registers a new library over an existing directory. The index starts
// empty; Reindex fills it.
func (m *Manager) Add(id, path string) (*model.Library, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid library path %s", path)
	}

	info, err := os.Stat(absPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrapf(errors.ErrPathNotFound, "%s", absPath)
		}
		return nil, errors.Wrapf(err, "failed to stat %s", absPath)
	}
	if !info.IsDir() {
		return nil, errors.Wrapf(errors.ErrNotADirectory, "%s", absPath)
	}

	libraries, err := m.load()
	if err != nil {
		return nil, err
	}
	if _, ok := libraries[id]; ok {
		return nil, errors.Wrapf(ErrLibraryExists, "%s", id)
	}

	lib := &model.Library{ID: id, Path: absPath, Entries: []*model.IndexEntry{}}
	libraries[id] = lib
	if err := m.save(libraries); err != nil {
		return nil, err
	}
	return lib, nil
}

// Remove deletes a library and its index entries.
func (m *Manager) Remove(id string) error {
	libraries, err := m.load()
	if err != nil {
		return err
	}
	if _, ok := libraries[id]; !ok {
		return errors.Wrapf(ErrLibraryNotFound, "%s", id)
	}
	delete(libraries, id)
	return m.save(libraries)
}

// Get returns the library registered under id.
func (m *Manager) Get(id string) (*model.Library, error) {
	libraries, err := m.load()
	if err != nil {
		return nil, err
	}
	lib, ok := libraries[id]
	if !ok {
		return nil, errors.Wrapf(ErrLibraryNotFound, "%s", id)
	}
	return lib, nil
}

// List returns all registered libraries sorted by id.
func (m *Manager) List() ([]*model.Library, error) {
	libraries, err := m.load()
	if err != nil {
		return nil, err
	}
	list := make([]*model.Library, 0, len(libraries))
	for _, lib := range libraries {
		list = append(list, lib)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list, nil
}

// Reindex reconciles a library's index against the current content of its
// directory. In incremental mode an archive whose path and content hash both
// match a held entry keeps its entries without re-extraction; everything else
// is (re)extracted through the record source. With rebuild set, all held
// entries are discarded first and every archive is extracted fresh.
//
// A single unreadable archive does not abort the reindex: it is logged,
// yields zero records, and the scan continues.
func (m *Manager) Reindex(ctx context.Context, id string, rebuild bool) (*model.Library, error) {
	libraries, err := m.load()
	if err != nil {
		return nil, err
	}
	lib, ok := libraries[id]
	if !ok {
		return nil, errors.Wrapf(ErrLibraryNotFound, "%s", id)
	}

	candidates, err := scanArchives(lib.Path)
	if err != nil {
		return nil, err
	}

	held := make(map[string][]*model.IndexEntry)
	if !rebuild {
		for _, entry := range lib.Entries {
			held[entry.Path] = append(held[entry.Path], entry)
		}
	}

	compute := m.records.GetOrCompute
	if rebuild {
		compute = m.records.Recompute
	}

	entries := make([]*model.IndexEntry, 0, len(candidates))
	for _, candidate := range candidates {
		if retained, ok := held[candidate]; ok {
			hash, err := cache.HashFile(candidate)
			if err == nil && hash == retained[0].Hash {
				entries = append(entries, retained...)
				continue
			}
		}

		hash, records, err := compute(ctx, candidate)
		if err != nil {
			logger.Warn("skipping unreadable archive", logrus.Fields{
				"library": id,
				"archive": candidate,
				"error":   err.Error(),
			})
			continue
		}
		for _, record := range records {
			entries = append(entries, &model.IndexEntry{Hash: hash, Path: candidate, Record: record})
		}
	}

	lib.Entries = entries
	if err := m.save(libraries); err != nil {
		return nil, err
	}
	return lib, nil
}

// scanArchives lists the archive files directly inside dir, sorted by name.
// Subdirectories are not descended into.
func scanArchives(dir string) ([]string, error) {
	dirEntries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to scan library directory %s", dir)
	}

	paths := make([]string, 0, len(dirEntries))
	for _, de := range dirEntries {
		if de.IsDir() {
			continue
		}
		if !strings.EqualFold(filepath.Ext(de.Name()), archiveExt) {
			continue
		}
		paths = append(paths, filepath.Join(dir, de.Name()))
	}
	return paths, nil
}

func (m *Manager) load() (map[string]*model.Library, error) {
	value, ok, err := m.store.GetItem(store.KeyLibraries)
	if err != nil {
		return nil, err
	}
	libraries := make(map[string]*model.Library)
	if ok {
		if err := json.Unmarshal([]byte(value), &libraries); err != nil {
			return nil, errors.Wrap(err, "failed to parse library state")
		}
	}
	return libraries, nil
}

func (m *Manager) save(libraries map[string]*model.Library) error {
	data, err := json.Marshal(libraries)
	if err != nil {
		return errors.Wrap(err, "failed to marshal library state")
	}
	return m.store.SetItem(store.KeyLibraries, string(data))
}
