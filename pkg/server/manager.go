// Package server manages the registry of deployment targets: named server
// plugin directories tagged with the platform they run.
package server

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"

	"github.com/plugbay/plugbay/pkg/errors"
	"github.com/plugbay/plugbay/pkg/model"
	"github.com/plugbay/plugbay/pkg/platform"
	"github.com/plugbay/plugbay/pkg/store"
)

// Manager owns the registered servers.
type Manager struct {
	store store.Store
}

// NewManager creates a server manager over the given store.
func NewManager(st store.Store) *Manager {
	return &Manager{store: st}
}

// Add registers a server over an existing plugin directory.
func (m *Manager) Add(id, path string, tag platform.Tag) (*model.Server, error) {
	if !tag.IsValid() {
		return nil, errors.Wrapf(errors.ErrConfigValidation, "invalid platform %q", tag)
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid server path %s", path)
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

	servers, err := m.load()
	if err != nil {
		return nil, err
	}
	if _, ok := servers[id]; ok {
		return nil, errors.Wrapf(ErrServerExists, "%s", id)
	}

	srv := &model.Server{ID: id, Path: absPath, Platform: tag}
	servers[id] = srv
	if err := m.save(servers); err != nil {
		return nil, err
	}
	return srv, nil
}

// Update changes a server's path or platform. Empty arguments leave the
// corresponding field untouched.
func (m *Manager) Update(id, path string, tag platform.Tag) (*model.Server, error) {
	servers, err := m.load()
	if err != nil {
		return nil, err
	}
	srv, ok := servers[id]
	if !ok {
		return nil, errors.Wrapf(ErrServerNotFound, "%s", id)
	}

	if path != "" {
		absPath, err := filepath.Abs(path)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid server path %s", path)
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
		srv.Path = absPath
	}
	if tag != "" {
		if !tag.IsValid() {
			return nil, errors.Wrapf(errors.ErrConfigValidation, "invalid platform %q", tag)
		}
		srv.Platform = tag
	}

	if err := m.save(servers); err != nil {
		return nil, err
	}
	return srv, nil
}

// Remove deletes a server registration.
func (m *Manager) Remove(id string) error {
	servers, err := m.load()
	if err != nil {
		return err
	}
	if _, ok := servers[id]; !ok {
		return errors.Wrapf(ErrServerNotFound, "%s", id)
	}
	delete(servers, id)
	return m.save(servers)
}

// Get returns the server registered under id.
func (m *Manager) Get(id string) (*model.Server, error) {
	servers, err := m.load()
	if err != nil {
		return nil, err
	}
	srv, ok := servers[id]
	if !ok {
		return nil, errors.Wrapf(ErrServerNotFound, "%s", id)
	}
	return srv, nil
}

// List returns all registered servers sorted by id.
func (m *Manager) List() ([]*model.Server, error) {
	servers, err := m.load()
	if err != nil {
		return nil, err
	}
	list := make([]*model.Server, 0, len(servers))
	for _, srv := range servers {
		list = append(list, srv)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list, nil
}

func (m *Manager) load() (map[string]*model.Server, error) {
	value, ok, err := m.store.GetItem(store.KeyServers)
	if err != nil {
		return nil, err
	}
	servers := make(map[string]*model.Server)
	if ok {
		if err := json.Unmarshal([]byte(value), &servers); err != nil {
			return nil, errors.Wrap(err, "failed to parse server state")
		}
	}
	return servers, nil
}

func (m *Manager) save(servers map[string]*model.Server) error {
	data, err := json.Marshal(servers)
	if err != nil {
		return errors.Wrap(err, "failed to marshal server state")
	}
	return m.store.SetItem(store.KeyServers, string(data))
}
