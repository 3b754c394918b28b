// Package deploy copies resolved plugin archives into server plugin
// directories, replacing same-named archives already present.
package deploy

import (
	"context"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/plugbay/plugbay/pkg/errors"
	"github.com/plugbay/plugbay/pkg/fsutil"
	"github.com/plugbay/plugbay/pkg/hook"
	"github.com/plugbay/plugbay/pkg/logger"
	"github.com/plugbay/plugbay/pkg/model"
)

// ServerSource resolves deployment targets by id.
type ServerSource interface {
	Get(id string) (*model.Server, error)
}

// Deployer installs index entries onto servers.
type Deployer struct {
	servers ServerSource
	hooks   hook.Manager
}

// NewDeployer creates a deployer over the given server source and hook manager.
func NewDeployer(servers ServerSource, hooks hook.Manager) *Deployer {
	return &Deployer{servers: servers, hooks: hooks}
}

// Deploy copies the entry's archive into the server's plugin directory and
// returns the destination path. A same-named archive already in the directory
// is removed first; there is no atomic-replace guarantee beyond that. Unless
// force is set, the entry must claim the server's platform tag.
func (d *Deployer) Deploy(ctx context.Context, entry *model.IndexEntry, serverID string, force bool) (string, error) {
	srv, err := d.servers.Get(serverID)
	if err != nil {
		return "", err
	}

	if !force && !entry.Record.HasPlatform(srv.Platform) {
		return "", errors.Wrapf(ErrIncompatiblePlatform,
			"%s %s targets %v, server %s runs %s",
			entry.Record.Name, entry.Record.Version, entry.Record.Platforms, srv.ID, srv.Platform)
	}

	hookCtx := hook.Context{
		PluginName:    entry.Record.Name,
		PluginVersion: entry.Record.Version,
		ArchivePath:   entry.Path,
		ServerPath:    srv.Path,
	}
	if err := d.hooks.Execute(hook.PreDeploy, hookCtx); err != nil {
		return "", err
	}

	destPath := filepath.Join(srv.Path, entry.FileName())
	if err := fsutil.RemoveIfExists(destPath); err != nil {
		return "", err
	}
	if err := fsutil.CopyFile(entry.Path, destPath); err != nil {
		return "", err
	}

	logger.Info("deployed plugin", logrus.Fields{
		"plugin":  entry.Record.Name,
		"version": entry.Record.Version,
		"server":  srv.ID,
		"path":    destPath,
	})

	if err := d.hooks.Execute(hook.PostDeploy, hookCtx); err != nil {
		return destPath, err
	}
	return destPath, nil
}
