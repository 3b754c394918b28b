// Package model provides the data structures shared across the plugbay
// libraries: extracted plugin metadata, index entries, libraries, and servers.
package model

import (
	"path/filepath"

	"github.com/hashicorp/go-version"

	"github.com/plugbay/plugbay/pkg/platform"
)

// ArchiveRecord is the metadata extracted for one platform-specific descriptor
// found inside a plugin archive. An archive may produce several records (one
// jar can ship descriptors for more than one platform) or none at all.
type ArchiveRecord struct {
	Name        string         `json:"name"`
	Version     string         `json:"version"`
	Description string         `json:"description,omitempty"`
	Authors     []string       `json:"authors,omitempty"`
	LoadBefore  []string       `json:"load_before,omitempty"`
	SoftDepend  []string       `json:"soft_depend,omitempty"`
	Platforms   []platform.Tag `json:"platforms"`
}

// HasPlatform reports whether the record claims compatibility with the tag.
func (r *ArchiveRecord) HasPlatform(tag platform.Tag) bool {
	return platform.Contains(r.Platforms, tag)
}

// GetVersion returns the parsed version of this record, or nil if the version
// string cannot be coerced into a structured version.
func (r *ArchiveRecord) GetVersion() *version.Version {
	v, err := version.NewVersion(r.Version)
	if err != nil {
		return nil
	}
	return v
}

// IndexEntry is one archive record as known to a library index. The index is
// flattened: an archive whose extraction yielded several records appears as
// several entries sharing the same hash and path.
type IndexEntry struct {
	Hash   string        `json:"hash"`
	Path   string        `json:"path"`
	Record ArchiveRecord `json:"record"`
}

// FileName returns the base name of the entry's archive file.
func (e *IndexEntry) FileName() string {
	return filepath.Base(e.Path)
}

// Library is a directory of plugin archives plus its persisted index.
type Library struct {
	ID      string        `json:"id"`
	Path    string        `json:"path"`
	Entries []*IndexEntry `json:"entries"`
}

// Server is a deployment target: a plugin directory plus the platform the
// server runs.
type Server struct {
	ID       string       `json:"id"`
	Path     string       `json:"path"`
	Platform platform.Tag `json:"platform"`
}

// CacheEntry is the memoized extraction result for one archive path.
type CacheEntry struct {
	Hash    string          `json:"hash"`
	Records []ArchiveRecord `json:"records"`
}
