// Package resolve answers queries over the persisted library indexes:
// filtered search and latest-version selection.
package resolve

import (
	"strings"

	"github.com/plugbay/plugbay/pkg/model"
	"github.com/plugbay/plugbay/pkg/platform"
)

// LibrarySource provides access to the indexed libraries.
type LibrarySource interface {
	Get(id string) (*model.Library, error)
	List() ([]*model.Library, error)
}

// Filters narrow a search. All fields are optional and compose independently.
type Filters struct {
	// Name matches entries whose plugin name contains it, case-insensitively.
	Name string

	// Version matches exactly.
	Version string

	// Platform requires the entry's platform set to include this tag.
	Platform platform.Tag

	// LibraryID restricts the search to one library.
	LibraryID string

	// Latest reduces same-named results to the single highest version per
	// name and platform set.
	Latest bool
}

// Resolver filters and reduces index entries.
type Resolver struct {
	libraries LibrarySource
}

// NewResolver creates a resolver over the given library source.
func NewResolver(libraries LibrarySource) *Resolver {
	return &Resolver{libraries: libraries}
}

// Find returns the index entries matching the filters, in index order.
// An unknown LibraryID surfaces the library source's not-found error.
func (r *Resolver) Find(filters Filters) ([]*model.IndexEntry, error) {
	var libs []*model.Library
	if filters.LibraryID != "" {
		lib, err := r.libraries.Get(filters.LibraryID)
		if err != nil {
			return nil, err
		}
		libs = []*model.Library{lib}
	} else {
		all, err := r.libraries.List()
		if err != nil {
			return nil, err
		}
		libs = all
	}

	matched := make([]*model.IndexEntry, 0)
	for _, lib := range libs {
		for _, entry := range lib.Entries {
			if matches(entry, filters) {
				matched = append(matched, entry)
			}
		}
	}

	if filters.Latest {
		matched = reduceLatest(matched)
	}
	return matched, nil
}

func matches(entry *model.IndexEntry, filters Filters) bool {
	if filters.Name != "" && !strings.Contains(strings.ToLower(entry.Record.Name), strings.ToLower(filters.Name)) {
		return false
	}
	if filters.Version != "" && entry.Record.Version != filters.Version {
		return false
	}
	if filters.Platform != "" && !entry.Record.HasPlatform(filters.Platform) {
		return false
	}
	return true
}

// reduceLatest keeps the highest-versioned entry per plugin name and platform
// set. Entries for the same name on different platform sets are distinct
// results. An entry only displaces the held one when strictly newer, so ties
// preserve input order.
func reduceLatest(entries []*model.IndexEntry) []*model.IndexEntry {
	type group struct {
		entry *model.IndexEntry
		pos   int
	}

	groups := make(map[string]*group)
	order := make([]string, 0, len(entries))

	for _, entry := range entries {
		key := strings.ToLower(entry.Record.Name) + "|" + platform.Key(entry.Record.Platforms)
		held, ok := groups[key]
		if !ok {
			groups[key] = &group{entry: entry, pos: len(order)}
			order = append(order, key)
			continue
		}
		if CompareVersions(entry.Record.Version, held.entry.Record.Version) > 0 {
			held.entry = entry
		}
	}

	reduced := make([]*model.IndexEntry, 0, len(order))
	for _, key := range order {
		reduced = append(reduced, groups[key].entry)
	}
	return reduced
}
