package library

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/plugbay/plugbay/pkg/cache"
	"github.com/plugbay/plugbay/pkg/cache/mocks"
	"github.com/plugbay/plugbay/pkg/model"
	"github.com/plugbay/plugbay/pkg/platform"
	"github.com/plugbay/plugbay/pkg/store"
)

func newTestManager(t *testing.T) (*Manager, *mocks.MockExtractor) {
	t.Helper()

	ctrl := gomock.NewController(t)
	extractor := mocks.NewMockExtractor(ctrl)
	st := store.NewFileStore(filepath.Join(t.TempDir(), "state.json"))
	return NewManager(st, cache.NewManager(st, extractor)), extractor
}

func writeJar(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func bukkitRecord(name, version string) model.ArchiveRecord {
	return model.ArchiveRecord{
		Name:      name,
		Version:   version,
		Platforms: []platform.Tag{platform.Bukkit},
	}
}

func TestAdd(t *testing.T) {
	mgr, _ := newTestManager(t)
	dir := t.TempDir()

	t.Run("registers a directory", func(t *testing.T) {
		lib, err := mgr.Add("main", dir)
		require.NoError(t, err)
		assert.Equal(t, "main", lib.ID)
		assert.Equal(t, dir, lib.Path)
		assert.Empty(t, lib.Entries)
	})

	t.Run("duplicate id", func(t *testing.T) {
		_, err := mgr.Add("main", dir)
		assert.ErrorIs(t, err, ErrLibraryExists)
	})

	t.Run("missing path", func(t *testing.T) {
		_, err := mgr.Add("other", filepath.Join(dir, "nope"))
		assert.Error(t, err)
	})

	t.Run("path is a file", func(t *testing.T) {
		filePath := writeJar(t, dir, "some.jar", "bytes")
		_, err := mgr.Add("other", filePath)
		assert.Error(t, err)
	})
}

func TestRemove(t *testing.T) {
	mgr, _ := newTestManager(t)

	_, err := mgr.Add("main", t.TempDir())
	require.NoError(t, err)

	require.NoError(t, mgr.Remove("main"))
	_, err = mgr.Get("main")
	assert.ErrorIs(t, err, ErrLibraryNotFound)

	assert.ErrorIs(t, mgr.Remove("main"), ErrLibraryNotFound)
}

func TestReindexUnknownLibrary(t *testing.T) {
	mgr, _ := newTestManager(t)

	_, err := mgr.Reindex(context.Background(), "ghost", false)
	assert.ErrorIs(t, err, ErrLibraryNotFound)
}

func TestReindexFlattensRecords(t *testing.T) {
	mgr, extractor := newTestManager(t)
	ctx := context.Background()
	dir := t.TempDir()

	jarPath := writeJar(t, dir, "bridge.jar", "bridge bytes")
	_, err := mgr.Add("main", dir)
	require.NoError(t, err)

	// One archive that is both a Velocity and a Bukkit plugin.
	extractor.EXPECT().Extract(ctx, jarPath).Return([]model.ArchiveRecord{
		{Name: "Bridge", Version: "3.1.0", Platforms: []platform.Tag{platform.Velocity}},
		{Name: "Bridge", Version: "3.1.0", Platforms: []platform.Tag{platform.Bukkit}},
	}, nil)

	lib, err := mgr.Reindex(ctx, "main", false)
	require.NoError(t, err)
	require.Len(t, lib.Entries, 2)
	assert.Equal(t, lib.Entries[0].Hash, lib.Entries[1].Hash)
	assert.Equal(t, jarPath, lib.Entries[0].Path)
	assert.Equal(t, jarPath, lib.Entries[1].Path)
	assert.NotEqual(t, lib.Entries[0].Record.Platforms, lib.Entries[1].Record.Platforms)
}

func TestReindexIncrementalIsIdempotent(t *testing.T) {
	mgr, extractor := newTestManager(t)
	ctx := context.Background()
	dir := t.TempDir()

	jarA := writeJar(t, dir, "a.jar", "content a")
	jarB := writeJar(t, dir, "b.jar", "content b")
	_, err := mgr.Add("main", dir)
	require.NoError(t, err)

	// Extraction runs once per archive; the second reindex retains everything.
	extractor.EXPECT().Extract(ctx, jarA).Return([]model.ArchiveRecord{bukkitRecord("Alpha", "1.0")}, nil).Times(1)
	extractor.EXPECT().Extract(ctx, jarB).Return([]model.ArchiveRecord{bukkitRecord("Beta", "2.0")}, nil).Times(1)

	first, err := mgr.Reindex(ctx, "main", false)
	require.NoError(t, err)
	second, err := mgr.Reindex(ctx, "main", false)
	require.NoError(t, err)

	assert.Equal(t, first.Entries, second.Entries)
}

func TestReindexRebuildAlwaysReextracts(t *testing.T) {
	mgr, extractor := newTestManager(t)
	ctx := context.Background()
	dir := t.TempDir()

	jarPath := writeJar(t, dir, "a.jar", "content a")
	_, err := mgr.Add("main", dir)
	require.NoError(t, err)

	// Two rebuilds over unchanged content still extract twice.
	extractor.EXPECT().Extract(ctx, jarPath).Return([]model.ArchiveRecord{bukkitRecord("Alpha", "1.0")}, nil).Times(2)

	_, err = mgr.Reindex(ctx, "main", true)
	require.NoError(t, err)
	_, err = mgr.Reindex(ctx, "main", true)
	require.NoError(t, err)
}

func TestReindexDropsRemovedArchive(t *testing.T) {
	mgr, extractor := newTestManager(t)
	ctx := context.Background()
	dir := t.TempDir()

	jarA := writeJar(t, dir, "a.jar", "content a")
	jarB := writeJar(t, dir, "b.jar", "content b")
	_, err := mgr.Add("main", dir)
	require.NoError(t, err)

	extractor.EXPECT().Extract(ctx, jarA).Return([]model.ArchiveRecord{bukkitRecord("Alpha", "1.0")}, nil)
	extractor.EXPECT().Extract(ctx, jarB).Return([]model.ArchiveRecord{bukkitRecord("Beta", "2.0")}, nil)

	lib, err := mgr.Reindex(ctx, "main", false)
	require.NoError(t, err)
	require.Len(t, lib.Entries, 2)

	// The entry dies with the file even though its hash is still known.
	require.NoError(t, os.Remove(jarB))

	lib, err = mgr.Reindex(ctx, "main", false)
	require.NoError(t, err)
	require.Len(t, lib.Entries, 1)
	assert.Equal(t, "Alpha", lib.Entries[0].Record.Name)
}

func TestReindexRenamedArchiveGetsFreshEntry(t *testing.T) {
	mgr, extractor := newTestManager(t)
	ctx := context.Background()
	dir := t.TempDir()

	oldPath := writeJar(t, dir, "old-name.jar", "identical bytes")
	_, err := mgr.Add("main", dir)
	require.NoError(t, err)

	record := []model.ArchiveRecord{bukkitRecord("Gamma", "1.0")}
	newPath := filepath.Join(dir, "new-name.jar")

	gomock.InOrder(
		extractor.EXPECT().Extract(ctx, oldPath).Return(record, nil),
		extractor.EXPECT().Extract(ctx, newPath).Return(record, nil),
	)

	lib, err := mgr.Reindex(ctx, "main", false)
	require.NoError(t, err)
	require.Len(t, lib.Entries, 1)
	oldHash := lib.Entries[0].Hash

	// Same bytes under a new filename: membership is per path, so the old
	// entry is dropped and a new one is created.
	require.NoError(t, os.Rename(oldPath, newPath))

	lib, err = mgr.Reindex(ctx, "main", false)
	require.NoError(t, err)
	require.Len(t, lib.Entries, 1)
	assert.Equal(t, newPath, lib.Entries[0].Path)
	assert.Equal(t, oldHash, lib.Entries[0].Hash)
}

func TestReindexChangedContentReextracts(t *testing.T) {
	mgr, extractor := newTestManager(t)
	ctx := context.Background()
	dir := t.TempDir()

	jarPath := writeJar(t, dir, "a.jar", "version one")
	_, err := mgr.Add("main", dir)
	require.NoError(t, err)

	gomock.InOrder(
		extractor.EXPECT().Extract(ctx, jarPath).Return([]model.ArchiveRecord{bukkitRecord("Alpha", "1.0")}, nil),
		extractor.EXPECT().Extract(ctx, jarPath).Return([]model.ArchiveRecord{bukkitRecord("Alpha", "2.0")}, nil),
	)

	_, err = mgr.Reindex(ctx, "main", false)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(jarPath, []byte("version two"), 0644))

	lib, err := mgr.Reindex(ctx, "main", false)
	require.NoError(t, err)
	require.Len(t, lib.Entries, 1)
	assert.Equal(t, "2.0", lib.Entries[0].Record.Version)
}

func TestReindexSkipsFailingArchive(t *testing.T) {
	mgr, extractor := newTestManager(t)
	ctx := context.Background()
	dir := t.TempDir()

	jarBad := writeJar(t, dir, "bad.jar", "corrupt")
	jarGood := writeJar(t, dir, "good.jar", "fine")
	_, err := mgr.Add("main", dir)
	require.NoError(t, err)

	extractor.EXPECT().Extract(ctx, jarBad).Return(nil, errors.New("corrupt archive"))
	extractor.EXPECT().Extract(ctx, jarGood).Return([]model.ArchiveRecord{bukkitRecord("Good", "1.0")}, nil)

	lib, err := mgr.Reindex(ctx, "main", false)
	require.NoError(t, err)
	require.Len(t, lib.Entries, 1)
	assert.Equal(t, "Good", lib.Entries[0].Record.Name)
}

func TestReindexIgnoresNonArchives(t *testing.T) {
	mgr, extractor := newTestManager(t)
	ctx := context.Background()
	dir := t.TempDir()

	jarPath := writeJar(t, dir, "a.jar", "content")
	writeJar(t, dir, "readme.txt", "not a jar")
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "sub"), 0755))
	writeJar(t, filepath.Join(dir, "sub"), "nested.jar", "not scanned")

	_, err := mgr.Add("main", dir)
	require.NoError(t, err)

	extractor.EXPECT().Extract(ctx, jarPath).Return([]model.ArchiveRecord{bukkitRecord("Alpha", "1.0")}, nil)

	lib, err := mgr.Reindex(ctx, "main", false)
	require.NoError(t, err)
	require.Len(t, lib.Entries, 1)
	assert.Equal(t, jarPath, lib.Entries[0].Path)
}

func TestReindexZeroRecordArchive(t *testing.T) {
	mgr, extractor := newTestManager(t)
	ctx := context.Background()
	dir := t.TempDir()

	jarPath := writeJar(t, dir, "plain.jar", "no descriptors")
	_, err := mgr.Add("main", dir)
	require.NoError(t, err)

	extractor.EXPECT().Extract(ctx, jarPath).Return([]model.ArchiveRecord{}, nil)

	lib, err := mgr.Reindex(ctx, "main", false)
	require.NoError(t, err)
	assert.Empty(t, lib.Entries)
}
