package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStoreRoundTrip(t *testing.T) {
	statePath := filepath.Join(t.TempDir(), "state.json")
	s := NewFileStore(statePath)

	t.Run("absent key", func(t *testing.T) {
		_, ok, err := s.GetItem("missing")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("set and get", func(t *testing.T) {
		require.NoError(t, s.SetItem(KeyLibraries, `{"main":{"id":"main"}}`))

		value, ok, err := s.GetItem(KeyLibraries)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.JSONEq(t, `{"main":{"id":"main"}}`, value)
	})

	t.Run("overwrite", func(t *testing.T) {
		require.NoError(t, s.SetItem(KeyLibraries, `{}`))

		value, ok, err := s.GetItem(KeyLibraries)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.JSONEq(t, `{}`, value)
	})

	t.Run("keys are independent", func(t *testing.T) {
		require.NoError(t, s.SetItem(KeyCache, `{"a":1}`))

		value, ok, err := s.GetItem(KeyLibraries)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.JSONEq(t, `{}`, value)

		value, ok, err = s.GetItem(KeyCache)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.JSONEq(t, `{"a":1}`, value)
	})
}

func TestFileStoreDurability(t *testing.T) {
	statePath := filepath.Join(t.TempDir(), "state.json")

	first := NewFileStore(statePath)
	require.NoError(t, first.SetItem(KeyServers, `{"lobby":{"id":"lobby"}}`))

	// A fresh store over the same file sees the previous write.
	second := NewFileStore(statePath)
	value, ok, err := second.GetItem(KeyServers)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.JSONEq(t, `{"lobby":{"id":"lobby"}}`, value)
}

func TestFileStoreCreatesParentDir(t *testing.T) {
	statePath := filepath.Join(t.TempDir(), "nested", "dir", "state.json")
	s := NewFileStore(statePath)

	require.NoError(t, s.SetItem("k", `"v"`))

	_, err := os.Stat(statePath)
	assert.NoError(t, err)
}

func TestFileStoreCorruptState(t *testing.T) {
	statePath := filepath.Join(t.TempDir(), "state.json")
	require.NoError(t, os.WriteFile(statePath, []byte("not json"), 0644))

	s := NewFileStore(statePath)
	_, _, err := s.GetItem("k")
	assert.Error(t, err)
}
