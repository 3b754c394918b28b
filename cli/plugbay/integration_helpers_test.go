//go:build integration

package main

import (
	"archive/zip"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/plugbay/plugbay/pkg/config"
	"github.com/plugbay/plugbay/pkg/library"
	"github.com/plugbay/plugbay/pkg/store"
)

// writePluginJar creates a jar at dir/name containing the given entries.
func writePluginJar(t *testing.T, dir, name string, entries map[string]string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	file, err := os.Create(path)
	require.NoError(t, err)

	zw := zip.NewWriter(file)
	for entryName, content := range entries {
		w, err := zw.Create(entryName)
		require.NoError(t, err)
		_, err = w.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	require.NoError(t, file.Close())
	return path
}

// bukkitJarEntries returns jar entries for a plugin.yml plugin with a
// resolvable Bukkit main class.
func bukkitJarEntries(name, version string) map[string]string {
	return map[string]string{
		"plugin.yml": "name: " + name + "\nversion: \"" + version + "\"\nmain: com.example." + name + "\n",
		"com/example/" + name + ".class": "\xca\xfe\xba\xbe org/bukkit/plugin/java/JavaPlugin",
	}
}

// writeTempConfig writes a minimal config YAML pointing at its own state file.
func writeTempConfig(t *testing.T, dir string) string {
	t.Helper()
	cfgPath := filepath.Join(dir, "config.yaml")
	statePath := filepath.Join(dir, "state.json")

	yamlContent := `settings:
  state_path: ` + statePath + `
  log_level: error
`
	require.NoError(t, os.WriteFile(cfgPath, []byte(yamlContent), 0o600))
	return cfgPath
}

// runCLI executes the root command with the given args against cfgPath.
func runCLI(t *testing.T, cfgPath string, args ...string) error {
	t.Helper()
	cmd := newRootCmd()
	cmd.SetArgs(append([]string{"--config", cfgPath}, args...))
	return cmd.ExecuteContext(context.Background())
}

// loadLibraries reads the persisted libraries through the config at cfgPath.
func loadLibraries(t *testing.T, cfgPath string) []*libraryList {
	t.Helper()
	cfg, err := config.LoadConfig(cfgPath)
	require.NoError(t, err)

	mgr := library.NewManager(store.NewFileStore(cfg.GetStatePath()), nil)
	libs, err := mgr.List()
	require.NoError(t, err)

	out := make([]*libraryList, 0, len(libs))
	for _, lib := range libs {
		entries := make([]string, 0, len(lib.Entries))
		for _, e := range lib.Entries {
			entries = append(entries, e.Record.Name+"@"+e.Record.Version)
		}
		out = append(out, &libraryList{ID: lib.ID, Entries: entries})
	}
	return out
}

type libraryList struct {
	ID      string
	Entries []string
}
