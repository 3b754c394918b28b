package cli

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/plugbay/plugbay/pkg/logger"
	"github.com/plugbay/plugbay/pkg/model"
	"github.com/plugbay/plugbay/pkg/resolve"
)

// Number of arguments expected by the deploy command.
const deployArgs = 2

// NewDeployCmd creates the deploy command.
func NewDeployCmd() *cobra.Command {
	var (
		version   string
		libraryID string
		force     bool
	)

	cmd := &cobra.Command{
		Use:   "deploy <plugin> <server>",
		Short: "Deploy a plugin to a server",
		Long: `Copy an indexed plugin archive into a server's plugin directory.

The plugin is matched by name across all libraries; without --version the
highest indexed version is deployed. A plugin that does not support the
server's platform is refused unless --force is given. A same-named archive
already in the plugin directory is replaced.`,
		Args: cobra.ExactArgs(deployArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDeploy(cmd, args[0], args[1], version, libraryID, force)
		},
	}

	cmd.Flags().StringVar(&version, "version", "", "Deploy this exact version instead of the highest")
	cmd.Flags().StringVar(&libraryID, "library", "", "Resolve the plugin from one library only")
	cmd.Flags().BoolVar(&force, "force", false, "Deploy even if the plugin does not support the server's platform")

	return cmd
}

func runDeploy(cmd *cobra.Command, pluginName, serverID, version, libraryID string, force bool) error {
	a, err := loadApp()
	if err != nil {
		return err
	}

	entry, err := resolvePlugin(a.resolver, pluginName, version, libraryID)
	if err != nil {
		return err
	}

	destPath, err := a.deployer.Deploy(cmd.Context(), entry, serverID, force)
	if err != nil {
		return fmt.Errorf("failed to deploy %s %s: %w", entry.Record.Name, entry.Record.Version, err)
	}

	logger.Debug("Deploy finished", logrus.Fields{"plugin": entry.Record.Name, "dest": destPath})
	fmt.Printf("Deployed %s %s to server '%s'\n", entry.Record.Name, entry.Record.Version, serverID)
	return nil
}

// resolvePlugin picks the index entry to deploy: exact name match, highest
// version unless one is requested.
func resolvePlugin(resolver *resolve.Resolver, pluginName, version, libraryID string) (*model.IndexEntry, error) {
	entries, err := resolver.Find(resolve.Filters{
		Name:      pluginName,
		Version:   version,
		LibraryID: libraryID,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to resolve plugin: %w", err)
	}

	var best *model.IndexEntry
	for _, entry := range entries {
		if !strings.EqualFold(entry.Record.Name, pluginName) {
			continue
		}
		if best == nil || resolve.CompareVersions(entry.Record.Version, best.Record.Version) > 0 {
			best = entry
		}
	}

	if best == nil {
		if version != "" {
			return nil, fmt.Errorf("no indexed plugin named %q with version %s", pluginName, version)
		}
		return nil, fmt.Errorf("no indexed plugin named %q", pluginName)
	}
	return best, nil
}
