package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/plugbay/plugbay/pkg/logger"
	"github.com/plugbay/plugbay/pkg/platform"
)

// Number of arguments expected by the server add command.
const serverAddArgs = 3

// NewServerCmd creates the server command with subcommands.
func NewServerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "server",
		Short: "Manage deployment targets",
		Long:  "Register, update and list the servers plugbay deploys plugins to.",
	}

	cmd.AddCommand(
		newServerAddCmd(),
		newServerRemoveCmd(),
		newServerListCmd(),
		newServerUpdateCmd(),
	)

	return cmd
}

func newServerAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <id> <path> <platform>",
		Short: "Register a server",
		Long: fmt.Sprintf(`Register a server as a deployment target.

The path is the server's plugin directory and must exist. The platform must
be one of: %s.`, strings.Join(platform.Names(), ", ")),
		Args: cobra.ExactArgs(serverAddArgs),
		RunE: func(_ *cobra.Command, args []string) error {
			return runServerAdd(args[0], args[1], args[2])
		},
	}

	return cmd
}

func newServerRemoveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "remove <id>",
		Short: "Remove a registered server",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runServerRemove(args[0])
		},
	}

	return cmd
}

func newServerListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List registered servers",
		RunE: func(*cobra.Command, []string) error {
			return runServerList()
		},
	}

	return cmd
}

func newServerUpdateCmd() *cobra.Command {
	var path string
	var platformName string

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a registered server",
		Long:  "Change the plugin directory or platform of a registered server.",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runServerUpdate(args[0], path, platformName)
		},
	}

	cmd.Flags().StringVar(&path, "path", "", "New plugin directory")
	cmd.Flags().StringVar(&platformName, "platform", "", "New platform tag")

	return cmd
}

func runServerAdd(id, path, platformName string) error {
	a, err := loadApp()
	if err != nil {
		return err
	}

	tag, err := platform.Parse(platformName)
	if err != nil {
		return err
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("invalid server path: %w", err)
	}

	srv, err := a.servers.Add(id, absPath, tag)
	if err != nil {
		return fmt.Errorf("failed to add server: %w", err)
	}

	logger.Info("Server registered", logrus.Fields{"id": srv.ID, "platform": srv.Platform, "path": srv.Path})
	fmt.Printf("Registered %s server '%s' at %s\n", srv.Platform, srv.ID, srv.Path)
	return nil
}

func runServerRemove(id string) error {
	a, err := loadApp()
	if err != nil {
		return err
	}

	if err := a.servers.Remove(id); err != nil {
		return fmt.Errorf("failed to remove server: %w", err)
	}

	fmt.Printf("Removed server '%s'\n", id)
	return nil
}

func runServerList() error {
	a, err := loadApp()
	if err != nil {
		return err
	}

	servers, err := a.servers.List()
	if err != nil {
		return fmt.Errorf("failed to list servers: %w", err)
	}

	if len(servers) == 0 {
		fmt.Println("No servers registered")
		return nil
	}

	fmt.Printf("%-20s %-12s %s\n", "ID", "PLATFORM", "PATH")
	fmt.Println(strings.Repeat("-", 60))
	for _, srv := range servers {
		fmt.Printf("%-20s %-12s %s\n", srv.ID, srv.Platform, srv.Path)
	}

	return nil
}

func runServerUpdate(id, path, platformName string) error {
	a, err := loadApp()
	if err != nil {
		return err
	}

	var tag platform.Tag
	if platformName != "" {
		tag, err = platform.Parse(platformName)
		if err != nil {
			return err
		}
	}

	if path != "" {
		path, err = filepath.Abs(path)
		if err != nil {
			return fmt.Errorf("invalid server path: %w", err)
		}
	}

	srv, err := a.servers.Update(id, path, tag)
	if err != nil {
		return fmt.Errorf("failed to update server: %w", err)
	}

	fmt.Printf("Updated server '%s' (%s, %s)\n", srv.ID, srv.Platform, srv.Path)
	return nil
}
