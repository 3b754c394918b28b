package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/plugbay/plugbay/pkg/logger"
)

// NewLibraryCmd creates the library command with subcommands.
func NewLibraryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "library",
		Short: "Manage plugin libraries",
		Long:  "Register, remove and list the directories plugbay indexes plugin archives from.",
	}

	cmd.AddCommand(
		newLibraryAddCmd(),
		newLibraryRemoveCmd(),
		newLibraryListCmd(),
	)

	return cmd
}

func newLibraryAddCmd() *cobra.Command {
	var id string

	cmd := &cobra.Command{
		Use:   "add <path>",
		Short: "Register a directory as a plugin library",
		Long: `Register a directory as a plugin library.

The directory must exist. The library id defaults to the directory's base
name; pass --id to choose a different one. Run 'plugbay index <id>' afterwards
to build the archive index.`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runLibraryAdd(id, args[0])
		},
	}

	cmd.Flags().StringVar(&id, "id", "", "Library id (default: directory base name)")

	return cmd
}

func newLibraryRemoveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "remove <id>",
		Short: "Remove a registered library",
		Long:  "Remove a library registration and its index. Archive files on disk are left untouched.",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runLibraryRemove(args[0])
		},
	}

	return cmd
}

func newLibraryListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List registered libraries",
		RunE: func(*cobra.Command, []string) error {
			return runLibraryList()
		},
	}

	return cmd
}

func runLibraryAdd(id, path string) error {
	a, err := loadApp()
	if err != nil {
		return err
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("invalid library path: %w", err)
	}
	if id == "" {
		id = filepath.Base(absPath)
	}

	lib, err := a.libraries.Add(id, absPath)
	if err != nil {
		return fmt.Errorf("failed to add library: %w", err)
	}

	logger.Info("Library registered", logrus.Fields{"id": lib.ID, "path": lib.Path})
	fmt.Printf("Registered library '%s' at %s\n", lib.ID, lib.Path)
	fmt.Printf("Run 'plugbay index %s' to index its archives\n", lib.ID)
	return nil
}

func runLibraryRemove(id string) error {
	a, err := loadApp()
	if err != nil {
		return err
	}

	if err := a.libraries.Remove(id); err != nil {
		return fmt.Errorf("failed to remove library: %w", err)
	}

	fmt.Printf("Removed library '%s'\n", id)
	return nil
}

func runLibraryList() error {
	a, err := loadApp()
	if err != nil {
		return err
	}

	libs, err := a.libraries.List()
	if err != nil {
		return fmt.Errorf("failed to list libraries: %w", err)
	}

	if len(libs) == 0 {
		fmt.Println("No libraries registered")
		return nil
	}

	fmt.Printf("%-20s %-8s %s\n", "ID", "PLUGINS", "PATH")
	fmt.Println(strings.Repeat("-", 60))
	for _, lib := range libs {
		fmt.Printf("%-20s %-8d %s\n", lib.ID, len(lib.Entries), lib.Path)
	}

	return nil
}
