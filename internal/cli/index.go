package cli

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/plugbay/plugbay/pkg/logger"
)

// NewIndexCmd creates the index command.
func NewIndexCmd() *cobra.Command {
	var rebuild bool

	cmd := &cobra.Command{
		Use:   "index <library-id>",
		Short: "Index a library's plugin archives",
		Long: `Scan a library directory and rebuild its plugin index.

Archives whose path and content are unchanged since the last run keep their
existing index entries; only new or modified archives are read. Pass --rebuild
to re-read every archive, bypassing the extraction cache.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runIndex(cmd, args[0], rebuild)
		},
	}

	cmd.Flags().BoolVar(&rebuild, "rebuild", false, "Re-read every archive, ignoring cached extraction results")

	return cmd
}

func runIndex(cmd *cobra.Command, id string, rebuild bool) error {
	a, err := loadApp()
	if err != nil {
		return err
	}

	lib, err := a.libraries.Reindex(cmd.Context(), id, rebuild)
	if err != nil {
		return fmt.Errorf("failed to index library: %w", err)
	}

	logger.Debug("Index updated", logrus.Fields{"library": lib.ID, "entries": len(lib.Entries)})
	fmt.Printf("Indexed library '%s': %d plugin(s)\n", lib.ID, len(lib.Entries))
	return nil
}
