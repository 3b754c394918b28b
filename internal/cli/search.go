package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/plugbay/plugbay/pkg/model"
	"github.com/plugbay/plugbay/pkg/platform"
	"github.com/plugbay/plugbay/pkg/resolve"
)

// NewSearchCmd creates the search command.
func NewSearchCmd() *cobra.Command {
	var (
		name         string
		version      string
		platformName string
		libraryID    string
		latest       bool
	)

	cmd := &cobra.Command{
		Use:   "search",
		Short: "Search indexed plugins",
		Long: `Search the plugin indexes of the registered libraries.

All filters are optional and combine. --name matches case-insensitive
substrings, --version matches exactly, --platform requires the plugin to
support the given platform, and --library restricts the search to one
library. With --latest, only the highest version of each plugin is shown.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runSearch(name, version, platformName, libraryID, latest)
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Filter by plugin name (partial match)")
	cmd.Flags().StringVar(&version, "version", "", "Filter by exact version")
	cmd.Flags().StringVar(&platformName, "platform", "", "Filter by supported platform")
	cmd.Flags().StringVar(&libraryID, "library", "", "Restrict the search to one library")
	cmd.Flags().BoolVar(&latest, "latest", false, "Show only the highest version of each plugin")

	return cmd
}

func runSearch(name, version, platformName, libraryID string, latest bool) error {
	a, err := loadApp()
	if err != nil {
		return err
	}

	filters := resolve.Filters{
		Name:      name,
		Version:   version,
		LibraryID: libraryID,
		Latest:    latest,
	}
	if platformName != "" {
		tag, err := platform.Parse(platformName)
		if err != nil {
			return err
		}
		filters.Platform = tag
	}

	entries, err := a.resolver.Find(filters)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if a.config.Settings.OutputFormat == "json" {
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", strings.Repeat(" ", TabWidth))
		return encoder.Encode(entries)
	}

	if len(entries) == 0 {
		fmt.Println("No plugins found")
		return nil
	}

	printEntryTable(entries)
	fmt.Printf("\nFound %d plugin(s)\n", len(entries))
	return nil
}

func printEntryTable(entries []*model.IndexEntry) {
	fmt.Printf("%-25s %-15s %-28s %s\n", "PLUGIN", "VERSION", "PLATFORMS", "DESCRIPTION")
	fmt.Println(strings.Repeat("-", 100))

	for _, entry := range entries {
		description := entry.Record.Description
		if len(description) > MaxDescriptionLength {
			description = description[:MaxDescriptionLength-3] + "..."
		}

		fmt.Printf("%-25s %-15s %-28s %s\n",
			entry.Record.Name,
			entry.Record.Version,
			platform.Key(entry.Record.Platforms),
			description)
	}
}
