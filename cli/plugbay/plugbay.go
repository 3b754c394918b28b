package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/plugbay/plugbay/internal/cli"
)

var (
	configPath   string
	verbose      bool
	noColor      bool
	outputFormat string
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	rootCmd := newRootCmd()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		cancel()
		os.Exit(1)
	}

	cancel()
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plugbay",
		Short: "A local plugin manager for Minecraft servers",
		Long: `plugbay manages plugin archives across local libraries and servers:
- library: register directories of plugin jars
- index: read plugin descriptors and build a searchable index
- search: query indexed plugins by name, version and platform
- deploy: copy a plugin into a server's plugin directory`,
		SilenceUsage: true,
	}

	// Global flags
	cmd.PersistentFlags().StringVar(&configPath, "config", "", "config file path (default: auto-detect)")
	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
	cmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", "", "output format (text, json)")

	// Set up CLI pkg variables
	cli.ConfigPath = &configPath
	cli.Verbose = &verbose
	cli.NoColor = &noColor
	cli.OutputFormat = &outputFormat

	// Add subcommands
	cmd.AddCommand(
		cli.NewLibraryCmd(),
		cli.NewServerCmd(),
		cli.NewIndexCmd(),
		cli.NewSearchCmd(),
		cli.NewDeployCmd(),
		cli.NewConfigCmd(),
		cli.NewVersionCmd(),
	)

	return cmd
}
