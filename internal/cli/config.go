package cli

import (
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/plugbay/plugbay/pkg/config"
	"github.com/plugbay/plugbay/pkg/logger"
)

// NewConfigCmd creates the config command with subcommands.
func NewConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage configuration",
		Long:  "View and modify plugbay configuration settings",
	}

	cmd.AddCommand(
		newConfigShowCmd(),
		newConfigSetCmd(),
		newConfigGetCmd(),
		newConfigInitCmd(),
	)

	return cmd
}

func newConfigShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		RunE:  runConfigShow,
	}

	return cmd
}

// Number of arguments expected by the set command.
const setCommandArgs = 2

func newConfigSetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set KEY VALUE",
		Short: "Set a configuration value",
		Args:  cobra.ExactArgs(setCommandArgs),
		RunE: func(_ *cobra.Command, args []string) error {
			return runConfigSet(args[0], args[1])
		},
	}

	return cmd
}

func newConfigGetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "get KEY",
		Short: "Get a configuration value",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runConfigGet(args[0])
		},
	}

	return cmd
}

func newConfigInitCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize configuration file",
		Long:  "Create a default configuration file",
		RunE: func(_ *cobra.Command, _ []string) error {
			return runConfigInit(force)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite existing configuration file")

	return cmd
}

func runConfigShow(*cobra.Command, []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	tabWriter := tabwriter.NewWriter(os.Stdout, 0, 0, TabWidth, ' ', 0)
	_, _ = fmt.Fprintln(tabWriter, "SETTING\tVALUE")
	_, _ = fmt.Fprintln(tabWriter, "-------\t-----")
	for _, key := range configKeys {
		value, _ := getConfigValue(cfg, key)
		_, _ = fmt.Fprintf(tabWriter, "%s\t%s\n", key, value)
	}
	_ = tabWriter.Flush()

	return nil
}

func runConfigSet(key, value string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if err := setConfigValue(cfg, key, value); err != nil {
		return fmt.Errorf("failed to set configuration value: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration value: %w", err)
	}

	if err := cfg.SaveConfig(getConfigPath()); err != nil {
		return fmt.Errorf("failed to save configuration: %w", err)
	}

	logger.Info("Configuration updated", logrus.Fields{"key": key, "value": value})
	return nil
}

func runConfigGet(key string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	value, err := getConfigValue(cfg, key)
	if err != nil {
		return fmt.Errorf("failed to get configuration value: %w", err)
	}

	fmt.Println(value)
	return nil
}

func runConfigInit(force bool) error {
	configPath := getConfigPath()

	if _, err := os.Stat(configPath); err == nil && !force {
		return fmt.Errorf("configuration file already exists at %s (use --force to overwrite)", configPath)
	}

	defaultConfig := config.DefaultConfig()
	if err := defaultConfig.SaveConfig(configPath); err != nil {
		return fmt.Errorf("failed to save default configuration: %w", err)
	}

	logger.Info("Configuration file created", logrus.Fields{"path": configPath})
	return nil
}

// configKeys lists the keys the get/set/show commands understand.
var configKeys = []string{
	"state_path",
	"output_format",
	"log_level",
	"no_color",
	"hooks.pre_deploy",
	"hooks.post_deploy",
}

func getConfigValue(cfg *config.Config, key string) (string, error) {
	switch key {
	case "state_path":
		return cfg.Settings.StatePath, nil
	case "output_format":
		return cfg.Settings.OutputFormat, nil
	case "log_level":
		return cfg.Settings.LogLevel, nil
	case "no_color":
		return strconv.FormatBool(cfg.Settings.NoColor), nil
	case "hooks.pre_deploy":
		return cfg.Hooks.PreDeploy, nil
	case "hooks.post_deploy":
		return cfg.Hooks.PostDeploy, nil
	default:
		return "", fmt.Errorf("unknown configuration key %q", key)
	}
}

func setConfigValue(cfg *config.Config, key, value string) error {
	switch key {
	case "state_path":
		cfg.Settings.StatePath = value
	case "output_format":
		cfg.Settings.OutputFormat = value
	case "log_level":
		cfg.Settings.LogLevel = value
	case "no_color":
		parsed, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("no_color expects a boolean: %w", err)
		}
		cfg.Settings.NoColor = parsed
	case "hooks.pre_deploy":
		cfg.Hooks.PreDeploy = value
	case "hooks.post_deploy":
		cfg.Hooks.PostDeploy = value
	default:
		return fmt.Errorf("unknown configuration key %q", key)
	}
	return nil
}
