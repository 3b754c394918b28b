package cli

import (
	"fmt"

	"github.com/plugbay/plugbay/pkg/archive"
	"github.com/plugbay/plugbay/pkg/cache"
	"github.com/plugbay/plugbay/pkg/config"
	"github.com/plugbay/plugbay/pkg/deploy"
	"github.com/plugbay/plugbay/pkg/descriptor"
	"github.com/plugbay/plugbay/pkg/hook"
	"github.com/plugbay/plugbay/pkg/library"
	"github.com/plugbay/plugbay/pkg/logger"
	"github.com/plugbay/plugbay/pkg/resolve"
	"github.com/plugbay/plugbay/pkg/server"
	"github.com/plugbay/plugbay/pkg/store"
)

// These variables will be set by the main package
var (
	ConfigPath   *string
	Verbose      *bool
	NoColor      *bool
	OutputFormat *string
)

// app bundles the managers a command needs, all sharing one state store.
type app struct {
	config    *config.Config
	libraries *library.Manager
	servers   *server.Manager
	resolver  *resolve.Resolver
	hooks     *hook.DefaultManager
	deployer  *deploy.Deployer
}

// loadConfig loads the configuration, honoring the global CLI flags.
func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadConfig(getConfigPath())
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if OutputFormat != nil && *OutputFormat != "" {
		cfg.Settings.OutputFormat = *OutputFormat
	}
	if NoColor != nil && *NoColor {
		cfg.Settings.NoColor = true
	}
	if Verbose != nil && *Verbose {
		cfg.Settings.LogLevel = "debug"
	}

	logger.InitLogger(cfg.Settings.LogLevel, cfg.Settings.NoColor)

	return cfg, nil
}

// loadApp wires the managers over the configured state file.
func loadApp() (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	st := store.NewFileStore(cfg.GetStatePath())
	extractor := descriptor.NewExtractor(archive.NewReader())
	records := cache.NewManager(st, extractor)
	libraries := library.NewManager(st, records)
	servers := server.NewManager(st)

	hooks := hook.NewManager()
	if cfg.Hooks.PreDeploy != "" {
		if err := hooks.LoadHookFile(hook.PreDeploy, cfg.Hooks.PreDeploy); err != nil {
			return nil, fmt.Errorf("failed to load pre-deploy hook: %w", err)
		}
	}
	if cfg.Hooks.PostDeploy != "" {
		if err := hooks.LoadHookFile(hook.PostDeploy, cfg.Hooks.PostDeploy); err != nil {
			return nil, fmt.Errorf("failed to load post-deploy hook: %w", err)
		}
	}

	return &app{
		config:    cfg,
		libraries: libraries,
		servers:   servers,
		resolver:  resolve.NewResolver(libraries),
		hooks:     hooks,
		deployer:  deploy.NewDeployer(servers, hooks),
	}, nil
}

func getConfigPath() string {
	if ConfigPath != nil && *ConfigPath != "" {
		return *ConfigPath
	}

	defaultPath, err := config.GetDefaultConfigPath()
	if err != nil {
		logger.Warn("Failed to get default config path, using config.yaml in the working directory")
		return "config.yaml"
	}
	return defaultPath
}
