// Package config provides configuration management for the plugbay plugin
// manager. It handles loading, validating, and saving application settings
// from YAML configuration files and provides sensible defaults when no file
// is present.
package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/plugbay/plugbay/pkg/errors"
	"github.com/plugbay/plugbay/pkg/fsutil"
)

// Config represents the application configuration.
type Config struct {
	// General settings
	Settings Settings `yaml:"settings"`

	// Deploy hook scripts
	Hooks HooksConfig `yaml:"hooks,omitempty"`
}

// Settings represents general application settings.
type Settings struct {
	// StatePath is the JSON file holding libraries, servers and the
	// extraction cache. Empty means the platform default under the
	// user data directory.
	StatePath string `yaml:"state_path,omitempty"`

	// Output settings
	OutputFormat string `yaml:"output_format"` // text, json
	LogLevel     string `yaml:"log_level"`     // debug, info, warn, error
	NoColor      bool   `yaml:"no_color,omitempty"`
}

// HooksConfig holds paths to Tengo scripts run around deployments.
type HooksConfig struct {
	PreDeploy  string `yaml:"pre_deploy,omitempty"`
	PostDeploy string `yaml:"post_deploy,omitempty"`
}

// YAMLIndent is the number of spaces to use for YAML indentation.
const YAMLIndent = 2

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() *Config {
	statePath, err := fsutil.GetDefaultStatePath()
	if err != nil {
		// Fallback to the working directory if the user data dir is
		// unavailable
		statePath = "state.json"
	}

	return &Config{
		Settings: Settings{
			StatePath:    statePath,
			OutputFormat: "text",
			LogLevel:     "info",
		},
	}
}

// LoadConfig loads configuration from a file. A missing file yields the
// default configuration.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, errors.ErrEmptyConfigPath
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrInvalidConfigPath, err.Error())
	}

	file, err := os.Open(absPath)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, errors.Wrapf(err, "failed to open config file: %s", path)
	}
	defer func() { _ = file.Close() }()

	return LoadConfigFromReader(file)
}

// LoadConfigFromReader loads configuration from an io.Reader.
func LoadConfigFromReader(reader io.Reader) (*Config, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read config data")
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, errors.Wrap(errors.ErrConfigParse, err.Error())
	}

	config.applyDefaults()

	if err := config.Validate(); err != nil {
		return nil, errors.Wrap(errors.ErrConfigValidation, err.Error())
	}

	return &config, nil
}

// SaveConfig saves configuration to a file.
func (c *Config) SaveConfig(path string) error {
	if path == "" {
		return errors.ErrEmptyConfigPath
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return errors.Wrap(errors.ErrInvalidConfigPath, err.Error())
	}

	if err := os.MkdirAll(filepath.Dir(absPath), fsutil.DirModeDefault); err != nil {
		return errors.Wrap(errors.ErrConfigDirectory, err.Error())
	}

	// Write to a temp file and rename so a crash never leaves a
	// half-written config behind
	tempPath := absPath + ".tmp"
	file, err := os.OpenFile(tempPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, fsutil.FileModeDefault)
	if err != nil {
		return errors.Wrap(errors.ErrConfigFileCreate, err.Error())
	}

	encoder := yaml.NewEncoder(file)
	encoder.SetIndent(YAMLIndent)

	if err := encoder.Encode(c); err != nil {
		_ = file.Close()
		_ = os.Remove(tempPath)
		return errors.Wrap(errors.ErrConfigEncode, err.Error())
	}

	_ = encoder.Close()
	_ = file.Close()

	if err := os.Rename(tempPath, absPath); err != nil {
		_ = os.Remove(tempPath)
		return errors.Wrap(errors.ErrConfigFileRename, err.Error())
	}

	if err := os.Chmod(absPath, fsutil.FileModeDefault); err != nil {
		return errors.Wrap(errors.ErrConfigFileChmod, err.Error())
	}

	return nil
}

// ToYAML converts the config to YAML bytes.
func (c *Config) ToYAML() ([]byte, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, errors.Wrap(errors.ErrConfigMarshal, err.Error())
	}
	return data, nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c == nil {
		return errors.ErrConfigValidation
	}

	validFormats := map[string]bool{"text": true, "json": true}
	if !validFormats[c.Settings.OutputFormat] {
		return errors.ErrInvalidOutputFormatWithDetails(c.Settings.OutputFormat)
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[strings.ToLower(c.Settings.LogLevel)] {
		return errors.ErrInvalidLogLevelWithDetails(c.Settings.LogLevel)
	}

	return nil
}

// GetStatePath returns the configured state file path.
func (c *Config) GetStatePath() string {
	return c.Settings.StatePath
}

// GetDefaultConfigPath returns the default configuration file path.
func GetDefaultConfigPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user config directory: %w", err)
	}

	return filepath.Join(configDir, fsutil.AppName, "config.yaml"), nil
}

// applyDefaults fills in missing values with defaults.
func (c *Config) applyDefaults() {
	defaults := DefaultConfig()

	if c.Settings.StatePath == "" {
		c.Settings.StatePath = defaults.Settings.StatePath
	}
	if c.Settings.OutputFormat == "" {
		c.Settings.OutputFormat = defaults.Settings.OutputFormat
	}
	if c.Settings.LogLevel == "" {
		c.Settings.LogLevel = defaults.Settings.LogLevel
	}
}
