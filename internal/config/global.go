package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

const (
	// ConfigFile is the config file name under the app directory.
	ConfigFile = "config.yml"
	// EnvPrefix prefixes every environment override, e.g. CITEMATCH_THRESHOLD.
	EnvPrefix = "CITEMATCH"
)

// DotEnvFile is loaded into the environment before overrides are applied.
// A missing file is ignored.
var DotEnvFile = ".env"

// globalConfigCache caches the config loaded from the default path.
var globalConfigCache *Config

// GlobalConfigPath returns the path to the global config file.
// Respects XDG_CONFIG_HOME, defaults to ~/.config/citematch/config.yml.
func GlobalConfigPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, AppDir, ConfigFile)
}

// Load builds the effective configuration. An empty path selects the
// global config file; a missing file at the default path is not an error.
func Load(path string) (*Config, error) {
	useDefault := path == ""
	if useDefault && globalConfigCache != nil {
		return globalConfigCache, nil
	}
	if useDefault {
		path = GlobalConfigPath()
	}

	cfg := Default()
	if path != "" {
		if err := readFile(ExpandPath(path), &cfg, useDefault); err != nil {
			return nil, err
		}
	}

	if err := godotenv.Load(DotEnvFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("loading %s: %w", DotEnvFile, err)
	}
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("reading environment overrides: %w", err)
	}
	cfg.DBPath = ExpandPath(cfg.DBPath)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if useDefault {
		globalConfigCache = &cfg
	}
	return &cfg, nil
}

func readFile(path string, cfg *Config, optional bool) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if optional && os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing config %s: %w", path, err)
	}
	return nil
}

// ResetGlobalConfigCache clears the cached global config.
// Useful for testing.
func ResetGlobalConfigCache() {
	globalConfigCache = nil
}

// HelpfulConfigMessage explains where configuration is read from.
func HelpfulConfigMessage() string {
	configPath := GlobalConfigPath()
	return fmt.Sprintf(`Configuration is read from %s, then %s, then %s_* environment variables.

Example:
  mkdir -p %s
  printf 'style: apa\nthreshold: 0.35\n' > %s`,
		configPath, DotEnvFile, EnvPrefix,
		filepath.Dir(configPath),
		configPath)
}
