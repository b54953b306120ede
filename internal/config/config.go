package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// FileName is the config file name looked up in the working directory, without extension.
const FileName = "taskdesk"

// EnvPrefix prefixes environment overrides, e.g. TASKDESK_VIEW_PAGE_SIZE.
const EnvPrefix = "TASKDESK"

// Config holds all taskdesk configuration
type Config struct {
	Dataset  DatasetConfig  `mapstructure:"dataset"`
	Provider ProviderConfig `mapstructure:"provider"`
	View     ViewConfig     `mapstructure:"view"`
	Server   ServerConfig   `mapstructure:"server"`
	Log      LogConfig      `mapstructure:"log"`

	// Source is the file the config was read from, empty for defaults.
	Source string `mapstructure:"-"`
}

// DatasetConfig selects the task dataset
type DatasetConfig struct {
	// Path to a YAML dataset. Empty means a generated one.
	Path      string `mapstructure:"path"`
	SeedCount int    `mapstructure:"seed_count"`
	Seed      int64  `mapstructure:"seed"`
}

// ProviderConfig holds data provider settings
type ProviderConfig struct {
	Kind          string        `mapstructure:"kind"`
	TasksLatency  time.Duration `mapstructure:"tasks_latency"`
	CountsLatency time.Duration `mapstructure:"counts_latency"`
	UpdateLatency time.Duration `mapstructure:"update_latency"`
}

// ViewConfig holds table view settings
type ViewConfig struct {
	PageSize       int           `mapstructure:"page_size"`
	InfiniteScroll bool          `mapstructure:"infinite_scroll"`
	LoadBefore     int           `mapstructure:"load_before"`
	StripeHeight   int           `mapstructure:"stripe_height"`
	Cooldown       time.Duration `mapstructure:"cooldown"`
}

// ServerConfig holds JSON API settings
type ServerConfig struct {
	Addr string `mapstructure:"addr"`
	// Remote is the base URL used by the remote provider.
	Remote string `mapstructure:"remote"`
}

// LogConfig holds logging settings
type LogConfig struct {
	Level string `mapstructure:"level"`
}

// Debug reports whether debug logging is enabled.
func (c LogConfig) Debug() bool {
	return strings.EqualFold(strings.TrimSpace(c.Level), "debug")
}

// LoadConfigWithFile loads configuration from a specific file if provided,
// otherwise falls back to LoadConfig with the working directory.
func LoadConfigWithFile(workDir, configFile string) (*Config, error) {
	if configFile != "" {
		return LoadConfigFromPath(configFile)
	}
	return LoadConfig(workDir)
}

// LoadConfig loads the first existing file of SearchPaths(dir).
// When none exists, defaults are returned.
func LoadConfig(dir string) (*Config, error) {
	for _, path := range SearchPaths(dir) {
		if _, err := os.Stat(path); err == nil {
			return LoadConfigFromPath(path)
		}
	}
	return unmarshal(newViper())
}

// LoadConfigFromPath loads configuration from a specific file path.
// A missing file yields defaults. A relative dataset.path is taken relative
// to the file's directory.
func LoadConfigFromPath(configPath string) (*Config, error) {
	v := newViper()

	if _, err := os.Stat(configPath); err != nil {
		if os.IsNotExist(err) {
			return unmarshal(v)
		}
		return nil, err
	}

	v.SetConfigFile(configPath)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read %s: %w", configPath, err)
	}

	cfg, err := unmarshal(v)
	if err != nil {
		return nil, err
	}
	cfg.Source = configPath
	cfg.Dataset.Path = resolveRelative(configPath, cfg.Dataset.Path)
	return cfg, nil
}

func newViper() *viper.Viper {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

func unmarshal(v *viper.Viper) (*Config, error) {
	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// setDefaults sets all default values for configuration
func setDefaults(v *viper.Viper) {
	v.SetDefault("dataset.path", DefaultDatasetPath)
	v.SetDefault("dataset.seed_count", DefaultSeedCount)
	v.SetDefault("dataset.seed", DefaultSeed)

	v.SetDefault("provider.kind", DefaultProviderKind)
	v.SetDefault("provider.tasks_latency", DefaultTasksLatency)
	v.SetDefault("provider.counts_latency", DefaultCountsLatency)
	v.SetDefault("provider.update_latency", DefaultUpdateLatency)

	v.SetDefault("view.page_size", DefaultPageSize)
	v.SetDefault("view.infinite_scroll", DefaultInfiniteScroll)
	v.SetDefault("view.load_before", DefaultLoadBefore)
	v.SetDefault("view.stripe_height", DefaultStripeHeight)
	v.SetDefault("view.cooldown", DefaultCooldown)

	v.SetDefault("server.addr", DefaultServerAddr)
	v.SetDefault("server.remote", DefaultRemoteURL)

	v.SetDefault("log.level", DefaultLogLevel)
}
