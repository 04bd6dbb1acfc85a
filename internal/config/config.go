// Package config loads antmon settings from an optional YAML file merged
// with defaults. The filesystem layout knobs (log path, record-store subdir)
// are the only variability between deployments, so they live here rather
// than as constants.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Defaults for a stock antnode deployment.
const (
	DefaultNodePathGlob        = "~/.local/share/autonomi/node/*"
	DefaultLogRelPath          = "logs/antnode.log"
	DefaultRecordStoreSubdir   = "record_store"
	DefaultPollInterval        = 1 * time.Second
	DefaultDiscoveryInterval   = 60 * time.Second
	DefaultFetchTimeout        = 2 * time.Second
	DefaultStoragePerNodeBytes = 35 * 1_000_000_000
	DefaultHistoryLength       = 60
)

// Config holds all runtime settings.
type Config struct {
	// NodePathGlob matches the root directories of running nodes.
	NodePathGlob string `mapstructure:"node_path_glob"`
	// LogRelPath is the node log file location relative to a node root.
	LogRelPath string `mapstructure:"log_rel_path"`
	// RecordStoreSubdir is the data directory relative to a node root.
	RecordStoreSubdir string `mapstructure:"record_store_subdir"`

	PollInterval      time.Duration `mapstructure:"poll_interval"`
	DiscoveryInterval time.Duration `mapstructure:"discovery_interval"`
	FetchTimeout      time.Duration `mapstructure:"fetch_timeout"`

	StoragePerNodeBytes uint64 `mapstructure:"storage_per_node_bytes"`
	HistoryLength       int    `mapstructure:"history_length"`
}

// Default returns the stock configuration.
func Default() Config {
	return Config{
		NodePathGlob:        DefaultNodePathGlob,
		LogRelPath:          DefaultLogRelPath,
		RecordStoreSubdir:   DefaultRecordStoreSubdir,
		PollInterval:        DefaultPollInterval,
		DiscoveryInterval:   DefaultDiscoveryInterval,
		FetchTimeout:        DefaultFetchTimeout,
		StoragePerNodeBytes: DefaultStoragePerNodeBytes,
		HistoryLength:       DefaultHistoryLength,
	}
}

// Load reads config from path, merged over defaults. An empty path returns
// the defaults unchanged; a missing file at an explicit path is an error.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	v := viper.New()
	v.SetConfigFile(path)
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("node_path_glob", d.NodePathGlob)
	v.SetDefault("log_rel_path", d.LogRelPath)
	v.SetDefault("record_store_subdir", d.RecordStoreSubdir)
	v.SetDefault("poll_interval", d.PollInterval)
	v.SetDefault("discovery_interval", d.DiscoveryInterval)
	v.SetDefault("fetch_timeout", d.FetchTimeout)
	v.SetDefault("storage_per_node_bytes", d.StoragePerNodeBytes)
	v.SetDefault("history_length", d.HistoryLength)
}

// Validate rejects settings the poll loop cannot run with.
func (c Config) Validate() error {
	if strings.TrimSpace(c.NodePathGlob) == "" {
		return fmt.Errorf("node_path_glob must not be empty")
	}
	if c.PollInterval <= 0 {
		return fmt.Errorf("poll_interval must be positive, got %v", c.PollInterval)
	}
	if c.DiscoveryInterval <= 0 {
		return fmt.Errorf("discovery_interval must be positive, got %v", c.DiscoveryInterval)
	}
	if c.FetchTimeout <= 0 {
		return fmt.Errorf("fetch_timeout must be positive, got %v", c.FetchTimeout)
	}
	if c.HistoryLength <= 0 {
		return fmt.Errorf("history_length must be positive, got %d", c.HistoryLength)
	}
	return nil
}

// ExpandedGlob resolves a leading "~" in the node path glob against the
// user's home directory.
func (c Config) ExpandedGlob() string {
	if strings.HasPrefix(c.NodePathGlob, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, c.NodePathGlob[2:])
		}
	}
	return c.NodePathGlob
}
