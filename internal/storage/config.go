package storage

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Storage backends.
const (
	BackendJSON   = "json"
	BackendSQLite = "sqlite"
)

const (
	configFileName = "config"
	configFileType = "yaml"
	envPrefix      = "STASH"
)

// Config holds application configuration.
type Config struct {
	DataDir            string      `mapstructure:"data_dir"`
	Backend            string      `mapstructure:"backend"`
	// Format is the layout the bookmarks file is saved in. Older versions
	// read only FormatLegacy, so saving as FormatOrdered is one way for them.
	Format             string      `mapstructure:"format"`
	SkipDuplicateLinks bool        `mapstructure:"skip_duplicate_links"`
	LogLevel           string      `mapstructure:"log_level"`
	LogFormat          string      `mapstructure:"log_format"`
	Check              CheckConfig `mapstructure:"check"`
}

// CheckConfig configures the link health check.
type CheckConfig struct {
	Concurrency    int           `mapstructure:"concurrency"`
	Timeout        time.Duration `mapstructure:"timeout"`
	ExcludeDomains []string      `mapstructure:"exclude_domains"`
}

// DefaultConfig returns the default configuration.
// DataDir is left empty and resolved by LoadConfig.
func DefaultConfig() Config {
	return Config{
		Backend:            BackendJSON,
		Format:             string(FormatOrdered),
		SkipDuplicateLinks: true,
		LogLevel:           "info",
		LogFormat:          "console",
		Check: CheckConfig{
			Concurrency:    10,
			Timeout:        10 * time.Second,
			ExcludeDomains: []string{"github.com", "gitlab.com"},
		},
	}
}

// LoadConfig reads configuration from path, or from config.yaml in the
// default config directory when path is empty. A missing default config file
// is not an error. STASH_* environment variables override file values.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v, DefaultConfig())

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		expanded, err := ExpandPath(path)
		if err != nil {
			return nil, err
		}
		v.SetConfigFile(expanded)
	} else {
		dir, err := DefaultConfigDir()
		if err != nil {
			return nil, err
		}
		v.SetConfigName(configFileName)
		v.SetConfigType(configFileType)
		v.AddConfigPath(dir)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	if err := cfg.resolve(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper, d Config) {
	v.SetDefault("data_dir", d.DataDir)
	v.SetDefault("backend", d.Backend)
	v.SetDefault("format", d.Format)
	v.SetDefault("skip_duplicate_links", d.SkipDuplicateLinks)
	v.SetDefault("log_level", d.LogLevel)
	v.SetDefault("log_format", d.LogFormat)
	v.SetDefault("check.concurrency", d.Check.Concurrency)
	v.SetDefault("check.timeout", d.Check.Timeout)
	v.SetDefault("check.exclude_domains", d.Check.ExcludeDomains)
}

// resolve fills in derived defaults and validates enumerated values.
func (c *Config) resolve() error {
	if c.DataDir == "" {
		dir, err := DefaultDataDir()
		if err != nil {
			return err
		}
		c.DataDir = dir
	} else {
		dir, err := ExpandPath(c.DataDir)
		if err != nil {
			return err
		}
		c.DataDir = dir
	}

	switch c.Backend {
	case BackendJSON, BackendSQLite:
	default:
		return fmt.Errorf("invalid backend %q: want %q or %q", c.Backend, BackendJSON, BackendSQLite)
	}

	if _, err := ParseFormat(c.Format); err != nil {
		return err
	}

	if c.Check.Concurrency < 1 {
		c.Check.Concurrency = 1
	}
	return nil
}
