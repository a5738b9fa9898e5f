package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config represents the scanner configuration
type Config struct {
	// Scan settings
	Filter         string        `mapstructure:"filter"`          // all, document, image, video, audio, archive
	Roots          []string      `mapstructure:"roots"`           // default roots when none are given
	Workers        int           `mapstructure:"workers"`         // max roots walked at once in parallel mode (0 = one per root)
	Exclude        []string      `mapstructure:"exclude"`         // directory names to skip
	SkipHidden     bool          `mapstructure:"skip_hidden"`     // skip dot-prefixed entries
	FollowSymlinks bool          `mapstructure:"follow_symlinks"` // descend into symlinked directories
	MaxSize        string        `mapstructure:"max_size"`        // skip files larger than this (empty = unlimited)
	Timeout        time.Duration `mapstructure:"timeout"`         // abandon a scan after this long (0 = never)

	// Report settings
	ReportFormat string `mapstructure:"report_format"` // text, json, yaml (empty = console)
	OutputFile   string `mapstructure:"output_file"`   // output file path
}

// LoadConfig loads configuration from defaults, an optional config file and
// environment variables. An empty path skips the config file.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()

	// Set defaults
	v.SetDefault("filter", "all")
	v.SetDefault("roots", []string{})
	v.SetDefault("workers", 0)
	v.SetDefault("exclude", []string{})
	v.SetDefault("skip_hidden", false)
	v.SetDefault("follow_symlinks", false)
	v.SetDefault("max_size", "")
	v.SetDefault("timeout", time.Duration(0))
	v.SetDefault("report_format", "")
	v.SetDefault("output_file", "")

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	// Read environment variables
	v.SetEnvPrefix("FILEHOUND")
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// IsExcluded checks if a directory name is in the exclude list
func (c *Config) IsExcluded(name string) bool {
	for _, dir := range c.Exclude {
		if dir == name {
			return true
		}
	}
	return false
}
