package config

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/brettbedarf/pathfs/internal/util"
)

// Default configuration constants. See [Config] for field descriptions.
const (
	DefaultLogLvl = util.InfoLevel

	// DefaultDirMode is passed to mkdir; the process umask still applies
	DefaultDirMode fs.FileMode = 0o777

	DefaultFollowSymlinks = false
)

// CLI verbosity values accepted by [ConfigOverride.Verbose]
const (
	ErrorVerbose = iota + util.MinVerbosity
	WarnVerbose
	InfoVerbose
	DebugVerbose
	TraceVerbose
)

// Config contains runtime configuration values for the filesystem layer.
type Config struct {
	LogLvl  util.LogLevel // Log level (Default Info)
	DirMode fs.FileMode   // Permission bits for directories created by Write (Default 0777)
	// Classify symlinks by their target. When false a symlink to a directory
	// is a File and recursive deletes unlink it instead of descending. (Default false)
	FollowSymlinks bool
}

// ConfigOverride uses pointer fields to distinguish between unset and zero values
// when loading partial configuration. See [Config] for field descriptions.
type ConfigOverride struct {
	Verbose        *int    `yaml:"verbose,omitempty" json:"verbose,omitempty" toml:"verbose,omitempty"`    // 1 (error) .. 5 (trace), clamped
	DirMode        *string `yaml:"dir_mode,omitempty" json:"dir_mode,omitempty" toml:"dir_mode,omitempty"` // octal, i.e. "0755"
	FollowSymlinks *bool   `yaml:"follow_symlinks,omitempty" json:"follow_symlinks,omitempty" toml:"follow_symlinks,omitempty"`
}

// NewDefaultConfig creates a new Config with all default values.
func NewDefaultConfig() *Config {
	return &Config{
		LogLvl:         DefaultLogLvl,
		DirMode:        DefaultDirMode,
		FollowSymlinks: DefaultFollowSymlinks,
	}
}

// NewConfig returns the defaults with override applied. A nil override
// yields the defaults.
func NewConfig(override *ConfigOverride) *Config {
	cfg := NewDefaultConfig()
	if override != nil {
		cfg.Merge(override)
	}
	return cfg
}

// Merge applies non-nil values from override onto this Config.
// An unparsable DirMode is ignored; use [ConfigOverride.Validate] to reject it.
func (c *Config) Merge(override *ConfigOverride) {
	if override.Verbose != nil {
		c.LogLvl = util.LevelFromVerbosity(*override.Verbose)
	}
	if override.DirMode != nil {
		if mode, err := ParseDirMode(*override.DirMode); err == nil {
			c.DirMode = mode
		}
	}
	c.FollowSymlinks = util.ValueOrDefault(override.FollowSymlinks, c.FollowSymlinks)
}

// Validate reports override values that Merge would have to ignore
func (o *ConfigOverride) Validate() error {
	if o.DirMode != nil {
		if _, err := ParseDirMode(*o.DirMode); err != nil {
			return err
		}
	}
	return nil
}

// ParseDirMode parses an octal permission string such as "0755" or "755".
func ParseDirMode(s string) (fs.FileMode, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "0o")
	v, err := strconv.ParseUint(s, 8, 32)
	if err != nil || v > uint64(fs.ModePerm) {
		return 0, fmt.Errorf("invalid dir_mode %q: want octal permission bits", s)
	}
	return fs.FileMode(v), nil
}

// LoadConfigOverrideFile loads configuration overrides from a file without merging.
// Supports YAML (.yaml, .yml), JSON (.json) and TOML (.toml) formats.
func LoadConfigOverrideFile(path string) (*ConfigOverride, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var override ConfigOverride

	// Determine format by file extension
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &override)
	case ".json":
		err = json.Unmarshal(data, &override)
	case ".toml":
		_, err = toml.Decode(string(data), &override)
	default:
		return nil, fmt.Errorf("unknown config file extension: %s", path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal config file: %w", err)
	}
	if err := override.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}

	return &override, nil
}

// NewConfigFromFile creates a new Config by merging file overrides with defaults.
// This is a convenience function that combines NewDefaultConfig, LoadConfigOverrideFile, and Merge.
func NewConfigFromFile(path string) (*Config, error) {
	override, err := LoadConfigOverrideFile(path)
	if err != nil {
		return nil, err
	}
	return NewConfig(override), nil
}
