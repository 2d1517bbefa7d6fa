package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/spf13/afero"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Keys shared by the config file, viper and the CLI flags
const (
	KeyBaseURL  = "base_url"
	KeySource   = "source"
	KeyRegion   = "region"
	KeyProfile  = "profile"
	KeyOutput   = "output"
	KeyTimeout  = "timeout"
	KeyLogLevel = "log_level"
)

// EnvPrefix is prepended to every key when read from the environment
const EnvPrefix = "CFNPERMS"

// Built-in defaults
const (
	DefaultSource   = "http"
	DefaultOutput   = "text"
	DefaultLogLevel = "disabled"
)

// configFs is swapped for an in-memory filesystem in tests
var configFs = afero.NewOsFs()

// Config represents the application configuration file
type Config struct {
	BaseURL  string `yaml:"base_url,omitempty"`
	Source   string `yaml:"source,omitempty"`
	Region   string `yaml:"region,omitempty"`
	Profile  string `yaml:"profile,omitempty"`
	Output   string `yaml:"output,omitempty"`
	Timeout  string `yaml:"timeout,omitempty"`
	LogLevel string `yaml:"log_level,omitempty"`
}

// Settings are the effective values after flags, environment, file and
// defaults have been merged
type Settings struct {
	BaseURL  string
	Source   string
	Region   string
	Profile  string
	Output   string
	Timeout  time.Duration
	LogLevel string
}

// Keys returns every configurable key, sorted
func Keys() []string {
	keys := []string{KeyBaseURL, KeySource, KeyRegion, KeyProfile, KeyOutput, KeyTimeout, KeyLogLevel}
	sort.Strings(keys)
	return keys
}

// GetConfigDir returns the config directory ($XDG_CONFIG_HOME/cfnperms or
// ~/.config/cfnperms)
func GetConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "cfnperms")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".cfnperms"
	}
	return filepath.Join(home, ".config", "cfnperms")
}

// GetConfigPath returns the config file path
func GetConfigPath() string {
	return filepath.Join(GetConfigDir(), "config.yaml")
}

// LoadConfig loads the configuration from path. A missing file yields an
// empty config.
func LoadConfig(path string) (*Config, error) {
	data, err := afero.ReadFile(configFs, path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return &cfg, nil
}

// SaveConfig writes the configuration to path, creating its directory
func SaveConfig(path string, cfg *Config) error {
	if err := configFs.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := afero.WriteFile(configFs, path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Get returns the value stored under key
func (c *Config) Get(key string) (string, error) {
	switch key {
	case KeyBaseURL:
		return c.BaseURL, nil
	case KeySource:
		return c.Source, nil
	case KeyRegion:
		return c.Region, nil
	case KeyProfile:
		return c.Profile, nil
	case KeyOutput:
		return c.Output, nil
	case KeyTimeout:
		return c.Timeout, nil
	case KeyLogLevel:
		return c.LogLevel, nil
	}
	return "", unknownKey(key)
}

// Set stores value under key after validating it
func (c *Config) Set(key, value string) error {
	value = strings.TrimSpace(value)

	switch key {
	case KeyBaseURL:
		c.BaseURL = value
	case KeySource:
		if err := ValidateSource(value); err != nil {
			return err
		}
		c.Source = value
	case KeyRegion:
		c.Region = value
	case KeyProfile:
		c.Profile = value
	case KeyOutput:
		if err := ValidateOutput(value); err != nil {
			return err
		}
		c.Output = value
	case KeyTimeout:
		if _, err := parseTimeout(value); err != nil {
			return err
		}
		c.Timeout = value
	case KeyLogLevel:
		c.LogLevel = value
	default:
		return unknownKey(key)
	}
	return nil
}

// Apply registers the file values as viper defaults, underneath flags and
// environment variables, and falls back to the built-in defaults
func Apply(v *viper.Viper, cfg *Config) {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetDefault(KeyBaseURL, cfg.BaseURL)
	v.SetDefault(KeySource, orDefault(cfg.Source, DefaultSource))
	v.SetDefault(KeyRegion, cfg.Region)
	v.SetDefault(KeyProfile, cfg.Profile)
	v.SetDefault(KeyOutput, orDefault(cfg.Output, DefaultOutput))
	v.SetDefault(KeyTimeout, cfg.Timeout)
	v.SetDefault(KeyLogLevel, orDefault(cfg.LogLevel, DefaultLogLevel))
}

// Resolve reads the effective settings out of v
func Resolve(v *viper.Viper) (*Settings, error) {
	s := &Settings{
		BaseURL:  strings.TrimSpace(v.GetString(KeyBaseURL)),
		Source:   strings.ToLower(strings.TrimSpace(v.GetString(KeySource))),
		Region:   strings.TrimSpace(v.GetString(KeyRegion)),
		Profile:  strings.TrimSpace(v.GetString(KeyProfile)),
		Output:   strings.ToLower(strings.TrimSpace(v.GetString(KeyOutput))),
		LogLevel: strings.TrimSpace(v.GetString(KeyLogLevel)),
	}

	if err := ValidateSource(s.Source); err != nil {
		return nil, err
	}
	if err := ValidateOutput(s.Output); err != nil {
		return nil, err
	}

	timeout, err := parseTimeout(v.GetString(KeyTimeout))
	if err != nil {
		return nil, err
	}
	s.Timeout = timeout

	return s, nil
}

// ValidateSource checks a schema source name
func ValidateSource(source string) error {
	switch source {
	case "http", "registry":
		return nil
	}
	return fmt.Errorf("invalid source %q: must be one of http, registry", source)
}

// ValidateOutput checks an output format name
func ValidateOutput(output string) error {
	switch output {
	case "text", "table", "json", "yaml":
		return nil
	}
	return fmt.Errorf("invalid output %q: must be one of text, table, json, yaml", output)
}

func parseTimeout(value string) (time.Duration, error) {
	value = strings.TrimSpace(value)
	if value == "" || value == "0" {
		return 0, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid timeout %q: %w", value, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("invalid timeout %q: must not be negative", value)
	}
	return d, nil
}

func orDefault(value, def string) string {
	if value == "" {
		return def
	}
	return value
}

func unknownKey(key string) error {
	return fmt.Errorf("unknown config key %q (valid keys: %s)", key, strings.Join(Keys(), ", "))
}
