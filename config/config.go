// Package config reads the optional YAML configuration of the extr command.
//
//	output_dir: ./extracted
//	verbose: false
//	poll_interval: 100ms
//	drain_timeout: 5s
//	timeout: 10m
//	log_level: info
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Defacto2/extr/process"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

// Filename is the name of the configuration file in the user configuration directory.
const Filename = "config.yaml"

var (
	ErrDuration = errors.New("duration cannot be negative")
	ErrLevel    = errors.New("unknown log level")
)

// Config is the configuration of the extr command.
type Config struct {
	OutputDir    string        `yaml:"output_dir"`    // OutputDir is the default extraction directory.
	Verbose      bool          `yaml:"verbose"`       // Verbose relays the output of the programs.
	PollInterval time.Duration `yaml:"poll_interval"` // PollInterval is the time between the program exit checks.
	DrainTimeout time.Duration `yaml:"drain_timeout"` // DrainTimeout is the maximum wait for the program output after it exits.
	Timeout      time.Duration `yaml:"timeout"`       // Timeout kills a program that runs longer, zero disables it.
	LogLevel     string        `yaml:"log_level"`     // LogLevel is a zerolog level name, such as debug, info or warn.
}

// Default returns the configuration used when there is no file.
func Default() *Config {
	return &Config{
		OutputDir:    ".",
		PollInterval: process.DefaultInterval,
		DrainTimeout: process.DefaultDrain,
		LogLevel:     zerolog.InfoLevel.String(),
	}
}

// Path returns the location of the configuration file in the user configuration directory.
func Path() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("config path %w", err)
	}
	return filepath.Join(dir, "extr", Filename), nil
}

// Load reads the named YAML file, the settings it leaves out keep their default values.
func Load(cfgPath string) (*Config, error) {
	data, err := os.ReadFile(cfgPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %q: %w", cfgPath, err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %q: %w", cfgPath, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// Find loads the configuration file from the user configuration directory,
// or returns the default configuration when there is no such file.
func Find() (*Config, error) {
	name, err := Path()
	if err != nil {
		return Default(), nil //nolint:nilerr
	}
	if _, err := os.Stat(name); err != nil {
		return Default(), nil //nolint:nilerr
	}
	return Load(name)
}

// Validate checks the settings and then replaces the zero values with their defaults.
// It is called again after the settings are changed, such as by command line flags.
func (c *Config) Validate() error {
	if err := c.validate(); err != nil {
		return err
	}
	c.normalize()
	return nil
}

func (c *Config) validate() error {
	if c.PollInterval < 0 {
		return fmt.Errorf("poll_interval %w: %s", ErrDuration, c.PollInterval)
	}
	if c.DrainTimeout < 0 {
		return fmt.Errorf("drain_timeout %w: %s", ErrDuration, c.DrainTimeout)
	}
	if c.Timeout < 0 {
		return fmt.Errorf("timeout %w: %s", ErrDuration, c.Timeout)
	}
	if _, err := zerolog.ParseLevel(strings.ToLower(c.LogLevel)); err != nil {
		return fmt.Errorf("log_level %w: %q", ErrLevel, c.LogLevel)
	}
	return nil
}

func (c *Config) normalize() {
	if c.OutputDir == "" {
		c.OutputDir = "."
	}
	c.OutputDir = filepath.Clean(c.OutputDir)
	if c.PollInterval == 0 {
		c.PollInterval = process.DefaultInterval
	}
	if c.DrainTimeout == 0 {
		c.DrainTimeout = process.DefaultDrain
	}
	c.LogLevel = strings.ToLower(c.LogLevel)
	if c.LogLevel == "" {
		c.LogLevel = zerolog.InfoLevel.String()
	}
}

// Level returns the zerolog level of the configuration,
// an unknown level name is the info level.
func (c *Config) Level() zerolog.Level {
	l, err := zerolog.ParseLevel(strings.ToLower(c.LogLevel))
	if err != nil || l == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return l
}
