// Package config loads runtime settings: defaults, then an optional YAML
// file, then TODO_* environment variables. Command-line flags are applied on
// top by the cli package.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/idilsaglam/todo-screen/internal/todo"
	"github.com/idilsaglam/todo-screen/internal/ui"
)

// EnvPrefix prefixes every environment override (TODO_ADDR, ...).
const EnvPrefix = "TODO"

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("invalid config")

type Config struct {
	Addr          string        `yaml:"addr"`
	Theme         string        `yaml:"theme"`
	WarningPolicy string        `yaml:"warning_policy"`
	SessionIdle   time.Duration `yaml:"session_idle"`
	LogLevel      string        `yaml:"log_level"`
	LogFormat     string        `yaml:"log_format"`
	LogFile       string        `yaml:"log_file"`
	DatastarURL   string        `yaml:"datastar_url"`
}

func Default() Config {
	return Config{
		Addr:          ":8081",
		Theme:         "classic",
		WarningPolicy: string(todo.WarnLive),
		SessionIdle:   30 * time.Minute,
		LogLevel:      "info",
		LogFormat:     "text",
	}
}

// Load returns defaults overlaid with path (when non-empty) and the
// environment. The result is validated.
func Load(path string) (Config, error) {
	cfg := Default()
	if strings.TrimSpace(path) != "" {
		if err := LoadYAML(path, &cfg); err != nil {
			return Config{}, err
		}
	}
	if err := ApplyEnv(&cfg, os.LookupEnv); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadYAML loads configuration from a YAML file
func LoadYAML(path string, target *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read YAML file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, target); err != nil {
		return fmt.Errorf("failed to unmarshal YAML: %w", err)
	}
	return nil
}

// ApplyEnv overrides fields from lookup (os.LookupEnv in production).
func ApplyEnv(cfg *Config, lookup func(string) (string, bool)) error {
	str := func(name string, dst *string) {
		if v, ok := lookup(EnvPrefix + "_" + name); ok && strings.TrimSpace(v) != "" {
			*dst = strings.TrimSpace(v)
		}
	}
	str("ADDR", &cfg.Addr)
	str("THEME", &cfg.Theme)
	str("WARNING_POLICY", &cfg.WarningPolicy)
	str("LOG_LEVEL", &cfg.LogLevel)
	str("LOG_FORMAT", &cfg.LogFormat)
	str("LOG_FILE", &cfg.LogFile)
	str("DATASTAR_URL", &cfg.DatastarURL)

	if v, ok := lookup(EnvPrefix + "_SESSION_IDLE"); ok && strings.TrimSpace(v) != "" {
		d, err := time.ParseDuration(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("%w: %s_SESSION_IDLE: %v", ErrInvalid, EnvPrefix, err)
		}
		cfg.SessionIdle = d
	}
	return nil
}

// Validate checks enumerations and ranges.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Addr) == "" {
		return fmt.Errorf("%w: addr is empty", ErrInvalid)
	}
	if !ui.ValidTheme(c.Theme) {
		return fmt.Errorf("%w: unknown theme %q", ErrInvalid, c.Theme)
	}
	if _, err := todo.ParseWarningPolicy(c.WarningPolicy); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if c.SessionIdle <= 0 {
		return fmt.Errorf("%w: session_idle must be positive", ErrInvalid)
	}
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: unknown log level %q", ErrInvalid, c.LogLevel)
	}
	switch strings.ToLower(c.LogFormat) {
	case "text", "json":
	default:
		return fmt.Errorf("%w: unknown log format %q", ErrInvalid, c.LogFormat)
	}
	return nil
}

// Policy returns the parsed warning policy; call after Validate.
func (c Config) Policy() todo.WarningPolicy {
	p, _ := todo.ParseWarningPolicy(c.WarningPolicy)
	return p
}
