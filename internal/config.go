// Package config loads psb settings with koanf. Values are layered with the
// priority: environment (PSB_*) > user config file > defaults. Root command
// flags are applied on top by the caller.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap/zapcore"
)

// EnvPrefix is the prefix of environment overrides, e.g. PSB_EMPTY_VALUE.
const EnvPrefix = "PSB_"

// Config represents user settings.
type Config struct {
	// VerbsSource and ParametersSource are file paths or http(s) URLs. Empty
	// means the catalog compiled into the binary.
	VerbsSource      string `koanf:"verbs_source"`
	ParametersSource string `koanf:"parameters_source"`

	EmptyValue  string        `koanf:"empty_value"` // omit | placeholder
	HTTPTimeout time.Duration `koanf:"http_timeout"`

	LogFile  string `koanf:"log_file"` // empty disables logging
	LogLevel string `koanf:"log_level"`

	HistoryFile  string `koanf:"history_file"`
	HistoryLimit int    `koanf:"history_limit"`
}

// Key describes one configuration key.
type Key struct {
	Name        string
	Description string
	validate    func(string) error
	get         func(*Config) string
}

// Keys lists every configuration key in display order.
var Keys = []Key{
	{
		Name:        "verbs_source",
		Description: "Verb index document: path or URL (empty = built-in)",
		get:         func(c *Config) string { return c.VerbsSource },
	},
	{
		Name:        "parameters_source",
		Description: "Parameter schema document: path or URL (empty = built-in)",
		get:         func(c *Config) string { return c.ParametersSource },
	},
	{
		Name:        "empty_value",
		Description: "How selected parameters without a value render: omit or placeholder",
		validate:    validateEmptyValue,
		get:         func(c *Config) string { return c.EmptyValue },
	},
	{
		Name:        "http_timeout",
		Description: "Timeout for catalog documents fetched over HTTP",
		validate:    validateDuration,
		get:         func(c *Config) string { return c.HTTPTimeout.String() },
	},
	{
		Name:        "log_file",
		Description: "JSON log file (empty disables logging)",
		get:         func(c *Config) string { return c.LogFile },
	},
	{
		Name:        "log_level",
		Description: "Log level: debug, info, warn or error",
		validate:    validateLogLevel,
		get:         func(c *Config) string { return c.LogLevel },
	},
	{
		Name:        "history_file",
		Description: "Where copied commands are recorded",
		get:         func(c *Config) string { return c.HistoryFile },
	},
	{
		Name:        "history_limit",
		Description: "Maximum number of history entries",
		validate:    validatePositiveInt,
		get:         func(c *Config) string { return strconv.Itoa(c.HistoryLimit) },
	},
}

// ErrUnknownKey is returned for keys not listed in Keys.
type ErrUnknownKey struct {
	Key string
}

func (e ErrUnknownKey) Error() string {
	return fmt.Sprintf("unknown config key %q", e.Key)
}

// LookupKey returns the key description for name.
func LookupKey(name string) (Key, error) {
	for _, k := range Keys {
		if k.Name == name {
			return k, nil
		}
	}
	return Key{}, ErrUnknownKey{Key: name}
}

// ValidateValue checks a raw string value for key.
func ValidateValue(name, value string) error {
	k, err := LookupKey(name)
	if err != nil {
		return err
	}
	if k.validate == nil {
		return nil
	}
	if err := k.validate(value); err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	return nil
}

// GetDefaults returns the default value of every key.
func GetDefaults() map[string]interface{} {
	return map[string]interface{}{
		"verbs_source":      "",
		"parameters_source": "",
		"empty_value":       "omit",
		"http_timeout":      "10s",
		"log_file":          "~/.config/psb/psb.log",
		"log_level":         "info",
		"history_file":      "~/.config/psb/history.json",
		"history_limit":     50,
	}
}

// Get returns the current value of a key as a string.
func (c *Config) Get(name string) (string, error) {
	k, err := LookupKey(name)
	if err != nil {
		return "", err
	}
	return k.get(c), nil
}

// Validate checks every loaded value.
func (c *Config) Validate() error {
	for _, k := range Keys {
		if k.validate == nil {
			continue
		}
		if err := k.validate(k.get(c)); err != nil {
			return fmt.Errorf("%s: %w", k.Name, err)
		}
	}
	return nil
}

func validateEmptyValue(v string) error {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "omit", "placeholder":
		return nil
	}
	return fmt.Errorf("invalid value %q (want omit or placeholder)", v)
}

func validateDuration(v string) error {
	d, err := time.ParseDuration(v)
	if err != nil {
		return fmt.Errorf("invalid duration %q", v)
	}
	if d <= 0 {
		return fmt.Errorf("duration must be positive, got %s", v)
	}
	return nil
}

func validateLogLevel(v string) error {
	if _, err := zapcore.ParseLevel(v); err != nil {
		return fmt.Errorf("invalid log level %q", v)
	}
	return nil
}

func validatePositiveInt(v string) error {
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("invalid number %q", v)
	}
	if n < 1 {
		return fmt.Errorf("must be at least 1, got %d", n)
	}
	return nil
}

// expandHomePath expands ~ to the user's home directory.
func expandHomePath(path string) string {
	if strings.HasPrefix(path, "~/") {
		homeDir, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(homeDir, path[2:])
		}
	}
	return path
}
