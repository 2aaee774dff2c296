package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	koanfjson "github.com/knadh/koanf/parsers/json"
	koanfyaml "github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"gopkg.in/yaml.v3"
)

// LoadOptions configures how configuration is loaded.
type LoadOptions struct {
	// ConfigPath replaces the user config file lookup. A .json extension
	// selects the JSON parser, anything else YAML.
	ConfigPath string
	// SkipEnv ignores PSB_* environment variables.
	SkipEnv bool
}

// UserConfigDir returns ~/.config/psb.
func UserConfigDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not find home directory: %w", err)
	}
	return filepath.Join(homeDir, ".config", "psb"), nil
}

// UserConfigPath returns the user config file. config.yaml wins over
// config.json; when neither exists the YAML path is returned.
func UserConfigPath() (string, error) {
	dir, err := UserConfigDir()
	if err != nil {
		return "", err
	}
	yamlPath := filepath.Join(dir, "config.yaml")
	jsonPath := filepath.Join(dir, "config.json")
	if !fileExists(yamlPath) && fileExists(jsonPath) {
		return jsonPath, nil
	}
	return yamlPath, nil
}

// Load reads the configuration from defaults, the user file and the environment.
func Load() (*Config, error) {
	return LoadWithOptions(LoadOptions{})
}

// LoadWithOptions loads configuration with custom options.
func LoadWithOptions(opts LoadOptions) (*Config, error) {
	k := koanf.New(".")

	for key, value := range GetDefaults() {
		if err := k.Set(key, value); err != nil {
			return nil, fmt.Errorf("failed to set default %s: %w", key, err)
		}
	}

	path := opts.ConfigPath
	if path == "" {
		var err error
		if path, err = UserConfigPath(); err != nil {
			return nil, err
		}
	}
	if fileExists(path) {
		if err := k.Load(file.Provider(path), parserFor(path)); err != nil {
			return nil, fmt.Errorf("failed to load config %s: %w", path, err)
		}
	}

	if !opts.SkipEnv {
		if err := k.Load(env.Provider(EnvPrefix, ".", envTransform), nil); err != nil {
			return nil, fmt.Errorf("failed to load environment config: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	cfg.LogFile = expandHomePath(cfg.LogFile)
	cfg.HistoryFile = expandHomePath(cfg.HistoryFile)
	cfg.VerbsSource = expandHomePath(cfg.VerbsSource)
	cfg.ParametersSource = expandHomePath(cfg.ParametersSource)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

// SetValue validates value and writes key to the config file at path,
// keeping any other keys already there.
func SetValue(path, key, value string) error {
	if err := ValidateValue(key, value); err != nil {
		return err
	}

	values := map[string]interface{}{}
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return fmt.Errorf("failed to read config file: %w", err)
	case isJSON(path):
		if err := json.Unmarshal(data, &values); err != nil {
			return fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	default:
		if err := yaml.Unmarshal(data, &values); err != nil {
			return fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}
	if values == nil {
		values = map[string]interface{}{}
	}
	values[key] = typedValue(key, value)

	if isJSON(path) {
		data, err = json.MarshalIndent(values, "", "  ")
	} else {
		data, err = yaml.Marshal(values)
	}
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

func typedValue(key, value string) interface{} {
	if key == "history_limit" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return value
}

func parserFor(path string) koanf.Parser {
	if isJSON(path) {
		return koanfjson.Parser()
	}
	return koanfyaml.Parser()
}

func isJSON(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".json")
}

// fileExists returns true if the file exists and is readable.
func fileExists(path string) bool {
	if path == "" {
		return false
	}
	_, err := os.Stat(path)
	return err == nil
}

// envTransform converts environment variable names to config keys.
// Example: PSB_HISTORY_LIMIT -> history_limit
func envTransform(s string) string {
	return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
}
