package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Duration parses yaml values like "30m" or "1h".
type Duration time.Duration

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	*d = Duration(parsed)
	return nil
}

// Std converts back to the standard library type.
func (d Duration) Std() time.Duration { return time.Duration(d) }

// Config is the user-editable configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Reconcile ReconcileConfig `yaml:"reconcile"`
	Log       LogConfig       `yaml:"log"`
}

type ServerConfig struct {
	BaseURL string   `yaml:"base_url"`
	Timeout Duration `yaml:"timeout"`
}

// ReconcileConfig controls the background overdue check. The interval
// matches the upstream hourly timer by default.
type ReconcileConfig struct {
	Interval Duration `yaml:"interval"`
}

type LogConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
}

func Default() *Config {
	return &Config{
		Server: ServerConfig{
			BaseURL: "http://127.0.0.1:8000",
			Timeout: Duration(15 * time.Second),
		},
		Reconcile: ReconcileConfig{
			Interval: Duration(time.Hour),
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load reads the config file, falling back to defaults when it does
// not exist. A present but malformed file is an error; silently
// ignoring it would mask typos in the server URL.
func Load() (*Config, error) {
	path, err := Path()
	if err != nil {
		return nil, err
	}
	return loadFrom(path)
}

func loadFrom(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if cfg.Server.BaseURL == "" {
		return nil, fmt.Errorf("%s: server.base_url must not be empty", path)
	}
	if cfg.Server.Timeout <= 0 {
		cfg.Server.Timeout = Default().Server.Timeout
	}
	if cfg.Reconcile.Interval <= 0 {
		cfg.Reconcile.Interval = Default().Reconcile.Interval
	}
	return cfg, nil
}

// Path returns the config file location under the XDG config
// directory.
func Path() (string, error) {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		configDir = filepath.Join(home, ".config")
	}
	return filepath.Join(configDir, "taskdeck", "config.yaml"), nil
}
