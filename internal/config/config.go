package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/mph-llm-experiments/adate/internal/model"
)

// EnvConfig names a config file when no --config flag is given.
const EnvConfig = "ADATE_CONFIG"

type Config struct {
	FirstDayOfWeek string        `toml:"first_day_of_week"`
	Direction      string        `toml:"direction"`
	LocaleFile     string        `toml:"locale_file"`
	StateFile      string        `toml:"state_file"`
	LogFile        string        `toml:"log_file"`
	Fields         []model.Field `toml:"field"`

	// Path is the file the config was read from, empty for defaults.
	Path string `toml:"-"`
}

func Load(configPath string) (*Config, error) {
	config := &Config{}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}

	if configPath == "" {
		configPath = os.Getenv(EnvConfig)
	}

	// If explicit config path provided, use it
	if configPath != "" {
		configPath = expandPath(configPath, homeDir)
		if err := decode(configPath, config); err != nil {
			return nil, err
		}
		return finish(config, homeDir)
	}

	defaultPath := filepath.Join(homeDir, ".config", "adate", "config.toml")
	if _, err := os.Stat(defaultPath); err == nil {
		if err := decode(defaultPath, config); err != nil {
			return nil, err
		}
	}

	// Use defaults for anything the file left out
	return finish(config, homeDir)
}

func decode(path string, config *Config) error {
	if _, err := toml.DecodeFile(path, config); err != nil {
		return fmt.Errorf("error loading config %s: %w", path, err)
	}
	config.Path = path
	return nil
}

func finish(config *Config, homeDir string) (*Config, error) {
	applyDefaults(config, homeDir)
	expandTilde(config, homeDir)
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

func applyDefaults(config *Config, homeDir string) {
	if config.FirstDayOfWeek == "" {
		config.FirstDayOfWeek = "monday"
	}
	if config.Direction == "" {
		config.Direction = "right"
	}
	if config.StateFile == "" {
		config.StateFile = filepath.Join(homeDir, ".config", "adate", "state.json")
	}
	if len(config.Fields) == 0 {
		config.Fields = []model.Field{{Name: "date", Label: "Date"}}
	}

	// Fields inherit the global week start and direction
	for i := range config.Fields {
		f := &config.Fields[i]
		if f.FirstDayOfWeek == "" {
			f.FirstDayOfWeek = config.FirstDayOfWeek
		}
		if f.Direction == "" {
			f.Direction = config.Direction
		}
	}
}

// Validate checks global settings and every field. Field names must be unique.
func (c *Config) Validate() error {
	if _, err := model.ParseWeekday(c.FirstDayOfWeek); err != nil {
		return fmt.Errorf("first_day_of_week: %w", err)
	}
	if c.Direction != "left" && c.Direction != "right" {
		return fmt.Errorf("invalid direction %q: must be left or right", c.Direction)
	}

	seen := make(map[string]bool, len(c.Fields))
	for _, f := range c.Fields {
		if err := f.Validate(); err != nil {
			return err
		}
		if seen[f.Name] {
			return fmt.Errorf("duplicate field name %q", f.Name)
		}
		seen[f.Name] = true
	}
	return nil
}

func expandTilde(config *Config, homeDir string) {
	config.LocaleFile = expandPath(config.LocaleFile, homeDir)
	config.StateFile = expandPath(config.StateFile, homeDir)
	config.LogFile = expandPath(config.LogFile, homeDir)
}

func expandPath(path, homeDir string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		return filepath.Join(homeDir, path[1:])
	}
	return path
}
