package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config defines application configuration.
type Config struct {
	DB       DBConfig       `yaml:"db"`
	Log      LogConfig      `yaml:"log"`
	Projects ProjectsConfig `yaml:"projects"`
}

type DBConfig struct {
	Path string `yaml:"path"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // "console" | "json"
}

type ProjectsConfig struct {
	// StrictTransitions enforces the state transition table on edits.
	StrictTransitions bool `yaml:"strict_transitions"`
}

// Default returns the configuration used when nothing overrides it.
func Default() Config {
	return Config{
		DB: DBConfig{
			Path: "sena.db",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
		Projects: ProjectsConfig{
			StrictTransitions: true,
		},
	}
}

// Load reads configuration from a .env file, an optional YAML file and
// environment variables, in increasing order of precedence. path names the
// YAML file; when empty SENA_CONFIG_PATH is used.
func Load(path string) (Config, error) {
	// A missing .env file is not an error.
	_ = godotenv.Load()

	cfg := Default()

	if path == "" {
		path = os.Getenv("SENA_CONFIG_PATH")
	}
	if path != "" {
		if err := loadFromFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	if dbPath := os.Getenv("SENA_DB_PATH"); dbPath != "" {
		cfg.DB.Path = dbPath
	}
	if level := os.Getenv("SENA_LOG_LEVEL"); level != "" {
		cfg.Log.Level = level
	}
	if format := os.Getenv("SENA_LOG_FORMAT"); format != "" {
		cfg.Log.Format = format
	}
	if strictStr := os.Getenv("SENA_STRICT_TRANSITIONS"); strictStr != "" {
		strict, err := strconv.ParseBool(strictStr)
		if err != nil {
			return Config{}, fmt.Errorf("invalid SENA_STRICT_TRANSITIONS: %w", err)
		}
		cfg.Projects.StrictTransitions = strict
	}

	return cfg, nil
}

func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}
