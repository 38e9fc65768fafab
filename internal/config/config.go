// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Config is the full runtime configuration. Values come from an optional YAML
// file with environment variables layered on top.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Fetch    FetchConfig    `yaml:"fetch"`
	Classify ClassifyConfig `yaml:"classify"`
	Log      LogConfig      `yaml:"log"`
}

type ServerConfig struct {
	Port         int           `yaml:"port" validate:"required,min=1,max=65535"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
}

type DatabaseConfig struct {
	Path string `yaml:"path" validate:"required"`
}

type FetchConfig struct {
	Interval       time.Duration `yaml:"interval" validate:"required,min=60000000000"` // >= 1m
	RetentionDays  int           `yaml:"retention_days" validate:"required,min=1"`
	MaxArticles    int           `yaml:"max_articles" validate:"required,min=1"`
	MaxPerFeed     int           `yaml:"max_per_feed" validate:"required,min=1"`
	Workers        int           `yaml:"workers" validate:"required,min=1,max=20"`
	RequestTimeout time.Duration `yaml:"request_timeout" validate:"required"`
}

type ClassifyConfig struct {
	LLMEndpoint   string `yaml:"llm_endpoint" validate:"omitempty,url"`
	LLMModel      string `yaml:"llm_model"`
	LLMAPIKey     string `yaml:"-"` // env only, never from file
	ModelEndpoint string `yaml:"model_endpoint" validate:"omitempty,url"`
	DisableRemote bool   `yaml:"disable_remote"`
}

type LogConfig struct {
	Level         string `yaml:"level" validate:"omitempty,oneof=trace debug info warn error"`
	File          string `yaml:"file"`
	MaxLogSizeMB  int    `yaml:"max_log_size_mb"`
	MaxLogBackups int    `yaml:"max_log_backups"`
}

// Default returns the configuration used when no file or overrides are given.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Port:         8080,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
		Database: DatabaseConfig{
			Path: "data/cybernews.db",
		},
		Fetch: FetchConfig{
			Interval:       12 * time.Hour,
			RetentionDays:  90,
			MaxArticles:    5000,
			MaxPerFeed:     20,
			Workers:        10,
			RequestTimeout: 15 * time.Second,
		},
		Classify: ClassifyConfig{
			LLMEndpoint: "https://api.groq.com/openai/v1/chat/completions",
			LLMModel:    "llama-3.1-8b-instant",
		},
		Log: LogConfig{
			Level:         "info",
			MaxLogSizeMB:  50,
			MaxLogBackups: 3,
		},
	}
}

// Load builds the configuration. Priority per field: environment variable,
// then YAML file, then default. An empty path means file lookup via
// CYBERNEWS_CONFIG or ./config.yaml; a missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()

	if path == "" {
		path = os.Getenv("CYBERNEWS_CONFIG")
	}
	if path == "" {
		if _, err := os.Stat("config.yaml"); err == nil {
			path = "config.yaml"
		}
	}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("reading config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parsing config file %s: %w", path, err)
		}
	}

	applyEnv(&cfg)

	if err := validator.New().Struct(cfg); err != nil {
		return Config{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("CYBERNEWS_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
	if v := os.Getenv("CYBERNEWS_DB_PATH"); v != "" {
		cfg.Database.Path = v
	}
	if v := os.Getenv("ARTICLE_RETENTION_DAYS"); v != "" {
		if days, err := strconv.Atoi(v); err == nil {
			cfg.Fetch.RetentionDays = days
		}
	}
	if v := os.Getenv("MAX_ARTICLES_PER_FEED"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Fetch.MaxPerFeed = n
		}
	}
	if v := os.Getenv("GROQ_API_KEY"); v != "" {
		cfg.Classify.LLMAPIKey = v
	}
	if v := os.Getenv("CYBERNEWS_MODEL_ENDPOINT"); v != "" {
		cfg.Classify.ModelEndpoint = v
	}
	if v := os.Getenv("CYBERNEWS_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
}
