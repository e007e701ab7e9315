package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all recall configuration.
type Config struct {
	Model     string      `yaml:"model"`
	APIKey    string      `yaml:"api_key"`
	BaseURL   string      `yaml:"base_url"`
	CacheFile string      `yaml:"cache_file"`
	LogDir    string      `yaml:"log_dir"`
	DBPath    string      `yaml:"db_path"`
	Cache     CacheConfig `yaml:"cache"`
}

// CacheConfig controls the prompt cache.
type CacheConfig struct {
	Enabled bool `yaml:"enabled"`
}

// Default returns a Config with sensible defaults. The API key is left
// empty on purpose: a missing key is not a configuration error here, it
// surfaces as a provider failure.
func Default() *Config {
	return &Config{
		Model:     "gpt-4o-mini",
		CacheFile: "llm_cache.json",
		LogDir:    "logs",
		DBPath:    "recall.db",
		Cache: CacheConfig{
			Enabled: true,
		},
	}
}

// Load reads a YAML config file and expands environment variables.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	expanded := os.ExpandEnv(string(data))

	cfg := Default()
	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	return cfg, nil
}

// FromEnv builds a Config from process environment variables, optionally
// loading a .env file first. A missing .env file is not an error; the
// process environment alone is enough.
func FromEnv(envFilePath string) (*Config, error) {
	if envFilePath != "" {
		if err := godotenv.Load(envFilePath); err != nil {
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("load env file: %w", err)
			}
		}
	}

	cfg := Default()
	cfg.Model = getEnv("LLM_MODEL", cfg.Model)
	cfg.APIKey = getEnv("LLM_API_KEY", "")
	cfg.BaseURL = getEnv("LLM_BASE_URL", "")
	cfg.CacheFile = getEnv("LLM_CACHE_FILE", cfg.CacheFile)
	cfg.LogDir = getEnv("LOG_DIR", cfg.LogDir)
	cfg.DBPath = getEnv("RECALL_DB", cfg.DBPath)

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
