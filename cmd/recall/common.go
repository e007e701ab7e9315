package main

import (
	"os"

	"github.com/recall-ai/recall/pkg/config"
)

const defaultConfigPath = "recall.yaml"

// loadConfig resolves configuration: an explicit --config file wins, the
// default config file is used when present, and otherwise everything comes
// from the environment (plus an optional .env file).
func loadConfig(configPath string) (*config.Config, error) {
	if configPath != defaultConfigPath {
		return config.Load(configPath)
	}
	if _, err := os.Stat(configPath); err == nil {
		return config.Load(configPath)
	}
	return config.FromEnv(".env")
}
