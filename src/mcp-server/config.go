// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package mcpserver

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// configFormat represents supported configuration file formats.
type configFormat int

const (
	// configFormatJSON represents JSON configuration format (.json)
	configFormatJSON configFormat = iota
	// configFormatYAML represents YAML configuration format (.yaml, .yml)
	configFormatYAML
)

// Config represents the MCP server configuration structure.
// It contains default settings for trust store operations.
//
// The configuration can be loaded from a JSON or YAML file specified by the
// MCP_CONFIG_FILE environment variable, with defaults applied for any missing
// values. Supported file extensions: .json, .yaml, .yml
type Config struct {
	// Defaults: Default settings for trust store operations
	Defaults struct {
		// BundleURL: Remote PEM bundle URL used when a tool call omits one
		BundleURL string `json:"bundleUrl" yaml:"bundleUrl"`
		// CacheDir: Directory holding the persisted bundle slot
		CacheDir string `json:"cacheDir" yaml:"cacheDir"`
		// Policy: Cache policy, 'write-through' or 'after-parse'
		Policy string `json:"policy" yaml:"policy"`
		// Format: Default output format for tool results
		Format string `json:"format" yaml:"format"`
	} `json:"defaults" yaml:"defaults"`
}

// detectConfigFormat determines the configuration file format based on file extension.
// It supports .json, .yaml, and .yml extensions for flexible configuration management.
func detectConfigFormat(configPath string) configFormat {
	ext := strings.ToLower(filepath.Ext(configPath))
	switch ext {
	case ".yaml", ".yml":
		return configFormatYAML
	default:
		return configFormatJSON
	}
}

// unmarshalConfig unmarshals configuration data based on the specified format.
func unmarshalConfig(data []byte, format configFormat, config *Config) error {
	switch format {
	case configFormatYAML:
		return yaml.Unmarshal(data, config)
	default:
		return json.Unmarshal(data, config)
	}
}

// loadConfig loads the server configuration from configPath, falling back to
// built-in defaults when the path is empty or the file does not exist.
func loadConfig(configPath string) (*Config, error) {
	config := &Config{}

	if configPath != "" {
		data, err := os.ReadFile(configPath)
		if err != nil {
			if !os.IsNotExist(err) {
				return nil, err
			}
		} else if err := unmarshalConfig(data, detectConfigFormat(configPath), config); err != nil {
			return nil, err
		}
	}

	applyConfigDefaults(config)
	return config, nil
}

// applyConfigDefaults fills in defaults for any missing configuration values.
func applyConfigDefaults(config *Config) {
	if config.Defaults.CacheDir == "" {
		if base, err := os.UserCacheDir(); err == nil {
			config.Defaults.CacheDir = filepath.Join(base, "rp-trust-store")
		} else {
			config.Defaults.CacheDir = "."
		}
	}
	if config.Defaults.Policy == "" {
		config.Defaults.Policy = "write-through"
	}
	if config.Defaults.Format == "" {
		config.Defaults.Format = "pem"
	}
}
