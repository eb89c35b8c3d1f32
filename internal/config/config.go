// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

// Package config handles application configuration: reading and writing the
// YAML config file, environment overrides, and the default locations of the
// data file and the diagnostic log.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const appDirName = "job-tracker"

// Environment variables that override values from the config file.
const (
	EnvDataPath = "JOBTRACKER_DATA_PATH"
	EnvLogPath  = "JOBTRACKER_LOG_PATH"
	EnvLogLevel = "JOBTRACKER_LOG_LEVEL"
)

// Config represents the top-level application configuration
type Config struct {
	// DataPath is the CSV file holding the applications (optional)
	DataPath string `yaml:"data_path,omitempty"`

	// LogPath is the diagnostic log file (optional)
	LogPath string `yaml:"log_path,omitempty"`

	// LogLevel is one of debug, info, warn, error (optional, defaults to info)
	LogLevel string `yaml:"log_level,omitempty"`
}

func DefaultConfigPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user config directory: %w", err)
	}
	return filepath.Join(configDir, appDirName, "config.yaml"), nil
}

// DefaultDataPath follows the XDG base directory spec for user data.
func DefaultDataPath() (string, error) {
	dataDir := os.Getenv("XDG_DATA_HOME")
	if dataDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("could not get user home directory: %w", err)
		}
		dataDir = filepath.Join(homeDir, ".local", "share")
	}
	return filepath.Join(dataDir, appDirName, "applications.csv"), nil
}

// DefaultLogPath follows the XDG base directory spec for state files.
func DefaultLogPath() (string, error) {
	stateDir := os.Getenv("XDG_STATE_HOME")
	if stateDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("could not get user home directory: %w", err)
		}
		stateDir = filepath.Join(homeDir, ".local", "state")
	}
	return filepath.Join(stateDir, appDirName, appDirName+".log"), nil
}

// LoadDotEnv loads KEY=VALUE pairs from the given files (default ".env") into
// the process environment. Missing files are ignored and variables that are
// already set are not overwritten.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to load env file %s: %w", f, err)
		}
	}
	return nil
}

// LoadFile reads the config file only. A missing file yields an empty Config.
func LoadFile() (Config, error) {
	configPath, err := DefaultConfigPath()
	if err != nil {
		return Config{}, err
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return Config{}, nil
		}
		return Config{}, fmt.Errorf("failed to read config file %s: %w", configPath, err)
	}

	var cfg Config
	err = yaml.Unmarshal(data, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to parse config file %s: %w", configPath, err)
	}
	return cfg, nil
}

// LoadConfig reads the config file and applies environment overrides.
func LoadConfig() (Config, error) {
	cfg, err := LoadFile()
	if err != nil {
		return Config{}, err
	}
	return cfg.WithEnv(), nil
}

// WithEnv returns a copy of c with any non-empty JOBTRACKER_* variables applied.
func (c Config) WithEnv() Config {
	if v := os.Getenv(EnvDataPath); v != "" {
		c.DataPath = v
	}
	if v := os.Getenv(EnvLogPath); v != "" {
		c.LogPath = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.LogLevel = v
	}
	return c
}

// ResolvedDataPath returns the data file path with '~/' expanded,
// falling back to DefaultDataPath when unset.
func (c Config) ResolvedDataPath() (string, error) {
	if c.DataPath == "" {
		return DefaultDataPath()
	}
	return ResolvePath(c.DataPath)
}

// ResolvedLogPath returns the log file path with '~/' expanded,
// falling back to DefaultLogPath when unset.
func (c Config) ResolvedLogPath() (string, error) {
	if c.LogPath == "" {
		return DefaultLogPath()
	}
	return ResolvePath(c.LogPath)
}

// Resolve loads .env, the config file and the environment, then applies the
// non-empty overrides (typically command-line flags) on top.
func Resolve(dataOverride, logOverride string) (Config, error) {
	if err := LoadDotEnv(); err != nil {
		return Config{}, err
	}
	cfg, err := LoadConfig()
	if err != nil {
		return Config{}, err
	}
	if dataOverride != "" {
		cfg.DataPath = dataOverride
	}
	if logOverride != "" {
		cfg.LogPath = logOverride
	}
	return cfg, nil
}

func EnsureConfigDir() error {
	configPath, err := DefaultConfigPath()
	if err != nil {
		return err
	}
	configDir := filepath.Dir(configPath)
	err = os.MkdirAll(configDir, 0750) // rwxr-x---
	if err != nil {
		return fmt.Errorf("failed to create config directory %s: %w", configDir, err)
	}
	return nil
}

func SaveConfig(cfg Config) error {
	configPath, err := DefaultConfigPath()
	if err != nil {
		return err
	}

	err = EnsureConfigDir()
	if err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config to YAML: %w", err)
	}

	// Write with permissions rw-r----- (0640)
	err = os.WriteFile(configPath, data, 0640)
	if err != nil {
		return fmt.Errorf("failed to write config file %s: %w", configPath, err)
	}

	return nil
}

func ResolvePath(path string) (string, error) {
	if !strings.HasPrefix(path, "~/") {
		return path, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return path, fmt.Errorf("could not get user home directory to resolve path '%s': %w", path, err)
	}

	return filepath.Join(homeDir, path[2:]), nil
}
