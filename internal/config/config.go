// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

// Package config loads runtime settings for backend executables.
//
// Settings come from, in order of precedence: PBB_* environment variables,
// an optional YAML/TOML/JSON file named by PBB_CONFIG, and defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/viper"
)

const (
	// EnvPrefix prefixes every environment variable read by Load.
	EnvPrefix = "PBB"

	// ConfigFileEnv names an optional settings file.
	ConfigFileEnv = "PBB_CONFIG"

	// ManifestEnv is set by the host to the project manifest path.
	ManifestEnv = "PIXI_PROJECT_MANIFEST"

	// DefaultManifest is used when neither flag nor environment names one.
	DefaultManifest = "pixi.toml"

	// DefaultLogLevel is the level used when none is configured.
	DefaultLogLevel = "info"
)

// Settings holds the runtime settings of a backend executable.
type Settings struct {
	// LogFile is the append-only diagnostic log path.
	LogFile string

	// LogLevel is one of debug, info, warn, error.
	LogLevel string

	// LogDisabled turns the diagnostic log off.
	LogDisabled bool

	// ManifestPath is the default for --manifest-path.
	ManifestPath string
}

// DefaultLogFile returns the default log path for backend name.
func DefaultLogFile(name string) string {
	return filepath.Join(os.TempDir(), name+"-backend.log")
}

// Defaults returns the settings used when nothing is configured.
func Defaults(name string) Settings {
	return Settings{
		LogFile:      DefaultLogFile(name),
		LogLevel:     DefaultLogLevel,
		ManifestPath: DefaultManifest,
	}
}

// Load reads the settings for backend name. On error the returned settings
// are the defaults, so callers may warn and continue.
func Load(name string) (Settings, error) {
	defaults := Defaults(name)

	v := viper.New()
	v.SetDefault("log_file", defaults.LogFile)
	v.SetDefault("log_level", defaults.LogLevel)
	v.SetDefault("log_disabled", defaults.LogDisabled)
	v.SetDefault("manifest_path", defaults.ManifestPath)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv("manifest_path", ManifestEnv); err != nil {
		return defaults, fmt.Errorf("bind %s: %w", ManifestEnv, err)
	}

	if path := os.Getenv(ConfigFileEnv); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return defaults, fmt.Errorf("read config file %s: %w", path, err)
		}
	}

	s := Settings{
		LogFile:      v.GetString("log_file"),
		LogLevel:     strings.ToLower(v.GetString("log_level")),
		LogDisabled:  v.GetBool("log_disabled"),
		ManifestPath: v.GetString("manifest_path"),
	}
	if err := s.Validate(); err != nil {
		return defaults, err
	}
	return s, nil
}

// Validate checks that the settings are usable.
func (s Settings) Validate() error {
	if _, err := log.ParseLevel(s.LogLevel); err != nil {
		return fmt.Errorf("invalid log level %q: %w", s.LogLevel, err)
	}
	if !s.LogDisabled && s.LogFile == "" {
		return fmt.Errorf("log file path is empty")
	}
	return nil
}

// Level returns the parsed log level, or info when it does not parse.
func (s Settings) Level() log.Level {
	lvl, err := log.ParseLevel(s.LogLevel)
	if err != nil {
		return log.InfoLevel
	}
	return lvl
}
