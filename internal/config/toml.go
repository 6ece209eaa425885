// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Store    StoreConfig    `toml:"store"`
	Reminder ReminderConfig `toml:"reminder"`
	Mirror   MirrorConfig   `toml:"mirror"`
	Graph    GraphConfig    `toml:"graph"`
}

// StoreConfig maps storage settings.
type StoreConfig struct {
	Path *string `toml:"path"`
}

// ReminderConfig maps missed-day reminder settings.
type ReminderConfig struct {
	Lookback  *int `toml:"lookback"`
	Threshold *int `toml:"threshold"`
}

// MirrorConfig maps snapshot mirroring settings.
type MirrorConfig struct {
	Interval *string `toml:"interval"`
	Out      *string `toml:"out"`
}

// GraphConfig maps graph output settings.
type GraphConfig struct {
	Window *string `toml:"window"`
	Color  *bool   `toml:"color"`
}

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	return cfg, nil
}
