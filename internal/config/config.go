// Package config loads the engine's YAML configuration file. Every
// field has a default so a missing file yields a working setup.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the engine configuration.
type Config struct {
	Project  ProjectConfig  `yaml:"project"`
	History  HistoryConfig  `yaml:"history"`
	Autosave AutosaveConfig `yaml:"autosave"`
	Export   ExportConfig   `yaml:"export"`
}

// ProjectConfig sets the default canvas for new projects.
type ProjectConfig struct {
	Width           int    `yaml:"width"`
	Height          int    `yaml:"height"`
	FPS             int    `yaml:"fps"`
	BackgroundColor string `yaml:"background_color"`
}

// HistoryConfig tunes the undo engine.
type HistoryConfig struct {
	MaxSize int `yaml:"max_size"`
}

// AutosaveConfig tunes the background saver. Durations are seconds.
type AutosaveConfig struct {
	Interval float64 `yaml:"interval"`
	MinGap   float64 `yaml:"min_gap"`
}

// ExportConfig sets export defaults.
type ExportConfig struct {
	Format  string `yaml:"format"`
	Quality int    `yaml:"quality"`
	FPS     int    `yaml:"fps"`
	Bitrate int    `yaml:"bitrate"`
	Workers int    `yaml:"workers"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Project: ProjectConfig{
			Width:           1920,
			Height:          1080,
			FPS:             30,
			BackgroundColor: "#000000",
		},
		History:  HistoryConfig{MaxSize: 100},
		Autosave: AutosaveConfig{Interval: 30, MinGap: 5},
		Export:   ExportConfig{Format: "mp4", Quality: 75, FPS: 30, Bitrate: 8000},
	}
}

// Load reads a YAML config over the defaults. A missing file is not an
// error; a malformed one is.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Default(), fmt.Errorf("parsing %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes the configuration as YAML.
func Save(cfg Config, path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
