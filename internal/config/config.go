// Package config handles tool configuration loading and management.
package config

import "github.com/Faultbox/rigforge/internal/history"

// Config holds all rigforge settings.
type Config struct {
	Matching MatchingConfig `yaml:"matching"`
	Rig      RigConfig      `yaml:"rig"`
	History  HistoryConfig  `yaml:"history"`
	Store    StoreConfig    `yaml:"store"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// MatchingConfig tunes bone-name matching.
type MatchingConfig struct {
	// NamespacePrefixes are rig-namespace tags stripped before
	// comparison, e.g. "mixamorig".
	NamespacePrefixes []string `yaml:"namespace_prefixes"`
}

// RigConfig overrides the canonical rig description.
type RigConfig struct {
	// CanonicalJoints replaces the built-in canonical joint list when
	// non-empty.
	CanonicalJoints []string `yaml:"canonical_joints"`
}

// HistoryConfig tunes the reversible-operation log.
type HistoryConfig struct {
	Depth int `yaml:"depth"`
}

// StoreConfig names the preset key-value store.
type StoreConfig struct {
	AppName string `yaml:"app_name"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Matching: MatchingConfig{
			NamespacePrefixes: []string{"mixamorig"},
		},
		Rig: RigConfig{},
		History: HistoryConfig{
			Depth: history.DefaultDepth,
		},
		Store: StoreConfig{
			AppName: "rigforge",
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
