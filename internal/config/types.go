package config

import (
	"github.com/raider-tools/arcsafe/internal/items"
)

// Config is the root settings aggregate containing all sections. The
// progress section reuses the domain Progress type so the aggregator
// consumes settings without conversion.
type Config struct {
	Progress items.Progress `yaml:"progress"`
	Search   SearchConfig   `yaml:"search"`
	System   SystemConfig   `yaml:"system"`
}

// SearchConfig represents the search behavior section.
type SearchConfig struct {
	MaxResults     int  `yaml:"max_results"`
	Fuzzy          bool `yaml:"fuzzy"`
	FuzzyThreshold int  `yaml:"fuzzy_threshold"`
}

// SystemConfig represents the system section.
type SystemConfig struct {
	LogLevel       string `yaml:"log_level"`
	NoColor        bool   `yaml:"no_color"`
	NonInteractive bool   `yaml:"non_interactive"`
}

// YAML file wrapper types for unmarshaling with top-level keys. Each
// section file wraps its content under its section name.

type progressFileWrapper struct {
	Progress items.Progress `yaml:"progress"`
}

type searchFileWrapper struct {
	Search SearchConfig `yaml:"search"`
}

type systemFileWrapper struct {
	System SystemConfig `yaml:"system"`
}
