package config

import (
	"github.com/raider-tools/arcsafe/internal/items"
)

// Default value constants to avoid magic numbers and strings.
const (
	DefaultMaxResults     = 5
	DefaultFuzzyThreshold = 70

	DefaultLogLevel = "info"
)

// NewDefaultConfig returns a Config with all fields set to compiled
// defaults: no progress recorded, fuzzy fallback on, info logging.
func NewDefaultConfig() *Config {
	return &Config{
		Progress: NewDefaultProgress(),
		Search:   NewDefaultSearchConfig(),
		System:   NewDefaultSystemConfig(),
	}
}

// NewDefaultProgress returns an empty progress record: nothing built,
// no expedition phase completed.
func NewDefaultProgress() items.Progress {
	return items.Progress{Workstations: map[string]int{}}
}

// NewDefaultSearchConfig returns a SearchConfig with default values.
func NewDefaultSearchConfig() SearchConfig {
	return SearchConfig{
		MaxResults:     DefaultMaxResults,
		Fuzzy:          true,
		FuzzyThreshold: DefaultFuzzyThreshold,
	}
}

// NewDefaultSystemConfig returns a SystemConfig with default values.
func NewDefaultSystemConfig() SystemConfig {
	return SystemConfig{
		LogLevel: DefaultLogLevel,
	}
}
