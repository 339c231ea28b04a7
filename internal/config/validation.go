package config

import (
	"fmt"
	"slices"
	"strings"
)

// validLogLevels lists the accepted system.log_level values.
var validLogLevels = []string{"debug", "info", "warn", "error"}

// Validate clamps out-of-range settings in place and reports every
// adjustment made. It never fails: the worst input degrades to the
// nearest valid value, so a hand-edited settings file cannot prevent
// the tool from starting.
func Validate(cfg *Config) []ValidationError {
	var errs []ValidationError

	errs = append(errs, validateProgress(cfg)...)
	errs = append(errs, validateSearch(cfg)...)
	errs = append(errs, validateSystem(cfg)...)

	return errs
}

// validateProgress clamps negative workstation levels and phases to
// zero. Upper bounds depend on the loaded dataset and are enforced at
// aggregation time instead.
func validateProgress(cfg *Config) []ValidationError {
	var errs []ValidationError

	for name, lvl := range cfg.Progress.Workstations {
		if lvl < 0 {
			errs = append(errs, ValidationError{
				Field:   "progress.workstations." + name,
				Message: "completed level cannot be negative, clamped to 0",
				Value:   lvl,
			})
			cfg.Progress.Workstations[name] = 0
		}
	}

	if cfg.Progress.ExpeditionPhase < 0 {
		errs = append(errs, ValidationError{
			Field:   "progress.expedition_phase",
			Message: "completed phase cannot be negative, clamped to 0",
			Value:   cfg.Progress.ExpeditionPhase,
		})
		cfg.Progress.ExpeditionPhase = 0
	}

	return errs
}

// validateSearch clamps result limits and the fuzzy threshold into
// their working ranges.
func validateSearch(cfg *Config) []ValidationError {
	var errs []ValidationError

	if cfg.Search.MaxResults < 1 {
		errs = append(errs, ValidationError{
			Field:   "search.max_results",
			Message: fmt.Sprintf("must be at least 1, reset to %d", DefaultMaxResults),
			Value:   cfg.Search.MaxResults,
		})
		cfg.Search.MaxResults = DefaultMaxResults
	}

	if cfg.Search.FuzzyThreshold < 0 || cfg.Search.FuzzyThreshold > 100 {
		errs = append(errs, ValidationError{
			Field:   "search.fuzzy_threshold",
			Message: fmt.Sprintf("must be between 0 and 100, reset to %d", DefaultFuzzyThreshold),
			Value:   cfg.Search.FuzzyThreshold,
		})
		cfg.Search.FuzzyThreshold = DefaultFuzzyThreshold
	}

	return errs
}

// validateSystem resets unknown log levels to the default.
func validateSystem(cfg *Config) []ValidationError {
	var errs []ValidationError

	level := strings.ToLower(strings.TrimSpace(cfg.System.LogLevel))
	if level == "" {
		cfg.System.LogLevel = DefaultLogLevel
		return errs
	}
	if !slices.Contains(validLogLevels, level) {
		errs = append(errs, ValidationError{
			Field:   "system.log_level",
			Message: fmt.Sprintf("must be one of: %s", strings.Join(validLogLevels, ", ")),
			Value:   cfg.System.LogLevel,
		})
		level = DefaultLogLevel
	}
	cfg.System.LogLevel = level

	return errs
}
