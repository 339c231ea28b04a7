package config

import (
	"testing"
)

func TestValidateValidConfig(t *testing.T) {
	t.Parallel()

	cfg := NewDefaultConfig()
	if adjustments := Validate(cfg); len(adjustments) != 0 {
		t.Errorf("Validate() on defaults made adjustments: %v", adjustments)
	}
}

func TestValidateClampsProgress(t *testing.T) {
	t.Parallel()

	cfg := NewDefaultConfig()
	cfg.Progress.Workstations["Scrappy"] = -3
	cfg.Progress.Workstations["Workbench"] = 2
	cfg.Progress.ExpeditionPhase = -1

	adjustments := Validate(cfg)
	if len(adjustments) != 2 {
		t.Fatalf("got %d adjustments, want 2: %v", len(adjustments), adjustments)
	}
	if cfg.Progress.Workstations["Scrappy"] != 0 {
		t.Errorf("Workstations[Scrappy] = %d, want clamped 0", cfg.Progress.Workstations["Scrappy"])
	}
	if cfg.Progress.Workstations["Workbench"] != 2 {
		t.Errorf("Workstations[Workbench] = %d, valid value must not change", cfg.Progress.Workstations["Workbench"])
	}
	if cfg.Progress.ExpeditionPhase != 0 {
		t.Errorf("ExpeditionPhase = %d, want clamped 0", cfg.Progress.ExpeditionPhase)
	}
}

func TestValidateClampsSearch(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		maxResults    int
		threshold     int
		wantResults   int
		wantThreshold int
	}{
		{name: "zero max results", maxResults: 0, threshold: 70, wantResults: DefaultMaxResults, wantThreshold: 70},
		{name: "negative max results", maxResults: -5, threshold: 70, wantResults: DefaultMaxResults, wantThreshold: 70},
		{name: "threshold above range", maxResults: 5, threshold: 101, wantResults: 5, wantThreshold: DefaultFuzzyThreshold},
		{name: "threshold below range", maxResults: 5, threshold: -1, wantResults: 5, wantThreshold: DefaultFuzzyThreshold},
		{name: "boundary values untouched", maxResults: 1, threshold: 100, wantResults: 1, wantThreshold: 100},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := NewDefaultConfig()
			cfg.Search.MaxResults = tt.maxResults
			cfg.Search.FuzzyThreshold = tt.threshold

			Validate(cfg)
			if cfg.Search.MaxResults != tt.wantResults {
				t.Errorf("MaxResults = %d, want %d", cfg.Search.MaxResults, tt.wantResults)
			}
			if cfg.Search.FuzzyThreshold != tt.wantThreshold {
				t.Errorf("FuzzyThreshold = %d, want %d", cfg.Search.FuzzyThreshold, tt.wantThreshold)
			}
		})
	}
}

func TestValidateLogLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		level       string
		want        string
		adjustments int
	}{
		{name: "valid level", level: "debug", want: "debug", adjustments: 0},
		{name: "mixed case normalized", level: "WARN", want: "warn", adjustments: 0},
		{name: "padded level normalized", level: " error ", want: "error", adjustments: 0},
		{name: "empty level gets default", level: "", want: DefaultLogLevel, adjustments: 0},
		{name: "unknown level reset", level: "verbose", want: DefaultLogLevel, adjustments: 1},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := NewDefaultConfig()
			cfg.System.LogLevel = tt.level

			got := Validate(cfg)
			if len(got) != tt.adjustments {
				t.Errorf("got %d adjustments, want %d: %v", len(got), tt.adjustments, got)
			}
			if cfg.System.LogLevel != tt.want {
				t.Errorf("LogLevel = %q, want %q", cfg.System.LogLevel, tt.want)
			}
		})
	}
}

func TestValidationErrorMessage(t *testing.T) {
	t.Parallel()

	err := &ValidationError{Field: "search.max_results", Message: "must be at least 1", Value: 0}
	want := `validation: field "search.max_results": must be at least 1 (got: 0)`
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}

	bare := &ValidationError{Field: "system.log_level", Message: "unknown level"}
	if got := bare.Error(); got != `validation: field "system.log_level": unknown level` {
		t.Errorf("Error() without value = %q", got)
	}
}
