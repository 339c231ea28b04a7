package config

import (
	"fmt"
	"log/slog"
	"maps"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/raider-tools/arcsafe/internal/defs"
)

// Loader reads settings from YAML section files.
// It is thread-safe via sync.RWMutex.
type Loader struct {
	mu             sync.RWMutex
	loadedSections map[string]bool
}

// NewLoader creates a new Loader instance.
func NewLoader() *Loader {
	return &Loader{}
}

// Load reads all section files from the given directory and returns a
// merged Config with defaults applied for missing fields. Missing files
// use default values; invalid YAML files are skipped with a warning.
func (l *Loader) Load(configDir string) (*Config, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.loadedSections = make(map[string]bool)
	cfg := NewDefaultConfig()

	dir := filepath.Clean(configDir)
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		slog.Debug("config directory not found, using defaults", "path", dir)
		return cfg, nil
	}

	l.loadProgressSection(dir, cfg)
	l.loadSearchSection(dir, cfg)
	l.loadSystemSection(dir, cfg)

	return cfg, nil
}

// LoadedSections returns a copy of the map indicating which sections
// were successfully loaded from YAML files.
func (l *Loader) LoadedSections() map[string]bool {
	l.mu.RLock()
	defer l.mu.RUnlock()

	result := make(map[string]bool, len(l.loadedSections))
	maps.Copy(result, l.loadedSections)
	return result
}

// loadProgressSection loads the player progress section from progress.yaml.
func (l *Loader) loadProgressSection(dir string, cfg *Config) {
	wrapper := &progressFileWrapper{Progress: cfg.Progress}
	loaded, err := loadYAMLFile(dir, defs.ProgressYAML, wrapper)
	if err != nil {
		slog.Warn("failed to load progress config, using defaults", "error", err)
		return
	}
	if loaded {
		if wrapper.Progress.Workstations == nil {
			wrapper.Progress.Workstations = map[string]int{}
		}
		cfg.Progress = wrapper.Progress
		l.loadedSections["progress"] = true
	}
}

// loadSearchSection loads the search behavior section from search.yaml.
func (l *Loader) loadSearchSection(dir string, cfg *Config) {
	wrapper := &searchFileWrapper{Search: cfg.Search}
	loaded, err := loadYAMLFile(dir, defs.SearchYAML, wrapper)
	if err != nil {
		slog.Warn("failed to load search config, using defaults", "error", err)
		return
	}
	if loaded {
		cfg.Search = wrapper.Search
		l.loadedSections["search"] = true
	}
}

// loadSystemSection loads the system section from system.yaml.
func (l *Loader) loadSystemSection(dir string, cfg *Config) {
	wrapper := &systemFileWrapper{System: cfg.System}
	loaded, err := loadYAMLFile(dir, defs.SystemYAML, wrapper)
	if err != nil {
		slog.Warn("failed to load system config, using defaults", "error", err)
		return
	}
	if loaded {
		cfg.System = wrapper.System
		l.loadedSections["system"] = true
	}
}

// loadYAMLFile reads a YAML file from the given directory and
// unmarshals it into the target struct. Returns (true, nil) if the file
// was found and parsed, (false, nil) if the file does not exist, or
// (false, error) on failure.
func loadYAMLFile(dir, filename string, target any) (bool, error) {
	path := filepath.Join(dir, filename)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("read %s: %w", filename, err)
	}

	if err := yaml.Unmarshal(data, target); err != nil {
		return false, fmt.Errorf("parse %s: %w", filename, ErrInvalidYAML)
	}

	return true, nil
}
