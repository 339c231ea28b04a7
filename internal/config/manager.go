package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/raider-tools/arcsafe/internal/defs"
	"github.com/raider-tools/arcsafe/internal/items"
)

// managerState represents the lifecycle state of the ConfigManager.
type managerState int

const (
	stateUninitialized managerState = iota
	stateInitialized
)

// ConfigManager provides thread-safe settings management.
// It must be initialized via Load() before use.
type ConfigManager struct {
	mu             sync.RWMutex
	config         *Config
	dir            string
	state          managerState
	loader         *Loader
	loadedSections map[string]bool
}

// NewConfigManager creates a new ConfigManager instance in
// uninitialized state.
func NewConfigManager() *ConfigManager {
	return &ConfigManager{
		loader: NewLoader(),
		state:  stateUninitialized,
	}
}

// DefaultConfigDir resolves the settings directory: the
// ARCSAFE_CONFIG_DIR environment variable when set, otherwise the
// per-user config directory.
func DefaultConfigDir() (string, error) {
	if env := os.Getenv(defs.EnvConfigDir); env != "" {
		return filepath.Clean(env), nil
	}
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("config: resolve config dir: %w", err)
	}
	return filepath.Join(base, defs.AppDir), nil
}

// Load reads the settings from configDir, merging file values with
// compiled defaults and applying environment variable overrides. An
// empty configDir resolves via DefaultConfigDir. Out-of-range values
// are clamped with a warning, never rejected.
func (m *ConfigManager) Load(configDir string) (*Config, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if configDir == "" {
		resolved, err := DefaultConfigDir()
		if err != nil {
			return nil, err
		}
		configDir = resolved
	}
	configDir = filepath.Clean(configDir)

	cfg, err := m.loader.Load(configDir)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	m.loadedSections = m.loader.LoadedSections()

	// Environment variables win over file values.
	applyEnvOverrides(cfg)

	for _, adj := range Validate(cfg) {
		slog.Warn("adjusted out-of-range setting", "error", &adj)
	}

	m.config = cfg
	m.dir = configDir
	m.state = stateInitialized

	return cfg, nil
}

// Get returns the current in-memory settings.
// Returns nil if the manager has not been initialized via Load().
func (m *ConfigManager) Get() *Config {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.config
}

// Dir returns the resolved settings directory, or the empty string
// before Load().
func (m *ConfigManager) Dir() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.dir
}

// LoadedSections reports which sections came from files rather than
// defaults on the last load.
func (m *ConfigManager) LoadedSections() map[string]bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make(map[string]bool, len(m.loadedSections))
	for k, v := range m.loadedSections {
		out[k] = v
	}
	return out
}

// SetProgress replaces the in-memory progress section.
// Returns ErrNotInitialized if Load() has not been called.
func (m *ConfigManager) SetProgress(p items.Progress) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state == stateUninitialized {
		return ErrNotInitialized
	}
	if p.Workstations == nil {
		p.Workstations = map[string]int{}
	}
	m.config.Progress = p
	return nil
}

// SetSearch replaces the in-memory search section.
// Returns ErrNotInitialized if Load() has not been called.
func (m *ConfigManager) SetSearch(s SearchConfig) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state == stateUninitialized {
		return ErrNotInitialized
	}
	m.config.Search = s
	return nil
}

// SetSystem replaces the in-memory system section.
// Returns ErrNotInitialized if Load() has not been called.
func (m *ConfigManager) SetSystem(s SystemConfig) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state == stateUninitialized {
		return ErrNotInitialized
	}
	m.config.System = s
	return nil
}

// Save persists the current settings to disk atomically. Each section
// is saved to its own YAML file using temp file + os.Rename.
// Returns ErrNotInitialized if Load() has not been called.
func (m *ConfigManager) Save() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state == stateUninitialized {
		return ErrNotInitialized
	}

	if err := os.MkdirAll(m.dir, 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	if err := saveSection(m.dir, defs.ProgressYAML, progressFileWrapper{Progress: m.config.Progress}); err != nil {
		return fmt.Errorf("save progress config: %w", err)
	}
	if err := saveSection(m.dir, defs.SearchYAML, searchFileWrapper{Search: m.config.Search}); err != nil {
		return fmt.Errorf("save search config: %w", err)
	}
	if err := saveSection(m.dir, defs.SystemYAML, systemFileWrapper{System: m.config.System}); err != nil {
		return fmt.Errorf("save system config: %w", err)
	}

	return nil
}

// Reload forces a re-read from disk, replacing the in-memory settings.
// Returns ErrNotInitialized if Load() has not been called.
func (m *ConfigManager) Reload() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state == stateUninitialized {
		return ErrNotInitialized
	}

	cfg, err := m.loader.Load(m.dir)
	if err != nil {
		return fmt.Errorf("reload config: %w", err)
	}

	m.loadedSections = m.loader.LoadedSections()
	applyEnvOverrides(cfg)

	for _, adj := range Validate(cfg) {
		slog.Warn("adjusted out-of-range setting", "error", &adj)
	}

	m.config = cfg
	return nil
}

// applyEnvOverrides applies environment variable overrides to the
// settings. Environment variables have higher priority than files.
func applyEnvOverrides(cfg *Config) {
	if level := os.Getenv(defs.EnvLogLevel); level != "" {
		cfg.System.LogLevel = level
	}
	if noColor := os.Getenv(defs.EnvNoColor); noColor == "true" || noColor == "1" {
		cfg.System.NoColor = true
	}
}

// saveSection marshals data to YAML and writes it atomically.
func saveSection(dir, filename string, data any) error {
	yamlData, err := yaml.Marshal(data)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", filename, err)
	}

	path := filepath.Join(dir, filename)
	return atomicWrite(path, yamlData)
}

// atomicWrite writes data to a file atomically using temp file + os.Rename.
func atomicWrite(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".arcsafe-config-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }() // cleanup on error path

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}

	return os.Rename(tmpName, path)
}
