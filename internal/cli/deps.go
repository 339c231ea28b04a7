// Package cli provides the Cobra command tree and dependency wiring for
// the arcsafe CLI. This file defines the Dependencies struct (Composition
// Root) where concrete services are created and handed to commands.
package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/raider-tools/arcsafe/internal/config"
	"github.com/raider-tools/arcsafe/internal/defs"
	"github.com/raider-tools/arcsafe/internal/feed"
	"github.com/raider-tools/arcsafe/internal/ui"
)

// Dependencies holds the services shared by CLI commands. This is the
// Composition Root: the only place where concrete implementations are
// instantiated and wired together.
type Dependencies struct {
	Config   *config.ConfigManager
	Store    *feed.Store
	Headless *ui.HeadlessManager
	Logger   *slog.Logger
}

// deps is the global dependencies instance, initialized by InitDependencies.
// CLI commands access this through the package-level variable.
var deps *Dependencies

// InitDependencies creates the shared services. It should be called once
// during application startup. The feed store needs a cache directory, so
// it is initialized lazily via EnsureStore.
func InitDependencies() {
	deps = &Dependencies{
		Config:   config.NewConfigManager(),
		Headless: ui.NewHeadlessManager(),
		Logger:   slog.Default(),
	}
}

// GetDeps returns the current Dependencies instance.
// Returns nil if InitDependencies has not been called.
func GetDeps() *Dependencies {
	return deps
}

// SetDeps replaces the global dependencies (used for testing).
func SetDeps(d *Dependencies) {
	deps = d
}

// EnsureStore lazily initializes the feed store. The upstream base URL
// can be overridden with ARCSAFE_DATA_URL and the cache location with
// ARCSAFE_CACHE_DIR. Subsequent calls are no-ops once the store exists.
func (d *Dependencies) EnsureStore() (*feed.Store, error) {
	if d.Store != nil {
		return d.Store, nil
	}

	dir, err := feed.DefaultCacheDir()
	if err != nil {
		return nil, fmt.Errorf("resolve cache directory: %w", err)
	}
	client := feed.NewClient(os.Getenv(defs.EnvDataURL), nil)
	d.Store = feed.NewStore(client, feed.NewCache(dir))
	return d.Store, nil
}

// ensureConfig returns the loaded configuration, loading it from the
// default directory on first use.
func ensureConfig() (*config.Config, error) {
	if deps == nil {
		return nil, errors.New("dependencies not initialized")
	}
	if cfg := deps.Config.Get(); cfg != nil {
		return cfg, nil
	}
	return deps.Config.Load("")
}

// loadSnapshot builds the dataset snapshot from cache or network. A
// completely unavailable dataset degrades to an empty snapshot with a
// warning instead of an error, so lookup commands keep working and
// report every item as safe until a refresh succeeds.
func loadSnapshot(ctx context.Context) (*feed.Snapshot, error) {
	store, err := deps.EnsureStore()
	if err != nil {
		return nil, err
	}

	snap, err := store.Load(ctx)
	if err != nil {
		if errors.Is(err, feed.ErrUnavailable) {
			slog.Warn("no dataset available, every item will look safe until a refresh succeeds")
			return snap, nil
		}
		return nil, err
	}
	return snap, nil
}
