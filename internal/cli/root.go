package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/raider-tools/arcsafe/internal/ui"
	"github.com/raider-tools/arcsafe/pkg/version"
)

var rootCmd = &cobra.Command{
	Use:   "arcsafe",
	Short: "Check whether an ARC Raiders item is safe to recycle",
	Long: `arcsafe answers one question fast: is this item still needed for a
hideout workstation upgrade or an expedition phase, or can it be
recycled without regret?

Requirement data comes from the community arcraiders-data repository
and is cached locally, so lookups keep working offline. Record your
upgrade progress with "arcsafe progress set" and completed tiers drop
out of the results.

Run without arguments on a terminal to open the interactive overlay.`,
	Version:           version.GetVersion(),
	PersistentPreRunE: setupRuntime,
	RunE:              runRoot,
}

// Execute initializes dependencies and runs the root command.
func Execute() error {
	InitDependencies()
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf("arcsafe %s\n", version.GetVersion()))
}

// setupRuntime loads the configuration and points the default logger at
// stderr with the configured level. It runs for every command through
// the root PersistentPreRunE.
func setupRuntime(cmd *cobra.Command, _ []string) error {
	if deps == nil {
		return fmt.Errorf("dependencies not initialized")
	}
	cfg, err := ensureConfig()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
		Level: parseLogLevel(cfg.System.LogLevel),
	}))
	slog.SetDefault(logger)
	deps.Logger = logger
	return nil
}

// parseLogLevel maps a configured level name to a slog level. Unknown
// names fall back to info.
func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// runRoot opens the interactive overlay. Without a terminal there is
// nothing to draw, so it points at the one-shot search command instead.
func runRoot(cmd *cobra.Command, _ []string) error {
	cfg, err := ensureConfig()
	if err != nil {
		return err
	}

	if deps.Headless.IsHeadless() || cfg.System.NonInteractive {
		return fmt.Errorf("no interactive terminal; use %q instead", "arcsafe search <item>")
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	snap, err := loadSnapshot(ctx)
	if err != nil {
		return err
	}
	store, err := deps.EnsureStore()
	if err != nil {
		return err
	}

	theme := ui.NewTheme(ui.ThemeConfig{NoColor: cfg.System.NoColor})
	overlay := ui.NewOverlay(theme, store, *snap, cfg.Progress, cfg.Search)

	// The alt screen owns the terminal while the overlay runs; route log
	// output away so it cannot corrupt the display.
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))
	defer slog.SetDefault(prev)

	return overlay.Run()
}
