package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/raider-tools/arcsafe/internal/defs"
	"github.com/raider-tools/arcsafe/internal/feed"
	"github.com/raider-tools/arcsafe/internal/items"
	"github.com/raider-tools/arcsafe/internal/ui"
)

var refreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Re-download the requirement dataset",
	Long: `Fetch the hideout and expedition feeds from the upstream dataset and
rewrite the local cache. A source that cannot be fetched falls back to
its cached copy; the summary lists anything that stayed stale.`,
	Args: cobra.NoArgs,
	RunE: runRefresh,
}

func init() {
	rootCmd.AddCommand(refreshCmd)
}

func runRefresh(cmd *cobra.Command, _ []string) error {
	cfg, err := ensureConfig()
	if err != nil {
		return err
	}
	store, err := deps.EnsureStore()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	theme := ui.NewTheme(ui.ThemeConfig{NoColor: cfg.System.NoColor})
	progress := ui.NewProgressTo(theme, deps.Headless, cmd.OutOrStdout())
	bar := progress.Start("downloading dataset", len(defs.HideoutFiles)+1)
	store.OnSource(func(done, total int, name string) {
		bar.SetTitle(name)
		bar.Increment(1)
	})
	snap, err := store.Refresh(ctx)
	store.OnSource(nil)
	bar.Done()

	if err != nil {
		if errors.Is(err, feed.ErrUnavailable) {
			return fmt.Errorf("refresh failed: no source could be fetched and no cached copy exists")
		}
		return err
	}

	fetched := 0
	for _, src := range snap.Sources {
		if src.Origin == feed.OriginNetwork {
			fetched++
		}
	}
	required := items.Aggregate(snap.Modules, snap.Projects, cfg.Progress).Len()

	details := []string{renderKeyValueLines([]kvPair{
		{"Sources", fmt.Sprintf("%d of %d fetched", fetched, len(snap.Sources))},
		{"Workstation modules", fmt.Sprintf("%d", len(snap.Modules))},
		{"Expedition projects", fmt.Sprintf("%d", len(snap.Projects))},
		{"Items still required", fmt.Sprintf("%d", required)},
	})}
	for _, w := range snap.Warnings {
		details = append(details, symWarning()+" "+cliWarn.Render(w))
	}

	_, _ = fmt.Fprintln(cmd.OutOrStdout(), renderSuccessCard("Dataset refreshed", details...))
	return nil
}
