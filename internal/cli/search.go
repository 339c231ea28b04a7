package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/raider-tools/arcsafe/internal/items"
	"github.com/raider-tools/arcsafe/internal/search"
	"github.com/raider-tools/arcsafe/internal/ui"
)

var searchCmd = &cobra.Command{
	Use:   "search [item name]",
	Short: "Check an item against the still-required list",
	Long: `Look up an item name against everything still needed for hideout
workstation upgrades and expedition phases. Matches print with the
upgrades that still consume them; a name with no match is safe to
recycle.

The query matches anywhere in the item name, so "cell" finds Power
Cell. When nothing matches and fuzzy search is enabled, close
misspellings are suggested instead.

With --all the full still-required list prints and no query is needed.`,
	Example: `  arcsafe search power cell
  arcsafe search wires --limit 3
  arcsafe search --all`,
	RunE: runSearch,
}

func init() {
	rootCmd.AddCommand(searchCmd)

	searchCmd.Flags().Bool("all", false, "List every still-required item")
	searchCmd.Flags().Int("limit", 0, "Maximum items to print (default: search.max_results; 0 with --all)")
	searchCmd.Flags().Bool("plain", false, "Disable styled output")
}

func runSearch(cmd *cobra.Command, args []string) error {
	cfg, err := ensureConfig()
	if err != nil {
		return err
	}

	all := getBoolFlag(cmd, "all")
	if !all && len(args) == 0 {
		return fmt.Errorf("provide an item name to check, or --all for the full list")
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	snap, err := loadSnapshot(ctx)
	if err != nil {
		return err
	}

	set := items.Aggregate(snap.Modules, snap.Projects, cfg.Progress)
	index := search.NewIndex(set)

	limit := 0
	if !all {
		limit = cfg.Search.MaxResults
	}
	if cmd.Flags().Changed("limit") {
		limit = getIntFlag(cmd, "limit")
	}

	plain := getBoolFlag(cmd, "plain") || !isatty.IsTerminal(os.Stdout.Fd())
	theme := ui.NewTheme(ui.ThemeConfig{NoColor: cfg.System.NoColor || plain})
	out := cmd.OutOrStdout()

	if all {
		results := index.All()
		if len(results) == 0 {
			_, _ = fmt.Fprintln(out, "nothing is required right now")
			return nil
		}
		_, _ = fmt.Fprintln(out, ui.RenderResults(theme, results, limit))
		return nil
	}

	query := strings.Join(args, " ")
	results := index.Query(query)
	if len(results) == 0 && cfg.Search.Fuzzy {
		results = index.Fuzzy(query, cfg.Search.FuzzyThreshold)
		if len(results) > 0 {
			_, _ = fmt.Fprintln(out, cliMuted.Render("closest matches:"))
		}
	}
	if len(results) == 0 {
		_, _ = fmt.Fprintln(out, ui.RenderSafe(theme, query))
		return nil
	}
	_, _ = fmt.Fprintln(out, ui.RenderResults(theme, results, limit))
	return nil
}
