package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/raider-tools/arcsafe/internal/items"
	"github.com/raider-tools/arcsafe/internal/ui"
)

var progressCmd = &cobra.Command{
	Use:   "progress",
	Short: "Show or record your upgrade progress",
	Long: `Show the recorded workstation levels and expedition phase. Completed
tiers are excluded from recycle checks, so keeping this current is what
makes the answers trustworthy.`,
	Args: cobra.NoArgs,
	RunE: runProgressShow,
}

var progressSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Record completed workstation levels and expedition phase",
	Long: `Record progress through the interactive wizard (the default on a
terminal) or non-interactively with flags:

  arcsafe progress set --workstation Scrappy=4 --workstation "Gear Bench=2"
  arcsafe progress set --phase 3

Workstation names resolve case-insensitively against the dataset.
Values outside the dataset bounds are clamped, and the result is saved
immediately.`,
	Args: cobra.NoArgs,
	RunE: runProgressSet,
}

func init() {
	rootCmd.AddCommand(progressCmd)
	progressCmd.AddCommand(progressSetCmd)

	progressSetCmd.Flags().StringArray("workstation", nil, "Completed level as Name=N (repeatable)")
	progressSetCmd.Flags().Int("phase", 0, "Completed expedition phase")
}

func runProgressShow(cmd *cobra.Command, _ []string) error {
	cfg, err := ensureConfig()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	snap, err := loadSnapshot(ctx)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	meta := snap.Meta
	if len(meta.Workstations) == 0 && meta.MaxPhase == 0 {
		_, _ = fmt.Fprintln(out, "no dataset available; run \"arcsafe refresh\" first")
		return nil
	}

	pairs := make([]kvPair, 0, len(meta.Workstations)+1)
	for _, ws := range meta.Workstations {
		level := cfg.Progress.Workstations[ws.Name]
		pairs = append(pairs, kvPair{ws.Name, fmt.Sprintf("%d / %d", level, ws.MaxLevel)})
	}
	pairs = append(pairs, kvPair{"Expedition phase", fmt.Sprintf("%d / %d", cfg.Progress.ExpeditionPhase, meta.MaxPhase)})

	_, _ = fmt.Fprintln(out, renderKeyValueLines(pairs))
	return nil
}

func runProgressSet(cmd *cobra.Command, _ []string) error {
	cfg, err := ensureConfig()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	snap, err := loadSnapshot(ctx)
	if err != nil {
		return err
	}
	meta := snap.Meta

	wsFlags, _ := cmd.Flags().GetStringArray("workstation")
	flagMode := len(wsFlags) > 0 || cmd.Flags().Changed("phase")

	var next items.Progress
	if flagMode {
		next, err = applyProgressFlags(cfg.Progress, meta, wsFlags, getIntFlag(cmd, "phase"), cmd.Flags().Changed("phase"))
		if err != nil {
			return err
		}
	} else {
		if len(meta.Workstations) == 0 && meta.MaxPhase == 0 {
			return fmt.Errorf("no dataset to prompt with; run \"arcsafe refresh\" first")
		}
		theme := ui.NewTheme(ui.ThemeConfig{NoColor: cfg.System.NoColor})
		wizard := ui.NewProgressWizard(theme, deps.Headless)
		next, err = wizard.Run(ctx, meta, cfg.Progress)
		if err != nil {
			if errors.Is(err, ui.ErrCancelled) {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Cancelled, progress unchanged.")
				return nil
			}
			if errors.Is(err, ui.ErrHeadless) {
				return fmt.Errorf("no interactive terminal; use --workstation Name=N and --phase N instead")
			}
			return err
		}
	}

	if err := deps.Config.SetProgress(next); err != nil {
		return err
	}
	if err := deps.Config.Save(); err != nil {
		return fmt.Errorf("save progress: %w", err)
	}

	still := items.Aggregate(snap.Modules, snap.Projects, next).Len()
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), renderSuccessCard("Progress saved",
		renderKeyValueLines([]kvPair{
			{"Workstations recorded", fmt.Sprintf("%d", len(next.Workstations))},
			{"Expedition phase", fmt.Sprintf("%d", next.ExpeditionPhase)},
			{"Items still required", fmt.Sprintf("%d", still)},
		})))
	return nil
}

// applyProgressFlags merges --workstation Name=N values and --phase into
// the recorded progress. Unknown workstation names are rejected with the
// known names listed; levels and phase are clamped to dataset bounds.
func applyProgressFlags(current items.Progress, meta items.Meta, wsFlags []string, phase int, phaseSet bool) (items.Progress, error) {
	next := current.Clone()
	if next.Workstations == nil {
		next.Workstations = map[string]int{}
	}

	for _, raw := range wsFlags {
		name, value, ok := strings.Cut(raw, "=")
		if !ok {
			return items.Progress{}, fmt.Errorf("invalid --workstation value %q: expected Name=N", raw)
		}
		level, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			return items.Progress{}, fmt.Errorf("invalid level in --workstation %q: %w", raw, err)
		}
		resolved, ok := resolveWorkstation(meta, name)
		if !ok {
			return items.Progress{}, fmt.Errorf("unknown workstation %q (known: %s)",
				strings.TrimSpace(name), strings.Join(workstationNames(meta), ", "))
		}
		next.Workstations[resolved] = level
	}
	if phaseSet {
		next.ExpeditionPhase = phase
	}

	return next.Clamp(meta), nil
}

// resolveWorkstation finds the dataset's canonical workstation name for
// a user-supplied one, ignoring case and spacing.
func resolveWorkstation(meta items.Meta, name string) (string, bool) {
	want := items.Normalize(name)
	for _, ws := range meta.Workstations {
		if items.Normalize(ws.Name) == want {
			return ws.Name, true
		}
	}
	return "", false
}

func workstationNames(meta items.Meta) []string {
	names := make([]string, len(meta.Workstations))
	for i, ws := range meta.Workstations {
		names[i] = ws.Name
	}
	return names
}
