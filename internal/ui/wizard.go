package ui

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/raider-tools/arcsafe/internal/items"
)

// ProgressWizard walks the player through recording completed
// workstation levels and the completed expedition phase.
type ProgressWizard struct {
	theme    *Theme
	headless *HeadlessManager
}

// NewProgressWizard creates a ProgressWizard backed by the given theme
// and headless manager.
func NewProgressWizard(theme *Theme, hm *HeadlessManager) *ProgressWizard {
	return &ProgressWizard{theme: theme, headless: hm}
}

// Run asks one question per workstation known to the dataset, then one
// for the expedition phase. Bounds come from feed metadata and current
// values are preselected. It returns ErrHeadless without a TTY,
// ErrCancelled when the user aborts, and respects context cancellation
// between steps.
func (w *ProgressWizard) Run(ctx context.Context, meta items.Meta, current items.Progress) (items.Progress, error) {
	if err := ctx.Err(); err != nil {
		return items.Progress{}, err
	}
	if w.headless.IsHeadless() {
		return items.Progress{}, ErrHeadless
	}
	if len(meta.Workstations) == 0 && meta.MaxPhase == 0 {
		return items.Progress{}, errors.New("ui: dataset metadata is empty")
	}

	result := current.Clamp(meta)
	if result.Workstations == nil {
		result.Workstations = make(map[string]int)
	}

	for _, ws := range meta.Workstations {
		if err := ctx.Err(); err != nil {
			return items.Progress{}, err
		}
		level := result.Workstations[ws.Name]
		err := w.ask(ws.Name, "highest level you have already built", levelOptions(ws.MaxLevel), &level)
		if err != nil {
			return items.Progress{}, err
		}
		result.Workstations[ws.Name] = level
	}

	if err := ctx.Err(); err != nil {
		return items.Progress{}, err
	}
	phase := result.ExpeditionPhase
	err := w.ask("Expedition phase", "highest phase you have already completed", phaseOptions(meta.MaxPhase), &phase)
	if err != nil {
		return items.Progress{}, err
	}
	result.ExpeditionPhase = phase

	return result, nil
}

// ask runs a single-question select form bound to value.
func (w *ProgressWizard) ask(title, desc string, opts []huh.Option[int], value *int) error {
	sel := huh.NewSelect[int]().
		Title(title).
		Description(desc).
		Options(opts...).
		Value(value)

	form := huh.NewForm(huh.NewGroup(sel)).WithTheme(w.formTheme())
	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return ErrCancelled
		}
		return err
	}
	return nil
}

func (w *ProgressWizard) formTheme() *huh.Theme {
	th := huh.ThemeBase()
	if w.theme.NoColor {
		return th
	}
	primary := lipgloss.Color(w.theme.Colors.Primary)
	muted := lipgloss.Color(w.theme.Colors.Muted)
	th.Focused.Title = th.Focused.Title.Foreground(primary).Bold(true)
	th.Focused.SelectSelector = th.Focused.SelectSelector.Foreground(primary)
	th.Focused.SelectedOption = th.Focused.SelectedOption.Foreground(primary)
	th.Focused.Description = th.Focused.Description.Foreground(muted)
	th.Blurred.Title = th.Blurred.Title.Foreground(muted)
	return th
}

// levelOptions lists every reachable workstation level, zero included.
func levelOptions(maxLevel int) []huh.Option[int] {
	opts := make([]huh.Option[int], 0, maxLevel+1)
	opts = append(opts, huh.NewOption("Not upgraded", 0))
	for lvl := 1; lvl <= maxLevel; lvl++ {
		opts = append(opts, huh.NewOption(fmt.Sprintf("Level %d", lvl), lvl))
	}
	return opts
}

// phaseOptions lists every expedition phase, zero included.
func phaseOptions(maxPhase int) []huh.Option[int] {
	opts := make([]huh.Option[int], 0, maxPhase+1)
	opts = append(opts, huh.NewOption("Not started", 0))
	for ph := 1; ph <= maxPhase; ph++ {
		opts = append(opts, huh.NewOption(fmt.Sprintf("Phase %d", ph), ph))
	}
	return opts
}
