package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"

	"github.com/raider-tools/arcsafe/internal/config"
	"github.com/raider-tools/arcsafe/internal/feed"
	"github.com/raider-tools/arcsafe/internal/items"
	"github.com/raider-tools/arcsafe/internal/search"
)

// refreshTimeout bounds the async dataset refresh triggered by ctrl+r.
const refreshTimeout = 60 * time.Second

// refreshDoneMsg carries the result of an async dataset refresh.
type refreshDoneMsg struct {
	snap feed.Snapshot
	err  error
}

// Overlay is the interactive recycle-check screen: a single query box
// whose results update on every keystroke. It is a bubbletea Model;
// snapshot swaps arrive as messages so index rebuilds never race with
// queries.
type Overlay struct {
	theme    *Theme
	store    *feed.Store
	cfg      config.SearchConfig
	progress items.Progress

	input textinput.Model
	spin  spinner.Model

	snap      feed.Snapshot
	index     *search.Index
	retrieved time.Time

	results    []search.Result
	fuzzy      bool
	refreshing bool
	status     string
	width      int
	height     int
}

// NewOverlay builds the overlay from an initial snapshot and the
// player's recorded progress. The store is only used for ctrl+r
// refreshes; pass the snapshot the caller already loaded.
func NewOverlay(theme *Theme, store *feed.Store, snap feed.Snapshot, progress items.Progress, cfg config.SearchConfig) Overlay {
	ti := textinput.New()
	ti.Placeholder = "item name"
	ti.Prompt = "> "
	ti.PromptStyle = theme.fg(theme.Colors.Primary)
	ti.CharLimit = 64
	ti.Focus()

	sp := spinner.New(spinner.WithSpinner(spinner.Dot))
	sp.Style = theme.fg(theme.Colors.Primary)

	o := Overlay{
		theme:    theme,
		store:    store,
		cfg:      cfg,
		progress: progress,
		input:    ti,
		spin:     sp,
	}
	o.apply(snap)
	if n := len(snap.Warnings); n > 0 {
		o.status = fmt.Sprintf("%d of %d sources unavailable", n, len(snap.Sources))
	}
	return o
}

// apply replaces the active snapshot, rebuilds the search index and
// recomputes results for the current query.
func (o *Overlay) apply(snap feed.Snapshot) {
	o.snap = snap
	set := items.Aggregate(snap.Modules, snap.Projects, o.progress)
	o.index = search.NewIndex(set)

	o.retrieved = time.Time{}
	for _, s := range snap.Sources {
		if s.RetrievedAt.After(o.retrieved) {
			o.retrieved = s.RetrievedAt
		}
	}

	o.lookup()
}

// lookup recomputes results for the current query text. Substring
// matches win; the fuzzy fallback only runs when they come up empty.
func (o *Overlay) lookup() {
	o.results = nil
	o.fuzzy = false

	q := o.input.Value()
	if items.Normalize(q) == "" {
		return
	}
	o.results = o.index.Query(q)
	if len(o.results) == 0 && o.cfg.Fuzzy {
		o.results = o.index.Fuzzy(q, o.cfg.FuzzyThreshold)
		o.fuzzy = len(o.results) > 0
	}
}

func (o Overlay) Init() tea.Cmd {
	return textinput.Blink
}

func (o Overlay) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyEsc, tea.KeyCtrlC:
			return o, tea.Quit
		case tea.KeyCtrlR:
			if o.refreshing {
				return o, nil
			}
			o.refreshing = true
			o.status = "refreshing dataset"
			return o, tea.Batch(o.spin.Tick, refreshCmd(o.store))
		}
	case tea.WindowSizeMsg:
		o.width = msg.Width
		o.height = msg.Height
		return o, nil
	case spinner.TickMsg:
		if !o.refreshing {
			return o, nil
		}
		var cmd tea.Cmd
		o.spin, cmd = o.spin.Update(msg)
		return o, cmd
	case refreshDoneMsg:
		o.refreshing = false
		if msg.err != nil {
			o.status = "refresh failed, keeping previous data"
			return o, nil
		}
		o.apply(msg.snap)
		o.status = fmt.Sprintf("dataset refreshed, %d items required", o.index.Len())
		if n := len(msg.snap.Warnings); n > 0 {
			o.status = fmt.Sprintf("%s (%d sources unavailable)", o.status, n)
		}
		return o, nil
	}

	var cmd tea.Cmd
	o.input, cmd = o.input.Update(msg)
	o.lookup()
	return o, cmd
}

func (o Overlay) View() string {
	var b strings.Builder

	b.WriteString(o.theme.title().Render("ARC Safe Recycle") + "\n\n")
	b.WriteString(o.input.View() + "\n\n")

	switch {
	case o.index.Len() == 0:
		b.WriteString(o.theme.warning().Render("no dataset available, press ctrl+r to fetch") + "\n")
	case items.Normalize(o.input.Value()) == "":
		b.WriteString(o.theme.muted().Render("type an item name to check it") + "\n")
	case len(o.results) == 0:
		b.WriteString(RenderSafe(o.theme, o.input.Value()) + "\n")
	default:
		if o.fuzzy {
			b.WriteString(o.theme.muted().Render("closest matches:") + "\n")
		}
		b.WriteString(RenderResults(o.theme, o.results, o.cfg.MaxResults) + "\n")
	}

	b.WriteString("\n")
	if o.refreshing {
		b.WriteString(o.spin.View() + " " + o.status + "\n")
	} else if o.status != "" {
		b.WriteString(o.theme.muted().Render(o.status) + "\n")
	}

	help := "esc quit · ctrl+r refresh"
	if !o.retrieved.IsZero() {
		help += " · data " + humanize.Time(o.retrieved)
	}
	b.WriteString(o.theme.muted().Render(help) + "\n")
	return b.String()
}

// Run starts the overlay on the current terminal and blocks until the
// user quits.
func (o Overlay) Run() error {
	p := tea.NewProgram(o, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func refreshCmd(store *feed.Store) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), refreshTimeout)
		defer cancel()
		snap, err := store.Refresh(ctx)
		msg := refreshDoneMsg{err: err}
		if snap != nil {
			msg.snap = *snap
		}
		return msg
	}
}
