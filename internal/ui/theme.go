package ui

import "github.com/charmbracelet/lipgloss"

// ThemeConfig configures theme construction.
type ThemeConfig struct {
	NoColor bool
}

// ThemeColors is the hex palette used across the UI.
type ThemeColors struct {
	Primary   string
	Secondary string
	Success   string
	Danger    string
	Warning   string
	Muted     string
}

// Theme holds the palette and the color switch for all UI output.
// With NoColor set, every style helper degrades to plain text.
type Theme struct {
	Colors  ThemeColors
	NoColor bool
}

// NewTheme creates a theme with the default palette.
func NewTheme(cfg ThemeConfig) *Theme {
	return &Theme{
		Colors: ThemeColors{
			Primary:   "#1EB4FF",
			Secondary: "#7C3AED",
			Success:   "#22C55E",
			Danger:    "#EF4444",
			Warning:   "#F59E0B",
			Muted:     "#6B7280",
		},
		NoColor: cfg.NoColor,
	}
}

// fg returns a foreground-colored style, or a plain style when colors
// are disabled.
func (t *Theme) fg(color string) lipgloss.Style {
	if t.NoColor {
		return lipgloss.NewStyle()
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color))
}

func (t *Theme) title() lipgloss.Style {
	if t.NoColor {
		return lipgloss.NewStyle()
	}
	return t.fg(t.Colors.Primary).Bold(true)
}

func (t *Theme) success() lipgloss.Style { return t.fg(t.Colors.Success) }
func (t *Theme) danger() lipgloss.Style  { return t.fg(t.Colors.Danger) }
func (t *Theme) warning() lipgloss.Style { return t.fg(t.Colors.Warning) }
func (t *Theme) muted() lipgloss.Style   { return t.fg(t.Colors.Muted) }
