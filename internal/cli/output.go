package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

// CLI output styles for consistent terminal output across commands.
var (
	cliSuccess = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#059669", Dark: "#10B981"})
	cliWarn    = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#D97706", Dark: "#F59E0B"})
	cliMuted   = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#9CA3AF", Dark: "#6B7280"})

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.AdaptiveColor{Light: "#D1D5DB", Dark: "#4B5563"}).
			Padding(0, 1)
)

func symSuccess() string { return cliSuccess.Render("✓") }
func symWarning() string { return cliWarn.Render("!") }

// kvPair is one label/value line inside a card or summary block.
type kvPair struct {
	key   string
	value string
}

// renderKeyValueLines renders pairs as aligned "key  value" lines. Keys
// are padded before styling so ANSI escapes do not skew the columns.
func renderKeyValueLines(pairs []kvPair) string {
	width := 0
	for _, p := range pairs {
		if len(p.key) > width {
			width = len(p.key)
		}
	}

	lines := make([]string, len(pairs))
	for i, p := range pairs {
		lines[i] = cliMuted.Render(fmt.Sprintf("%-*s", width, p.key)) + "  " + p.value
	}
	return strings.Join(lines, "\n")
}

// renderSuccessCard renders a bordered block with a check-marked title
// followed by optional detail lines.
func renderSuccessCard(title string, details ...string) string {
	body := symSuccess() + " " + lipgloss.NewStyle().Bold(true).Render(title)
	if len(details) > 0 {
		body += "\n" + strings.Join(details, "\n")
	}
	return cardStyle.Render(body)
}

// getBoolFlag reads a bool flag, returning false when unset or on error.
func getBoolFlag(cmd *cobra.Command, name string) bool {
	v, err := cmd.Flags().GetBool(name)
	if err != nil {
		return false
	}
	return v
}

// getIntFlag reads an int flag, returning zero when unset or on error.
func getIntFlag(cmd *cobra.Command, name string) int {
	v, err := cmd.Flags().GetInt(name)
	if err != nil {
		return 0
	}
	return v
}
