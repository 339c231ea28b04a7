package ui

import (
	"strings"
	"testing"

	"github.com/raider-tools/arcsafe/internal/items"
	"github.com/raider-tools/arcsafe/internal/search"
)

func TestRenderResultsBlocks(t *testing.T) {
	t.Parallel()

	results := []search.Result{
		{Name: "Power Cell", Item: &items.Item{Display: "Power Cell", Usages: []items.Usage{
			{Source: items.SourceWorkstation, Label: "Scrappy 4", Quantity: 2},
			{Source: items.SourceExpedition, Label: "Expedition – Launch Prep 1", Quantity: 1},
		}}},
		{Name: "Wires", Item: &items.Item{Display: "Wires", Usages: []items.Usage{
			{Source: items.SourceWorkstation, Label: "Scrappy 4", Quantity: 6},
		}}},
	}

	got := RenderResults(testTheme(), results, 0)
	want := "❌ Power Cell\n" +
		"• Scrappy 4 – ×2\n" +
		"• Expedition – Launch Prep 1 – ×1\n" +
		"\n" +
		"❌ Wires\n" +
		"• Scrappy 4 – ×6"
	if got != want {
		t.Errorf("RenderResults() =\n%q\nwant\n%q", got, want)
	}
}

func TestRenderResultsLimit(t *testing.T) {
	t.Parallel()

	results := []search.Result{
		{Name: "Arc Alloy", Item: &items.Item{Display: "Arc Alloy"}},
		{Name: "Circuit Board", Item: &items.Item{Display: "Circuit Board"}},
		{Name: "Wires", Item: &items.Item{Display: "Wires"}},
	}

	got := RenderResults(testTheme(), results, 2)
	if !strings.Contains(got, "Arc Alloy") || !strings.Contains(got, "Circuit Board") {
		t.Errorf("limit 2 should keep the first two results:\n%s", got)
	}
	if strings.Contains(got, "Wires") {
		t.Errorf("limit 2 should drop the third result:\n%s", got)
	}

	all := RenderResults(testTheme(), results, 0)
	if !strings.Contains(all, "Wires") {
		t.Errorf("limit 0 should render everything:\n%s", all)
	}
}

func TestRenderResultsEmpty(t *testing.T) {
	t.Parallel()

	if got := RenderResults(testTheme(), nil, 5); got != "" {
		t.Errorf("RenderResults(nil) = %q, want empty", got)
	}
}

func TestRenderSafeTitleCases(t *testing.T) {
	t.Parallel()

	tests := []struct {
		query string
		want  string
	}{
		{"rusty gear", "✅ Rusty Gear"},
		{"  rUsty   gear ", "✅ Rusty Gear"},
		{"zzz", "✅ Zzz"},
	}
	for _, tt := range tests {
		if got := RenderSafe(testTheme(), tt.query); got != tt.want {
			t.Errorf("RenderSafe(%q) = %q, want %q", tt.query, got, tt.want)
		}
	}
}

func TestThemeNoColorRendersPlain(t *testing.T) {
	t.Parallel()

	theme := NewTheme(ThemeConfig{NoColor: true})
	if got := theme.danger().Render("Wires"); got != "Wires" {
		t.Errorf("no_color danger style = %q, want plain text", got)
	}
	if got := theme.title().Render("ARC Safe Recycle"); got != "ARC Safe Recycle" {
		t.Errorf("no_color title style = %q, want plain text", got)
	}
}
