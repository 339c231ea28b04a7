package ui

import (
	"fmt"
	"strings"

	"github.com/raider-tools/arcsafe/internal/items"
	"github.com/raider-tools/arcsafe/internal/search"
)

// RenderResults formats still-required items as result blocks: the item
// name marked unsafe to recycle, then one line per remaining use. Blocks
// are separated by a blank line. A limit of 0 renders every result.
func RenderResults(theme *Theme, results []search.Result, limit int) string {
	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}

	blocks := make([]string, 0, len(results))
	for _, r := range results {
		var b strings.Builder
		b.WriteString("❌ " + theme.danger().Render(r.Name))
		for _, u := range r.Item.Usages {
			b.WriteString("\n" + theme.muted().Render(fmt.Sprintf("• %s – ×%d", u.Label, u.Quantity)))
		}
		blocks = append(blocks, b.String())
	}
	return strings.Join(blocks, "\n\n")
}

// RenderSafe formats a query that matched no still-required item. The
// query echoes back title-cased since the item is safe to recycle.
func RenderSafe(theme *Theme, query string) string {
	return "✅ " + theme.success().Render(items.TitleCase(items.Normalize(query)))
}
