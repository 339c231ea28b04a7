package items

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Normalize folds an item name into the form used for matching and
// deduplication: lowercase with runs of whitespace collapsed to single
// spaces and no leading or trailing space.
func Normalize(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}

// TitleCase title-cases each word using English casing rules.
func TitleCase(s string) string {
	return cases.Title(language.English).String(s)
}

// DisplayName converts a feed item id into its display form, e.g.
// "power_cell" becomes "Power Cell". Ids without underscores are
// title-cased as-is.
func DisplayName(itemID string) string {
	words := strings.FieldsFunc(itemID, func(r rune) bool {
		return r == '_' || r == ' '
	})
	return TitleCase(strings.Join(words, " "))
}
