package search

import (
	"reflect"
	"testing"

	"github.com/raider-tools/arcsafe/internal/items"
)

func testIndex(t *testing.T) *Index {
	t.Helper()

	modules := []items.WorkstationModule{
		{
			ID:          "workbench/1",
			Workstation: "Workbench",
			Level:       1,
			Items: []items.ItemRequirement{
				{ItemID: "metal_parts", Quantity: 10},
				{ItemID: "scrap_metal", Quantity: 4},
				{ItemID: "medkit", Quantity: 1},
				{ItemID: "arc_alloy", Quantity: 2},
				{ItemID: "arc_blade", Quantity: 1},
				{ItemID: "circuit_board", Quantity: 3},
				{ItemID: "wires", Quantity: 6},
				{ItemID: "power_cell", Quantity: 2},
			},
		},
	}
	return NewIndex(items.Aggregate(modules, nil, items.Progress{}))
}

func names(results []Result) []string {
	out := make([]string, len(results))
	for i, r := range results {
		out[i] = r.Name
	}
	return out
}

func TestQuerySubstringMatch(t *testing.T) {
	t.Parallel()

	ix := testIndex(t)

	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{name: "partial prefix", query: "cir", want: []string{"Circuit Board"}},
		{name: "case insensitive", query: "CIRCUIT", want: []string{"Circuit Board"}},
		{name: "inner substring", query: "oar", want: []string{"Circuit Board"}},
		{name: "surrounding whitespace", query: "  wires ", want: []string{"Wires"}},
		{name: "no match", query: "zzz", want: []string{}},
		{name: "empty query", query: "", want: []string{}},
		{name: "whitespace only", query: "   ", want: []string{}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := names(ix.Query(tt.query))
			if len(got) == 0 && len(tt.want) == 0 {
				return
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Query(%q) = %v, want %v", tt.query, got, tt.want)
			}
		})
	}
}

func TestQueryOrdering(t *testing.T) {
	t.Parallel()

	ix := testIndex(t)

	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{
			// Earlier match positions win; equal positions fall back
			// to shorter names first.
			name:  "position then length",
			query: "me",
			want:  []string{"Medkit", "Metal Parts", "Scrap Metal"},
		},
		{
			name:  "position beats alphabetical order",
			query: "met",
			want:  []string{"Metal Parts", "Scrap Metal"},
		},
		{
			name:  "equal position and length break lexicographically",
			query: "arc",
			want:  []string{"Arc Alloy", "Arc Blade"},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := names(ix.Query(tt.query)); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Query(%q) = %v, want %v", tt.query, got, tt.want)
			}
		})
	}
}

func TestQueryExtendingNeverAddsResults(t *testing.T) {
	t.Parallel()

	ix := testIndex(t)
	chain := []string{"m", "me", "met", "meta", "metal"}

	prev := ix.Query(chain[0])
	for _, q := range chain[1:] {
		got := ix.Query(q)
		prevNames := map[string]bool{}
		for _, r := range prev {
			prevNames[r.Name] = true
		}
		for _, r := range got {
			if !prevNames[r.Name] {
				t.Errorf("Query(%q) returned %q which the shorter query missed", q, r.Name)
			}
		}
		prev = got
	}
}

func TestQueryIsStable(t *testing.T) {
	t.Parallel()

	ix := testIndex(t)
	first := names(ix.Query("arc"))
	second := names(ix.Query("arc"))
	if !reflect.DeepEqual(first, second) {
		t.Errorf("repeated query differs: %v vs %v", first, second)
	}
}

func TestFuzzyCatchesTypos(t *testing.T) {
	t.Parallel()

	ix := testIndex(t)

	got := names(ix.Fuzzy("wirez", 70))
	if !reflect.DeepEqual(got, []string{"Wires"}) {
		t.Errorf("Fuzzy(%q) = %v, want [Wires]", "wirez", got)
	}

	if got := ix.Fuzzy("qqqqqq", 70); len(got) != 0 {
		t.Errorf("Fuzzy(%q) = %v, want no results", "qqqqqq", names(got))
	}

	if got := ix.Fuzzy("", 70); got != nil {
		t.Errorf("Fuzzy on empty query = %v, want nil", names(got))
	}
}

func TestFuzzyThresholdFiltersWeakMatches(t *testing.T) {
	t.Parallel()

	ix := testIndex(t)

	// "circuit bord" scores high against "Circuit Board" only.
	strict := names(ix.Fuzzy("circuit bord", 90))
	if !reflect.DeepEqual(strict, []string{"Circuit Board"}) {
		t.Errorf("Fuzzy at 90 = %v, want [Circuit Board]", strict)
	}

	// Threshold zero admits every candidate, best first.
	loose := ix.Fuzzy("circuit bord", 0)
	if len(loose) != ix.Len() {
		t.Errorf("Fuzzy at 0 found %d results, want all %d", len(loose), ix.Len())
	}
	if len(loose) > 0 && loose[0].Name != "Circuit Board" {
		t.Errorf("best loose match = %q, want %q", loose[0].Name, "Circuit Board")
	}
}

func TestScore(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		query     string
		candidate string
		want      int
	}{
		{name: "exact match caps at 100", query: "wires", candidate: "wires", want: 100},
		{name: "close typo", query: "wirez", candidate: "wires", want: 80},
		{name: "near complete name", query: "circuit bord", candidate: "circuit board", want: 92},
		{name: "prefix earns bonus", query: "metal", candidate: "metal parts", want: 85},
		{name: "containment earns smaller bonus", query: "parts", candidate: "metal parts", want: 65},
		{name: "empty query", query: "", candidate: "wires", want: 0},
		{name: "empty candidate", query: "wires", candidate: "", want: 0},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := Score(tt.query, tt.candidate); got != tt.want {
				t.Errorf("Score(%q, %q) = %d, want %d", tt.query, tt.candidate, got, tt.want)
			}
		})
	}
}

func TestNewIndexOnEmptySet(t *testing.T) {
	t.Parallel()

	ix := NewIndex(items.Aggregate(nil, nil, items.Progress{}))
	if ix.Len() != 0 {
		t.Errorf("Len() = %d, want 0", ix.Len())
	}
	if got := ix.Query("anything"); len(got) != 0 {
		t.Errorf("Query on empty index = %v, want no results", names(got))
	}
}

func TestAllListsEveryItemInOrder(t *testing.T) {
	t.Parallel()

	ix := testIndex(t)
	got := names(ix.All())
	want := []string{
		"Arc Alloy", "Arc Blade", "Circuit Board", "Medkit",
		"Metal Parts", "Power Cell", "Scrap Metal", "Wires",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("All() = %v, want %v", got, want)
	}
}
