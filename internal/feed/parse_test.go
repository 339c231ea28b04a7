package feed

import (
	"errors"
	"reflect"
	"testing"

	"github.com/raider-tools/arcsafe/internal/items"
)

func TestParseHideout(t *testing.T) {
	t.Parallel()

	doc := []byte(`{
		"name": {"en": "Scrappy", "de": "Schrotti"},
		"maxLevel": 4,
		"levels": [
			{"level": 1, "requirementItemIds": [{"itemId": "metal_parts", "quantity": 10}]},
			{"level": 2, "requirementItemIds": [{"itemId": "power_cell", "count": 2}, {"itemId": "wires", "qty": 8}]}
		]
	}`)

	modules, meta, err := ParseHideout("scrappy", doc)
	if err != nil {
		t.Fatalf("ParseHideout() error = %v", err)
	}

	if meta.Name != "Scrappy" || meta.MaxLevel != 4 {
		t.Errorf("meta = %+v, want Scrappy with max level 4", meta)
	}
	want := []items.WorkstationModule{
		{
			ID:          "scrappy/1",
			Workstation: "Scrappy",
			Level:       1,
			Items:       []items.ItemRequirement{{ItemID: "metal_parts", Quantity: 10}},
		},
		{
			ID:          "scrappy/2",
			Workstation: "Scrappy",
			Level:       2,
			Items: []items.ItemRequirement{
				{ItemID: "power_cell", Quantity: 2},
				{ItemID: "wires", Quantity: 8},
			},
		},
	}
	if !reflect.DeepEqual(modules, want) {
		t.Errorf("modules = %+v, want %+v", modules, want)
	}
}

func TestParseHideoutNameForms(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		doc  string
		want string
	}{
		{
			name: "plain string name",
			doc:  `{"name": "Med Station", "levels": []}`,
			want: "Med Station",
		},
		{
			name: "localized without english",
			doc:  `{"name": {"fr": "Établi", "it": "Banco"}, "levels": []}`,
			want: "Établi",
		},
		{
			name: "missing name falls back to slug",
			doc:  `{"levels": []}`,
			want: "Med Station",
		},
		{
			name: "unusable name falls back to slug",
			doc:  `{"name": 42, "levels": []}`,
			want: "Med Station",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, meta, err := ParseHideout("med_station", []byte(tt.doc))
			if err != nil {
				t.Fatalf("ParseHideout() error = %v", err)
			}
			if meta.Name != tt.want {
				t.Errorf("workstation name = %q, want %q", meta.Name, tt.want)
			}
		})
	}
}

func TestParseHideoutSkipsBadLevels(t *testing.T) {
	t.Parallel()

	doc := []byte(`{
		"name": "Workbench",
		"maxLevel": 3,
		"levels": [
			{"level": "one", "requirementItemIds": []},
			{"level": 0, "requirementItemIds": [{"itemId": "wires"}]},
			{"level": 3, "requirementItemIds": [{"itemId": "duct_tape"}, {"itemId": "  "}]},
			"not an object"
		]
	}`)

	modules, meta, err := ParseHideout("workbench", doc)
	if err != nil {
		t.Fatalf("ParseHideout() error = %v", err)
	}
	if len(modules) != 1 {
		t.Fatalf("got %d modules, want 1 (bad levels skipped)", len(modules))
	}
	if modules[0].ID != "workbench/3" {
		t.Errorf("ID = %q, want workbench/3", modules[0].ID)
	}
	if len(modules[0].Items) != 1 || modules[0].Items[0].ItemID != "duct_tape" {
		t.Errorf("Items = %+v, want the blank id dropped", modules[0].Items)
	}
	if modules[0].Items[0].Quantity != 1 {
		t.Errorf("Quantity = %d, want default of 1", modules[0].Items[0].Quantity)
	}
	if meta.MaxLevel != 3 {
		t.Errorf("MaxLevel = %d, want 3", meta.MaxLevel)
	}
}

func TestParseHideoutListedLevelsRaiseDeclaredMax(t *testing.T) {
	t.Parallel()

	doc := []byte(`{
		"name": "Refiner",
		"maxLevel": 1,
		"levels": [{"level": 2, "requirementItemIds": []}]
	}`)

	_, meta, err := ParseHideout("refiner", doc)
	if err != nil {
		t.Fatalf("ParseHideout() error = %v", err)
	}
	if meta.MaxLevel != 2 {
		t.Errorf("MaxLevel = %d, want 2 (listed level above declared max)", meta.MaxLevel)
	}
}

func TestParseHideoutMalformedDocument(t *testing.T) {
	t.Parallel()

	for _, doc := range []string{`[]`, `not json`, `"just a string"`} {
		if _, _, err := ParseHideout("stash", []byte(doc)); !errors.Is(err, ErrMalformed) {
			t.Errorf("ParseHideout(%q) error = %v, want ErrMalformed", doc, err)
		}
	}
}

func TestParseProjects(t *testing.T) {
	t.Parallel()

	doc := []byte(`[
		{"phases": [
			{"phase": 1, "name": "Launch Prep", "requirementItemIds": [{"itemId": "arc_alloy", "quantity": 3}]},
			{"phase": 2, "requirementItemIds": [{"itemId": "circuit_board", "requiredCount": 6}]}
		]}
	]`)

	projects, err := ParseProjects(doc)
	if err != nil {
		t.Fatalf("ParseProjects() error = %v", err)
	}
	want := []items.ExpeditionProject{
		{
			ID:    "expedition/1",
			Name:  "Launch Prep",
			Phase: 1,
			Items: []items.ItemRequirement{{ItemID: "arc_alloy", Quantity: 3}},
		},
		{
			ID:    "expedition/2",
			Phase: 2,
			Items: []items.ItemRequirement{{ItemID: "circuit_board", Quantity: 6}},
		},
	}
	if !reflect.DeepEqual(projects, want) {
		t.Errorf("projects = %+v, want %+v", projects, want)
	}
}

func TestParseProjectsTolerance(t *testing.T) {
	t.Parallel()

	doc := []byte(`[
		"not a project",
		{"phases": [
			{"phase": 0, "requirementItemIds": []},
			"not a phase",
			{"phase": 2, "requirementItemIds": [{"itemId": "wires"}]}
		]},
		{"phases": [{"phase": 1, "requirementItemIds": []}]}
	]`)

	projects, err := ParseProjects(doc)
	if err != nil {
		t.Fatalf("ParseProjects() error = %v", err)
	}
	if len(projects) != 2 {
		t.Fatalf("got %d phases, want 2 (bad records skipped)", len(projects))
	}
	if projects[0].ID != "expedition2/2" {
		t.Errorf("ID = %q, want expedition2/2 (second project keeps a distinct id)", projects[0].ID)
	}
	if projects[1].ID != "expedition3/1" {
		t.Errorf("ID = %q, want expedition3/1", projects[1].ID)
	}
}

func TestParseProjectsMalformedDocument(t *testing.T) {
	t.Parallel()

	if _, err := ParseProjects([]byte(`{"phases": []}`)); !errors.Is(err, ErrMalformed) {
		t.Errorf("error = %v, want ErrMalformed for a non-array document", err)
	}
}

func TestParseProjectsEmptyArray(t *testing.T) {
	t.Parallel()

	projects, err := ParseProjects([]byte(`[]`))
	if err != nil {
		t.Fatalf("ParseProjects() error = %v", err)
	}
	if len(projects) != 0 {
		t.Errorf("got %d phases, want 0", len(projects))
	}
}
