package feed

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/raider-tools/arcsafe/internal/items"
)

// The raw types mirror the upstream document shapes. Levels and phases
// are decoded individually from raw JSON so one bad record never sinks
// the rest of the document.

type rawHideout struct {
	Name     localizedName     `json:"name"`
	MaxLevel int               `json:"maxLevel"`
	Levels   []json.RawMessage `json:"levels"`
}

type rawLevel struct {
	Level        int              `json:"level"`
	Requirements []rawRequirement `json:"requirementItemIds"`
}

type rawProject struct {
	Phases []json.RawMessage `json:"phases"`
}

type rawPhase struct {
	Phase        int              `json:"phase"`
	Name         localizedName    `json:"name"`
	Requirements []rawRequirement `json:"requirementItemIds"`
}

// rawRequirement tolerates the quantity key drifting between dataset
// revisions; the first populated alias wins.
type rawRequirement struct {
	ItemID        string `json:"itemId"`
	Quantity      *int   `json:"quantity"`
	Count         *int   `json:"count"`
	Qty           *int   `json:"qty"`
	Amount        *int   `json:"amount"`
	RequiredCount *int   `json:"requiredCount"`
}

func (r rawRequirement) quantity() int {
	for _, v := range []*int{r.Quantity, r.Count, r.Qty, r.Amount, r.RequiredCount} {
		if v != nil {
			return *v
		}
	}
	return 1
}

// localizedName decodes a name field that is either a plain string or a
// map of locale codes to strings. English wins when present, otherwise
// the lexicographically first locale. Unrecognized shapes decode to an
// empty name instead of failing, so callers can fall back to a slug.
type localizedName struct {
	value string
}

func (n *localizedName) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		n.value = s
		return nil
	}

	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		n.value = ""
		return nil
	}
	if v, ok := m["en"].(string); ok {
		n.value = v
		return nil
	}
	locales := make([]string, 0, len(m))
	for k, v := range m {
		if _, ok := v.(string); ok {
			locales = append(locales, k)
		}
	}
	sort.Strings(locales)
	if len(locales) > 0 {
		n.value, _ = m[locales[0]].(string)
	}
	return nil
}

// ParseHideout parses one workstation document into per-level upgrade
// records plus the workstation's settings bounds. Malformed levels are
// skipped with a warning; only an unusable top level returns
// ErrMalformed.
func ParseHideout(slug string, data []byte) ([]items.WorkstationModule, items.WorkstationMeta, error) {
	var raw rawHideout
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, items.WorkstationMeta{}, fmt.Errorf("%w: hideout/%s: %v", ErrMalformed, slug, err)
	}

	name := strings.TrimSpace(raw.Name.value)
	if name == "" {
		name = items.DisplayName(slug)
	}

	var modules []items.WorkstationModule
	maxLevel := raw.MaxLevel
	for i, rawLvl := range raw.Levels {
		var lvl rawLevel
		if err := json.Unmarshal(rawLvl, &lvl); err != nil {
			slog.Warn("skipping malformed hideout level",
				"workstation", slug, "index", i, "error", err)
			continue
		}
		if lvl.Level <= 0 {
			slog.Warn("skipping hideout level without a usable level number",
				"workstation", slug, "index", i)
			continue
		}
		if lvl.Level > maxLevel {
			maxLevel = lvl.Level
		}
		modules = append(modules, items.WorkstationModule{
			ID:          fmt.Sprintf("%s/%d", slug, lvl.Level),
			Workstation: name,
			Level:       lvl.Level,
			Items:       parseRequirements(slug, lvl.Requirements),
		})
	}

	meta := items.WorkstationMeta{Name: name, MaxLevel: maxLevel}
	return modules, meta, nil
}

// ParseProjects parses the expedition document, an array of projects
// each carrying its phases, into one flattened record per phase.
func ParseProjects(data []byte) ([]items.ExpeditionProject, error) {
	var roots []json.RawMessage
	if err := json.Unmarshal(data, &roots); err != nil {
		return nil, fmt.Errorf("%w: projects: %v", ErrMalformed, err)
	}

	var projects []items.ExpeditionProject
	for i, root := range roots {
		var proj rawProject
		if err := json.Unmarshal(root, &proj); err != nil {
			slog.Warn("skipping malformed expedition project", "index", i, "error", err)
			continue
		}
		for j, rawPh := range proj.Phases {
			var ph rawPhase
			if err := json.Unmarshal(rawPh, &ph); err != nil {
				slog.Warn("skipping malformed expedition phase",
					"project", i, "index", j, "error", err)
				continue
			}
			if ph.Phase <= 0 {
				slog.Warn("skipping expedition phase without a usable phase number",
					"project", i, "index", j)
				continue
			}
			id := fmt.Sprintf("expedition/%d", ph.Phase)
			if i > 0 {
				id = fmt.Sprintf("expedition%d/%d", i+1, ph.Phase)
			}
			projects = append(projects, items.ExpeditionProject{
				ID:    id,
				Name:  strings.TrimSpace(ph.Name.value),
				Phase: ph.Phase,
				Items: parseRequirements("projects", ph.Requirements),
			})
		}
	}
	return projects, nil
}

func parseRequirements(source string, reqs []rawRequirement) []items.ItemRequirement {
	out := make([]items.ItemRequirement, 0, len(reqs))
	for _, r := range reqs {
		id := strings.TrimSpace(r.ItemID)
		if id == "" {
			slog.Debug("dropping requirement without item id", "source", source)
			continue
		}
		out = append(out, items.ItemRequirement{ItemID: id, Quantity: r.quantity()})
	}
	return out
}
