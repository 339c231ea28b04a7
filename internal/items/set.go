package items

import (
	"fmt"
	"sort"
	"strings"
)

// Usage records one place an item is still needed, e.g. "Scrappy 4".
type Usage struct {
	Source   SourceKind
	Label    string
	Quantity int
}

// Item is one still-required item together with its provenance. Display
// is the canonical presentation form; membership in the set is decided
// on the normalized form, so "Power Cell" and "power  cell" are the
// same item.
type Item struct {
	Display string
	Usages  []Usage
}

// Set is the deduplicated collection of still-required items, keyed by
// normalized name. A Set is built once by Aggregate and read-only
// afterwards.
type Set struct {
	byKey map[string]*Item
	names []string
}

// Aggregate flattens the feed records into the set of items that are
// still required given the player's progress. A workstation module
// counts only when its level is above the completed level for that
// workstation; an expedition phase counts only when it is above the
// completed phase. Progress values outside the dataset bounds are
// clamped first, so bad settings degrade instead of erroring.
func Aggregate(modules []WorkstationModule, projects []ExpeditionProject, progress Progress) *Set {
	meta := ComputeMeta(modules, projects)
	progress = progress.Clamp(meta)

	s := &Set{byKey: map[string]*Item{}}
	for _, m := range modules {
		if m.Level <= progress.Workstations[m.Workstation] {
			continue
		}
		label := fmt.Sprintf("%s %d", m.Workstation, m.Level)
		for _, req := range m.Items {
			s.add(req, SourceWorkstation, label)
		}
	}
	for _, p := range projects {
		if p.Phase <= progress.ExpeditionPhase {
			continue
		}
		s.addProject(p)
	}
	s.finalize()
	return s
}

func (p ExpeditionProject) label() string {
	if name := strings.TrimSpace(p.Name); name != "" {
		return fmt.Sprintf("Expedition – %s %d", name, p.Phase)
	}
	return fmt.Sprintf("Expedition – Phase %d", p.Phase)
}

func (s *Set) addProject(p ExpeditionProject) {
	label := p.label()
	for _, req := range p.Items {
		s.add(req, SourceExpedition, label)
	}
}

func (s *Set) add(req ItemRequirement, source SourceKind, label string) {
	id := strings.TrimSpace(req.ItemID)
	if id == "" {
		return
	}
	display := DisplayName(id)
	key := Normalize(display)
	if key == "" {
		return
	}
	it, ok := s.byKey[key]
	if !ok {
		it = &Item{Display: display}
		s.byKey[key] = it
	}
	qty := req.Quantity
	if qty <= 0 {
		qty = 1
	}
	for i := range it.Usages {
		if it.Usages[i].Label == label {
			it.Usages[i].Quantity += qty
			return
		}
	}
	it.Usages = append(it.Usages, Usage{Source: source, Label: label, Quantity: qty})
}

func (s *Set) finalize() {
	s.names = make([]string, 0, len(s.byKey))
	for _, it := range s.byKey {
		s.names = append(s.names, it.Display)
		sort.Slice(it.Usages, func(i, j int) bool {
			a, b := it.Usages[i], it.Usages[j]
			if a.Source != b.Source {
				return a.Source == SourceWorkstation
			}
			return a.Label < b.Label
		})
	}
	sort.Strings(s.names)
}

// Len reports how many distinct items are still required.
func (s *Set) Len() int {
	return len(s.byKey)
}

// Names returns the canonical display names in sorted order. The
// returned slice is a copy and safe to modify.
func (s *Set) Names() []string {
	out := make([]string, len(s.names))
	copy(out, s.names)
	return out
}

// Get looks an item up by name in any casing or spacing.
func (s *Set) Get(name string) (*Item, bool) {
	it, ok := s.byKey[Normalize(name)]
	return it, ok
}

// Contains reports whether the named item is still required.
func (s *Set) Contains(name string) bool {
	_, ok := s.Get(name)
	return ok
}
