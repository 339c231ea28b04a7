// Package search answers name lookups against the aggregated
// still-required item set. Exact substring matching is the primary
// mode; fuzzy matching via edit distance is a fallback for typos and
// is only consulted when the substring pass finds nothing.
package search

import (
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"

	"github.com/raider-tools/arcsafe/internal/items"
)

// Result is one matched item.
type Result struct {
	Name string
	Item *items.Item
}

type entry struct {
	name string
	norm string
	item *items.Item
}

// Index is a read-only lookup structure over one aggregated set. Build
// a new Index whenever the set is rebuilt; an Index never observes later
// changes.
type Index struct {
	entries []entry
}

// NewIndex builds an index over the given set.
func NewIndex(set *items.Set) *Index {
	names := set.Names()
	entries := make([]entry, 0, len(names))
	for _, name := range names {
		it, ok := set.Get(name)
		if !ok {
			continue
		}
		entries = append(entries, entry{name: name, norm: items.Normalize(name), item: it})
	}
	return &Index{entries: entries}
}

// Len reports how many items the index covers.
func (ix *Index) Len() int {
	return len(ix.entries)
}

// All returns every indexed item in name order.
func (ix *Index) All() []Result {
	out := make([]Result, len(ix.entries))
	for i, e := range ix.entries {
		out[i] = Result{Name: e.name, Item: e.item}
	}
	return out
}

// Query returns every item whose normalized name contains the
// normalized query as a substring. Results are ordered by match
// position, then by name length, then lexicographically, so the
// tightest matches come first. An empty or whitespace-only query
// matches nothing.
func (ix *Index) Query(text string) []Result {
	q := items.Normalize(text)
	if q == "" {
		return nil
	}

	type hit struct {
		pos int
		res Result
	}
	var hits []hit
	for _, e := range ix.entries {
		pos := strings.Index(e.norm, q)
		if pos < 0 {
			continue
		}
		hits = append(hits, hit{pos: pos, res: Result{Name: e.name, Item: e.item}})
	}

	sort.SliceStable(hits, func(i, j int) bool {
		if hits[i].pos != hits[j].pos {
			return hits[i].pos < hits[j].pos
		}
		if len(hits[i].res.Name) != len(hits[j].res.Name) {
			return len(hits[i].res.Name) < len(hits[j].res.Name)
		}
		return hits[i].res.Name < hits[j].res.Name
	})

	out := make([]Result, len(hits))
	for i, h := range hits {
		out[i] = h.res
	}
	return out
}

// Fuzzy returns items whose names score at or above threshold (0 to
// 100) against the query, best first with ties broken by name. It is
// meant for queries that produced no substring matches; callers decide
// when to fall back.
func (ix *Index) Fuzzy(text string, threshold int) []Result {
	q := items.Normalize(text)
	if q == "" {
		return nil
	}

	type hit struct {
		score int
		res   Result
	}
	var hits []hit
	for _, e := range ix.entries {
		s := Score(q, e.norm)
		if s < threshold {
			continue
		}
		hits = append(hits, hit{score: s, res: Result{Name: e.name, Item: e.item}})
	}

	sort.SliceStable(hits, func(i, j int) bool {
		if hits[i].score != hits[j].score {
			return hits[i].score > hits[j].score
		}
		return hits[i].res.Name < hits[j].res.Name
	})

	out := make([]Result, len(hits))
	for i, h := range hits {
		out[i] = h.res
	}
	return out
}

// Score rates how closely candidate matches query on a 0 to 100 scale.
// Prefix and substring containment earn a bonus on top of the edit
// distance similarity, and the total is capped at 100. Both inputs must
// already be normalized.
func Score(query, candidate string) int {
	if query == "" || candidate == "" {
		return 0
	}

	bonus := 0
	switch {
	case strings.HasPrefix(candidate, query):
		bonus = 40
	case strings.Contains(candidate, query):
		bonus = 20
	}

	dist := levenshtein.ComputeDistance(query, candidate)
	maxLen := utf8.RuneCountInString(query)
	if n := utf8.RuneCountInString(candidate); n > maxLen {
		maxLen = n
	}
	similarity := (maxLen - dist) * 100 / maxLen

	score := bonus + similarity
	if score > 100 {
		score = 100
	}
	if score < 0 {
		score = 0
	}
	return score
}
