// Package items holds the domain model of the recycle-safety check: the
// flattened feed records, the player's progress, and the aggregated set
// of item names that are still required by some workstation upgrade or
// expedition phase.
package items

// SourceKind identifies which feed a requirement came from.
type SourceKind string

const (
	SourceWorkstation SourceKind = "workstation"
	SourceExpedition  SourceKind = "expedition"
)

// ItemRequirement is one item demanded by a workstation level or an
// expedition phase.
type ItemRequirement struct {
	ItemID   string
	Quantity int
}

// WorkstationModule is a single upgrade tier of one hideout workstation.
// Records are immutable once parsed and are replaced wholesale on refresh.
type WorkstationModule struct {
	ID          string // source slug plus level, e.g. "scrappy/4"
	Workstation string // display name, e.g. "Scrappy"
	Level       int
	Items       []ItemRequirement
}

// ExpeditionProject is the item requirements of one expedition phase.
type ExpeditionProject struct {
	ID    string
	Name  string // phase display name, may be empty
	Phase int
	Items []ItemRequirement
}

// Progress records which workstation levels and which expedition phase
// the player has already completed. A missing workstation key means
// level 0 (nothing completed).
type Progress struct {
	Workstations    map[string]int `yaml:"workstations"`
	ExpeditionPhase int            `yaml:"expedition_phase"`
}

// Clone returns a deep copy of the progress.
func (p Progress) Clone() Progress {
	out := Progress{ExpeditionPhase: p.ExpeditionPhase}
	if p.Workstations != nil {
		out.Workstations = make(map[string]int, len(p.Workstations))
		for k, v := range p.Workstations {
			out.Workstations[k] = v
		}
	}
	return out
}

// Clamp returns a copy of the progress with every value forced into the
// range the dataset metadata allows: workstation levels into
// [0, max level] and the expedition phase into [0, max phase].
// Out-of-range settings degrade to the nearest bound instead of failing.
func (p Progress) Clamp(meta Meta) Progress {
	out := p.Clone()
	if out.Workstations == nil {
		out.Workstations = map[string]int{}
	}
	maxLevels := make(map[string]int, len(meta.Workstations))
	for _, ws := range meta.Workstations {
		maxLevels[ws.Name] = ws.MaxLevel
	}
	for name, lvl := range out.Workstations {
		if lvl < 0 {
			lvl = 0
		}
		if max, ok := maxLevels[name]; ok && lvl > max {
			lvl = max
		}
		out.Workstations[name] = lvl
	}
	if out.ExpeditionPhase < 0 {
		out.ExpeditionPhase = 0
	}
	if meta.MaxPhase > 0 && out.ExpeditionPhase > meta.MaxPhase {
		out.ExpeditionPhase = meta.MaxPhase
	}
	return out
}

// WorkstationMeta is the settings-facing summary of one workstation.
type WorkstationMeta struct {
	Name     string
	MaxLevel int
}

// Meta summarizes the bounds of the loaded dataset. The settings wizard
// uses it to offer valid level and phase choices, and Clamp uses it to
// repair out-of-range progress values.
type Meta struct {
	Workstations []WorkstationMeta
	MaxPhase     int
}

// ComputeMeta derives dataset bounds from flattened feed records. The
// workstation order follows first appearance in the module records.
func ComputeMeta(modules []WorkstationModule, projects []ExpeditionProject) Meta {
	meta := Meta{}
	index := map[string]int{}
	for _, m := range modules {
		i, ok := index[m.Workstation]
		if !ok {
			index[m.Workstation] = len(meta.Workstations)
			meta.Workstations = append(meta.Workstations, WorkstationMeta{Name: m.Workstation, MaxLevel: m.Level})
			continue
		}
		if m.Level > meta.Workstations[i].MaxLevel {
			meta.Workstations[i].MaxLevel = m.Level
		}
	}
	for _, p := range projects {
		if p.Phase > meta.MaxPhase {
			meta.MaxPhase = p.Phase
		}
	}
	return meta
}
