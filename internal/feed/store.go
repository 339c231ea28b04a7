package feed

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"time"

	"github.com/raider-tools/arcsafe/internal/defs"
	"github.com/raider-tools/arcsafe/internal/items"
)

// Store combines the HTTP client and the on-disk cache into the
// pipeline the rest of the tool consumes: retrieve the raw document for
// each source, parse it into flattened records, and assemble a
// Snapshot. Sources degrade independently, so one unreachable or
// garbled file never takes the whole dataset down.
type Store struct {
	client   *Client
	cache    *Cache
	onSource func(done, total int, name string)
}

// NewStore creates a store over the given client and cache.
func NewStore(client *Client, cache *Cache) *Store {
	return &Store{client: client, cache: cache}
}

// OnSource registers a callback invoked after each source is processed,
// with the count of sources handled so far and the total. Callers use
// it to drive progress output during refreshes.
func (s *Store) OnSource(fn func(done, total int, name string)) {
	s.onSource = fn
}

// Load builds a snapshot preferring cached copies, fetching only the
// sources that are missing or unreadable locally. The first run
// downloads everything once; later runs start offline.
func (s *Store) Load(ctx context.Context) (*Snapshot, error) {
	return s.build(ctx, false)
}

// Refresh builds a snapshot from the network, falling back to the
// cached copy per source when a fetch fails or returns garbage. Every
// document that parses is written back to the cache.
func (s *Store) Refresh(ctx context.Context) (*Snapshot, error) {
	return s.build(ctx, true)
}

// source describes one feed document and how to retrieve, persist and
// parse it. parse must only commit records when it returns nil.
type source struct {
	name  string
	read  func() ([]byte, time.Time, error)
	fetch func(context.Context) ([]byte, error)
	write func([]byte) error
	parse func([]byte) (int, error)
}

func (s *Store) build(ctx context.Context, refresh bool) (*Snapshot, error) {
	snap := &Snapshot{}
	var metas []items.WorkstationMeta

	total := len(defs.HideoutFiles) + 1
	done := 0
	notify := func(name string) {
		done++
		if s.onSource != nil {
			s.onSource(done, total, name)
		}
	}

	for _, slug := range defs.HideoutFiles {
		status := s.loadSource(ctx, refresh, source{
			name: defs.HideoutDir + "/" + slug,
			read: func() ([]byte, time.Time, error) {
				return s.cache.ReadHideout(slug)
			},
			fetch: func(ctx context.Context) ([]byte, error) {
				return s.client.FetchHideout(ctx, slug)
			},
			write: func(data []byte) error {
				return s.cache.WriteHideout(slug, data)
			},
			parse: func(data []byte) (int, error) {
				modules, meta, err := ParseHideout(slug, data)
				if err != nil {
					return 0, err
				}
				snap.Modules = append(snap.Modules, modules...)
				metas = append(metas, meta)
				return len(modules), nil
			},
		})
		snap.Sources = append(snap.Sources, status)
		if status.Origin == OriginMissing {
			snap.Warnings = append(snap.Warnings, status.Name+": no usable data")
		}
		notify(status.Name)
	}

	status := s.loadSource(ctx, refresh, source{
		name:  "projects",
		read:  s.cache.ReadProjects,
		fetch: s.client.FetchProjects,
		write: s.cache.WriteProjects,
		parse: func(data []byte) (int, error) {
			projects, err := ParseProjects(data)
			if err != nil {
				return 0, err
			}
			snap.Projects = append(snap.Projects, projects...)
			return len(projects), nil
		},
	})
	snap.Sources = append(snap.Sources, status)
	if status.Origin == OriginMissing {
		snap.Warnings = append(snap.Warnings, status.Name+": no usable data")
	}
	notify(status.Name)

	snap.Meta = buildMeta(snap, metas)
	if snap.Empty() {
		return snap, ErrUnavailable
	}
	return snap, nil
}

// loadSource tries each origin in order (cache first normally, network
// first on refresh) until one yields a document that parses. Fetched
// documents are cached only after they parse, so a garbled response
// never overwrites a good local copy.
func (s *Store) loadSource(ctx context.Context, refresh bool, src source) SourceStatus {
	status := SourceStatus{Name: src.name, Origin: OriginMissing}

	order := []Origin{OriginCache, OriginNetwork}
	if refresh {
		order = []Origin{OriginNetwork, OriginCache}
	}

	for _, origin := range order {
		var (
			data []byte
			at   time.Time
		)
		switch origin {
		case OriginCache:
			b, mtime, err := src.read()
			if err != nil {
				if !errors.Is(err, fs.ErrNotExist) {
					slog.Warn("feed cache read failed", "source", src.name, "error", err)
				}
				continue
			}
			data, at = b, mtime
		case OriginNetwork:
			b, err := src.fetch(ctx)
			if err != nil {
				slog.Warn("feed fetch failed", "source", src.name, "error", err)
				continue
			}
			data, at = b, time.Now()
		}

		records, err := src.parse(data)
		if err != nil {
			slog.Warn("feed parse failed", "source", src.name, "origin", string(origin), "error", err)
			continue
		}
		if origin == OriginNetwork {
			if err := src.write(data); err != nil {
				slog.Warn("feed cache write failed", "source", src.name, "error", err)
			}
		}

		status.Origin = origin
		status.RetrievedAt = at
		status.Records = records
		return status
	}
	return status
}

// buildMeta derives the dataset bounds, preferring a workstation's
// declared max level when the document promises more levels than it
// currently lists. Workstations whose documents parsed but yielded no
// level records still appear, so the settings wizard can offer them.
func buildMeta(snap *Snapshot, metas []items.WorkstationMeta) items.Meta {
	meta := items.ComputeMeta(snap.Modules, snap.Projects)

	index := map[string]int{}
	for i, ws := range meta.Workstations {
		index[ws.Name] = i
	}
	for _, m := range metas {
		if i, ok := index[m.Name]; ok {
			if m.MaxLevel > meta.Workstations[i].MaxLevel {
				meta.Workstations[i].MaxLevel = m.MaxLevel
			}
			continue
		}
		index[m.Name] = len(meta.Workstations)
		meta.Workstations = append(meta.Workstations, m)
	}
	return meta
}
