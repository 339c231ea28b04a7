// Package feed retrieves the ARC Raiders dataset and turns it into the
// flattened records the aggregator consumes. Every source is fetched
// over HTTP and mirrored into an on-disk cache, so after the first
// successful run the tool keeps working without a network connection.
package feed

import (
	"errors"
	"time"

	"github.com/raider-tools/arcsafe/internal/items"
)

var (
	// ErrUnavailable reports that no source could be loaded at all,
	// neither from the network nor from the local cache.
	ErrUnavailable = errors.New("feed: data unavailable")

	// ErrMalformed reports a document whose top level is not the
	// expected shape. Individual bad records inside an otherwise
	// usable document are skipped, not reported through this error.
	ErrMalformed = errors.New("feed: malformed document")
)

// Origin says where a source's bytes came from on the last load.
type Origin string

const (
	OriginNetwork Origin = "network"
	OriginCache   Origin = "cache"
	OriginMissing Origin = "missing"
)

// SourceStatus describes one feed source after a load or refresh.
// RetrievedAt is the fetch time for network loads and the cache file's
// modification time for cache hits.
type SourceStatus struct {
	Name        string
	Origin      Origin
	RetrievedAt time.Time
	Records     int
}

// Snapshot is the parsed state of all feed sources plus the dataset
// bounds derived from them. A snapshot is rebuilt in full on every load
// or refresh and never mutated afterwards.
type Snapshot struct {
	Modules  []items.WorkstationModule
	Projects []items.ExpeditionProject
	Meta     items.Meta
	Sources  []SourceStatus
	Warnings []string
}

// Empty reports whether the snapshot carries no records at all.
func (s *Snapshot) Empty() bool {
	return len(s.Modules) == 0 && len(s.Projects) == 0
}
