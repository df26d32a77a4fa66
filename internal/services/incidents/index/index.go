// Package index provides the in-memory spatial incident index.
// Space is partitioned into fixed-size grid cells keyed by quantized
// coordinates; writers build a new immutable snapshot and publish it with an
// atomic swap, so readers always observe one consistent version and are never
// blocked by ingestion or refresh
package index

import (
	"math"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"safetymapper/internal/core/geo"
	"safetymapper/internal/services/incidents/domain"
)

// DefaultCellMeters is the grid cell side used unless configured otherwise
const DefaultCellMeters = 250.0

type cellKey struct{ X, Y int32 }

// snapshot is one immutable published version of the grid
type snapshot struct {
	cells   map[cellKey][]domain.Incident
	size    int
	builtAt time.Time
	stale   bool
}

// Index is the shared, concurrently-read incident structure.
// Reads are lock-free; writes serialize on mu and publish copy-on-write
type Index struct {
	cellDeg float64
	now     func() time.Time

	mu   sync.Mutex
	snap atomic.Pointer[snapshot]
}

// New builds an empty index with the given cell size in meters
func New(cellMeters float64) *Index {
	if cellMeters <= 0 {
		cellMeters = DefaultCellMeters
	}
	ix := &Index{
		cellDeg: cellMeters / geo.MetersPerDegreeLat,
		now:     time.Now,
	}
	ix.snap.Store(&snapshot{
		cells:   map[cellKey][]domain.Incident{},
		builtAt: ix.now(),
	})
	return ix
}

func (ix *Index) key(p geo.Point) cellKey {
	return cellKey{
		X: int32(math.Floor(p.Lon / ix.cellDeg)),
		Y: int32(math.Floor(p.Lat / ix.cellDeg)),
	}
}

// Insert publishes a new snapshot containing inc.
// The cells map is cloned shallowly; only the touched cell slice is copied,
// so the write cost is bounded by the cell count, not the record count
func (ix *Index) Insert(inc domain.Incident) {
	ix.mu.Lock()
	defer ix.mu.Unlock()

	cur := ix.snap.Load()
	k := ix.key(inc.Point)

	cells := make(map[cellKey][]domain.Incident, len(cur.cells)+1)
	for ck, rows := range cur.cells {
		cells[ck] = rows
	}
	cell := make([]domain.Incident, 0, len(cur.cells[k])+1)
	cell = append(cell, cur.cells[k]...)
	cell = append(cell, inc)
	cells[k] = cell

	ix.snap.Store(&snapshot{
		cells:   cells,
		size:    cur.size + 1,
		builtAt: ix.now(),
		stale:   cur.stale,
	})
}

// Archive drops the record with the given id from the published grid.
// The archived row stays in the backing store for audit; the index only
// serves queryable records. Returns false when the id is not present
func (ix *Index) Archive(id uuid.UUID) bool {
	ix.mu.Lock()
	defer ix.mu.Unlock()

	cur := ix.snap.Load()
	var foundKey cellKey
	var foundIdx = -1
	for ck, rows := range cur.cells {
		for i, inc := range rows {
			if inc.ID == id {
				foundKey, foundIdx = ck, i
				break
			}
		}
		if foundIdx >= 0 {
			break
		}
	}
	if foundIdx < 0 {
		return false
	}

	cells := make(map[cellKey][]domain.Incident, len(cur.cells))
	for ck, rows := range cur.cells {
		cells[ck] = rows
	}
	old := cells[foundKey]
	next := make([]domain.Incident, 0, len(old)-1)
	next = append(next, old[:foundIdx]...)
	next = append(next, old[foundIdx+1:]...)
	if len(next) == 0 {
		delete(cells, foundKey)
	} else {
		cells[foundKey] = next
	}

	ix.snap.Store(&snapshot{
		cells:   cells,
		size:    cur.size - 1,
		builtAt: ix.now(),
		stale:   cur.stale,
	})
	return true
}

// Replace rebuilds the grid from incs and publishes it in one swap.
// Archived records are skipped; stale marks a snapshot the refresher could
// not rebuild from the source of truth
func (ix *Index) Replace(incs []domain.Incident, stale bool) {
	cells := map[cellKey][]domain.Incident{}
	size := 0
	for _, inc := range incs {
		if inc.Status == domain.StatusArchived {
			continue
		}
		k := ix.key(inc.Point)
		cells[k] = append(cells[k], inc)
		size++
	}

	ix.mu.Lock()
	defer ix.mu.Unlock()
	ix.snap.Store(&snapshot{
		cells:   cells,
		size:    size,
		builtAt: ix.now(),
		stale:   stale,
	})
}

// MarkStale republishes the current grid with the staleness flag set
func (ix *Index) MarkStale(stale bool) {
	ix.mu.Lock()
	defer ix.mu.Unlock()

	cur := ix.snap.Load()
	if cur.stale == stale {
		return
	}
	ix.snap.Store(&snapshot{
		cells:   cur.cells,
		size:    cur.size,
		builtAt: cur.builtAt,
		stale:   stale,
	})
}

// Query returns active records within radiusMeters of center and younger
// than maxAge, nearest first with ties broken by most recent. maxAge <= 0
// disables the age filter. No match returns an empty slice, never an error
func (ix *Index) Query(center geo.Point, radiusMeters float64, maxAge time.Duration) []domain.Incident {
	snap := ix.snap.Load()
	if snap.size == 0 || radiusMeters <= 0 {
		return nil
	}

	now := ix.now()
	var cutoff time.Time
	if maxAge > 0 {
		cutoff = now.Add(-maxAge)
	}

	// Candidate cell window in degrees, widened for longitude shrink at this
	// latitude, then exact haversine filtering per record
	latSpan := radiusMeters / geo.MetersPerDegreeLat
	lonSpan := radiusMeters / geo.MetersPerDegreeLon(center.Lat)

	x0 := int32(math.Floor((center.Lon - lonSpan) / ix.cellDeg))
	x1 := int32(math.Floor((center.Lon + lonSpan) / ix.cellDeg))
	y0 := int32(math.Floor((center.Lat - latSpan) / ix.cellDeg))
	y1 := int32(math.Floor((center.Lat + latSpan) / ix.cellDeg))

	type scored struct {
		inc  domain.Incident
		dist float64
	}
	var hits []scored
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			for _, inc := range snap.cells[cellKey{X: x, Y: y}] {
				if inc.Status != domain.StatusActive {
					continue
				}
				if maxAge > 0 && inc.CreatedAt.Before(cutoff) {
					continue
				}
				d := geo.Distance(center, inc.Point)
				if d > radiusMeters {
					continue
				}
				hits = append(hits, scored{inc: inc, dist: d})
			}
		}
	}
	if len(hits) == 0 {
		return nil
	}

	sort.Slice(hits, func(i, j int) bool {
		if hits[i].dist != hits[j].dist {
			return hits[i].dist < hits[j].dist
		}
		return hits[i].inc.CreatedAt.After(hits[j].inc.CreatedAt)
	})

	out := make([]domain.Incident, len(hits))
	for i, h := range hits {
		out[i] = h.inc
	}
	return out
}

// Recent lists active records created after since, newest first, capped at
// limit. Used as the degraded read path when the backing store is unreachable
func (ix *Index) Recent(since time.Time, limit int) []domain.Incident {
	snap := ix.snap.Load()
	var out []domain.Incident
	for _, rows := range snap.cells {
		for _, inc := range rows {
			if inc.Status != domain.StatusActive || inc.CreatedAt.Before(since) {
				continue
			}
			out = append(out, inc)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// Size reports active records in the published snapshot
func (ix *Index) Size() int { return ix.snap.Load().size }

// Stale reports whether the published snapshot is flagged stale
func (ix *Index) Stale() bool { return ix.snap.Load().stale }

// BuiltAt reports when the published snapshot was built
func (ix *Index) BuiltAt() time.Time { return ix.snap.Load().builtAt }
