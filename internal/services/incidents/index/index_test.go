package index

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"safetymapper/internal/core/geo"
	"safetymapper/internal/core/risk"
	"safetymapper/internal/services/incidents/domain"
)

var center = geo.Point{Lat: 37.7793, Lon: -122.4193}

// offset returns a point roughly meters north of center
func offsetNorth(p geo.Point, meters float64) geo.Point {
	return geo.Point{Lat: p.Lat + meters/geo.MetersPerDegreeLat, Lon: p.Lon}
}

func incident(p geo.Point, age time.Duration, status domain.Status) domain.Incident {
	return domain.Incident{
		ID:        uuid.New(),
		Type:      domain.TypeTheft,
		Severity:  risk.SeverityMedium,
		Point:     p,
		CreatedAt: time.Now().Add(-age),
		Status:    status,
	}
}

func TestQuery_EmptyIndex(t *testing.T) {
	t.Parallel()

	ix := New(DefaultCellMeters)
	if got := ix.Query(center, 500, 0); len(got) != 0 {
		t.Fatalf("empty index returned %d records", len(got))
	}
}

func TestQuery_NearestFirstTiesMostRecent(t *testing.T) {
	t.Parallel()

	ix := New(DefaultCellMeters)
	far := incident(offsetNorth(center, 400), time.Hour, domain.StatusActive)
	near := incident(offsetNorth(center, 50), time.Hour, domain.StatusActive)
	// same point as near but fresher; distance ties break most recent first
	nearFresh := incident(offsetNorth(center, 50), time.Minute, domain.StatusActive)

	ix.Insert(far)
	ix.Insert(near)
	ix.Insert(nearFresh)

	got := ix.Query(center, 1000, 0)
	if len(got) != 3 {
		t.Fatalf("expected 3 records, got %d", len(got))
	}
	if got[0].ID != nearFresh.ID || got[1].ID != near.ID || got[2].ID != far.ID {
		t.Fatalf("wrong order: %v %v %v", got[0].ID, got[1].ID, got[2].ID)
	}
}

func TestQuery_RadiusAndAgeFilter(t *testing.T) {
	t.Parallel()

	ix := New(DefaultCellMeters)
	ix.Insert(incident(offsetNorth(center, 100), time.Hour, domain.StatusActive))
	ix.Insert(incident(offsetNorth(center, 900), time.Hour, domain.StatusActive))
	ix.Insert(incident(offsetNorth(center, 120), 40*24*time.Hour, domain.StatusActive))

	if got := ix.Query(center, 500, 0); len(got) != 2 {
		t.Fatalf("radius filter: expected 2, got %d", len(got))
	}
	if got := ix.Query(center, 500, 30*24*time.Hour); len(got) != 1 {
		t.Fatalf("age filter: expected 1, got %d", len(got))
	}
}

func TestArchive_ExcludedFromQueries(t *testing.T) {
	t.Parallel()

	ix := New(DefaultCellMeters)
	inc := incident(offsetNorth(center, 100), time.Hour, domain.StatusActive)
	ix.Insert(inc)

	if !ix.Archive(inc.ID) {
		t.Fatalf("Archive should find the record")
	}
	if ix.Archive(inc.ID) {
		t.Fatalf("second Archive should report absence")
	}
	if got := ix.Query(center, 500, 0); len(got) != 0 {
		t.Fatalf("archived record still served: %d", len(got))
	}
	if ix.Size() != 0 {
		t.Fatalf("size = %d, want 0", ix.Size())
	}
}

func TestReplace_SkipsArchivedAndSetsStale(t *testing.T) {
	t.Parallel()

	ix := New(DefaultCellMeters)
	ix.Replace([]domain.Incident{
		incident(offsetNorth(center, 100), time.Hour, domain.StatusActive),
		incident(offsetNorth(center, 150), time.Hour, domain.StatusArchived),
	}, true)

	if ix.Size() != 1 {
		t.Fatalf("size = %d, want 1", ix.Size())
	}
	if !ix.Stale() {
		t.Fatalf("stale flag lost in Replace")
	}

	ix.MarkStale(false)
	if ix.Stale() {
		t.Fatalf("MarkStale(false) did not clear the flag")
	}
}

func TestQuery_CrossCellRadius(t *testing.T) {
	t.Parallel()

	// 250m cells, 900m radius spans several rings
	ix := New(DefaultCellMeters)
	for i := 1; i <= 8; i++ {
		ix.Insert(incident(offsetNorth(center, float64(i)*100), time.Hour, domain.StatusActive))
	}

	got := ix.Query(center, 550, 0)
	if len(got) != 5 {
		t.Fatalf("expected 5 records within 550m, got %d", len(got))
	}
	for i := 1; i < len(got); i++ {
		di := geo.Distance(center, got[i-1].Point)
		dj := geo.Distance(center, got[i].Point)
		if di > dj {
			t.Fatalf("not sorted by distance at %d: %v > %v", i, di, dj)
		}
	}
}

// Writers must never block or corrupt concurrent readers
func TestConcurrentReadersAndWriters(t *testing.T) {
	t.Parallel()

	ix := New(DefaultCellMeters)
	var wg sync.WaitGroup

	for w := range 4 {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := range 50 {
				ix.Insert(incident(offsetNorth(center, float64((w*50+i)%800)), time.Hour, domain.StatusActive))
			}
		}(w)
	}
	for range 4 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 200 {
				rows := ix.Query(center, 1000, 0)
				for i := 1; i < len(rows); i++ {
					if geo.Distance(center, rows[i-1].Point) > geo.Distance(center, rows[i].Point)+1e-9 {
						panic(fmt.Sprintf("unsorted snapshot at %d", i))
					}
				}
			}
		}()
	}
	wg.Wait()

	if ix.Size() != 200 {
		t.Fatalf("size = %d, want 200", ix.Size())
	}
}
