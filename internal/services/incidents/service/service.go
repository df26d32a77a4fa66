// Package service contains incident workflows
package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"safetymapper/internal/core/geo"
	"safetymapper/internal/core/risk"
	"safetymapper/internal/modkit"
	"safetymapper/internal/modkit/repokit"
	perr "safetymapper/internal/platform/errors"
	"safetymapper/internal/platform/metrics"
	"safetymapper/internal/services/incidents/domain"
	"safetymapper/internal/services/incidents/index"
	"safetymapper/internal/services/incidents/repo"
)

// Service defines the incidents service contract
type Service interface {
	domain.ServicePort
	domain.QueryPort

	// Refresh rebuilds the published snapshot from the backing store
	Refresh(ctx context.Context) error
	// Run drives the periodic snapshot refresher until ctx is done
	Run(ctx context.Context) error
}

// Config carries runtime knobs for the incidents module
type Config struct {
	CellMeters    float64
	RefreshEvery  time.Duration
	DefaultHours  int
	DefaultLimit  int
	SeedWhenEmpty bool
}

func withDefaults(cfg Config) Config {
	if cfg.CellMeters <= 0 {
		cfg.CellMeters = index.DefaultCellMeters
	}
	if cfg.RefreshEvery <= 0 {
		cfg.RefreshEvery = 5 * time.Minute
	}
	if cfg.DefaultHours <= 0 {
		cfg.DefaultHours = 24
	}
	if cfg.DefaultLimit <= 0 {
		cfg.DefaultLimit = 100
	}
	return cfg
}

// Svc implements the incidents service
type Svc struct {
	Repo   repo.Repo
	binder repokit.Binder[repo.Repo]
	db     repokit.TxRunner
	deps   modkit.Deps
	cfg    Config

	idx *index.Index
	met *metrics.Metrics
}

// New constructs an incidents service with an empty published snapshot
func New(deps modkit.Deps, cfg Config, met *metrics.Metrics) *Svc {
	if deps.PG == nil {
		panic("incidents.Service requires a non nil TxRunner")
	}
	cfg = withDefaults(cfg)

	b := repo.NewPG()
	return &Svc{
		Repo:   b.Bind(deps.PG),
		binder: b,
		db:     deps.PG,
		deps:   deps,
		cfg:    cfg,
		idx:    index.New(cfg.CellMeters),
		met:    met,
	}
}

// Create validates, persists and publishes a new incident report
func (s *Svc) Create(ctx context.Context, in domain.CreateInput) (domain.Incident, error) {
	p := geo.Point{Lat: in.Lat, Lon: in.Lon}
	if !p.Valid() {
		return domain.Incident{}, perr.InvalidArgf("incident location out of range")
	}

	inc := domain.Incident{
		ID:          uuid.New(),
		Type:        domain.Type(in.Type),
		Severity:    risk.Severity(in.Severity),
		Point:       p,
		Description: in.Description,
		CreatedAt:   time.Now().UTC(),
		Status:      domain.StatusActive,
	}
	if !inc.Type.Valid() {
		return domain.Incident{}, perr.InvalidArgf("unknown incident type %q", in.Type)
	}
	if !inc.Severity.Valid() {
		return domain.Incident{}, perr.InvalidArgf("unknown severity %q", in.Severity)
	}

	if err := s.Repo.Insert(ctx, inc); err != nil {
		return domain.Incident{}, perr.Wrap(err, perr.ErrorCodeDB, "persist incident")
	}

	s.idx.Insert(inc)
	s.observeSnapshot()
	return inc, nil
}

// Recent lists reports inside the hour window, newest first.
// When the backing store is unreachable it degrades to the last published
// snapshot and flags the result stale instead of failing the request
func (s *Svc) Recent(ctx context.Context, in domain.RecentInput) (domain.RecentOutput, error) {
	hours := in.Hours
	if hours <= 0 {
		hours = s.cfg.DefaultHours
	}
	limit := in.Limit
	if limit <= 0 {
		limit = s.cfg.DefaultLimit
	}
	since := time.Now().UTC().Add(-time.Duration(hours) * time.Hour)

	rows, err := s.Repo.Recent(ctx, since, limit)
	if err == nil {
		s.idx.MarkStale(false)
		return domain.RecentOutput{Incidents: rows, Stale: false}, nil
	}

	s.deps.Log.Warn().Err(err).Msg("incident source unreachable, serving snapshot")
	s.idx.MarkStale(true)
	return domain.RecentOutput{Incidents: s.idx.Recent(since, limit), Stale: true}, nil
}

// Archive transitions a report active -> archived and drops it from the
// published snapshot; the row stays in the store for audit
func (s *Svc) Archive(ctx context.Context, id string) error {
	uid, err := uuid.Parse(id)
	if err != nil {
		return perr.InvalidArgf("malformed incident id %q", id)
	}

	ok, err := s.Repo.Archive(ctx, uid)
	if err != nil {
		return perr.Wrap(err, perr.ErrorCodeDB, "archive incident")
	}
	if !ok {
		return perr.NotFoundf("incident %s not found or already archived", id)
	}

	s.idx.Archive(uid)
	s.observeSnapshot()
	return nil
}

// Query serves the published snapshot; see domain.QueryPort
func (s *Svc) Query(center geo.Point, radiusMeters float64, maxAge time.Duration) []domain.Incident {
	return s.idx.Query(center, radiusMeters, maxAge)
}

// Stale reports whether the published snapshot may lag the source
func (s *Svc) Stale() bool { return s.idx.Stale() }

func (s *Svc) observeSnapshot() {
	if s.met != nil {
		s.met.IncidentSnapshotSize.Set(float64(s.idx.Size()))
	}
}
