// Package service contains safety resource workflows
package service

import (
	"context"
	"time"

	"safetymapper/internal/core/geo"
	"safetymapper/internal/modkit"
	"safetymapper/internal/modkit/repokit"
	perr "safetymapper/internal/platform/errors"
	"safetymapper/internal/platform/logger"
	"safetymapper/internal/platform/metrics"
	"safetymapper/internal/services/resources/cache"
	"safetymapper/internal/services/resources/domain"
	"safetymapper/internal/services/resources/repo"
)

// Service defines the resources service contract
type Service interface {
	domain.ServicePort
	domain.QueryPort

	// Refresh rebuilds the published snapshot from the backing store
	Refresh(ctx context.Context) error
	// Run drives the periodic snapshot refresher until ctx is done
	Run(ctx context.Context) error
}

// Config carries runtime knobs for the resources module
type Config struct {
	RefreshEvery  time.Duration
	DefaultRadius float64
	SeedWhenEmpty bool
}

func withDefaults(cfg Config) Config {
	if cfg.RefreshEvery <= 0 {
		cfg.RefreshEvery = 15 * time.Minute
	}
	if cfg.DefaultRadius <= 0 {
		cfg.DefaultRadius = 500
	}
	return cfg
}

// Svc implements the resources service
type Svc struct {
	Repo   repo.Repo
	binder repokit.Binder[repo.Repo]
	db     repokit.TxRunner
	deps   modkit.Deps
	cfg    Config

	cache *cache.Cache
	met   *metrics.Metrics
}

// New constructs a resources service with an empty published snapshot
func New(deps modkit.Deps, cfg Config, met *metrics.Metrics) *Svc {
	if deps.PG == nil {
		panic("resources.Service requires a non nil TxRunner")
	}
	cfg = withDefaults(cfg)

	b := repo.NewPG()
	return &Svc{
		Repo:   b.Bind(deps.PG),
		binder: b,
		db:     deps.PG,
		deps:   deps,
		cfg:    cfg,
		cache:  cache.New(),
		met:    met,
	}
}

// Near lists resources around a point, nearest first.
// Lookups serve the published snapshot; the Stale flag tells callers when
// the snapshot may lag the backing source
func (s *Svc) Near(ctx context.Context, in domain.NearInput) (domain.NearOutput, error) {
	p := geo.Point{Lat: in.Lat, Lon: in.Lon}
	if !p.Valid() {
		return domain.NearOutput{}, perr.InvalidArgf("lookup point out of range")
	}
	if in.Kind != "" && !domain.Kind(in.Kind).Valid() {
		return domain.NearOutput{}, perr.InvalidArgf("unknown resource kind %q", in.Kind)
	}
	radius := in.Radius
	if radius <= 0 {
		radius = s.cfg.DefaultRadius
	}

	near := s.cache.NearPoint(p, radius)
	if in.Kind != "" {
		filtered := near[:0]
		for _, n := range near {
			if n.Kind == domain.Kind(in.Kind) {
				filtered = append(filtered, n)
			}
		}
		near = filtered
		if len(near) == 0 {
			near = nil
		}
	}
	return domain.NearOutput{Resources: near, Stale: s.cache.Stale()}, nil
}

// NearPoint serves the published snapshot; see domain.QueryPort
func (s *Svc) NearPoint(center geo.Point, radiusMeters float64) []domain.Near {
	return s.cache.NearPoint(center, radiusMeters)
}

// Stale reports whether the published snapshot may lag the source
func (s *Svc) Stale() bool { return s.cache.Stale() }

// Refresh rebuilds the published snapshot from the backing store.
// A failed rebuild keeps the last snapshot and marks it stale
func (s *Svc) Refresh(ctx context.Context) error {
	rows, err := s.Repo.List(ctx)
	if err != nil {
		s.cache.MarkStale(true)
		return err
	}
	s.cache.Replace(rows, false)
	s.observeSnapshot()
	return nil
}

// Run drives the periodic refresher until ctx is done
func (s *Svc) Run(ctx context.Context) error {
	log := logger.Named("resources-refresher")

	if s.cfg.SeedWhenEmpty {
		if err := s.seedIfEmpty(ctx); err != nil {
			log.Warn().Err(err).Msg("sample seed failed")
		}
	}
	if err := s.Refresh(ctx); err != nil {
		log.Warn().Err(err).Msg("initial snapshot refresh failed")
	}

	ticker := time.NewTicker(s.cfg.RefreshEvery)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := s.Refresh(ctx); err != nil {
				log.Warn().Err(err).Msg("snapshot refresh failed, serving stale data")
			}
		}
	}
}

func (s *Svc) observeSnapshot() {
	if s.met != nil {
		s.met.ResourceSnapshotSize.Set(float64(s.cache.Size()))
	}
}
