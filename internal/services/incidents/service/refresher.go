package service

import (
	"context"
	"time"

	"safetymapper/internal/platform/logger"
)

// Refresh rebuilds the published snapshot from the backing store.
// A failed rebuild keeps the last snapshot and marks it stale
func (s *Svc) Refresh(ctx context.Context) error {
	rows, err := s.Repo.ListActive(ctx)
	if err != nil {
		s.idx.MarkStale(true)
		return err
	}
	s.idx.Replace(rows, false)
	s.observeSnapshot()
	return nil
}

// Run drives the periodic refresher until ctx is done.
// The first refresh happens immediately so requests never start against an
// empty snapshot when the store already has data
func (s *Svc) Run(ctx context.Context) error {
	log := logger.Named("incidents-refresher")

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
