package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"safetymapper/internal/core/geo"
	"safetymapper/internal/core/risk"
	"safetymapper/internal/services/incidents/domain"
)

// seedIfEmpty loads a small demo set into an empty store so a fresh
// deployment has something to assess against. Guarded by config
func (s *Svc) seedIfEmpty(ctx context.Context) error {
	n, err := s.Repo.Count(ctx)
	if err != nil || n > 0 {
		return err
	}

	now := time.Now().UTC()
	for _, row := range sampleIncidents {
		inc := domain.Incident{
			ID:          uuid.New(),
			Type:        row.typ,
			Severity:    row.severity,
			Point:       row.point,
			Description: row.description,
			CreatedAt:   now.Add(-row.age),
			Status:      domain.StatusActive,
		}
		if err := s.Repo.Insert(ctx, inc); err != nil {
			return err
		}
	}
	return nil
}

var sampleIncidents = []struct {
	typ         domain.Type
	severity    risk.Severity
	point       geo.Point
	description string
	age         time.Duration
}{
	{domain.TypeTheft, risk.SeverityMedium, geo.Point{Lat: 37.7849, Lon: -122.4094}, "phone snatched near the plaza", 26 * time.Hour},
	{domain.TypeHarassment, risk.SeverityLow, geo.Point{Lat: 37.7759, Lon: -122.4145}, "aggressive panhandling on the corner", 50 * time.Hour},
	{domain.TypeAssault, risk.SeverityHigh, geo.Point{Lat: 37.7699, Lon: -122.4269}, "fight outside the bar after close", 3 * 24 * time.Hour},
	{domain.TypeVandalism, risk.SeverityLow, geo.Point{Lat: 37.7812, Lon: -122.4036}, "storefront window broken overnight", 5 * 24 * time.Hour},
	{domain.TypeSuspicious, risk.SeverityLow, geo.Point{Lat: 37.7881, Lon: -122.4075}, "person trying car doors along the block", 12 * time.Hour},
}
