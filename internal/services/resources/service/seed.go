package service

import (
	"context"

	"github.com/google/uuid"

	"safetymapper/internal/core/geo"
	"safetymapper/internal/services/resources/domain"
)

// seedIfEmpty loads a small demo set into an empty store so a fresh
// deployment has mitigation data to assess against. Guarded by config
func (s *Svc) seedIfEmpty(ctx context.Context) error {
	n, err := s.Repo.Count(ctx)
	if err != nil || n > 0 {
		return err
	}

	for _, row := range sampleResources {
		res := domain.Resource{
			ID:    uuid.New(),
			Kind:  row.kind,
			Name:  row.name,
			Point: row.point,
		}
		if err := s.Repo.Insert(ctx, res); err != nil {
			return err
		}
	}
	return nil
}

var sampleResources = []struct {
	kind  domain.Kind
	name  string
	point geo.Point
}{
	{domain.KindPolice, "tenderloin station", geo.Point{Lat: 37.7836, Lon: -122.4128}},
	{domain.KindPolice, "mission station", geo.Point{Lat: 37.7628, Lon: -122.4220}},
	{domain.KindHospital, "saint francis memorial", geo.Point{Lat: 37.7895, Lon: -122.4123}},
	{domain.KindHospital, "zuckerberg general", geo.Point{Lat: 37.7554, Lon: -122.4048}},
}
