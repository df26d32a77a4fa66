package domain

import (
	"context"
	"time"

	"safetymapper/internal/core/geo"
)

// ServicePort is consumed by handlers and other modules
type ServicePort interface {
	Create(ctx context.Context, in CreateInput) (Incident, error)
	Recent(ctx context.Context, in RecentInput) (RecentOutput, error)
	Archive(ctx context.Context, id string) error
}

// QueryPort is the read side other modules score against.
// Query returns active incidents nearest first, ties most recent first;
// Stale reports whether the snapshot could not be refreshed from the source
type QueryPort interface {
	Query(center geo.Point, radiusMeters float64, maxAge time.Duration) []Incident
	Stale() bool
}
