package domain

import (
	"context"

	"safetymapper/internal/core/geo"
)

// ServicePort is the resources API surface mounted over HTTP
type ServicePort interface {
	Near(ctx context.Context, in NearInput) (NearOutput, error)
}

// QueryPort is the read surface other services consume. Lookups hit the
// in-memory snapshot only and never block on the backing store
type QueryPort interface {
	// NearPoint returns resources within radiusMeters of center, nearest first
	NearPoint(center geo.Point, radiusMeters float64) []Near

	// Stale reports whether the snapshot may lag the backing source
	Stale() bool
}
