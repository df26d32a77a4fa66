// Package domain holds safety resource types and contracts
package domain

import (
	"github.com/google/uuid"

	"safetymapper/internal/core/geo"
)

// Kind classifies a safety resource
type Kind string

// Resource kinds
const (
	KindPolice   Kind = "police"
	KindHospital Kind = "hospital"
)

// Valid reports whether k is a known resource kind
func (k Kind) Valid() bool { return k == KindPolice || k == KindHospital }

// Resource is one police station or hospital. Immutable; the cache refreshes
// the full set periodically from the backing source
type Resource struct {
	ID    uuid.UUID `json:"id"`
	Kind  Kind      `json:"kind"`
	Name  string    `json:"name"`
	Point geo.Point `json:"point"`
}

// Near is a resource paired with its distance from a query point
type Near struct {
	Resource
	DistanceMeters float64 `json:"distance_m"`
}
