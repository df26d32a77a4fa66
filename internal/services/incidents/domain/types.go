// Package domain holds incident types and contracts shared across modules
package domain

import (
	"time"

	"github.com/google/uuid"

	"safetymapper/internal/core/geo"
	"safetymapper/internal/core/risk"
)

// Type classifies an incident report
type Type string

// Incident types
const (
	TypeTheft      Type = "theft"
	TypeAssault    Type = "assault"
	TypeHarassment Type = "harassment"
	TypeVandalism  Type = "vandalism"
	TypeSuspicious Type = "suspicious"
	TypeOther      Type = "other"
)

// Valid reports whether t is a known incident type
func (t Type) Valid() bool {
	switch t {
	case TypeTheft, TypeAssault, TypeHarassment, TypeVandalism, TypeSuspicious, TypeOther:
		return true
	}
	return false
}

// Status is the lifecycle state of an incident
type Status string

// Incident statuses; the only legal transition is active to archived
const (
	StatusActive   Status = "active"
	StatusArchived Status = "archived"
)

// Incident is one community-submitted report. Immutable after creation
// except the active to archived status transition
type Incident struct {
	ID          uuid.UUID     `json:"id"`
	Type        Type          `json:"type"`
	Severity    risk.Severity `json:"severity"`
	Point       geo.Point     `json:"point"`
	Description string        `json:"description,omitempty"`
	CreatedAt   time.Time     `json:"created_at"`
	Status      Status        `json:"status"`
}
