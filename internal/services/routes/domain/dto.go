// Package domain holds route assessment types and contracts
package domain

import (
	"safetymapper/internal/core/geo"
	"safetymapper/internal/core/risk"
)

// AssessInput is a candidate route to score
type AssessInput struct {
	Points []geo.Point `json:"points" validate:"required,min=2,max=500"`
	Mode   string      `json:"mode" validate:"omitempty,oneof=walking bicycling transit driving" example:"walking"`
}

// Verdict is the scored outcome for one route
type Verdict struct {
	Score    float64              `json:"score"`
	Tier     risk.Tier            `json:"tier"`
	LengthM  float64              `json:"length_m"`
	Segments []risk.SegmentResult `json:"segments"`
	Stale    bool                 `json:"stale,omitempty"`
}

// Candidate is one alternative in a comparison
type Candidate struct {
	Name          string      `json:"name" validate:"omitempty,max=100"`
	Points        []geo.Point `json:"points" validate:"required,min=2,max=500"`
	TravelSeconds int         `json:"travel_seconds" validate:"omitempty,gte=0"`
}

// CompareInput asks for alternatives ranked safest first
type CompareInput struct {
	Mode       string      `json:"mode" validate:"omitempty,oneof=walking bicycling transit driving"`
	Candidates []Candidate `json:"candidates" validate:"required,min=2,max=10"`
}

// Ranked is one comparison entry, in final order
type Ranked struct {
	Rank          int     `json:"rank"`
	Name          string  `json:"name,omitempty"`
	TravelSeconds int     `json:"travel_seconds,omitempty"`
	Verdict       Verdict `json:"verdict"`
}

// CompareOutput lists candidates safest first
type CompareOutput struct {
	Rankings []Ranked `json:"rankings"`
	Stale    bool     `json:"stale,omitempty"`
}
