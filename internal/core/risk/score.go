package risk

import (
	"math"
	"time"
)

// NearbyIncident is one incident observed near a segment midpoint.
// Distance is meters from the midpoint, Age is measured at scoring time
type NearbyIncident struct {
	Distance float64
	Severity Severity
	Age      time.Duration
}

// NearbyResource is a safety resource observed near a segment midpoint
type NearbyResource struct {
	Distance float64
	Kind     string
}

// SegmentScore is the scored result for one segment
type SegmentScore struct {
	// Score is the normalized risk in [0,1]
	Score float64
	// Counts tallies contributing incidents by severity
	Counts map[Severity]int
	// NearestResource is meters to the closest resource, or -1 when none
	NearestResource float64
	// Mitigated is set when at least one resource discounted the sum
	Mitigated bool
}

// ScoreSegment scores one segment from the incidents and resources around its
// midpoint. Zero contributing incidents yields exactly 0.0 regardless of
// resources. The travel mode selects the lookup radius and nothing else
func ScoreSegment(cfg Config, mode Mode, incidents []NearbyIncident, resources []NearbyResource) SegmentScore {
	out := SegmentScore{
		Counts:          make(map[Severity]int, 3),
		NearestResource: -1,
	}

	radius := cfg.LookupRadius[mode]

	var sum float64
	for _, in := range incidents {
		c := contribution(cfg, radius, in)
		if c <= 0 {
			continue
		}
		sum += c
		out.Counts[in.Severity]++
	}

	for _, r := range resources {
		if out.NearestResource < 0 || r.Distance < out.NearestResource {
			out.NearestResource = r.Distance
		}
	}

	if sum == 0 {
		return out
	}

	if m := mitigation(cfg, resources); m < 1 {
		sum *= m
		out.Mitigated = true
	}

	out.Score = 1 - math.Exp(-cfg.Saturation*sum)
	return out
}

// contribution is severityWeight x timeDecay x distanceDecay.
// Anything at or past the horizon or the radius contributes exactly 0
func contribution(cfg Config, radius float64, in NearbyIncident) float64 {
	if in.Age >= cfg.DecayHorizon || in.Distance >= radius || in.Age < 0 || in.Distance < 0 {
		return 0
	}
	w := cfg.SeverityWeights[in.Severity]
	if w <= 0 {
		return 0
	}
	timeDecay := 1 - float64(in.Age)/float64(cfg.DecayHorizon)
	distDecay := 1 - in.Distance/radius
	return w * timeDecay * distDecay
}

// mitigation multiplies the factor per resource inside the mitigation radius,
// floored so stacking cannot discount past MitigationFloor
func mitigation(cfg Config, resources []NearbyResource) float64 {
	m := 1.0
	for _, r := range resources {
		if r.Distance >= 0 && r.Distance <= cfg.MitigationRadius {
			m *= cfg.MitigationFactor
		}
	}
	if m < cfg.MitigationFloor {
		m = cfg.MitigationFloor
	}
	return m
}
