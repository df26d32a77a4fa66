// Package risk implements the segment and route scoring math.
// Every function here is a pure function of its inputs and an immutable
// Config, so behavior is fully determined per request
package risk

import (
	"time"

	perr "safetymapper/internal/platform/errors"
)

// Severity orders incident impact low < medium < high
type Severity string

// Severity levels
const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// Valid reports whether s is a known severity
func (s Severity) Valid() bool {
	switch s {
	case SeverityLow, SeverityMedium, SeverityHigh:
		return true
	}
	return false
}

// Mode is the declared travel mode of a route
type Mode string

// Travel modes
const (
	ModeWalking   Mode = "walking"
	ModeBicycling Mode = "bicycling"
	ModeTransit   Mode = "transit"
	ModeDriving   Mode = "driving"
)

// Valid reports whether m is a known travel mode
func (m Mode) Valid() bool {
	switch m {
	case ModeWalking, ModeBicycling, ModeTransit, ModeDriving:
		return true
	}
	return false
}

// Tier is the discrete rollup of a route score
type Tier string

// Route tiers
const (
	TierSafe     Tier = "safe"
	TierCaution  Tier = "caution"
	TierHighRisk Tier = "high-risk"
)

// Config carries every tunable the scoring model uses. Construct with
// DefaultConfig and override, then Validate once at startup; an invalid
// Config is a boot failure, never a request-time surprise
type Config struct {
	// SeverityWeights maps severity to its base contribution
	SeverityWeights map[Severity]float64

	// DecayHorizon is the age at which an incident stops contributing
	DecayHorizon time.Duration

	// LookupRadius is the incident search radius around a segment midpoint,
	// per travel mode. Mode changes the radius only, never the decay math
	LookupRadius map[Mode]float64

	// MitigationRadius bounds how close a safety resource must be to count
	MitigationRadius float64
	// MitigationFactor multiplies the summed score per nearby resource
	MitigationFactor float64
	// MitigationFloor caps stacking; the combined multiplier never drops below it
	MitigationFloor float64

	// Saturation is k in 1 - exp(-k*sum)
	Saturation float64

	// MaxWeight and MeanWeight combine worst-point and overall exposure;
	// they must sum to 1
	MaxWeight  float64
	MeanWeight float64

	// SafeBelow and HighAbove bound the caution band
	SafeBelow float64
	HighAbove float64

	// SegmentLength and SegmentMaxPoints bound segment size; a segment closes
	// at whichever limit is reached first
	SegmentLength    float64
	SegmentMaxPoints int
}

// DefaultConfig returns the tuned defaults
func DefaultConfig() Config {
	return Config{
		SeverityWeights: map[Severity]float64{
			SeverityLow:    1,
			SeverityMedium: 2,
			SeverityHigh:   3,
		},
		DecayHorizon: 90 * 24 * time.Hour,
		LookupRadius: map[Mode]float64{
			ModeWalking:   200,
			ModeBicycling: 250,
			ModeTransit:   300,
			ModeDriving:   500,
		},
		MitigationRadius: 150,
		MitigationFactor: 0.7,
		MitigationFloor:  0.5,
		Saturation:       0.25,
		MaxWeight:        0.6,
		MeanWeight:       0.4,
		SafeBelow:        0.3,
		HighAbove:        0.6,
		SegmentLength:    400,
		SegmentMaxPoints: 20,
	}
}

// Validate rejects configurations that would make scoring undefined
func (c Config) Validate() error {
	for _, s := range []Severity{SeverityLow, SeverityMedium, SeverityHigh} {
		w, ok := c.SeverityWeights[s]
		if !ok || w <= 0 {
			return perr.Configurationf("risk: severity weight for %q must be positive", s)
		}
	}
	if c.SeverityWeights[SeverityLow] > c.SeverityWeights[SeverityMedium] ||
		c.SeverityWeights[SeverityMedium] > c.SeverityWeights[SeverityHigh] {
		return perr.Configurationf("risk: severity weights must be non-decreasing low<=medium<=high")
	}
	if c.DecayHorizon <= 0 {
		return perr.Configurationf("risk: decay horizon must be positive")
	}
	for _, m := range []Mode{ModeWalking, ModeBicycling, ModeTransit, ModeDriving} {
		r, ok := c.LookupRadius[m]
		if !ok || r <= 0 {
			return perr.Configurationf("risk: lookup radius for %q must be positive", m)
		}
	}
	if c.MitigationRadius <= 0 {
		return perr.Configurationf("risk: mitigation radius must be positive")
	}
	if c.MitigationFactor <= 0 || c.MitigationFactor > 1 {
		return perr.Configurationf("risk: mitigation factor must be in (0,1]")
	}
	if c.MitigationFloor <= 0 || c.MitigationFloor > c.MitigationFactor {
		return perr.Configurationf("risk: mitigation floor must be in (0, factor]")
	}
	if c.Saturation <= 0 {
		return perr.Configurationf("risk: saturation k must be positive")
	}
	if c.MaxWeight < 0 || c.MeanWeight < 0 || !sumsToOne(c.MaxWeight, c.MeanWeight) {
		return perr.Configurationf("risk: max/mean weights must be non-negative and sum to 1")
	}
	if c.SafeBelow <= 0 || c.HighAbove >= 1 || c.SafeBelow >= c.HighAbove {
		return perr.Configurationf("risk: tier thresholds must satisfy 0 < safe < high < 1")
	}
	if c.SegmentLength <= 0 {
		return perr.Configurationf("risk: segment length must be positive")
	}
	if c.SegmentMaxPoints < 2 {
		return perr.Configurationf("risk: segment max points must be at least 2")
	}
	return nil
}

func sumsToOne(a, b float64) bool {
	const eps = 1e-9
	s := a + b
	return s > 1-eps && s < 1+eps
}

// TierFor buckets a route score into its discrete tier
func (c Config) TierFor(score float64) Tier {
	switch {
	case score < c.SafeBelow:
		return TierSafe
	case score > c.HighAbove:
		return TierHighRisk
	default:
		return TierCaution
	}
}
