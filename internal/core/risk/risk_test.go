package risk

import (
	"math"
	"testing"

	perr "safetymapper/internal/platform/errors"
)

func TestDefaultConfig_Valid(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("default config must validate: %v", err)
	}
}

func TestValidate_Rejections(t *testing.T) {
	mutations := []struct {
		name string
		mut  func(*Config)
	}{
		{"zero severity weight", func(c *Config) { c.SeverityWeights[SeverityLow] = 0 }},
		{"inverted severity order", func(c *Config) { c.SeverityWeights[SeverityLow] = 5 }},
		{"zero horizon", func(c *Config) { c.DecayHorizon = 0 }},
		{"missing mode radius", func(c *Config) { delete(c.LookupRadius, ModeTransit) }},
		{"negative mitigation radius", func(c *Config) { c.MitigationRadius = -1 }},
		{"mitigation factor above one", func(c *Config) { c.MitigationFactor = 1.5 }},
		{"floor above factor", func(c *Config) { c.MitigationFloor = 0.9 }},
		{"zero saturation", func(c *Config) { c.Saturation = 0 }},
		{"weights not summing to one", func(c *Config) { c.MaxWeight = 0.7 }},
		{"thresholds inverted", func(c *Config) { c.SafeBelow, c.HighAbove = 0.6, 0.3 }},
		{"zero segment length", func(c *Config) { c.SegmentLength = 0 }},
		{"one point segments", func(c *Config) { c.SegmentMaxPoints = 1 }},
	}

	for _, tc := range mutations {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			// maps are shared by value; deep-copy the ones we mutate
			cfg.SeverityWeights = map[Severity]float64{SeverityLow: 1, SeverityMedium: 2, SeverityHigh: 3}
			cfg.LookupRadius = map[Mode]float64{ModeWalking: 200, ModeBicycling: 250, ModeTransit: 300, ModeDriving: 500}
			tc.mut(&cfg)

			err := cfg.Validate()
			if err == nil {
				t.Fatalf("expected validation error")
			}
			if code := perr.CodeOf(err); code != perr.ErrorCodeConfiguration {
				t.Fatalf("expected configuration error code, got %v (%v)", code, err)
			}
		})
	}
}

func TestTierFor(t *testing.T) {
	cfg := DefaultConfig()

	tests := []struct {
		score float64
		want  Tier
	}{
		{0.0, TierSafe},
		{0.29, TierSafe},
		{0.3, TierCaution},
		{0.45, TierCaution},
		{0.6, TierCaution},
		{0.61, TierHighRisk},
		{0.99, TierHighRisk},
	}
	for _, tc := range tests {
		if got := cfg.TierFor(tc.score); got != tc.want {
			t.Fatalf("TierFor(%v) = %q, want %q", tc.score, got, tc.want)
		}
	}
}

func TestAggregate_MaxAndMean(t *testing.T) {
	cfg := DefaultConfig()

	segs := []SegmentResult{
		{Length: 100, SegmentScore: SegmentScore{Score: 0.2}},
		{Length: 300, SegmentScore: SegmentScore{Score: 0.8}},
	}
	score, tier := Aggregate(cfg, segs)

	mean := (0.2*100 + 0.8*300) / 400
	want := cfg.MaxWeight*0.8 + cfg.MeanWeight*mean
	if math.Abs(score-want) > 1e-12 {
		t.Fatalf("Aggregate = %v, want %v", score, want)
	}
	if tier != cfg.TierFor(want) {
		t.Fatalf("tier = %q, want %q", tier, cfg.TierFor(want))
	}
}

func TestAggregate_EmptyAndDegenerate(t *testing.T) {
	cfg := DefaultConfig()

	if score, tier := Aggregate(cfg, nil); score != 0 || tier != TierSafe {
		t.Fatalf("empty aggregate = %v/%q, want 0/safe", score, tier)
	}

	// zero-length segments fall back to a plain mean
	segs := []SegmentResult{
		{Length: 0, SegmentScore: SegmentScore{Score: 0.4}},
		{Length: 0, SegmentScore: SegmentScore{Score: 0.6}},
	}
	score, _ := Aggregate(cfg, segs)
	want := cfg.MaxWeight*0.6 + cfg.MeanWeight*0.5
	if math.Abs(score-want) > 1e-12 {
		t.Fatalf("degenerate aggregate = %v, want %v", score, want)
	}
}

func TestAggregate_SegmentOrderIndependent(t *testing.T) {
	cfg := DefaultConfig()

	segs := []SegmentResult{
		{Length: 150, SegmentScore: SegmentScore{Score: 0.1}},
		{Length: 250, SegmentScore: SegmentScore{Score: 0.7}},
		{Length: 50, SegmentScore: SegmentScore{Score: 0.3}},
	}
	rev := []SegmentResult{segs[2], segs[1], segs[0]}

	a, _ := Aggregate(cfg, segs)
	b, _ := Aggregate(cfg, rev)
	if math.Abs(a-b) > 1e-12 {
		t.Fatalf("aggregate depends on segment order: %v vs %v", a, b)
	}
}
