// Package service scores candidate routes against the incident snapshot
package service

import (
	"context"
	"sort"
	"time"

	"safetymapper/internal/core/geo"
	"safetymapper/internal/core/risk"
	"safetymapper/internal/modkit"
	perr "safetymapper/internal/platform/errors"
	"safetymapper/internal/platform/metrics"
	incdomain "safetymapper/internal/services/incidents/domain"
	resdomain "safetymapper/internal/services/resources/domain"
	"safetymapper/internal/services/routes/domain"
)

// Service defines the routes service contract
type Service interface {
	domain.ServicePort
}

// Config carries runtime knobs for the routes module.
// A zero Risk config falls back to the built-in defaults
type Config struct {
	Risk risk.Config
}

// Svc implements route assessment over published snapshots
type Svc struct {
	deps modkit.Deps
	cfg  risk.Config

	incidents incdomain.QueryPort
	resources resdomain.QueryPort
	met       *metrics.Metrics

	now func() time.Time
}

// New constructs the routes service. The risk config is validated up front
// so a bad deployment fails at startup, not per request
func New(deps modkit.Deps, cfg Config, inc incdomain.QueryPort, res resdomain.QueryPort, met *metrics.Metrics) *Svc {
	if inc == nil || res == nil {
		panic("routes.Service requires incident and resource query ports")
	}
	rc := cfg.Risk
	if rc.DecayHorizon == 0 {
		rc = risk.DefaultConfig()
	}
	if err := rc.Validate(); err != nil {
		panic(err)
	}
	return &Svc{
		deps:      deps,
		cfg:       rc,
		incidents: inc,
		resources: res,
		met:       met,
		now:       time.Now,
	}
}

// Assess scores one route and tiers the result
func (s *Svc) Assess(ctx context.Context, in domain.AssessInput) (domain.Verdict, error) {
	mode, err := s.mode(in.Mode)
	if err != nil {
		return domain.Verdict{}, err
	}
	if err := checkGeometry(in.Points); err != nil {
		return domain.Verdict{}, err
	}

	v := s.assess(in.Points, mode)
	if s.met != nil {
		s.met.RouteAssessments.WithLabelValues(string(v.Tier)).Inc()
	}
	return v, nil
}

// Compare scores every candidate and ranks them safest first.
// Ties on score go to the shorter supplied travel time; remaining ties
// keep input order, so the ranking is stable and idempotent
func (s *Svc) Compare(ctx context.Context, in domain.CompareInput) (domain.CompareOutput, error) {
	mode, err := s.mode(in.Mode)
	if err != nil {
		return domain.CompareOutput{}, err
	}
	if len(in.Candidates) < 2 {
		return domain.CompareOutput{}, perr.InvalidArgf("comparison needs at least 2 candidates")
	}
	for i, c := range in.Candidates {
		if err := checkGeometry(c.Points); err != nil {
			return domain.CompareOutput{}, perr.Wrapf(err, perr.CodeOf(err), "candidate %d", i)
		}
	}

	out := domain.CompareOutput{Rankings: make([]domain.Ranked, 0, len(in.Candidates))}
	for _, c := range in.Candidates {
		v := s.assess(c.Points, mode)
		out.Stale = out.Stale || v.Stale
		out.Rankings = append(out.Rankings, domain.Ranked{
			Name:          c.Name,
			TravelSeconds: c.TravelSeconds,
			Verdict:       v,
		})
	}

	sort.SliceStable(out.Rankings, func(i, j int) bool {
		a, b := out.Rankings[i], out.Rankings[j]
		if a.Verdict.Score != b.Verdict.Score {
			return a.Verdict.Score < b.Verdict.Score
		}
		return a.TravelSeconds < b.TravelSeconds
	})
	for i := range out.Rankings {
		out.Rankings[i].Rank = i + 1
	}

	if s.met != nil && len(out.Rankings) > 0 {
		s.met.RouteAssessments.WithLabelValues(string(out.Rankings[0].Verdict.Tier)).Inc()
	}
	return out, nil
}

// assess runs segmentation and scoring against the current snapshots
func (s *Svc) assess(pts []geo.Point, mode risk.Mode) domain.Verdict {
	now := s.now().UTC()
	radius := s.cfg.LookupRadius[mode]

	spans := split(pts, s.cfg.SegmentLength, s.cfg.SegmentMaxPoints)
	segs := make([]risk.SegmentResult, 0, len(spans))
	for _, sp := range spans {
		var nearby []risk.NearbyIncident
		for _, inc := range s.incidents.Query(sp.mid, radius, s.cfg.DecayHorizon) {
			nearby = append(nearby, risk.NearbyIncident{
				Distance: geo.Distance(sp.mid, inc.Point),
				Severity: inc.Severity,
				Age:      now.Sub(inc.CreatedAt),
			})
		}
		var aids []risk.NearbyResource
		for _, res := range s.resources.NearPoint(sp.mid, s.cfg.MitigationRadius) {
			aids = append(aids, risk.NearbyResource{
				Distance: res.DistanceMeters,
				Kind:     string(res.Kind),
			})
		}
		segs = append(segs, risk.SegmentResult{
			StartIdx:     sp.start,
			EndIdx:       sp.end,
			Length:       sp.length,
			SegmentScore: risk.ScoreSegment(s.cfg, mode, nearby, aids),
		})
	}

	score, tier := risk.Aggregate(s.cfg, segs)
	return domain.Verdict{
		Score:    score,
		Tier:     tier,
		LengthM:  geo.PathLength(pts),
		Segments: segs,
		Stale:    s.incidents.Stale() || s.resources.Stale(),
	}
}

func (s *Svc) mode(raw string) (risk.Mode, error) {
	if raw == "" {
		return risk.ModeWalking, nil
	}
	m := risk.Mode(raw)
	if !m.Valid() {
		return "", perr.InvalidArgf("unknown travel mode %q", raw)
	}
	return m, nil
}

func checkGeometry(pts []geo.Point) error {
	if len(pts) < 2 {
		return perr.InvalidGeometryf("route needs at least 2 points, got %d", len(pts))
	}
	for i, p := range pts {
		if !p.Valid() {
			return perr.InvalidGeometryf("point %d out of range", i)
		}
	}
	return nil
}
