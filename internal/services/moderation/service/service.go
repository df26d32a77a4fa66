// Package service runs the layered moderation pipeline
package service

import (
	"context"
	"strings"
	"time"

	"safetymapper/internal/core/blockpack"
	"safetymapper/internal/core/filter"
	"safetymapper/internal/modkit"
	perr "safetymapper/internal/platform/errors"
	"safetymapper/internal/platform/metrics"
	"safetymapper/internal/services/moderation/classifier"
	"safetymapper/internal/services/moderation/domain"
	"safetymapper/internal/services/moderation/policy"
	"safetymapper/internal/services/moderation/repo"
)

// Service defines the moderation service contract
type Service interface {
	domain.ServicePort
}

// Config carries runtime knobs for the moderation module
type Config struct {
	// BlockConfidence is the classifier confidence at or above which an
	// unsafe category blocks outright; below it the policy layer decides
	BlockConfidence float64
}

func withDefaults(cfg Config) Config {
	if cfg.BlockConfidence <= 0 || cfg.BlockConfidence > 1 {
		cfg.BlockConfidence = 0.75
	}
	return cfg
}

// Svc implements the moderation pipeline:
// RECEIVED -> STATIC_CHECKED -> AI_CHECKED -> POLICY_CHECKED -> DECIDED.
// The pipeline is purely sequential with one fast exit (static rejection)
// and one degrade path (classifier unavailable, fail-closed)
type Svc struct {
	deps modkit.Deps
	cfg  Config

	filter *filter.Filter
	cls    classifier.Classifier
	pol    *policy.Policy
	audit  repo.Recorder
	met    *metrics.Metrics
}

// New constructs the moderation service. The embedded block pack must load;
// a broken pack is a build defect, not a runtime condition
func New(deps modkit.Deps, cfg Config, cls classifier.Classifier, audit repo.Recorder, met *metrics.Metrics) *Svc {
	pack, err := blockpack.Load()
	if err != nil {
		panic(perr.Wrap(err, perr.ErrorCodeConfiguration, "load block pack"))
	}
	if audit == nil {
		audit = repo.Nop{}
	}
	return &Svc{
		deps:   deps,
		cfg:    withDefaults(cfg),
		filter: filter.New(pack),
		cls:    cls,
		pol:    policy.New(),
		audit:  audit,
		met:    met,
	}
}

// Check moderates one message end to end and returns a complete verdict.
// It never returns a partial result; unavailability of downstream layers
// is folded into the verdict itself
func (s *Svc) Check(ctx context.Context, in domain.CheckInput) (domain.Verdict, error) {
	content := strings.TrimSpace(in.Content)
	if content == "" {
		return domain.Verdict{}, perr.InvalidArgf("empty content")
	}

	v := s.run(ctx, content)

	if s.met != nil {
		s.met.ModerationDecisions.WithLabelValues(string(v.Outcome), string(v.Layer)).Inc()
	}
	if err := s.audit.Record(ctx, repo.Entry{
		At:         time.Now().UTC(),
		ContentLen: len(content),
		Outcome:    v.Outcome,
		Layer:      v.Layer,
		Category:   v.Category,
		Reason:     v.Reason,
		Risk:       v.Risk,
		Degraded:   v.Degraded,
	}); err != nil {
		s.deps.Log.Warn().Err(err).Msg("moderation audit write failed")
	}
	return v, nil
}

func (s *Svc) run(ctx context.Context, content string) domain.Verdict {
	trail := []domain.State{domain.StateReceived}

	// static filter: decisive and independent of everything downstream
	trail = append(trail, domain.StateStaticChecked)
	if res := s.filter.Check(content); res.Rejected {
		return decided(domain.Verdict{
			Outcome:  domain.OutcomeBlocked,
			Layer:    domain.LayerStatic,
			Reason:   "blocked term " + res.MatchedTerm,
			Category: res.Category,
			Risk:     domain.RiskHigh,
		}, trail)
	}

	// AI layer: unavailability flips the degraded flag, nothing else
	trail = append(trail, domain.StateAIChecked)
	var (
		degraded bool
		ai       classifier.Result
	)
	res, err := s.cls.Classify(ctx, content)
	switch {
	case err != nil:
		degraded = true
		if s.met != nil {
			s.met.ClassifierUnavailable.Inc()
		}
		s.deps.Log.Warn().Err(err).Msg("classifier unavailable, moderating degraded")
	default:
		ai = res
	}

	if ai.Flagged() && ai.Confidence >= s.cfg.BlockConfidence {
		return decided(domain.Verdict{
			Outcome:  domain.OutcomeBlocked,
			Layer:    domain.LayerClassifier,
			Reason:   "classifier flagged content",
			Category: ai.Category,
			Risk:     domain.RiskHigh,
		}, trail)
	}

	// policy layer: pure rules, always runs
	trail = append(trail, domain.StatePolicyChecked)
	rep := s.pol.Evaluate(content)
	if !rep.Clear() {
		v := rep.Violations[0]
		return decided(domain.Verdict{
			Outcome:  domain.OutcomeBlocked,
			Layer:    domain.LayerPolicy,
			Reason:   v.Reason,
			Category: string(v.Category),
			Risk:     riskFor(v.Category),
			Degraded: degraded,
		}, trail)
	}

	// borderline classifier flag: policy approves or rejects it
	if ai.Flagged() && !rep.ExplicitAllow {
		return decided(domain.Verdict{
			Outcome:  domain.OutcomeBlocked,
			Layer:    domain.LayerPolicy,
			Reason:   "borderline classifier flag without policy approval",
			Category: ai.Category,
			Risk:     domain.RiskMedium,
		}, trail)
	}

	// fail closed: a message we could not fully evaluate is never
	// silently approved
	if degraded && !rep.ExplicitAllow {
		return decided(domain.Verdict{
			Outcome:  domain.OutcomeDegradedBlocked,
			Layer:    domain.LayerPipeline,
			Reason:   "classifier unavailable and no rule explicitly allows",
			Risk:     domain.RiskMedium,
			Degraded: true,
		}, trail)
	}

	return decided(domain.Verdict{
		Outcome:  domain.OutcomeAllowed,
		Layer:    domain.LayerPolicy,
		Reason:   "no layer objected",
		Risk:     domain.RiskSafe,
		Degraded: degraded,
	}, trail)
}

func decided(v domain.Verdict, trail []domain.State) domain.Verdict {
	v.Trail = append(trail, domain.StateDecided)
	return v
}

func riskFor(c policy.Category) domain.RiskLevel {
	switch c {
	case policy.CategoryPrivacy:
		return domain.RiskHigh
	case policy.CategoryTone:
		return domain.RiskMedium
	case policy.CategoryOffTopic:
		return domain.RiskLow
	}
	return domain.RiskMedium
}
