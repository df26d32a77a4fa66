// Package domain holds moderation types and contracts
package domain

// State names one step of the moderation pipeline. The pipeline is a
// straight line; states only ever advance
type State string

// Pipeline states, in order
const (
	StateReceived      State = "RECEIVED"
	StateStaticChecked State = "STATIC_CHECKED"
	StateAIChecked     State = "AI_CHECKED"
	StatePolicyChecked State = "POLICY_CHECKED"
	StateDecided       State = "DECIDED"
)

// Outcome is the terminal moderation decision
type Outcome string

// Terminal outcomes
const (
	OutcomeAllowed         Outcome = "ALLOWED"
	OutcomeBlocked         Outcome = "BLOCKED"
	OutcomeDegradedBlocked Outcome = "DEGRADED_BLOCKED"
)

// Layer names the pipeline layer that produced the decisive signal
type Layer string

// Decision layers
const (
	LayerStatic     Layer = "static"
	LayerClassifier Layer = "classifier"
	LayerPolicy     Layer = "policy"
	// LayerPipeline marks decisions the pipeline itself makes, such as the
	// fail-closed degraded default
	LayerPipeline Layer = "pipeline"
)

// RiskLevel is the coarse rollup attached to every verdict
type RiskLevel string

// Risk rollup levels
const (
	RiskHigh   RiskLevel = "HIGH_RISK"
	RiskMedium RiskLevel = "MEDIUM_RISK"
	RiskLow    RiskLevel = "LOW_RISK"
	RiskSafe   RiskLevel = "SAFE"
)
