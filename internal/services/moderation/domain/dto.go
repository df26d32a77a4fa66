package domain

// CheckInput is one message to moderate
type CheckInput struct {
	Content string `json:"content" validate:"required,max=2000" example:"is the waterfront safe after dark?"`
}

// Verdict is the complete moderation decision for one message.
// Trail records the states the pipeline passed through, in order
type Verdict struct {
	Outcome  Outcome   `json:"outcome"`
	Layer    Layer     `json:"layer"`
	Reason   string    `json:"reason"`
	Category string    `json:"category,omitempty"`
	Risk     RiskLevel `json:"risk"`
	Degraded bool      `json:"degraded,omitempty"`
	Trail    []State   `json:"trail"`
}

// Blocked reports whether the verdict denies the message
func (v Verdict) Blocked() bool { return v.Outcome != OutcomeAllowed }
