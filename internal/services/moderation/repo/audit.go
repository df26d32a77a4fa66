// Package repo provides the moderation audit sink
package repo

import (
	"context"
	"time"

	"safetymapper/internal/platform/store"
	"safetymapper/internal/services/moderation/domain"
)

// Entry is one audited moderation decision. The raw message is never
// stored, only its length
type Entry struct {
	At         time.Time
	ContentLen int
	Outcome    domain.Outcome
	Layer      domain.Layer
	Category   string
	Reason     string
	Risk       domain.RiskLevel
	Degraded   bool
}

// Recorder persists moderation decisions for later analysis
type Recorder interface {
	Record(ctx context.Context, e Entry) error
}

// CH writes audit rows to ClickHouse
type CH struct {
	ch store.Clickhouse
}

// NewCH builds the ClickHouse audit sink
func NewCH(ch store.Clickhouse) *CH { return &CH{ch: ch} }

const auditTable = `moderation_audit (at, content_len, outcome, layer, category, reason, risk, degraded)`

// Record appends one audit row. Insert failures surface to the caller;
// the pipeline treats them as non-fatal
func (c *CH) Record(ctx context.Context, e Entry) error {
	degraded := uint8(0)
	if e.Degraded {
		degraded = 1
	}
	rows := [][]any{{
		e.At,
		uint32(e.ContentLen),
		string(e.Outcome),
		string(e.Layer),
		e.Category,
		e.Reason,
		string(e.Risk),
		degraded,
	}}
	return c.ch.Insert(ctx, auditTable, rows)
}

// Nop discards audit entries; used when ClickHouse is not configured
type Nop struct{}

// Record implements Recorder
func (Nop) Record(context.Context, Entry) error { return nil }
