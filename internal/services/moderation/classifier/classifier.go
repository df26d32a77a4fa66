// Package classifier wraps an external text-safety classifier behind a
// bounded-latency call. Timeouts, network failures and malformed responses
// all surface as a ClassifierUnavailable error; that is a designed signal
// the pipeline degrades on, never a stall
package classifier

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	stdhttp "net/http"
	"time"

	perr "safetymapper/internal/platform/errors"
)

// Result is the classifier's view of one message
type Result struct {
	Category   string  `json:"category"`
	Confidence float64 `json:"confidence"`
}

// Flagged reports whether the classifier marked the message unsafe
func (r Result) Flagged() bool {
	return r.Category != "" && r.Category != "safe" && r.Category != "none"
}

// Classifier scores a message or reports itself unavailable
type Classifier interface {
	Classify(ctx context.Context, text string) (Result, error)
}

// Config carries the HTTP classifier settings
type Config struct {
	// URL is the classify endpoint; empty disables the classifier
	URL string
	// Timeout is the hard per-call bound. Exceeding it means Unavailable
	Timeout time.Duration
}

const defaultTimeout = 2500 * time.Millisecond

// HTTP calls a remote classify endpoint with a strict deadline
type HTTP struct {
	cfg    Config
	client *stdhttp.Client
}

// NewHTTP builds the HTTP classifier adapter
func NewHTTP(cfg Config) *HTTP {
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	return &HTTP{
		cfg:    cfg,
		client: &stdhttp.Client{Timeout: cfg.Timeout},
	}
}

type classifyRequest struct {
	Text string `json:"text"`
}

// Classify posts the message and decodes {category, confidence}.
// Every failure mode maps to ClassifierUnavailable
func (h *HTTP) Classify(ctx context.Context, text string) (Result, error) {
	if h.cfg.URL == "" {
		return Result{}, perr.ClassifierUnavailablef("classifier not configured")
	}

	ctx, cancel := context.WithTimeout(ctx, h.cfg.Timeout)
	defer cancel()

	body, err := json.Marshal(classifyRequest{Text: text})
	if err != nil {
		return Result{}, perr.ClassifierUnavailablef("encode request: %v", err)
	}

	req, err := stdhttp.NewRequestWithContext(ctx, stdhttp.MethodPost, h.cfg.URL, bytes.NewReader(body))
	if err != nil {
		return Result{}, perr.ClassifierUnavailablef("build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := h.client.Do(req)
	if err != nil {
		return Result{}, perr.ClassifierUnavailablef("classifier call failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != stdhttp.StatusOK {
		io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return Result{}, perr.ClassifierUnavailablef("classifier returned status %d", resp.StatusCode)
	}

	var out Result
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<16)).Decode(&out); err != nil {
		return Result{}, perr.ClassifierUnavailablef("malformed classifier response: %v", err)
	}
	if out.Confidence < 0 || out.Confidence > 1 {
		return Result{}, perr.ClassifierUnavailablef("confidence %f out of range", out.Confidence)
	}
	return out, nil
}
