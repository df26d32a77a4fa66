// Package policy applies the brand, alignment and security-privacy rule set.
// Rules are pure regex and marker checks over the raw message; no external
// calls, so this layer still runs when the classifier is down
package policy

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
)

// Category groups related rules for the risk rollup
type Category string

// Rule categories
const (
	CategoryPrivacy  Category = "security_privacy"
	CategoryTone     Category = "brand_tone"
	CategoryOffTopic Category = "alignment"
)

// Violation is one triggered rule
type Violation struct {
	Rule     string
	Category Category
	Reason   string
}

// Report is the policy layer's view of one message
type Report struct {
	Violations []Violation

	// ExplicitAllow is set when the message matches the safety-topic
	// allow rule and nothing violated. It is the only signal that can
	// approve a message while the pipeline runs degraded
	ExplicitAllow bool
}

// Clear reports whether no rule triggered
func (r Report) Clear() bool { return len(r.Violations) == 0 }

var piiRules = []struct {
	rule string
	re   *regexp.Regexp
}{
	{"email-address", regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)},
	{"phone-number", regexp.MustCompile(`\b\d{3}[-.]?\d{3}[-.]?\d{4}\b`)},
	{"ssn", regexp.MustCompile(`\b\d{3}-\d{2}-\d{4}\b`)},
	{"credit-card", regexp.MustCompile(`\b\d{4}[-\s]?\d{4}[-\s]?\d{4}[-\s]?\d{4}\b`)},
	{"street-address", regexp.MustCompile(`(?i)\b\d{1,5} [a-z]+ (?:st|street|ave|avenue|rd|road|blvd|boulevard|ln|lane|dr|drive|way|ct|court)\b`)},
}

var injectionMarkers = []string{
	"ignore previous instructions",
	"ignore all previous",
	"system prompt",
	"you are now",
	"pretend to be",
	"act as if",
	"roleplay as",
}

// onTopic matches messages plainly about community safety. Matching it is
// what earns an explicit allow
var onTopic = regexp.MustCompile(`(?i)\b(safe|safety|route|walk|walking|incident|crime|neighborhood|neighbourhood|street|area|park|police|hospital|emergency|night|dark|downtown)\b`)

// Policy evaluates the rule set. The zero value is not usable; use New
type Policy struct{}

// New returns the rule set evaluator
func New() *Policy { return &Policy{} }

// Evaluate runs every rule over the message
func (p *Policy) Evaluate(text string) Report {
	var rep Report
	lower := strings.ToLower(text)

	for _, r := range piiRules {
		if m := r.re.FindString(text); m != "" {
			rep.Violations = append(rep.Violations, Violation{
				Rule:     r.rule,
				Category: CategoryPrivacy,
				Reason:   fmt.Sprintf("contains personal data (%s)", r.rule),
			})
		}
	}

	for _, marker := range injectionMarkers {
		if strings.Contains(lower, marker) {
			rep.Violations = append(rep.Violations, Violation{
				Rule:     "prompt-injection",
				Category: CategoryPrivacy,
				Reason:   fmt.Sprintf("prompt injection marker %q", marker),
			})
			break
		}
	}

	if shouting(text) {
		rep.Violations = append(rep.Violations, Violation{
			Rule:     "shouting",
			Category: CategoryTone,
			Reason:   "message is mostly uppercase",
		})
	}
	if strings.Contains(text, "!!!") {
		rep.Violations = append(rep.Violations, Violation{
			Rule:     "excessive-punctuation",
			Category: CategoryTone,
			Reason:   "excessive punctuation",
		})
	}

	rep.ExplicitAllow = rep.Clear() && onTopic.MatchString(text)
	return rep
}

// shouting reports whether letters are overwhelmingly uppercase.
// Short messages never count; ALL CAPS street names are common
func shouting(text string) bool {
	var letters, upper int
	for _, r := range text {
		if unicode.IsLetter(r) {
			letters++
			if unicode.IsUpper(r) {
				upper++
			}
		}
	}
	return letters >= 12 && float64(upper) > 0.8*float64(letters)
}
