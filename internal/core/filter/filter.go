// Package filter implements the static content filter over normalized text.
// It is deterministic, makes no external calls, and completes in bounded time,
// so it keeps working when every downstream layer is unavailable
package filter

import (
	"unicode/utf8"

	"safetymapper/internal/core/blockpack"
	"safetymapper/internal/core/normalize"
)

// Source indicates which rule kind produced a rejection
type Source string

const (
	// SourcePattern indicates a hit from a compiled regex pattern
	SourcePattern Source = "pattern"
	// SourceTerm indicates a hit from a block-list term
	SourceTerm Source = "term"
)

// Result is the filter outcome for one input.
// A zero Result (Rejected false) means the text is clear
type Result struct {
	Rejected    bool
	Category    string
	MatchedTerm string
	Severity    int
	Source      Source
}

// Filter scans normalized text against the compiled block pack
type Filter struct {
	p *blockpack.Pack
	n *normalize.Normalizer

	ac       *acAutomaton
	terms    []blockpack.Term
	termLens []int
}

// New builds a Filter from a compiled pack
func New(p *blockpack.Pack) *Filter {
	f := &Filter{p: p, n: normalize.New()}

	ac := newAutomaton()
	lens := make([]int, len(p.Terms))
	for i, tm := range p.Terms {
		ac.Add([]byte(tm.Term), i)
		lens[i] = len(tm.Term)
	}
	ac.Build()

	f.ac = ac
	f.terms = p.Terms
	f.termLens = lens
	return f
}

// Check normalizes text and returns the first decisive match.
// Patterns run first, then block-list terms; either short-circuits
func (f *Filter) Check(text string) Result {
	norm := f.n.Normalize(text)
	if norm == "" {
		return Result{}
	}

	// Stage A: compiled patterns
	for i, re := range f.p.Compiled {
		loc := re.FindStringIndex(norm)
		if loc == nil {
			continue
		}
		if f.inStoplist(norm, loc[0], loc[1]) {
			continue
		}
		meta := f.p.Patterns[i]
		return Result{
			Rejected:    true,
			Category:    meta.Category,
			MatchedTerm: norm[loc[0]:loc[1]],
			Severity:    meta.Severity,
			Source:      SourcePattern,
		}
	}

	// Stage B: block-list terms via the automaton
	var hit Result
	f.ac.Scan([]byte(norm), func(end, id int) bool {
		start := end - f.termLens[id]
		if !f.boundaryOK(norm, start, end) || f.inStoplist(norm, start, end) {
			return true
		}
		tm := f.terms[id]
		hit = Result{
			Rejected:    true,
			Category:    tm.Category,
			MatchedTerm: tm.Term,
			Severity:    tm.Severity,
			Source:      SourceTerm,
		}
		return false
	})
	return hit
}

func (f *Filter) boundaryOK(s string, start, end int) bool {
	var prev, next rune
	if start > 0 {
		prev, _ = utf8.DecodeLastRuneInString(s[:start])
	}
	if end < len(s) {
		next, _ = utf8.DecodeRuneInString(s[end:])
	}
	return !isWord(prev) && !isWord(next)
}

func (f *Filter) inStoplist(s string, start, end int) bool {
	ls, rs := expandToToken(s, start, end)
	_, allowed := f.p.Stopset[s[ls:rs]]
	return allowed
}
