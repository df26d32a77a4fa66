// Package blockpack loads and compiles the embedded block-list pack used by the
// static content filter. Terms become substring rules, patterns become regexes
package blockpack

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"regexp"
	"sort"
	"strings"
)

//go:embed rules.json
var embedded []byte

type rawTerm struct {
	Term     string `json:"term"`
	Category string `json:"category"`
	Severity int    `json:"severity"`
}

type rawPattern struct {
	ID       string `json:"id"`
	Pattern  string `json:"pattern"`
	Category string `json:"category"`
	Severity int    `json:"severity"`
}

type rawPack struct {
	Version    int            `json:"version"`
	Meta       map[string]any `json:"meta"`
	Categories []string       `json:"categories"`
	Terms      []rawTerm      `json:"terms"`
	Patterns   []rawPattern   `json:"patterns"`
	Allowlist  []string       `json:"allowlist"`
}

// Term is a substring rule over normalized text
type Term struct {
	Term     string
	Category string
	Severity int
}

// Pattern is a compiled regex rule
type Pattern struct {
	ID       string
	Category string
	Severity int
}

// Pack is the compiled block pack consumed by the filter
type Pack struct {
	Version    int
	Meta       map[string]any
	Categories []string

	Terms   []Term
	TermSet map[string]Term // lowercased term -> meta

	Patterns []Pattern
	Compiled []*regexp.Regexp // 1:1 with Patterns

	// Stopset suppresses hits whose containing token is allowlisted
	Stopset map[string]struct{}
}

// Load returns the compiled pack from the embedded rules.json
func Load() (*Pack, error) {
	var rp rawPack
	if err := json.Unmarshal(embedded, &rp); err != nil {
		return nil, fmt.Errorf("blockpack: parse rules.json: %w", err)
	}
	if rp.Version != 1 {
		return nil, fmt.Errorf("blockpack: unsupported rules.json version %d (want 1)", rp.Version)
	}

	p := &Pack{
		Version:    rp.Version,
		Meta:       rp.Meta,
		Categories: rp.Categories,
		TermSet:    make(map[string]Term, len(rp.Terms)),
		Stopset:    make(map[string]struct{}, len(rp.Allowlist)),
	}

	cats := make(map[string]struct{}, len(rp.Categories))
	for _, c := range rp.Categories {
		cats[c] = struct{}{}
	}

	for _, t := range rp.Terms {
		term := strings.ToLower(strings.TrimSpace(t.Term))
		if term == "" {
			continue
		}
		if _, ok := cats[t.Category]; !ok {
			return nil, fmt.Errorf("blockpack: term %q has unknown category %q", term, t.Category)
		}
		row := Term{Term: term, Category: t.Category, Severity: t.Severity}
		p.Terms = append(p.Terms, row)
		p.TermSet[term] = row
	}

	for _, pt := range rp.Patterns {
		if _, ok := cats[pt.Category]; !ok {
			return nil, fmt.Errorf("blockpack: pattern %q has unknown category %q", pt.ID, pt.Category)
		}
		re, err := regexp.Compile(strings.ToLower(pt.Pattern))
		if err != nil {
			return nil, fmt.Errorf("blockpack: compile %q: %w", pt.ID, err)
		}
		p.Patterns = append(p.Patterns, Pattern{ID: pt.ID, Category: pt.Category, Severity: pt.Severity})
		p.Compiled = append(p.Compiled, re)
	}

	for _, s := range rp.Allowlist {
		s = strings.ToLower(strings.TrimSpace(s))
		if s != "" {
			p.Stopset[s] = struct{}{}
		}
	}

	// Deterministic iteration for tests/debug
	sort.Slice(p.Terms, func(i, j int) bool { return p.Terms[i].Term < p.Terms[j].Term })

	return p, nil
}
