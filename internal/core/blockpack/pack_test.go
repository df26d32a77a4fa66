package blockpack

import (
	"sort"
	"testing"
)

func TestLoadCompiles(t *testing.T) {
	p, err := Load()
	if err != nil {
		t.Fatalf("Load(): %v", err)
	}
	if p.Version != 1 {
		t.Fatalf("expected version 1, got %d", p.Version)
	}
	if len(p.Terms) == 0 {
		t.Fatalf("expected terms in pack")
	}
	if len(p.Patterns) != len(p.Compiled) {
		t.Fatalf("patterns/compiled mismatch: %d vs %d", len(p.Patterns), len(p.Compiled))
	}
	for i := range p.Compiled {
		if p.Compiled[i] == nil {
			t.Fatalf("nil compiled regexp at %d (%s)", i, p.Patterns[i].ID)
		}
	}
	if _, ok := p.TermSet["murder"]; !ok {
		t.Fatalf("term 'murder' missing")
	}
	if _, ok := p.Stopset["scunthorpe"]; !ok {
		t.Fatalf("stoplist missing scunthorpe")
	}
}

func TestTermsSortedAndCategorized(t *testing.T) {
	p, err := Load()
	if err != nil {
		t.Fatalf("Load(): %v", err)
	}

	if !sort.SliceIsSorted(p.Terms, func(i, j int) bool { return p.Terms[i].Term < p.Terms[j].Term }) {
		t.Fatalf("terms not sorted")
	}

	cats := make(map[string]struct{}, len(p.Categories))
	for _, c := range p.Categories {
		cats[c] = struct{}{}
	}
	for _, tm := range p.Terms {
		if _, ok := cats[tm.Category]; !ok {
			t.Fatalf("term %q has category %q outside pack categories", tm.Term, tm.Category)
		}
		if tm.Severity < 1 || tm.Severity > 3 {
			t.Fatalf("term %q severity %d out of range", tm.Term, tm.Severity)
		}
	}
}

func TestPatternsMatchNormalizedText(t *testing.T) {
	p, err := Load()
	if err != nil {
		t.Fatalf("Load(): %v", err)
	}

	byID := make(map[string]int, len(p.Patterns))
	for i, pt := range p.Patterns {
		byID[pt.ID] = i
	}

	i, ok := byID["doxxing-street-address"]
	if !ok {
		t.Fatalf("missing doxxing-street-address pattern")
	}
	if !p.Compiled[i].MatchString("she lives at 42 elm street every day") {
		t.Fatalf("street address pattern should match")
	}
	if p.Compiled[i].MatchString("take the fifth street exit") {
		t.Fatalf("street address pattern should require a house number")
	}
}
