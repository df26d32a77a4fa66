// Package normalize provides a deterministic text normalizer used by the content filter
// Pipeline order
// 1 UTF-8 repair drop invalid bytes
// 2 Unicode NFKC normalization
// 3 Case folding
// 4 Remove control, format and combining marks
// 5 Width fold fullwidth to ASCII
// 6 Simple leet folding eg 4/@->a 0->o 1/!->i 3->e 5/$->s 7->t
// 7 Collapse whitespace to single spaces and trim
package normalize

import (
	"strings"
	"sync"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
	"golang.org/x/text/width"
)

// Normalizer is concurrency safe when used with the pool below
type Normalizer struct{}

// dropped covers control chars (except newline and tab), format chars
// (ZWJ ZWNJ FEFF etc) and combining marks
func dropped(r rune) bool {
	if r == '\n' || r == '\r' || r == '\t' {
		return false
	}
	return unicode.In(r, unicode.Cc, unicode.Cf, unicode.Mn)
}

// pool of fresh transformer chains
var chainPool = sync.Pool{
	New: func() any {
		// order matters and mirrors the documented pipeline
		return transform.Chain(
			norm.NFKC,
			cases.Fold(),
			runes.Remove(runes.Predicate(dropped)),
			width.Fold,
		)
	},
}

// New constructs a Normalizer
func New() *Normalizer { return &Normalizer{} }

// Normalize returns the normalized form of s following the pipeline described above
func (n *Normalizer) Normalize(s string) string {
	if s == "" {
		return ""
	}

	// 1 repair UTF-8 drop invalid bytes
	s = strings.ToValidUTF8(s, "")

	// 2-5 transform via pooled chain then reset and return it
	tr := chainPool.Get().(transform.Transformer)
	ns, _, _ := transform.String(tr, s)
	tr.Reset()
	chainPool.Put(tr)

	// 6 simple leet folding
	ns = leetFold(ns)

	// 7 collapse whitespace and trim
	ns = collapseSpaces(ns)

	return ns
}

// leetFold maps a tiny curated set of ASCII lookalikes to their letters.
// A lookalike only folds when a letter touches it on either side, so trailing
// punctuation ("call me!") and bare numbers ("route 40") survive intact
func leetFold(s string) string {
	if s == "" {
		return s
	}
	rs := []rune(s)
	letterAt := func(i int) bool {
		return i >= 0 && i < len(rs) && unicode.IsLetter(rs[i])
	}
	var b strings.Builder
	b.Grow(len(s))
	for i, r := range rs {
		sub, ok := leetMap[r]
		if ok {
			// '!' doubles as sentence punctuation; fold it only mid-word
			if r == '!' {
				ok = letterAt(i + 1)
			} else {
				ok = letterAt(i-1) || letterAt(i+1)
			}
		}
		if ok {
			b.WriteRune(sub)
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

var leetMap = map[rune]rune{
	'4': 'a', '@': 'a',
	'0': 'o',
	'1': 'i', '!': 'i',
	'3': 'e',
	'5': 's', '$': 's',
	'7': 't',
}

// collapseSpaces converts whitespace runs to a single ASCII space and trims the edges
func collapseSpaces(s string) string {
	if s == "" {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	inWS := false
	for _, r := range s {
		if unicode.IsSpace(r) {
			inWS = true
			continue
		}
		if inWS && b.Len() > 0 {
			b.WriteByte(' ')
		}
		inWS = false
		b.WriteRune(r)
	}
	return b.String()
}
