package policy

import (
	"sort"
	"sync"

	"github.com/cloudflare/ahocorasick"

	"github.com/trueinsight/reviewtrust/internal/textnorm"
)

// relevanceMatcher reports whether text contains any denylisted term. Terms
// match as plain substrings of the folded text, so "rash" also hits "crash".
type relevanceMatcher struct {
	terms []string

	mu      sync.Mutex // ahocorasick.Matcher mutates internal state on Match
	matcher *ahocorasick.Matcher
}

func newRelevanceMatcher(terms []string) *relevanceMatcher {
	folded := make([]string, len(terms))
	for i, t := range terms {
		folded[i] = textnorm.Fold(t)
	}
	return &relevanceMatcher{
		terms:   folded,
		matcher: ahocorasick.NewStringMatcher(folded),
	}
}

// hits returns the denylisted terms found in text, in denylist order.
func (m *relevanceMatcher) hits(text string) []string {
	if len(m.terms) == 0 {
		return nil
	}
	in := []byte(textnorm.Fold(text))

	m.mu.Lock()
	idx := m.matcher.Match(in)
	m.mu.Unlock()

	if len(idx) == 0 {
		return nil
	}
	sort.Ints(idx)
	out := make([]string, len(idx))
	for i, j := range idx {
		out[i] = m.terms[j]
	}
	return out
}
