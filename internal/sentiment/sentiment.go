// Package sentiment scores review text polarity in [-1, 1].
package sentiment

import (
	"strings"
	"unicode"

	"github.com/trueinsight/reviewtrust/internal/textnorm"
)

// Analyzer returns the polarity of text: -1 is strongly negative, 1 strongly
// positive and 0 neutral or unknown.
type Analyzer interface {
	Polarity(text string) float64
}

// negationFactor is applied to a word's polarity when preceded by a negation.
const negationFactor = -0.5

// Lexicon scores text by averaging the polarity of known words. An intensifier
// scales the next scored word, a negation flips and halves it. Text with no
// known words scores 0.
type Lexicon struct {
	words        map[string]float64
	intensifiers map[string]float64
	negations    map[string]struct{}
}

// NewLexicon returns the built-in English review lexicon.
func NewLexicon() *Lexicon {
	negs := make(map[string]struct{}, len(defaultNegations))
	for _, n := range defaultNegations {
		negs[n] = struct{}{}
	}
	return &Lexicon{
		words:        defaultWords,
		intensifiers: defaultIntensifiers,
		negations:    negs,
	}
}

// Polarity implements Analyzer. Safe for concurrent use.
func (l *Lexicon) Polarity(text string) float64 {
	tokens := tokenize(textnorm.Fold(text))

	var (
		sum       float64
		n         int
		intensity = 1.0
		negated   bool
	)
	for _, tok := range tokens {
		if _, ok := l.negations[tok]; ok {
			negated = true
			continue
		}
		if f, ok := l.intensifiers[tok]; ok {
			intensity *= f
			continue
		}
		p, ok := l.words[tok]
		if !ok {
			continue
		}
		p *= intensity
		if negated {
			p *= negationFactor
		}
		sum += p
		n++
		intensity = 1.0
		negated = false
	}
	if n == 0 {
		return 0
	}
	return clamp(sum / float64(n))
}

// tokenize splits on anything that is not a letter, digit or apostrophe and
// expands the "n't" contraction into a separate negation token.
func tokenize(s string) []string {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '\''
	})
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		f = strings.Trim(f, "'")
		if f == "" {
			continue
		}
		if stem, ok := strings.CutSuffix(f, "n't"); ok {
			if stem != "" {
				out = append(out, stem)
			}
			out = append(out, "not")
			continue
		}
		out = append(out, f)
	}
	return out
}

func clamp(v float64) float64 {
	switch {
	case v > 1:
		return 1
	case v < -1:
		return -1
	default:
		return v
	}
}
