package sentiment

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLexicon_Polarity(t *testing.T) {
	l := NewLexicon()

	tests := []struct {
		name  string
		text  string
		check func(t *testing.T, p float64)
	}{
		{"positive", "Great product, works well", func(t *testing.T, p float64) { assert.Greater(t, p, 0.0) }},
		{"negative", "Terrible. Broke after a day", func(t *testing.T, p float64) { assert.Less(t, p, 0.0) }},
		{"neutral", "Arrived on Tuesday in a box", func(t *testing.T, p float64) { assert.Equal(t, 0.0, p) }},
		{"empty", "", func(t *testing.T, p float64) { assert.Equal(t, 0.0, p) }},
		{"case insensitive", "EXCELLENT", func(t *testing.T, p float64) { assert.Equal(t, 1.0, p) }},
		{"negation flips", "not good", func(t *testing.T, p float64) { assert.InDelta(t, -0.35, p, 1e-9) }},
		{"contraction negates", "isn't good", func(t *testing.T, p float64) { assert.Less(t, p, 0.0) }},
		{"intensifier scales", "very good", func(t *testing.T, p float64) { assert.InDelta(t, 0.91, p, 1e-9) }},
		{"clamped", "extremely excellent", func(t *testing.T, p float64) { assert.Equal(t, 1.0, p) }},
		{"averages", "good bad", func(t *testing.T, p float64) { assert.InDelta(t, 0.0, p, 1e-9) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.check(t, l.Polarity(tt.text))
		})
	}
}

func TestLexicon_PolarityBounds(t *testing.T) {
	l := NewLexicon()
	for _, text := range []string{
		"absolutely incredibly extremely perfect",
		"extremely extremely terrible awful horrible",
		"not not not bad",
	} {
		p := l.Polarity(text)
		assert.GreaterOrEqual(t, p, -1.0, text)
		assert.LessOrEqual(t, p, 1.0, text)
	}
}

func TestLexicon_ConcurrentUse(t *testing.T) {
	l := NewLexicon()
	want := l.Polarity("really nice and comfortable")

	var wg sync.WaitGroup
	for range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.Equal(t, want, l.Polarity("really nice and comfortable"))
		}()
	}
	wg.Wait()
}

func TestTokenize(t *testing.T) {
	assert.Equal(t, []string{"it", "does", "not", "fit", "5", "stars"}, tokenize("it doesn't fit!! 5-stars"))
	assert.Equal(t, []string{"not"}, tokenize("n't"))
}
