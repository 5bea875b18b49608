package scoring

import (
	"github.com/trueinsight/reviewtrust/internal/domain"
	"github.com/trueinsight/reviewtrust/internal/textnorm"
)

// DetectDuplicates flags reviews whose case-folded, trimmed text appears more
// than once in the batch. The result is index-aligned with reviews.
func DetectDuplicates(reviews []domain.Review) []bool {
	keys := make([]string, len(reviews))
	counts := make(map[string]int, len(reviews))
	for i, r := range reviews {
		keys[i] = textnorm.Key(r.Text)
		counts[keys[i]]++
	}

	flags := make([]bool, len(reviews))
	for i, k := range keys {
		flags[i] = counts[k] > 1
	}
	return flags
}
