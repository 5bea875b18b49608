package scoring

import (
	"time"

	"github.com/trueinsight/reviewtrust/internal/domain"
)

// BurstThreshold is the number of reviews within one clock minute that marks
// all of them as burst postings.
const BurstThreshold = 3

// DetectBursts groups reviews by the minute of their timestamp and flags every
// review in a minute holding at least BurstThreshold reviews. The result is
// index-aligned with reviews.
func DetectBursts(reviews []domain.Review) []bool {
	buckets := make(map[time.Time][]int, len(reviews))
	for i, r := range reviews {
		minute := r.CreatedAt.Truncate(time.Minute)
		buckets[minute] = append(buckets[minute], i)
	}

	flags := make([]bool, len(reviews))
	for _, idx := range buckets {
		if len(idx) < BurstThreshold {
			continue
		}
		for _, i := range idx {
			flags[i] = true
		}
	}
	return flags
}
