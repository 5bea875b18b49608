package scoring

import (
	"math"

	"github.com/trueinsight/reviewtrust/internal/domain"
)

// Aggregate summarizes verdicts. Averages are rounded to two decimals and are
// 0 when there is nothing to average.
func Aggregate(verdicts []domain.Verdict) domain.IntegrityReport {
	var (
		sumAll, sumGenuine int
		genuine            int
	)
	for _, v := range verdicts {
		sumAll += v.Rating
		if !v.Suspicious {
			sumGenuine += v.Rating
			genuine++
		}
	}

	return domain.IntegrityReport{
		Total:                 len(verdicts),
		GenuineCount:          genuine,
		SuspiciousCount:       len(verdicts) - genuine,
		RawAverageRating:      mean(sumAll, len(verdicts)),
		FilteredAverageRating: mean(sumGenuine, genuine),
	}
}

func mean(sum, n int) float64 {
	if n == 0 {
		return 0
	}
	return math.Round(float64(sum)/float64(n)*100) / 100
}
