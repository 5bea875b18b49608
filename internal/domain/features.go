package domain

// Feature names in classifier input order.
const (
	FeatureReviewLength      = "review_length"
	FeatureWordCount         = "word_count"
	FeatureSentimentPolarity = "sentiment_polarity"
	FeatureRating            = "rating"
	FeatureUserReviewCount   = "user_review_count"
	FeatureDailyReviewCount  = "daily_review_count"
	FeatureDuplicateFlag     = "duplicate_flag"
	FeatureBurstFlag         = "burst_flag"
)

// FeatureCount is the length of every feature vector.
const FeatureCount = 8

// FeatureNames returns the canonical feature order. A classifier artifact must
// declare exactly this list.
func FeatureNames() []string {
	return []string{
		FeatureReviewLength,
		FeatureWordCount,
		FeatureSentimentPolarity,
		FeatureRating,
		FeatureUserReviewCount,
		FeatureDailyReviewCount,
		FeatureDuplicateFlag,
		FeatureBurstFlag,
	}
}

// FeatureVector is the classifier input derived from one review.
type FeatureVector struct {
	ReviewLength      int     `json:"review_length"`
	WordCount         int     `json:"word_count"`
	SentimentPolarity float64 `json:"sentiment_polarity"`
	Rating            int     `json:"rating"`
	UserReviewCount   int     `json:"user_review_count"`
	DailyReviewCount  int     `json:"daily_review_count"`
	DuplicateFlag     bool    `json:"duplicate_flag"`
	BurstFlag         bool    `json:"burst_flag"`
}

// Values returns the vector in FeatureNames order.
func (f FeatureVector) Values() []float64 {
	return []float64{
		float64(f.ReviewLength),
		float64(f.WordCount),
		f.SentimentPolarity,
		float64(f.Rating),
		float64(f.UserReviewCount),
		float64(f.DailyReviewCount),
		boolToFloat(f.DuplicateFlag),
		boolToFloat(f.BurstFlag),
	}
}

func boolToFloat(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
