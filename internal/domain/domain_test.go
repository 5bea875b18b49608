package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFeatureVector_ValuesFollowFeatureNames(t *testing.T) {
	fv := FeatureVector{
		ReviewLength:      42,
		WordCount:         8,
		SentimentPolarity: -0.25,
		Rating:            5,
		UserReviewCount:   1,
		DailyReviewCount:  3,
		DuplicateFlag:     true,
	}

	values := fv.Values()
	assert.Len(t, values, FeatureCount)
	assert.Len(t, FeatureNames(), FeatureCount)
	assert.Equal(t, []float64{42, 8, -0.25, 5, 1, 3, 1, 0}, values)
}

func TestActivityDate_UsesUTC(t *testing.T) {
	loc := time.FixedZone("UTC+3", 3*60*60)
	ts := time.Date(2024, 3, 10, 1, 30, 0, 0, loc)

	assert.Equal(t, "2024-03-09", ActivityDate(ts))
}

func TestNormalizeCategory(t *testing.T) {
	assert.Equal(t, "sunscreen", NormalizeCategory("  SunScreen \n"))
	assert.Equal(t, "", NormalizeCategory("   "))
}
