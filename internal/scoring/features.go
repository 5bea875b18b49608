package scoring

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/trueinsight/reviewtrust/internal/domain"
	"github.com/trueinsight/reviewtrust/internal/sentiment"
)

// ErrActivityUnavailable wraps review store failures while reading user
// activity. The pass is aborted; no partial verdicts are produced.
var ErrActivityUnavailable = errors.New("user activity unavailable")

// ActivityCounter reads per-user review counts. Implementations must not
// cache across calls.
type ActivityCounter interface {
	CountByUser(ctx context.Context, userID string) (int, error)
	CountByUserOnDate(ctx context.Context, userID, date string) (int, error)
}

// BatchActivityCounter returns the totals and per-day counts for all given
// users in one round trip. Its counts must equal those of ActivityCounter.
type BatchActivityCounter interface {
	UserActivity(ctx context.Context, userIDs []string) (domain.UserActivity, error)
}

// Extractor builds feature vectors.
type Extractor struct {
	sentiment sentiment.Analyzer
	activity  ActivityCounter
	batch     BatchActivityCounter
}

// NewExtractor creates an extractor. When batch is true and activity also
// implements BatchActivityCounter, counts are loaded with one query per pass.
func NewExtractor(analyzer sentiment.Analyzer, activity ActivityCounter, batch bool) *Extractor {
	e := &Extractor{sentiment: analyzer, activity: activity}
	if b, ok := activity.(BatchActivityCounter); ok && batch {
		e.batch = b
	}
	return e
}

// Batched reports whether the extractor uses grouped activity lookups.
func (e *Extractor) Batched() bool {
	return e.batch != nil
}

// Extract returns one feature vector per review, index-aligned. duplicate and
// burst must be index-aligned with reviews.
func (e *Extractor) Extract(ctx context.Context, reviews []domain.Review, duplicate, burst []bool) ([]domain.FeatureVector, error) {
	if len(reviews) == 0 {
		return nil, nil
	}

	total, daily, err := e.counts(ctx, reviews)
	if err != nil {
		return nil, err
	}

	out := make([]domain.FeatureVector, len(reviews))
	for i, r := range reviews {
		out[i] = domain.FeatureVector{
			ReviewLength:      utf8.RuneCountInString(r.Text),
			WordCount:         len(strings.Fields(r.Text)),
			SentimentPolarity: e.sentiment.Polarity(r.Text),
			Rating:            r.Rating,
			UserReviewCount:   total[i],
			DailyReviewCount:  daily[i],
			DuplicateFlag:     duplicate[i],
			BurstFlag:         burst[i],
		}
	}
	return out, nil
}

func (e *Extractor) counts(ctx context.Context, reviews []domain.Review) (total, daily []int, err error) {
	total = make([]int, len(reviews))
	daily = make([]int, len(reviews))

	if e.batch != nil {
		users := make([]string, 0, len(reviews))
		seen := make(map[string]struct{}, len(reviews))
		for _, r := range reviews {
			if _, ok := seen[r.UserID]; !ok {
				seen[r.UserID] = struct{}{}
				users = append(users, r.UserID)
			}
		}

		act, err := e.batch.UserActivity(ctx, users)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %w", ErrActivityUnavailable, err)
		}
		for i, r := range reviews {
			total[i] = act.Total[r.UserID]
			daily[i] = act.Daily[domain.UserDay{UserID: r.UserID, Date: domain.ActivityDate(r.CreatedAt)}]
		}
		return total, daily, nil
	}

	for i, r := range reviews {
		if total[i], err = e.activity.CountByUser(ctx, r.UserID); err != nil {
			return nil, nil, fmt.Errorf("%w: count reviews by user: %w", ErrActivityUnavailable, err)
		}
		if daily[i], err = e.activity.CountByUserOnDate(ctx, r.UserID, domain.ActivityDate(r.CreatedAt)); err != nil {
			return nil, nil, fmt.Errorf("%w: count daily reviews by user: %w", ErrActivityUnavailable, err)
		}
	}
	return total, daily, nil
}
