package scoring

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trueinsight/reviewtrust/internal/domain"
	"github.com/trueinsight/reviewtrust/internal/policy"
	"github.com/trueinsight/reviewtrust/internal/sentiment"
)

// --- fakes ---

// countingClassifier returns a fixed probability, or prob(fv) when set, and
// records how often it was asked.
type countingClassifier struct {
	p     float64
	prob  func(fv domain.FeatureVector) float64
	calls atomic.Int64
}

func (c *countingClassifier) FraudProbability(fv domain.FeatureVector) float64 {
	c.calls.Add(1)
	if c.prob != nil {
		return c.prob(fv)
	}
	return c.p
}

// fakeStore answers activity queries from a review history.
type fakeStore struct {
	mu         sync.Mutex
	history    []domain.Review
	err        error
	calls      int
	batchCalls int
}

func (s *fakeStore) CountByUser(_ context.Context, userID string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if s.err != nil {
		return 0, s.err
	}
	n := 0
	for _, r := range s.history {
		if r.UserID == userID {
			n++
		}
	}
	return n, nil
}

func (s *fakeStore) CountByUserOnDate(_ context.Context, userID, date string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if s.err != nil {
		return 0, s.err
	}
	n := 0
	for _, r := range s.history {
		if r.UserID == userID && domain.ActivityDate(r.CreatedAt) == date {
			n++
		}
	}
	return n, nil
}

func (s *fakeStore) UserActivity(_ context.Context, userIDs []string) (domain.UserActivity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.batchCalls++
	if s.err != nil {
		return domain.UserActivity{}, s.err
	}
	want := make(map[string]bool, len(userIDs))
	for _, u := range userIDs {
		want[u] = true
	}
	act := domain.UserActivity{Total: map[string]int{}, Daily: map[domain.UserDay]int{}}
	for _, r := range s.history {
		if !want[r.UserID] {
			continue
		}
		act.Total[r.UserID]++
		act.Daily[domain.UserDay{UserID: r.UserID, Date: domain.ActivityDate(r.CreatedAt)}]++
	}
	return act, nil
}

// naiveOnly hides the batch method of a fakeStore.
type naiveOnly struct{ s *fakeStore }

func (n naiveOnly) CountByUser(ctx context.Context, u string) (int, error) {
	return n.s.CountByUser(ctx, u)
}

func (n naiveOnly) CountByUserOnDate(ctx context.Context, u, d string) (int, error) {
	return n.s.CountByUserOnDate(ctx, u, d)
}

// --- helpers ---

var base = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func review(id, user string, rating int, text string, at time.Time) domain.Review {
	return domain.Review{ID: id, ProductID: "p-1", UserID: user, Rating: rating, Text: text, CreatedAt: at}
}

func newTestPipeline(t *testing.T, clf Classifier, activity ActivityCounter, batch bool) (*Pipeline, *Metrics) {
	t.Helper()
	m := NewMetrics(prometheus.NewRegistry())
	p := NewPipeline(clf, policy.Default(), NewExtractor(sentiment.NewLexicon(), activity, batch), m, slog.New(slog.DiscardHandler))
	return p, m
}

// mixedBatch is newest first, like the product listing.
func mixedBatch() []domain.Review {
	return []domain.Review{
		review("r6", "u1", 5, "Great sunscreen, no white cast", base.Add(5*time.Hour)),
		review("r5", "u2", 5, "Best product ever!!", base.Add(2*time.Hour+10*time.Second)),
		review("r4", "u3", 5, "best product ever!!  ", base.Add(2*time.Hour+20*time.Second)),
		review("r3", "u4", 1, "Battery died in a day", base.Add(2*time.Hour+30*time.Second)),
		review("r2", "u5", 2, "Leaves a greasy film", base.Add(time.Hour)),
		review("r1", "u1", 4, "Works well under makeup", base),
	}
}

func historyFor(reviews []domain.Review) []domain.Review {
	h := append([]domain.Review(nil), reviews...)
	// u1 is an established reviewer with two older reviews on another day.
	h = append(h,
		review("h1", "u1", 4, "older", base.AddDate(0, -1, 0)),
		review("h2", "u1", 3, "older", base.AddDate(0, -1, 0)),
	)
	return h
}

// --- Burst detection ---

func TestDetectBursts(t *testing.T) {
	minute := time.Date(2024, 6, 1, 10, 15, 0, 0, time.UTC)

	three := []domain.Review{
		{CreatedAt: minute.Add(1 * time.Second)},
		{CreatedAt: minute.Add(30 * time.Second)},
		{CreatedAt: minute.Add(59 * time.Second)},
		{CreatedAt: minute.Add(61 * time.Second)},
	}
	assert.Equal(t, []bool{true, true, true, false}, DetectBursts(three))

	two := []domain.Review{
		{CreatedAt: minute.Add(1 * time.Second)},
		{CreatedAt: minute.Add(2 * time.Second)},
	}
	assert.Equal(t, []bool{false, false}, DetectBursts(two))

	assert.Empty(t, DetectBursts(nil))
}

func TestDetectBursts_MinuteBoundary(t *testing.T) {
	edge := time.Date(2024, 6, 1, 10, 15, 59, 0, time.UTC)
	reviews := []domain.Review{
		{CreatedAt: edge},
		{CreatedAt: edge.Add(time.Second)},
		{CreatedAt: edge.Add(2 * time.Second)},
	}
	assert.Equal(t, []bool{false, false, false}, DetectBursts(reviews))
}

// --- Duplicate detection ---

func TestDetectDuplicates(t *testing.T) {
	reviews := []domain.Review{
		{Text: "Great product!"},
		{Text: "  great PRODUCT!\t"},
		{Text: "Great product"},
		{Text: ""},
	}
	assert.Equal(t, []bool{true, true, false, false}, DetectDuplicates(reviews))
}

// --- Extraction ---

func TestExtractor_Features(t *testing.T) {
	store := &fakeStore{}
	reviews := []domain.Review{review("r1", "u1", 3, " naïve  test\ttext ", base)}
	store.history = reviews

	fvs, err := NewExtractor(sentiment.NewLexicon(), store, false).
		Extract(context.Background(), reviews, []bool{true}, []bool{false})
	require.NoError(t, err)
	require.Len(t, fvs, 1)

	fv := fvs[0]
	assert.Equal(t, 18, fv.ReviewLength)
	assert.Equal(t, 3, fv.WordCount)
	assert.Equal(t, 3, fv.Rating)
	assert.Equal(t, 1, fv.UserReviewCount)
	assert.Equal(t, 1, fv.DailyReviewCount)
	assert.True(t, fv.DuplicateFlag)
	assert.False(t, fv.BurstFlag)
}

func TestExtractor_DailyCountUsesUTCDate(t *testing.T) {
	east := time.FixedZone("UTC+5", 5*60*60)
	store := &fakeStore{history: []domain.Review{
		review("a", "u1", 5, "a", time.Date(2024, 6, 2, 3, 0, 0, 0, east)), // 2024-06-01 22:00 UTC
		review("b", "u1", 5, "b", time.Date(2024, 6, 1, 23, 0, 0, 0, time.UTC)),
		review("c", "u1", 5, "c", time.Date(2024, 6, 2, 1, 0, 0, 0, time.UTC)),
	}}

	for _, batch := range []bool{false, true} {
		fvs, err := NewExtractor(sentiment.NewLexicon(), store, batch).
			Extract(context.Background(), store.history[:1], []bool{false}, []bool{false})
		require.NoError(t, err)
		assert.Equal(t, 3, fvs[0].UserReviewCount)
		assert.Equal(t, 2, fvs[0].DailyReviewCount, "batch=%v", batch)
	}
}

func TestNewExtractor_SelectsBatchOnlyWhenSupported(t *testing.T) {
	store := &fakeStore{}
	assert.True(t, NewExtractor(sentiment.NewLexicon(), store, true).Batched())
	assert.False(t, NewExtractor(sentiment.NewLexicon(), store, false).Batched())
	assert.False(t, NewExtractor(sentiment.NewLexicon(), naiveOnly{store}, true).Batched())
}

// --- Decision ---

func TestDecide_Threshold(t *testing.T) {
	pol := policy.Default()
	fv := domain.FeatureVector{UserReviewCount: 10}

	suspicious, _ := Decide(pol.Lookup("sunscreen"), 0.6, fv)
	assert.False(t, suspicious)

	suspicious, _ = Decide(pol.Lookup("garden hose"), 0.6, fv)
	assert.True(t, suspicious)
}

func TestReasons(t *testing.T) {
	tests := []struct {
		name string
		fv   domain.FeatureVector
		want []string
	}{
		{"all signals in order", domain.FeatureVector{DuplicateFlag: true, BurstFlag: true, UserReviewCount: 1},
			[]string{domain.ReasonDuplicate, domain.ReasonBurst, domain.ReasonLowActivity}},
		{"burst only", domain.FeatureVector{BurstFlag: true, UserReviewCount: 4}, []string{domain.ReasonBurst}},
		{"zero history is low activity", domain.FeatureVector{UserReviewCount: 0}, []string{domain.ReasonLowActivity}},
		{"model fallback", domain.FeatureVector{UserReviewCount: 2}, []string{domain.ReasonModel}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Reasons(tt.fv))
		})
	}
}

func TestDecide_GenuineHasNoReasons(t *testing.T) {
	fv := domain.FeatureVector{DuplicateFlag: true, BurstFlag: true, UserReviewCount: 1}
	suspicious, reasons := Decide(policy.Default().Lookup("phone"), 0.1, fv)
	assert.False(t, suspicious)
	assert.Empty(t, reasons)
	assert.NotNil(t, reasons)
}

// --- Aggregation ---

func TestAggregate(t *testing.T) {
	verdicts := []domain.Verdict{
		{Rating: 5, Suspicious: true},
		{Rating: 4},
		{Rating: 4},
		{Rating: 1},
	}
	r := Aggregate(verdicts)

	assert.Equal(t, 4, r.Total)
	assert.Equal(t, 3, r.GenuineCount)
	assert.Equal(t, 1, r.SuspiciousCount)
	assert.Equal(t, 3.5, r.RawAverageRating)
	assert.Equal(t, 3.0, r.FilteredAverageRating)
}

func TestAggregate_RoundsToTwoDecimals(t *testing.T) {
	r := Aggregate([]domain.Verdict{{Rating: 5}, {Rating: 4}, {Rating: 4}})
	assert.Equal(t, 4.33, r.RawAverageRating)
	assert.Equal(t, 4.33, r.FilteredAverageRating)
}

func TestAggregate_Empty(t *testing.T) {
	assert.Equal(t, domain.IntegrityReport{}, Aggregate(nil))
}

func TestAggregate_AllSuspicious(t *testing.T) {
	r := Aggregate([]domain.Verdict{{Rating: 5, Suspicious: true}, {Rating: 5, Suspicious: true}})
	assert.Equal(t, 5.0, r.RawAverageRating)
	assert.Equal(t, 0.0, r.FilteredAverageRating)
	assert.Equal(t, 2, r.SuspiciousCount)
}

// --- Pipeline ---

func TestAnalyze_RelevanceShortCircuit(t *testing.T) {
	reviews := []domain.Review{review("r1", "u1", 5, "The BATTERY lasts long", base)}
	store := &fakeStore{history: reviews}
	clf := &countingClassifier{p: 0.9}
	p, m := newTestPipeline(t, clf, store, true)

	res, err := p.Analyze(context.Background(), "sunscreen", reviews)
	require.NoError(t, err)

	require.Len(t, res.Verdicts, 1)
	v := res.Verdicts[0]
	assert.True(t, v.Suspicious)
	assert.Equal(t, []string{domain.ReasonIrrelevant}, v.Reasons)
	assert.Nil(t, v.Features)
	assert.Zero(t, clf.calls.Load())
	assert.Zero(t, store.calls+store.batchCalls)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.rejected))
}

func TestAnalyze_ThresholdSensitivity(t *testing.T) {
	reviews := []domain.Review{review("r1", "u1", 5, "Nice and light", base)}
	store := &fakeStore{history: historyFor(reviews)}

	p, _ := newTestPipeline(t, &countingClassifier{p: 0.6}, store, true)

	sunscreen, err := p.Analyze(context.Background(), "Sunscreen", reviews)
	require.NoError(t, err)
	assert.False(t, sunscreen.Verdicts[0].Suspicious)

	generic, err := p.Analyze(context.Background(), "mug", reviews)
	require.NoError(t, err)
	assert.True(t, generic.Verdicts[0].Suspicious)
	assert.Equal(t, []string{domain.ReasonModel}, generic.Verdicts[0].Reasons)
}

func TestAnalyze_EmptyBatch(t *testing.T) {
	clf := &countingClassifier{p: 0.9}
	p, _ := newTestPipeline(t, clf, &fakeStore{}, true)

	res, err := p.Analyze(context.Background(), "phone", nil)
	require.NoError(t, err)
	assert.Empty(t, res.Verdicts)
	assert.Equal(t, domain.IntegrityReport{}, res.Report)
	assert.Zero(t, clf.calls.Load())
}

func TestAnalyze_MixedBatch(t *testing.T) {
	reviews := mixedBatch()
	store := &fakeStore{history: historyFor(reviews)}
	clf := &countingClassifier{prob: func(fv domain.FeatureVector) float64 {
		if fv.DuplicateFlag || fv.BurstFlag {
			return 0.9
		}
		return 0.2
	}}
	p, m := newTestPipeline(t, clf, store, true)

	res, err := p.Analyze(context.Background(), "sunscreen", reviews)
	require.NoError(t, err)
	require.Len(t, res.Verdicts, len(reviews))

	for i, v := range res.Verdicts {
		assert.Equal(t, reviews[i].ID, v.ReviewID, "verdicts keep input order")
	}

	byID := map[string]domain.Verdict{}
	for _, v := range res.Verdicts {
		byID[v.ReviewID] = v
	}

	// r3 mentions a battery: rejected before burst detection, so r4/r5 form
	// only a two-review minute and are flagged as duplicates only.
	assert.Equal(t, []string{domain.ReasonIrrelevant}, byID["r3"].Reasons)
	assert.Equal(t, []string{domain.ReasonDuplicate, domain.ReasonLowActivity}, byID["r4"].Reasons)
	assert.Equal(t, []string{domain.ReasonDuplicate, domain.ReasonLowActivity}, byID["r5"].Reasons)
	assert.False(t, byID["r4"].Features.BurstFlag)
	assert.False(t, byID["r6"].Suspicious)
	assert.Empty(t, byID["r6"].Reasons)
	assert.Equal(t, 4, byID["r6"].Features.UserReviewCount)
	assert.Equal(t, 2, byID["r6"].Features.DailyReviewCount)

	assert.Equal(t, 5, int(clf.calls.Load()))
	assert.Equal(t, 1, store.batchCalls)
	assert.Zero(t, store.calls)

	r := res.Report
	assert.True(t, res.CategoryKnown)
	assert.Equal(t, r.Total, r.GenuineCount+r.SuspiciousCount)
	assert.Equal(t, 3, r.SuspiciousCount)
	assert.Equal(t, 3.67, r.RawAverageRating)
	assert.Equal(t, 3.67, r.FilteredAverageRating)

	assert.Equal(t, 3.0, testutil.ToFloat64(m.scored.WithLabelValues("suspicious")))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.scored.WithLabelValues("genuine")))
}

func TestAnalyze_BurstWithinPassingReviews(t *testing.T) {
	reviews := []domain.Review{
		review("r1", "u1", 5, "Love it", base.Add(10*time.Second)),
		review("r2", "u2", 5, "Smells nice", base.Add(20*time.Second)),
		review("r3", "u3", 5, "Five stars", base.Add(30*time.Second)),
	}
	store := &fakeStore{history: reviews}
	p, _ := newTestPipeline(t, &countingClassifier{p: 0.95}, store, true)

	res, err := p.Analyze(context.Background(), "sunscreen", reviews)
	require.NoError(t, err)
	for _, v := range res.Verdicts {
		assert.True(t, v.Features.BurstFlag)
		assert.Equal(t, []string{domain.ReasonBurst, domain.ReasonLowActivity}, v.Reasons)
	}
}

func TestAnalyze_BatchedAndNaiveAgree(t *testing.T) {
	reviews := mixedBatch()
	history := historyFor(reviews)
	clf := &countingClassifier{prob: func(fv domain.FeatureVector) float64 {
		return float64(fv.UserReviewCount*10+fv.DailyReviewCount) / 100
	}}

	batched, _ := newTestPipeline(t, clf, &fakeStore{history: history}, true)
	naiveStore := &fakeStore{history: history}
	naive, _ := newTestPipeline(t, clf, naiveOnly{naiveStore}, true)

	for _, category := range []string{"sunscreen", "phone", "unlisted"} {
		a, err := batched.Analyze(context.Background(), category, reviews)
		require.NoError(t, err)
		b, err := naive.Analyze(context.Background(), category, reviews)
		require.NoError(t, err)
		assert.Equal(t, a, b, category)
	}
	assert.Zero(t, naiveStore.batchCalls)
	assert.Positive(t, naiveStore.calls)
}

func TestAnalyze_Idempotent(t *testing.T) {
	reviews := mixedBatch()
	store := &fakeStore{history: historyFor(reviews)}
	p, _ := newTestPipeline(t, &countingClassifier{p: 0.55}, store, false)

	first, err := p.Analyze(context.Background(), "phone", reviews)
	require.NoError(t, err)
	second, err := p.Analyze(context.Background(), "phone", reviews)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestAnalyze_RepositoryErrorFailsPass(t *testing.T) {
	dbErr := errors.New("connection reset")

	for _, batch := range []bool{true, false} {
		t.Run(fmt.Sprintf("batch=%v", batch), func(t *testing.T) {
			reviews := mixedBatch()
			clf := &countingClassifier{p: 0.1}
			p, m := newTestPipeline(t, clf, &fakeStore{err: dbErr}, batch)

			res, err := p.Analyze(context.Background(), "phone", reviews)
			require.Error(t, err)
			assert.Nil(t, res)
			assert.ErrorIs(t, err, ErrActivityUnavailable)
			assert.ErrorIs(t, err, dbErr)
			assert.Zero(t, clf.calls.Load())
			assert.Zero(t, testutil.CollectAndCount(m.scored))
		})
	}
}

func TestAnalyze_UnknownCategory(t *testing.T) {
	reviews := []domain.Review{review("r1", "u1", 4, "battery spf rash camera", base)}
	p, m := newTestPipeline(t, &countingClassifier{p: 0.2}, &fakeStore{history: reviews}, true)

	res, err := p.Analyze(context.Background(), "  Kettles ", reviews)
	require.NoError(t, err)
	assert.False(t, res.CategoryKnown)
	assert.Equal(t, "kettles", res.Category)
	assert.False(t, res.Verdicts[0].Suspicious)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.unknownCategory))
}

func TestAnalyze_CancelledContext(t *testing.T) {
	reviews := mixedBatch()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	clf := &countingClassifier{p: 0.1}
	p, _ := newTestPipeline(t, clf, &fakeStore{history: historyFor(reviews)}, true)

	_, err := p.Analyze(ctx, "phone", reviews)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, clf.calls.Load())
}

func TestAnalyze_ConcurrentPasses(t *testing.T) {
	reviews := mixedBatch()
	p, _ := newTestPipeline(t, &countingClassifier{p: 0.4}, &fakeStore{history: historyFor(reviews)}, true)

	want, err := p.Analyze(context.Background(), "sunscreen", reviews)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := p.Analyze(context.Background(), "sunscreen", reviews)
			assert.NoError(t, err)
			assert.Equal(t, want, got)
		}()
	}
	wg.Wait()
}
