// Package scoring implements the review trust pipeline: relevance screening,
// feature extraction, burst and duplicate detection, classification, the
// threshold decision and aggregation.
package scoring

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/trueinsight/reviewtrust/internal/domain"
	"github.com/trueinsight/reviewtrust/internal/policy"
	"github.com/trueinsight/reviewtrust/pkg/logger"
)

const tracerName = "github.com/trueinsight/reviewtrust/internal/scoring"

// Classifier returns the fraud probability of a feature vector.
type Classifier interface {
	FraudProbability(fv domain.FeatureVector) float64
}

// Result is the outcome of one scoring pass.
type Result struct {
	Category      string
	CategoryKnown bool
	Verdicts      []domain.Verdict
	Report        domain.IntegrityReport
}

// Pipeline scores batches of reviews. It holds no per-pass state and is safe
// for concurrent use.
type Pipeline struct {
	classifier Classifier
	policy     *policy.Policy
	extractor  *Extractor
	metrics    *Metrics
	logger     *slog.Logger
}

// NewPipeline creates a pipeline.
func NewPipeline(clf Classifier, pol *policy.Policy, extractor *Extractor, metrics *Metrics, logger *slog.Logger) *Pipeline {
	return &Pipeline{
		classifier: clf,
		policy:     pol,
		extractor:  extractor,
		metrics:    metrics,
		logger:     logger,
	}
}

// Analyze scores reviews for a product of the given category. Verdicts keep
// the input order. A review store failure aborts the pass with
// ErrActivityUnavailable.
func (p *Pipeline) Analyze(ctx context.Context, category string, reviews []domain.Review) (*Result, error) {
	start := time.Now()
	log := logger.FromContextOr(ctx, p.logger)

	ctx, span := otel.Tracer(tracerName).Start(ctx, "scoring.Analyze")
	defer span.End()

	rules := p.policy.Lookup(category)
	span.SetAttributes(
		attribute.String("trust.category", rules.Category),
		attribute.Bool("trust.category_known", rules.Known),
		attribute.Int("trust.reviews", len(reviews)),
	)
	if !rules.Known {
		p.metrics.unknownCategory.Inc()
		log.DebugContext(ctx, "unknown product category, using defaults",
			slog.String("category", rules.Category),
			slog.Float64("threshold", rules.Threshold),
		)
	}

	verdicts := make([]domain.Verdict, len(reviews))
	outcomes := make([]verdictOutcome, len(reviews))

	// Relevance screening. Rejected reviews are final here.
	var (
		passing []domain.Review
		slots   []int
	)
	for i, r := range reviews {
		if rules.Relevant(r.Text) {
			passing = append(passing, r)
			slots = append(slots, i)
			continue
		}
		verdicts[i] = newVerdict(r)
		verdicts[i].Suspicious = true
		verdicts[i].Reasons = []string{domain.ReasonIrrelevant}
		outcomes[i] = verdictOutcome{suspicious: true, rejected: true}
	}

	features, err := p.extractor.Extract(ctx, passing, DetectDuplicates(passing), DetectBursts(passing))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "feature extraction failed")
		log.ErrorContext(ctx, "scoring pass aborted",
			slog.String("category", rules.Category),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("extract features: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	for j, fv := range features {
		i := slots[j]
		prob := p.classifier.FraudProbability(fv)
		suspicious, reasons := Decide(rules, prob, fv)

		verdicts[i] = newVerdict(passing[j])
		verdicts[i].Suspicious = suspicious
		verdicts[i].Reasons = reasons
		verdicts[i].FraudProbability = prob
		verdicts[i].Features = &features[j]
		outcomes[i] = verdictOutcome{suspicious: suspicious}
	}

	report := Aggregate(verdicts)
	p.metrics.observe(outcomes)
	p.metrics.duration.Observe(time.Since(start).Seconds())

	span.SetAttributes(
		attribute.Int("trust.suspicious", report.SuspiciousCount),
		attribute.Int("trust.relevance_rejected", len(reviews)-len(passing)),
	)
	log.InfoContext(ctx, "scoring pass completed",
		slog.String("category", rules.Category),
		slog.Int("total", report.Total),
		slog.Int("suspicious", report.SuspiciousCount),
		slog.Int("relevance_rejected", len(reviews)-len(passing)),
		slog.Bool("batched_activity", p.extractor.Batched()),
		slog.Duration("duration", time.Since(start)),
	)

	return &Result{
		Category:      rules.Category,
		CategoryKnown: rules.Known,
		Verdicts:      verdicts,
		Report:        report,
	}, nil
}

func newVerdict(r domain.Review) domain.Verdict {
	return domain.Verdict{
		ReviewID:  r.ID,
		UserID:    r.UserID,
		Rating:    r.Rating,
		Text:      r.Text,
		CreatedAt: r.CreatedAt,
	}
}
