package event

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/trueinsight/reviewtrust/internal/domain"
	pkgkafka "github.com/trueinsight/reviewtrust/pkg/kafka"
	"github.com/trueinsight/reviewtrust/pkg/logger"
)

// TopicProductScored carries a summary of every completed product scoring
// pass.
const TopicProductScored = "trust.product.scored"

// AggregateTypeProduct is the aggregate type of scoring events.
const AggregateTypeProduct = "product"

// SourceReviewTrust identifies this service as the event source.
const SourceReviewTrust = "review-trust"

// ProductScoredData is the payload of a trust.product.scored event.
type ProductScoredData struct {
	ProductID             string    `json:"product_id"`
	Category              string    `json:"category"`
	CategoryKnown         bool      `json:"category_known"`
	Total                 int       `json:"total"`
	GenuineCount          int       `json:"genuine_count"`
	SuspiciousCount       int       `json:"suspicious_count"`
	RawAverageRating      float64   `json:"raw_average_rating"`
	FilteredAverageRating float64   `json:"filtered_average_rating"`
	ModelVersion          string    `json:"model_version"`
	ScoredAt              time.Time `json:"scored_at"`
}

// Publisher sends an event envelope to a topic.
type Publisher interface {
	Publish(ctx context.Context, topic string, event *pkgkafka.Event) error
}

// Producer publishes scoring events.
type Producer struct {
	kafka  Publisher
	logger *slog.Logger
}

// NewProducer creates a new event producer.
func NewProducer(kafka Publisher, logger *slog.Logger) *Producer {
	return &Producer{
		kafka:  kafka,
		logger: logger,
	}
}

// PublishProductScored publishes a trust.product.scored event for result,
// which must carry its product.
func (p *Producer) PublishProductScored(ctx context.Context, result *domain.ProductIntegrity) error {
	if result.Product == nil {
		return fmt.Errorf("publish %s: result has no product", TopicProductScored)
	}

	data := ProductScoredData{
		ProductID:             result.Product.ID,
		Category:              result.Category,
		CategoryKnown:         result.CategoryKnown,
		Total:                 result.Report.Total,
		GenuineCount:          result.Report.GenuineCount,
		SuspiciousCount:       result.Report.SuspiciousCount,
		RawAverageRating:      result.Report.RawAverageRating,
		FilteredAverageRating: result.Report.FilteredAverageRating,
		ModelVersion:          result.ModelVersion,
		ScoredAt:              result.ScoredAt,
	}

	evt, err := pkgkafka.NewEvent(TopicProductScored, result.Product.ID, AggregateTypeProduct, SourceReviewTrust, data)
	if err != nil {
		return fmt.Errorf("create %s event: %w", TopicProductScored, err)
	}
	if id := logger.CorrelationIDFromContext(ctx); id != "" {
		evt.WithCorrelationID(id)
	}
	evt.WithMetadata("model_version", result.ModelVersion)

	if err := p.kafka.Publish(ctx, TopicProductScored, evt); err != nil {
		return fmt.Errorf("publish %s: %w", TopicProductScored, err)
	}

	p.logger.DebugContext(ctx, "product scored event published",
		slog.String("product_id", result.Product.ID),
		slog.String("event_id", evt.EventID),
	)
	return nil
}
