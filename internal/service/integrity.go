package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/trueinsight/reviewtrust/internal/domain"
	"github.com/trueinsight/reviewtrust/internal/repository"
	"github.com/trueinsight/reviewtrust/internal/scoring"
	apperrors "github.com/trueinsight/reviewtrust/pkg/errors"
)

// Scorer runs a scoring pass over a batch of reviews.
type Scorer interface {
	Analyze(ctx context.Context, category string, reviews []domain.Review) (*scoring.Result, error)
}

// EventPublisher announces completed product scoring passes.
type EventPublisher interface {
	PublishProductScored(ctx context.Context, result *domain.ProductIntegrity) error
}

// IntegrityService scores products on demand. Nothing is cached: every call
// reads the review store and runs a full pass.
type IntegrityService struct {
	products     repository.ProductRepository
	reviews      repository.ReviewRepository
	scorer       Scorer
	events       EventPublisher
	modelVersion string
	logger       *slog.Logger
	now          func() time.Time
}

// NewIntegrityService creates a new integrity service. events may be nil to
// disable event publishing.
func NewIntegrityService(
	products repository.ProductRepository,
	reviews repository.ReviewRepository,
	scorer Scorer,
	events EventPublisher,
	modelVersion string,
	logger *slog.Logger,
) *IntegrityService {
	return &IntegrityService{
		products:     products,
		reviews:      reviews,
		scorer:       scorer,
		events:       events,
		modelVersion: modelVersion,
		logger:       logger,
		now:          func() time.Time { return time.Now().UTC() },
	}
}

// ProductIntegrity scores all reviews of a product.
func (s *IntegrityService) ProductIntegrity(ctx context.Context, productID string) (*domain.ProductIntegrity, error) {
	product, err := s.products.GetByID(ctx, productID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NotFound("product", productID)
		}
		if errors.Is(err, apperrors.ErrInvalidInput) {
			return nil, apperrors.InvalidInput("invalid product id")
		}
		return nil, storeError(ctx, "load product", err)
	}

	reviews, err := s.reviews.ListByProductID(ctx, productID)
	if err != nil {
		if errors.Is(err, apperrors.ErrInvalidInput) {
			return nil, apperrors.InvalidInput("invalid product id")
		}
		return nil, storeError(ctx, "list reviews", err)
	}

	result, err := s.score(ctx, product.Category, reviews)
	if err != nil {
		return nil, err
	}
	result.Product = product

	if s.events != nil {
		if err := s.events.PublishProductScored(ctx, result); err != nil {
			s.logger.WarnContext(ctx, "failed to publish product scored event",
				slog.String("product_id", productID),
				slog.String("error", err.Error()),
			)
		}
	}

	return result, nil
}

// AnalyzeBatch scores a caller-supplied batch as if it belonged to a product
// of the given category. Behavioral counts still come from the review store.
func (s *IntegrityService) AnalyzeBatch(ctx context.Context, category string, reviews []domain.Review) (*domain.ProductIntegrity, error) {
	return s.score(ctx, category, reviews)
}

func (s *IntegrityService) score(ctx context.Context, category string, reviews []domain.Review) (*domain.ProductIntegrity, error) {
	res, err := s.scorer.Analyze(ctx, category, reviews)
	if err != nil {
		if errors.Is(err, apperrors.ErrInvalidInput) {
			return nil, apperrors.InvalidInput("review batch contains an invalid user id")
		}
		if errors.Is(err, scoring.ErrActivityUnavailable) {
			return nil, storeError(ctx, "score reviews", err)
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, apperrors.Internal(fmt.Errorf("score reviews: %w", err))
	}

	return &domain.ProductIntegrity{
		Category:      res.Category,
		CategoryKnown: res.CategoryKnown,
		Report:        res.Report,
		Verdicts:      res.Verdicts,
		ModelVersion:  s.modelVersion,
		ScoredAt:      s.now(),
	}, nil
}

// storeError classifies a review store failure. Cancellation is returned as is
// so callers can tell an abandoned request from an outage.
func storeError(ctx context.Context, op string, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	return apperrors.Unavailable("review data is temporarily unavailable", fmt.Errorf("%s: %w", op, err))
}
