package repository

import (
	"context"
	"errors"

	"github.com/trueinsight/reviewtrust/internal/domain"
	"github.com/trueinsight/reviewtrust/pkg/breaker"
	apperrors "github.com/trueinsight/reviewtrust/pkg/errors"
)

// IsExpected reports errors that describe data, not store health; they pass
// through the breaker without counting as failures.
func IsExpected(err error) bool {
	return errors.Is(err, apperrors.ErrNotFound) || errors.Is(err, apperrors.ErrInvalidInput)
}

// BreakerReviews guards a ReviewRepository with a circuit breaker.
type BreakerReviews struct {
	next ReviewRepository
	cb   *breaker.Breaker
}

// NewBreakerReviews wraps next.
func NewBreakerReviews(next ReviewRepository, cb *breaker.Breaker) *BreakerReviews {
	return &BreakerReviews{next: next, cb: cb}
}

func (r *BreakerReviews) ListByProductID(ctx context.Context, productID string) ([]domain.Review, error) {
	return breaker.Do(r.cb, func() ([]domain.Review, error) {
		return r.next.ListByProductID(ctx, productID)
	})
}

func (r *BreakerReviews) CountByUser(ctx context.Context, userID string) (int, error) {
	return breaker.Do(r.cb, func() (int, error) {
		return r.next.CountByUser(ctx, userID)
	})
}

func (r *BreakerReviews) CountByUserOnDate(ctx context.Context, userID, date string) (int, error) {
	return breaker.Do(r.cb, func() (int, error) {
		return r.next.CountByUserOnDate(ctx, userID, date)
	})
}

func (r *BreakerReviews) UserActivity(ctx context.Context, userIDs []string) (domain.UserActivity, error) {
	return breaker.Do(r.cb, func() (domain.UserActivity, error) {
		return r.next.UserActivity(ctx, userIDs)
	})
}

// BreakerProducts guards a ProductRepository with a circuit breaker.
type BreakerProducts struct {
	next ProductRepository
	cb   *breaker.Breaker
}

// NewBreakerProducts wraps next.
func NewBreakerProducts(next ProductRepository, cb *breaker.Breaker) *BreakerProducts {
	return &BreakerProducts{next: next, cb: cb}
}

func (r *BreakerProducts) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	return breaker.Do(r.cb, func() (*domain.Product, error) {
		return r.next.GetByID(ctx, id)
	})
}
