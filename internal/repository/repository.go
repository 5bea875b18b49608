package repository

import (
	"context"

	"github.com/trueinsight/reviewtrust/internal/domain"
)

// ReviewRepository reads reviews and reviewer activity. All methods are
// read-only and return fresh results on every call.
type ReviewRepository interface {
	// ListByProductID returns a product's reviews, newest first.
	ListByProductID(ctx context.Context, productID string) ([]domain.Review, error)

	// CountByUser returns how many reviews the user has ever written.
	CountByUser(ctx context.Context, userID string) (int, error)

	// CountByUserOnDate returns how many reviews the user wrote on the given
	// UTC date (YYYY-MM-DD).
	CountByUserOnDate(ctx context.Context, userID, date string) (int, error)

	// UserActivity returns lifetime and per-UTC-day review counts for the
	// given users in a single query.
	UserActivity(ctx context.Context, userIDs []string) (domain.UserActivity, error)
}

// ProductRepository reads catalog products.
type ProductRepository interface {
	// GetByID returns the product or apperrors.ErrNotFound.
	GetByID(ctx context.Context, id string) (*domain.Product, error)
}
