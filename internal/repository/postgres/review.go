package postgres

import (
	"context"
	"fmt"

	"github.com/trueinsight/reviewtrust/internal/domain"
	"github.com/trueinsight/reviewtrust/pkg/database"
)

// Reviews are bucketed into days by their UTC calendar date.
const utcDay = `(created_at AT TIME ZONE 'UTC')::date`

// ReviewRepository implements review reads using PostgreSQL.
type ReviewRepository struct {
	pool database.DBTX
}

// NewReviewRepository creates a new PostgreSQL-backed review repository.
func NewReviewRepository(pool database.DBTX) *ReviewRepository {
	return &ReviewRepository{pool: pool}
}

// ListByProductID returns all reviews for a product, newest first.
func (r *ReviewRepository) ListByProductID(ctx context.Context, productID string) (reviews []domain.Review, err error) {
	query := `
		SELECT id::text, product_id::text, user_id::text, rating, review_text, created_at
		FROM reviews
		WHERE product_id = $1
		ORDER BY created_at DESC, id DESC`

	ctx, end := database.TraceQuery(ctx, "ListReviewsByProduct", query)
	defer func() { end(err) }()

	rows, err := r.pool.Query(ctx, query, productID)
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", classify(err))
	}
	defer rows.Close()

	for rows.Next() {
		var rv domain.Review
		if err := rows.Scan(
			&rv.ID,
			&rv.ProductID,
			&rv.UserID,
			&rv.Rating,
			&rv.Text,
			&rv.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan review row: %w", err)
		}
		reviews = append(reviews, rv)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate review rows: %w", classify(err))
	}

	if reviews == nil {
		reviews = []domain.Review{}
	}
	return reviews, nil
}

// CountByUser returns the number of reviews the user has ever written.
func (r *ReviewRepository) CountByUser(ctx context.Context, userID string) (n int, err error) {
	query := `SELECT COUNT(*) FROM reviews WHERE user_id = $1`

	ctx, end := database.TraceQuery(ctx, "CountReviewsByUser", query)
	defer func() { end(err) }()

	if err := r.pool.QueryRow(ctx, query, userID).Scan(&n); err != nil {
		return 0, fmt.Errorf("count reviews by user: %w", classify(err))
	}
	return n, nil
}

// CountByUserOnDate returns the number of reviews the user wrote on date.
func (r *ReviewRepository) CountByUserOnDate(ctx context.Context, userID, date string) (n int, err error) {
	query := `SELECT COUNT(*) FROM reviews WHERE user_id = $1 AND ` + utcDay + ` = $2::date`

	ctx, end := database.TraceQuery(ctx, "CountReviewsByUserOnDate", query)
	defer func() { end(err) }()

	if err := r.pool.QueryRow(ctx, query, userID, date).Scan(&n); err != nil {
		return 0, fmt.Errorf("count reviews by user on date: %w", classify(err))
	}
	return n, nil
}

// UserActivity returns lifetime and daily review counts for userIDs with one
// grouped query. Lifetime totals are the sum of the daily counts.
func (r *ReviewRepository) UserActivity(ctx context.Context, userIDs []string) (act domain.UserActivity, err error) {
	act = domain.UserActivity{
		Total: make(map[string]int, len(userIDs)),
		Daily: make(map[domain.UserDay]int),
	}
	if len(userIDs) == 0 {
		return act, nil
	}

	query := `
		SELECT user_id::text, to_char(` + utcDay + `, 'YYYY-MM-DD') AS day, COUNT(*)
		FROM reviews
		WHERE user_id = ANY($1)
		GROUP BY 1, 2`

	ctx, end := database.TraceQuery(ctx, "UserActivity", query)
	defer func() { end(err) }()

	rows, err := r.pool.Query(ctx, query, userIDs)
	if err != nil {
		return domain.UserActivity{}, fmt.Errorf("query user activity: %w", classify(err))
	}
	defer rows.Close()

	for rows.Next() {
		var (
			day   domain.UserDay
			count int
		)
		if err := rows.Scan(&day.UserID, &day.Date, &count); err != nil {
			return domain.UserActivity{}, fmt.Errorf("scan user activity row: %w", err)
		}
		act.Daily[day] += count
		act.Total[day.UserID] += count
	}

	if err := rows.Err(); err != nil {
		return domain.UserActivity{}, fmt.Errorf("iterate user activity rows: %w", classify(err))
	}
	return act, nil
}
