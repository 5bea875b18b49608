package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/trueinsight/reviewtrust/internal/domain"
	"github.com/trueinsight/reviewtrust/pkg/database"
	apperrors "github.com/trueinsight/reviewtrust/pkg/errors"
)

// ProductRepository implements product reads using PostgreSQL.
type ProductRepository struct {
	pool database.DBTX
}

// NewProductRepository creates a new PostgreSQL-backed product repository.
func NewProductRepository(pool database.DBTX) *ProductRepository {
	return &ProductRepository{pool: pool}
}

// GetByID retrieves a product by its ID.
func (r *ProductRepository) GetByID(ctx context.Context, id string) (_ *domain.Product, err error) {
	query := `
		SELECT id::text, name, COALESCE(category, '')
		FROM products
		WHERE id = $1`

	ctx, end := database.TraceQuery(ctx, "GetProductByID", query)
	defer func() {
		if errors.Is(err, apperrors.ErrNotFound) || errors.Is(err, apperrors.ErrInvalidInput) {
			end(nil)
			return
		}
		end(err)
	}()

	var p domain.Product
	if err := r.pool.QueryRow(ctx, query, id).Scan(&p.ID, &p.Name, &p.Category); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("scan product: %w", classify(err))
	}
	return &p, nil
}
