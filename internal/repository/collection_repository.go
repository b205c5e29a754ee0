package repository

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
)

type collectionRepository struct {
	db *sqlx.DB
}

func NewCollectionRepository(db *sqlx.DB) CollectionRepository {
	return &collectionRepository{db: db}
}

func (r *collectionRepository) GetExpectedTotal(ctx context.Context, from, to time.Time) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(base_amount), 0)
		FROM fee_structures
		WHERE due_date >= $1::date AND due_date < $2::date
	`

	return r.sum(ctx, query, from, to)
}

func (r *collectionRepository) GetCollectedTotal(ctx context.Context, from, to time.Time) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(amount), 0)
		FROM fee_payments
		WHERE payment_date >= $1 AND payment_date < $2
	`

	return r.sum(ctx, query, from, to)
}

func (r *collectionRepository) sum(ctx context.Context, query string, args ...interface{}) (decimal.Decimal, error) {
	var total decimal.Decimal
	if err := r.db.GetContext(ctx, &total, query, args...); err != nil {
		return decimal.Zero, err
	}
	return total, nil
}
