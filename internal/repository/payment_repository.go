package repository

import (
	"context"

	"github.com/segyhp/school-fee-engine/internal/domain"

	"github.com/jmoiron/sqlx"
)

type paymentRepository struct {
	db *sqlx.DB
}

func NewPaymentRepository(db *sqlx.DB) PaymentRepository {
	return &paymentRepository{db: db}
}

func (r *paymentRepository) GetByStudentID(ctx context.Context, studentID string) ([]domain.PaymentRecord, error) {
	query := `
		SELECT id, student_id, fee_head_id, amount, payment_date, payment_mode, reference, created_at
		FROM fee_payments
		WHERE student_id = $1
		ORDER BY payment_date
	`

	var payments []domain.PaymentRecord
	if err := r.db.SelectContext(ctx, &payments, query, studentID); err != nil {
		return nil, err
	}

	return payments, nil
}

func (r *paymentRepository) CreateBatch(ctx context.Context, payments []*domain.PaymentRecord) error {
	query := `
		INSERT INTO fee_payments (id, student_id, fee_head_id, amount, payment_date, payment_mode, reference, created_at)
		VALUES (:id, :student_id, :fee_head_id, :amount, :payment_date, :payment_mode, :reference, :created_at)
	`

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, payment := range payments {
		if _, err = tx.NamedExecContext(ctx, query, payment); err != nil {
			return err
		}
	}

	return tx.Commit()
}
