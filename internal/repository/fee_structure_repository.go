package repository

import (
	"context"

	"github.com/segyhp/school-fee-engine/internal/domain"

	"github.com/jmoiron/sqlx"
)

type feeStructureRepository struct {
	db *sqlx.DB
}

func NewFeeStructureRepository(db *sqlx.DB) FeeStructureRepository {
	return &feeStructureRepository{db: db}
}

func (r *feeStructureRepository) GetByStudentID(ctx context.Context, studentID string) ([]domain.FeeStructure, error) {
	query := `
		SELECT fs.id, fs.student_id,
			fh.id AS fee_head_id, fh.name AS fee_head_name,
			ft.id AS fee_term_id, ft.name AS fee_term_name,
			fs.base_amount, fs.due_date,
			fs.late_fee_days, fs.late_fee_amount, fs.late_fee_percentage,
			fs.discount_amount, fs.discount_percentage,
			fs.installment_allowed, fs.installment_count, fs.installment_min_amount
		FROM fee_structures fs
		JOIN fee_heads fh ON fh.id = fs.fee_head_id
		JOIN fee_terms ft ON ft.id = fs.fee_term_id
		WHERE fs.student_id = $1
		ORDER BY fs.due_date, fh.name
	`

	var structures []domain.FeeStructure
	if err := r.db.SelectContext(ctx, &structures, query, studentID); err != nil {
		return nil, err
	}

	return structures, nil
}
