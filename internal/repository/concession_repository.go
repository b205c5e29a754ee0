package repository

import (
	"context"

	"github.com/segyhp/school-fee-engine/internal/domain"

	"github.com/jmoiron/sqlx"
)

type concessionRepository struct {
	db *sqlx.DB
}

func NewConcessionRepository(db *sqlx.DB) ConcessionRepository {
	return &concessionRepository{db: db}
}

func (r *concessionRepository) GetByStudentID(ctx context.Context, studentID string) ([]domain.StudentConcession, error) {
	query := `
		SELECT sc.id, sc.student_id,
			ct.id AS concession_type_id, ct.name AS concession_type_name,
			ct.type, ct.value, sc.custom_value, sc.status,
			sc.valid_from, sc.valid_until,
			ct.applied_fee_heads, ct.applied_fee_terms, sc.reason
		FROM student_concessions sc
		JOIN concession_types ct ON ct.id = sc.concession_type_id
		WHERE sc.student_id = $1
		ORDER BY sc.valid_from
	`

	var concessions []domain.StudentConcession
	if err := r.db.SelectContext(ctx, &concessions, query, studentID); err != nil {
		return nil, err
	}

	return concessions, nil
}
