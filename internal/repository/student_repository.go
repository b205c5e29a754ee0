package repository

import (
	"context"

	"github.com/segyhp/school-fee-engine/internal/domain"

	"github.com/jmoiron/sqlx"
)

type studentRepository struct {
	db *sqlx.DB
}

func NewStudentRepository(db *sqlx.DB) StudentRepository {
	return &studentRepository{db: db}
}

func (r *studentRepository) Exists(ctx context.Context, studentID string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM students WHERE id = $1)`

	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, studentID); err != nil {
		return false, err
	}

	return exists, nil
}

func (r *studentRepository) GetContact(ctx context.Context, studentID string) (*domain.StudentContact, error) {
	query := `
		SELECT id AS student_id, name AS student_name, guardian_name, guardian_email
		FROM students
		WHERE id = $1
	`

	var contact domain.StudentContact
	if err := r.db.GetContext(ctx, &contact, query, studentID); err != nil {
		return nil, err
	}

	return &contact, nil
}

func (r *studentRepository) ListWithFeeStructures(ctx context.Context) ([]string, error) {
	query := `
		SELECT DISTINCT s.id
		FROM students s
		JOIN fee_structures fs ON fs.student_id = s.id
		WHERE s.active
		ORDER BY s.id
	`

	var ids []string
	if err := r.db.SelectContext(ctx, &ids, query); err != nil {
		return nil, err
	}

	return ids, nil
}
