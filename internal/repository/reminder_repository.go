package repository

import (
	"context"

	"github.com/segyhp/school-fee-engine/internal/domain"

	"github.com/jmoiron/sqlx"
)

type reminderRepository struct {
	db *sqlx.DB
}

func NewReminderRepository(db *sqlx.DB) ReminderRepository {
	return &reminderRepository{db: db}
}

func (r *reminderRepository) CreateBatch(ctx context.Context, reminders []domain.FeeReminder) error {
	query := `
		INSERT INTO fee_reminders (id, student_id, fee_head_id, fee_head_name, fee_term_name,
			reminder_type, overdue_days, outstanding_amount, due_date, message, created_at)
		VALUES (:id, :student_id, :fee_head_id, :fee_head_name, :fee_term_name,
			:reminder_type, :overdue_days, :outstanding_amount, :due_date, :message, :created_at)
	`

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, reminder := range reminders {
		if _, err = tx.NamedExecContext(ctx, query, reminder); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (r *reminderRepository) GetByStudentID(ctx context.Context, studentID string, limit int) ([]domain.FeeReminder, error) {
	query := `
		SELECT id, student_id, fee_head_id, fee_head_name, fee_term_name,
			reminder_type, overdue_days, outstanding_amount, due_date, message, created_at
		FROM fee_reminders
		WHERE student_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`

	var reminders []domain.FeeReminder
	if err := r.db.SelectContext(ctx, &reminders, query, studentID, limit); err != nil {
		return nil, err
	}

	return reminders, nil
}
