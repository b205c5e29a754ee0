package service

import (
	"context"
	"time"

	"github.com/segyhp/school-fee-engine/internal/domain"
	"github.com/segyhp/school-fee-engine/internal/feecalc"
	customError "github.com/segyhp/school-fee-engine/pkg/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const defaultReminderHistoryLimit = 50

// SweepResult summarises one reminder run over all students
type SweepResult struct {
	AsOfDate  time.Time `json:"as_of_date"`
	Students  int       `json:"students"`
	Reminders int       `json:"reminders"`
	Delivered int       `json:"delivered"`
	Failed    int       `json:"failed"`
}

// GetReminders derives the reminders a student is due as of the given date
func (s *FeeService) GetReminders(ctx context.Context, studentID string, asOf *time.Time) ([]domain.FeeReminder, error) {
	fees, err := s.GetStudentFees(ctx, studentID, FeeQuery{AsOfDate: asOf})
	if err != nil {
		return nil, err
	}

	return s.remindersFor(studentID, fees.Fees), nil
}

// GetReminderHistory lists reminders already generated for a student, newest first
func (s *FeeService) GetReminderHistory(ctx context.Context, studentID string, limit int) ([]domain.FeeReminder, error) {
	if limit <= 0 {
		limit = defaultReminderHistoryLimit
	}

	reminders, err := s.repos.Reminders.GetByStudentID(ctx, studentID, limit)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}
	if reminders == nil {
		reminders = []domain.FeeReminder{}
	}

	return reminders, nil
}

// RunReminderSweep generates, stores and delivers reminders for every student with assigned fees.
// A failure for one student is logged and does not stop the sweep.
func (s *FeeService) RunReminderSweep(ctx context.Context, asOf time.Time) (*SweepResult, error) {
	studentIDs, err := s.repos.Students.ListWithFeeStructures(ctx)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	result := &SweepResult{AsOfDate: asOf, Students: len(studentIDs)}
	opts := s.options(FeeQuery{AsOfDate: &asOf})

	for _, studentID := range studentIDs {
		if err = ctx.Err(); err != nil {
			return result, err
		}

		log := s.logger.With(zap.String("student_id", studentID))

		fees, err := s.calculate(ctx, studentID, opts)
		if err != nil {
			log.Error("Calculating fees for reminders failed", zap.Error(err))
			result.Failed++
			continue
		}

		reminders := s.remindersFor(studentID, fees)
		if len(reminders) == 0 {
			continue
		}

		if err = s.repos.Reminders.CreateBatch(ctx, reminders); err != nil {
			log.Error("Storing reminders failed", zap.Error(customError.WrapDatabaseError(err)))
			result.Failed++
			continue
		}
		result.Reminders += len(reminders)

		contact, err := s.repos.Students.GetContact(ctx, studentID)
		if err != nil {
			log.Error("Loading guardian contact failed", zap.Error(customError.WrapDatabaseError(err)))
			result.Failed++
			continue
		}

		if err = s.notifier.SendReminders(ctx, *contact, reminders); err != nil {
			log.Error("Delivering reminders failed", zap.Error(err))
			result.Failed++
			continue
		}
		result.Delivered++
	}

	s.logger.Info("Reminder sweep finished",
		zap.Time("as_of", asOf),
		zap.Int("students", result.Students),
		zap.Int("reminders", result.Reminders),
		zap.Int("delivered", result.Delivered),
		zap.Int("failed", result.Failed),
	)

	return result, nil
}

func (s *FeeService) remindersFor(studentID string, fees []domain.CalculatedFee) []domain.FeeReminder {
	cfg := s.config.ReminderConfig()
	reminders := feecalc.GenerateFeeReminders(fees, &cfg)

	now := s.now()
	for i := range reminders {
		reminders[i].ID = uuid.New()
		reminders[i].StudentID = studentID
		reminders[i].CreatedAt = now
	}

	return reminders
}
