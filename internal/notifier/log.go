package notifier

import (
	"context"

	"github.com/segyhp/school-fee-engine/internal/domain"

	"go.uber.org/zap"
)

// LogNotifier writes reminders to the log instead of sending them
type LogNotifier struct {
	logger *zap.Logger
}

func NewLogNotifier(logger *zap.Logger) *LogNotifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) SendReminders(_ context.Context, contact domain.StudentContact, reminders []domain.FeeReminder) error {
	for _, r := range reminders {
		n.logger.Info("Fee reminder",
			zap.String("student_id", contact.StudentID),
			zap.String("guardian_email", contact.GuardianEmail),
			zap.String("reminder_type", string(r.ReminderType)),
			zap.String("fee_head_id", r.FeeHeadID),
			zap.Int("overdue_days", r.OverdueDays),
			zap.String("message", r.Message),
		)
	}
	return nil
}
