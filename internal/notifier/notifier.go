package notifier

import (
	"context"
	"fmt"
	"strings"

	"github.com/segyhp/school-fee-engine/internal/config"
	"github.com/segyhp/school-fee-engine/internal/domain"

	"go.uber.org/zap"
)

// Notifier delivers a student's reminders to the guardian
type Notifier interface {
	SendReminders(ctx context.Context, contact domain.StudentContact, reminders []domain.FeeReminder) error
}

// New picks the delivery channel configured for the deployment
func New(cfg config.NotificationConfig, logger *zap.Logger) Notifier {
	if cfg.Provider == "sendgrid" && cfg.SendgridAPIKey != "" {
		return NewSendgridNotifier(cfg.SendgridAPIKey, cfg.FromName, cfg.FromEmail, logger)
	}
	return NewLogNotifier(logger)
}

func subject(contact domain.StudentContact) string {
	return fmt.Sprintf("Fee reminder for %s", contact.StudentName)
}

func body(contact domain.StudentContact, reminders []domain.FeeReminder) string {
	var b strings.Builder

	greeting := contact.GuardianName
	if greeting == "" {
		greeting = "Parent/Guardian"
	}
	fmt.Fprintf(&b, "Dear %s,\n\n", greeting)
	fmt.Fprintf(&b, "The following fees for %s need your attention:\n\n", contact.StudentName)
	for _, r := range reminders {
		fmt.Fprintf(&b, "- %s\n", r.Message)
	}
	b.WriteString("\nPlease ignore this message if the payment has already been made.\n")

	return b.String()
}
