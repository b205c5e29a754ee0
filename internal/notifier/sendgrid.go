package notifier

import (
	"context"
	"fmt"
	"net/http"

	"github.com/segyhp/school-fee-engine/internal/domain"
	customError "github.com/segyhp/school-fee-engine/pkg/errors"

	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"
	"go.uber.org/zap"
)

const (
	defaultHost = "https://api.sendgrid.com"
	endpoint    = "/v3/mail/send"
)

// SendgridNotifier e-mails reminders to guardians through SendGrid
type SendgridNotifier struct {
	key    string
	host   string
	from   *sgmail.Email
	logger *zap.Logger
}

func NewSendgridNotifier(key, fromName, fromAddress string, logger *zap.Logger) *SendgridNotifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SendgridNotifier{
		key:    key,
		host:   defaultHost,
		from:   sgmail.NewEmail(fromName, fromAddress),
		logger: logger,
	}
}

func (n *SendgridNotifier) SendReminders(ctx context.Context, contact domain.StudentContact, reminders []domain.FeeReminder) error {
	if len(reminders) == 0 {
		return nil
	}
	if contact.GuardianEmail == "" {
		return customError.WrapNotificationError(contact.StudentID, fmt.Errorf("no guardian e-mail on record"))
	}
	if err := ctx.Err(); err != nil {
		return customError.WrapNotificationError(contact.GuardianEmail, err)
	}

	req := sendgrid.GetRequest(n.key, endpoint, n.host)
	req.Method = http.MethodPost
	req.Body = sgmail.GetRequestBody(n.prepare(contact, reminders))

	res, err := sendgrid.API(req)
	if err != nil {
		return customError.WrapNotificationError(contact.GuardianEmail, err)
	}
	if res.StatusCode >= http.StatusBadRequest {
		return customError.WrapNotificationError(contact.GuardianEmail,
			fmt.Errorf("status: %d - body: %s", res.StatusCode, res.Body))
	}

	n.logger.Debug("Reminder e-mail sent",
		zap.String("student_id", contact.StudentID),
		zap.Int("reminders", len(reminders)),
		zap.Int("status", res.StatusCode),
	)
	return nil
}

func (n *SendgridNotifier) prepare(contact domain.StudentContact, reminders []domain.FeeReminder) *sgmail.SGMailV3 {
	p := sgmail.NewPersonalization()
	p.Subject = subject(contact)
	p.AddTos(sgmail.NewEmail(contact.GuardianName, contact.GuardianEmail))

	m := sgmail.NewV3Mail()
	m.SetFrom(n.from)
	m.AddPersonalizations(p)
	m.AddContent(sgmail.NewContent("text/plain", body(contact, reminders)))

	return m
}
