package feecalc

import (
	"fmt"

	"github.com/segyhp/school-fee-engine/internal/domain"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

const reminderDateLayout = "02 Jan 2006"

var rupeeLocale = language.MustParse("en-IN")

type ReminderConfig struct {
	FirstReminderDays  int
	SecondReminderDays int
	FinalReminderDays  int
}

func DefaultReminderConfig() ReminderConfig {
	return ReminderConfig{
		FirstReminderDays:  7,
		SecondReminderDays: 15,
		FinalReminderDays:  30,
	}
}

// GenerateFeeReminders derives at most one reminder per unpaid fee, picking the highest tier
// whose threshold the fee has reached. Fees below every threshold only get a plain overdue
// notice when their status is Overdue.
func GenerateFeeReminders(fees []domain.CalculatedFee, config *ReminderConfig) []domain.FeeReminder {
	cfg := DefaultReminderConfig()
	if config != nil {
		cfg = *config
	}

	reminders := make([]domain.FeeReminder, 0)
	for _, fee := range fees {
		if fee.Status == domain.FeeStatusPaid {
			continue
		}

		var reminderType domain.ReminderType
		switch {
		case fee.OverdueDays >= cfg.FinalReminderDays:
			reminderType = domain.ReminderFinal
		case fee.OverdueDays >= cfg.SecondReminderDays:
			reminderType = domain.ReminderSecond
		case fee.OverdueDays >= cfg.FirstReminderDays:
			reminderType = domain.ReminderFirst
		case fee.Status == domain.FeeStatusOverdue:
			reminderType = domain.ReminderOverdue
		default:
			continue
		}

		reminders = append(reminders, domain.FeeReminder{
			FeeHeadID:         fee.FeeHeadID,
			FeeHeadName:       fee.FeeHeadName,
			FeeTermName:       fee.FeeTermName,
			ReminderType:      reminderType,
			OverdueDays:       fee.OverdueDays,
			OutstandingAmount: fee.OutstandingAmount,
			DueDate:           fee.DueDate,
			Message:           reminderMessage(reminderType, fee),
		})
	}

	return reminders
}

func reminderMessage(reminderType domain.ReminderType, fee domain.CalculatedFee) string {
	amount := FormatRupees(fee.OutstandingAmount)
	feeName := fee.FeeHeadName
	if fee.FeeTermName != "" {
		feeName = fmt.Sprintf("%s (%s)", fee.FeeHeadName, fee.FeeTermName)
	}
	dueDate := fee.DueDate.Format(reminderDateLayout)

	switch reminderType {
	case domain.ReminderFinal:
		return fmt.Sprintf("FINAL NOTICE: %s towards %s is %d days overdue. Please clear the dues immediately to avoid further action.",
			amount, feeName, fee.OverdueDays)
	case domain.ReminderSecond:
		return fmt.Sprintf("Second reminder: %s towards %s, due on %s, is still unpaid after %d days. Kindly pay at the earliest.",
			amount, feeName, dueDate, fee.OverdueDays)
	case domain.ReminderFirst:
		return fmt.Sprintf("Gentle reminder: %s towards %s was due on %s and is %d days overdue.",
			amount, feeName, dueDate, fee.OverdueDays)
	default:
		return fmt.Sprintf("Payment of %s towards %s was due on %s and is now overdue.",
			amount, feeName, dueDate)
	}
}

// FormatRupees renders an amount with the rupee sign and Indian digit grouping
func FormatRupees(amount decimal.Decimal) string {
	value, _ := amount.Round(2).Float64()
	p := message.NewPrinter(rupeeLocale)
	return "₹" + p.Sprint(number.Decimal(value, number.Scale(2)))
}
