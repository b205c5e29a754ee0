package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type ReminderType string

const (
	ReminderFirst   ReminderType = "first"
	ReminderSecond  ReminderType = "second"
	ReminderFinal   ReminderType = "final"
	ReminderOverdue ReminderType = "overdue"
)

// FeeReminder is a notice derived from an unpaid fee
type FeeReminder struct {
	ID                uuid.UUID       `json:"id" db:"id"`
	StudentID         string          `json:"student_id" db:"student_id"`
	FeeHeadID         string          `json:"fee_head_id" db:"fee_head_id"`
	FeeHeadName       string          `json:"fee_head_name" db:"fee_head_name"`
	FeeTermName       string          `json:"fee_term_name" db:"fee_term_name"`
	ReminderType      ReminderType    `json:"reminder_type" db:"reminder_type"`
	OverdueDays       int             `json:"overdue_days" db:"overdue_days"`
	OutstandingAmount decimal.Decimal `json:"outstanding_amount" db:"outstanding_amount"`
	DueDate           time.Time       `json:"due_date" db:"due_date"`
	Message           string          `json:"message" db:"message"`
	CreatedAt         time.Time       `json:"created_at" db:"created_at"`
}

// StudentContact is who receives reminders for a student
type StudentContact struct {
	StudentID     string `json:"student_id" db:"student_id"`
	StudentName   string `json:"student_name" db:"student_name"`
	GuardianName  string `json:"guardian_name" db:"guardian_name"`
	GuardianEmail string `json:"guardian_email" db:"guardian_email"`
}

// CollectionProjection extrapolates a month's collection from partial actuals
type CollectionProjection struct {
	Month          string          `json:"month,omitempty"`
	TotalExpected  decimal.Decimal `json:"total_expected"`
	CollectedSoFar decimal.Decimal `json:"collected_so_far"`
	DaysInMonth    int             `json:"days_in_month"`
	DaysPassed     int             `json:"days_passed"`
	TargetDaily    decimal.Decimal `json:"target_daily"`
	CollectionRate decimal.Decimal `json:"collection_rate"`
	ProjectedTotal decimal.Decimal `json:"projected_total"`
	OnTrack        bool            `json:"on_track"`
}
