package repository

import (
	"context"
	"time"

	"github.com/segyhp/school-fee-engine/internal/domain"

	"github.com/shopspring/decimal"
)

// StudentRepository defines the interface for student lookups
type StudentRepository interface {
	// Exists reports whether the student is known
	Exists(ctx context.Context, studentID string) (bool, error)

	// GetContact retrieves the guardian contact used for reminders
	GetContact(ctx context.Context, studentID string) (*domain.StudentContact, error)

	// ListWithFeeStructures returns ids of students that have at least one fee assigned
	ListWithFeeStructures(ctx context.Context) ([]string, error)
}

// FeeStructureRepository defines the interface for fee assignment data
type FeeStructureRepository interface {
	// GetByStudentID retrieves every fee head x term assigned to a student, ordered by due date
	GetByStudentID(ctx context.Context, studentID string) ([]domain.FeeStructure, error)
}

// ConcessionRepository defines the interface for student concession data
type ConcessionRepository interface {
	// GetByStudentID retrieves all concessions of a student regardless of status
	GetByStudentID(ctx context.Context, studentID string) ([]domain.StudentConcession, error)
}

// PaymentRepository defines the interface for payment data operations
type PaymentRepository interface {
	// GetByStudentID retrieves all payments of a student
	GetByStudentID(ctx context.Context, studentID string) ([]domain.PaymentRecord, error)

	// CreateBatch stores payment records atomically
	CreateBatch(ctx context.Context, payments []*domain.PaymentRecord) error
}

// ReminderRepository defines the interface for generated reminder history
type ReminderRepository interface {
	// CreateBatch stores reminders atomically
	CreateBatch(ctx context.Context, reminders []domain.FeeReminder) error

	// GetByStudentID retrieves the latest reminders of a student
	GetByStudentID(ctx context.Context, studentID string, limit int) ([]domain.FeeReminder, error)
}

// CollectionRepository defines the interface for month level collection figures
type CollectionRepository interface {
	// GetExpectedTotal sums base amounts of fees due in [from, to)
	GetExpectedTotal(ctx context.Context, from, to time.Time) (decimal.Decimal, error)

	// GetCollectedTotal sums payments received in [from, to)
	GetCollectedTotal(ctx context.Context, from, to time.Time) (decimal.Decimal, error)
}
