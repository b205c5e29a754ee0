package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// FeeStatus is the collection state of a single fee line
type FeeStatus string

const (
	FeeStatusPaid          FeeStatus = "Paid"
	FeeStatusPartiallyPaid FeeStatus = "Partially Paid"
	FeeStatusPending       FeeStatus = "Pending"
	FeeStatusOverdue       FeeStatus = "Overdue"
)

// FeeStructure is one fee head x fee term assignment for a student.
// The engine treats it as read-only input.
type FeeStructure struct {
	ID          uuid.UUID `json:"id" db:"id"`
	StudentID   string    `json:"student_id" db:"student_id"`
	FeeHeadID   string    `json:"fee_head_id" db:"fee_head_id"`
	FeeHeadName string    `json:"fee_head_name" db:"fee_head_name"`
	FeeTermID   string    `json:"fee_term_id" db:"fee_term_id"`
	FeeTermName string    `json:"fee_term_name" db:"fee_term_name"`

	BaseAmount decimal.Decimal `json:"base_amount" db:"base_amount"`
	DueDate    time.Time       `json:"due_date" db:"due_date"`

	// Late fee config
	LateFeeDays       *int                `json:"late_fee_days,omitempty" db:"late_fee_days"`
	LateFeeAmount     decimal.NullDecimal `json:"late_fee_amount" db:"late_fee_amount"`
	LateFeePercentage decimal.NullDecimal `json:"late_fee_percentage" db:"late_fee_percentage"`

	// Discount config, amount wins when both are set
	DiscountAmount     decimal.NullDecimal `json:"discount_amount" db:"discount_amount"`
	DiscountPercentage decimal.NullDecimal `json:"discount_percentage" db:"discount_percentage"`

	// Installment config
	InstallmentAllowed   bool                `json:"installment_allowed" db:"installment_allowed"`
	InstallmentCount     *int                `json:"installment_count,omitempty" db:"installment_count"`
	InstallmentMinAmount decimal.NullDecimal `json:"installment_min_amount" db:"installment_min_amount"`
}

// CalculatedFee is the computed financial state of one FeeStructure as of a date
type CalculatedFee struct {
	FeeStructureID uuid.UUID `json:"fee_structure_id"`
	FeeHeadID      string    `json:"fee_head_id"`
	FeeHeadName    string    `json:"fee_head_name"`
	FeeTermID      string    `json:"fee_term_id"`
	FeeTermName    string    `json:"fee_term_name"`
	DueDate        time.Time `json:"due_date"`

	BaseAmount        decimal.Decimal `json:"base_amount"`
	DiscountAmount    decimal.Decimal `json:"discount_amount"`
	ConcessionAmount  decimal.Decimal `json:"concession_amount"`
	DiscountedAmount  decimal.Decimal `json:"discounted_amount"`
	LateFeeAmount     decimal.Decimal `json:"late_fee_amount"`
	FinalAmount       decimal.Decimal `json:"final_amount"`
	PaidAmount        decimal.Decimal `json:"paid_amount"`
	OutstandingAmount decimal.Decimal `json:"outstanding_amount"`
	OverdueDays       int             `json:"overdue_days"`
	Status            FeeStatus       `json:"status"`

	AppliedConcessions []StudentConcession `json:"applied_concessions"`
	InstallmentDetails *InstallmentDetails `json:"installment_details,omitempty"`
}

// Outstanding converts the fee into allocator input
func (f CalculatedFee) Outstanding() OutstandingFee {
	return OutstandingFee{
		FeeHeadID:         f.FeeHeadID,
		FeeTermID:         f.FeeTermID,
		OutstandingAmount: f.OutstandingAmount,
		DueDate:           f.DueDate,
	}
}

// StudentFeeSummary aggregates every calculated fee of a student
type StudentFeeSummary struct {
	StudentID        string          `json:"student_id"`
	AsOfDate         time.Time       `json:"as_of_date"`
	TotalBase        decimal.Decimal `json:"total_base"`
	TotalDiscount    decimal.Decimal `json:"total_discount"`
	TotalConcession  decimal.Decimal `json:"total_concession"`
	TotalLateFee     decimal.Decimal `json:"total_late_fee"`
	TotalFinal       decimal.Decimal `json:"total_final"`
	TotalPaid        decimal.Decimal `json:"total_paid"`
	TotalOutstanding decimal.Decimal `json:"total_outstanding"`
	FeeCount         int             `json:"fee_count"`
	OverdueCount     int             `json:"overdue_count"`
	PaidCount        int             `json:"paid_count"`
}

type StudentFeesResponse struct {
	StudentID string          `json:"student_id"`
	AsOfDate  time.Time       `json:"as_of_date"`
	Fees      []CalculatedFee `json:"fees"`
}
