package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	PaymentModeCash         = "CASH"
	PaymentModeUPI          = "UPI"
	PaymentModeCard         = "CARD"
	PaymentModeBankTransfer = "BANK_TRANSFER"
	PaymentModeCheque       = "CHEQUE"
	PaymentModeOnline       = "ONLINE"
)

// PaymentRecord is a historical payment against a fee head.
// Payments are attributed by fee head only, across every term.
type PaymentRecord struct {
	ID          uuid.UUID       `json:"id" db:"id"`
	StudentID   string          `json:"student_id" db:"student_id"`
	FeeHeadID   string          `json:"fee_head_id" db:"fee_head_id"`
	Amount      decimal.Decimal `json:"amount" db:"amount"`
	PaymentDate time.Time       `json:"payment_date" db:"payment_date"`
	PaymentMode string          `json:"payment_mode" db:"payment_mode"`
	Reference   *string         `json:"reference,omitempty" db:"reference"`
	CreatedAt   time.Time       `json:"created_at" db:"created_at"`
}

func (PaymentRecord) TableName() string {
	return "fee_payments"
}

type AllocationStrategy string

const (
	AllocationOldestFirst        AllocationStrategy = "oldest_first"
	AllocationHighestAmountFirst AllocationStrategy = "highest_amount_first"
	AllocationEqualDistribution  AllocationStrategy = "equal_distribution"
)

// IsValid reports whether s names a known strategy. Empty means the default.
func (s AllocationStrategy) IsValid() bool {
	switch s {
	case "", AllocationOldestFirst, AllocationHighestAmountFirst, AllocationEqualDistribution:
		return true
	}
	return false
}

// OutstandingFee is the allocator view of an unpaid fee
type OutstandingFee struct {
	FeeHeadID         string          `json:"fee_head_id"`
	FeeTermID         string          `json:"fee_term_id,omitempty"`
	OutstandingAmount decimal.Decimal `json:"outstanding_amount"`
	DueDate           time.Time       `json:"due_date"`
}

type PaymentAllocation struct {
	FeeHeadID            string          `json:"fee_head_id"`
	FeeTermID            string          `json:"fee_term_id,omitempty"`
	AllocatedAmount      decimal.Decimal `json:"allocated_amount"`
	RemainingOutstanding decimal.Decimal `json:"remaining_outstanding"`
}

// DTOs for requests and responses

type MakePaymentRequest struct {
	Amount      decimal.Decimal    `json:"amount" validate:"decimal_gt=0"`
	PaymentMode string             `json:"payment_mode" validate:"required,oneof=CASH UPI CARD BANK_TRANSFER CHEQUE ONLINE"`
	Strategy    AllocationStrategy `json:"strategy" validate:"omitempty,oneof=oldest_first highest_amount_first equal_distribution"`
	Reference   *string            `json:"reference,omitempty" validate:"omitempty,max=100"`
	PaymentDate *time.Time         `json:"payment_date,omitempty"`
}

type MakePaymentResponse struct {
	StudentID   string              `json:"student_id"`
	Strategy    AllocationStrategy  `json:"strategy"`
	Allocations []PaymentAllocation `json:"allocations"`
	Payments    []*PaymentRecord    `json:"payments,omitempty"`
	Unallocated decimal.Decimal     `json:"unallocated"`
}
