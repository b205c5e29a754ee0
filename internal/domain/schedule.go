package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Installment is one scheduled part of a fee
type Installment struct {
	Number  int             `json:"number"`
	Amount  decimal.Decimal `json:"amount"`
	DueDate time.Time       `json:"due_date"`
	Status  FeeStatus       `json:"status"` // Paid, Pending, Overdue
}

type InstallmentDetails struct {
	InstallmentAmount     decimal.Decimal `json:"installment_amount"`
	RemainingInstallments int             `json:"remaining_installments"`
	NextInstallmentDue    *time.Time      `json:"next_installment_due,omitempty"`
	InstallmentSchedule   []Installment   `json:"installment_schedule"`
}

type InstallmentPreviewRequest struct {
	TotalAmount      decimal.Decimal `json:"total_amount" validate:"decimal_gte=0"`
	InstallmentCount int             `json:"installment_count" validate:"required,gte=1,lte=120"`
	PaidAmount       decimal.Decimal `json:"paid_amount" validate:"decimal_gte=0"`
	StartDate        time.Time       `json:"start_date" validate:"required"`
	IntervalDays     int             `json:"interval_days" validate:"omitempty,gte=1"`
	AsOfDate         *time.Time      `json:"as_of_date,omitempty"`
}
