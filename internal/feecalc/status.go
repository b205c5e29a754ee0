package feecalc

import (
	"time"

	"github.com/segyhp/school-fee-engine/internal/domain"
	"github.com/segyhp/school-fee-engine/pkg/utils"

	"github.com/shopspring/decimal"
)

// DetermineFeeStatus classifies a fee. Any payment on an unsettled fee reports
// Partially Paid, even when the fee is past due.
func DetermineFeeStatus(finalAmount, paidAmount decimal.Decimal, dueDate, asOfDate time.Time) domain.FeeStatus {
	outstanding := finalAmount.Sub(paidAmount)

	switch {
	case outstanding.LessThanOrEqual(utils.PaidTolerance):
		return domain.FeeStatusPaid
	case paidAmount.IsPositive():
		return domain.FeeStatusPartiallyPaid
	case dueDate.Before(asOfDate):
		return domain.FeeStatusOverdue
	default:
		return domain.FeeStatusPending
	}
}
