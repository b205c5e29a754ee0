package feecalc

import (
	"time"

	"github.com/segyhp/school-fee-engine/internal/domain"
	customError "github.com/segyhp/school-fee-engine/pkg/errors"
	"github.com/segyhp/school-fee-engine/pkg/utils"

	"github.com/shopspring/decimal"
)

// CalculateInstallments splits totalAmount into installmentCount parts due every intervalDays
// from startDate and credits paidAmount to them in order. The parts always sum to totalAmount.
func CalculateInstallments(
	totalAmount decimal.Decimal,
	installmentCount int,
	paidAmount decimal.Decimal,
	startDate, asOfDate time.Time,
	intervalDays int,
) (*domain.InstallmentDetails, error) {
	if installmentCount < 1 {
		return nil, customError.WrapInvalidInstallmentCount(installmentCount)
	}
	if totalAmount.IsNegative() {
		return nil, customError.WrapInvalidAmount("total amount", totalAmount.String())
	}
	if intervalDays <= 0 {
		intervalDays = DefaultInstallmentIntervalDays
	}

	count := decimal.NewFromInt(int64(installmentCount))
	installmentAmount := utils.RoundMoney(totalAmount.Div(count))
	// rounding up must not leave the last installment negative
	if installmentAmount.Mul(count.Sub(decimal.NewFromInt(1))).GreaterThan(totalAmount) {
		installmentAmount = totalAmount.Div(count).RoundDown(2)
	}
	lastAmount := totalAmount.Sub(installmentAmount.Mul(count.Sub(decimal.NewFromInt(1))))

	details := &domain.InstallmentDetails{
		InstallmentAmount:   installmentAmount,
		InstallmentSchedule: make([]domain.Installment, 0, installmentCount),
	}

	remainingPaid := decimal.Max(paidAmount, decimal.Zero)
	for i := 1; i <= installmentCount; i++ {
		amount := installmentAmount
		if i == installmentCount {
			amount = lastAmount
		}
		dueDate := utils.AddDays(startDate, (i-1)*intervalDays)

		var status domain.FeeStatus
		switch {
		case remainingPaid.GreaterThanOrEqual(amount):
			status = domain.FeeStatusPaid
			remainingPaid = remainingPaid.Sub(amount)
		case remainingPaid.IsPositive():
			// a partial payment does not settle the installment
			status = domain.FeeStatusPending
			remainingPaid = decimal.Zero
		case dueDate.Before(asOfDate):
			status = domain.FeeStatusOverdue
		default:
			status = domain.FeeStatusPending
		}

		if status != domain.FeeStatusPaid {
			details.RemainingInstallments++
			if details.NextInstallmentDue == nil {
				due := dueDate
				details.NextInstallmentDue = &due
			}
		}

		details.InstallmentSchedule = append(details.InstallmentSchedule, domain.Installment{
			Number:  i,
			Amount:  amount,
			DueDate: dueDate,
			Status:  status,
		})
	}

	return details, nil
}

// installmentCountFor lowers the configured count so no installment falls below the minimum amount
func installmentCountFor(total decimal.Decimal, count int, minAmount decimal.NullDecimal) int {
	if count <= 1 || !minAmount.Valid || !minAmount.Decimal.IsPositive() {
		return count
	}

	maxCount := int(total.Div(minAmount.Decimal).IntPart())
	if maxCount < 1 {
		maxCount = 1
	}
	if count > maxCount {
		return maxCount
	}
	return count
}
