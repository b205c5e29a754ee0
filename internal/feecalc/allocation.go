package feecalc

import (
	"slices"

	"github.com/segyhp/school-fee-engine/internal/domain"
	customError "github.com/segyhp/school-fee-engine/pkg/errors"
	"github.com/segyhp/school-fee-engine/pkg/utils"

	"github.com/shopspring/decimal"
)

// AllocatePayment distributes paymentAmount over outstanding fees. Only fees that
// receive money appear in the result. An empty strategy means oldest first.
func AllocatePayment(
	paymentAmount decimal.Decimal,
	outstandingFees []domain.OutstandingFee,
	strategy domain.AllocationStrategy,
) ([]domain.PaymentAllocation, error) {
	if paymentAmount.IsNegative() {
		return nil, customError.WrapInvalidPaymentAmount(paymentAmount.String())
	}

	fees := slices.Clone(outstandingFees)

	switch strategy {
	case "", domain.AllocationOldestFirst:
		slices.SortStableFunc(fees, func(a, b domain.OutstandingFee) int {
			return a.DueDate.Compare(b.DueDate)
		})
		return allocateSequentially(paymentAmount, fees), nil
	case domain.AllocationHighestAmountFirst:
		slices.SortStableFunc(fees, func(a, b domain.OutstandingFee) int {
			return b.OutstandingAmount.Cmp(a.OutstandingAmount)
		})
		return allocateSequentially(paymentAmount, fees), nil
	case domain.AllocationEqualDistribution:
		return allocateProportionally(paymentAmount, fees), nil
	default:
		return nil, customError.WrapUnknownAllocationStrategy(string(strategy))
	}
}

// UnallocatedAmount is the part of paymentAmount no fee absorbed
func UnallocatedAmount(paymentAmount decimal.Decimal, allocations []domain.PaymentAllocation) decimal.Decimal {
	remaining := paymentAmount
	for _, a := range allocations {
		remaining = remaining.Sub(a.AllocatedAmount)
	}
	return decimal.Max(remaining, decimal.Zero)
}

func allocateSequentially(paymentAmount decimal.Decimal, fees []domain.OutstandingFee) []domain.PaymentAllocation {
	allocations := make([]domain.PaymentAllocation, 0, len(fees))
	remaining := paymentAmount

	for _, fee := range fees {
		if !remaining.IsPositive() {
			break
		}
		if !fee.OutstandingAmount.IsPositive() {
			continue
		}

		allocated := decimal.Min(fee.OutstandingAmount, remaining)
		remaining = remaining.Sub(allocated)
		allocations = append(allocations, newAllocation(fee, allocated))
	}

	return allocations
}

func allocateProportionally(paymentAmount decimal.Decimal, fees []domain.OutstandingFee) []domain.PaymentAllocation {
	totalOutstanding := decimal.Zero
	for _, fee := range fees {
		if fee.OutstandingAmount.IsPositive() {
			totalOutstanding = totalOutstanding.Add(fee.OutstandingAmount)
		}
	}

	allocations := make([]domain.PaymentAllocation, 0, len(fees))
	if totalOutstanding.IsZero() {
		return allocations
	}

	target := decimal.Min(paymentAmount, totalOutstanding)
	shares := make([]decimal.Decimal, len(fees))
	allocated := decimal.Zero
	for i, fee := range fees {
		if !fee.OutstandingAmount.IsPositive() {
			continue
		}
		share := utils.RoundMoney(fee.OutstandingAmount.Mul(paymentAmount).Div(totalOutstanding))
		shares[i] = decimal.Min(share, fee.OutstandingAmount, target.Sub(allocated))
		allocated = allocated.Add(shares[i])
	}

	// rounding leftovers go to the last fees that still have room
	leftover := target.Sub(allocated)
	for i := len(fees) - 1; i >= 0 && leftover.IsPositive(); i-- {
		if !fees[i].OutstandingAmount.IsPositive() {
			continue
		}
		extra := decimal.Min(leftover, fees[i].OutstandingAmount.Sub(shares[i]))
		if extra.IsPositive() {
			shares[i] = shares[i].Add(extra)
			leftover = leftover.Sub(extra)
		}
	}

	for i, fee := range fees {
		if shares[i].IsPositive() {
			allocations = append(allocations, newAllocation(fee, shares[i]))
		}
	}

	return allocations
}

func newAllocation(fee domain.OutstandingFee, allocated decimal.Decimal) domain.PaymentAllocation {
	return domain.PaymentAllocation{
		FeeHeadID:            fee.FeeHeadID,
		FeeTermID:            fee.FeeTermID,
		AllocatedAmount:      allocated,
		RemainingOutstanding: fee.OutstandingAmount.Sub(allocated),
	}
}
