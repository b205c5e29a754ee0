package feecalc

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/segyhp/school-fee-engine/internal/domain"
	customError "github.com/segyhp/school-fee-engine/pkg/errors"
)

func TestAllocatePayment(t *testing.T) {
	jan := date(2024, time.January, 10)
	feb := date(2024, time.February, 10)
	mar := date(2024, time.March, 10)

	type expectedAllocation struct {
		feeHeadID string
		allocated string
		remaining string
	}

	tests := []struct {
		name     string
		amount   string
		fees     []domain.OutstandingFee
		strategy domain.AllocationStrategy
		expected []expectedAllocation
	}{
		{
			name:   "oldest first settles the earliest fee",
			amount: "1500",
			fees: []domain.OutstandingFee{
				{FeeHeadID: "B", OutstandingAmount: dec("1000"), DueDate: feb},
				{FeeHeadID: "A", OutstandingAmount: dec("1000"), DueDate: jan},
			},
			strategy: domain.AllocationOldestFirst,
			expected: []expectedAllocation{
				{feeHeadID: "A", allocated: "1000", remaining: "0"},
				{feeHeadID: "B", allocated: "500", remaining: "500"},
			},
		},
		{
			name:   "empty strategy means oldest first",
			amount: "1500",
			fees: []domain.OutstandingFee{
				{FeeHeadID: "A", OutstandingAmount: dec("1000"), DueDate: jan},
				{FeeHeadID: "B", OutstandingAmount: dec("1000"), DueDate: feb},
			},
			strategy: "",
			expected: []expectedAllocation{
				{feeHeadID: "A", allocated: "1000", remaining: "0"},
				{feeHeadID: "B", allocated: "500", remaining: "500"},
			},
		},
		{
			name:   "highest amount first",
			amount: "2500",
			fees: []domain.OutstandingFee{
				{FeeHeadID: "A", OutstandingAmount: dec("1000"), DueDate: jan},
				{FeeHeadID: "B", OutstandingAmount: dec("3000"), DueDate: feb},
				{FeeHeadID: "C", OutstandingAmount: dec("500"), DueDate: mar},
			},
			strategy: domain.AllocationHighestAmountFirst,
			expected: []expectedAllocation{
				{feeHeadID: "B", allocated: "2500", remaining: "500"},
			},
		},
		{
			name:   "equal distribution is proportional",
			amount: "2000",
			fees: []domain.OutstandingFee{
				{FeeHeadID: "A", OutstandingAmount: dec("1000"), DueDate: jan},
				{FeeHeadID: "B", OutstandingAmount: dec("3000"), DueDate: feb},
			},
			strategy: domain.AllocationEqualDistribution,
			expected: []expectedAllocation{
				{feeHeadID: "A", allocated: "500", remaining: "500"},
				{feeHeadID: "B", allocated: "1500", remaining: "1500"},
			},
		},
		{
			name:   "equal distribution never exceeds outstanding",
			amount: "9000",
			fees: []domain.OutstandingFee{
				{FeeHeadID: "A", OutstandingAmount: dec("1000"), DueDate: jan},
				{FeeHeadID: "B", OutstandingAmount: dec("3000"), DueDate: feb},
			},
			strategy: domain.AllocationEqualDistribution,
			expected: []expectedAllocation{
				{feeHeadID: "A", allocated: "1000", remaining: "0"},
				{feeHeadID: "B", allocated: "3000", remaining: "0"},
			},
		},
		{
			name:   "equal distribution hands rounding cents to the last fee",
			amount: "100",
			fees: []domain.OutstandingFee{
				{FeeHeadID: "A", OutstandingAmount: dec("1000"), DueDate: jan},
				{FeeHeadID: "B", OutstandingAmount: dec("1000"), DueDate: feb},
				{FeeHeadID: "C", OutstandingAmount: dec("1000"), DueDate: mar},
			},
			strategy: domain.AllocationEqualDistribution,
			expected: []expectedAllocation{
				{feeHeadID: "A", allocated: "33.33", remaining: "966.67"},
				{feeHeadID: "B", allocated: "33.33", remaining: "966.67"},
				{feeHeadID: "C", allocated: "33.34", remaining: "966.66"},
			},
		},
		{
			name:   "equal distribution never rounds past the payment",
			amount: "200",
			fees: []domain.OutstandingFee{
				{FeeHeadID: "A", OutstandingAmount: dec("1000"), DueDate: jan},
				{FeeHeadID: "B", OutstandingAmount: dec("1000"), DueDate: feb},
				{FeeHeadID: "C", OutstandingAmount: dec("1000"), DueDate: mar},
			},
			strategy: domain.AllocationEqualDistribution,
			expected: []expectedAllocation{
				{feeHeadID: "A", allocated: "66.67", remaining: "933.33"},
				{feeHeadID: "B", allocated: "66.67", remaining: "933.33"},
				{feeHeadID: "C", allocated: "66.66", remaining: "933.34"},
			},
		},
		{
			name:   "equal distribution leftover skips a fee with no room",
			amount: "15.02",
			fees: []domain.OutstandingFee{
				{FeeHeadID: "A", OutstandingAmount: dec("10"), DueDate: jan},
				{FeeHeadID: "B", OutstandingAmount: dec("10"), DueDate: feb},
				{FeeHeadID: "D", OutstandingAmount: dec("10"), DueDate: mar},
				{FeeHeadID: "C", OutstandingAmount: dec("0.01"), DueDate: mar},
			},
			strategy: domain.AllocationEqualDistribution,
			expected: []expectedAllocation{
				{feeHeadID: "A", allocated: "5", remaining: "5"},
				{feeHeadID: "B", allocated: "5", remaining: "5"},
				{feeHeadID: "D", allocated: "5.01", remaining: "4.99"},
				{feeHeadID: "C", allocated: "0.01", remaining: "0"},
			},
		},
		{
			name:   "settled fees are skipped",
			amount: "300",
			fees: []domain.OutstandingFee{
				{FeeHeadID: "A", OutstandingAmount: decimal.Zero, DueDate: jan},
				{FeeHeadID: "B", OutstandingAmount: dec("1000"), DueDate: feb},
			},
			strategy: domain.AllocationOldestFirst,
			expected: []expectedAllocation{
				{feeHeadID: "B", allocated: "300", remaining: "700"},
			},
		},
		{
			name:     "nothing outstanding",
			amount:   "300",
			fees:     nil,
			strategy: domain.AllocationEqualDistribution,
			expected: []expectedAllocation{},
		},
		{
			name:   "zero payment",
			amount: "0",
			fees: []domain.OutstandingFee{
				{FeeHeadID: "A", OutstandingAmount: dec("1000"), DueDate: jan},
			},
			strategy: domain.AllocationOldestFirst,
			expected: []expectedAllocation{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			allocations, err := AllocatePayment(dec(tt.amount), tt.fees, tt.strategy)
			require.NoError(t, err)
			require.Len(t, allocations, len(tt.expected))

			for i, exp := range tt.expected {
				assert.Equal(t, exp.feeHeadID, allocations[i].FeeHeadID)
				assertDecimal(t, exp.allocated, allocations[i].AllocatedAmount)
				assertDecimal(t, exp.remaining, allocations[i].RemainingOutstanding)
			}
		})
	}
}

func TestAllocatePayment_DoesNotReorderInput(t *testing.T) {
	fees := []domain.OutstandingFee{
		{FeeHeadID: "B", OutstandingAmount: dec("1000"), DueDate: date(2024, time.February, 1)},
		{FeeHeadID: "A", OutstandingAmount: dec("1000"), DueDate: date(2024, time.January, 1)},
	}

	_, err := AllocatePayment(dec("100"), fees, domain.AllocationOldestFirst)
	require.NoError(t, err)
	assert.Equal(t, "B", fees[0].FeeHeadID)
}

func TestAllocatePayment_InvalidInput(t *testing.T) {
	fees := []domain.OutstandingFee{{FeeHeadID: "A", OutstandingAmount: dec("1000")}}

	_, err := AllocatePayment(dec("100"), fees, "round_robin")
	assert.ErrorIs(t, err, customError.ErrUnknownAllocationStrategy)

	_, err = AllocatePayment(dec("-100"), fees, domain.AllocationOldestFirst)
	assert.ErrorIs(t, err, customError.ErrInvalidPaymentAmount)
}

func TestAllocatePayment_EqualDistributionAllocatesWholePayment(t *testing.T) {
	fees := []domain.OutstandingFee{
		{FeeHeadID: "A", OutstandingAmount: dec("1000"), DueDate: date(2024, time.January, 1)},
		{FeeHeadID: "B", OutstandingAmount: dec("1000"), DueDate: date(2024, time.February, 1)},
		{FeeHeadID: "C", OutstandingAmount: dec("1000"), DueDate: date(2024, time.March, 1)},
	}

	for _, amount := range []string{"100", "0.01", "0.02", "1", "999.99", "2999.99", "3000"} {
		allocations, err := AllocatePayment(dec(amount), fees, domain.AllocationEqualDistribution)
		require.NoError(t, err)
		assert.True(t, UnallocatedAmount(dec(amount), allocations).IsZero(), "amount %s", amount)
	}
}

func TestUnallocatedAmount(t *testing.T) {
	fees := []domain.OutstandingFee{
		{FeeHeadID: "A", OutstandingAmount: dec("1000"), DueDate: date(2024, time.January, 1)},
	}

	allocations, err := AllocatePayment(dec("1250"), fees, domain.AllocationOldestFirst)
	require.NoError(t, err)
	assertDecimal(t, "250", UnallocatedAmount(dec("1250"), allocations))
}
