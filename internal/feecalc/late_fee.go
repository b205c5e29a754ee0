package feecalc

import (
	"time"

	"github.com/segyhp/school-fee-engine/pkg/utils"

	"github.com/shopspring/decimal"
)

var daysPerMonth = decimal.NewFromInt(30)

// LateFeeConfig describes how a late fee accrues once a fee is past due.
// FlatRate wins over PercentageRate when both are set.
type LateFeeConfig struct {
	GracePeriodDays int
	// FlatRate is charged per overdue day
	FlatRate decimal.NullDecimal
	// PercentageRate is a monthly rate, prorated by overdue days unless CompoundDaily is set
	PercentageRate decimal.NullDecimal
	CompoundDaily  bool
	MaxLateFee     decimal.NullDecimal
}

// CalculateLateFee returns the late fee accrued on baseAmount between dueDate and asOfDate
func CalculateLateFee(baseAmount decimal.Decimal, dueDate, asOfDate time.Time, config *LateFeeConfig) decimal.Decimal {
	if config == nil {
		config = &LateFeeConfig{}
	}

	overdueDays := utils.DaysOverdue(dueDate, asOfDate)
	if overdueDays <= config.GracePeriodDays {
		return decimal.Zero
	}
	actualOverdueDays := decimal.NewFromInt(int64(overdueDays - config.GracePeriodDays))

	lateFee := decimal.Zero
	switch {
	case isSet(config.FlatRate):
		lateFee = actualOverdueDays.Mul(config.FlatRate.Decimal)
	case isSet(config.PercentageRate) && config.CompoundDaily:
		factor := decimal.NewFromInt(1).Add(config.PercentageRate.Decimal.Div(utils.Hundred))
		lateFee = baseAmount.Mul(factor.Pow(actualOverdueDays)).Sub(baseAmount)
	case isSet(config.PercentageRate):
		lateFee = utils.Percent(baseAmount, config.PercentageRate.Decimal).
			Mul(actualOverdueDays).
			Div(daysPerMonth)
	}

	if config.MaxLateFee.Valid && lateFee.GreaterThan(config.MaxLateFee.Decimal) {
		lateFee = config.MaxLateFee.Decimal
	}

	return utils.RoundMoney(lateFee)
}

// isSet treats a zero rate the same as a missing one
func isSet(d decimal.NullDecimal) bool {
	return d.Valid && !d.Decimal.IsZero()
}
