package feecalc

import (
	"github.com/segyhp/school-fee-engine/pkg/utils"

	"github.com/shopspring/decimal"
)

type DiscountType string

const (
	DiscountTypePercentage DiscountType = "percentage"
	DiscountTypeFixed      DiscountType = "fixed"
)

type DiscountConfig struct {
	Type                DiscountType
	Value               decimal.Decimal
	MaxDiscount         decimal.NullDecimal
	MinFeeAfterDiscount decimal.NullDecimal
}

// CalculateDiscount returns the discount on baseAmount. The result never exceeds baseAmount.
func CalculateDiscount(baseAmount decimal.Decimal, config *DiscountConfig) decimal.Decimal {
	if config == nil {
		return decimal.Zero
	}

	var amount decimal.Decimal
	switch config.Type {
	case DiscountTypePercentage:
		amount = utils.Percent(baseAmount, config.Value)
	case DiscountTypeFixed:
		amount = config.Value
	}

	if config.MaxDiscount.Valid && amount.GreaterThan(config.MaxDiscount.Decimal) {
		amount = config.MaxDiscount.Decimal
	}

	if config.MinFeeAfterDiscount.Valid && baseAmount.Sub(amount).LessThan(config.MinFeeAfterDiscount.Decimal) {
		amount = baseAmount.Sub(config.MinFeeAfterDiscount.Decimal)
	}

	return utils.RoundMoney(utils.Clamp(amount, decimal.Zero, baseAmount))
}

// discountConfigFor builds the discount of a fee structure; an explicit amount wins over a percentage
func discountConfigFor(amount, percentage decimal.NullDecimal) *DiscountConfig {
	switch {
	case amount.Valid:
		return &DiscountConfig{Type: DiscountTypeFixed, Value: amount.Decimal}
	case percentage.Valid:
		return &DiscountConfig{Type: DiscountTypePercentage, Value: percentage.Decimal}
	}
	return nil
}
