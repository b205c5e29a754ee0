package feecalc

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestCalculateDiscount(t *testing.T) {
	tests := []struct {
		name     string
		base     decimal.Decimal
		config   *DiscountConfig
		expected string
	}{
		{
			name:     "no config",
			base:     dec("5000"),
			config:   nil,
			expected: "0",
		},
		{
			name:     "percentage",
			base:     dec("5000"),
			config:   &DiscountConfig{Type: DiscountTypePercentage, Value: dec("10")},
			expected: "500",
		},
		{
			name:     "fixed",
			base:     dec("5000"),
			config:   &DiscountConfig{Type: DiscountTypeFixed, Value: dec("700")},
			expected: "700",
		},
		{
			name: "capped at max discount",
			base: dec("5000"),
			config: &DiscountConfig{
				Type:        DiscountTypePercentage,
				Value:       dec("10"),
				MaxDiscount: nullDec("300"),
			},
			expected: "300",
		},
		{
			name: "minimum fee after discount is preserved",
			base: dec("1000"),
			config: &DiscountConfig{
				Type:                DiscountTypeFixed,
				Value:               dec("950"),
				MinFeeAfterDiscount: nullDec("100"),
			},
			expected: "900",
		},
		{
			name:     "never exceeds base",
			base:     dec("1000"),
			config:   &DiscountConfig{Type: DiscountTypeFixed, Value: dec("1500")},
			expected: "1000",
		},
		{
			name:     "percentage rounded to two decimals",
			base:     dec("333.33"),
			config:   &DiscountConfig{Type: DiscountTypePercentage, Value: dec("15")},
			expected: "50",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertDecimal(t, tt.expected, CalculateDiscount(tt.base, tt.config))
		})
	}
}

func TestDiscountConfigFor(t *testing.T) {
	t.Run("amount wins over percentage", func(t *testing.T) {
		cfg := discountConfigFor(nullDec("250"), nullDec("50"))
		assertDecimal(t, "250", CalculateDiscount(dec("1000"), cfg))
	})

	t.Run("percentage when no amount", func(t *testing.T) {
		cfg := discountConfigFor(decimal.NullDecimal{}, nullDec("50"))
		assertDecimal(t, "500", CalculateDiscount(dec("1000"), cfg))
	})

	t.Run("nothing configured", func(t *testing.T) {
		cfg := discountConfigFor(decimal.NullDecimal{}, decimal.NullDecimal{})
		assertDecimal(t, "0", CalculateDiscount(dec("1000"), cfg))
	})
}
