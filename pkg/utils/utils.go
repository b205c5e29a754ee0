package utils

import (
	"time"

	"github.com/shopspring/decimal"
)

const day = 24 * time.Hour

var (
	Hundred = decimal.NewFromInt(100)
	// PaidTolerance absorbs float-like drift when comparing paid and final amounts
	PaidTolerance = decimal.NewFromFloat(0.01)
)

// RoundMoney rounds an amount to 2 decimal places
func RoundMoney(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// Percent returns base * rate / 100
func Percent(base, rate decimal.Decimal) decimal.Decimal {
	return base.Mul(rate).Div(Hundred)
}

// Clamp bounds d to [lo, hi]
func Clamp(d, lo, hi decimal.Decimal) decimal.Decimal {
	return decimal.Max(lo, decimal.Min(d, hi))
}

// DaysOverdue returns the number of whole days between dueDate and asOf.
// Dates in the future yield 0.
func DaysOverdue(dueDate, asOf time.Time) int {
	days := int(asOf.Sub(dueDate) / day)
	if days < 0 {
		return 0
	}
	return days
}

// AddDays moves a date forward by n calendar days
func AddDays(date time.Time, n int) time.Time {
	return date.AddDate(0, 0, n)
}

// DaysInMonth returns the number of days of the month containing t
func DaysInMonth(t time.Time) int {
	firstOfNext := time.Date(t.Year(), t.Month()+1, 1, 0, 0, 0, 0, t.Location())
	return firstOfNext.AddDate(0, 0, -1).Day()
}

// MonthBounds returns the first instant of the month containing t and the first instant of the next one
func MonthBounds(t time.Time) (time.Time, time.Time) {
	start := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	return start, start.AddDate(0, 1, 0)
}

// StartOfDay truncates t to midnight in its own location
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
