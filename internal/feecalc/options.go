// Package feecalc turns fee structures, concessions and payment history into
// per fee head financial state. Every function is a pure transformation of its
// inputs and is safe for concurrent use.
package feecalc

import "time"

const DefaultInstallmentIntervalDays = 30

// Options toggles the stages of CalculateStudentFees
type Options struct {
	CalculateLateFees     bool
	ApplyDiscounts        bool
	ApplyConcessions      bool
	CalculateInstallments bool
	// AsOfDate is the evaluation instant, zero means time.Now()
	AsOfDate        time.Time
	GracePeriodDays int
	// InstallmentIntervalDays is the spacing between installment due dates, zero means 30
	InstallmentIntervalDays int
}

// DefaultOptions enables late fees, discounts and concessions, evaluated now
func DefaultOptions() Options {
	return Options{
		CalculateLateFees: true,
		ApplyDiscounts:    true,
		ApplyConcessions:  true,
		AsOfDate:          time.Now(),
	}
}

func (o Options) asOf() time.Time {
	if o.AsOfDate.IsZero() {
		return time.Now()
	}
	return o.AsOfDate
}

func (o Options) intervalDays() int {
	if o.InstallmentIntervalDays <= 0 {
		return DefaultInstallmentIntervalDays
	}
	return o.InstallmentIntervalDays
}
