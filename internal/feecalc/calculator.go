package feecalc

import (
	"time"

	"github.com/segyhp/school-fee-engine/internal/domain"
	customError "github.com/segyhp/school-fee-engine/pkg/errors"
	"github.com/segyhp/school-fee-engine/pkg/utils"

	"github.com/shopspring/decimal"
)

// CalculateStudentFees computes one CalculatedFee per fee structure, in input order.
//
// Payments are attributed to a fee purely by fee head. A student carrying the same
// fee head in several terms sees the full payment total against each of those terms.
func CalculateStudentFees(
	feeStructures []domain.FeeStructure,
	paymentRecords []domain.PaymentRecord,
	opts Options,
	concessions []domain.StudentConcession,
) ([]domain.CalculatedFee, error) {
	asOf := opts.asOf()
	paidByFeeHead := sumPaymentsByFeeHead(paymentRecords)

	fees := make([]domain.CalculatedFee, 0, len(feeStructures))
	for _, fs := range feeStructures {
		fee, err := calculateFee(fs, paidByFeeHead[fs.FeeHeadID], concessions, opts, asOf)
		if err != nil {
			return nil, err
		}
		fees = append(fees, fee)
	}

	return fees, nil
}

func calculateFee(
	fs domain.FeeStructure,
	paidAmount decimal.Decimal,
	concessions []domain.StudentConcession,
	opts Options,
	asOf time.Time,
) (domain.CalculatedFee, error) {
	if fs.BaseAmount.IsNegative() {
		return domain.CalculatedFee{}, customError.WrapInvalidAmount("base amount of fee head "+fs.FeeHeadID, fs.BaseAmount.String())
	}

	baseAmount := fs.BaseAmount

	discountAmount := decimal.Zero
	if opts.ApplyDiscounts {
		discountAmount = CalculateDiscount(baseAmount, discountConfigFor(fs.DiscountAmount, fs.DiscountPercentage))
	}

	concession := ConcessionResult{
		ConcessionAmount:   decimal.Zero,
		AppliedConcessions: make([]domain.StudentConcession, 0),
	}
	if opts.ApplyConcessions && len(concessions) > 0 {
		concession = CalculateConcessions(baseAmount, fs.FeeHeadID, fs.FeeTermID, concessions, asOf)
	}

	discountedAmount := decimal.Max(decimal.Zero, baseAmount.Sub(discountAmount).Sub(concession.ConcessionAmount))

	// late fees accrue on the post discount balance
	lateFeeAmount := decimal.Zero
	if opts.CalculateLateFees && asOf.After(fs.DueDate) {
		lateFeeAmount = CalculateLateFee(discountedAmount, fs.DueDate, asOf, lateFeeConfigFor(fs, opts))
	}

	finalAmount := discountedAmount.Add(lateFeeAmount)
	outstandingAmount := decimal.Max(decimal.Zero, finalAmount.Sub(paidAmount))

	fee := domain.CalculatedFee{
		FeeStructureID:     fs.ID,
		FeeHeadID:          fs.FeeHeadID,
		FeeHeadName:        fs.FeeHeadName,
		FeeTermID:          fs.FeeTermID,
		FeeTermName:        fs.FeeTermName,
		DueDate:            fs.DueDate,
		BaseAmount:         baseAmount,
		DiscountAmount:     discountAmount,
		ConcessionAmount:   concession.ConcessionAmount,
		DiscountedAmount:   discountedAmount,
		LateFeeAmount:      lateFeeAmount,
		FinalAmount:        finalAmount,
		PaidAmount:         paidAmount,
		OutstandingAmount:  outstandingAmount,
		OverdueDays:        utils.DaysOverdue(fs.DueDate, asOf),
		Status:             DetermineFeeStatus(finalAmount, paidAmount, fs.DueDate, asOf),
		AppliedConcessions: concession.AppliedConcessions,
	}

	if opts.CalculateInstallments && fs.InstallmentAllowed && fs.InstallmentCount != nil {
		count := installmentCountFor(finalAmount, *fs.InstallmentCount, fs.InstallmentMinAmount)
		details, err := CalculateInstallments(finalAmount, count, paidAmount, fs.DueDate, asOf, opts.intervalDays())
		if err != nil {
			return domain.CalculatedFee{}, err
		}
		fee.InstallmentDetails = details
	}

	return fee, nil
}

// lateFeeConfigFor maps fee structure late fee fields: the amount is a per day rate,
// the percentage a monthly rate, and late fee days replace the default grace period.
func lateFeeConfigFor(fs domain.FeeStructure, opts Options) *LateFeeConfig {
	grace := opts.GracePeriodDays
	if fs.LateFeeDays != nil {
		grace = *fs.LateFeeDays
	}
	return &LateFeeConfig{
		GracePeriodDays: grace,
		FlatRate:        fs.LateFeeAmount,
		PercentageRate:  fs.LateFeePercentage,
	}
}

func sumPaymentsByFeeHead(payments []domain.PaymentRecord) map[string]decimal.Decimal {
	totals := make(map[string]decimal.Decimal)
	for _, p := range payments {
		totals[p.FeeHeadID] = totals[p.FeeHeadID].Add(p.Amount)
	}
	return totals
}

// SummarizeFees totals a student's calculated fees
func SummarizeFees(fees []domain.CalculatedFee) domain.StudentFeeSummary {
	var summary domain.StudentFeeSummary
	for _, f := range fees {
		summary.TotalBase = summary.TotalBase.Add(f.BaseAmount)
		summary.TotalDiscount = summary.TotalDiscount.Add(f.DiscountAmount)
		summary.TotalConcession = summary.TotalConcession.Add(f.ConcessionAmount)
		summary.TotalLateFee = summary.TotalLateFee.Add(f.LateFeeAmount)
		summary.TotalFinal = summary.TotalFinal.Add(f.FinalAmount)
		summary.TotalPaid = summary.TotalPaid.Add(f.PaidAmount)
		summary.TotalOutstanding = summary.TotalOutstanding.Add(f.OutstandingAmount)
		summary.FeeCount++

		switch f.Status {
		case domain.FeeStatusOverdue:
			summary.OverdueCount++
		case domain.FeeStatusPaid:
			summary.PaidCount++
		}
	}
	return summary
}
