package feecalc

import (
	"slices"
	"time"

	"github.com/segyhp/school-fee-engine/internal/domain"
	"github.com/segyhp/school-fee-engine/pkg/utils"

	"github.com/shopspring/decimal"
)

type ConcessionResult struct {
	ConcessionAmount   decimal.Decimal            `json:"concession_amount"`
	AppliedConcessions []domain.StudentConcession `json:"applied_concessions"`
}

// IsConcessionApplicable reports whether c is approved, valid on asOfDate and scoped to the fee.
// An empty fee head or fee term list matches everything.
func IsConcessionApplicable(c domain.StudentConcession, feeHeadID, feeTermID string, asOfDate time.Time) bool {
	if c.Status != domain.ConcessionStatusApproved {
		return false
	}
	if asOfDate.Before(c.ValidFrom) {
		return false
	}
	if c.ValidUntil != nil && asOfDate.After(*c.ValidUntil) {
		return false
	}
	if len(c.AppliedFeeHeads) > 0 && !slices.Contains(c.AppliedFeeHeads, feeHeadID) {
		return false
	}
	if len(c.AppliedFeeTerms) > 0 && !slices.Contains(c.AppliedFeeTerms, feeTermID) {
		return false
	}
	return true
}

// CalculateConcessions sums every applicable concession for a fee, capped at baseAmount
func CalculateConcessions(
	baseAmount decimal.Decimal,
	feeHeadID, feeTermID string,
	concessions []domain.StudentConcession,
	asOfDate time.Time,
) ConcessionResult {
	applied := make([]domain.StudentConcession, 0)
	total := decimal.Zero

	for _, c := range concessions {
		if !IsConcessionApplicable(c, feeHeadID, feeTermID, asOfDate) {
			continue
		}

		value := c.EffectiveValue()
		if c.Type == domain.ConcessionTypePercentage {
			total = total.Add(utils.Percent(baseAmount, value))
		} else {
			total = total.Add(value)
		}
		applied = append(applied, c)
	}

	return ConcessionResult{
		ConcessionAmount:   utils.RoundMoney(utils.Clamp(total, decimal.Zero, baseAmount)),
		AppliedConcessions: applied,
	}
}

// CalculateConcessionAmount is CalculateConcessions returning its parts separately
func CalculateConcessionAmount(
	baseAmount decimal.Decimal,
	feeHeadID, feeTermID string,
	concessions []domain.StudentConcession,
	asOfDate time.Time,
) (decimal.Decimal, []domain.StudentConcession) {
	result := CalculateConcessions(baseAmount, feeHeadID, feeTermID, concessions, asOfDate)
	return result.ConcessionAmount, result.AppliedConcessions
}
