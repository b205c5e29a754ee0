package feecalc

import (
	"time"

	"github.com/segyhp/school-fee-engine/internal/domain"
	"github.com/segyhp/school-fee-engine/pkg/utils"

	"github.com/shopspring/decimal"
)

// OnTrackThreshold is the collection rate at which a month counts as on track
var OnTrackThreshold = decimal.NewFromFloat(0.9)

// ProjectCollection extrapolates the month's collection from the average daily intake so far
func ProjectCollection(totalExpected, collectedSoFar decimal.Decimal, daysInMonth, daysPassed int) domain.CollectionProjection {
	projection := domain.CollectionProjection{
		TotalExpected:  totalExpected,
		CollectedSoFar: collectedSoFar,
		DaysInMonth:    daysInMonth,
		DaysPassed:     daysPassed,
		TargetDaily:    decimal.Zero,
		CollectionRate: decimal.Zero,
		ProjectedTotal: collectedSoFar,
	}

	if daysInMonth > 0 {
		projection.TargetDaily = totalExpected.Div(decimal.NewFromInt(int64(daysInMonth)))
	}

	if daysPassed > 0 {
		passed := decimal.NewFromInt(int64(daysPassed))

		targetSoFar := projection.TargetDaily.Mul(passed)
		if targetSoFar.IsPositive() {
			projection.CollectionRate = collectedSoFar.Div(targetSoFar)
		}

		remainingDays := decimal.NewFromInt(int64(max(daysInMonth-daysPassed, 0)))
		dailyAverage := collectedSoFar.Div(passed)
		projection.ProjectedTotal = collectedSoFar.Add(dailyAverage.Mul(remainingDays))
	}

	projection.OnTrack = projection.CollectionRate.GreaterThanOrEqual(OnTrackThreshold)
	projection.TargetDaily = utils.RoundMoney(projection.TargetDaily)
	projection.CollectionRate = projection.CollectionRate.Round(4)
	projection.ProjectedTotal = utils.RoundMoney(projection.ProjectedTotal)

	return projection
}

// ProjectCollectionForMonth projects the month containing asOfDate, counting asOfDate's day as passed
func ProjectCollectionForMonth(totalExpected, collectedSoFar decimal.Decimal, asOfDate time.Time) domain.CollectionProjection {
	projection := ProjectCollection(totalExpected, collectedSoFar, utils.DaysInMonth(asOfDate), asOfDate.Day())
	projection.Month = asOfDate.Format("2006-01")
	return projection
}
