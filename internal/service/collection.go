package service

import (
	"context"
	"fmt"
	"time"

	"github.com/segyhp/school-fee-engine/internal/domain"
	"github.com/segyhp/school-fee-engine/internal/feecalc"
	customError "github.com/segyhp/school-fee-engine/pkg/errors"
	"github.com/segyhp/school-fee-engine/pkg/utils"
)

const monthLayout = "2006-01"

// GetCollectionProjection projects collection for month ("2006-01"). An empty month means the month of asOf.
// Past months count every day as passed, future months none.
func (s *FeeService) GetCollectionProjection(ctx context.Context, month string, asOf *time.Time) (*domain.CollectionProjection, error) {
	now := s.today()
	if asOf != nil {
		now = *asOf
	}

	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	if month != "" {
		parsed, err := time.ParseInLocation(monthLayout, month, now.Location())
		if err != nil {
			return nil, fmt.Errorf("month must be formatted as YYYY-MM: %w", err)
		}
		monthStart = parsed
	}
	start, next := utils.MonthBounds(monthStart)

	expected, err := s.repos.Collections.GetExpectedTotal(ctx, start, next)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	collected, err := s.repos.Collections.GetCollectedTotal(ctx, start, next)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	daysInMonth := utils.DaysInMonth(start)
	daysPassed := 0
	switch {
	case !now.Before(next):
		daysPassed = daysInMonth
	case !now.Before(start):
		daysPassed = now.Day()
	}

	projection := feecalc.ProjectCollection(expected, collected, daysInMonth, daysPassed)
	projection.Month = start.Format(monthLayout)

	return &projection, nil
}
