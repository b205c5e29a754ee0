package handler

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/segyhp/school-fee-engine/internal/service"
)

const dateLayout = "2006-01-02"

// parseFeeQuery reads as_of, late_fees, discounts, concessions, installments and grace_days
func parseFeeQuery(r *http.Request) (service.FeeQuery, error) {
	var query service.FeeQuery
	values := r.URL.Query()

	asOf, err := parseDate(values.Get("as_of"))
	if err != nil {
		return query, err
	}
	query.AsOfDate = asOf

	flags := []struct {
		name   string
		target **bool
	}{
		{"late_fees", &query.CalculateLateFees},
		{"discounts", &query.ApplyDiscounts},
		{"concessions", &query.ApplyConcessions},
		{"installments", &query.CalculateInstallments},
	}
	for _, flag := range flags {
		raw := values.Get(flag.name)
		if raw == "" {
			continue
		}
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			return query, fmt.Errorf("%s must be true or false", flag.name)
		}
		*flag.target = &parsed
	}

	if raw := values.Get("grace_days"); raw != "" {
		grace, err := strconv.Atoi(raw)
		if err != nil || grace < 0 {
			return query, fmt.Errorf("grace_days must be a non-negative integer")
		}
		query.GracePeriodDays = &grace
	}

	return query, nil
}

// parseDate accepts YYYY-MM-DD or RFC 3339. Empty input yields nil.
func parseDate(raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}

	if t, err := time.Parse(dateLayout, raw); err == nil {
		return &t, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, fmt.Errorf("as_of must be a date (YYYY-MM-DD) or RFC 3339 timestamp")
	}
	return &t, nil
}
