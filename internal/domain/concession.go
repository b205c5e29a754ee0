package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

type ConcessionType string

const (
	ConcessionTypePercentage ConcessionType = "PERCENTAGE"
	ConcessionTypeFixed      ConcessionType = "FIXED"
)

type ConcessionStatus string

const (
	ConcessionStatusPending   ConcessionStatus = "PENDING"
	ConcessionStatusApproved  ConcessionStatus = "APPROVED"
	ConcessionStatusRejected  ConcessionStatus = "REJECTED"
	ConcessionStatusSuspended ConcessionStatus = "SUSPENDED"
	ConcessionStatusExpired   ConcessionStatus = "EXPIRED"
)

// StudentConcession is a concession granted to one student.
// Empty AppliedFeeHeads / AppliedFeeTerms mean the concession applies to all heads / terms.
type StudentConcession struct {
	ID                 uuid.UUID           `json:"id" db:"id"`
	StudentID          string              `json:"student_id" db:"student_id"`
	ConcessionTypeID   string              `json:"concession_type_id" db:"concession_type_id"`
	ConcessionTypeName string              `json:"concession_type_name" db:"concession_type_name"`
	Type               ConcessionType      `json:"type" db:"type"`
	Value              decimal.Decimal     `json:"value" db:"value"`
	CustomValue        decimal.NullDecimal `json:"custom_value" db:"custom_value"`
	Status             ConcessionStatus    `json:"status" db:"status"`
	ValidFrom          time.Time           `json:"valid_from" db:"valid_from"`
	ValidUntil         *time.Time          `json:"valid_until,omitempty" db:"valid_until"`
	AppliedFeeHeads    pq.StringArray      `json:"applied_fee_heads" db:"applied_fee_heads"`
	AppliedFeeTerms    pq.StringArray      `json:"applied_fee_terms" db:"applied_fee_terms"`
	Reason             *string             `json:"reason,omitempty" db:"reason"`
}

// EffectiveValue is the student specific value when present, the concession type value otherwise
func (c StudentConcession) EffectiveValue() decimal.Decimal {
	if c.CustomValue.Valid {
		return c.CustomValue.Decimal
	}
	return c.Value
}
