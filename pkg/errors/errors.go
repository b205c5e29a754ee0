package errors

import (
	"errors"
	"fmt"
)

// Domain errors
var (
	ErrStudentNotFound            = errors.New("student not found")
	ErrInvalidAmount              = errors.New("invalid amount")
	ErrInvalidInstallmentCount    = errors.New("invalid installment count")
	ErrUnknownAllocationStrategy  = errors.New("unknown allocation strategy")
	ErrInvalidPaymentAmount       = errors.New("invalid payment amount")
	ErrNoOutstandingBalance       = errors.New("no outstanding balance")
	ErrNotificationDeliveryFailed = errors.New("notification delivery failed")
)

// BusinessError represents a business logic error
type BusinessError struct {
	Code    string
	Message string
	Err     error
}

func (e *BusinessError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *BusinessError) Unwrap() error {
	return e.Err
}

// NewBusinessError creates a new business error
func NewBusinessError(code, message string, err error) *BusinessError {
	return &BusinessError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Error codes
const (
	ErrCodeStudentNotFound           = "STUDENT_NOT_FOUND"
	ErrCodeInvalidAmount             = "INVALID_AMOUNT"
	ErrCodeInvalidInstallmentCount   = "INVALID_INSTALLMENT_COUNT"
	ErrCodeUnknownAllocationStrategy = "UNKNOWN_ALLOCATION_STRATEGY"
	ErrCodeInvalidPaymentAmount      = "INVALID_PAYMENT_AMOUNT"
	ErrCodeNoOutstandingBalance      = "NO_OUTSTANDING_BALANCE"
	ErrCodeDatabaseError             = "DATABASE_ERROR"
	ErrCodeCacheError                = "CACHE_ERROR"
	ErrCodeNotificationError         = "NOTIFICATION_ERROR"
)

// Code extracts the business code of err, or "" when err is not a BusinessError
func Code(err error) string {
	var be *BusinessError
	if errors.As(err, &be) {
		return be.Code
	}
	return ""
}

// IsPrecondition reports whether err signals invalid engine input rather than a failure
func IsPrecondition(err error) bool {
	switch Code(err) {
	case ErrCodeInvalidAmount, ErrCodeInvalidInstallmentCount,
		ErrCodeUnknownAllocationStrategy, ErrCodeInvalidPaymentAmount:
		return true
	}
	return false
}

// Wrap common errors with business context
func WrapStudentNotFound(studentID string) *BusinessError {
	return NewBusinessError(
		ErrCodeStudentNotFound,
		fmt.Sprintf("Student with ID %s not found", studentID),
		ErrStudentNotFound,
	)
}

func WrapInvalidAmount(field string, amount string) *BusinessError {
	return NewBusinessError(
		ErrCodeInvalidAmount,
		fmt.Sprintf("%s must be a non-negative amount, got %s", field, amount),
		ErrInvalidAmount,
	)
}

func WrapInvalidInstallmentCount(count int) *BusinessError {
	return NewBusinessError(
		ErrCodeInvalidInstallmentCount,
		fmt.Sprintf("Installment count must be at least 1, got %d", count),
		ErrInvalidInstallmentCount,
	)
}

func WrapUnknownAllocationStrategy(strategy string) *BusinessError {
	return NewBusinessError(
		ErrCodeUnknownAllocationStrategy,
		fmt.Sprintf("Unknown allocation strategy %q", strategy),
		ErrUnknownAllocationStrategy,
	)
}

func WrapInvalidPaymentAmount(amount string) *BusinessError {
	return NewBusinessError(
		ErrCodeInvalidPaymentAmount,
		fmt.Sprintf("Invalid payment amount: %s", amount),
		ErrInvalidPaymentAmount,
	)
}

func WrapNoOutstandingBalance(studentID string) *BusinessError {
	return NewBusinessError(
		ErrCodeNoOutstandingBalance,
		fmt.Sprintf("Student with ID %s has no outstanding balance", studentID),
		ErrNoOutstandingBalance,
	)
}

func WrapDatabaseError(err error) *BusinessError {
	return NewBusinessError(
		ErrCodeDatabaseError,
		"database operation failed",
		err,
	)
}

func WrapCacheError(err error) *BusinessError {
	return NewBusinessError(
		ErrCodeCacheError,
		"Cache operation failed",
		err,
	)
}

func WrapNotificationError(recipient string, err error) *BusinessError {
	return NewBusinessError(
		ErrCodeNotificationError,
		fmt.Sprintf("Could not deliver reminder to %s", recipient),
		errors.Join(ErrNotificationDeliveryFailed, err),
	)
}
