package service

import (
	"context"
	"time"

	"github.com/segyhp/school-fee-engine/internal/domain"
	"github.com/segyhp/school-fee-engine/internal/feecalc"
	customError "github.com/segyhp/school-fee-engine/pkg/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// PreviewPayment shows how a payment would be spread over the student's dues without recording it
func (s *FeeService) PreviewPayment(ctx context.Context, studentID string, request *domain.MakePaymentRequest) (*domain.MakePaymentResponse, error) {
	if !request.Amount.IsPositive() {
		return nil, customError.WrapInvalidPaymentAmount(request.Amount.String())
	}

	strategy := request.Strategy
	if strategy == "" {
		strategy = domain.AllocationStrategy(s.config.Business.DefaultAllocationStrategy)
	}

	opts := s.options(FeeQuery{AsOfDate: request.PaymentDate})
	fees, err := s.calculate(ctx, studentID, opts)
	if err != nil {
		return nil, err
	}

	outstanding := make([]domain.OutstandingFee, 0, len(fees))
	for _, fee := range fees {
		if fee.OutstandingAmount.IsPositive() {
			outstanding = append(outstanding, fee.Outstanding())
		}
	}
	if len(outstanding) == 0 {
		return nil, customError.WrapNoOutstandingBalance(studentID)
	}

	allocations, err := feecalc.AllocatePayment(request.Amount, outstanding, strategy)
	if err != nil {
		return nil, err
	}

	return &domain.MakePaymentResponse{
		StudentID:   studentID,
		Strategy:    strategy,
		Allocations: allocations,
		Unallocated: feecalc.UnallocatedAmount(request.Amount, allocations),
	}, nil
}

// MakePayment allocates a payment and records one payment row per funded fee head
func (s *FeeService) MakePayment(ctx context.Context, studentID string, request *domain.MakePaymentRequest) (*domain.MakePaymentResponse, error) {
	result, err := s.PreviewPayment(ctx, studentID, request)
	if err != nil {
		return nil, err
	}

	now := s.now()
	paymentDate := paymentDateOrNow(request.PaymentDate, now)

	payments := make([]*domain.PaymentRecord, 0, len(result.Allocations))
	for _, allocation := range result.Allocations {
		payments = append(payments, &domain.PaymentRecord{
			ID:          uuid.New(),
			StudentID:   studentID,
			FeeHeadID:   allocation.FeeHeadID,
			Amount:      allocation.AllocatedAmount,
			PaymentDate: paymentDate,
			PaymentMode: request.PaymentMode,
			Reference:   request.Reference,
			CreatedAt:   now,
		})
	}

	if err = s.repos.Payments.CreateBatch(ctx, payments); err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	s.invalidateStudent(ctx, studentID)

	s.logger.Info("Payment recorded",
		zap.String("student_id", studentID),
		zap.String("amount", request.Amount.String()),
		zap.String("strategy", string(result.Strategy)),
		zap.Int("fee_heads", len(payments)),
		zap.String("unallocated", result.Unallocated.String()),
	)

	result.Payments = payments
	return result, nil
}

func paymentDateOrNow(date *time.Time, now time.Time) time.Time {
	if date != nil {
		return *date
	}
	return now
}
