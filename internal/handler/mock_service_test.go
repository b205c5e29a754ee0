package handler

import (
	"context"
	"time"

	"github.com/segyhp/school-fee-engine/internal/domain"
	"github.com/segyhp/school-fee-engine/internal/service"

	"github.com/stretchr/testify/mock"
)

type MockFeeService struct {
	mock.Mock
}

var _ FeeService = (*MockFeeService)(nil)

func (m *MockFeeService) GetStudentFees(ctx context.Context, studentID string, query service.FeeQuery) (*domain.StudentFeesResponse, error) {
	args := m.Called(ctx, studentID, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.StudentFeesResponse), args.Error(1)
}

func (m *MockFeeService) GetFeeSummary(ctx context.Context, studentID string, query service.FeeQuery) (*domain.StudentFeeSummary, error) {
	args := m.Called(ctx, studentID, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.StudentFeeSummary), args.Error(1)
}

func (m *MockFeeService) PreviewPayment(ctx context.Context, studentID string, request *domain.MakePaymentRequest) (*domain.MakePaymentResponse, error) {
	args := m.Called(ctx, studentID, request)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MakePaymentResponse), args.Error(1)
}

func (m *MockFeeService) MakePayment(ctx context.Context, studentID string, request *domain.MakePaymentRequest) (*domain.MakePaymentResponse, error) {
	args := m.Called(ctx, studentID, request)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MakePaymentResponse), args.Error(1)
}

func (m *MockFeeService) GetReminders(ctx context.Context, studentID string, asOf *time.Time) ([]domain.FeeReminder, error) {
	args := m.Called(ctx, studentID, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.FeeReminder), args.Error(1)
}

func (m *MockFeeService) GetReminderHistory(ctx context.Context, studentID string, limit int) ([]domain.FeeReminder, error) {
	args := m.Called(ctx, studentID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.FeeReminder), args.Error(1)
}

func (m *MockFeeService) GetCollectionProjection(ctx context.Context, month string, asOf *time.Time) (*domain.CollectionProjection, error) {
	args := m.Called(ctx, month, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CollectionProjection), args.Error(1)
}

func (m *MockFeeService) PreviewInstallments(request *domain.InstallmentPreviewRequest) (*domain.InstallmentDetails, error) {
	args := m.Called(request)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.InstallmentDetails), args.Error(1)
}
