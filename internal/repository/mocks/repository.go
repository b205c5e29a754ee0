package mocks

import (
	"context"
	"time"

	"github.com/segyhp/school-fee-engine/internal/domain"
	"github.com/segyhp/school-fee-engine/internal/repository"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

var (
	_ repository.StudentRepository      = (*MockStudentRepository)(nil)
	_ repository.FeeStructureRepository = (*MockFeeStructureRepository)(nil)
	_ repository.ConcessionRepository   = (*MockConcessionRepository)(nil)
	_ repository.PaymentRepository      = (*MockPaymentRepository)(nil)
	_ repository.ReminderRepository     = (*MockReminderRepository)(nil)
	_ repository.CollectionRepository   = (*MockCollectionRepository)(nil)
)

type MockStudentRepository struct {
	mock.Mock
}

func (m *MockStudentRepository) Exists(ctx context.Context, studentID string) (bool, error) {
	args := m.Called(ctx, studentID)
	return args.Bool(0), args.Error(1)
}

func (m *MockStudentRepository) GetContact(ctx context.Context, studentID string) (*domain.StudentContact, error) {
	args := m.Called(ctx, studentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.StudentContact), args.Error(1)
}

func (m *MockStudentRepository) ListWithFeeStructures(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

type MockFeeStructureRepository struct {
	mock.Mock
}

func (m *MockFeeStructureRepository) GetByStudentID(ctx context.Context, studentID string) ([]domain.FeeStructure, error) {
	args := m.Called(ctx, studentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.FeeStructure), args.Error(1)
}

type MockConcessionRepository struct {
	mock.Mock
}

func (m *MockConcessionRepository) GetByStudentID(ctx context.Context, studentID string) ([]domain.StudentConcession, error) {
	args := m.Called(ctx, studentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.StudentConcession), args.Error(1)
}

type MockPaymentRepository struct {
	mock.Mock
}

func (m *MockPaymentRepository) GetByStudentID(ctx context.Context, studentID string) ([]domain.PaymentRecord, error) {
	args := m.Called(ctx, studentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PaymentRecord), args.Error(1)
}

func (m *MockPaymentRepository) CreateBatch(ctx context.Context, payments []*domain.PaymentRecord) error {
	args := m.Called(ctx, payments)
	return args.Error(0)
}

type MockReminderRepository struct {
	mock.Mock
}

func (m *MockReminderRepository) CreateBatch(ctx context.Context, reminders []domain.FeeReminder) error {
	args := m.Called(ctx, reminders)
	return args.Error(0)
}

func (m *MockReminderRepository) GetByStudentID(ctx context.Context, studentID string, limit int) ([]domain.FeeReminder, error) {
	args := m.Called(ctx, studentID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.FeeReminder), args.Error(1)
}

type MockCollectionRepository struct {
	mock.Mock
}

func (m *MockCollectionRepository) GetExpectedTotal(ctx context.Context, from, to time.Time) (decimal.Decimal, error) {
	args := m.Called(ctx, from, to)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockCollectionRepository) GetCollectedTotal(ctx context.Context, from, to time.Time) (decimal.Decimal, error) {
	args := m.Called(ctx, from, to)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}
