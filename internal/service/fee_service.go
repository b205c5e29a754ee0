package service

import (
	"context"
	"time"

	"github.com/segyhp/school-fee-engine/internal/config"
	"github.com/segyhp/school-fee-engine/internal/domain"
	"github.com/segyhp/school-fee-engine/internal/feecalc"
	"github.com/segyhp/school-fee-engine/internal/notifier"
	"github.com/segyhp/school-fee-engine/internal/repository"
	customError "github.com/segyhp/school-fee-engine/pkg/errors"
	"github.com/segyhp/school-fee-engine/pkg/utils"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Repositories groups the data sources the fee service reads and writes
type Repositories struct {
	Students      repository.StudentRepository
	FeeStructures repository.FeeStructureRepository
	Concessions   repository.ConcessionRepository
	Payments      repository.PaymentRepository
	Reminders     repository.ReminderRepository
	Collections   repository.CollectionRepository
}

type FeeService struct {
	repos    Repositories
	notifier notifier.Notifier
	redis    *redis.Client
	config   *config.Config
	logger   *zap.Logger
	now      func() time.Time
}

func NewFeeService(
	repos Repositories,
	notifier notifier.Notifier,
	redis *redis.Client,
	config *config.Config,
	logger *zap.Logger,
) *FeeService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FeeService{
		repos:    repos,
		notifier: notifier,
		redis:    redis,
		config:   config,
		logger:   logger,
		now:      time.Now,
	}
}

// FeeQuery carries the per request calculation switches. Nil fields fall back to the configured defaults.
type FeeQuery struct {
	AsOfDate              *time.Time
	CalculateLateFees     *bool
	ApplyDiscounts        *bool
	ApplyConcessions      *bool
	CalculateInstallments *bool
	GracePeriodDays       *int
}

// GetStudentFees calculates every fee of a student as of the query date
func (s *FeeService) GetStudentFees(ctx context.Context, studentID string, query FeeQuery) (*domain.StudentFeesResponse, error) {
	opts := s.options(query)

	key := feesCacheKey(studentID, opts)
	if cached, ok := s.cachedFees(ctx, key); ok {
		return cached, nil
	}

	fees, err := s.calculate(ctx, studentID, opts)
	if err != nil {
		return nil, err
	}

	result := &domain.StudentFeesResponse{
		StudentID: studentID,
		AsOfDate:  opts.AsOfDate,
		Fees:      fees,
	}
	s.cacheFees(ctx, key, result)

	return result, nil
}

// GetFeeSummary totals the student's fees as of the query date
func (s *FeeService) GetFeeSummary(ctx context.Context, studentID string, query FeeQuery) (*domain.StudentFeeSummary, error) {
	fees, err := s.GetStudentFees(ctx, studentID, query)
	if err != nil {
		return nil, err
	}

	summary := feecalc.SummarizeFees(fees.Fees)
	summary.StudentID = studentID
	summary.AsOfDate = fees.AsOfDate

	return &summary, nil
}

// PreviewInstallments builds a schedule without touching storage
func (s *FeeService) PreviewInstallments(request *domain.InstallmentPreviewRequest) (*domain.InstallmentDetails, error) {
	interval := request.IntervalDays
	if interval == 0 {
		interval = s.config.Business.InstallmentIntervalDays
	}

	asOf := s.today()
	if request.AsOfDate != nil {
		asOf = *request.AsOfDate
	}

	return feecalc.CalculateInstallments(
		request.TotalAmount,
		request.InstallmentCount,
		request.PaidAmount,
		request.StartDate,
		asOf,
		interval,
	)
}

// calculate loads the student's data and runs the engine, bypassing the cache
func (s *FeeService) calculate(ctx context.Context, studentID string, opts feecalc.Options) ([]domain.CalculatedFee, error) {
	exists, err := s.repos.Students.Exists(ctx, studentID)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}
	if !exists {
		return nil, customError.WrapStudentNotFound(studentID)
	}

	structures, err := s.repos.FeeStructures.GetByStudentID(ctx, studentID)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	payments, err := s.repos.Payments.GetByStudentID(ctx, studentID)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	var concessions []domain.StudentConcession
	if opts.ApplyConcessions {
		concessions, err = s.repos.Concessions.GetByStudentID(ctx, studentID)
		if err != nil {
			return nil, customError.WrapDatabaseError(err)
		}
	}

	fees, err := feecalc.CalculateStudentFees(structures, payments, opts, concessions)
	if err != nil {
		s.logger.Warn("Fee calculation rejected input",
			zap.String("student_id", studentID),
			zap.Error(err),
		)
		return nil, err
	}

	return fees, nil
}

func (s *FeeService) options(query FeeQuery) feecalc.Options {
	opts := feecalc.Options{
		CalculateLateFees:       true,
		ApplyDiscounts:          true,
		ApplyConcessions:        true,
		AsOfDate:                s.today(),
		GracePeriodDays:         s.config.Business.GracePeriodDays,
		InstallmentIntervalDays: s.config.Business.InstallmentIntervalDays,
	}

	if query.AsOfDate != nil {
		opts.AsOfDate = *query.AsOfDate
	}
	if query.CalculateLateFees != nil {
		opts.CalculateLateFees = *query.CalculateLateFees
	}
	if query.ApplyDiscounts != nil {
		opts.ApplyDiscounts = *query.ApplyDiscounts
	}
	if query.ApplyConcessions != nil {
		opts.ApplyConcessions = *query.ApplyConcessions
	}
	if query.CalculateInstallments != nil {
		opts.CalculateInstallments = *query.CalculateInstallments
	}
	if query.GracePeriodDays != nil {
		opts.GracePeriodDays = *query.GracePeriodDays
	}

	return opts
}

// today is the current calendar date in the school's timezone, at UTC midnight like stored due dates
func (s *FeeService) today() time.Time {
	local := utils.StartOfDay(s.now().In(s.config.GetLocation()))
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, time.UTC)
}
