package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/segyhp/school-fee-engine/internal/domain"
	"github.com/segyhp/school-fee-engine/internal/feecalc"
	customError "github.com/segyhp/school-fee-engine/pkg/errors"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const feesCachePrefix = "fees"

func feesCacheKey(studentID string, opts feecalc.Options) string {
	return fmt.Sprintf("%s:%s:%s:l%t:d%t:c%t:i%t:g%d:n%d",
		feesCachePrefix,
		studentID,
		opts.AsOfDate.UTC().Format("20060102T150405"),
		opts.CalculateLateFees,
		opts.ApplyDiscounts,
		opts.ApplyConcessions,
		opts.CalculateInstallments,
		opts.GracePeriodDays,
		opts.InstallmentIntervalDays,
	)
}

func studentCachePattern(studentID string) string {
	return fmt.Sprintf("%s:%s:*", feesCachePrefix, studentID)
}

// cachedFees never fails the request: a broken cache only costs a recalculation
func (s *FeeService) cachedFees(ctx context.Context, key string) (*domain.StudentFeesResponse, bool) {
	if s.redis == nil {
		return nil, false
	}

	raw, err := s.redis.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			s.logger.Warn("Reading fee cache failed", zap.String("key", key), zap.Error(customError.WrapCacheError(err)))
		}
		return nil, false
	}

	var cached domain.StudentFeesResponse
	if err = json.Unmarshal(raw, &cached); err != nil {
		s.logger.Warn("Discarding unreadable fee cache entry", zap.String("key", key), zap.Error(err))
		return nil, false
	}

	return &cached, true
}

func (s *FeeService) cacheFees(ctx context.Context, key string, fees *domain.StudentFeesResponse) {
	if s.redis == nil {
		return
	}

	raw, err := json.Marshal(fees)
	if err != nil {
		s.logger.Warn("Encoding fee cache entry failed", zap.String("key", key), zap.Error(err))
		return
	}

	if err = s.redis.Set(ctx, key, raw, s.config.GetCacheTTL()).Err(); err != nil {
		s.logger.Warn("Writing fee cache failed", zap.String("key", key), zap.Error(customError.WrapCacheError(err)))
	}
}

// invalidateStudent drops every cached calculation of the student
func (s *FeeService) invalidateStudent(ctx context.Context, studentID string) {
	if s.redis == nil {
		return
	}

	iter := s.redis.Scan(ctx, 0, studentCachePattern(studentID), 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		s.logger.Warn("Scanning fee cache failed", zap.String("student_id", studentID), zap.Error(customError.WrapCacheError(err)))
		return
	}

	if len(keys) == 0 {
		return
	}
	if err := s.redis.Del(ctx, keys...).Err(); err != nil {
		s.logger.Warn("Invalidating fee cache failed", zap.String("student_id", studentID), zap.Error(customError.WrapCacheError(err)))
	}
}
