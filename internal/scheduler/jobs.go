package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/segyhp/school-fee-engine/internal/config"
	"github.com/segyhp/school-fee-engine/internal/domain"
	"github.com/segyhp/school-fee-engine/internal/service"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// jobTimeout bounds a single run so a stuck database cannot pile up runs
const jobTimeout = 30 * time.Minute

// FeeJobs is the part of the fee service the scheduled jobs drive
type FeeJobs interface {
	RunReminderSweep(ctx context.Context, asOf time.Time) (*service.SweepResult, error)
	GetCollectionProjection(ctx context.Context, month string, asOf *time.Time) (*domain.CollectionProjection, error)
}

// New builds a cron runner in the school's timezone that never overlaps runs of the same job
func New(cfg *config.Config, logger *zap.Logger) *cron.Cron {
	cronLogger := zapCronLogger{logger: logger.Sugar()}
	return cron.New(
		cron.WithLocation(cfg.GetLocation()),
		cron.WithLogger(cronLogger),
		cron.WithChain(cron.Recover(cronLogger), cron.SkipIfStillRunning(cronLogger)),
	)
}

// Register schedules the reminder sweep and the collection projection log
func Register(c *cron.Cron, jobs FeeJobs, cfg *config.Config, logger *zap.Logger) error {
	if _, err := c.AddFunc(cfg.Scheduler.ReminderSchedule, func() {
		RunReminderSweep(context.Background(), jobs, cfg.GetLocation(), logger)
	}); err != nil {
		return fmt.Errorf("scheduling reminder sweep: %w", err)
	}

	if _, err := c.AddFunc(cfg.Scheduler.ProjectionSchedule, func() {
		LogCollectionProjection(context.Background(), jobs, logger)
	}); err != nil {
		return fmt.Errorf("scheduling collection projection: %w", err)
	}

	logger.Info("Cron jobs scheduled",
		zap.String("reminders", cfg.Scheduler.ReminderSchedule),
		zap.String("projection", cfg.Scheduler.ProjectionSchedule),
		zap.String("timezone", cfg.Scheduler.Timezone),
	)
	return nil
}

// RunReminderSweep runs one sweep as of today's date in loc
func RunReminderSweep(ctx context.Context, jobs FeeJobs, loc *time.Location, logger *zap.Logger) {
	ctx, cancel := context.WithTimeout(ctx, jobTimeout)
	defer cancel()

	now := time.Now().In(loc)
	asOf := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	logger.Info("Running reminder sweep", zap.Time("as_of", asOf))
	if _, err := jobs.RunReminderSweep(ctx, asOf); err != nil {
		logger.Error("Reminder sweep failed", zap.Error(err))
	}
}

// LogCollectionProjection logs the current month's projection
func LogCollectionProjection(ctx context.Context, jobs FeeJobs, logger *zap.Logger) {
	ctx, cancel := context.WithTimeout(ctx, jobTimeout)
	defer cancel()

	projection, err := jobs.GetCollectionProjection(ctx, "", nil)
	if err != nil {
		logger.Error("Collection projection failed", zap.Error(err))
		return
	}

	fields := []zap.Field{
		zap.String("month", projection.Month),
		zap.String("expected", projection.TotalExpected.String()),
		zap.String("collected", projection.CollectedSoFar.String()),
		zap.String("projected", projection.ProjectedTotal.String()),
		zap.String("collection_rate", projection.CollectionRate.String()),
		zap.Int("days_passed", projection.DaysPassed),
	}
	if projection.OnTrack {
		logger.Info("Collection on track", fields...)
	} else {
		logger.Warn("Collection behind target", fields...)
	}
}

type zapCronLogger struct {
	logger *zap.SugaredLogger
}

func (l zapCronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Debugw(msg, keysAndValues...)
}

func (l zapCronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.logger.Errorw(msg, append(keysAndValues, "error", err)...)
}
