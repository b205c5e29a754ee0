package platform

import (
	"context"
	"fmt"
	"time"

	"github.com/segyhp/school-fee-engine/internal/config"
	"github.com/segyhp/school-fee-engine/internal/notifier"
	"github.com/segyhp/school-fee-engine/internal/repository"
	"github.com/segyhp/school-fee-engine/internal/service"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Platform holds the shared connections both binaries run on
type Platform struct {
	DB         *sqlx.DB
	Redis      *redis.Client
	FeeService *service.FeeService
}

// Open connects to PostgreSQL and, when configured, Redis, then builds the fee service
func Open(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Platform, error) {
	db, err := sqlx.ConnectContext(ctx, "postgres", cfg.Database.URL)
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}
	db.SetMaxOpenConns(20)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)

	redisClient, err := openRedis(ctx, cfg, logger)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	repos := service.Repositories{
		Students:      repository.NewStudentRepository(db),
		FeeStructures: repository.NewFeeStructureRepository(db),
		Concessions:   repository.NewConcessionRepository(db),
		Payments:      repository.NewPaymentRepository(db),
		Reminders:     repository.NewReminderRepository(db),
		Collections:   repository.NewCollectionRepository(db),
	}

	feeService := service.NewFeeService(
		repos,
		notifier.New(cfg.Notification, logger),
		redisClient,
		cfg,
		logger,
	)

	return &Platform{DB: db, Redis: redisClient, FeeService: feeService}, nil
}

// openRedis returns nil when no Redis URL is configured, which disables caching
func openRedis(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*redis.Client, error) {
	if cfg.Redis.URL == "" {
		logger.Warn("REDIS_URL not set, fee cache disabled")
		return nil, nil
	}

	opts, err := redis.ParseURL(cfg.Redis.URL)
	if err != nil {
		return nil, fmt.Errorf("parsing REDIS_URL: %w", err)
	}
	if cfg.Redis.Password != "" {
		opts.Password = cfg.Redis.Password
	}

	client := redis.NewClient(opts)
	if err = client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("connecting to redis: %w", err)
	}

	return client, nil
}

// Close releases every connection
func (p *Platform) Close() {
	if p.Redis != nil {
		_ = p.Redis.Close()
	}
	_ = p.DB.Close()
}
