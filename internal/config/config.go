package config

import (
	"fmt"
	"time"
	_ "time/tzdata"

	"github.com/segyhp/school-fee-engine/internal/domain"
	"github.com/segyhp/school-fee-engine/internal/feecalc"

	"github.com/robfig/cron/v3"
	"github.com/spf13/viper"
)

// Config holds all configuration for our application
type Config struct {
	Server       ServerConfig
	Database     DatabaseConfig
	Redis        RedisConfig
	Scheduler    SchedulerConfig
	Logging      LoggingConfig
	Business     BusinessConfig
	Notification NotificationConfig
	Health       HealthConfig
}

type ServerConfig struct {
	Port string
	Host string
	Env  string
}

type DatabaseConfig struct {
	URL string
}

type RedisConfig struct {
	URL      string
	Password string
	CacheTTL string
}

type SchedulerConfig struct {
	ReminderSchedule   string
	ProjectionSchedule string
	Timezone           string
}

type LoggingConfig struct {
	Level  string
	Format string
}

type BusinessConfig struct {
	GracePeriodDays           int
	FirstReminderDays         int
	SecondReminderDays        int
	FinalReminderDays         int
	InstallmentIntervalDays   int
	DefaultAllocationStrategy string
}

type NotificationConfig struct {
	Provider       string
	SendgridAPIKey string
	FromEmail      string
	FromName       string
}

type HealthConfig struct {
	Timeout string
}

// Load reads configuration from environment variables and an optional .env file
func Load() (*Config, error) {
	v := viper.New()

	v.SetDefault("SERVER_PORT", "8080")
	v.SetDefault("SERVER_HOST", "0.0.0.0")
	v.SetDefault("ENV", "development")
	v.SetDefault("REDIS_CACHE_TTL", "10m")
	v.SetDefault("REMINDER_SCHEDULE", "0 8 * * *")
	v.SetDefault("PROJECTION_SCHEDULE", "0 20 * * *")
	v.SetDefault("SCHEDULER_TIMEZONE", "Asia/Kolkata")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
	v.SetDefault("GRACE_PERIOD_DAYS", 0)
	v.SetDefault("FIRST_REMINDER_DAYS", 7)
	v.SetDefault("SECOND_REMINDER_DAYS", 15)
	v.SetDefault("FINAL_REMINDER_DAYS", 30)
	v.SetDefault("INSTALLMENT_INTERVAL_DAYS", feecalc.DefaultInstallmentIntervalDays)
	v.SetDefault("DEFAULT_ALLOCATION_STRATEGY", string(domain.AllocationOldestFirst))
	v.SetDefault("NOTIFICATION_PROVIDER", "log")
	v.SetDefault("NOTIFICATION_FROM_EMAIL", "accounts@school.local")
	v.SetDefault("NOTIFICATION_FROM_NAME", "School Accounts")
	v.SetDefault("HEALTH_CHECK_TIMEOUT", "5s")

	v.AutomaticEnv()

	// Don't fail if .env file doesn't exist
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	v.AddConfigPath("./deployments")
	_ = v.ReadInConfig()

	config := fromViper(v)

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

func fromViper(v *viper.Viper) *Config {
	return &Config{
		Server: ServerConfig{
			Port: v.GetString("SERVER_PORT"),
			Host: v.GetString("SERVER_HOST"),
			Env:  v.GetString("ENV"),
		},
		Database: DatabaseConfig{
			URL: v.GetString("DATABASE_URL"),
		},
		Redis: RedisConfig{
			URL:      v.GetString("REDIS_URL"),
			Password: v.GetString("REDIS_PASSWORD"),
			CacheTTL: v.GetString("REDIS_CACHE_TTL"),
		},
		Scheduler: SchedulerConfig{
			ReminderSchedule:   v.GetString("REMINDER_SCHEDULE"),
			ProjectionSchedule: v.GetString("PROJECTION_SCHEDULE"),
			Timezone:           v.GetString("SCHEDULER_TIMEZONE"),
		},
		Logging: LoggingConfig{
			Level:  v.GetString("LOG_LEVEL"),
			Format: v.GetString("LOG_FORMAT"),
		},
		Business: BusinessConfig{
			GracePeriodDays:           v.GetInt("GRACE_PERIOD_DAYS"),
			FirstReminderDays:         v.GetInt("FIRST_REMINDER_DAYS"),
			SecondReminderDays:        v.GetInt("SECOND_REMINDER_DAYS"),
			FinalReminderDays:         v.GetInt("FINAL_REMINDER_DAYS"),
			InstallmentIntervalDays:   v.GetInt("INSTALLMENT_INTERVAL_DAYS"),
			DefaultAllocationStrategy: v.GetString("DEFAULT_ALLOCATION_STRATEGY"),
		},
		Notification: NotificationConfig{
			Provider:       v.GetString("NOTIFICATION_PROVIDER"),
			SendgridAPIKey: v.GetString("SENDGRID_API_KEY"),
			FromEmail:      v.GetString("NOTIFICATION_FROM_EMAIL"),
			FromName:       v.GetString("NOTIFICATION_FROM_NAME"),
		},
		Health: HealthConfig{
			Timeout: v.GetString("HEALTH_CHECK_TIMEOUT"),
		},
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("SERVER_PORT is required")
	}

	if c.Database.URL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}

	if c.Business.GracePeriodDays < 0 {
		return fmt.Errorf("GRACE_PERIOD_DAYS must not be negative")
	}

	b := c.Business
	if b.FirstReminderDays <= 0 || b.SecondReminderDays <= 0 || b.FinalReminderDays <= 0 {
		return fmt.Errorf("reminder thresholds must be greater than 0")
	}
	if b.FirstReminderDays >= b.SecondReminderDays || b.SecondReminderDays >= b.FinalReminderDays {
		return fmt.Errorf("reminder thresholds must be increasing: first < second < final")
	}

	if b.InstallmentIntervalDays <= 0 {
		return fmt.Errorf("INSTALLMENT_INTERVAL_DAYS must be greater than 0")
	}

	if !domain.AllocationStrategy(b.DefaultAllocationStrategy).IsValid() {
		return fmt.Errorf("DEFAULT_ALLOCATION_STRATEGY %q is not supported", b.DefaultAllocationStrategy)
	}

	switch c.Notification.Provider {
	case "log":
	case "sendgrid":
		if c.Notification.SendgridAPIKey == "" {
			return fmt.Errorf("SENDGRID_API_KEY is required for the sendgrid provider")
		}
	default:
		return fmt.Errorf("NOTIFICATION_PROVIDER %q is not supported", c.Notification.Provider)
	}

	if _, err := time.ParseDuration(c.Redis.CacheTTL); err != nil {
		return fmt.Errorf("REDIS_CACHE_TTL must be a valid duration: %w", err)
	}

	if _, err := time.ParseDuration(c.Health.Timeout); err != nil {
		return fmt.Errorf("HEALTH_CHECK_TIMEOUT must be a valid duration: %w", err)
	}

	if _, err := time.LoadLocation(c.Scheduler.Timezone); err != nil {
		return fmt.Errorf("SCHEDULER_TIMEZONE is invalid: %w", err)
	}

	parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)
	for name, expr := range map[string]string{
		"REMINDER_SCHEDULE":   c.Scheduler.ReminderSchedule,
		"PROJECTION_SCHEDULE": c.Scheduler.ProjectionSchedule,
	} {
		if _, err := parser.Parse(expr); err != nil {
			return fmt.Errorf("%s must be a valid cron expression: %w", name, err)
		}
	}

	return nil
}

// IsDevelopment returns true if running in development environment
func (c *Config) IsDevelopment() bool {
	return c.Server.Env == "development" || c.Server.Env == "dev"
}

// IsProduction returns true if running in production environment
func (c *Config) IsProduction() bool {
	return c.Server.Env == "production" || c.Server.Env == "prod"
}

// GetCacheTTL returns the calculated-fee cache TTL as duration
func (c *Config) GetCacheTTL() time.Duration {
	ttl, _ := time.ParseDuration(c.Redis.CacheTTL)
	return ttl
}

// GetHealthTimeout returns the health check timeout as duration
func (c *Config) GetHealthTimeout() time.Duration {
	timeout, _ := time.ParseDuration(c.Health.Timeout)
	return timeout
}

// GetLocation returns the scheduler timezone
func (c *Config) GetLocation() *time.Location {
	loc, err := time.LoadLocation(c.Scheduler.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// ReminderConfig returns the reminder tier thresholds
func (c *Config) ReminderConfig() feecalc.ReminderConfig {
	return feecalc.ReminderConfig{
		FirstReminderDays:  c.Business.FirstReminderDays,
		SecondReminderDays: c.Business.SecondReminderDays,
		FinalReminderDays:  c.Business.FinalReminderDays,
	}
}
