package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/segyhp/school-fee-engine/internal/config"
	"github.com/segyhp/school-fee-engine/internal/platform"
	"github.com/segyhp/school-fee-engine/internal/scheduler"
	"github.com/segyhp/school-fee-engine/pkg/logger"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	once := flag.Bool("once", false, "run the reminder sweep and projection once, then exit")
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	zl, err := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer zl.Sync()

	startupCtx, cancelStartup := context.WithTimeout(context.Background(), 30*time.Second)
	p, err := platform.Open(startupCtx, cfg, zl)
	cancelStartup()
	if err != nil {
		zl.Fatal("Failed to initialize platform", zap.Error(err))
	}
	defer p.Close()

	if *once {
		scheduler.RunReminderSweep(context.Background(), p.FeeService, cfg.GetLocation(), zl)
		scheduler.LogCollectionProjection(context.Background(), p.FeeService, zl)
		return
	}

	c := scheduler.New(cfg, zl)
	if err = scheduler.Register(c, p.FeeService, cfg, zl); err != nil {
		zl.Fatal("Failed to schedule jobs", zap.Error(err))
	}

	c.Start()
	zl.Info("Scheduler started")

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zl.Info("Shutting down scheduler...")
	<-c.Stop().Done()
	zl.Info("Scheduler stopped")
}
