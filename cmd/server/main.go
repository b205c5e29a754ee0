package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/segyhp/school-fee-engine/internal/config"
	"github.com/segyhp/school-fee-engine/internal/handler"
	"github.com/segyhp/school-fee-engine/internal/platform"
	"github.com/segyhp/school-fee-engine/pkg/logger"
	"github.com/segyhp/school-fee-engine/pkg/response"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	// Optional .env for local runs
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
	response.SetLogger(zl)

	startupCtx, cancelStartup := context.WithTimeout(context.Background(), 30*time.Second)
	p, err := platform.Open(startupCtx, cfg, zl)
	cancelStartup()
	if err != nil {
		zl.Fatal("Failed to initialize platform", zap.Error(err))
	}
	defer p.Close()

	feeHandler := handler.NewFeeHandler(p.FeeService, zl)
	healthHandler := handler.NewHealthHandler(p.DB, p.Redis, cfg.GetHealthTimeout())

	server := &http.Server{
		Addr:         cfg.Server.Host + ":" + cfg.Server.Port,
		Handler:      handler.NewRouter(feeHandler, healthHandler, zl),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		zl.Info("Server starting", zap.String("addr", server.Addr), zap.String("env", cfg.Server.Env))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zl.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	zl.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		zl.Error("Server forced to shutdown", zap.Error(err))
	}

	zl.Info("Server exited")
}
