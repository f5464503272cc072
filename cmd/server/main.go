package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"findash/internal/config"
	"findash/internal/generator"
	"findash/internal/generator/rules"
	"findash/internal/handler"
	"findash/internal/logger"
	"findash/internal/repository/sqlite"
	"findash/internal/router"
	"findash/internal/service"

	// SQL generator providers register themselves with the factory.
	_ "findash/internal/generator/claude"
	_ "findash/internal/generator/gemini"
	_ "findash/internal/generator/openai"
	_ "findash/internal/generator/vanna"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	zl, err := logger.New(cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	defer func() { _ = zl.Sync() }()

	db, err := sqlite.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() { _ = db.Close() }()

	if err := sqlite.EnsureSchema(context.Background(), db); err != nil {
		return fmt.Errorf("failed to initialize schema: %w", err)
	}

	// Initialize generators
	sqlGen, err := generator.NewFromConfig(&cfg.Generator, zl)
	if err != nil {
		return fmt.Errorf("failed to initialize sql generator: %w", err)
	}

	// Initialize repositories and services
	executor := sqlite.NewQueryExecutor(db)
	querySvc := service.NewQueryService(sqlGen, executor)
	chatSvc := service.NewQueryService(rules.NewGenerator(), executor)
	dashboardSvc := service.NewDashboardService(sqlite.NewDashboardRepo(db))

	// Initialize handlers
	queryH := handler.NewQueryHandler(querySvc, chatSvc, zl)
	dashboardH := handler.NewDashboardHandler(dashboardSvc, zl)
	healthH := handler.NewHealthHandler(db)

	r := router.Setup(zl, cfg.CORS.AllowedOrigins, queryH, dashboardH, healthH)

	srv := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		zl.Info("server starting",
			zap.String("addr", cfg.Server.Port),
			zap.String("environment", cfg.Server.Environment),
			zap.String("generator", cfg.Generator.Primary.Provider),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
	case sig := <-quit:
		zl.Info("shutting down", zap.String("signal", sig.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	return nil
}
