// Command dedupe removes duplicate invoices that share an invoice number,
// keeping the first one ingested.
// Usage: go run ./cmd/dedupe
package main

import (
	"context"
	"fmt"
	"log"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"findash/internal/config"
	"findash/internal/ingest"
	"findash/internal/logger"
	"findash/internal/repository/sqlite"
	"findash/internal/service"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	zl, err := logger.New(cfg.Log)
	if err != nil {
		return fmt.Errorf("building logger: %w", err)
	}
	defer func() { _ = zl.Sync() }()

	db, err := sqlite.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer func() { _ = db.Close() }()

	svc := service.NewMaintenanceService(sqlite.NewMaintenanceRepo(db), ingest.NewReader(nil))
	result, err := svc.Dedupe(context.Background())
	if err != nil {
		return fmt.Errorf("deduplicating invoices: %w", err)
	}

	zl.Info("dedupe complete",
		zap.Int64("invoices_removed", result.InvoicesRemoved),
		zap.Int64("line_items_removed", result.LineItemsRemoved),
	)
	return nil
}
