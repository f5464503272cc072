// Command ingest loads an exported JSON array of extraction documents into
// the SQLite database. The source may be a local path or an s3:// URI.
// Usage: go run ./cmd/ingest [-file path|s3://bucket/key] [-init-only]
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"findash/internal/config"
	"findash/internal/ingest"
	"findash/internal/logger"
	"findash/internal/port"
	"findash/internal/repository/sqlite"
	s3storage "findash/internal/storage/s3"
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

	source := flag.String("file", cfg.Ingest.Source, "JSON export to ingest (local path or s3://bucket/key)")
	initOnly := flag.Bool("init-only", false, "create the schema and exit")
	flag.Parse()

	zl, err := logger.New(cfg.Log)
	if err != nil {
		return fmt.Errorf("building logger: %w", err)
	}
	defer func() { _ = zl.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := sqlite.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer func() { _ = db.Close() }()

	if err := sqlite.EnsureSchema(ctx, db); err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}
	zl.Info("schema ready", zap.String("db", cfg.DB.Path))
	if *initOnly {
		return nil
	}

	var storage port.ObjectStorage
	if ingest.IsS3URI(*source) {
		storage, err = s3storage.NewS3Client(ctx, &cfg.S3)
		if err != nil {
			return fmt.Errorf("initializing S3 client: %w", err)
		}
	}

	normalizer := ingest.NewNormalizer(ingest.NewReader(storage), sqlite.NewIngestStore(db), zl)
	report, err := normalizer.Run(ctx, *source)
	if err != nil {
		return fmt.Errorf("ingesting %s: %w", *source, err)
	}

	for _, s := range report.Skipped {
		fmt.Printf("skipped #%d (%s): %s\n", s.Index, s.DocumentID, s.Reason)
	}
	fmt.Printf("processed %d of %d documents\n", report.Processed, report.Total)
	return nil
}
