// Command inspect prints the size of a JSON export and a summary of what has
// been loaded into the database.
// Usage: go run ./cmd/inspect [-file path|s3://bucket/key]
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"

	"findash/internal/config"
	"findash/internal/ingest"
	"findash/internal/port"
	"findash/internal/repository/sqlite"
	"findash/internal/service"
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

	source := flag.String("file", cfg.Ingest.Source, "JSON export to count (empty to skip)")
	flag.Parse()

	ctx := context.Background()

	db, err := sqlite.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer func() { _ = db.Close() }()

	if err := sqlite.EnsureSchema(ctx, db); err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}

	var storage port.ObjectStorage
	if ingest.IsS3URI(*source) {
		storage, err = s3storage.NewS3Client(ctx, &cfg.S3)
		if err != nil {
			return fmt.Errorf("initializing S3 client: %w", err)
		}
	}

	svc := service.NewMaintenanceService(sqlite.NewMaintenanceRepo(db), ingest.NewReader(storage))
	report, err := svc.Inspect(ctx, *source)
	if err != nil {
		return fmt.Errorf("inspecting: %w", err)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}
