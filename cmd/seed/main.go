// Command seed validates a dealer fixture and loads it into PostgreSQL.
// Without -file it uses the dealers embedded in the service binary.
//
// Usage:
//
//	go run ./cmd/seed -database-url postgres://localhost:5432/dealers
//	go run ./cmd/seed -file data/dealers.json -dry-run
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/couchcryptid/dealer-locator-service/internal/adapter/memory"
	"github.com/couchcryptid/dealer-locator-service/internal/adapter/postgres"
	"github.com/couchcryptid/dealer-locator-service/internal/domain"
	"github.com/joho/godotenv"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	_ = godotenv.Load()

	file := flag.String("file", "", "dealer JSON fixture (defaults to the embedded seed)")
	databaseURL := flag.String("database-url", os.Getenv("DATABASE_URL"), "PostgreSQL connection string")
	dryRun := flag.Bool("dry-run", false, "validate the fixture without writing to the database")
	flag.Parse()

	dealers, err := loadDealers(*file)
	if err != nil {
		return err
	}
	log.Printf("validated %d dealers", len(dealers))

	if *dryRun {
		return nil
	}
	if *databaseURL == "" {
		flag.Usage()
		return fmt.Errorf("missing -database-url or DATABASE_URL")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := postgres.NewPool(ctx, *databaseURL)
	if err != nil {
		return err
	}
	defer pool.Close()

	if err := postgres.Migrate(ctx, pool, slog.Default()); err != nil {
		return err
	}
	if err := postgres.NewDealerStore(pool).UpsertDealers(ctx, dealers); err != nil {
		return err
	}
	log.Printf("upserted %d dealers", len(dealers))
	return nil
}

func loadDealers(path string) ([]domain.Dealer, error) {
	if path == "" {
		return memory.SeedDealers()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	dealers, err := memory.ParseDealers(data)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return dealers, nil
}
