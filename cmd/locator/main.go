package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/couchcryptid/dealer-locator-service/internal/adapter/googlemaps"
	httpadapter "github.com/couchcryptid/dealer-locator-service/internal/adapter/http"
	kafkaadapter "github.com/couchcryptid/dealer-locator-service/internal/adapter/kafka"
	"github.com/couchcryptid/dealer-locator-service/internal/adapter/memory"
	"github.com/couchcryptid/dealer-locator-service/internal/adapter/postgres"
	"github.com/couchcryptid/dealer-locator-service/internal/config"
	"github.com/couchcryptid/dealer-locator-service/internal/domain"
	"github.com/couchcryptid/dealer-locator-service/internal/leads"
	"github.com/couchcryptid/dealer-locator-service/internal/observability"
	"github.com/couchcryptid/dealer-locator-service/internal/proximity"
	"github.com/couchcryptid/dealer-locator-service/internal/resolver"
	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
	"github.com/joho/godotenv"
)

func main() {
	// A missing .env file is fine; the environment wins either way.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := sharedobs.NewLogger(cfg.LogLevel, cfg.LogFormat)
	metrics := observability.NewMetrics()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	dealers, closeDealers, err := openDealerSource(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to open dealer source", "error", err)
		os.Exit(1)
	}
	defer closeDealers()

	client := googlemaps.NewClient(cfg.GeocodeAPIKey, cfg.GeocodeBaseURL, cfg.GeocodeTimeout, cfg.GeocodeRateLimit, metrics, logger)
	res := resolver.New(client, cfg.GeocodeCacheSize, metrics, logger)
	logger.Info("geocoding configured",
		"cache_size", cfg.GeocodeCacheSize,
		"timeout", cfg.GeocodeTimeout,
		"rate_limit", cfg.GeocodeRateLimit,
	)

	var publisher domain.LeadPublisher
	var leadWriter *kafkaadapter.LeadWriter
	if len(cfg.KafkaBrokers) > 0 {
		leadWriter = kafkaadapter.NewLeadWriter(cfg, logger)
		publisher = leadWriter
		logger.Info("publishing leads to kafka", "brokers", cfg.KafkaBrokers, "topic", cfg.KafkaLeadsTopic)
	} else {
		publisher = leads.NewLogPublisher(logger)
		logger.Info("kafka disabled, leads are logged only")
	}

	search := proximity.NewService(res, dealers, metrics, logger)
	leadSvc := leads.NewService(publisher, metrics, logger)

	limits := httpadapter.Limits{MaxRadius: cfg.SearchMaxRadius, MaxLimit: cfg.SearchMaxLimit}
	srv := httpadapter.NewServer(cfg.HTTPAddr, search, search, leadSvc, limits, logger)

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if leadWriter != nil {
		if err := leadWriter.Close(); err != nil {
			logger.Error("kafka writer close error", "error", err)
		}
	}

	logger.Info("shutdown complete")
}

// openDealerSource connects to PostgreSQL when DATABASE_URL is set and falls
// back to the embedded seed dealers otherwise.
func openDealerSource(ctx context.Context, cfg *config.Config, logger *slog.Logger) (domain.DealerSource, func(), error) {
	if cfg.DatabaseURL == "" {
		seed, err := memory.SeedDealers()
		if err != nil {
			return nil, nil, err
		}
		logger.Info("serving embedded seed dealers", "count", len(seed))
		return memory.NewDealerStore(seed), func() {}, nil
	}

	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, nil, err
	}
	if cfg.DatabaseMigrate {
		if err := postgres.Migrate(ctx, pool, logger); err != nil {
			pool.Close()
			return nil, nil, err
		}
	}
	logger.Info("serving dealers from postgres")
	return postgres.NewDealerStore(pool), pool.Close, nil
}
