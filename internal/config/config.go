package config

import (
	"errors"
	"os"
	"strconv"
	"time"

	sharedcfg "github.com/couchcryptid/storm-data-shared/config"
)

const defaultGeocodeBaseURL = "https://maps.googleapis.com/maps/api/geocode/json"

// Config holds all service settings, populated from environment variables.
type Config struct {
	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	// Geocoding provider configuration.
	GeocodeAPIKey    string
	GeocodeBaseURL   string
	GeocodeTimeout   time.Duration
	GeocodeCacheSize int
	GeocodeRateLimit float64

	// Dealer store. An empty DatabaseURL serves the embedded seed dealers.
	DatabaseURL     string
	DatabaseMigrate bool

	// Lead publishing. No brokers means leads are only logged.
	KafkaBrokers    []string
	KafkaLeadsTopic string

	// Request bounds enforced at the HTTP layer.
	SearchMaxRadius float64
	SearchMaxLimit  int
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := sharedcfg.ParseShutdownTimeout()
	if err != nil {
		return nil, err
	}

	geocodeTimeout, err := time.ParseDuration(sharedcfg.EnvOrDefault("GEOCODE_TIMEOUT", "5s"))
	if err != nil || geocodeTimeout <= 0 {
		return nil, errors.New("invalid GEOCODE_TIMEOUT")
	}

	rateLimit, err := strconv.ParseFloat(sharedcfg.EnvOrDefault("GEOCODE_RATE_LIMIT", "10"), 64)
	if err != nil || rateLimit <= 0 {
		return nil, errors.New("invalid GEOCODE_RATE_LIMIT")
	}

	migrate, err := strconv.ParseBool(sharedcfg.EnvOrDefault("DATABASE_MIGRATE", "true"))
	if err != nil {
		return nil, errors.New("invalid DATABASE_MIGRATE")
	}

	maxRadius, err := strconv.ParseFloat(sharedcfg.EnvOrDefault("SEARCH_MAX_RADIUS", "100"), 64)
	if err != nil || maxRadius <= 0 {
		return nil, errors.New("invalid SEARCH_MAX_RADIUS")
	}

	maxLimit, err := strconv.Atoi(sharedcfg.EnvOrDefault("SEARCH_MAX_LIMIT", "20"))
	if err != nil || maxLimit <= 0 {
		return nil, errors.New("invalid SEARCH_MAX_LIMIT")
	}

	var brokers []string
	if v := os.Getenv("KAFKA_BROKERS"); v != "" {
		brokers = sharedcfg.ParseBrokers(v)
	}

	cfg := &Config{
		HTTPAddr:        sharedcfg.EnvOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:        sharedcfg.EnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:       sharedcfg.EnvOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,

		GeocodeAPIKey:    os.Getenv("GEOCODE_API_KEY"),
		GeocodeBaseURL:   sharedcfg.EnvOrDefault("GEOCODE_BASE_URL", defaultGeocodeBaseURL),
		GeocodeTimeout:   geocodeTimeout,
		GeocodeCacheSize: parseGeocodeCacheSize(),
		GeocodeRateLimit: rateLimit,

		DatabaseURL:     os.Getenv("DATABASE_URL"),
		DatabaseMigrate: migrate,

		KafkaBrokers:    brokers,
		KafkaLeadsTopic: sharedcfg.EnvOrDefault("KAFKA_LEADS_TOPIC", "dealer-leads"),

		SearchMaxRadius: maxRadius,
		SearchMaxLimit:  maxLimit,
	}

	if cfg.GeocodeAPIKey == "" {
		return nil, errors.New("GEOCODE_API_KEY is required")
	}
	if len(cfg.KafkaBrokers) > 0 && cfg.KafkaLeadsTopic == "" {
		return nil, errors.New("KAFKA_LEADS_TOPIC is required when KAFKA_BROKERS is set")
	}

	return cfg, nil
}

func parseGeocodeCacheSize() int {
	if s := os.Getenv("GEOCODE_CACHE_SIZE"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			return n
		}
	}
	return 1000
}
