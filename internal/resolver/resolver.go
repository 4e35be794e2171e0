// Package resolver turns postal codes into coordinates through a geocoding
// provider and keeps the answers in a bounded in-process cache.
package resolver

import (
	"context"
	"log/slog"

	"github.com/couchcryptid/dealer-locator-service/internal/domain"
	"github.com/couchcryptid/dealer-locator-service/internal/observability"
	"golang.org/x/sync/singleflight"
)

// DefaultCacheSize is the number of postal codes kept when no size is configured.
const DefaultCacheSize = 1000

// Resolver validates postal codes, answers from cache when it can, and
// otherwise asks the provider. Failed lookups are never cached.
type Resolver struct {
	provider domain.Geocoder
	cache    *fifoCache
	flights  singleflight.Group
	metrics  *observability.Metrics
	logger   *slog.Logger
}

// New creates a Resolver with a cache holding at most cacheSize postal codes.
func New(provider domain.Geocoder, cacheSize int, metrics *observability.Metrics, logger *slog.Logger) *Resolver {
	if cacheSize <= 0 {
		cacheSize = DefaultCacheSize
	}
	return &Resolver{
		provider: provider,
		cache:    newFIFOCache(cacheSize),
		metrics:  metrics,
		logger:   logger,
	}
}

// Resolve returns the location of postalCode. It fails with a
// *domain.ValidationError for malformed codes and a *domain.ResolutionError
// for any provider failure.
func (r *Resolver) Resolve(ctx context.Context, postalCode string) (domain.GeocodeResult, error) {
	if err := domain.ValidatePostalCode(postalCode); err != nil {
		return domain.GeocodeResult{}, err
	}

	if result, ok := r.cache.get(postalCode); ok {
		r.metrics.GeocodeCache.WithLabelValues("hit").Inc()
		return result, nil
	}
	r.metrics.GeocodeCache.WithLabelValues("miss").Inc()

	// Concurrent misses for the same code share one provider call. The call
	// outlives any single caller's cancellation and is bounded by the
	// provider timeout; each caller still stops waiting when its own ctx ends.
	ch := r.flights.DoChan(postalCode, func() (any, error) {
		return r.lookup(context.WithoutCancel(ctx), postalCode)
	})
	select {
	case <-ctx.Done():
		return domain.GeocodeResult{}, &domain.ResolutionError{PostalCode: postalCode, Err: ctx.Err()}
	case res := <-ch:
		if res.Shared {
			r.metrics.GeocodeCache.WithLabelValues("shared").Inc()
		}
		if res.Err != nil {
			return domain.GeocodeResult{}, res.Err
		}
		return res.Val.(domain.GeocodeResult), nil
	}
}

// CacheLen reports how many postal codes are currently cached.
func (r *Resolver) CacheLen() int {
	return r.cache.len()
}

func (r *Resolver) lookup(ctx context.Context, postalCode string) (domain.GeocodeResult, error) {
	result, err := r.provider.Geocode(ctx, postalCode)
	if err != nil {
		r.logger.Warn("postal code resolution failed", "postal_code", postalCode, "error", err)
		return domain.GeocodeResult{}, &domain.ResolutionError{PostalCode: postalCode, Err: err}
	}

	// Always key by the requested code; providers may echo a different form.
	result.PostalCode = postalCode

	if r.cache.put(postalCode, result) {
		r.metrics.GeocodeEvictions.Inc()
	}
	r.metrics.GeocodeCacheSize.Set(float64(r.cache.len()))
	return result, nil
}
