// Package proximity ranks dealers by distance from a postal code.
package proximity

import (
	"cmp"
	"context"
	"fmt"
	"log/slog"
	"slices"

	"github.com/couchcryptid/dealer-locator-service/internal/domain"
	"github.com/couchcryptid/dealer-locator-service/internal/observability"
)

// Resolver turns a postal code into an origin location.
type Resolver interface {
	Resolve(ctx context.Context, postalCode string) (domain.GeocodeResult, error)
}

// Service answers nearby-dealer queries.
type Service struct {
	resolver Resolver
	dealers  domain.DealerSource
	metrics  *observability.Metrics
	logger   *slog.Logger
}

// NewService creates a proximity search service.
func NewService(resolver Resolver, dealers domain.DealerSource, metrics *observability.Metrics, logger *slog.Logger) *Service {
	return &Service{
		resolver: resolver,
		dealers:  dealers,
		metrics:  metrics,
		logger:   logger,
	}
}

// FindNearby returns up to limit dealers within radiusMiles of postalCode,
// nearest first. Resolver errors are returned unchanged.
func (s *Service) FindNearby(ctx context.Context, postalCode string, radiusMiles float64, limit int) (domain.SearchResult, error) {
	result, err := s.findNearby(ctx, postalCode, radiusMiles, limit)
	s.metrics.Searches.WithLabelValues(outcome(err)).Inc()
	if err != nil {
		return domain.SearchResult{}, err
	}
	s.metrics.SearchResults.Observe(float64(len(result.Dealers)))
	s.logger.Debug("proximity search completed",
		"postal_code", postalCode,
		"radius_miles", radiusMiles,
		"limit", limit,
		"results", len(result.Dealers),
	)
	return result, nil
}

func (s *Service) findNearby(ctx context.Context, postalCode string, radiusMiles float64, limit int) (domain.SearchResult, error) {
	// !(x > 0) also rejects NaN.
	if !(radiusMiles > 0) {
		return domain.SearchResult{}, &domain.ValidationError{Field: "radius", Message: "radius must be positive"}
	}
	if limit <= 0 {
		return domain.SearchResult{}, &domain.ValidationError{Field: "limit", Message: "limit must be positive"}
	}

	origin, err := s.resolver.Resolve(ctx, postalCode)
	if err != nil {
		return domain.SearchResult{}, err
	}

	candidates, err := s.dealers.ListDealers(ctx)
	if err != nil {
		return domain.SearchResult{}, fmt.Errorf("list dealers: %w", err)
	}

	return domain.SearchResult{
		Origin:  origin,
		Dealers: Rank(origin.Coordinates, candidates, radiusMiles, limit),
	}, nil
}

// Rank computes each candidate's distance from origin, keeps those within
// radiusMiles (inclusive), orders them by distance then ID, and returns at
// most limit entries. The result is never nil.
func Rank(origin domain.Coordinates, candidates []domain.Dealer, radiusMiles float64, limit int) []domain.RankedDealer {
	ranked := make([]domain.RankedDealer, 0, len(candidates))
	for _, d := range candidates {
		dist := domain.DistanceMiles(origin, d.Coordinates)
		if dist <= radiusMiles {
			ranked = append(ranked, domain.RankedDealer{Dealer: d, DistanceMiles: dist})
		}
	}

	slices.SortFunc(ranked, func(a, b domain.RankedDealer) int {
		if c := cmp.Compare(a.DistanceMiles, b.DistanceMiles); c != 0 {
			return c
		}
		return cmp.Compare(a.Dealer.ID, b.Dealer.ID)
	})

	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}

// GetDealer returns a single dealer by ID.
func (s *Service) GetDealer(ctx context.Context, id string) (domain.Dealer, error) {
	if id == "" {
		return domain.Dealer{}, &domain.ValidationError{Field: "id", Message: "dealer id is required"}
	}
	return s.dealers.GetDealer(ctx, id)
}

func outcome(err error) string {
	switch {
	case err == nil:
		return "success"
	case domain.IsValidation(err):
		return "validation"
	case domain.IsResolution(err):
		return "resolution"
	default:
		return "error"
	}
}

// CheckReadiness reports whether the dealer source is reachable.
func (s *Service) CheckReadiness(ctx context.Context) error {
	if err := s.dealers.Ping(ctx); err != nil {
		return fmt.Errorf("dealer source: %w", err)
	}
	return nil
}
