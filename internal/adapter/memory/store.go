// Package memory provides a read-only dealer source backed by a fixed slice,
// used when no database is configured and as the seed set for the database.
package memory

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/couchcryptid/dealer-locator-service/internal/domain"
)

//go:embed dealers.json
var seedJSON []byte

// SeedDealers returns the embedded Texas dealer seed set.
func SeedDealers() ([]domain.Dealer, error) {
	return ParseDealers(seedJSON)
}

// ParseDealers decodes a JSON array of dealers and checks that every record
// has an ID and valid coordinates.
func ParseDealers(data []byte) ([]domain.Dealer, error) {
	var dealers []domain.Dealer
	if err := json.Unmarshal(data, &dealers); err != nil {
		return nil, fmt.Errorf("decode dealers: %w", err)
	}
	seen := make(map[string]struct{}, len(dealers))
	for i, d := range dealers {
		if d.ID == "" {
			return nil, fmt.Errorf("dealer %d: missing id", i)
		}
		if _, dup := seen[d.ID]; dup {
			return nil, fmt.Errorf("dealer %q: duplicate id", d.ID)
		}
		seen[d.ID] = struct{}{}
		if err := d.Coordinates.Validate(); err != nil {
			return nil, fmt.Errorf("dealer %q: %w", d.ID, err)
		}
	}
	return dealers, nil
}

// DealerStore implements domain.DealerSource over an immutable slice.
type DealerStore struct {
	dealers []domain.Dealer
	byID    map[string]int
}

// NewDealerStore creates a store holding a copy of dealers.
func NewDealerStore(dealers []domain.Dealer) *DealerStore {
	s := &DealerStore{
		dealers: append([]domain.Dealer(nil), dealers...),
		byID:    make(map[string]int, len(dealers)),
	}
	for i, d := range s.dealers {
		s.byID[d.ID] = i
	}
	return s
}

// ListDealers returns a copy of every dealer so callers cannot mutate the store.
func (s *DealerStore) ListDealers(_ context.Context) ([]domain.Dealer, error) {
	return append([]domain.Dealer(nil), s.dealers...), nil
}

func (s *DealerStore) GetDealer(_ context.Context, id string) (domain.Dealer, error) {
	i, ok := s.byID[id]
	if !ok {
		return domain.Dealer{}, domain.ErrDealerNotFound
	}
	return s.dealers[i], nil
}

func (s *DealerStore) Ping(_ context.Context) error {
	return nil
}
