package domain

import "context"

// Address is a dealer's street address.
type Address struct {
	Street     string `json:"street"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postal_code"`
}

// Reviews summarizes a dealer's public rating.
type Reviews struct {
	Rating float64 `json:"rating"`
	Count  int     `json:"count"`
	Source string  `json:"source"`
}

// Dealer is a dealership location as stored by the dealer data source.
type Dealer struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	Address     Address           `json:"address"`
	Coordinates Coordinates       `json:"coordinates"`
	Phone       string            `json:"phone,omitempty"`
	Website     string            `json:"website,omitempty"`
	Hours       map[string]string `json:"hours,omitempty"`
	Services    []string          `json:"services,omitempty"`
	Reviews     *Reviews          `json:"reviews,omitempty"`
}

// RankedDealer pairs a dealer with its distance from the search origin.
type RankedDealer struct {
	Dealer        Dealer  `json:"dealer"`
	DistanceMiles float64 `json:"distance_miles"`
}

// SearchResult is the output of a proximity search.
type SearchResult struct {
	Origin  GeocodeResult  `json:"origin"`
	Dealers []RankedDealer `json:"dealers"`
}

// DealerSource provides read access to the dealer records.
type DealerSource interface {
	// ListDealers returns every candidate dealer. An empty slice is not an error.
	ListDealers(ctx context.Context) ([]Dealer, error)

	// GetDealer returns the dealer with the given ID or ErrDealerNotFound.
	GetDealer(ctx context.Context, id string) (Dealer, error)

	// Ping reports whether the source is reachable.
	Ping(ctx context.Context) error
}
