package domain

import (
	"context"
	"regexp"
)

// GeocodeResult is the resolved location for a single postal code.
// Locality, Region, and FormattedAddress are empty when the provider omits them.
type GeocodeResult struct {
	PostalCode       string      `json:"postal_code"`
	Coordinates      Coordinates `json:"coordinates"`
	Locality         string      `json:"locality,omitempty"`
	Region           string      `json:"region,omitempty"`
	FormattedAddress string      `json:"formatted_address,omitempty"`
}

// Geocoder resolves a postal code to coordinates using an external provider.
type Geocoder interface {
	// Geocode returns the first location the provider reports for postalCode.
	// Implementations return an error for non-success statuses and empty result sets.
	Geocode(ctx context.Context, postalCode string) (GeocodeResult, error)
}

var postalCodePattern = regexp.MustCompile(`^\d{5}$`)

// ValidatePostalCode reports a ValidationError unless code is exactly five ASCII digits.
func ValidatePostalCode(code string) error {
	if !postalCodePattern.MatchString(code) {
		return &ValidationError{Field: "postal_code", Message: "invalid postal code format"}
	}
	return nil
}
