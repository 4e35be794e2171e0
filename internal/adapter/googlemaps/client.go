package googlemaps

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"slices"
	"time"

	"github.com/couchcryptid/dealer-locator-service/internal/domain"
	"github.com/couchcryptid/dealer-locator-service/internal/observability"
	"golang.org/x/time/rate"
)

// ErrNoResults is returned when the provider answers with an empty result set.
var ErrNoResults = errors.New("geocoding returned no results")

const statusOK = "OK"

// Client implements domain.Geocoder using the Google Maps Geocoding API.
type Client struct {
	apiKey     string
	httpClient *http.Client
	baseURL    string
	timeout    time.Duration
	limiter    *rate.Limiter
	metrics    *observability.Metrics
	logger     *slog.Logger
}

// NewClient creates a geocoding client. Outbound requests are bounded by
// timeout and throttled to ratePerSecond with a burst of one second's worth.
func NewClient(apiKey, baseURL string, timeout time.Duration, ratePerSecond float64, metrics *observability.Metrics, logger *slog.Logger) *Client {
	burst := int(ratePerSecond)
	if burst < 1 {
		burst = 1
	}
	return &Client{
		apiKey: apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL: baseURL,
		timeout: timeout,
		limiter: rate.NewLimiter(rate.Limit(ratePerSecond), burst),
		metrics: metrics,
		logger:  logger,
	}
}

// Geocode resolves a US postal code to the first location the API returns.
func (c *Client) Geocode(ctx context.Context, postalCode string) (domain.GeocodeResult, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			c.metrics.GeocodeRequests.WithLabelValues("error").Inc()
			return domain.GeocodeResult{}, fmt.Errorf("rate limit wait: %w", err)
		}
	}

	params := url.Values{
		"address":    {postalCode},
		"components": {"postal_code:" + postalCode + "|country:US"},
		"key":        {c.apiKey},
	}

	start := time.Now()
	result, outcome, err := c.doRequest(ctx, c.baseURL+"?"+params.Encode(), postalCode)
	c.metrics.GeocodeAPIDuration.Observe(time.Since(start).Seconds())
	c.metrics.GeocodeRequests.WithLabelValues(outcome).Inc()

	if err != nil {
		c.logger.Debug("geocode request failed", "postal_code", postalCode, "outcome", outcome, "error", err)
		return domain.GeocodeResult{}, err
	}
	return result, nil
}

func (c *Client) doRequest(ctx context.Context, fullURL, postalCode string) (domain.GeocodeResult, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return domain.GeocodeResult{}, "error", fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domain.GeocodeResult{}, "error", fmt.Errorf("geocode request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return domain.GeocodeResult{}, "error", fmt.Errorf("geocoding API error: status %d: %s", resp.StatusCode, body)
	}

	var apiResp response
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return domain.GeocodeResult{}, "error", fmt.Errorf("decode response: %w", err)
	}

	if apiResp.Status == "ZERO_RESULTS" || (apiResp.Status == statusOK && len(apiResp.Results) == 0) {
		return domain.GeocodeResult{}, "empty", ErrNoResults
	}
	if apiResp.Status != statusOK {
		if apiResp.ErrorMessage != "" {
			return domain.GeocodeResult{}, "status", fmt.Errorf("geocoding status %s: %s", apiResp.Status, apiResp.ErrorMessage)
		}
		return domain.GeocodeResult{}, "status", fmt.Errorf("geocoding status %s", apiResp.Status)
	}

	r := apiResp.Results[0]
	coords := domain.Coordinates{Lat: r.Geometry.Location.Lat, Lon: r.Geometry.Location.Lng}
	if err := coords.Validate(); err != nil {
		return domain.GeocodeResult{}, "error", fmt.Errorf("invalid location: %w", err)
	}

	result := domain.GeocodeResult{
		PostalCode:       postalCode,
		Coordinates:      coords,
		FormattedAddress: r.FormattedAddress,
	}
	for _, comp := range r.AddressComponents {
		if slices.Contains(comp.Types, "locality") {
			result.Locality = comp.LongName
		}
		if slices.Contains(comp.Types, "administrative_area_level_1") {
			result.Region = comp.LongName
		}
	}
	return result, "success", nil
}

// Geocoding API response types.

type response struct {
	Status       string   `json:"status"`
	Results      []result `json:"results"`
	ErrorMessage string   `json:"error_message,omitempty"`
}

type result struct {
	Geometry          geometry    `json:"geometry"`
	AddressComponents []component `json:"address_components"`
	FormattedAddress  string      `json:"formatted_address"`
}

type geometry struct {
	Location latLng `json:"location"`
}

type latLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type component struct {
	LongName  string   `json:"long_name"`
	ShortName string   `json:"short_name"`
	Types     []string `json:"types"`
}

