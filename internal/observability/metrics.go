package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "dealer_locator"

// Metrics holds the Prometheus counters, histograms, and gauges for the locator.
type Metrics struct {
	// Geocoding metrics.
	GeocodeRequests    *prometheus.CounterVec // labels: outcome={success,error,empty,status}
	GeocodeAPIDuration prometheus.Histogram
	GeocodeCache       *prometheus.CounterVec // labels: result={hit,miss,shared}
	GeocodeCacheSize   prometheus.Gauge
	GeocodeEvictions   prometheus.Counter

	// Search metrics.
	Searches      *prometheus.CounterVec // labels: outcome={success,validation,resolution,error}
	SearchResults prometheus.Histogram

	// Lead metrics.
	LeadsSubmitted *prometheus.CounterVec // labels: outcome={published,rejected,error}
}

// NewMetrics creates and registers all locator metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.GeocodeRequests,
		m.GeocodeAPIDuration,
		m.GeocodeCache,
		m.GeocodeCacheSize,
		m.GeocodeEvictions,
		m.Searches,
		m.SearchResults,
		m.LeadsSubmitted,
	)
	return m
}

// NewMetricsForTesting creates Metrics without registering them to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		GeocodeRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "geocode_requests_total",
			Help:      "Geocoding provider requests by outcome.",
		}, []string{"outcome"}),
		GeocodeAPIDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "geocode_api_duration_seconds",
			Help:      "Geocoding provider request duration in seconds.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}),
		GeocodeCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "geocode_cache_total",
			Help:      "Postal code cache lookups by result.",
		}, []string{"result"}),
		GeocodeCacheSize: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "geocode_cache_entries",
			Help:      "Number of postal codes currently cached.",
		}),
		GeocodeEvictions: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "geocode_cache_evictions_total",
			Help:      "Postal codes evicted from a full cache.",
		}),
		Searches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "searches_total",
			Help:      "Proximity searches by outcome.",
		}, []string{"outcome"}),
		SearchResults: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "search_results",
			Help:      "Number of dealers returned per successful search.",
			Buckets:   []float64{0, 1, 2, 5, 10, 15, 20},
		}),
		LeadsSubmitted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "leads_submitted_total",
			Help:      "Dealer lead submissions by outcome.",
		}, []string{"outcome"}),
	}
}
