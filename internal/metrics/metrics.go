// Package metrics exposes Prometheus collectors for the tunely web server.
package metrics

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Favorites operations recorded by [ObserveFavorite].
const (
	OpAdd    = "add"
	OpRemove = "remove"
)

// Mutation results recorded by [ObserveFavorite].
const (
	ResultAdded     = "added"
	ResultDuplicate = "duplicate"
	ResultRemoved   = "removed"
	ResultMissing   = "missing"
	ResultError     = "error"
)

var (
	httpRequestsTotal          *prometheus.CounterVec
	httpRequestDurationSeconds *prometheus.HistogramVec
	searchRequestsTotal        *prometheus.CounterVec
	searchResults              prometheus.Histogram
	favoritesMutationsTotal    *prometheus.CounterVec
	favoritesStored            prometheus.Gauge

	once sync.Once
)

// Init initializes the Prometheus metrics collectors.
// It is safe to call this function multiple times.
func Init() {
	once.Do(func() {
		httpRequestsTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tunely_http_requests_total",
				Help: "Total number of HTTP requests, labeled by method, route and code.",
			},
			[]string{"method", "route", "code"},
		)

		httpRequestDurationSeconds = promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "tunely_http_request_duration_seconds",
				Help:    "Histogram of HTTP request latencies, labeled by method and route.",
				Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2, 5},
			},
			[]string{"method", "route"},
		)

		searchRequestsTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tunely_search_requests_total",
				Help: "Total number of calls to the search collaborator, labeled by status.",
			},
			[]string{"status"},
		)

		searchResults = promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "tunely_search_results",
				Help:    "Number of tracks returned per successful search.",
				Buckets: []float64{0, 1, 5, 10, 25, 50, 100, 200},
			},
		)

		favoritesMutationsTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tunely_favorites_mutations_total",
				Help: "Total number of favorites add/remove requests, labeled by operation and result.",
			},
			[]string{"op", "result"},
		)

		favoritesStored = promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "tunely_favorites_stored",
				Help: "Number of favorites in the store as of the last read.",
			},
		)
	})
}

// Handler returns an http.Handler for exposing Prometheus metrics.
func Handler() http.Handler {
	return promhttp.Handler()
}

// ObserveHTTPRequest increments the HTTP request metrics.
func ObserveHTTPRequest(method, route string, code int, duration time.Duration) {
	Init()
	httpRequestsTotal.WithLabelValues(method, route, strconv.Itoa(code)).Inc()
	httpRequestDurationSeconds.WithLabelValues(method, route).Observe(duration.Seconds())
}

// ObserveSearch records one call to the search collaborator.
func ObserveSearch(results int, err error) {
	Init()
	if err != nil {
		searchRequestsTotal.WithLabelValues("error").Inc()
		return
	}
	searchRequestsTotal.WithLabelValues("ok").Inc()
	searchResults.Observe(float64(results))
}

// ObserveFavorite records a favorites mutation with one of the Result* constants.
func ObserveFavorite(op, result string) {
	Init()
	favoritesMutationsTotal.WithLabelValues(op, result).Inc()
}

// SetFavoritesStored records the current size of the favorites collection.
func SetFavoritesStored(n int) {
	Init()
	favoritesStored.Set(float64(n))
}
