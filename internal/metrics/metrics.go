package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "currency_converter"

// Outcome labels for provider requests.
const (
	OutcomeSuccess = "success"
	OutcomeError   = "error"
)

var (
	// Registry holds the application collectors.
	Registry = prometheus.NewRegistry()

	providerRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "provider",
			Name:      "requests_total",
			Help:      "Requests sent to external data providers.",
		},
		[]string{"provider", "outcome"},
	)

	rateCacheLookups = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "rate_cache",
			Name:      "lookups_total",
			Help:      "Session rate cache lookups by result.",
		},
		[]string{"result"},
	)

	activeSessions = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "sessions",
			Name:      "active",
			Help:      "Converter sessions currently alive.",
		},
	)
)

func init() {
	Registry.MustRegister(
		providerRequests,
		rateCacheLookups,
		activeSessions,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
}

// Handler exposes the registry in the Prometheus text format.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}

// RecordProviderRequest counts one request to the named provider.
func RecordProviderRequest(provider string, err error) {
	outcome := OutcomeSuccess
	if err != nil {
		outcome = OutcomeError
	}
	providerRequests.WithLabelValues(provider, outcome).Inc()
}

// RecordRateCacheLookup counts a session cache hit or miss.
func RecordRateCacheLookup(hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	rateCacheLookups.WithLabelValues(result).Inc()
}

// SessionOpened increments the active sessions gauge.
func SessionOpened() { activeSessions.Inc() }

// SessionClosed decrements the active sessions gauge.
func SessionClosed() { activeSessions.Dec() }
