package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordProviderRequest(t *testing.T) {
	before := testutil.ToFloat64(providerRequests.WithLabelValues("rates", OutcomeError))

	RecordProviderRequest("rates", errors.New("boom"))
	RecordProviderRequest("rates", nil)

	assert.Equal(t, before+1, testutil.ToFloat64(providerRequests.WithLabelValues("rates", OutcomeError)))
	assert.GreaterOrEqual(t, testutil.ToFloat64(providerRequests.WithLabelValues("rates", OutcomeSuccess)), 1.0)
}

func TestRecordRateCacheLookup(t *testing.T) {
	hits := testutil.ToFloat64(rateCacheLookups.WithLabelValues("hit"))
	misses := testutil.ToFloat64(rateCacheLookups.WithLabelValues("miss"))

	RecordRateCacheLookup(true)
	RecordRateCacheLookup(false)
	RecordRateCacheLookup(false)

	assert.Equal(t, hits+1, testutil.ToFloat64(rateCacheLookups.WithLabelValues("hit")))
	assert.Equal(t, misses+2, testutil.ToFloat64(rateCacheLookups.WithLabelValues("miss")))
}

func TestSessionsGauge(t *testing.T) {
	before := testutil.ToFloat64(activeSessions)

	SessionOpened()
	SessionOpened()
	SessionClosed()

	assert.Equal(t, before+1, testutil.ToFloat64(activeSessions))
}

func TestHandler(t *testing.T) {
	RecordProviderRequest("currencies", nil)

	rr := httptest.NewRecorder()
	Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "currency_converter_provider_requests_total")
}
