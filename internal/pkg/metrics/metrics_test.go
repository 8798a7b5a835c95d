package metrics_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"ricetrade/internal/core/domain/model/order"
	"ricetrade/internal/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_Observers(t *testing.T) {
	m := metrics.New()

	m.ObserveTransition(order.Paid, order.Processing)
	m.ObserveTransition(order.Paid, order.Processing)
	m.ObserveDelivery("realtime", nil)
	m.ObserveDelivery("kafka", errors.New("broker down"))
	m.ObserveReleased(3)

	assert.InDelta(t, 2, testutil.ToFloat64(m.Transitions.WithLabelValues("paid", "processing")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.Deliveries.WithLabelValues("realtime", "ok")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.Deliveries.WithLabelValues("kafka", "failed")), 0)
	assert.InDelta(t, 3, testutil.ToFloat64(m.VehiclesReleased), 0)
}

func TestMetrics_Handler(t *testing.T) {
	m := metrics.New()
	m.ObserveRequest("/api/v1/orders/:id", http.MethodGet, http.StatusOK, 12*time.Millisecond)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `ricetrade_http_requests_total{method="GET",route="/api/v1/orders/:id",status="200"} 1`)
}
