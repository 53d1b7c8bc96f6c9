package observability

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/startailors/tailorshop/internal/api"
)

var _ api.Recorder = (*Metrics)(nil)

func scrape(t *testing.T, m *Metrics) string {
	t.Helper()
	rr := httptest.NewRecorder()
	m.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	return rr.Body.String()
}

func TestMetricsMiddlewareRecordsRequest(t *testing.T) {
	metrics := NewMetrics()

	handler := metrics.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	routeCtx := chi.NewRouteContext()
	routeCtx.RoutePatterns = append(routeCtx.RoutePatterns, "/test")
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, routeCtx))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusTeapot, rr.Code)

	body := scrape(t, metrics)
	assert.Contains(t, body, `tailorshop_http_requests_total{code="418",route="/test"} 1`)
	assert.Contains(t, body, `tailorshop_http_request_duration_seconds_bucket{route="/test"`)
}

func TestObserveAPICall(t *testing.T) {
	metrics := NewMetrics()
	metrics.ObserveAPICall("bills.list", http.StatusOK, 20*time.Millisecond)
	metrics.ObserveAPICall("bills.list", 0, time.Second)

	body := scrape(t, metrics)
	assert.Contains(t, body, `tailorshop_api_calls_total{op="bills.list",status="200"} 1`)
	assert.Contains(t, body, `tailorshop_api_calls_total{op="bills.list",status="error"} 1`)
	assert.Contains(t, body, `tailorshop_api_call_duration_seconds_count{op="bills.list"} 2`)
}

func TestNilMetrics(t *testing.T) {
	var metrics *Metrics
	metrics.ObserveAPICall("health", 200, time.Millisecond)

	rr := httptest.NewRecorder()
	metrics.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
}
