package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_Counters(t *testing.T) {
	m := New("inventory-service")

	m.StockAdjusted("decrease", "ok")
	m.StockAdjusted("decrease", "ok")
	m.StockAdjusted("decrease", "insufficient_stock")
	m.SupplierLookup("timeout")
	m.RecordHTTPRequest(http.MethodGet, "/api/products/{id}", http.StatusOK, 15*time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.StockAdjustmentsTotal.WithLabelValues("decrease", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.StockAdjustmentsTotal.WithLabelValues("decrease", "insufficient_stock")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.SupplierLookupsTotal.WithLabelValues("timeout")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues("GET", "/api/products/{id}", "200")))
}

func TestMetrics_Handler(t *testing.T) {
	m := New("supplier-service")
	m.SupplierLookup("ok")

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `supplier_lookups_total{result="ok",service="supplier-service"} 1`)
	assert.Contains(t, string(body), "go_goroutines")
}
