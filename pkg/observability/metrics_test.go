package observability

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollector_RecordOutcome(t *testing.T) {
	c := NewCollector("catalog")

	c.RecordOutcome(context.Background(), "IngestMessage", "acked")
	c.RecordOutcome(context.Background(), "IngestMessage", "acked")
	c.RecordOutcome(context.Background(), "IngestMessage", "redeliver")

	assert.Equal(t, 2.0, testutil.ToFloat64(c.Outcomes.WithLabelValues("IngestMessage", "acked")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.Outcomes.WithLabelValues("IngestMessage", "redeliver")))
}

func TestCollector_Handler(t *testing.T) {
	c := NewCollector("catalog")
	c.RecordHTTPRequest(http.MethodPost, "/products", "201", 15*time.Millisecond)

	rec := httptest.NewRecorder()
	c.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `catalog_http_requests_total{method="POST",route="/products",status="201"} 1`)
}
