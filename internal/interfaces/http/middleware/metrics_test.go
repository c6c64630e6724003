package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	"go.uber.org/zap"
)

func TestHTTPMetrics(t *testing.T) {
	ctx := context.Background()
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() { _ = provider.Shutdown(ctx) })

	r := gin.New()
	r.Use(HTTPMetrics(provider.Meter("test"), zap.NewNop()))
	r.GET("/api/v1/sales-orders/:name", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"name": c.Param("name")}) })

	for _, name := range []string{"SO-00001", "SO-00002"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/v1/sales-orders/"+name, nil))
	}
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/nowhere", nil))

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(ctx, &rm))

	byRoute := map[string]int64{}
	var durations uint64
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			switch data := m.Data.(type) {
			case metricdata.Sum[int64]:
				if m.Name != "http_server_request_total" {
					continue
				}
				for _, dp := range data.DataPoints {
					route, _ := dp.Attributes.Value("http.route")
					byRoute[route.AsString()] += dp.Value
				}
			case metricdata.Histogram[float64]:
				if m.Name == "http_server_request_duration_seconds" {
					for _, dp := range data.DataPoints {
						durations += dp.Count
					}
				}
			}
		}
	}
	assert.Equal(t, int64(2), byRoute["/api/v1/sales-orders/:name"])
	assert.Equal(t, int64(1), byRoute["unknown"])
	assert.Equal(t, uint64(3), durations)
}
