package router

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/culinary/backend/internal/infrastructure/auth"
	"github.com/culinary/backend/internal/infrastructure/config"
	"github.com/culinary/backend/internal/interfaces/http/dto"
	"github.com/culinary/backend/internal/interfaces/http/handler"
	"github.com/culinary/backend/internal/interfaces/http/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pinger struct{ err error }

func (p pinger) Ping() error { return p.err }

// Handlers without services: only routes that never reach a service are exercised.
func bareHandlers(db handler.Pinger) Handlers {
	return Handlers{
		System:     handler.NewSystemHandler("test", db),
		Partner:    handler.NewPartnerHandler(nil, nil, nil, nil),
		Catalog:    handler.NewCatalogHandler(nil),
		Pricing:    handler.NewPricingHandler(nil),
		Agreement:  handler.NewAgreementHandler(nil),
		SalesOrder: handler.NewSalesOrderHandler(nil, nil),
		Proforma:   handler.NewProformaHandler(nil, nil),
	}
}

func baseEngineConfig() EngineConfig {
	return EngineConfig{
		ServiceName: "culinary-test",
		HTTP: config.HTTPConfig{
			MaxBodySize:      1 << 20,
			CORSAllowOrigins: []string{"https://app.culinary.test"},
			CORSAllowMethods: []string{"GET", "POST"},
			CORSAllowHeaders: []string{"Authorization", "Content-Type"},
		},
	}
}

func TestNewEngine_RegistersCulinaryRoutes(t *testing.T) {
	engine := NewEngine(baseEngineConfig(), bareHandlers(nil))

	routes := map[string]bool{}
	for _, ri := range engine.Routes() {
		routes[ri.Method+" "+ri.Path] = true
	}
	for _, want := range []string{
		"GET /health",
		"GET /swagger/*any",
		"GET /api/v1/health",
		"GET /api/v1/system/info",
		"POST /api/v1/partners/companies",
		"GET /api/v1/partners/brands/:name",
		"PUT /api/v1/catalog/items/:code",
		"GET /api/v1/catalog/items/by-customer-agreement",
		"GET /api/v1/pricing/supplier-items",
		"POST /api/v1/agreements/:id/submit",
		"POST /api/v1/agreements/update-statuses",
		"GET /api/v1/agreements/:id/current-prices",
		"POST /api/v1/trade/sales-orders/:name/split",
		"GET /api/v1/trade/sales-orders/item-price",
		"POST /api/v1/proformas/orders/:name/fix-totals",
		"GET /api/v1/proformas/:name/document",
	} {
		assert.True(t, routes[want], "missing route %s", want)
	}
}

func TestNewEngine_HealthAndHeaders(t *testing.T) {
	engine := NewEngine(baseEngineConfig(), bareHandlers(pinger{}))

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "https://app.culinary.test")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get(middleware.RequestIDHeader))
	assert.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))
	assert.Equal(t, "https://app.culinary.test", w.Header().Get("Access-Control-Allow-Origin"))

	w = serve(NewEngine(baseEngineConfig(), bareHandlers(pinger{err: errors.New("down")})), http.MethodGet, "/api/v1/health")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestNewEngine_JWTGuardsAPI(t *testing.T) {
	cfg := baseEngineConfig()
	cfg.JWT = auth.NewJWTService(config.JWTConfig{Enabled: true, Secret: "engine-secret-at-least-32-bytes-long", Issuer: "culinary"})
	engine := NewEngine(cfg, bareHandlers(pinger{}))

	assert.Equal(t, http.StatusOK, serve(engine, http.MethodGet, "/health").Code)

	w := serve(engine, http.MethodGet, "/api/v1/agreements")
	require.Equal(t, http.StatusUnauthorized, w.Code)
	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, dto.ErrCodeUnauthorized, resp.Error.Code)

	token, err := cfg.JWT.GenerateAccessToken("user-1", "chef", nil, time.Hour)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/system/info", nil)
	req.Header.Set(middleware.AuthHeaderKey, middleware.BearerPrefix+token)
	w = httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestNewEngine_RateLimit(t *testing.T) {
	cfg := baseEngineConfig()
	cfg.RateLimiter = middleware.NewRateLimiter(2, time.Minute)
	t.Cleanup(cfg.RateLimiter.Stop)
	engine := NewEngine(cfg, bareHandlers(pinger{}))

	for i := 0; i < 2; i++ {
		assert.Equal(t, http.StatusOK, serve(engine, http.MethodGet, "/api/v1/system/info").Code)
	}
	assert.Equal(t, http.StatusTooManyRequests, serve(engine, http.MethodGet, "/api/v1/system/info").Code)
}

func TestNewEngine_Swagger(t *testing.T) {
	cfg := baseEngineConfig()
	assert.Equal(t, http.StatusNotFound, serve(NewEngine(cfg, bareHandlers(nil)), http.MethodGet, "/swagger/index.html").Code)

	cfg.Swagger = config.SwaggerConfig{Enabled: true, AllowedIPs: []string{"10.0.0.0/8"}}
	assert.Equal(t, http.StatusForbidden, serve(NewEngine(cfg, bareHandlers(nil)), http.MethodGet, "/swagger/index.html").Code)

	// httptest requests come from 192.0.2.1
	cfg.Swagger.AllowedIPs = []string{"192.0.2.0/24"}
	assert.Equal(t, http.StatusOK, serve(NewEngine(cfg, bareHandlers(nil)), http.MethodGet, "/swagger/index.html").Code)
}
